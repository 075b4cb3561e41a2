package model

import "errors"

var (
	// ErrNotFound is returned when an identifier does not resolve to an item.
	ErrNotFound = errors.New("item not found")
	// ErrValidation is returned for input a store refuses to persist.
	ErrValidation = errors.New("invalid item")
)
