package ui

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// SGR sequences the themes are built from.
const (
	sgrReset  = "\033[0m"
	sgrBold   = "\033[1m"
	sgrGray   = "\033[90m"
	sgrGreen  = "\033[32m"
	sgrYellow = "\033[33m"
	sgrBlue   = "\033[34m"
	sgrRed    = "\033[31m"
)

// ColorMode decides when C emits escape sequences.
type ColorMode int

const (
	ColorAuto ColorMode = iota // only when stdout is a terminal
	ColorAlways
	ColorNever
)

var colorMode = ColorAuto

// SetColor overrides terminal detection.
func SetColor(m ColorMode) { colorMode = m }

func colorEnabled() bool {
	switch colorMode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// C wraps s in the given SGR sequence when color is enabled.
func C(sgr, s string) string {
	if sgr == "" || !colorEnabled() {
		return s
	}
	return sgr + s + sgrReset
}

// OK prints a success line with the theme's check mark.
func OK(w io.Writer, msg string) {
	fmt.Fprintln(w, C(current.Success, current.SymDone+" "+msg))
}

// Fail prints an error line with the theme's cross.
func Fail(w io.Writer, msg string) {
	fmt.Fprintln(w, C(current.Error, current.SymCross+" "+msg))
}
