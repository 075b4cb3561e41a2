package controller

import (
	"fmt"
	"strings"

	"github.com/idilsaglam/tada/internal/view"
)

var routesByPage = map[string]view.Route{
	"":          view.RouteAll,
	"all":       view.RouteAll,
	"active":    view.RouteActive,
	"completed": view.RouteCompleted,
}

// ParseRoute maps a hash segment like "active" to its route. Unknown pages
// return RouteAll together with an error.
func ParseRoute(page string) (view.Route, error) {
	if r, ok := routesByPage[strings.ToLower(strings.TrimSpace(page))]; ok {
		return r, nil
	}
	return view.RouteAll, fmt.Errorf("unknown route %q", page)
}
