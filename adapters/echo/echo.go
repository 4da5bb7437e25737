// Package hxformecho provides Echo framework integration for hxform forms.
//
// Create a form whose handler is routed on an Echo instance or group:
//
//	e := echo.New()
//	form := hxformecho.Mount(e, hxform.OnValidSubmit(save))
//
// Or on a group with middleware, passing the group's prefix so rendered
// widgets post to the right URL:
//
//	g := e.Group("/app", authMiddleware)
//	form := hxformecho.MountGroup(g, "/app")
package hxformecho

import (
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/pthm/hxform"
)

// DefaultPath is the URL prefix forms are served under unless a
// hxform.WithPath option overrides it.
const DefaultPath = "/_f/"

// Mount creates a form and routes its handler on e.
//
//	form := hxformecho.Mount(e, hxform.WithKey(key))
func Mount(e *echo.Echo, opts ...hxform.Option) *hxform.Form {
	form := hxform.New(withDefaultPath("", opts)...)
	Attach(e, form)
	return form
}

// Attach routes the handler of an existing form on e.
func Attach(e *echo.Echo, form *hxform.Form) {
	e.Any(form.Path(), echo.WrapHandler(form.Handler()))
}

// MountGroup creates a form and routes its handler on g. prefix must be
// the prefix g was created with. The form shares the group's middleware
// (auth, logging, etc.).
func MountGroup(g *echo.Group, prefix string, opts ...hxform.Option) *hxform.Form {
	form := hxform.New(withDefaultPath(prefix, opts)...)
	g.Any(strings.TrimPrefix(form.Path(), prefix), echo.WrapHandler(form.Handler()))
	return form
}

func withDefaultPath(prefix string, opts []hxform.Option) []hxform.Option {
	return append([]hxform.Option{hxform.WithPath(prefix + DefaultPath)}, opts...)
}

// Render writes a templ component to the Echo response.
//
//	func page(c echo.Context) error {
//	    return hxformecho.Render(c, form.Wrap(fields))
//	}
func Render(c echo.Context, component templ.Component) error {
	c.Response().Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(c.Request().Context(), c.Response())
}
