// Package glint is the public surface of the Glint SPA toolkit.
//
// An App ties the subsystems together: a simulated DOM document, the
// reconciler that patches it, an observable store, a path router, and a
// lifecycle hook registry. All state is instance-owned; construct one
// App per application, or several independent ones in tests:
//
//	app := glint.New(glint.Options{})
//	app.Route("/users/:id", func(p glint.Params) (string, error) {
//		return userTemplate.Render(map[string]any{"id": p.Get("id")})
//	})
//	if err := app.Navigate("/users/42"); err != nil {
//		log.Fatal(err)
//	}
package glint

import (
	"fmt"
	"log/slog"

	"github.com/glint-dev/glint/internal/errors"
	"github.com/glint-dev/glint/pkg/dom"
	"github.com/glint-dev/glint/pkg/hooks"
	"github.com/glint-dev/glint/pkg/router"
	"github.com/glint-dev/glint/pkg/store"
	"github.com/glint-dev/glint/pkg/vdom"
)

// Params re-exports the router's parameter map.
type Params = router.Params

// RouteHandler re-exports the router's handler type.
type RouteHandler = router.RouteHandler

// Options configures a new App. The zero value is usable.
type Options struct {
	// Document is the document to render into. A fresh one is created
	// when nil.
	Document *dom.Document

	// Container is the element the reconciler patches. Defaults to the
	// document body.
	Container *dom.Element

	// Store replaces the App's own store, e.g. one constructed with a
	// persister.
	Store *store.Store

	// KeyAttr overrides the identity attribute used during diffing.
	KeyAttr string

	// Logger receives diagnostics. Defaults to slog.Default.
	Logger *slog.Logger
}

// App is a Glint application instance.
type App struct {
	doc       *dom.Document
	container *dom.Element
	rec       *vdom.Reconciler
	store     *store.Store
	router    *router.Router
	hooks     *hooks.Registry
	logger    *slog.Logger

	path     string
	params   Params
	prevHTML string
	unbind   []func()
	closed   bool
}

// New constructs an App from the options.
func New(opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "app")

	doc := opts.Document
	if doc == nil {
		doc = dom.NewDocument()
	}
	container := opts.Container
	if container == nil {
		container = doc.Body()
	}

	st := opts.Store
	if st == nil {
		st, _ = store.New()
	}

	recOpts := []vdom.Option{vdom.WithLogger(logger)}
	if opts.KeyAttr != "" {
		recOpts = append(recOpts, vdom.WithKeyAttr(opts.KeyAttr))
	}

	return &App{
		doc:       doc,
		container: container,
		rec:       vdom.New(recOpts...),
		store:     st,
		router:    router.New(),
		hooks:     hooks.NewRegistry(logger),
		logger:    logger,
	}
}

// Document returns the document the App renders into.
func (a *App) Document() *dom.Document { return a.doc }

// Container returns the element the reconciler patches.
func (a *App) Container() *dom.Element { return a.container }

// Store returns the App's store.
func (a *App) Store() *store.Store { return a.store }

// Hooks returns the App's lifecycle registry.
func (a *App) Hooks() *hooks.Registry { return a.hooks }

// Path returns the current route path, or "" before the first Navigate.
func (a *App) Path() string { return a.path }

// Route registers a handler for the pattern.
func (a *App) Route(pattern string, h RouteHandler) error {
	return a.router.Handle(pattern, h)
}

// NotFound sets the handler used when no pattern matches.
func (a *App) NotFound(h RouteHandler) {
	a.router.NotFound(h)
}

// Navigate resolves the path against the registered routes and renders
// the matched handler into the container. BeforeRoute fires before the
// lookup, AfterRoute after a successful render. The first successful
// render also fires Mount. A failed lookup or handler error leaves the
// current path and the rendered output unchanged.
func (a *App) Navigate(path string) error {
	a.hooks.Fire(hooks.BeforeRoute, &hooks.Context{Path: path})

	m, err := a.router.Match(path)
	if err != nil {
		a.logger.Warn("navigation failed", "path", path, "error", err)
		return err
	}

	if err := a.render(path, m.Handler, m.Params); err != nil {
		return err
	}

	first := a.path == ""
	a.path = path
	a.params = m.Params

	if first {
		a.hooks.Fire(hooks.Mount, a.hookContext())
	}
	a.hooks.Fire(hooks.AfterRoute, a.hookContext())
	return nil
}

// Render re-runs the current route's handler and reconciles the result
// against the container. It is a no-op before the first Navigate.
func (a *App) Render() error {
	if a.path == "" {
		return nil
	}
	m, err := a.router.Match(a.path)
	if err != nil {
		return err
	}
	return a.render(a.path, m.Handler, m.Params)
}

// render runs the handler first: when it fails, the container, the
// stored HTML, and the render hooks are all left untouched.
func (a *App) render(path string, h RouteHandler, params Params) error {
	if a.container == nil {
		return errors.New("E201")
	}

	html, err := h(params)
	if err != nil {
		return errors.FromError(err, "E202").WithDetail(fmt.Sprintf("path %q", path))
	}

	ctx := &hooks.Context{Path: path, Params: params}
	a.hooks.Fire(hooks.BeforeRender, ctx)

	a.rec.Diff(a.container, a.prevHTML, html)
	a.prevHTML = html

	a.hooks.Fire(hooks.AfterRender, ctx)
	return nil
}

// Bind re-renders whenever one of the store keys changes. With no keys
// it re-renders on every store change. The returned function removes
// the binding.
func (a *App) Bind(keys ...string) func() {
	render := func(key string, _ any) {
		if err := a.Render(); err != nil {
			a.logger.Warn("re-render failed", "key", key, "error", err)
		}
	}

	var offs []func()
	if len(keys) == 0 {
		offs = append(offs, a.store.SubscribeAll(render))
	} else {
		for _, key := range keys {
			offs = append(offs, a.store.Subscribe(key, render))
		}
	}

	off := func() {
		for _, f := range offs {
			f()
		}
	}
	a.unbind = append(a.unbind, off)
	return off
}

// Close fires Destroy, removes store bindings, and flushes the store's
// persister if one is attached. Subsequent calls are no-ops.
func (a *App) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true

	a.hooks.Fire(hooks.Destroy, a.hookContext())
	for _, off := range a.unbind {
		off()
	}
	a.unbind = nil
	return a.store.Flush()
}

func (a *App) hookContext() *hooks.Context {
	return &hooks.Context{Path: a.path, Params: a.params}
}
