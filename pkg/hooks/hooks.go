// Package hooks implements Glint's lifecycle hook registry.
//
// A Registry is an explicit instance owned by the application. Hooks run
// synchronously in registration order when an event fires; a panicking
// hook is recovered and logged so the rest of the chain still runs.
package hooks

import (
	"log/slog"
	"sync"
)

// Event names a lifecycle moment.
type Event string

const (
	BeforeRoute  Event = "before-route"
	AfterRoute   Event = "after-route"
	BeforeRender Event = "before-render"
	AfterRender  Event = "after-render"
	Mount        Event = "mount"
	Destroy      Event = "destroy"
)

// Context carries the state a hook may inspect.
type Context struct {
	// Path is the current route path, when one is active.
	Path string

	// Params are the matched route parameters.
	Params map[string]string

	// Data is a scratch bag shared by hooks within one Fire call.
	Data map[string]any
}

// Func is a lifecycle hook.
type Func func(*Context)

type entry struct {
	id uint64
	fn Func
}

// Registry holds registered hooks per event.
type Registry struct {
	mu     sync.Mutex
	hooks  map[Event][]entry
	nextID uint64
	logger *slog.Logger
}

// NewRegistry creates an empty registry. A nil logger falls back to the
// default logger.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		hooks:  make(map[Event][]entry),
		logger: logger.With("component", "hooks"),
	}
}

// On registers fn for the event and returns a removal function.
func (r *Registry) On(event Event, fn Func) func() {
	if fn == nil {
		return func() {}
	}

	r.mu.Lock()
	r.nextID++
	id := r.nextID
	r.hooks[event] = append(r.hooks[event], entry{id: id, fn: fn})
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		list := r.hooks[event]
		for i, e := range list {
			if e.id == id {
				r.hooks[event] = append(list[:i], list[i+1:]...)
				return
			}
		}
	}
}

// Count returns the number of hooks registered for the event.
func (r *Registry) Count(event Event) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.hooks[event])
}

// Fire runs every hook registered for the event, in registration order.
// The list is copied before running so a hook may register or remove
// hooks without corrupting the iteration.
func (r *Registry) Fire(event Event, ctx *Context) {
	if ctx == nil {
		ctx = &Context{}
	}
	if ctx.Data == nil {
		ctx.Data = make(map[string]any)
	}

	r.mu.Lock()
	list := make([]entry, len(r.hooks[event]))
	copy(list, r.hooks[event])
	r.mu.Unlock()

	for _, e := range list {
		r.run(event, e, ctx)
	}
}

func (r *Registry) run(event Event, e entry, ctx *Context) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("hook panicked", "event", string(event), "panic", rec)
		}
	}()
	e.fn(ctx)
}
