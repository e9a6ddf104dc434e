package hooks

import (
	"io"
	"log/slog"
	"testing"
)

func quietRegistry() *Registry {
	return NewRegistry(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestFireRunsInRegistrationOrder(t *testing.T) {
	r := quietRegistry()

	var order []int
	r.On(BeforeRender, func(*Context) { order = append(order, 1) })
	r.On(BeforeRender, func(*Context) { order = append(order, 2) })
	r.On(BeforeRender, func(*Context) { order = append(order, 3) })

	r.Fire(BeforeRender, nil)

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("order = %v, want [1 2 3]", order)
	}
}

func TestOffRemovesHook(t *testing.T) {
	r := quietRegistry()

	calls := 0
	off := r.On(Mount, func(*Context) { calls++ })

	r.Fire(Mount, nil)
	off()
	r.Fire(Mount, nil)

	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
	if got := r.Count(Mount); got != 0 {
		t.Fatalf("Count = %d, want 0", got)
	}

	// Double removal is a no-op.
	off()
}

func TestOffRemovesOnlyItsHook(t *testing.T) {
	r := quietRegistry()

	var got []string
	offA := r.On(Destroy, func(*Context) { got = append(got, "a") })
	r.On(Destroy, func(*Context) { got = append(got, "b") })

	offA()
	r.Fire(Destroy, nil)

	if len(got) != 1 || got[0] != "b" {
		t.Fatalf("got %v, want [b]", got)
	}
}

func TestPanickingHookDoesNotStopChain(t *testing.T) {
	r := quietRegistry()

	var got []string
	r.On(AfterRoute, func(*Context) { got = append(got, "first") })
	r.On(AfterRoute, func(*Context) { panic("boom") })
	r.On(AfterRoute, func(*Context) { got = append(got, "last") })

	r.Fire(AfterRoute, nil)

	if len(got) != 2 || got[0] != "first" || got[1] != "last" {
		t.Fatalf("got %v, want [first last]", got)
	}
}

func TestContextSharedAcrossHooks(t *testing.T) {
	r := quietRegistry()

	r.On(BeforeRoute, func(ctx *Context) { ctx.Data["seen"] = ctx.Path })

	var seen any
	r.On(BeforeRoute, func(ctx *Context) { seen = ctx.Data["seen"] })

	r.Fire(BeforeRoute, &Context{Path: "/users/7"})

	if seen != "/users/7" {
		t.Fatalf("seen = %v, want /users/7", seen)
	}
}

func TestFireInitializesNilContext(t *testing.T) {
	r := quietRegistry()

	r.On(AfterRender, func(ctx *Context) {
		if ctx == nil || ctx.Data == nil {
			t.Fatal("context not initialized")
		}
	})
	r.Fire(AfterRender, nil)
}

func TestHookMayRegisterDuringFire(t *testing.T) {
	r := quietRegistry()

	nested := 0
	r.On(Mount, func(*Context) {
		r.On(Mount, func(*Context) { nested++ })
	})

	r.Fire(Mount, nil)
	if nested != 0 {
		t.Fatalf("nested hook ran during same fire")
	}

	r.Fire(Mount, nil)
	if nested != 1 {
		t.Fatalf("nested = %d, want 1", nested)
	}
}

func TestNilHookIgnored(t *testing.T) {
	r := quietRegistry()
	off := r.On(Mount, nil)
	off()
	if got := r.Count(Mount); got != 0 {
		t.Fatalf("Count = %d, want 0", got)
	}
}
