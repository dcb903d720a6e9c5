package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPlannerHooks{}
	p.OnLayoutStart(ctx, "custom_keyboard", 25)
	p.OnLayoutComplete(ctx, "custom_keyboard", time.Second, nil)
	p.OnRouteStart(ctx, "custom_keyboard", 50)
	p.OnRouteComplete(ctx, "custom_keyboard", 100, time.Second, nil)
	p.OnRenderStart(ctx, []string{"scad"})
	p.OnRenderComplete(ctx, []string{"scad"}, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "layout")
	c.OnCacheMiss(ctx, "route")
	c.OnCacheSet(ctx, "artifact", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/api/generate")
	h.OnResponse(ctx, "POST", "/api/generate", 200, time.Second)
}

type testPlannerHooks struct {
	NoopPlannerHooks
	layoutStarts int
}

func (h *testPlannerHooks) OnLayoutStart(ctx context.Context, board string, keys int) {
	h.layoutStarts++
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Planner().(NoopPlannerHooks); !ok {
		t.Error("Planner() should default to NoopPlannerHooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should default to NoopCacheHooks")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should default to NoopHTTPHooks")
	}

	custom := &testPlannerHooks{}
	SetPlannerHooks(custom)
	Planner().OnLayoutStart(context.Background(), "b", 1)
	if custom.layoutStarts != 1 {
		t.Error("custom hooks not invoked")
	}

	SetPlannerHooks(nil)
	if Planner() != custom {
		t.Error("nil registration should keep existing hooks")
	}
}
