package cache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	key := NewDefaultKeyer().LayoutKey("abc", LayoutKeyOpts{SwitchType: "gamdias_lp"})
	if err := c.Set(ctx, key, []byte("payload"), 0); err != nil {
		t.Fatal(err)
	}

	data, ok, err := c.Get(ctx, key)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected hit")
	}
	if string(data) != "payload" {
		t.Errorf("got %q, want %q", data, "payload")
	}
}

func TestFileCacheMiss(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	_, ok, err := c.Get(context.Background(), "absent")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("expected miss")
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)

	_, ok, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("expected expired entry to miss")
	}
}

func TestFileCacheDelete(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("expected miss after delete")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("double delete: %v", err)
	}
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("null cache should never hit")
	}
}

func TestKeyerStability(t *testing.T) {
	k := NewDefaultKeyer()
	a := k.RouteKey("h1", RouteKeyOpts{Seed: 42, Trials: 10, ControllerType: "tinys2"})
	b := k.RouteKey("h1", RouteKeyOpts{Seed: 42, Trials: 10, ControllerType: "tinys2"})
	if a != b {
		t.Error("same inputs produced different keys")
	}
	if c := k.RouteKey("h1", RouteKeyOpts{Seed: 43, Trials: 10, ControllerType: "tinys2"}); c == a {
		t.Error("different seed produced same key")
	}
	if !strings.HasPrefix(a, "route:") {
		t.Errorf("key %q missing prefix", a)
	}
}

func TestScopedKeyer(t *testing.T) {
	k := NewScopedKeyer(nil, "board1:")
	key := k.ArtifactKey("h", ArtifactKeyOpts{Format: "scad"})
	if !strings.HasPrefix(key, "board1:artifact:") {
		t.Errorf("key %q missing scope prefix", key)
	}
}

func TestRetryWithBackoff(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), func() error {
		calls++
		return errors.New("permanent")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("non-retryable error retried %d times", calls)
	}
}
