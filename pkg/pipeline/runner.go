package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/printforge/printboard/pkg/cache"
	"github.com/printforge/printboard/pkg/errors"
	"github.com/printforge/printboard/pkg/layout"
	"github.com/printforge/printboard/pkg/observability"
	"github.com/printforge/printboard/pkg/parts"
	"github.com/printforge/printboard/pkg/pins"
	"github.com/printforge/printboard/pkg/route"
)

// Runner executes the pipeline with caching. It is stateless apart from the
// cache, logger and part registries, so one Runner serves concurrent
// requests.
type Runner struct {
	Cache       cache.Cache
	Keyer       cache.Keyer
	Logger      *log.Logger
	Switches    *parts.SwitchRegistry
	Controllers *parts.ControllerRegistry
}

// NewRunner creates a runner. Nil cache disables caching, nil keyer uses
// the default keyer, nil logger uses the package default.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:       c,
		Keyer:       keyer,
		Logger:      logger,
		Switches:    parts.NewSwitchRegistry(),
		Controllers: parts.NewControllerRegistry(),
	}
}

// Execute runs the complete layout → route → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	sw, err := r.Switches.Get(opts.Config.SwitchType)
	if err != nil {
		return nil, err
	}
	ctrl, err := r.Controllers.Get(opts.Config.ControllerType)
	if err != nil {
		return nil, err
	}

	result := &Result{Artifacts: make(map[string][]byte)}

	layoutStart := time.Now()
	layoutPlan, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, wrapStage("layout", err)
	}
	result.Layout = layoutPlan
	result.LayoutHash = hashJSON(layoutPlan)
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.KeyCount = len(layoutPlan.Keys)
	result.CacheInfo.LayoutHit = layoutHit

	opts.Logger.Info("computed layout",
		"board", opts.Config.Name,
		"keys", len(layoutPlan.Keys),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	routeStart := time.Now()
	routePlan, routeHit, err := r.PlanRoutesWithCacheInfo(ctx, layoutPlan, sw, ctrl, opts)
	if err != nil {
		return nil, wrapStage("route", err)
	}
	result.Routes = routePlan
	result.Stats.RouteTime = time.Since(routeStart)
	result.Stats.PinCount = routePlan.Coverage.TotalPins
	result.Stats.RouteCount = len(routePlan.Routes)
	result.CacheInfo.RouteHit = routeHit

	opts.Logger.Info("planned routes",
		"board", opts.Config.Name,
		"routes", len(routePlan.Routes),
		"coverage", routePlan.Coverage.CoveragePercent,
		"cached", routeHit,
		"duration", result.Stats.RouteTime)

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, layoutPlan, routePlan, sw, ctrl, opts)
	if err != nil {
		return nil, wrapStage("render", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered artifacts",
		"board", opts.Config.Name,
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ComputeLayoutWithCacheInfo computes the key layout with caching and
// reports whether the result came from cache.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, opts Options) (*layout.Plan, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	sw, err := r.Switches.Get(opts.Config.SwitchType)
	if err != nil {
		return nil, false, err
	}

	configHash := hashJSON(opts.Config)
	cacheKey := r.Keyer.LayoutKey(configHash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached layout.Plan
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return &cached, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	observability.Planner().OnLayoutStart(ctx, opts.Config.Name, opts.Config.KeyCount())
	start := time.Now()
	plan, err := layout.NewPlanner(sw).Plan(opts.Config)
	observability.Planner().OnLayoutComplete(ctx, opts.Config.Name, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(plan); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}
	return plan, false, nil
}

// ComputeLayout computes the key layout, discarding cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, opts Options) (*layout.Plan, error) {
	plan, _, err := r.ComputeLayoutWithCacheInfo(ctx, opts)
	return plan, err
}

// PlanRoutesWithCacheInfo plans the wiring with caching and reports whether
// the result came from cache.
func (r *Runner) PlanRoutesWithCacheInfo(ctx context.Context, layoutPlan *layout.Plan, sw parts.Switch, ctrl parts.Controller, opts Options) (*route.Plan, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	layoutHash := hashJSON(layoutPlan)
	cacheKey := r.Keyer.RouteKey(layoutHash, opts.RouteKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached route.Plan
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "route")
				return &cached, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "route")
	}

	byClass := pins.ByClass(pins.FromPlan(layoutPlan, sw))
	pinCount := 0
	for _, classPins := range byClass {
		pinCount += len(classPins)
	}

	observability.Planner().OnRouteStart(ctx, opts.Config.Name, pinCount)
	start := time.Now()
	routeOpts := route.DefaultOptions()
	routeOpts.Seed = opts.Seed
	routeOpts.Trials = opts.Trials
	plan := route.NewPlanner(sw.Pitch, routeOpts).Plan(byClass, ctrl)
	observability.Planner().OnRouteComplete(ctx, opts.Config.Name,
		plan.Coverage.CoveragePercent, time.Since(start), nil)

	if data, err := json.Marshal(plan); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLRoute)
		observability.Cache().OnCacheSet(ctx, "route", len(data))
	}
	return plan, false, nil
}

// PlanRoutes plans the wiring, discarding cache hit info.
func (r *Runner) PlanRoutes(ctx context.Context, layoutPlan *layout.Plan, sw parts.Switch, ctrl parts.Controller, opts Options) (*route.Plan, error) {
	plan, _, err := r.PlanRoutesWithCacheInfo(ctx, layoutPlan, sw, ctrl, opts)
	return plan, err
}

// Close releases the runner's cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// hashJSON hashes a value's JSON encoding for use in cache keys.
func hashJSON(v interface{}) string {
	data, _ := json.Marshal(v)
	return cache.Hash(data)
}

// wrapStage tags an error with the pipeline stage it came from, keeping
// the original code so API handlers can still map it to a status.
func wrapStage(stage string, err error) error {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	return errors.Wrap(code, err, "%s", stage)
}
