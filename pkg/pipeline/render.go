package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/printforge/printboard/pkg/cache"
	"github.com/printforge/printboard/pkg/config"
	"github.com/printforge/printboard/pkg/errors"
	"github.com/printforge/printboard/pkg/layout"
	"github.com/printforge/printboard/pkg/observability"
	"github.com/printforge/printboard/pkg/parts"
	"github.com/printforge/printboard/pkg/route"
	"github.com/printforge/printboard/pkg/scene"
)

// RenderWithCacheInfo renders all requested formats with per-format caching
// and reports whether every artifact came from cache.
//
// STL is the one format that can fail independently: it needs the openscad
// binary. A missing or failing renderer drops the STL artifact with a
// warning instead of failing the run, so the SCAD source always survives.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, layoutPlan *layout.Plan, routePlan *route.Plan, sw parts.Switch, ctrl parts.Controller, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	routeHash := hashJSON(routePlan)

	artifacts := make(map[string][]byte, len(opts.Formats))
	allCached := true
	if !opts.Refresh {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(routeHash, cache.ArtifactKeyOpts{Format: format})
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				allCached = false
				break
			}
			artifacts[format] = data
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	observability.Planner().OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := r.renderFormats(layoutPlan, routePlan, sw, ctrl, opts)
	observability.Planner().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(routeHash, cache.ArtifactKeyOpts{Format: format})
		_ = r.Cache.Set(ctx, key, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return rendered, false, nil
}

// Render renders all requested formats, discarding cache hit info.
func (r *Runner) Render(ctx context.Context, layoutPlan *layout.Plan, routePlan *route.Plan, sw parts.Switch, ctrl parts.Controller, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, layoutPlan, routePlan, sw, ctrl, opts)
	return artifacts, err
}

func (r *Runner) renderFormats(layoutPlan *layout.Plan, routePlan *route.Plan, sw parts.Switch, ctrl parts.Controller, opts Options) (map[string][]byte, error) {
	s := scene.Build(opts.Config.Name, layoutPlan, routePlan, sw)

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		switch format {
		case FormatSCAD:
			artifacts[format] = []byte(scene.ToSCAD(s))

		case FormatJSON:
			data, err := json.MarshalIndent(boardSummary{
				Name:   opts.Config.Name,
				Config: opts.Config,
				Layout: layoutPlan,
				Routes: routePlan,
			}, "", "  ")
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal board json")
			}
			artifacts[format] = data

		case FormatDOT:
			artifacts[format] = []byte(scene.WiringDOT(routePlan, ctrl))

		case FormatSVG:
			svg, err := scene.RenderDiagramSVG(scene.WiringDOT(routePlan, ctrl))
			if err != nil {
				return nil, err
			}
			artifacts[format] = svg

		case FormatSTL:
			// STL is best-effort: the SCAD source is always emitted, so a
			// missing or failing openscad binary only costs the binary mesh.
			stl, err := scene.RenderSTL(scene.ToSCAD(s))
			if err != nil {
				if errors.Is(err, errors.ErrCodeRendererMissing) || errors.Is(err, errors.ErrCodeRenderer) {
					opts.Logger.Warn("skipping stl output", "err", err)
					continue
				}
				return nil, err
			}
			artifacts[format] = stl
		}
	}
	return artifacts, nil
}

// boardSummary is the JSON artifact layout.
type boardSummary struct {
	Name   string                `json:"name"`
	Config config.KeyboardConfig `json:"config"`
	Layout *layout.Plan          `json:"layout"`
	Routes *route.Plan           `json:"routing"`
}
