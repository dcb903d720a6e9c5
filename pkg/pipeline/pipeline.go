// Package pipeline provides the core generation pipeline for Printboard.
//
// The pipeline runs three stages, each cached independently:
//
//  1. Layout: compute key positions from the keyboard config
//  2. Route: wire the switch matrix and assign controller pins
//  3. Render: emit output artifacts (SCAD, JSON, DOT, SVG, STL)
//
// CLI and API share a Runner so caching and logging behave the same from
// every entry point. Stages can also be run individually:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Config:  cfg,
//	    Formats: []string{pipeline.FormatSCAD},
//	})
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/printforge/printboard/pkg/cache"
	"github.com/printforge/printboard/pkg/config"
	"github.com/printforge/printboard/pkg/errors"
	"github.com/printforge/printboard/pkg/layout"
	"github.com/printforge/printboard/pkg/route"
)

const (
	// DefaultSeed is the default routing seed.
	DefaultSeed = uint64(42)

	// DefaultTrials is the default number of routing trials per class.
	DefaultTrials = 10
)

// Output format names.
const (
	FormatSCAD = "scad"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatSTL  = "stl"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSCAD: true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatSTL:  true,
}

// Options contains all configuration for a pipeline run. The struct
// serializes for API requests; runtime fields are excluded.
type Options struct {
	// Config is the keyboard to generate. Required.
	Config config.KeyboardConfig `json:"config"`

	// Seed drives the routing trials. Zero means DefaultSeed.
	Seed uint64 `json:"seed,omitempty"`

	// Trials overrides the routing trial count. Zero means DefaultTrials.
	Trials int `json:"trials,omitempty"`

	// Formats selects the artifacts to render. Empty means SCAD only.
	Formats []string `json:"formats,omitempty"`

	// Refresh bypasses the cache and replans every stage.
	Refresh bool `json:"refresh,omitempty"`

	// Logger is the stage logger. Defaults to a discard logger.
	Logger *log.Logger `json:"-"`

	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the computed key layout.
	Layout *layout.Plan

	// LayoutHash is the content hash of the layout, used downstream as a
	// cache key component and returned to API clients.
	LayoutHash string

	// Routes is the wiring plan.
	Routes *route.Plan

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	KeyCount   int
	PinCount   int
	RouteCount int
	LayoutTime time.Duration
	RouteTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool
	RouteHit  bool
	RenderHit bool
}

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: scad, json, dot, svg, stl)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks the config and applies defaults. Idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.Config.Validate(); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Trials == 0 {
		o.Trials = DefaultTrials
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSCAD}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// RouteKeyOpts returns cache key options for the routing stage.
func (o *Options) RouteKeyOpts() cache.RouteKeyOpts {
	return cache.RouteKeyOpts{
		Seed:           o.Seed,
		Trials:         o.Trials,
		ControllerType: o.Config.ControllerType,
	}
}

// LayoutKeyOpts returns cache key options for the layout stage.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		SwitchType: o.Config.SwitchType,
	}
}
