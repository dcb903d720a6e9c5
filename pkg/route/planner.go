package route

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/printforge/printboard/pkg/geom"
	"github.com/printforge/printboard/pkg/parts"
	"github.com/printforge/printboard/pkg/pins"
)

// Options tunes the routing search. The scoring weights are arbitrary
// tuning values; only their relative ordering (coverage dominates length,
// length dominates route count) is load-bearing.
type Options struct {
	// Trials is the number of randomized construction attempts per class.
	Trials int

	// Seed drives the trial RNG. Equal seeds reproduce identical plans;
	// re-running with a different seed is the only retry lever.
	Seed uint64

	// SameClassPenalty is added to a candidate's distance when it sits in a
	// different physical row (for row routes) or column (for column
	// routes). It exceeds any realistic threshold, so routes finish their
	// own row or column before terminating.
	SameClassPenalty float64

	// ThresholdFactor terminates a route when the best penalized candidate
	// cost exceeds ThresholdFactor * pitch.
	ThresholdFactor float64

	// Scoring weights, lower scores win.
	UnconnectedWeight float64
	RouteCountWeight  float64

	// WireRadius is the physical wire radius used for collision clearance
	// and tube extrusion downstream.
	WireRadius float64

	// CollisionMargin is the extra clearance kept between wire surfaces.
	CollisionMargin float64
}

// DefaultOptions returns the standard routing parameters.
func DefaultOptions() Options {
	return Options{
		Trials:            10,
		Seed:              42,
		SameClassPenalty:  1000.0,
		ThresholdFactor:   2.0,
		UnconnectedWeight: 1000.0,
		RouteCountWeight:  10.0,
		WireRadius:        0.85,
		CollisionMargin:   0.2,
	}
}

// Planner wires resolved pins into routes for one switch pitch.
type Planner struct {
	pitch float64
	opts  Options
}

// NewPlanner creates a route planner. Options are taken as given so an
// explicit zero (no collision margin, no same-class penalty) stays zero;
// callers start from DefaultOptions and override what they tune. Only a
// non-positive trial count falls back, since zero trials plans nothing.
func NewPlanner(pitch float64, opts Options) *Planner {
	if opts.Trials <= 0 {
		opts.Trials = DefaultOptions().Trials
	}
	return &Planner{pitch: pitch, opts: opts}
}

// Plan routes every connection class and assembles the full plan. Classes
// are processed in sorted order so a fixed seed reproduces the same plan.
func (p *Planner) Plan(pinsByClass map[string][]pins.Pin, ctrl parts.Controller) *Plan {
	rng := rand.New(rand.NewPCG(p.opts.Seed, p.opts.Seed^0xdeadbeef))

	classes := make([]string, 0, len(pinsByClass))
	for class := range pinsByClass {
		classes = append(classes, class)
	}
	sort.Strings(classes)

	var routes []Route
	for _, class := range classes {
		routes = append(routes, p.planClass(class, pinsByClass[class], rng)...)
	}
	for i := range routes {
		routes[i].Name = fmt.Sprintf("%s_%d", routes[i].Type, i)
	}

	routes, residual := ResolveCollisions(routes, p.opts.CollisionMargin)

	connections, unassigned := Assign(routes, ctrl.UsablePins())

	return &Plan{
		Routes:                routes,
		ControllerConnections: connections,
		UnassignedRoutes:      unassigned,
		Coverage:              Coverage(pinsByClass, routes),
		ResidualCollisions:    residual,
	}
}

// planClass runs the trial search for a single connection class and returns
// the best-scoring route set.
func (p *Planner) planClass(class string, classPins []pins.Pin, rng *rand.Rand) []Route {
	if len(classPins) == 0 {
		return nil
	}

	var best []Route
	bestScore := 0.0
	for trial := 0; trial < p.opts.Trials; trial++ {
		routes := p.buildTrial(class, classPins, rng)
		score := p.score(routes, len(classPins))
		if trial == 0 || score < bestScore {
			best = routes
			bestScore = score
		}
	}
	return best
}

// buildTrial greedily constructs one candidate route set. Route starts are
// picked uniformly at random; extension is nearest-neighbor with a penalty
// for leaving the current physical row or column. A start that finds no
// neighbor within the threshold stays unconnected.
func (p *Planner) buildTrial(class string, classPins []pins.Pin, rng *rand.Rand) []Route {
	threshold := p.opts.ThresholdFactor * p.pitch

	working := make([]pins.Pin, len(classPins))
	copy(working, classPins)

	var routes []Route
	for len(working) > 0 {
		idx := rng.IntN(len(working))
		head := working[idx]
		working = append(working[:idx], working[idx+1:]...)

		connected := []pins.Pin{head}
		for len(working) > 0 {
			bestIdx := -1
			bestCost := 0.0
			for i, cand := range working {
				cost := head.World.Dist(cand.World) + p.classPenalty(class, head, cand)
				if bestIdx < 0 || cost < bestCost {
					bestIdx = i
					bestCost = cost
				}
			}
			if bestCost > threshold {
				break
			}
			head = working[bestIdx]
			working = append(working[:bestIdx], working[bestIdx+1:]...)
			connected = append(connected, head)
		}

		// A lone pin is not a route; it is recorded as unconnected through
		// its absence from every route's pin list.
		if len(connected) < 2 {
			continue
		}

		points := make([]geom.Point3, 0, len(connected)+1)
		for _, pin := range connected {
			points = append(points, pin.World)
		}
		points = append(points, edgeExit(class, connected[len(connected)-1].World))

		routes = append(routes, Route{
			Type:       class,
			Points:     points,
			Pins:       connected,
			WireRadius: p.opts.WireRadius,
		})
	}
	return routes
}

// classPenalty biases extension toward pins in the same physical row or
// column as the current route head.
func (p *Planner) classPenalty(class string, head, cand pins.Pin) float64 {
	if head.Key.Matrix == cand.Key.Matrix {
		switch class {
		case parts.PinRow:
			if head.Key.Row == cand.Key.Row {
				return 0
			}
		case parts.PinColumn:
			if head.Key.Col == cand.Key.Col {
				return 0
			}
		}
	}
	return p.opts.SameClassPenalty
}

// score ranks a trial. Unconnected pins dominate, total wire length breaks
// ties, and a small per-route penalty favors fewer, longer routes.
func (p *Planner) score(routes []Route, totalPins int) float64 {
	connected := 0
	length := 0.0
	for _, r := range routes {
		connected += len(r.Pins)
		length += r.Length()
	}
	unconnected := totalPins - connected
	return float64(unconnected)*p.opts.UnconnectedWeight + length + float64(len(routes))*p.opts.RouteCountWeight
}

// edgeExit projects the last connected pin to the matrix routing edge:
// x=0 for row routes, y=0 for column routes.
func edgeExit(class string, last geom.Point3) geom.Point3 {
	if class == parts.PinRow {
		return geom.Point3{X: 0, Y: last.Y, Z: last.Z}
	}
	return geom.Point3{X: last.X, Y: 0, Z: last.Z}
}
