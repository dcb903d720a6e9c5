package route

import (
	"math"

	"github.com/printforge/printboard/pkg/geom"
)

// ResolveCollisions lifts later routes above earlier ones wherever their
// wire paths would intersect in the XY plane without enough vertical
// clearance. Resolution is a single ordered pass; the returned count is
// the number of crossings still closer than the required clearance after
// lifting, which callers surface as a diagnostic.
func ResolveCollisions(routes []Route, margin float64) ([]Route, int) {
	for i := 1; i < len(routes); i++ {
		for j := 0; j < i; j++ {
			if lift := requiredLift(routes[i], routes[j], margin); lift > 0 {
				raiseRoute(&routes[i], lift)
			}
		}
	}
	return routes, countResidual(routes, margin)
}

// requiredLift returns how far route a must rise so that every XY-plane
// crossing with route b keeps clearance between wire surfaces. Zero means
// the routes already clear each other.
func requiredLift(a, b Route, margin float64) float64 {
	// The boxes must over-admit: expanding each by wr*2+margin keeps every
	// pair the clearance check below could flag inside the prefilter.
	ea := routeBounds(a).Expand(a.WireRadius*2 + margin)
	eb := routeBounds(b).Expand(b.WireRadius*2 + margin)
	if !ea.Overlaps(eb) {
		return 0
	}

	clearance := a.WireRadius + b.WireRadius + margin
	lift := 0.0
	for ai := 0; ai+1 < len(a.Points); ai++ {
		sa := segment2(a.Points[ai], a.Points[ai+1])
		for bi := 0; bi+1 < len(b.Points); bi++ {
			sb := segment2(b.Points[bi], b.Points[bi+1])
			if sa.DistToSegment(sb) >= clearance {
				continue
			}
			zGap := segmentZ(a.Points[ai], a.Points[ai+1]) - segmentZ(b.Points[bi], b.Points[bi+1])
			if math.Abs(zGap) >= clearance {
				continue
			}
			need := clearance - zGap
			if need > lift {
				lift = need
			}
		}
	}
	return lift
}

// countResidual counts segment pairs across distinct routes that remain
// closer than the required clearance in both XY distance and Z separation.
func countResidual(routes []Route, margin float64) int {
	residual := 0
	for i := 1; i < len(routes); i++ {
		for j := 0; j < i; j++ {
			if requiredLift(routes[i], routes[j], margin) > 0 {
				residual++
			}
		}
	}
	return residual
}

func raiseRoute(r *Route, dz float64) {
	for i := range r.Points {
		r.Points[i].Z += dz
	}
}

func routeBounds(r Route) geom.Rect {
	b := geom.Rect{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for _, p := range r.Points {
		b.MinX = math.Min(b.MinX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
	return b
}

func segment2(a, b geom.Point3) geom.Segment2 {
	return geom.Segment2{A: a.XY(), B: b.XY()}
}

// segmentZ approximates a segment's height by its midpoint. Routes are
// lifted uniformly, so per-segment Z variation only comes from pin stems.
func segmentZ(a, b geom.Point3) float64 {
	return (a.Z + b.Z) / 2
}
