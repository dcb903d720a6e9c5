package geom

import "math"

// Segment2 is a line segment in the X-Y plane.
type Segment2 struct {
	A, B Point2
}

// Rect is an axis-aligned bounding box in the X-Y plane.
type Rect struct {
	MinX float64 `json:"min_x" bson:"min_x"`
	MinY float64 `json:"min_y" bson:"min_y"`
	MaxX float64 `json:"max_x" bson:"max_x"`
	MaxY float64 `json:"max_y" bson:"max_y"`
}

// Bounds returns the axis-aligned bounding box of the segment.
func (s Segment2) Bounds() Rect {
	return Rect{
		MinX: math.Min(s.A.X, s.B.X),
		MinY: math.Min(s.A.Y, s.B.Y),
		MaxX: math.Max(s.A.X, s.B.X),
		MaxY: math.Max(s.A.Y, s.B.Y),
	}
}

// Expand grows the box by m on every side.
func (r Rect) Expand(m float64) Rect {
	return Rect{MinX: r.MinX - m, MinY: r.MinY - m, MaxX: r.MaxX + m, MaxY: r.MaxY + m}
}

// Overlaps reports whether two boxes intersect.
func (r Rect) Overlaps(o Rect) bool {
	return r.MinX <= o.MaxX && o.MinX <= r.MaxX && r.MinY <= o.MaxY && o.MinY <= r.MaxY
}

// Union returns the smallest box containing both r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		MinX: math.Min(r.MinX, o.MinX),
		MinY: math.Min(r.MinY, o.MinY),
		MaxX: math.Max(r.MaxX, o.MaxX),
		MaxY: math.Max(r.MaxY, o.MaxY),
	}
}

// DistToPoint returns the shortest distance from p to the segment.
func (s Segment2) DistToPoint(p Point2) float64 {
	dx, dy := s.B.X-s.A.X, s.B.Y-s.A.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return s.A.Dist(p)
	}
	t := ((p.X-s.A.X)*dx + (p.Y-s.A.Y)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return p.Dist(Point2{X: s.A.X + t*dx, Y: s.A.Y + t*dy})
}

// DistToSegment returns the shortest distance between two segments.
// Intersecting segments have distance zero.
func (s Segment2) DistToSegment(o Segment2) float64 {
	if s.intersects(o) {
		return 0
	}
	return math.Min(
		math.Min(s.DistToPoint(o.A), s.DistToPoint(o.B)),
		math.Min(o.DistToPoint(s.A), o.DistToPoint(s.B)),
	)
}

// intersects reports whether the two segments cross, using the standard
// orientation test. Collinear overlaps are caught by the on-segment checks.
func (s Segment2) intersects(o Segment2) bool {
	d1 := orient(o.A, o.B, s.A)
	d2 := orient(o.A, o.B, s.B)
	d3 := orient(s.A, s.B, o.A)
	d4 := orient(s.A, s.B, o.B)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	return (d1 == 0 && onSegment(o.A, o.B, s.A)) ||
		(d2 == 0 && onSegment(o.A, o.B, s.B)) ||
		(d3 == 0 && onSegment(s.A, s.B, o.A)) ||
		(d4 == 0 && onSegment(s.A, s.B, o.B))
}

func orient(a, b, c Point2) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func onSegment(a, b, p Point2) bool {
	return math.Min(a.X, b.X) <= p.X && p.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= p.Y && p.Y <= math.Max(a.Y, b.Y)
}
