package geom

import (
	"math"
	"testing"
)

const tol = 1e-6

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= tol
}

func TestRotateDeg(t *testing.T) {
	tests := []struct {
		name  string
		p     Point2
		angle float64
		want  Point2
	}{
		{"zero angle is identity", Point2{3, 4}, 0, Point2{3, 4}},
		{"90 degrees maps x to y", Point2{5, 0}, 90, Point2{0, 5}},
		{"180 degrees negates", Point2{2, 3}, 180, Point2{-2, -3}},
		{"negative 90 maps x to -y", Point2{5, 0}, -90, Point2{0, -5}},
		{"360 is identity", Point2{1, 2}, 360, Point2{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.p.RotateDeg(tt.angle)
			if !almostEqual(got.X, tt.want.X) || !almostEqual(got.Y, tt.want.Y) {
				t.Errorf("RotateDeg(%v, %v) = %v, want %v", tt.p, tt.angle, got, tt.want)
			}
		})
	}
}

func TestRotateDegZKeepsZ(t *testing.T) {
	p := Point3{X: -2, Y: 0, Z: 2}
	got := p.RotateDegZ(90)
	if !almostEqual(got.X, 0) || !almostEqual(got.Y, -2) || !almostEqual(got.Z, 2) {
		t.Errorf("RotateDegZ(90) = %v, want (0, -2, 2)", got)
	}
}

func TestDist(t *testing.T) {
	if d := (Point2{0, 0}).Dist(Point2{3, 4}); !almostEqual(d, 5) {
		t.Errorf("Dist = %v, want 5", d)
	}
	if d := (Point3{0, 0, 0}).Dist(Point3{2, 3, 6}); !almostEqual(d, 7) {
		t.Errorf("Dist = %v, want 7", d)
	}
}

func TestSegmentDistToSegment(t *testing.T) {
	tests := []struct {
		name string
		a, b Segment2
		want float64
	}{
		{
			"crossing segments touch",
			Segment2{Point2{0, 0}, Point2{10, 0}},
			Segment2{Point2{5, -5}, Point2{5, 5}},
			0,
		},
		{
			"parallel horizontal",
			Segment2{Point2{0, 0}, Point2{10, 0}},
			Segment2{Point2{0, 3}, Point2{10, 3}},
			3,
		},
		{
			"disjoint collinear",
			Segment2{Point2{0, 0}, Point2{1, 0}},
			Segment2{Point2{3, 0}, Point2{4, 0}},
			2,
		},
		{
			"endpoint closest",
			Segment2{Point2{0, 0}, Point2{0, 10}},
			Segment2{Point2{3, 14}, Point2{10, 14}},
			5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if d := tt.a.DistToSegment(tt.b); !almostEqual(d, tt.want) {
				t.Errorf("DistToSegment = %v, want %v", d, tt.want)
			}
			// Symmetry
			if d := tt.b.DistToSegment(tt.a); !almostEqual(d, tt.want) {
				t.Errorf("DistToSegment reversed = %v, want %v", d, tt.want)
			}
		})
	}
}

func TestRectOverlaps(t *testing.T) {
	a := Rect{0, 0, 10, 10}
	if !a.Overlaps(Rect{5, 5, 15, 15}) {
		t.Error("overlapping rects reported disjoint")
	}
	if a.Overlaps(Rect{11, 11, 20, 20}) {
		t.Error("disjoint rects reported overlapping")
	}
	if !a.Expand(2).Overlaps(Rect{11, 0, 20, 10}) {
		t.Error("expanded rect should overlap")
	}
}
