// Package geom provides the small set of 2D/3D primitives the layout and
// routing planners are built on: points, rotation about the origin, and
// distance helpers for segment proximity tests.
//
// All angles are in degrees (the configuration surface speaks degrees);
// conversion to radians happens at the trigonometry boundary only.
package geom

import "math"

// Point2 is a point in the X-Y plane.
type Point2 struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Point3 is a point in 3D space. Z grows away from the board plane.
type Point3 struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
	Z float64 `json:"z" bson:"z"`
}

// XY projects the point onto the X-Y plane.
func (p Point3) XY() Point2 {
	return Point2{X: p.X, Y: p.Y}
}

// Add returns p translated by q.
func (p Point3) Add(q Point3) Point3 {
	return Point3{X: p.X + q.X, Y: p.Y + q.Y, Z: p.Z + q.Z}
}

// RotateDeg rotates p about the origin by angle degrees (counter-clockwise).
func (p Point2) RotateDeg(angle float64) Point2 {
	if angle == 0 {
		return p
	}
	rad := angle * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return Point2{
		X: p.X*cos - p.Y*sin,
		Y: p.X*sin + p.Y*cos,
	}
}

// RotateDegZ rotates p about the Z axis through the origin by angle degrees.
// The Z component is unchanged.
func (p Point3) RotateDegZ(angle float64) Point3 {
	xy := p.XY().RotateDeg(angle)
	return Point3{X: xy.X, Y: xy.Y, Z: p.Z}
}

// Dist returns the Euclidean distance between p and q.
func (p Point2) Dist(q Point2) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Dist returns the Euclidean distance between p and q.
func (p Point3) Dist(q Point3) float64 {
	dx, dy, dz := q.X-p.X, q.Y-p.Y, q.Z-p.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
