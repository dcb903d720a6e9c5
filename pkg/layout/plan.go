// Package layout plans the physical positions of keys in a keyboard matrix.
//
// The planner consumes a validated KeyboardConfig plus the switch's key
// pitch and produces a Plan of KeyPositions. Planning is deterministic:
// identical configs yield bit-identical positions.
package layout

import (
	"fmt"

	"github.com/printforge/printboard/pkg/geom"
)

// KeyPosition is the planned position of one key. The stored point is the
// corner-anchored base of the key cell; use KeyCenter for the geometric
// center. Exactly one KeyPosition exists per (matrix, row, col).
type KeyPosition struct {
	Row    int         `json:"row" bson:"row"`
	Col    int         `json:"col" bson:"col"`
	Pos    geom.Point3 `json:"pos" bson:"pos"`
	Angle  float64     `json:"angle" bson:"angle"`
	Matrix string      `json:"matrix" bson:"matrix"`
}

// Label returns a human readable key label such as "R0C3".
func (k KeyPosition) Label() string {
	return fmt.Sprintf("R%dC%d", k.Row, k.Col)
}

// KeyCenter returns the geometric center of a key cell. This is the single
// place the corner-vs-center convention lives: KeyPosition stores the
// corner-anchored base, and the center is base + pitch/2 on x and y. Both
// the pin resolver and the cavity placement go through this function so the
// two can never drift apart.
func KeyCenter(k KeyPosition, pitch float64) geom.Point3 {
	return geom.Point3{
		X: k.Pos.X + pitch/2,
		Y: k.Pos.Y + pitch/2,
		Z: k.Pos.Z,
	}
}

// Size is the planned extent of a matrix.
type Size struct {
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Plan is the complete key layout for a keyboard.
type Plan struct {
	Keys     []KeyPosition   `json:"keys" bson:"keys"`
	Matrices map[string]Size `json:"matrices" bson:"matrices"`
	Bounds   geom.Rect       `json:"bounds" bson:"bounds"`
}

// KeysFor returns the keys belonging to the named matrix, in planning order.
func (p *Plan) KeysFor(matrix string) []KeyPosition {
	var keys []KeyPosition
	for _, k := range p.Keys {
		if k.Matrix == matrix {
			keys = append(keys, k)
		}
	}
	return keys
}
