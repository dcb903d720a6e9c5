package layout

import (
	"math"
	"sort"

	"github.com/printforge/printboard/pkg/config"
	"github.com/printforge/printboard/pkg/errors"
	"github.com/printforge/printboard/pkg/geom"
	"github.com/printforge/printboard/pkg/parts"
)

// Planner computes key positions for a switch type. The planner assumes its
// input config has already passed Validate; stagger and angle arrays are
// indexed with wraparound so shorter-than-axis arrays repeat their pattern.
type Planner struct {
	pitch float64
}

// NewPlanner creates a planner for the given switch.
func NewPlanner(sw parts.Switch) *Planner {
	return &Planner{pitch: sw.Pitch}
}

// Pitch returns the key spacing the planner positions keys on.
func (p *Planner) Pitch() float64 {
	return p.pitch
}

// Plan computes the full layout for a keyboard config. Matrices are planned
// independently and concatenated; a matrix with an Anchor gets the anchor
// matrix's height added to its vertical offset, stacking it below.
func (p *Planner) Plan(cfg config.KeyboardConfig) (*Plan, error) {
	plan := &Plan{Matrices: make(map[string]Size, len(cfg.Matrices))}

	heights := make(map[string]float64, len(cfg.Matrices))
	for _, name := range planOrder(cfg) {
		m := cfg.Matrices[name]

		extraY := 0.0
		if m.Anchor != "" {
			h, ok := heights[m.Anchor]
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidConfig, "matrix %q anchor cycle through %q", name, m.Anchor)
			}
			extraY = h
		}

		keys := p.planMatrix(m, name, extraY)
		plan.Keys = append(plan.Keys, keys...)

		size := matrixSize(keys, p.pitch)
		plan.Matrices[name] = size
		heights[name] = size.Height
	}

	plan.Bounds = totalBounds(plan.Keys)
	return plan, nil
}

// planMatrix positions every key of a single matrix, row-major.
func (p *Planner) planMatrix(m config.MatrixConfig, name string, extraY float64) []KeyPosition {
	keys := make([]KeyPosition, 0, m.Rows*m.Cols)

	for row := 0; row < m.Rows; row++ {
		// Padding accumulates within a row and resets at the next one.
		baseX := 0.0
		for col := 0; col < m.Cols; col++ {
			x := baseX
			y := float64(row) * p.pitch

			// Stagger shifts perpendicular to the axis it indexes.
			if len(m.RowsStagger) > 0 {
				x -= m.RowsStagger[row%len(m.RowsStagger)]
			}
			if len(m.ColumnsStagger) > 0 {
				y -= m.ColumnsStagger[col%len(m.ColumnsStagger)]
			}

			angle := 0.0
			if len(m.RowsAngle) > 0 {
				angle += m.RowsAngle[row%len(m.RowsAngle)]
			}
			if len(m.ColumnsAngle) > 0 {
				angle += m.ColumnsAngle[col%len(m.ColumnsAngle)]
			}

			// Whole-matrix rotation happens after stagger, before offset.
			pt := geom.Point2{X: x, Y: y}
			if m.RotationAngle != 0 {
				pt = pt.RotateDeg(m.RotationAngle)
			}

			keys = append(keys, KeyPosition{
				Row:    row,
				Col:    col,
				Pos:    geom.Point3{X: pt.X + m.Offset.X, Y: pt.Y + m.Offset.Y + extraY},
				Angle:  angle,
				Matrix: name,
			})

			baseX += p.pitch
			if len(m.PaddingKeys) > 0 {
				baseX += m.PaddingKeys[col%len(m.PaddingKeys)]
			}
		}
	}
	return keys
}

// planOrder returns matrix names with anchors planned after the matrices
// they stack on. Unanchored matrices come first, "main" before the rest.
func planOrder(cfg config.KeyboardConfig) []string {
	names := make([]string, 0, len(cfg.Matrices))
	for name := range cfg.Matrices {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if names[i] == config.MainMatrix {
			return true
		}
		if names[j] == config.MainMatrix {
			return false
		}
		return names[i] < names[j]
	})

	// Stable pass moving anchored matrices behind their anchors.
	ordered := make([]string, 0, len(names))
	done := make(map[string]bool, len(names))
	for len(ordered) < len(names) {
		progressed := false
		for _, name := range names {
			if done[name] {
				continue
			}
			anchor := cfg.Matrices[name].Anchor
			if anchor == "" || done[anchor] {
				ordered = append(ordered, name)
				done[name] = true
				progressed = true
			}
		}
		if !progressed {
			// Anchor cycle; append the rest so Plan can report it.
			for _, name := range names {
				if !done[name] {
					ordered = append(ordered, name)
					done[name] = true
				}
			}
		}
	}
	return ordered
}

func matrixSize(keys []KeyPosition, pitch float64) Size {
	if len(keys) == 0 {
		return Size{}
	}
	b := totalBounds(keys)
	return Size{
		Width:  b.MaxX - b.MinX + pitch,
		Height: b.MaxY - b.MinY + pitch,
	}
}

func totalBounds(keys []KeyPosition) geom.Rect {
	if len(keys) == 0 {
		return geom.Rect{}
	}
	b := geom.Rect{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for _, k := range keys {
		b.MinX = math.Min(b.MinX, k.Pos.X)
		b.MinY = math.Min(b.MinY, k.Pos.Y)
		b.MaxX = math.Max(b.MaxX, k.Pos.X)
		b.MaxY = math.Max(b.MaxY, k.Pos.Y)
	}
	return b
}
