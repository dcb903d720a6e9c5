package layout

import (
	"math"
	"reflect"
	"testing"

	"github.com/printforge/printboard/pkg/config"
	"github.com/printforge/printboard/pkg/geom"
	"github.com/printforge/printboard/pkg/parts"
)

const tol = 1e-6

func testSwitch(t *testing.T) parts.Switch {
	t.Helper()
	sw, err := parts.NewSwitchRegistry().Get("gamdias_lp")
	if err != nil {
		t.Fatalf("switch lookup: %v", err)
	}
	return sw
}

func simpleConfig(t *testing.T, rows, cols int) config.KeyboardConfig {
	t.Helper()
	c, err := config.Simple("test", rows, cols, "gamdias_lp", "tinys2")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	return c
}

func TestPlanGridCount(t *testing.T) {
	p := NewPlanner(testSwitch(t))

	plan, err := p.Plan(simpleConfig(t, 4, 5))
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if len(plan.Keys) != 20 {
		t.Fatalf("key count = %d, want 20", len(plan.Keys))
	}

	// One key per (matrix, row, col).
	seen := make(map[[2]int]bool)
	for _, k := range plan.Keys {
		rc := [2]int{k.Row, k.Col}
		if seen[rc] {
			t.Errorf("duplicate key at %v", rc)
		}
		seen[rc] = true
	}
}

func TestPlanBasePositions(t *testing.T) {
	p := NewPlanner(testSwitch(t)) // pitch 18.5

	plan, err := p.Plan(simpleConfig(t, 2, 2))
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}

	want := map[[2]int][2]float64{
		{0, 0}: {0, 0},
		{0, 1}: {18.5, 0},
		{1, 0}: {0, 18.5},
		{1, 1}: {18.5, 18.5},
	}
	for _, k := range plan.Keys {
		w := want[[2]int{k.Row, k.Col}]
		if math.Abs(k.Pos.X-w[0]) > tol || math.Abs(k.Pos.Y-w[1]) > tol {
			t.Errorf("key %s at (%v, %v), want (%v, %v)", k.Label(), k.Pos.X, k.Pos.Y, w[0], w[1])
		}
	}

	// Centers follow the documented convention.
	k := plan.Keys[0]
	c := KeyCenter(k, 18.5)
	if math.Abs(c.X-9.25) > tol || math.Abs(c.Y-9.25) > tol {
		t.Errorf("KeyCenter = (%v, %v), want (9.25, 9.25)", c.X, c.Y)
	}
}

func TestPlanDeterminism(t *testing.T) {
	p := NewPlanner(testSwitch(t))
	cfg := simpleConfig(t, 3, 3)
	cfg = cfg.WithMatrix(config.MainMatrix, config.MatrixConfig{
		Rows: 3, Cols: 3,
		RowsStagger:   []float64{0, 2.5, 5},
		RotationAngle: 7,
	})

	a, err := p.Plan(cfg)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	b, err := p.Plan(cfg)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("identical configs must produce bit-identical plans")
	}
}

func TestRowsStaggerSubtractsFromX(t *testing.T) {
	p := NewPlanner(testSwitch(t))
	cfg := simpleConfig(t, 2, 1).WithMatrix(config.MainMatrix, config.MatrixConfig{
		Rows: 2, Cols: 1,
		RowsStagger: []float64{0, 5},
	})

	plan, err := p.Plan(cfg)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	for _, k := range plan.Keys {
		wantX := -5.0 * float64(k.Row)
		if math.Abs(k.Pos.X-wantX) > tol {
			t.Errorf("row %d x = %v, want %v", k.Row, k.Pos.X, wantX)
		}
	}
}

func TestColumnsStaggerSubtractsFromY(t *testing.T) {
	p := NewPlanner(testSwitch(t))
	cfg := simpleConfig(t, 1, 3).WithMatrix(config.MainMatrix, config.MatrixConfig{
		Rows: 1, Cols: 3,
		ColumnsStagger: []float64{0, 2, 4},
	})

	plan, err := p.Plan(cfg)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	for _, k := range plan.Keys {
		wantY := -2.0 * float64(k.Col)
		if math.Abs(k.Pos.Y-wantY) > tol {
			t.Errorf("col %d y = %v, want %v", k.Col, k.Pos.Y, wantY)
		}
	}
}

func TestStaggerIndexWraps(t *testing.T) {
	// A stagger array shorter than the axis repeats its pattern. The planner
	// indexes modulo the array length; length enforcement belongs to config
	// validation, which this literal deliberately bypasses.
	p := NewPlanner(testSwitch(t))
	cfg := config.KeyboardConfig{
		Name:       "wrap",
		SwitchType: "gamdias_lp",
		Matrices: map[string]config.MatrixConfig{
			config.MainMatrix: {Rows: 5, Cols: 1, RowsStagger: []float64{0, 5}},
		},
	}

	plan, err := p.Plan(cfg)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}

	want := []float64{0, -5, 0, -5, 0}
	for _, k := range plan.Keys {
		if math.Abs(k.Pos.X-want[k.Row]) > tol {
			t.Errorf("row %d x = %v, want %v", k.Row, k.Pos.X, want[k.Row])
		}
	}
}

func TestMatrixRotation(t *testing.T) {
	// Rotating a single-key matrix by 90° maps local (d, 0) to (0, d).
	p := NewPlanner(testSwitch(t))
	cfg := config.KeyboardConfig{
		Name:       "rot",
		SwitchType: "gamdias_lp",
		Matrices: map[string]config.MatrixConfig{
			config.MainMatrix: {
				Rows: 1, Cols: 2,
				RotationAngle: 90,
			},
		},
	}

	plan, err := p.Plan(cfg)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}

	var second KeyPosition
	for _, k := range plan.Keys {
		if k.Col == 1 {
			second = k
		}
	}
	// Base (18.5, 0) rotated 90° → (0, 18.5).
	if math.Abs(second.Pos.X) > tol || math.Abs(second.Pos.Y-18.5) > tol {
		t.Errorf("rotated key at (%v, %v), want (0, 18.5)", second.Pos.X, second.Pos.Y)
	}
}

func TestRotationBeforeOffset(t *testing.T) {
	p := NewPlanner(testSwitch(t))
	cfg := config.KeyboardConfig{
		Name:       "rotoff",
		SwitchType: "gamdias_lp",
		Matrices: map[string]config.MatrixConfig{
			config.MainMatrix: {
				Rows: 1, Cols: 2,
				RotationAngle: 90,
				Offset:        geom.Point2{X: 100, Y: 50},
			},
		},
	}

	plan, err := p.Plan(cfg)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	for _, k := range plan.Keys {
		if k.Col != 1 {
			continue
		}
		// (18.5, 0) rotated to (0, 18.5), then offset applied on top.
		if math.Abs(k.Pos.X-100) > tol || math.Abs(k.Pos.Y-68.5) > tol {
			t.Errorf("key at (%v, %v), want (100, 68.5)", k.Pos.X, k.Pos.Y)
		}
	}
}

func TestPerKeyAngles(t *testing.T) {
	p := NewPlanner(testSwitch(t))
	cfg := config.KeyboardConfig{
		Name:       "angles",
		SwitchType: "gamdias_lp",
		Matrices: map[string]config.MatrixConfig{
			config.MainMatrix: {
				Rows: 2, Cols: 2,
				RowsAngle:    []float64{0, 10},
				ColumnsAngle: []float64{0, 5},
			},
		},
	}

	plan, err := p.Plan(cfg)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	for _, k := range plan.Keys {
		want := 0.0
		if k.Row == 1 {
			want += 10
		}
		if k.Col == 1 {
			want += 5
		}
		if math.Abs(k.Angle-want) > tol {
			t.Errorf("key %s angle = %v, want %v", k.Label(), k.Angle, want)
		}
	}
}

func TestPaddingKeysAccumulateWithinRow(t *testing.T) {
	p := NewPlanner(testSwitch(t))
	cfg := config.KeyboardConfig{
		Name:       "padding",
		SwitchType: "gamdias_lp",
		Matrices: map[string]config.MatrixConfig{
			config.MainMatrix: {
				Rows: 2, Cols: 3,
				PaddingKeys: []float64{0, 4}, // wraps: cols 0,1,2 get 0,4,0
			},
		},
	}

	plan, err := p.Plan(cfg)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	// Col 0 at 0, col 1 at 18.5 (padding after col 0 is 0), col 2 at
	// 18.5+18.5+4 = 41. Both rows identical: padding resets per row.
	want := []float64{0, 18.5, 41}
	for _, k := range plan.Keys {
		if math.Abs(k.Pos.X-want[k.Col]) > tol {
			t.Errorf("key %s x = %v, want %v", k.Label(), k.Pos.X, want[k.Col])
		}
	}
}

func TestAnchoredMatrixStacksBelow(t *testing.T) {
	p := NewPlanner(testSwitch(t))
	cfg := simpleConfig(t, 2, 3).WithMatrix("thumb", config.MatrixConfig{
		Rows: 1, Cols: 3, Anchor: config.MainMatrix,
	})

	plan, err := p.Plan(cfg)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}

	mainSize := plan.Matrices[config.MainMatrix]
	// 2 rows at pitch 18.5: bounds span 18.5, plus one key cell.
	if math.Abs(mainSize.Height-37.0) > tol {
		t.Errorf("main height = %v, want 37", mainSize.Height)
	}

	for _, k := range plan.KeysFor("thumb") {
		if math.Abs(k.Pos.Y-mainSize.Height) > tol {
			t.Errorf("thumb key y = %v, want %v", k.Pos.Y, mainSize.Height)
		}
	}
}

func TestEmptyMatrixPlan(t *testing.T) {
	p := NewPlanner(testSwitch(t))
	plan, err := p.Plan(config.KeyboardConfig{Name: "empty", Matrices: map[string]config.MatrixConfig{}})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if len(plan.Keys) != 0 {
		t.Errorf("keys = %d, want 0", len(plan.Keys))
	}
}
