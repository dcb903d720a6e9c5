package pins

import (
	"math"
	"testing"

	"github.com/printforge/printboard/pkg/config"
	"github.com/printforge/printboard/pkg/geom"
	"github.com/printforge/printboard/pkg/layout"
	"github.com/printforge/printboard/pkg/parts"
)

const tol = 1e-6

var testSwitch = parts.Switch{
	Name:  "test_switch",
	Pitch: 18.5,
	Pins: []parts.PinSpec{
		{Name: parts.PinRow, Offset: geom.Point3{X: -2, Y: 0, Z: 2}, ConnectionType: parts.ConnectionMatrix},
		{Name: parts.PinColumn, Offset: geom.Point3{X: 2, Y: 0, Z: 2}, ConnectionType: parts.ConnectionMatrix},
	},
}

func TestResolveUnrotated(t *testing.T) {
	key := layout.KeyPosition{Row: 0, Col: 0, Matrix: "main"}
	spec := testSwitch.Pins[0]

	got := Resolve(key, spec, testSwitch.Pitch)
	// Center (9.25, 9.25, 0) plus local offset (-2, 0, 2).
	want := geom.Point3{X: 7.25, Y: 9.25, Z: 2}
	if math.Abs(got.X-want.X) > tol || math.Abs(got.Y-want.Y) > tol || math.Abs(got.Z-want.Z) > tol {
		t.Errorf("Resolve = %v, want %v", got, want)
	}
}

func TestResolveRotated(t *testing.T) {
	// A 90° key rotation maps local (-2, 0) to (0, -2); Z stays put.
	key := layout.KeyPosition{Row: 0, Col: 0, Angle: 90, Matrix: "main"}
	spec := testSwitch.Pins[0]

	got := Resolve(key, spec, testSwitch.Pitch)
	want := geom.Point3{X: 9.25, Y: 7.25, Z: 2}
	if math.Abs(got.X-want.X) > tol || math.Abs(got.Y-want.Y) > tol || math.Abs(got.Z-want.Z) > tol {
		t.Errorf("Resolve with rotation = %v, want %v", got, want)
	}
}

func TestFromPlanCounts(t *testing.T) {
	cfg, err := config.Simple("pins", 2, 2, "gamdias_lp", "tinys2")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	plan, err := layout.NewPlanner(testSwitch).Plan(cfg)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}

	resolved := FromPlan(plan, testSwitch)
	if len(resolved) != 8 {
		t.Fatalf("pin count = %d, want 8 (2 per switch)", len(resolved))
	}

	classes := ByClass(resolved)
	if len(classes[parts.PinRow]) != 4 {
		t.Errorf("row pins = %d, want 4", len(classes[parts.PinRow]))
	}
	if len(classes[parts.PinColumn]) != 4 {
		t.Errorf("column pins = %d, want 4", len(classes[parts.PinColumn]))
	}
}

func TestByClassSkipsNonMatrixPins(t *testing.T) {
	resolved := []Pin{
		{Name: parts.PinRow, ConnectionType: parts.ConnectionMatrix},
		{Name: "led", ConnectionType: "power"},
	}
	classes := ByClass(resolved)
	if len(classes) != 1 || len(classes[parts.PinRow]) != 1 {
		t.Errorf("ByClass = %v, want only the matrix row pin", classes)
	}
}
