package config

import (
	"strings"
	"testing"

	"github.com/printforge/printboard/pkg/errors"
)

func TestMatrixConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		m       MatrixConfig
		wantErr bool
	}{
		{"plain grid", MatrixConfig{Rows: 3, Cols: 3}, false},
		{"zero rows", MatrixConfig{Rows: 0, Cols: 3}, true},
		{"negative cols", MatrixConfig{Rows: 3, Cols: -1}, true},
		{"matching stagger", MatrixConfig{Rows: 3, Cols: 2, RowsStagger: []float64{0, 1, 2}}, false},
		{"short rows_stagger", MatrixConfig{Rows: 3, Cols: 2, RowsStagger: []float64{0, 5}}, true},
		{"long columns_stagger", MatrixConfig{Rows: 2, Cols: 2, ColumnsStagger: []float64{0, 1, 2}}, true},
		{"short rows_angle", MatrixConfig{Rows: 4, Cols: 2, RowsAngle: []float64{0}}, true},
		{"columns_angle matches", MatrixConfig{Rows: 2, Cols: 3, ColumnsAngle: []float64{0, 5, 10}}, false},
		{"padding has no length constraint", MatrixConfig{Rows: 2, Cols: 5, PaddingKeys: []float64{2}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.m.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidMatrix) {
				t.Errorf("error code = %q, want INVALID_MATRIX", errors.GetCode(err))
			}
		})
	}
}

func TestKeyboardConfigValidate(t *testing.T) {
	valid, err := Simple("test", 2, 2, "gamdias_lp", "tinys2")
	if err != nil {
		t.Fatalf("Simple: %v", err)
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	noMatrices := valid
	noMatrices.Matrices = nil
	if err := noMatrices.Validate(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("empty matrix set: code = %q, want INVALID_CONFIG", errors.GetCode(err))
	}

	badName := valid
	badName.Name = "../escape"
	if err := badName.Validate(); !errors.Is(err, errors.ErrCodeInvalidName) {
		t.Errorf("bad name: code = %q, want INVALID_NAME", errors.GetCode(err))
	}

	badPlacement := valid
	badPlacement.ControllerPlacement = [2]string{"center", "top"}
	if err := badPlacement.Validate(); err == nil {
		t.Error("bad placement should fail validation")
	}

	badAnchor := valid.WithMatrix("thumb", MatrixConfig{Rows: 1, Cols: 3, Anchor: "missing"})
	if err := badAnchor.Validate(); err == nil {
		t.Error("anchor to unknown matrix should fail validation")
	}

	selfAnchor := valid.WithMatrix("thumb", MatrixConfig{Rows: 1, Cols: 3, Anchor: "thumb"})
	if err := selfAnchor.Validate(); err == nil {
		t.Error("self anchor should fail validation")
	}

	goodAnchor := valid.WithMatrix("thumb", MatrixConfig{Rows: 1, Cols: 3, Anchor: MainMatrix})
	if err := goodAnchor.Validate(); err != nil {
		t.Errorf("valid anchor rejected: %v", err)
	}
}

func TestParsePreset(t *testing.T) {
	data := []byte(`
name = "split60"
switch_type = "gamdias_lp"
controller_type = "tinys2"

[matrices.main]
rows = 4
cols = 6
rows_stagger = [0.0, 2.5, 5.0, 2.5]

[matrices.thumb]
rows = 1
cols = 3
rotation_angle = -15.0
anchor = "main"
`)

	c, err := ParsePreset(data, "fallback")
	if err != nil {
		t.Fatalf("ParsePreset: %v", err)
	}
	if c.Name != "split60" {
		t.Errorf("Name = %q", c.Name)
	}
	main := c.Matrices["main"]
	if main.Rows != 4 || main.Cols != 6 {
		t.Errorf("main = %dx%d", main.Rows, main.Cols)
	}
	if len(main.RowsStagger) != 4 || main.RowsStagger[2] != 5.0 {
		t.Errorf("rows_stagger = %v", main.RowsStagger)
	}
	thumb := c.Matrices["thumb"]
	if thumb.Anchor != "main" || thumb.RotationAngle != -15.0 {
		t.Errorf("thumb = %+v", thumb)
	}
	// Defaults applied
	if c.ControllerPlacement != [2]string{PlacementLeft, PlacementTop} {
		t.Errorf("placement = %v", c.ControllerPlacement)
	}
}

func TestParsePresetInvalid(t *testing.T) {
	// Stagger length mismatch must be rejected at parse time.
	data := []byte(`
name = "broken"
[matrices.main]
rows = 3
cols = 3
rows_stagger = [0.0, 5.0]
`)
	if _, err := ParsePreset(data, "broken"); err == nil {
		t.Fatal("mismatched stagger should fail")
	}

	if _, err := ParsePreset([]byte("not toml at all ["), "x"); !errors.Is(err, errors.ErrCodeInvalidPreset) {
		t.Errorf("garbage preset: code = %q, want INVALID_PRESET", errors.GetCode(err))
	}
}

func TestUniqueName(t *testing.T) {
	a := UniqueName("board")
	b := UniqueName("board")
	if a == b {
		t.Error("UniqueName should not repeat")
	}
	if !strings.HasPrefix(a, "board_") {
		t.Errorf("UniqueName = %q, want base prefix", a)
	}
	if got := UniqueName(""); !strings.HasPrefix(got, "keyboard_") {
		t.Errorf("UniqueName(\"\") = %q, want keyboard prefix", got)
	}
}

func TestGenerateRequestToConfig(t *testing.T) {
	req := GenerateRequest{
		Name:           "webboard",
		Rows:           3,
		Cols:           4,
		SwitchType:     "gamdias_lp",
		ControllerType: "tinys2",
		RowsStagger:    []float64{0, 1, 2},
		RotationAngle:  10,
	}
	c, err := req.ToConfig()
	if err != nil {
		t.Fatalf("ToConfig: %v", err)
	}
	m := c.Matrices[MainMatrix]
	if m.Rows != 3 || m.Cols != 4 || m.RotationAngle != 10 {
		t.Errorf("matrix = %+v", m)
	}

	// Defaults kick in for an empty request.
	c, err = GenerateRequest{}.ToConfig()
	if err != nil {
		t.Fatalf("ToConfig with defaults: %v", err)
	}
	if c.Matrices[MainMatrix].Rows != 5 || c.SwitchType != "gamdias_lp" {
		t.Errorf("defaults = %+v", c)
	}

	// Invalid stagger propagates.
	bad := GenerateRequest{Rows: 3, Cols: 3, RowsStagger: []float64{1}}
	if _, err := bad.ToConfig(); err == nil {
		t.Error("mismatched stagger should fail")
	}
}
