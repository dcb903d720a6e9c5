// Package config defines the typed configuration objects a keyboard is
// planned from.
//
// A KeyboardConfig names the switch and controller types and holds one or
// more named matrices. Configurations are validated at construction time;
// a validated config is treated as immutable by every later stage.
package config

import (
	"github.com/printforge/printboard/pkg/errors"
	"github.com/printforge/printboard/pkg/geom"
)

// Controller placement values.
const (
	PlacementLeft   = "left"
	PlacementRight  = "right"
	PlacementTop    = "top"
	PlacementBottom = "bottom"
)

// MainMatrix is the name of the primary matrix. Secondary matrices may be
// anchored to it.
const MainMatrix = "main"

// MatrixConfig configures a single named matrix of keys.
//
// Stagger arrays shift keys perpendicular to the axis they index:
// RowsStagger[r] is subtracted from the x of every key in row r, and
// ColumnsStagger[c] is subtracted from the y of every key in column c.
// This asymmetry is intentional and mirrors finger ergonomics.
type MatrixConfig struct {
	Rows int `json:"rows" bson:"rows" toml:"rows"`
	Cols int `json:"cols" bson:"cols" toml:"cols"`

	Offset geom.Point2 `json:"offset" bson:"offset" toml:"offset"`

	RowsStagger    []float64 `json:"rows_stagger,omitempty" bson:"rows_stagger,omitempty" toml:"rows_stagger"`
	ColumnsStagger []float64 `json:"columns_stagger,omitempty" bson:"columns_stagger,omitempty" toml:"columns_stagger"`
	RowsAngle      []float64 `json:"rows_angle,omitempty" bson:"rows_angle,omitempty" toml:"rows_angle"`
	ColumnsAngle   []float64 `json:"columns_angle,omitempty" bson:"columns_angle,omitempty" toml:"columns_angle"`

	// RotationAngle rotates the whole matrix about the origin, in degrees.
	// Applied after stagger and before the offset.
	RotationAngle float64 `json:"rotation_angle,omitempty" bson:"rotation_angle,omitempty" toml:"rotation_angle"`

	// PaddingKeys inserts extra x spacing after each key, indexed by column
	// with wraparound. Affects subsequent keys in the same row only.
	PaddingKeys []float64 `json:"padding_keys,omitempty" bson:"padding_keys,omitempty" toml:"padding_keys"`

	// Anchor names another matrix this one stacks below: the anchor's
	// computed height is added to this matrix's vertical offset at plan time.
	Anchor string `json:"anchor,omitempty" bson:"anchor,omitempty" toml:"anchor"`
}

// Validate checks the matrix configuration. Stagger and angle arrays, when
// present, must match their axis length exactly; a mismatch is a
// configuration error, never silently truncated or wrapped.
func (m MatrixConfig) Validate() error {
	if m.Rows <= 0 || m.Cols <= 0 {
		return errors.New(errors.ErrCodeInvalidMatrix, "rows and columns must be positive integers (got %dx%d)", m.Rows, m.Cols)
	}
	if m.RowsStagger != nil && len(m.RowsStagger) != m.Rows {
		return errors.New(errors.ErrCodeInvalidMatrix, "rows_stagger must have %d elements, got %d", m.Rows, len(m.RowsStagger))
	}
	if m.ColumnsStagger != nil && len(m.ColumnsStagger) != m.Cols {
		return errors.New(errors.ErrCodeInvalidMatrix, "columns_stagger must have %d elements, got %d", m.Cols, len(m.ColumnsStagger))
	}
	if m.RowsAngle != nil && len(m.RowsAngle) != m.Rows {
		return errors.New(errors.ErrCodeInvalidMatrix, "rows_angle must have %d elements, got %d", m.Rows, len(m.RowsAngle))
	}
	if m.ColumnsAngle != nil && len(m.ColumnsAngle) != m.Cols {
		return errors.New(errors.ErrCodeInvalidMatrix, "columns_angle must have %d elements, got %d", m.Cols, len(m.ColumnsAngle))
	}
	return nil
}

// KeyboardConfig is a complete keyboard description.
type KeyboardConfig struct {
	Name           string `json:"name" bson:"name" toml:"name"`
	SwitchType     string `json:"switch_type" bson:"switch_type" toml:"switch_type"`
	ControllerType string `json:"controller_type" bson:"controller_type" toml:"controller_type"`

	// ControllerPlacement is the (left/right, top/bottom) corner the
	// controller sits in.
	ControllerPlacement [2]string `json:"controller_placement" bson:"controller_placement" toml:"controller_placement"`

	Matrices map[string]MatrixConfig `json:"matrices" bson:"matrices" toml:"matrices"`
}

// Validate checks the whole keyboard configuration, including every matrix.
func (c KeyboardConfig) Validate() error {
	if err := errors.ValidateBoardName(c.Name); err != nil {
		return err
	}
	if len(c.Matrices) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "at least one matrix must be defined")
	}

	lr, tb := c.ControllerPlacement[0], c.ControllerPlacement[1]
	if lr != "" && lr != PlacementLeft && lr != PlacementRight {
		return errors.New(errors.ErrCodeInvalidConfig, "controller placement must be left or right, got %q", lr)
	}
	if tb != "" && tb != PlacementTop && tb != PlacementBottom {
		return errors.New(errors.ErrCodeInvalidConfig, "controller placement must be top or bottom, got %q", tb)
	}

	for name, m := range c.Matrices {
		if err := m.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidMatrix, err, "matrix %q", name)
		}
		if m.Anchor != "" {
			if m.Anchor == name {
				return errors.New(errors.ErrCodeInvalidConfig, "matrix %q cannot anchor to itself", name)
			}
			if _, ok := c.Matrices[m.Anchor]; !ok {
				return errors.New(errors.ErrCodeInvalidConfig, "matrix %q anchors to unknown matrix %q", name, m.Anchor)
			}
		}
	}
	return nil
}

// KeyCount returns the total number of keys across all matrices.
func (c KeyboardConfig) KeyCount() int {
	n := 0
	for _, m := range c.Matrices {
		n += m.Rows * m.Cols
	}
	return n
}

// WithMatrix returns a copy of the config with an added or replaced matrix.
func (c KeyboardConfig) WithMatrix(name string, m MatrixConfig) KeyboardConfig {
	matrices := make(map[string]MatrixConfig, len(c.Matrices)+1)
	for k, v := range c.Matrices {
		matrices[k] = v
	}
	matrices[name] = m
	c.Matrices = matrices
	return c
}

// Simple creates a validated single-matrix keyboard config.
func Simple(name string, rows, cols int, switchType, controllerType string) (KeyboardConfig, error) {
	c := KeyboardConfig{
		Name:                name,
		SwitchType:          switchType,
		ControllerType:      controllerType,
		ControllerPlacement: [2]string{PlacementLeft, PlacementTop},
		Matrices: map[string]MatrixConfig{
			MainMatrix: {Rows: rows, Cols: cols},
		},
	}
	if err := c.Validate(); err != nil {
		return KeyboardConfig{}, err
	}
	return c, nil
}
