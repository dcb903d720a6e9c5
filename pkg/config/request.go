package config

import "github.com/printforge/printboard/pkg/geom"

// GenerateRequest is the JSON shape the HTTP layer accepts. Field names are
// camelCase to match the web UI; ToConfig translates them into a validated
// KeyboardConfig.
type GenerateRequest struct {
	Name           string `json:"name"`
	Rows           int    `json:"rows"`
	Cols           int    `json:"cols"`
	SwitchType     string `json:"switchType"`
	ControllerType string `json:"controllerType"`

	ControllerPlacementLR string `json:"controllerPlacementLR"`
	ControllerPlacementTB string `json:"controllerPlacementTB"`

	MatrixOffsetX  float64   `json:"matrixOffsetX"`
	MatrixOffsetY  float64   `json:"matrixOffsetY"`
	RowsStagger    []float64 `json:"rowsStagger"`
	ColumnsStagger []float64 `json:"columnsStagger"`
	RowsAngle      []float64 `json:"rowsAngle"`
	ColumnsAngle   []float64 `json:"columnsAngle"`
	RotationAngle  float64   `json:"rotationAngle"`
	PaddingKeys    []float64 `json:"paddingKeys"`

	// Seed selects the routing trial RNG; zero means the server default.
	Seed uint64 `json:"seed"`
}

// ToConfig builds a validated KeyboardConfig from the request. Omitted
// fields get the same defaults the original web form used.
func (r GenerateRequest) ToConfig() (KeyboardConfig, error) {
	name := r.Name
	if name == "" {
		name = "custom_keyboard"
	}
	rows, cols := r.Rows, r.Cols
	if rows == 0 {
		rows = 5
	}
	if cols == 0 {
		cols = 5
	}

	c := KeyboardConfig{
		Name:           name,
		SwitchType:     r.SwitchType,
		ControllerType: r.ControllerType,
		ControllerPlacement: [2]string{
			orDefault(r.ControllerPlacementLR, PlacementLeft),
			orDefault(r.ControllerPlacementTB, PlacementTop),
		},
		Matrices: map[string]MatrixConfig{
			MainMatrix: {
				Rows:           rows,
				Cols:           cols,
				Offset:         geom.Point2{X: r.MatrixOffsetX, Y: r.MatrixOffsetY},
				RowsStagger:    r.RowsStagger,
				ColumnsStagger: r.ColumnsStagger,
				RowsAngle:      r.RowsAngle,
				ColumnsAngle:   r.ColumnsAngle,
				RotationAngle:  r.RotationAngle,
				PaddingKeys:    r.PaddingKeys,
			},
		},
	}
	applyDefaults(&c)
	if err := c.Validate(); err != nil {
		return KeyboardConfig{}, err
	}
	return c, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
