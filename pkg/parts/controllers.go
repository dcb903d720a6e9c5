package parts

import (
	"sort"

	"github.com/printforge/printboard/pkg/errors"
	"github.com/printforge/printboard/pkg/geom"
)

// ControllerPin is a single header pin on a controller board.
type ControllerPin struct {
	ID       string      `json:"id" bson:"id"`
	Label    string      `json:"label" bson:"label"`
	Usable   bool        `json:"usable" bson:"usable"`
	Position geom.Point2 `json:"position" bson:"position"`
}

// Controller describes a microcontroller board: its footprint and the pins
// available for matrix wiring.
type Controller struct {
	Name      string      `json:"name" bson:"name"`
	Footprint geom.Point2 `json:"footprint" bson:"footprint"`
	PinPitch  float64     `json:"pin_pitch" bson:"pin_pitch"`
	// Pins maps a header side ("left", "right") to its pin row.
	Pins map[string][]ControllerPin `json:"pins" bson:"pins"`
}

// UsablePins returns the IDs of pins available for matrix wiring, left side
// first, in header order.
func (c Controller) UsablePins() []string {
	sides := make([]string, 0, len(c.Pins))
	for side := range c.Pins {
		sides = append(sides, side)
	}
	sort.Strings(sides)

	var usable []string
	for _, side := range sides {
		for _, pin := range c.Pins[side] {
			if pin.Usable {
				usable = append(usable, pin.ID)
			}
		}
	}
	return usable
}

// ControllerRegistry manages the available controller types.
type ControllerRegistry struct {
	controllers map[string]Controller
}

// NewControllerRegistry creates a registry pre-populated with the built-in
// controller types.
func NewControllerRegistry() *ControllerRegistry {
	r := &ControllerRegistry{controllers: make(map[string]Controller)}
	for _, c := range builtinControllers {
		r.Register(c)
	}
	return r
}

// Register adds or replaces a controller type.
func (r *ControllerRegistry) Register(c Controller) {
	r.controllers[c.Name] = c
}

// Get returns the controller with the given type name.
func (r *ControllerRegistry) Get(name string) (Controller, error) {
	c, ok := r.controllers[name]
	if !ok {
		return Controller{}, errors.New(errors.ErrCodeUnknownController, "unknown controller type: %q", name)
	}
	return c, nil
}

// List returns the registered controller type names, sorted.
func (r *ControllerRegistry) List() []string {
	names := make([]string, 0, len(r.controllers))
	for name := range r.controllers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func headerSide(x float64, pitch float64, labels []string, usable []bool) []ControllerPin {
	pins := make([]ControllerPin, len(labels))
	for i, label := range labels {
		pins[i] = ControllerPin{
			ID:       label,
			Label:    label,
			Usable:   usable[i],
			Position: geom.Point2{X: x, Y: float64(i) * pitch},
		}
	}
	return pins
}

var builtinControllers = []Controller{
	{
		Name:      "tinys2",
		Footprint: geom.Point2{X: 16.0, Y: 27.94},
		PinPitch:  2.54,
		Pins: map[string][]ControllerPin{
			"left": headerSide(0, 2.54,
				[]string{"35", "37", "36", "14", "9", "8", "38", "33", "RST", "GND", "43", "44"},
				[]bool{true, true, true, true, true, true, true, true, false, false, true, true}),
			"right": headerSide(16, 2.54,
				[]string{"BAT", "GND", "5V", "3V3", "4", "5", "6", "7", "17", "18", "0"},
				[]bool{false, false, false, false, true, true, true, true, true, true, true}),
		},
	},
	{
		Name:      "arduino_pro_micro",
		Footprint: geom.Point2{X: 18.0, Y: 33.0},
		PinPitch:  2.54,
		Pins: map[string][]ControllerPin{
			"left": headerSide(0, 2.54,
				[]string{"TX0", "RX1", "GND", "GND2", "2", "3", "4", "5", "6", "7", "8", "9"},
				[]bool{false, false, false, false, true, true, true, true, true, true, true, true}),
			"right": headerSide(18, 2.54,
				[]string{"RAW", "GND3", "RST", "VCC", "A3", "A2", "A1", "A0", "15", "14", "16", "10"},
				[]bool{false, false, false, false, true, true, true, true, true, true, true, true}),
		},
	},
}
