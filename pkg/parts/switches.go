// Package parts holds the registries of physical components a keyboard is
// built from: key switches (with their pin offsets and key pitch) and
// microcontrollers (with their usable pin lists).
//
// Registries are keyed by type name. Lookups for unknown names fail with a
// configuration error so that bad requests are rejected before any planning
// starts.
package parts

import (
	"sort"

	"github.com/printforge/printboard/pkg/errors"
	"github.com/printforge/printboard/pkg/geom"
)

// Pin connection classes. Every key switch joins exactly one row net and
// one column net.
const (
	PinRow    = "row"
	PinColumn = "column"
)

// ConnectionMatrix marks pins wired into the row/column matrix.
const ConnectionMatrix = "matrix"

// PinSpec describes one electrical pin of a switch, as an offset from the
// switch center in the switch's local frame.
type PinSpec struct {
	Name           string      `json:"name" bson:"name"`
	Offset         geom.Point3 `json:"offset" bson:"offset"`
	ConnectionType string      `json:"connection_type" bson:"connection_type"`
}

// Switch describes a switch type: its body, key pitch and pins.
type Switch struct {
	Name     string      `json:"name" bson:"name"`
	BodySize geom.Point3 `json:"body_size" bson:"body_size"`
	// Pitch is the key spacing in millimeters; keys are assumed square.
	Pitch float64   `json:"pitch" bson:"pitch"`
	Pins  []PinSpec `json:"pins" bson:"pins"`
}

// Pin returns the pin spec with the given name, or false if the switch has
// no such pin.
func (s Switch) Pin(name string) (PinSpec, bool) {
	for _, p := range s.Pins {
		if p.Name == name {
			return p, true
		}
	}
	return PinSpec{}, false
}

// SwitchRegistry manages the available switch types.
type SwitchRegistry struct {
	switches map[string]Switch
}

// NewSwitchRegistry creates a registry pre-populated with the built-in
// switch types.
func NewSwitchRegistry() *SwitchRegistry {
	r := &SwitchRegistry{switches: make(map[string]Switch)}
	for _, s := range builtinSwitches {
		r.Register(s)
	}
	return r
}

// Register adds or replaces a switch type.
func (r *SwitchRegistry) Register(s Switch) {
	r.switches[s.Name] = s
}

// Get returns the switch with the given type name.
func (r *SwitchRegistry) Get(name string) (Switch, error) {
	s, ok := r.switches[name]
	if !ok {
		return Switch{}, errors.New(errors.ErrCodeUnknownSwitch, "unknown switch type: %q", name)
	}
	return s, nil
}

// List returns the registered switch type names, sorted.
func (r *SwitchRegistry) List() []string {
	names := make([]string, 0, len(r.switches))
	for name := range r.switches {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var builtinSwitches = []Switch{
	{
		Name:     "gamdias_lp",
		BodySize: geom.Point3{X: 14.5, Y: 14.5, Z: 8.0},
		Pitch:    18.5,
		Pins: []PinSpec{
			{Name: PinColumn, Offset: geom.Point3{X: -4.7, Y: -5.0, Z: 2.6}, ConnectionType: ConnectionMatrix},
			{Name: PinRow, Offset: geom.Point3{X: 5.0, Y: 8.0, Z: 3.2}, ConnectionType: ConnectionMatrix},
		},
	},
	{
		Name:     "mx_style",
		BodySize: geom.Point3{X: 14.0, Y: 14.0, Z: 5.0},
		Pitch:    19.05,
		Pins: []PinSpec{
			{Name: PinColumn, Offset: geom.Point3{X: -3.81, Y: -2.54, Z: 2.0}, ConnectionType: ConnectionMatrix},
			{Name: PinRow, Offset: geom.Point3{X: 2.54, Y: 5.08, Z: 2.0}, ConnectionType: ConnectionMatrix},
		},
	},
	{
		Name:     "low_profile",
		BodySize: geom.Point3{X: 12.5, Y: 12.5, Z: 3.5},
		Pitch:    18.5,
		Pins: []PinSpec{
			{Name: PinColumn, Offset: geom.Point3{X: -3.81, Y: -2.54, Z: 1.5}, ConnectionType: ConnectionMatrix},
			{Name: PinRow, Offset: geom.Point3{X: 2.54, Y: 5.08, Z: 1.5}, ConnectionType: ConnectionMatrix},
		},
	},
}
