// Package pins resolves the world-space position of every switch pin in a
// planned layout.
//
// A pin's local offset is defined relative to the switch center. Resolution
// rotates that offset by the key's net angle (in the X-Y plane; the Z
// component is unrotated) and adds it to the key center from
// layout.KeyCenter, the one authoritative corner-vs-center convention.
package pins

import (
	"github.com/printforge/printboard/pkg/geom"
	"github.com/printforge/printboard/pkg/layout"
	"github.com/printforge/printboard/pkg/parts"
)

// Pin is a resolved, routable switch pin. Key is a back-reference to the
// owning key position; Pin values are derived per request and never
// persisted.
type Pin struct {
	Key            layout.KeyPosition `json:"key" bson:"key"`
	Name           string             `json:"name" bson:"name"`
	World          geom.Point3        `json:"world" bson:"world"`
	ConnectionType string             `json:"connection_type" bson:"connection_type"`
}

// Resolve computes the world position of one pin on one key.
func Resolve(key layout.KeyPosition, spec parts.PinSpec, pitch float64) geom.Point3 {
	offset := spec.Offset.RotateDegZ(key.Angle)
	return layout.KeyCenter(key, pitch).Add(offset)
}

// FromPlan resolves every pin of every key in a plan for the given switch.
// Pins appear in plan order, each key contributing its pins in spec order.
func FromPlan(plan *layout.Plan, sw parts.Switch) []Pin {
	resolved := make([]Pin, 0, len(plan.Keys)*len(sw.Pins))
	for _, key := range plan.Keys {
		for _, spec := range sw.Pins {
			resolved = append(resolved, Pin{
				Key:            key,
				Name:           spec.Name,
				World:          Resolve(key, spec, sw.Pitch),
				ConnectionType: spec.ConnectionType,
			})
		}
	}
	return resolved
}

// ByClass groups matrix pins by their connection class (row/column). Pins
// with other connection types are ignored.
func ByClass(resolved []Pin) map[string][]Pin {
	classes := make(map[string][]Pin)
	for _, p := range resolved {
		if p.ConnectionType != parts.ConnectionMatrix {
			continue
		}
		classes[p.Name] = append(classes[p.Name], p)
	}
	return classes
}
