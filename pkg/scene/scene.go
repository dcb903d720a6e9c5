// Package scene turns a planned layout and routing into a printable board
// model. The model is emitted as OpenSCAD source; solid geometry (STL) is
// produced by shelling out to the openscad binary when it is installed.
package scene

import (
	"github.com/printforge/printboard/pkg/geom"
	"github.com/printforge/printboard/pkg/layout"
	"github.com/printforge/printboard/pkg/parts"
	"github.com/printforge/printboard/pkg/route"
)

// Default board dimensions in millimeters.
const (
	DefaultPlateThickness = 5.0
	DefaultEdgeMargin     = 2.0
)

// Cutout is one switch pocket in the plate.
type Cutout struct {
	Center geom.Point3 `json:"center" bson:"center"`
	Angle  float64     `json:"angle" bson:"angle"`
	Label  string      `json:"label" bson:"label"`
}

// Channel is one wire channel carved along a route polyline.
type Channel struct {
	Name   string        `json:"name" bson:"name"`
	Points []geom.Point3 `json:"points" bson:"points"`
	Radius float64       `json:"radius" bson:"radius"`
}

// Scene is the complete printable model of one keyboard plate.
type Scene struct {
	Name           string       `json:"name" bson:"name"`
	Switch         parts.Switch `json:"switch" bson:"switch"`
	PlateThickness float64      `json:"plate_thickness" bson:"plate_thickness"`
	Bounds         geom.Rect    `json:"bounds" bson:"bounds"`
	Cutouts        []Cutout     `json:"cutouts" bson:"cutouts"`
	Channels       []Channel    `json:"channels" bson:"channels"`
}

// Build assembles the scene for a layout and its routing. The plate covers
// the key bounds plus an edge margin; every key gets a switch pocket and
// every route a wire channel.
func Build(name string, plan *layout.Plan, routes *route.Plan, sw parts.Switch) *Scene {
	s := &Scene{
		Name:           name,
		Switch:         sw,
		PlateThickness: DefaultPlateThickness,
		Bounds:         plateBounds(plan, sw.Pitch),
	}

	for _, key := range plan.Keys {
		s.Cutouts = append(s.Cutouts, Cutout{
			Center: layout.KeyCenter(key, sw.Pitch),
			Angle:  key.Angle,
			Label:  key.Label(),
		})
	}
	if routes != nil {
		for _, r := range routes.Routes {
			s.Channels = append(s.Channels, Channel{
				Name:   r.Name,
				Points: r.Points,
				Radius: r.WireRadius,
			})
		}
	}
	return s
}

func plateBounds(plan *layout.Plan, pitch float64) geom.Rect {
	b := plan.Bounds
	return geom.Rect{
		MinX: b.MinX - DefaultEdgeMargin,
		MinY: b.MinY - DefaultEdgeMargin,
		MaxX: b.MaxX + pitch + DefaultEdgeMargin,
		MaxY: b.MaxY + pitch + DefaultEdgeMargin,
	}
}
