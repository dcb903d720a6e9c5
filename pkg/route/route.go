// Package route plans the electrical wiring of a keyboard matrix.
//
// Resolved pins are grouped by connection class (row/column) and wired by a
// randomized nearest-neighbor search: several seeded trials build candidate
// route sets greedily, trials are scored (coverage first, total wire length
// as tiebreak, a small penalty per route), and the best set is kept. Route
// pairs that run too close together are then separated in Z.
//
// Routing never fails on awkward geometry: pins that cannot be reached
// within the distance threshold are reported as unconnected in the coverage
// stats, and an empty pin set yields an empty plan.
package route

import (
	"github.com/printforge/printboard/pkg/geom"
	"github.com/printforge/printboard/pkg/pins"
)

// Route is a single contiguous wire connecting same-class pins. Points are
// listed in construction order; the final point is always the synthetic
// edge-exit where the wire leaves the grid toward the controller (x=0 for
// row routes, y=0 for column routes), never a real pin.
type Route struct {
	Name       string        `json:"name" bson:"name"`
	Type       string        `json:"type" bson:"type"`
	Points     []geom.Point3 `json:"points" bson:"points"`
	Pins       []pins.Pin    `json:"pins" bson:"pins"`
	WireRadius float64       `json:"wire_radius" bson:"wire_radius"`
}

// Length returns the total polyline length of the route.
func (r Route) Length() float64 {
	total := 0.0
	for i := 1; i < len(r.Points); i++ {
		total += r.Points[i-1].Dist(r.Points[i])
	}
	return total
}

// CoverageStats summarizes how much of the pin set the planner managed to
// wire. Unconnected pins are a degradation, not an error; callers decide
// whether partial coverage is acceptable.
type CoverageStats struct {
	TotalPins           int     `json:"total_pins" bson:"total_pins"`
	ConnectedPins       int     `json:"connected_pins" bson:"connected_pins"`
	CoveragePercent     float64 `json:"coverage_percentage" bson:"coverage_percentage"`
	RowPinsTotal        int     `json:"row_pins_total" bson:"row_pins_total"`
	RowPinsConnected    int     `json:"row_pins_connected" bson:"row_pins_connected"`
	ColumnPinsTotal     int     `json:"column_pins_total" bson:"column_pins_total"`
	ColumnPinsConnected int     `json:"column_pins_connected" bson:"column_pins_connected"`
	RouteCount          int     `json:"route_count" bson:"route_count"`
}

// Plan is the complete routing result for a layout.
type Plan struct {
	Routes []Route `json:"routes" bson:"routes"`

	// ControllerConnections maps a controller pin ID to the names of the
	// routes assigned to it.
	ControllerConnections map[string][]string `json:"controller_connections" bson:"controller_connections"`

	// UnassignedRoutes counts routes left without a controller pin because
	// the usable pin list ran out.
	UnassignedRoutes int `json:"unassigned_routes" bson:"unassigned_routes"`

	Coverage CoverageStats `json:"coverage_stats" bson:"coverage_stats"`

	// ResidualCollisions counts route pairs still within the clearance
	// margin after the single resolution pass.
	ResidualCollisions int `json:"residual_collisions" bson:"residual_collisions"`
}
