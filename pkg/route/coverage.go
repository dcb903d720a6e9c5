package route

import (
	"github.com/printforge/printboard/pkg/parts"
	"github.com/printforge/printboard/pkg/pins"
)

// Coverage computes connection statistics for a route set against the full
// pin population it was planned from.
func Coverage(pinsByClass map[string][]pins.Pin, routes []Route) CoverageStats {
	stats := CoverageStats{RouteCount: len(routes)}
	for class, classPins := range pinsByClass {
		stats.TotalPins += len(classPins)
		switch class {
		case parts.PinRow:
			stats.RowPinsTotal += len(classPins)
		case parts.PinColumn:
			stats.ColumnPinsTotal += len(classPins)
		}
	}
	for _, r := range routes {
		stats.ConnectedPins += len(r.Pins)
		switch r.Type {
		case parts.PinRow:
			stats.RowPinsConnected += len(r.Pins)
		case parts.PinColumn:
			stats.ColumnPinsConnected += len(r.Pins)
		}
	}
	if stats.TotalPins > 0 {
		stats.CoveragePercent = 100 * float64(stats.ConnectedPins) / float64(stats.TotalPins)
	}
	return stats
}
