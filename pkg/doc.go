// Package pkg provides the core libraries for printboard keyboard generation.
//
// # Overview
//
// Printboard turns a small keyboard description into a printable plate with
// routed wire channels. The pkg directory is organized into four main areas:
//
//  1. [config], [parts], [geom] - Board descriptions and physical components
//  2. [layout], [pins], [route] - Planning (key positions, pin sites, wiring)
//  3. [scene] - Artifact generation (OpenSCAD, STL, wiring diagrams)
//  4. [pipeline], [cache], [observability] - Orchestration and caching
//
// # Architecture
//
// The typical data flow:
//
//	KeyboardConfig (TOML preset or flags)
//	         ↓
//	layout.Planner   → key positions per matrix
//	         ↓
//	pins.FromPlan    → electrical pin sites
//	         ↓
//	route.Planner    → randomized wiring trials, best plan kept
//	         ↓
//	scene.Build      → plate model with cutouts and wire channels
//	         ↓
//	SCAD / STL / JSON / DOT / SVG artifacts
//
// The [pipeline] package wires these stages together with content-addressed
// caching, so repeated generations of the same board are served from disk
// or Redis instead of being replanned.
package pkg
