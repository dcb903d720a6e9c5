package scene

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/printforge/printboard/pkg/errors"
	"github.com/printforge/printboard/pkg/parts"
	"github.com/printforge/printboard/pkg/route"
)

// WiringDOT renders the routing plan as a Graphviz DOT wiring diagram:
// controller pins on the left, routes in the middle, the keys each route
// reaches on the right. The DOT string can be passed to [RenderDiagramSVG].
func WiringDOT(plan *route.Plan, ctrl parts.Controller) string {
	var buf bytes.Buffer
	buf.WriteString("digraph wiring {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	routesByName := make(map[string]route.Route, len(plan.Routes))
	for _, r := range plan.Routes {
		routesByName[r.Name] = r
		fmt.Fprintf(&buf, "  %q [fillcolor=%s];\n", r.Name, routeColor(r.Type))
	}

	buf.WriteString("\n")
	for _, pinID := range slices.Sorted(maps.Keys(plan.ControllerConnections)) {
		fmt.Fprintf(&buf, "  %q [shape=ellipse, fillcolor=lightyellow];\n", pinID)
		for _, routeName := range plan.ControllerConnections[pinID] {
			fmt.Fprintf(&buf, "  %q -> %q;\n", pinID, routeName)
		}
	}

	buf.WriteString("\n")
	for _, r := range plan.Routes {
		labels := make([]string, 0, len(r.Pins))
		for _, p := range r.Pins {
			labels = append(labels, p.Key.Label())
		}
		keysID := r.Name + "_keys"
		fmt.Fprintf(&buf, "  %q [label=\"%s\", fillcolor=lightgrey];\n", keysID, strings.Join(labels, `\n`))
		fmt.Fprintf(&buf, "  %q -> %q;\n", r.Name, keysID)
	}

	fmt.Fprintf(&buf, "\n  label=%q;\n", fmt.Sprintf("controller: %s", ctrl.Name))
	buf.WriteString("}\n")
	return buf.String()
}

func routeColor(class string) string {
	if class == parts.PinRow {
		return "lightblue"
	}
	return "lightpink"
}

// RenderDiagramSVG renders a DOT wiring diagram to SVG using Graphviz.
func RenderDiagramSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderer, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderer, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderer, err, "render diagram")
	}
	return buf.Bytes(), nil
}
