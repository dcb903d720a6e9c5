package scene

import (
	"bytes"
	"fmt"
)

// scadSegments is the $fn facet count for curved surfaces.
const scadSegments = 50

// ToSCAD emits the scene as OpenSCAD source. The plate is a slab with a
// pocket subtracted per switch and a channel subtracted per wire route;
// channels are chains of hulled spheres so bends stay round.
func ToSCAD(s *Scene) string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "// %s\n", s.Name)
	fmt.Fprintf(&buf, "// switch: %s\n\n", s.Switch.Name)
	fmt.Fprintf(&buf, "$fn = %d;\n\n", scadSegments)

	body := s.Switch.BodySize
	buf.WriteString("module switch_cutout() {\n")
	fmt.Fprintf(&buf, "    cube([%s, %s, %s], center=true);\n",
		num(body.X), num(body.Y), num(body.Z))
	buf.WriteString("}\n\n")

	buf.WriteString("module wire_segment(a, b, r) {\n")
	buf.WriteString("    hull() {\n")
	buf.WriteString("        translate(a) sphere(r);\n")
	buf.WriteString("        translate(b) sphere(r);\n")
	buf.WriteString("    }\n")
	buf.WriteString("}\n\n")

	buf.WriteString("difference() {\n")
	writePlate(&buf, s)
	writeCutouts(&buf, s)
	writeChannels(&buf, s)
	buf.WriteString("}\n")

	return buf.String()
}

func writePlate(buf *bytes.Buffer, s *Scene) {
	w := s.Bounds.MaxX - s.Bounds.MinX
	h := s.Bounds.MaxY - s.Bounds.MinY
	fmt.Fprintf(buf, "    translate([%s, %s, 0])\n", num(s.Bounds.MinX), num(s.Bounds.MinY))
	fmt.Fprintf(buf, "        cube([%s, %s, %s]);\n\n", num(w), num(h), num(s.PlateThickness))
}

func writeCutouts(buf *bytes.Buffer, s *Scene) {
	for _, c := range s.Cutouts {
		fmt.Fprintf(buf, "    // %s\n", c.Label)
		fmt.Fprintf(buf, "    translate([%s, %s, %s])\n",
			num(c.Center.X), num(c.Center.Y), num(s.PlateThickness/2))
		fmt.Fprintf(buf, "        rotate([0, 0, %s])\n", num(c.Angle))
		buf.WriteString("            switch_cutout();\n")
	}
	buf.WriteString("\n")
}

func writeChannels(buf *bytes.Buffer, s *Scene) {
	for _, ch := range s.Channels {
		fmt.Fprintf(buf, "    // %s\n", ch.Name)
		for i := 1; i < len(ch.Points); i++ {
			a, b := ch.Points[i-1], ch.Points[i]
			fmt.Fprintf(buf, "    wire_segment([%s, %s, %s], [%s, %s, %s], %s);\n",
				num(a.X), num(a.Y), num(a.Z),
				num(b.X), num(b.Y), num(b.Z),
				num(ch.Radius))
		}
	}
}

// num formats a coordinate without trailing zeros.
func num(v float64) string {
	s := fmt.Sprintf("%.4f", v)
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}
