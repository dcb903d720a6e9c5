package route

// Assign maps each route to a usable controller pin ID in plan order. The
// result keys are controller pin IDs; values list the assigned route names
// (one per pin at present, kept as a list for split assignments). Routes
// left over when the controller runs out of usable pins are reported in
// the second return value rather than failing the plan.
func Assign(routes []Route, usable []string) (map[string][]string, int) {
	connections := make(map[string][]string)
	unassigned := 0
	for i, r := range routes {
		if i >= len(usable) {
			unassigned++
			continue
		}
		connections[usable[i]] = append(connections[usable[i]], r.Name)
	}
	return connections, unassigned
}
