package cache

// Keyer generates cache keys for the planning stages. Implementations must
// produce stable keys: the same inputs always map to the same key.
type Keyer interface {
	// LayoutKey generates a key for a computed layout plan.
	LayoutKey(configHash string, opts LayoutKeyOpts) string

	// RouteKey generates a key for a routing plan on top of a layout.
	RouteKey(layoutHash string, opts RouteKeyOpts) string

	// ArtifactKey generates a key for a rendered output file.
	ArtifactKey(routeHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts captures everything besides the config that affects layout
// output.
type LayoutKeyOpts struct {
	SwitchType string `json:"switch_type"`
}

// RouteKeyOpts captures the routing parameters that affect route output.
type RouteKeyOpts struct {
	Seed           uint64 `json:"seed"`
	Trials         int    `json:"trials"`
	ControllerType string `json:"controller_type"`
}

// ArtifactKeyOpts captures the output format for rendered artifacts.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key of the form "layout:<sha256>".
func (k *DefaultKeyer) LayoutKey(configHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", configHash, opts)
}

// RouteKey generates a key of the form "route:<sha256>".
func (k *DefaultKeyer) RouteKey(layoutHash string, opts RouteKeyOpts) string {
	return hashKey("route", layoutHash, opts)
}

// ArtifactKey generates a key of the form "artifact:<sha256>".
func (k *DefaultKeyer) ArtifactKey(routeHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", routeHash, opts)
}
