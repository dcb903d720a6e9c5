package cache

// ScopedKeyer wraps a Keyer with a prefix so separate deployments (or
// separate boards sharing one Redis) get isolated namespaces.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every key.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) LayoutKey(configHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(configHash, opts)
}

func (k *ScopedKeyer) RouteKey(layoutHash string, opts RouteKeyOpts) string {
	return k.prefix + k.inner.RouteKey(layoutHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(routeHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(routeHash, opts)
}
