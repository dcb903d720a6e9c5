package cache

import "time"

// Stage TTLs. Plans are pure functions of their inputs, so long TTLs are
// safe; they exist to bound cache growth, not to invalidate.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLRoute    = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)
