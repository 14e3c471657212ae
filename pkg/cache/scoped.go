package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// This is useful when several hosts or environments share one Redis or
// MongoDB backend.
//
// Example usage:
//
//	// Keys for the HTTP host
//	serverKeyer := NewScopedKeyer(NewDefaultKeyer(), "server:")
//
//	// Keys shared with the CLI
//	defaultKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// BatchKey generates a prefixed key for batch caching.
func (k *ScopedKeyer) BatchKey(opts BatchKeyOpts) string {
	return k.prefix + k.inner.BatchKey(opts)
}
