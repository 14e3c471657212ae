package cache

import "github.com/eskillate/lowpop/pkg/config"

// BatchKeyOpts lists every input that determines a batch.
type BatchKeyOpts struct {
	Count     int           `json:"count"`
	Tier      string        `json:"tier"`
	Seed      uint64        `json:"seed"`
	FullRange bool          `json:"full_range"`
	Config    config.Config `json:"config"`
}

// Keyer generates cache keys.
type Keyer interface {
	// BatchKey returns the key for a generated batch.
	BatchKey(opts BatchKeyOpts) string
}

// DefaultKeyer hashes the key inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// BatchKey returns "batch:<sha256>" over the JSON-encoded options.
func (DefaultKeyer) BatchKey(opts BatchKeyOpts) string {
	return hashKey("batch", opts)
}
