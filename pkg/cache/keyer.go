package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Keyer derives cache keys for rendered scenes.
type Keyer interface {
	// RenderKey returns the key for a scene drawn in format.
	RenderKey(descriptor, format string) string
}

// DefaultKeyer hashes its inputs so keys have a fixed length whatever the
// street looks like.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// RenderKey returns "render:<sha256(descriptor, format)>".
func (DefaultKeyer) RenderKey(descriptor, format string) string {
	return hashKey("render", descriptor, format)
}

// ScopedKeyer prefixes every key of an inner keyer, so several deployments
// can share one Redis without seeing each other's entries.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner (DefaultKeyer when nil) with prefix.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// RenderKey returns the prefixed inner key.
func (k *ScopedKeyer) RenderKey(descriptor, format string) string {
	return k.prefix + k.inner.RenderKey(descriptor, format)
}

// hashKey generates "prefix:hash(parts...)".
func hashKey(prefix string, parts ...string) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

// Hash returns the hex SHA-256 of data (64 characters).
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
