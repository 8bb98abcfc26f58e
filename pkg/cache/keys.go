package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ArtifactKeyOpts holds the output options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format  string  `json:"format"`
	Width   int     `json:"width,omitempty"`
	Height  int     `json:"height,omitempty"`
	Padding float64 `json:"padding,omitempty"`

	Supersample int `json:"supersample,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey returns the key for one rendered output of the
	// configuration whose canonical encoding hashes to configHash.
	ArtifactKey(configHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces keys of the form "artifact:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey implements [Keyer]. Every field of opts takes part, so a PNG
// at another width is a different entry.
func (DefaultKeyer) ArtifactKey(configHash string, opts ArtifactKeyOpts) string {
	data, _ := json.Marshal(struct {
		Config string          `json:"config"`
		Opts   ArtifactKeyOpts `json:"opts"`
	}{configHash, opts})
	return "artifact:" + Hash(data)
}

// ScopedKeyer prefixes another keyer's keys so several deployments, or a
// new drawing algorithm version, can share one backend.
//
//	keyer := cache.NewScopedKeyer(nil, "trihex:v2:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or [DefaultKeyer] if inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = DefaultKeyer{}
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ArtifactKey implements [Keyer].
func (k *ScopedKeyer) ArtifactKey(configHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(configHash, opts)
}
