// Package cache stores rendered diagram artifacts.
//
// Building a diagram is cheap, but rasterising it through Graphviz and
// rsvg-convert is not. The pipeline hashes the built diagram and keys every
// artifact by that hash plus the render options, so a catalog change
// invalidates stale entries without any explicit purge.
//
// Three backends share the [Cache] interface:
//
//   - [FileCache] for the CLI, one JSON envelope per key under a directory
//   - [RedisCache] for the HTTP server when several replicas share a cache
//   - [NullCache] when caching is disabled
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// ArtifactTTL bounds how long a rendered artifact is reused.
const ArtifactTTL = 7 * 24 * time.Hour

// Cache is a byte store with per-entry expiry.
// A miss is reported as ok == false with a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey keys a rendered artifact of the diagram with the given hash.
	ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render options that affect artifact bytes.
type ArtifactKeyOpts struct {
	Mode   string  `json:"mode"`
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
}

// DefaultKeyer produces "kind:sha256" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", diagramHash, opts)
}

// hashKey returns prefix:sha256(json(parts)).
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return fmt.Sprintf("%s:%s", prefix, Hash(data))
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
