// Package cache provides content-addressed caching for layout results and
// rendered artifacts.
//
// The CLI uses a file-backed cache under the XDG cache directory so that
// re-rendering an unchanged plan is instant. Keys are derived from the
// plan's canonical JSON hash plus the options that affect the stage's
// output, so any change to either produces a fresh computation. Each key
// carries its pipeline stage, which the file store uses to shard entries
// and to apply per-stage retention.
package cache

import (
	"context"
	"time"
)

// Pipeline stages with cacheable output. Layout entries hold computed
// wall layouts as JSON; artifact entries hold rendered bytes (SVG, PNG,
// PDF, text).
const (
	StageLayout   = "layout"
	StageArtifact = "artifact"
)

// Default retention per stage. Layouts and artifacts derive purely from
// the plan, so long TTLs are safe; the hash-based keys make stale hits
// impossible. Artifacts are larger, so they expire sooner.
const (
	TTLLayout   = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the storage interface for cached stage output.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero TTL applies the stage's default
	// retention; a negative TTL stores without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// LayoutKeyOpts are the option fields that affect a layout computation.
type LayoutKeyOpts struct {
	Wall        string
	StartOffset float64
	MinGap      float64
}

// ArtifactKeyOpts are the option fields that affect a rendered artifact.
type ArtifactKeyOpts struct {
	Wall         string
	VizType      string
	Format       string
	Scale        float64
	MaxTextWidth int
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// LayoutKey generates a key for a computed wall layout.
	LayoutKey(planHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(planHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for a computed wall layout.
func (k *DefaultKeyer) LayoutKey(planHash string, opts LayoutKeyOpts) string {
	return stageKey(StageLayout, planHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(planHash string, opts ArtifactKeyOpts) string {
	return stageKey(StageArtifact, planHash, opts)
}

// NullCache discards every write and misses every read. It backs the
// --no-cache flag.
type NullCache struct{}

// NewNullCache creates a cache that stores nothing.
func NewNullCache() Cache { return &NullCache{} }

func (n *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

func (n *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

func (n *NullCache) Delete(ctx context.Context, key string) error { return nil }

func (n *NullCache) Close() error { return nil }

var _ Cache = (*NullCache)(nil)
