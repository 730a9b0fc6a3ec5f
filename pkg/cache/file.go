package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileCache stores layout results and rendered artifacts on disk, one
// JSON file per entry. Entries are sharded first by pipeline stage and
// then by key hash, so `cabinetry cache clear` can report and remove
// layouts and artifacts independently.
type FileCache struct {
	root string
}

// NewFileCache opens (creating if needed) a file-backed cache rooted at
// root.
func NewFileCache(root string) (Cache, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, err
	}
	return &FileCache{root: root}, nil
}

// entry is one cached stage result on disk. Stage and Plan mirror the
// key's readable parts so an entry's provenance is visible when
// inspecting the cache directory by hand.
type entry struct {
	Stage     string    `json:"stage"`
	Plan      string    `json:"plan,omitempty"`
	Data      []byte    `json:"data"`
	SavedAt   time.Time `json:"saved_at"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Get retrieves a cached stage result. Expired or unreadable entries are
// removed and reported as misses.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		_ = os.Remove(path)
		return nil, false, nil
	}
	if !e.ExpiresAt.IsZero() && time.Now().After(e.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return e.Data, true, nil
}

// Set stores a stage result. A zero TTL applies the stage's default
// retention (TTLLayout or TTLArtifact); a negative TTL stores without
// expiry.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	stage, plan := splitKey(key)
	if ttl == 0 {
		ttl = defaultTTL(stage)
	}

	e := entry{
		Stage:   stage,
		Plan:    plan,
		Data:    data,
		SavedAt: time.Now(),
	}
	if ttl > 0 {
		e.ExpiresAt = e.SavedAt.Add(ttl)
	}

	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0644)
}

// Delete removes a cached stage result if present.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for the file cache.
func (c *FileCache) Close() error {
	return nil
}

// path maps a key to <root>/<stage>/<hh>/<hash>.json, where hh is the
// leading byte of the key hash. Stage-first sharding keeps layouts and
// artifacts in separate trees.
func (c *FileCache) path(key string) string {
	stage, _ := splitKey(key)
	hash := Hash([]byte(key))
	return filepath.Join(c.root, stage, hash[:2], hash[2:]+".json")
}

// splitKey extracts the stage and plan prefix from a stageKey-format
// key. Keys without the stage prefix land in a "misc" shard.
func splitKey(key string) (stage, plan string) {
	parts := strings.SplitN(key, ":", 3)
	if len(parts) < 2 || parts[0] == "" {
		return "misc", ""
	}
	if len(parts) == 3 {
		return parts[0], parts[1]
	}
	return parts[0], ""
}

func defaultTTL(stage string) time.Duration {
	if stage == StageLayout {
		return TTLLayout
	}
	return TTLArtifact
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)
