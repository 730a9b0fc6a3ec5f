// Package archive keeps timestamped snapshots of generated artifacts so
// earlier layout runs can be compared or restored.
//
// Each snapshot is a directory named <timestamp>_<id>_<label> under the
// store root, where id is a short random suffix that keeps rapid
// successive runs from colliding.
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mfriedel/cabinetry/pkg/errors"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644

	timeLayout = "20060102-150405"
)

// Run describes one archived snapshot.
type Run struct {
	ID        string
	Label     string
	Path      string
	CreatedAt time.Time
}

// Store manages snapshots under a root directory.
type Store struct {
	root string
}

// NewStore opens (and creates, if needed) a snapshot store at root.
func NewStore(root string) (*Store, error) {
	if root == "" {
		return nil, errors.New(errors.ErrCodeInvalidPath, "archive root cannot be empty")
	}
	if err := os.MkdirAll(root, dirPerm); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create archive root")
	}
	return &Store{root: root}, nil
}

// Root returns the store's root directory.
func (s *Store) Root() string { return s.root }

// Snapshot writes the given files into a fresh run directory and returns
// the run. Only the base name of each file is kept; two files that would
// collide on base name are rejected rather than silently overwritten.
func (s *Store) Snapshot(label string, files map[string][]byte) (Run, error) {
	byBase := make(map[string]string, len(files))
	for name := range files {
		base := filepath.Base(name)
		if prev, ok := byBase[base]; ok {
			return Run{}, errors.New(errors.ErrCodeInvalidInput,
				"artifact name collision: %q and %q both archive as %s", prev, name, base)
		}
		byBase[base] = name
	}

	now := time.Now()
	run := Run{
		ID:        uuid.NewString()[:8],
		Label:     sanitizeLabel(label),
		CreatedAt: now,
	}
	run.Path = filepath.Join(s.root, fmt.Sprintf("%s_%s_%s",
		now.Format(timeLayout), run.ID, run.Label))

	if err := os.MkdirAll(run.Path, dirPerm); err != nil {
		return Run{}, errors.Wrap(errors.ErrCodeInternal, err, "create run directory")
	}
	for name, data := range files {
		path := filepath.Join(run.Path, filepath.Base(name))
		if err := os.WriteFile(path, data, filePerm); err != nil {
			return Run{}, errors.Wrap(errors.ErrCodeInternal, err, "write artifact %s", name)
		}
	}
	return run, nil
}

// List returns all runs, newest first. Directories that do not follow the
// snapshot naming scheme are skipped.
func (s *Store) List() ([]Run, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read archive root")
	}

	var runs []Run
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		run, ok := parseRunDir(e.Name())
		if !ok {
			continue
		}
		run.Path = filepath.Join(s.root, e.Name())
		runs = append(runs, run)
	}

	sort.Slice(runs, func(i, j int) bool {
		if !runs[i].CreatedAt.Equal(runs[j].CreatedAt) {
			return runs[i].CreatedAt.After(runs[j].CreatedAt)
		}
		return runs[i].ID > runs[j].ID
	})
	return runs, nil
}

// Prune deletes all but the newest keep runs and returns how many were
// removed.
func (s *Store) Prune(keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}
	runs, err := s.List()
	if err != nil {
		return 0, err
	}
	if len(runs) <= keep {
		return 0, nil
	}

	removed := 0
	for _, run := range runs[keep:] {
		if err := os.RemoveAll(run.Path); err != nil {
			return removed, errors.Wrap(errors.ErrCodeInternal, err, "remove run %s", run.ID)
		}
		removed++
	}
	return removed, nil
}

func parseRunDir(name string) (Run, bool) {
	parts := strings.SplitN(name, "_", 3)
	if len(parts) != 3 {
		return Run{}, false
	}
	ts, err := time.ParseInLocation(timeLayout, parts[0], time.Local)
	if err != nil {
		return Run{}, false
	}
	return Run{ID: parts[1], Label: parts[2], CreatedAt: ts}, true
}

// sanitizeLabel keeps run directory names filesystem-safe.
func sanitizeLabel(label string) string {
	if label == "" {
		return "run"
	}
	var b strings.Builder
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String()
}
