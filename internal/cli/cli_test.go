package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/mfriedel/cabinetry/pkg/cache"
	"github.com/mfriedel/cabinetry/pkg/layout"
	"github.com/mfriedel/cabinetry/pkg/plan"
)

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	want := filepath.Join("/tmp/xdg-cache", appName)
	if dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirHome(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("HOME", "/tmp/home")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	want := filepath.Join("/tmp/home", ".cache", appName)
	if dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestArchiveDirXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")

	dir, err := archiveDir()
	if err != nil {
		t.Fatalf("archiveDir() error: %v", err)
	}
	want := filepath.Join("/tmp/xdg-data", appName, "runs")
	if dir != want {
		t.Errorf("archiveDir() = %q, want %q", dir, want)
	}
}

func TestParseFormats(t *testing.T) {
	if got := parseFormats(""); !reflect.DeepEqual(got, []string{"svg"}) {
		t.Errorf("parseFormats(\"\") = %v, want [svg]", got)
	}
	if got := parseFormats("svg,txt,json"); !reflect.DeepEqual(got, []string{"svg", "txt", "json"}) {
		t.Errorf("parseFormats() = %v", got)
	}
}

func TestParseVizTypes(t *testing.T) {
	if got := parseVizTypes(""); !reflect.DeepEqual(got, []string{"floorplan"}) {
		t.Errorf("parseVizTypes(\"\") = %v, want [floorplan]", got)
	}
	if got := parseVizTypes("floorplan,nodelink"); !reflect.DeepEqual(got, []string{"floorplan", "nodelink"}) {
		t.Errorf("parseVizTypes() = %v", got)
	}
}

func TestResolveWall(t *testing.T) {
	p := &plan.Plan{
		Walls: map[string]plan.Wall{
			"north": {Length: 100},
			"south": {Length: 60},
		},
	}

	if wall, err := resolveWall(p, "south"); err != nil || wall != "south" {
		t.Errorf("resolveWall(south) = %q, %v", wall, err)
	}

	if _, err := resolveWall(p, "east"); err == nil {
		t.Error("resolveWall(east) succeeded, want error")
	} else if !strings.Contains(err.Error(), "north, south") {
		t.Errorf("resolveWall(east) error does not list walls: %v", err)
	}

	single := &plan.Plan{Walls: map[string]plan.Wall{"only": {Length: 10}}}
	if wall, err := resolveWall(single, ""); err != nil || wall != "only" {
		t.Errorf("resolveWall on single-wall plan = %q, %v", wall, err)
	}
}

func TestArtifactPath(t *testing.T) {
	tests := []struct {
		name string
		opts renderOpts
		want string
	}{
		{
			name: "derived from plan path",
			opts: renderOpts{vizTypes: []string{"floorplan"}, formats: []string{"svg"}},
			want: "kitchen_north.svg",
		},
		{
			name: "explicit output single combination",
			opts: renderOpts{output: "out.svg", vizTypes: []string{"floorplan"}, formats: []string{"svg"}},
			want: "out.svg",
		},
		{
			name: "base path with multiple viz types",
			opts: renderOpts{output: "out", vizTypes: []string{"floorplan", "nodelink"}, formats: []string{"svg"}},
			want: "out_floorplan.svg",
		},
		{
			name: "format extension stripped for multiple formats",
			opts: renderOpts{output: "out.svg", vizTypes: []string{"floorplan"}, formats: []string{"svg", "png"}},
			want: "out.svg",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := artifactPath(&tt.opts, "kitchen.toml", "north", tt.opts.vizTypes[0], tt.opts.formats[0])
			if got != tt.want {
				t.Errorf("artifactPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRootCommandSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := []string{"layout", "render", "suggest", "validate", "cache", "runs", "completion"}
	got := map[string]bool{}
	for _, cmd := range root.Commands() {
		got[cmd.Name()] = true
	}
	for _, name := range want {
		if !got[name] {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestProgressLifecycle(t *testing.T) {
	var buf bytes.Buffer
	p := startProgressTo(context.Background(), &buf, "laying out north")

	time.Sleep(3 * progressInterval)
	p.stop()

	if p.Cancelled() {
		t.Error("Cancelled() = true without parent cancellation")
	}
	// The goroutine has exited after stop, so the buffer is quiescent.
	if !strings.Contains(buf.String(), "laying out north") {
		t.Error("progress never rendered its message")
	}
}

func TestProgressCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := startProgressTo(ctx, io.Discard, "rendering")

	cancel()
	p.stop()

	if !p.Cancelled() {
		t.Error("Cancelled() = false after parent cancellation")
	}
}

func TestClearStageCounts(t *testing.T) {
	dir := t.TempDir()
	stage := filepath.Join(dir, cache.StageLayout, "ab")
	if err := os.MkdirAll(stage, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"one.json", "two.json"} {
		if err := os.WriteFile(filepath.Join(stage, name), []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if got := clearStage(filepath.Join(dir, cache.StageLayout)); got != 2 {
		t.Errorf("clearStage() = %d, want 2", got)
	}
	if _, err := os.Stat(filepath.Join(dir, cache.StageLayout)); !os.IsNotExist(err) {
		t.Error("stage shard still present after clearStage()")
	}
	if got := clearStage(filepath.Join(dir, cache.StageArtifact)); got != 0 {
		t.Errorf("clearStage() on missing shard = %d, want 0", got)
	}
}

func TestWriteCompletion(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	var buf bytes.Buffer
	if err := writeCompletion(root, "bash", &buf); err != nil {
		t.Fatalf("writeCompletion(bash) error: %v", err)
	}
	if !strings.Contains(buf.String(), appName) {
		t.Error("completion script does not mention the binary name")
	}

	if err := writeCompletion(root, "tcsh", io.Discard); err == nil {
		t.Error("writeCompletion(tcsh) succeeded, want error")
	}
}

func TestWallListModelNavigation(t *testing.T) {
	p := &plan.Plan{
		Walls: map[string]plan.Wall{
			"a": {Length: 10},
			"b": {Length: 20},
		},
		Runs: map[string][]layout.CabinetSpec{
			"a": {layout.Spec("base", 9)},
		},
	}
	m := NewWallListModel(p)

	if len(m.Walls) != 2 || m.Walls[0].Name != "a" {
		t.Fatalf("NewWallListModel() walls = %+v", m.Walls)
	}
	if m.Walls[0].Cabinets != 1 || m.Walls[1].Cabinets != 0 {
		t.Errorf("cabinet counts = %d, %d", m.Walls[0].Cabinets, m.Walls[1].Cabinets)
	}

	view := m.View()
	if !strings.Contains(view, "Select Wall") {
		t.Error("View() missing title")
	}
	if !strings.Contains(view, "no run") {
		t.Error("View() missing empty-run marker")
	}
}
