package pipeline

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mfriedel/cabinetry/pkg/cache"
	"github.com/mfriedel/cabinetry/pkg/errors"
	"github.com/mfriedel/cabinetry/pkg/layout"
	"github.com/mfriedel/cabinetry/pkg/plan"
)

func testPlan() *plan.Plan {
	return &plan.Plan{
		Name: "kitchen",
		Walls: map[string]plan.Wall{
			"north": {Length: 100},
		},
		Runs: map[string][]layout.CabinetSpec{
			"north": {
				layout.Spec("base", 30),
				layout.Spec("sink_base", 30),
				layout.Spec("base", 30),
			},
		},
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{Wall: "north"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}
	if opts.VizType != VizTypeFloorplan {
		t.Errorf("VizType = %q, want %q", opts.VizType, VizTypeFloorplan)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.MinGap != DefaultMinGap {
		t.Errorf("MinGap = %g, want %g", opts.MinGap, DefaultMinGap)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %g, want %g", opts.Scale, DefaultScale)
	}
}

func TestValidateRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"missing wall", Options{}, errors.ErrCodeInvalidInput},
		{"negative offset", Options{Wall: "north", StartOffset: -1}, errors.ErrCodeInvalidInput},
		{"bad viz type", Options{Wall: "north", VizType: "tower"}, errors.ErrCodeInvalidVizType},
		{"bad format", Options{Wall: "north", Formats: []string{"bmp"}}, errors.ErrCodeInvalidFormat},
		{"bad scale", Options{Wall: "north", Scale: -2}, errors.ErrCodeInvalidScale},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if err == nil {
				t.Fatal("ValidateAndSetDefaults() succeeded, want error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), tt.code)
			}
		})
	}
}

func TestExecuteProducesArtifacts(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	result, err := r.Execute(context.Background(), testPlan(), Options{
		Wall:    "north",
		Formats: []string{FormatSVG, FormatJSON, FormatText},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if !result.Layout.Success {
		t.Errorf("layout failed: %v", result.Layout.Errors)
	}
	if result.Stats.CabinetCount != 3 {
		t.Errorf("CabinetCount = %d, want 3", result.Stats.CabinetCount)
	}
	if result.PlanHash == "" {
		t.Error("PlanHash empty")
	}

	if !strings.Contains(string(result.Artifacts[FormatSVG]), "<svg") {
		t.Error("svg artifact missing <svg")
	}
	var res layout.Result
	if err := json.Unmarshal(result.Artifacts[FormatJSON], &res); err != nil {
		t.Errorf("json artifact invalid: %v", err)
	}
	if !strings.Contains(string(result.Artifacts[FormatText]), "Legend") {
		t.Error("txt artifact missing legend")
	}
}

func TestExecuteUnknownWall(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	_, err := r.Execute(context.Background(), testPlan(), Options{Wall: "east"})
	if !errors.Is(err, errors.ErrCodeWallNotFound) {
		t.Errorf("error code = %v, want WALL_NOT_FOUND", errors.GetCode(err))
	}
}

func TestExecuteCachesStages(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	defer r.Close()

	ctx := context.Background()
	opts := Options{Wall: "north", Formats: []string{FormatSVG, FormatText}}

	first, err := r.Execute(ctx, testPlan(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Error("first run reported cache hits")
	}

	second, err := r.Execute(ctx, testPlan(), opts)
	if err != nil {
		t.Fatalf("Execute() second error: %v", err)
	}
	if !second.CacheInfo.LayoutHit {
		t.Error("second run missed layout cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run missed artifact cache")
	}
	if string(first.Artifacts[FormatSVG]) != string(second.Artifacts[FormatSVG]) {
		t.Error("cached svg differs from rendered svg")
	}
}

func TestExecuteRefreshSkipsLayoutCache(t *testing.T) {
	c, _ := cache.NewFileCache(t.TempDir())
	r := NewRunner(c, nil, nil)
	defer r.Close()

	ctx := context.Background()
	if _, err := r.Execute(ctx, testPlan(), Options{Wall: "north"}); err != nil {
		t.Fatal(err)
	}

	result, err := r.Execute(ctx, testPlan(), Options{Wall: "north", Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if result.CacheInfo.LayoutHit {
		t.Error("refresh run hit layout cache")
	}
}

func TestExecuteNodelinkSVG(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	result, err := r.Execute(context.Background(), testPlan(), Options{
		Wall:    "north",
		VizType: VizTypeNodelink,
		Formats: []string{FormatSVG},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !strings.Contains(string(result.Artifacts[FormatSVG]), "<svg") {
		t.Error("nodelink svg artifact missing <svg")
	}
}

func TestOptionsKeyOptsRoundTrip(t *testing.T) {
	opts := Options{Wall: "north", StartOffset: 2, MinGap: 1}
	k := opts.LayoutKeyOpts()
	if k.Wall != "north" || k.StartOffset != 2 || k.MinGap != 1 {
		t.Errorf("LayoutKeyOpts() = %+v", k)
	}

	opts.SetRenderDefaults()
	a := opts.ArtifactKeyOpts(FormatPNG)
	if a.Format != FormatPNG || a.VizType != VizTypeFloorplan {
		t.Errorf("ArtifactKeyOpts() = %+v", a)
	}
}
