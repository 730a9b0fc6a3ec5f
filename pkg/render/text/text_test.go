package text

import (
	"strings"
	"testing"

	"github.com/mfriedel/cabinetry/pkg/layout"
)

func render(t *testing.T, specs []layout.CabinetSpec, wall float64, opts ...Option) string {
	t.Helper()
	eng, err := layout.New(wall)
	if err != nil {
		t.Fatalf("layout.New() error: %v", err)
	}
	return Render(eng.Layout(specs, 0), opts...)
}

func TestRenderStrip(t *testing.T) {
	out := render(t, []layout.CabinetSpec{
		layout.Spec("base", 30),
		layout.Spec("sink_base", 30),
	}, 100)

	if !strings.Contains(out, "B") || !strings.Contains(out, "S") {
		t.Errorf("Render() missing kind symbols:\n%s", out)
	}
	if !strings.Contains(out, "####") {
		t.Errorf("Render() missing border:\n%s", out)
	}
	if !strings.Contains(out, `0"`) || !strings.Contains(out, `100"`) {
		t.Errorf("Render() missing ruler marks:\n%s", out)
	}
	if !strings.Contains(out, "B=base") || !strings.Contains(out, "S=sink_base") {
		t.Errorf("Render() missing legend entries:\n%s", out)
	}
}

func TestRenderWidthLabels(t *testing.T) {
	out := render(t, []layout.CabinetSpec{layout.Spec("base", 30)}, 100)
	if !strings.Contains(out, `30"`) {
		t.Errorf("Render() missing width label:\n%s", out)
	}
}

func TestRenderGapLegend(t *testing.T) {
	out := render(t, []layout.CabinetSpec{
		layout.Spec("base", 20),
		layout.SpecAt("base", 15, 45),
	}, 60)
	if !strings.Contains(out, ".=gap") {
		t.Errorf("Render() missing gap legend for wall with gaps:\n%s", out)
	}
}

func TestRenderOverhangMarker(t *testing.T) {
	out := render(t, []layout.CabinetSpec{
		layout.Spec("base", 40),
		layout.Spec("base", 20),
	}, 50)
	if !strings.Contains(out, "!") {
		t.Errorf("Render() missing overhang cells:\n%s", out)
	}
	if !strings.Contains(out, "!=past wall end") {
		t.Errorf("Render() missing overhang legend:\n%s", out)
	}
}

func TestRenderAutoFit(t *testing.T) {
	out := render(t, []layout.CabinetSpec{layout.Spec("base", 200)}, 300,
		WithMaxWidth(80))

	for _, line := range strings.Split(out, "\n") {
		if len(line) > 80 {
			t.Errorf("Render() line exceeds max width (%d chars): %q", len(line), line)
		}
	}
}

func TestRenderNeverUpscales(t *testing.T) {
	// A short wall in a wide terminal stays at 1 char per inch.
	out := render(t, []layout.CabinetSpec{layout.Spec("base", 10)}, 20,
		WithMaxWidth(120))

	lines := strings.Split(out, "\n")
	if len(lines[0]) != 22 { // 20 columns + 2 border chars
		t.Errorf("Render() border width = %d, want 22:\n%s", len(lines[0]), out)
	}
}

func TestRenderZoomClamped(t *testing.T) {
	out := render(t, []layout.CabinetSpec{layout.Spec("base", 10)}, 20,
		WithZoom(100)) // clamped to 5.0

	lines := strings.Split(out, "\n")
	if len(lines[0]) != 102 { // 20in * 5.0 + 2 border chars
		t.Errorf("Render() zoomed border width = %d, want 102", len(lines[0]))
	}
}

func TestRenderTitle(t *testing.T) {
	out := render(t, []layout.CabinetSpec{layout.Spec("base", 10)}, 20,
		WithTitle("north"))
	if !strings.HasPrefix(out, `north (20.00")`) {
		t.Errorf("Render() missing title line:\n%s", out)
	}
}

func TestSymbolForFallback(t *testing.T) {
	tests := []struct {
		kind string
		want rune
	}{
		{"base", 'B'},       // known kind, mapped symbol
		{"pantry", 'P'},     // unknown ASCII kind
		{"überschrank", 'Ü'}, // unknown kind, non-ASCII first rune
		{"", '?'},
	}
	for _, tt := range tests {
		if got := symbolFor(tt.kind); got != tt.want {
			t.Errorf("symbolFor(%q) = %c, want %c", tt.kind, got, tt.want)
		}
	}
}

func TestRenderEmptyWall(t *testing.T) {
	out := render(t, nil, 24)
	if strings.Contains(out, "Legend") {
		t.Errorf("Render() printed legend for empty wall:\n%s", out)
	}
	if !strings.Contains(out, "#") {
		t.Errorf("Render() missing border for empty wall:\n%s", out)
	}
}
