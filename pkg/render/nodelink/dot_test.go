package nodelink

import (
	"strings"
	"testing"

	"github.com/mfriedel/cabinetry/pkg/layout"
	"github.com/mfriedel/cabinetry/pkg/plan"
)

func testPlan() *plan.Plan {
	return &plan.Plan{
		Name: "kitchen",
		Walls: map[string]plan.Wall{
			"north": {Length: 100},
			"south": {Length: 60},
		},
		Runs: map[string][]layout.CabinetSpec{
			"north": {
				layout.Spec("base", 30),
				layout.GapSpec(3),
				layout.SpecAt("sink_base", 30, 45),
			},
			"south": {
				layout.Spec("tall", 24),
			},
		},
	}
}

func TestToDOTStructure(t *testing.T) {
	dot := ToDOT(testPlan(), Options{})

	for _, want := range []string{
		"digraph G {",
		`"kitchen"`,
		`"wall:north"`,
		`"wall:south"`,
		`"kitchen" -> "wall:north";`,
		`"wall:north" -> "north/0";`,
		`"north/0" -> "north/1";`,
		`"north/1" -> "north/2";`,
		`"wall:south" -> "south/0";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q in:\n%s", want, dot)
		}
	}
}

func TestToDOTGapStyling(t *testing.T) {
	dot := ToDOT(testPlan(), Options{})
	if !strings.Contains(dot, "dashed") {
		t.Error("ToDOT() gap spacer not dashed")
	}
	if !strings.Contains(dot, "fillcolor=lightgrey") {
		t.Error("ToDOT() gap spacer not grey")
	}
}

func TestToDOTDetailedLabels(t *testing.T) {
	plain := ToDOT(testPlan(), Options{})
	detailed := ToDOT(testPlan(), Options{Detailed: true})

	if strings.Contains(plain, `at 45\"`) {
		t.Error("ToDOT() plain labels include positions")
	}
	if !strings.Contains(detailed, `30\"`) {
		t.Errorf("ToDOT(Detailed) missing width label:\n%s", detailed)
	}
	if !strings.Contains(detailed, `at 45\"`) {
		t.Errorf("ToDOT(Detailed) missing position label:\n%s", detailed)
	}
}

func TestToDOTEmptyPlanName(t *testing.T) {
	p := testPlan()
	p.Name = ""
	dot := ToDOT(p, Options{})
	if !strings.Contains(dot, `"plan"`) {
		t.Errorf("ToDOT() missing fallback plan node:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="8pt" height="6pt" viewBox="0.00 0.00 216.00 188.00" xmlns="http://www.w3.org/2000/svg">body</svg>`)
	out := string(normalizeViewBox(in))

	if !strings.Contains(out, `viewBox="0 0 216.00 188.00"`) {
		t.Errorf("normalizeViewBox() viewBox not rewritten: %s", out)
	}
	if !strings.Contains(out, `width="216" height="188"`) {
		t.Errorf("normalizeViewBox() dimensions not in px: %s", out)
	}
	if !strings.HasSuffix(out, "body</svg>") {
		t.Errorf("normalizeViewBox() mangled body: %s", out)
	}
}

func TestNormalizeViewBoxNoMatch(t *testing.T) {
	in := []byte("<svg>no viewbox</svg>")
	if got := string(normalizeViewBox(in)); got != string(in) {
		t.Errorf("normalizeViewBox() modified svg without viewBox: %s", got)
	}
}
