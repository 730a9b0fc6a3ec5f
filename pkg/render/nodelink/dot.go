// Package nodelink renders a whole plan as a Graphviz structure diagram:
// the plan fans out to its walls, and each wall chains its cabinet run in
// placement order. Gap spacers are drawn dashed and grey so the real
// boxes stand out.
package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/mfriedel/cabinetry/pkg/layout"
	"github.com/mfriedel/cabinetry/pkg/plan"
	"github.com/mfriedel/cabinetry/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes widths and explicit positions in node labels.
	// When false, only the cabinet kind is shown.
	Detailed bool
}

// ToDOT converts a plan to Graphviz DOT format for node-link
// visualization. The resulting DOT string can be rendered using
// [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT(p *plan.Plan, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	planID := p.Name
	if planID == "" {
		planID = "plan"
	}
	fmt.Fprintf(&buf, "  %q [label=%q, style=\"rounded,filled,bold\"];\n", planID, planID)

	for _, name := range p.WallNames() {
		wall := p.Walls[name]
		wallID := "wall:" + name
		fmt.Fprintf(&buf, "  %q [label=%q];\n", wallID, fmt.Sprintf("%s\n%g\"", name, wall.Length))
		fmt.Fprintf(&buf, "  %q -> %q;\n", planID, wallID)

		prev := wallID
		for i, spec := range p.Run(name) {
			id := fmt.Sprintf("%s/%d", name, i)
			attrs := fmtAttrs(spec, fmtLabel(spec, opts.Detailed))
			fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))
			fmt.Fprintf(&buf, "  %q -> %q;\n", prev, id)
			prev = id
		}
		buf.WriteString("\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(spec layout.CabinetSpec, detailed bool) string {
	kind := spec.Kind
	if kind == "" {
		kind = "cabinet"
	}
	if !detailed {
		return kind
	}

	parts := []string{kind}
	if spec.Width != nil {
		parts = append(parts, fmt.Sprintf("%g\"", *spec.Width))
	}
	if spec.Position != nil {
		parts = append(parts, fmt.Sprintf("at %g\"", *spec.Position))
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(spec layout.CabinetSpec, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if spec.IsGap() {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with
// [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
