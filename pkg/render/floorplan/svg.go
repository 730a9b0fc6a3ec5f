package floorplan

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/mfriedel/cabinetry/pkg/catalog"
	"github.com/mfriedel/cabinetry/pkg/layout"
)

const (
	// DefaultScale is the drawing scale in pixels per inch.
	DefaultScale = 2.0

	margin        = 50.0 // frame margin in pixels
	dimensionGap  = 22.0 // space between strip and dimension line
	dimensionTick = 6.0  // tick length on dimension line ends
	titleBand     = 26.0 // space reserved above the strip for a title
)

// Font sizing ratios for fitting labels into cabinet rects.
const (
	fontHeightRatio = 0.6
	fontWidthRatio  = 0.85
	fontCharWidth   = 0.55
	fontSizeMin     = 6.0
	fontSizeMax     = 16.0
)

// kindFills maps cabinet kinds to fill colors. Unknown kinds fall back to
// the base cabinet color.
var kindFills = map[string]string{
	"base":       "#D2691E",
	"wall":       "#CD853F",
	"lazy_susan": "#A0522D",
	"tall":       "#8B4513",
	"fridge":     "#C0C0C0",
	"sink_base":  "#87CEEB",
	"dishwasher": "#708090",
}

const (
	wallColor     = "#000000"
	gapFill       = "#F5F5DC"
	gapHatchColor = "#999999"
	overhangColor = "#CC2222"
	textColor     = "#333333"
	dimColor      = "#666666"
)

// SVGOption configures the renderer.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	scale float64
	title string
	row   string
}

// WithScale sets the drawing scale in pixels per inch.
func WithScale(s float64) SVGOption { return func(r *svgRenderer) { r.scale = s } }

// WithTitle draws a title above the strip (typically the wall name).
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// WithRow selects the cabinet row type ("base" or "wall"), which sets the
// strip depth.
func WithRow(row string) SVGOption { return func(r *svgRenderer) { r.row = row } }

// RenderSVG draws the layout result as an SVG strip.
func RenderSVG(res layout.Result, opts ...SVGOption) []byte {
	r := svgRenderer{scale: DefaultScale}
	for _, opt := range opts {
		opt(&r)
	}

	depth := catalog.DepthFor(r.row)
	stripH := depth * r.scale
	wallW := res.WallLength * r.scale

	// Cabinets may legally extend past the wall end; widen the frame so
	// the overhang stays visible.
	maxEnd := res.WallLength
	for _, c := range res.Cabinets {
		if c.End() > maxEnd {
			maxEnd = c.End()
		}
	}

	frameW := maxEnd*r.scale + 2*margin
	frameH := stripH + 2*margin + dimensionGap + titleBand

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		frameW, frameH, frameW, frameH)

	renderDefs(&buf)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="white"/>`+"\n", frameW, frameH)

	top := margin + titleBand
	if r.title != "" {
		fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" font-size="16" font-weight="bold" fill="%s">%s</text>`+"\n",
			margin, margin+10, textColor, escapeXML(r.title))
	}

	renderGaps(&buf, &r, res, top, stripH)
	renderCabinets(&buf, &r, res, top, stripH)
	renderWallBounds(&buf, &r, res, top, stripH, wallW)
	renderDimension(&buf, res, top+stripH+dimensionGap, wallW)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// renderDefs emits the hatch pattern used for gap spans.
func renderDefs(buf *bytes.Buffer) {
	fmt.Fprintf(buf, `  <defs>
    <pattern id="gap-hatch" width="6" height="6" patternTransform="rotate(45)" patternUnits="userSpaceOnUse">
      <line x1="0" y1="0" x2="0" y2="6" stroke="%s" stroke-width="1"/>
    </pattern>
  </defs>
`, gapHatchColor)
}

func renderCabinets(buf *bytes.Buffer, r *svgRenderer, res layout.Result, top, stripH float64) {
	for _, c := range res.Cabinets {
		x := margin + c.Position*r.scale
		w := c.Width * r.scale

		fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="#000" stroke-width="1" opacity="0.7"/>`+"\n",
			x, top, w, stripH, fillFor(c.Kind))

		// Portion past the wall end gets a red overlay.
		if c.End() > res.WallLength {
			overX := margin + res.WallLength*r.scale
			overW := (c.End() - res.WallLength) * r.scale
			if c.Position > res.WallLength {
				overX = x
				overW = w
			}
			fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s" stroke-width="2" stroke-dasharray="4,3"/>`+"\n",
				overX, top, overW, stripH, overhangColor)
		}

		size := fontSizeFor(w, stripH, len(c.Kind))
		cx := x + w/2
		cy := top + stripH/2
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-size="%.1f" font-weight="bold" fill="%s">%s</text>`+"\n",
			cx, cy-2, size, textColor, escapeXML(c.Kind))
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-size="%.1f" fill="%s">%g&#8243;W</text>`+"\n",
			cx, cy+size, size*0.85, textColor, c.Width)
	}
}

func renderGaps(buf *bytes.Buffer, r *svgRenderer, res layout.Result, top, stripH float64) {
	for _, g := range res.Gaps {
		x := margin + g.Start*r.scale
		w := g.Width * r.scale

		fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			x, top, w, stripH, gapFill)
		fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="url(#gap-hatch)"/>`+"\n",
			x, top, w, stripH)

		size := fontSizeFor(w, stripH, 7)
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-size="%.1f" fill="%s">%.2f&#8243; gap</text>`+"\n",
			x+w/2, top+stripH/2, size, dimColor, g.Width)
	}
}

// renderWallBounds draws the wall outline over cabinets and gaps so the
// boundary stays visible.
func renderWallBounds(buf *bytes.Buffer, r *svgRenderer, res layout.Result, top, stripH, wallW float64) {
	fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s" stroke-width="3"/>`+"\n",
		margin, top, wallW, stripH, wallColor)
}

func renderDimension(buf *bytes.Buffer, res layout.Result, y, wallW float64) {
	x1, x2 := margin, margin+wallW
	fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1"/>`+"\n",
		x1, y, x2, y, dimColor)
	for _, x := range []float64{x1, x2} {
		fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1"/>`+"\n",
			x, y-dimensionTick, x, y+dimensionTick, dimColor)
	}
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-size="12" fill="%s">%.2f&#8243;</text>`+"\n",
		(x1+x2)/2, y-4, dimColor, res.WallLength)
}

// fontSizeFor fits a label into the available rect, clamped to a legible
// range.
func fontSizeFor(availWidth, availHeight float64, textLen int) float64 {
	n := max(1, textLen)
	byHeight := availHeight * fontHeightRatio
	byWidth := (availWidth * fontWidthRatio) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, min(byHeight, byWidth)))
}

func fillFor(kind string) string {
	if c, ok := kindFills[kind]; ok {
		return c
	}
	return kindFills["base"]
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
