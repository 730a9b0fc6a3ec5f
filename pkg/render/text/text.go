package text

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/mfriedel/cabinetry/pkg/layout"
)

const (
	// DefaultMaxWidth is the widest strip the renderer will draw.
	DefaultMaxWidth = 120

	// DefaultScale is the drawing scale in characters per inch.
	DefaultScale = 1.0

	stripRows = 3 // interior rows between the borders

	zoomMin = 0.1
	zoomMax = 5.0
)

// kindSymbols maps cabinet kinds to the single character used to fill
// their cells. Unknown kinds use the first letter of the kind name.
var kindSymbols = map[string]rune{
	"base":       'B',
	"wall":       'W',
	"lazy_susan": 'L',
	"tall":       'T',
	"fridge":     'F',
	"sink_base":  'S',
	"dishwasher": 'D',
}

const (
	emptyCell    = '.'
	borderCell   = '#'
	dividerCell  = '|'
	overhangCell = '!'
)

// Option configures the renderer.
type Option func(*renderer)

type renderer struct {
	maxWidth int
	scale    float64
	zoom     float64
	title    string
}

// WithMaxWidth caps the strip width in characters.
func WithMaxWidth(w int) Option { return func(r *renderer) { r.maxWidth = w } }

// WithScale sets the base drawing scale in characters per inch.
func WithScale(s float64) Option { return func(r *renderer) { r.scale = s } }

// WithZoom multiplies the auto-fit scale. Values are clamped to
// [0.1, 5.0].
func WithZoom(z float64) Option { return func(r *renderer) { r.zoom = z } }

// WithTitle prints a heading line above the strip.
func WithTitle(t string) Option { return func(r *renderer) { r.title = t } }

// Render draws the layout result as an ASCII strip.
func Render(res layout.Result, opts ...Option) string {
	r := renderer{maxWidth: DefaultMaxWidth, scale: DefaultScale, zoom: 1.0}
	for _, opt := range opts {
		opt(&r)
	}
	r.zoom = min(zoomMax, max(zoomMin, r.zoom))

	maxEnd := res.WallLength
	for _, c := range res.Cabinets {
		if c.End() > maxEnd {
			maxEnd = c.End()
		}
	}

	scale := fitScale(r.scale, maxEnd, r.maxWidth) * r.zoom
	cols := int(maxEnd*scale + 0.5)
	if cols < 1 {
		cols = 1
	}
	wallCol := int(res.WallLength*scale + 0.5)

	grid := newGrid(stripRows, cols)
	for _, c := range res.Cabinets {
		grid.paint(c, scale, wallCol)
	}

	var b strings.Builder
	if r.title != "" {
		fmt.Fprintf(&b, "%s (%.2f\")\n", r.title, res.WallLength)
	}
	border := strings.Repeat(string(borderCell), cols+2)
	b.WriteString(border)
	b.WriteByte('\n')
	for _, row := range grid.cells {
		b.WriteRune(borderCell)
		b.WriteString(string(row))
		b.WriteRune(borderCell)
		b.WriteByte('\n')
	}
	b.WriteString(border)
	b.WriteByte('\n')
	b.WriteString(ruler(res.WallLength, wallCol))
	b.WriteString(legend(res))
	return b.String()
}

// fitScale shrinks the base scale until the strip fits maxWidth. It never
// grows the drawing past the base scale; zooming is the caller's choice.
func fitScale(base, inches float64, maxWidth int) float64 {
	if inches <= 0 {
		return base
	}
	// Two columns are spent on the border.
	fit := float64(maxWidth-2) / inches
	return min(base, fit)
}

type grid struct {
	cells [][]rune
}

func newGrid(rows, cols int) *grid {
	g := grid{cells: make([][]rune, rows)}
	for i := range g.cells {
		row := make([]rune, cols)
		for j := range row {
			row[j] = emptyCell
		}
		g.cells[i] = row
	}
	return &g
}

// paint fills the cabinet's span with its kind symbol, draws divider
// columns at its edges, and marks cells past the wall end as overhang.
func (g *grid) paint(c layout.PositionedCabinet, scale float64, wallCol int) {
	cols := len(g.cells[0])
	start := int(c.Position*scale + 0.5)
	end := int(c.End()*scale + 0.5)
	if start < 0 {
		start = 0
	}
	if end > cols {
		end = cols
	}
	if end <= start {
		return
	}

	sym := symbolFor(c.Kind)
	for _, row := range g.cells {
		for j := start; j < end; j++ {
			row[j] = sym
			if j >= wallCol {
				row[j] = overhangCell
			}
		}
		if end-start >= 2 {
			row[start] = dividerCell
			row[end-1] = dividerCell
		}
	}

	// Width label in the middle row, when it fits between the dividers.
	label := []rune(fmt.Sprintf("%g\"", c.Width))
	if inner := end - start - 2; len(label) <= inner {
		mid := g.cells[len(g.cells)/2]
		at := start + 1 + (inner-len(label))/2
		copy(mid[at:], label)
	}
}

// ruler prints inch marks at the wall start and end.
func ruler(wallLength float64, wallCol int) string {
	left := `0"`
	right := fmt.Sprintf("%g\"", wallLength)
	pad := wallCol + 2 - len(left) - len(right)
	if pad < 1 {
		pad = 1
	}
	return left + strings.Repeat(" ", pad) + right + "\n"
}

// legend lists the symbols for the kinds actually present, plus the gap
// and overhang markers when relevant.
func legend(res layout.Result) string {
	kinds := map[string]bool{}
	overhang := false
	for _, c := range res.Cabinets {
		kinds[c.Kind] = true
		if c.End() > res.WallLength {
			overhang = true
		}
	}
	if len(kinds) == 0 {
		return ""
	}

	names := make([]string, 0, len(kinds))
	for k := range kinds {
		names = append(names, k)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("Legend: ")
	for i, k := range names {
		if i > 0 {
			b.WriteString("  ")
		}
		fmt.Fprintf(&b, "%c=%s", symbolFor(k), k)
	}
	if len(res.Gaps) > 0 {
		fmt.Fprintf(&b, "  %c=gap", emptyCell)
	}
	if overhang {
		fmt.Fprintf(&b, "  %c=past wall end", overhangCell)
	}
	b.WriteByte('\n')
	return b.String()
}

// symbolFor maps a cabinet kind to its strip symbol. Unknown kinds fall
// back to the uppercased first rune.
func symbolFor(kind string) rune {
	if s, ok := kindSymbols[kind]; ok {
		return s
	}
	for _, r := range kind {
		return unicode.ToUpper(r)
	}
	return '?'
}
