package layout

import "fmt"

// DefaultMinReportableGap suppresses gaps below one inch so rounding noise
// in fractional measurements does not clutter reports.
const DefaultMinReportableGap = 1.0

// =============================================================================
// Engine
// =============================================================================

// Engine positions cabinets sequentially along a single wall segment.
// Engines are read-only after construction: Layout mutates no engine state,
// so one engine may be reused across calls and across goroutines.
type Engine struct {
	wallLength float64
	minGap     float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithMinReportableGap overrides the minimum gap width worth reporting.
func WithMinReportableGap(g float64) Option {
	return func(e *Engine) { e.minGap = g }
}

// New creates an engine for a wall of the given length. Lengths are in the
// same linear unit as cabinet widths (typically inches); fractional values
// are kept at full floating precision. A non-positive length is the one
// unrecoverable input and fails construction.
func New(wallLength float64, opts ...Option) (*Engine, error) {
	if wallLength <= 0 {
		return nil, fmt.Errorf("wall length must be positive, got %g", wallLength)
	}
	e := &Engine{wallLength: wallLength, minGap: DefaultMinReportableGap}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// WallLength returns the wall length the engine was built with.
func (e *Engine) WallLength() float64 { return e.wallLength }

// MinReportableGap returns the gap reporting threshold.
func (e *Engine) MinReportableGap() float64 { return e.minGap }

// =============================================================================
// Layout Pass
// =============================================================================

// Layout positions cabinets left to right starting at startOffset.
//
// The pass is a single indexed loop so the lookahead at the next spec's
// explicit position stays simple. Per iteration the checks run in a fixed
// order that must not be reordered: the overhang check fires at placement
// time against the pre-lookahead cursor, then the lookahead may jump the
// cursor to an explicit position. An explicit position that pushes a later
// cabinet past the wall is therefore reported against that later cabinet.
//
// Layout always returns a complete Result; diagnostics accumulate in
// Result.Errors and Result.Warnings rather than aborting the pass.
func (e *Engine) Layout(cabinets []CabinetSpec, startOffset float64) Result {
	res := Result{WallLength: e.wallLength}
	cursor := startOffset

	for i, spec := range cabinets {
		if spec.Width == nil {
			res.Errors = append(res.Errors, fmt.Sprintf("Cabinet %d: Missing 'width' field", i))
			continue
		}
		width := *spec.Width
		kind := spec.kind()

		// Deliberate empty space: advance without placing.
		if kind == KindGap {
			cursor += width
			continue
		}

		if cursor+width > e.wallLength {
			overhang := (cursor + width) - e.wallLength
			res.Errors = append(res.Errors, fmt.Sprintf(
				"Cabinet %d (%s, %g\"): Extends %.2f\" past wall end (position %.2f\" + %g\" > %g\")",
				i, kind, width, overhang, cursor, width, e.wallLength))
		}

		placed := PositionedCabinet{Kind: kind, Width: width, Position: cursor, Spec: spec}
		res.Cabinets = append(res.Cabinets, placed)

		// Reconcile against the next spec's explicit position, if any.
		if i+1 < len(cabinets) {
			next := cabinets[i+1]
			if !next.IsGap() && next.Position != nil {
				nextPos := *next.Position
				gapWidth := nextPos - placed.End()

				if gapWidth > e.minGap {
					res.Gaps = append(res.Gaps, Gap{
						Start:  placed.End(),
						End:    nextPos,
						Width:  gapWidth,
						Before: fmt.Sprintf("%s %d", kind, i),
						After:  fmt.Sprintf("%s %d", next.kind(), i+1),
					})
					// The explicit position is authoritative.
					cursor = nextPos
					continue
				} else if gapWidth < 0 {
					res.Warnings = append(res.Warnings, fmt.Sprintf(
						"Overlap detected: Cabinet %d ends at %.2f\", but cabinet %d starts at %.2f\"",
						i, placed.End(), i+1, nextPos))
				}
			}
		}

		cursor += width
	}

	// Trailing gap against the wall end.
	if cursor < e.wallLength {
		if gapWidth := e.wallLength - cursor; gapWidth > e.minGap {
			g := Gap{Start: cursor, End: e.wallLength, Width: gapWidth, After: WallEndMarker}
			if n := len(res.Cabinets); n > 0 {
				g.Before = res.Cabinets[n-1].Kind
			}
			res.Gaps = append(res.Gaps, g)
		}
	}

	res.TotalWidth = cursor - startOffset
	res.Success = len(res.Errors) == 0
	return res
}
