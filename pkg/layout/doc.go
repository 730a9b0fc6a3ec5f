// Package layout positions cabinets sequentially along straight wall
// segments.
//
// # Overview
//
// The engine walks an ordered list of cabinet specs once, left to right,
// maintaining a running cursor. Each placeable spec becomes a
// [PositionedCabinet] at the cursor; the cursor then advances by the
// cabinet's width. This removes the need to hand-compute absolute
// positions, which is the main source of errors in manually maintained
// plans.
//
// # Explicit positions and gaps
//
// A spec may declare an absolute position. When the next spec in the
// sequence does so, the engine reconciles the declared position against the
// current cabinet's computed end: a declared position far enough ahead
// records a [Gap] and moves the cursor (the declared position wins), while
// a declared position before the computed end records an overlap warning
// without moving either cabinet. A spec with kind "gap" advances the cursor
// silently; it is the mechanism for declaring deliberate empty space.
//
// # Diagnostics
//
// The engine never fails outright. Structural problems (missing width) and
// physical problems (a cabinet extending past the wall end) accumulate as
// strings in the [Result] so a single run surfaces every issue in the
// input. Overlaps are warnings, since overlapping trim between explicitly
// positioned cabinets can be intentional; overhang past the wall never is,
// so it is an error.
//
// # Usage
//
//	eng, err := layout.New(100)
//	if err != nil {
//	    return err
//	}
//	res := eng.Layout(specs, 0)
//	if !res.Success {
//	    fmt.Println(res.Report())
//	}
package layout
