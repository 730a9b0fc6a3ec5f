// Package floorplan renders a wall layout result as an SVG strip drawing.
//
// # Overview
//
// The drawing is an elevation-style strip: the wall runs left to right at
// true scale, each positioned cabinet is a filled rectangle labeled with
// its kind and width, reported gaps are hatched spans with width callouts,
// and any portion extending past the wall end is flagged with a red
// marker. A dimension line below the strip shows the wall's total length.
//
// # Usage
//
//	svg := floorplan.RenderSVG(res,
//	    floorplan.WithScale(2),
//	    floorplan.WithTitle("N1"),
//	)
//
// Positions and widths come straight from the layout result; the renderer
// only converts inches to pixels via the scale option (pixels per inch,
// default 2.0).
package floorplan
