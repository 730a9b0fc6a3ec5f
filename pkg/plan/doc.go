// Package plan models kitchen plan files: named wall segments with
// measured lengths and, per wall, an ordered run of cabinet specs.
//
// # File formats
//
// Plans load from TOML or JSON, selected by file extension. A minimal TOML
// plan:
//
//	name = "kitchen"
//
//	[walls.N1]
//	length = 87.0
//
//	[[runs.N1]]
//	kind = "sink_base"
//	width = 36.0
//
//	[[runs.N1]]
//	kind = "base"
//	width = 24.0
//
// The loader validates structure only (wall names, positive lengths, runs
// referencing declared walls). Geometric problems within a run — overlaps,
// overhangs, missing widths — are the layout engine's job and are reported
// as diagnostics, not load errors.
package plan
