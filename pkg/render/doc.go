// Package render hosts the output generators and shared conversion
// helpers.
//
// Subpackages:
//   - floorplan: wall-strip SVG drawings of a layout result
//   - text: ASCII wall diagrams for terminal review
//   - nodelink: Graphviz structure diagrams of a whole plan
//
// The renderers treat the layout engine's positions and widths as the sole
// geometric truth; they scale and draw, never re-place.
package render
