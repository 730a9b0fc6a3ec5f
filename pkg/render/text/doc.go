// Package text renders a wall layout result as an ASCII strip for
// terminal review.
//
// The strip is a bordered band of symbol-filled cells, one symbol per
// cabinet kind, with gaps shown as dots and a ruler line underneath.
// Widths auto-fit the terminal: the scale (characters per inch) shrinks
// until the wall fits the maximum width, never growing past 1:1 unless a
// zoom factor asks for it.
//
//	fmt.Print(text.Render(res,
//	    text.WithMaxWidth(100),
//	    text.WithZoom(1.5),
//	))
package text
