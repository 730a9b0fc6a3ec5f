// Package catalog holds the standard cabinet dimension catalog and the gap
// fill suggestion logic built on it.
//
// Widths follow the stock sizes carried by big-box retailers, in inches.
// Suggestion generation is exhaustive rather than best-fit: callers wanting
// a short list slice the first few entries.
package catalog

// StandardWidths is the ascending catalog of stock cabinet widths, in
// inches.
var StandardWidths = []float64{9, 12, 15, 18, 21, 24, 27, 30, 33, 36}

// Standard depths, in inches.
const (
	BaseDepth = 24 // base cabinets
	WallDepth = 12 // wall (upper) cabinets
)

// DepthFor returns the standard depth for a cabinet row type. Row types
// other than "wall" get the base depth.
func DepthFor(row string) float64 {
	if row == "wall" {
		return WallDepth
	}
	return BaseDepth
}

// Suggestion pairs a stock width that fits a gap with the leftover span it
// would leave.
type Suggestion struct {
	Width    float64 `json:"width"`
	Leftover float64 `json:"leftover"`
}

// SuggestWidths returns every stock width that fits within gapWidth, in
// catalog order, each with its leftover. The comparison is a plain <= with
// no tolerance; a width equal to the gap fits exactly and leaves zero.
func SuggestWidths(gapWidth float64) []Suggestion {
	var out []Suggestion
	for _, w := range StandardWidths {
		if w <= gapWidth {
			out = append(out, Suggestion{Width: w, Leftover: gapWidth - w})
		}
	}
	return out
}
