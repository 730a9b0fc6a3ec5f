package catalog

import (
	"reflect"
	"testing"
)

func TestSuggestWidths(t *testing.T) {
	tests := []struct {
		name string
		gap  float64
		want []Suggestion
	}{
		{
			name: "gap of 25 excludes 27 and up",
			gap:  25,
			want: []Suggestion{
				{9, 16}, {12, 13}, {15, 10}, {18, 7}, {21, 4}, {24, 1},
			},
		},
		{
			name: "exact fit leaves zero",
			gap:  9,
			want: []Suggestion{{9, 0}},
		},
		{
			name: "too narrow for any width",
			gap:  8.5,
			want: nil,
		},
		{
			name: "whole catalog fits",
			gap:  40,
			want: []Suggestion{
				{9, 31}, {12, 28}, {15, 25}, {18, 22}, {21, 19},
				{24, 16}, {27, 13}, {30, 10}, {33, 7}, {36, 4},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuggestWidths(tt.gap)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SuggestWidths(%g) = %v, want %v", tt.gap, got, tt.want)
			}
		})
	}
}

func TestSuggestWidthsProperties(t *testing.T) {
	for _, gap := range []float64{0, 1, 8.99, 9, 17.5, 25, 36, 100} {
		prev := 0.0
		for _, s := range SuggestWidths(gap) {
			if s.Width > gap {
				t.Errorf("gap %g: suggested width %g exceeds gap", gap, s.Width)
			}
			if s.Leftover < 0 {
				t.Errorf("gap %g: negative leftover %g", gap, s.Leftover)
			}
			if s.Width <= prev {
				t.Errorf("gap %g: widths not strictly ascending at %g", gap, s.Width)
			}
			prev = s.Width
		}
	}
}

func TestDepthFor(t *testing.T) {
	if got := DepthFor("wall"); got != WallDepth {
		t.Errorf("DepthFor(wall) = %g, want %d", got, WallDepth)
	}
	if got := DepthFor("base"); got != BaseDepth {
		t.Errorf("DepthFor(base) = %g, want %d", got, BaseDepth)
	}
	if got := DepthFor(""); got != BaseDepth {
		t.Errorf("DepthFor('') = %g, want %d", got, BaseDepth)
	}
}
