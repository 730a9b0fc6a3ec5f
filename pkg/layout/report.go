package layout

import (
	"fmt"
	"strings"

	"github.com/mfriedel/cabinetry/pkg/catalog"
)

// reportSuggestionLimit caps how many fill suggestions the report shows per
// gap; the full list is available via catalog.SuggestWidths.
const reportSuggestionLimit = 3

// Report renders the result as human-readable text: a one-line summary,
// then errors, warnings, and gaps with top fill suggestions.
func (r *Result) Report() string {
	var lines []string

	if r.Success {
		lines = append(lines, fmt.Sprintf("✓ Layout successful: %.2f\" used of %.2f\"", r.TotalWidth, r.WallLength))
	} else {
		lines = append(lines, "✗ Layout failed")
	}

	if len(r.Errors) > 0 {
		lines = append(lines, "", "Errors:")
		for _, e := range r.Errors {
			lines = append(lines, "  - "+e)
		}
	}

	if len(r.Warnings) > 0 {
		lines = append(lines, "", "Warnings:")
		for _, w := range r.Warnings {
			lines = append(lines, "  - "+w)
		}
	}

	if len(r.Gaps) > 0 {
		lines = append(lines, "", fmt.Sprintf("Gaps found (%d):", len(r.Gaps)))
		for i, gap := range r.Gaps {
			lines = append(lines, fmt.Sprintf("  Gap %d: %.2f\" at %.2f\"-%.2f\"", i+1, gap.Width, gap.Start, gap.End))
			if gap.Before != "" {
				lines = append(lines, "    After: "+gap.Before)
			}
			if gap.After != "" {
				lines = append(lines, "    Before: "+gap.After)
			}

			suggestions := catalog.SuggestWidths(gap.Width)
			if len(suggestions) > 0 {
				lines = append(lines, "    Suggestions:")
				for _, s := range suggestions[:min(len(suggestions), reportSuggestionLimit)] {
					lines = append(lines, fmt.Sprintf("      - %g\" cabinet (leaves %.2f\" gap)", s.Width, s.Leftover))
				}
			}
		}
	}

	return strings.Join(lines, "\n")
}
