package rules

import (
	"math"

	"github.com/sh4d0w/ios-mobile-designer/internal/ir"
)

const spacingGridPt = 8.0

func spacingGridRule() Rule {
	return Rule{
		ID:       "SPACING-GRID",
		Category: ir.CategorySpacing,
		Severity: ir.SeverityWarning,
		Summary:  "Spacing values land on the 8pt layout grid.",
		Message:  "Spacing is not a multiple of 8pt; align the element to the layout grid.",
		Predicate: func(f ir.Fact) (bool, error) {
			return math.Mod(f.SpacingPt, spacingGridPt) == 0, nil
		},
	}
}
