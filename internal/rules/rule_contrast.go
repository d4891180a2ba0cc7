package rules

import "github.com/sh4d0w/ios-mobile-designer/internal/ir"

const (
	minContrastRatio = 4.5
	// Large text (>= 22pt) may drop to the relaxed WCAG ratio.
	largeTextPt           = 22.0
	minContrastRatioLarge = 3.0
)

func contrastRule() Rule {
	return Rule{
		ID:       "CONTRAST-MIN",
		Category: ir.CategoryColor,
		Severity: ir.SeverityError,
		Summary:  "Foreground/background contrast meets the WCAG minimum (4.5:1, 3:1 for large text).",
		Message:  "Contrast ratio is below the legibility minimum; darken the foreground or lighten the background.",
		Predicate: func(f ir.Fact) (bool, error) {
			min := minContrastRatio
			if f.FontSizePt >= largeTextPt {
				min = minContrastRatioLarge
			}
			return f.ContrastRatio >= min, nil
		},
	}
}
