package rules

import "github.com/sh4d0w/ios-mobile-designer/internal/ir"

func accessibilityLabelRule() Rule {
	return Rule{
		ID:       "A11Y-LABEL",
		Category: ir.CategoryAccessibility,
		Severity: ir.SeverityError,
		Summary:  "Interactive elements and images carry an accessibility label.",
		Message:  "Element has no accessibility label; VoiceOver users cannot identify it.",
		Predicate: func(f ir.Fact) (bool, error) {
			return f.AccessibilityLabel != "", nil
		},
	}
}
