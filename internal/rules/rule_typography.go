package rules

import "github.com/sh4d0w/ios-mobile-designer/internal/ir"

// 11pt is the smallest size the platform renders legibly at default
// scale; anything below is unreadable for most users.
const minFontSizePt = 11.0

func fontSizeRule() Rule {
	return Rule{
		ID:       "FONT-SIZE-MIN",
		Category: ir.CategoryTypography,
		Severity: ir.SeverityError,
		Summary:  "Text renders at 11pt or larger.",
		Message:  "Font size is below 11pt; use a larger text style.",
		Predicate: func(f ir.Fact) (bool, error) {
			return f.FontSizePt >= minFontSizePt, nil
		},
	}
}

func dynamicTypeRule() Rule {
	return Rule{
		ID:       "DYNAMIC-TYPE",
		Category: ir.CategoryTypography,
		Severity: ir.SeverityWarning,
		Summary:  "Text-bearing elements scale with the user's Dynamic Type setting.",
		Message:  "Element does not support Dynamic Type; use a scalable text style instead of a fixed size.",
		Predicate: func(f ir.Fact) (bool, error) {
			return f.SupportsDynamicType, nil
		},
	}
}
