package rules

import "github.com/sh4d0w/ios-mobile-designer/internal/ir"

// Interactive elements need at least 44x44pt to be reliably tappable.
const minTouchTargetPt = 44.0

func touchTargetRule() Rule {
	return Rule{
		ID:       "TOUCH-TARGET-MIN",
		Category: ir.CategoryTouchTarget,
		Severity: ir.SeverityError,
		Summary:  "Interactive elements provide a touch target of at least 44x44pt.",
		Message:  "Touch target is smaller than 44x44pt; enlarge the element or extend its hit area.",
		Predicate: func(f ir.Fact) (bool, error) {
			return f.WidthPt >= minTouchTargetPt && f.HeightPt >= minTouchTargetPt, nil
		},
	}
}
