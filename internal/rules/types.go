package rules

import "github.com/sh4d0w/ios-mobile-designer/internal/ir"

// Rule is one design-guideline check applied to a single fact.
// Predicates are pure: same fact in, same answer out, and they never
// observe other verdicts.
type Rule struct {
	ID       string
	Category ir.Category
	Severity ir.Severity
	Summary  string
	// Message is the user-facing text attached to a failing verdict.
	Message string
	// Predicate reports whether the fact satisfies the rule. Errors
	// (and panics) are isolated by the evaluator into a failing
	// ERROR verdict; they never abort the run.
	Predicate func(f ir.Fact) (bool, error)
}
