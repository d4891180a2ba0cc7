package rules

import (
	"strings"

	"github.com/sh4d0w/ios-mobile-designer/internal/ir"
	"github.com/sh4d0w/ios-mobile-designer/internal/storage"
)

// ApplyWaivers drops failing verdicts that match an active waiver.
// Passing verdicts are never waived. Returns (kept, waivedCount).
func ApplyWaivers(in []ir.Verdict, waivers []storage.Waiver) ([]ir.Verdict, int) {
	if len(waivers) == 0 || len(in) == 0 {
		return in, 0
	}
	out := make([]ir.Verdict, 0, len(in))
	waived := 0
nextVerdict:
	for _, v := range in {
		if !v.Passed {
			for _, w := range waivers {
				if !eqCI(v.RuleID, w.RuleID) {
					continue
				}
				if w.Scene != "" && !eqCI(v.Scene, w.Scene) {
					continue
				}
				if w.ElementID != "" && !eqCI(v.ElementID, w.ElementID) {
					continue
				}
				if w.PatternSub != "" &&
					!strings.Contains(strings.ToUpper(v.Message), strings.ToUpper(w.PatternSub)) {
					continue
				}
				waived++
				continue nextVerdict
			}
		}
		out = append(out, v)
	}
	return out, waived
}

func eqCI(a, b string) bool { return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b)) }
