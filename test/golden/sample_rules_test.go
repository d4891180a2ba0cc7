package golden

import (
	"testing"

	"github.com/sh4d0w/ios-mobile-designer/internal/evaluator"
	"github.com/sh4d0w/ios-mobile-designer/internal/extractor"
	"github.com/sh4d0w/ios-mobile-designer/internal/ir"
	"github.com/sh4d0w/ios-mobile-designer/internal/rules"
)

func validateString(t *testing.T, doc, threshold string) []ir.Verdict {
	t.Helper()

	scene, err := extractor.ParseDocument("sample", []byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	reg := rules.Builtin()
	reg.SetSettings(rules.Settings{SeverityThreshold: ir.Severity(threshold)})
	return evaluator.Evaluate(reg, []ir.Scene{scene})
}

func TestSample_InfoThreshold_ContainsKeyFailures(t *testing.T) {
	verdicts := validateString(t, sampleCheckout, "INFO")

	failed := map[string]int{}
	for _, v := range verdicts {
		if !v.Passed {
			failed[v.RuleID]++
		}
	}

	required := []string{
		"FONT-SIZE-MIN",
		"DYNAMIC-TYPE",
		"SPACING-GRID",
		"REDUCE-MOTION-FALLBACK",
		"MOTION-DURATION",
		"MOTION-SPRING",
	}
	for _, id := range required {
		if failed[id] == 0 {
			t.Fatalf("expected at least 1 failure for %s; got 0; failed=%v", id, failed)
		}
	}
}

func TestSample_WarningThreshold_FiltersInfoVerdicts(t *testing.T) {
	info := validateString(t, sampleCheckout, "INFO")
	warn := validateString(t, sampleCheckout, "WARNING")

	if len(warn) >= len(info) {
		t.Fatalf("expected WARNING to yield fewer verdicts than INFO; got WARNING=%d INFO=%d",
			len(warn), len(info))
	}
	for _, v := range warn {
		if v.RuleID == "MOTION-SPRING" {
			t.Fatal("MOTION-SPRING is INFO and should be filtered at WARNING threshold")
		}
	}
	// WARNING rules remain
	found := false
	for _, v := range warn {
		if v.RuleID == "SPACING-GRID" {
			found = true
			break
		}
	}
	if !found {
		t.Fatal("expected SPACING-GRID to remain at WARNING threshold")
	}
}
