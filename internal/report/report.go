// Package report aggregates verdicts into the read-side report and
// renders it as JSON, text, or HTML. Aggregation is a pure
// transformation; empty input yields an all-zero summary, not an error.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/sh4d0w/ios-mobile-designer/internal/ir"
)

// Aggregate groups verdicts by category (input order preserved within
// a category) and computes the summary and overall outcome. Overall is
// FAIL if any ERROR verdict failed, WARN if any WARNING verdict
// failed, else PASS.
func Aggregate(verdicts []ir.Verdict) *ir.Report {
	rep := &ir.Report{
		Categories: map[ir.Category][]ir.Verdict{},
		Overall:    ir.OutcomePass,
	}
	for _, v := range verdicts {
		rep.Categories[v.Category] = append(rep.Categories[v.Category], v)
		rep.Summary.Total++
		switch {
		case v.Passed:
			rep.Summary.Pass++
		case v.Severity == ir.SeverityError:
			rep.Summary.Fail++
			rep.Overall = ir.OutcomeFail
		case v.Severity == ir.SeverityWarning:
			rep.Summary.Warn++
			if rep.Overall != ir.OutcomeFail {
				rep.Overall = ir.OutcomeWarn
			}
		}
	}
	return rep
}

// MinSeverity keeps verdicts at or above the given severity. Passing
// verdicts are kept regardless so summaries stay comparable.
func MinSeverity(verdicts []ir.Verdict, min ir.Severity) []ir.Verdict {
	out := make([]ir.Verdict, 0, len(verdicts))
	for _, v := range verdicts {
		if v.Passed || ir.SeverityRank(v.Severity) >= ir.SeverityRank(min) {
			out = append(out, v)
		}
	}
	return out
}

// EncodeJSON writes the report payload:
// {summary: {...}, categories: {category: [verdicts...]}, overall}.
// Map keys marshal sorted, so the bytes are deterministic.
func EncodeJSON(w io.Writer, rep *ir.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(rep), "encode report")
}

// WriteJSON persists the full run under outDir as <runID>.json.
func WriteJSON(runID, outDir string, run *ir.Run) (string, error) {
	path := filepath.Join(outDir, runID+".json")
	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "create report file")
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(run); err != nil {
		return "", errors.Wrap(err, "encode run")
	}
	return path, nil
}

// WriteText renders a terminal-friendly report: overall line, summary
// counts, then failing verdicts grouped by category.
func WriteText(w io.Writer, rep *ir.Report) {
	fmt.Fprintf(w, "Overall: %s\n", rep.Overall)
	fmt.Fprintf(w, "Summary: pass=%d warn=%d fail=%d total=%d\n",
		rep.Summary.Pass, rep.Summary.Warn, rep.Summary.Fail, rep.Summary.Total)

	for _, cat := range ir.Categories() {
		var failed []ir.Verdict
		for _, v := range rep.Categories[cat] {
			if !v.Passed {
				failed = append(failed, v)
			}
		}
		if len(failed) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n[%s]\n", cat)
		for _, v := range failed {
			where := v.ElementID
			if v.Scene != "" {
				where = v.Scene + "/" + v.ElementID
			}
			fmt.Fprintf(w, "  %-7s %-22s %-24s %s\n", v.Severity, v.RuleID, where, v.Message)
		}
	}
}
