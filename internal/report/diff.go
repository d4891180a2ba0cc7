package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/sh4d0w/ios-mobile-designer/internal/ir"
)

// Diff compares the failing verdicts of two runs. A failure is keyed
// by (rule, scene, element); passes are ignored since only failures
// drive regressions and fixes.
type diffPayload struct {
	BaseID  string        `json:"base_id"`
	HeadID  string        `json:"head_id"`
	Summary diffSummary   `json:"summary"`
	New     []diffVerdict `json:"new"`
	Fixed   []diffVerdict `json:"fixed"`
	Changed []diffChanged `json:"changed"`
}

type diffSummary struct {
	NewCount     int `json:"new"`
	FixedCount   int `json:"fixed"`
	ChangedCount int `json:"changed"`
}

type diffVerdict struct {
	RuleID    string      `json:"rule_id"`
	Scene     string      `json:"scene,omitempty"`
	ElementID string      `json:"element_id"`
	Severity  ir.Severity `json:"severity,omitempty"`
	Message   string      `json:"message,omitempty"`
}

type diffChanged struct {
	Key     string      `json:"key"`
	Base    diffVerdict `json:"base"`
	Head    diffVerdict `json:"head"`
	Changed []string    `json:"fields_changed"`
}

// WriteDiffJSON writes the base-vs-head failure diff under outDir.
func WriteDiffJSON(baseID, headID, outDir string, base, head *ir.Run) (string, error) {
	path := filepath.Join(outDir, "diff_"+baseID+"__"+headID+".json")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", errors.Wrap(err, "create out dir")
	}

	bm := failuresByKey(base.Verdicts)
	hm := failuresByKey(head.Verdicts)

	var added, fixed []diffVerdict
	var changed []diffChanged

	for k, hv := range hm {
		bv, ok := bm[k]
		if !ok {
			added = append(added, asDiff(hv))
			continue
		}
		var fields []string
		if bv.Severity != hv.Severity {
			fields = append(fields, "severity")
		}
		if strings.TrimSpace(bv.Message) != strings.TrimSpace(hv.Message) {
			fields = append(fields, "message")
		}
		if len(fields) > 0 {
			changed = append(changed, diffChanged{
				Key:     k,
				Base:    asDiff(bv),
				Head:    asDiff(hv),
				Changed: fields,
			})
		}
	}
	for k, bv := range bm {
		if _, ok := hm[k]; !ok {
			fixed = append(fixed, asDiff(bv))
		}
	}

	sortDiff(added)
	sortDiff(fixed)
	sort.Slice(changed, func(i, j int) bool { return changed[i].Key < changed[j].Key })

	payload := diffPayload{
		BaseID: baseID, HeadID: headID,
		Summary: diffSummary{
			NewCount:     len(added),
			FixedCount:   len(fixed),
			ChangedCount: len(changed),
		},
		New:     added,
		Fixed:   fixed,
		Changed: changed,
	}
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "marshal diff")
	}
	return path, os.WriteFile(path, b, 0o644)
}

func failuresByKey(verdicts []ir.Verdict) map[string]ir.Verdict {
	m := map[string]ir.Verdict{}
	for _, v := range verdicts {
		if !v.Passed {
			m[keyOf(v)] = v
		}
	}
	return m
}

func keyOf(v ir.Verdict) string {
	return strings.ToUpper(v.RuleID) + "|" + v.Scene + "|" + v.ElementID
}

func asDiff(v ir.Verdict) diffVerdict {
	return diffVerdict{
		RuleID:    v.RuleID,
		Scene:     v.Scene,
		ElementID: v.ElementID,
		Severity:  v.Severity,
		Message:   v.Message,
	}
}

func sortDiff(vs []diffVerdict) {
	sort.Slice(vs, func(i, j int) bool {
		if vs[i].RuleID != vs[j].RuleID {
			return vs[i].RuleID < vs[j].RuleID
		}
		if vs[i].Scene != vs[j].Scene {
			return vs[i].Scene < vs[j].Scene
		}
		return vs[i].ElementID < vs[j].ElementID
	})
}
