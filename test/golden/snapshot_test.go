package golden

import (
	"bytes"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/sh4d0w/ios-mobile-designer/internal/evaluator"
	"github.com/sh4d0w/ios-mobile-designer/internal/extractor"
	"github.com/sh4d0w/ios-mobile-designer/internal/ir"
	"github.com/sh4d0w/ios-mobile-designer/internal/report"
	"github.com/sh4d0w/ios-mobile-designer/internal/rules"
)

var update = flag.Bool("update", false, "update golden snapshot")

const goldenFile = "expected.json"

const sampleCheckout = `{
  "scene": "checkout",
  "elements": [
    {"id": "buy", "kind": "button", "widthPt": 44, "heightPt": 44, "spacingPt": 16, "accessibilityLabel": "Buy now"},
    {"id": "title", "kind": "text", "foregroundColor": "#000000", "backgroundColor": "#ffffff", "fontSizePt": 17, "supportsDynamicType": true},
    {"id": "promo", "kind": "label", "foregroundColor": "#000000", "backgroundColor": "#ffffff", "fontSizePt": 10, "spacingPt": 10},
    {"id": "hero", "kind": "image", "material": true, "accessibilityLabel": "Hero artwork", "animation": {"durationMs": 500, "curve": "easeInOut", "respectsReduceMotion": false}}
  ]
}`

func TestGolden_CheckoutSnapshot(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "checkout.json")
	if err := os.WriteFile(in, []byte(sampleCheckout), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}

	scenes, err := extractor.ParsePath(in)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	reg := rules.Builtin()
	verdicts := evaluator.Evaluate(reg, scenes)
	rep := report.Aggregate(verdicts)

	// Stable fields only: no run ID, no timestamp.
	norm := runLite{
		ID:        "run-golden",
		Source:    "samples/checkout",
		IRVersion: ir.Version,
		Summary:   rep.Summary,
		Overall:   string(rep.Overall),
		Verdicts:  verdicts,
	}

	got, err := json.MarshalIndent(norm, "", "  ")
	if err != nil {
		t.Fatalf("marshal got: %v", err)
	}

	if *update {
		if err := os.WriteFile(goldenFile, got, 0o644); err != nil {
			t.Fatalf("write golden: %v", err)
		}
		t.Logf("updated %s", goldenFile)
		return
	}

	want, err := os.ReadFile(goldenFile)
	if err != nil {
		t.Fatalf("read golden (%s): %v\nRun with: go test ./test/golden -run TestGolden_CheckoutSnapshot -args -update", goldenFile, err)
	}

	if !bytes.Equal(bytes.TrimSpace(got), bytes.TrimSpace(want)) {
		tmp := filepath.Join(t.TempDir(), "got.json")
		_ = os.WriteFile(tmp, got, 0o644)
		t.Fatalf("golden mismatch.\n  golden: %s\n  actual: %s\nTip: update with\n  go test ./test/golden -run TestGolden_CheckoutSnapshot -count=1 -args -update", goldenFile, tmp)
	}
}

type runLite struct {
	ID        string       `json:"id"`
	Source    string       `json:"source,omitempty"`
	IRVersion string       `json:"ir_version,omitempty"`
	Summary   ir.Summary   `json:"summary"`
	Overall   string       `json:"overall"`
	Verdicts  []ir.Verdict `json:"verdicts"`
}
