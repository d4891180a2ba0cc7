package report

import (
	"fmt"
	"html"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/sh4d0w/ios-mobile-designer/internal/ir"
)

// WriteHTML renders a self-contained report page under outDir.
func WriteHTML(runID, outDir string, run *ir.Run) (string, error) {
	path := filepath.Join(outDir, runID+".html")
	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "create html report")
	}
	defer f.Close()

	rep := run.Report
	if rep == nil {
		rep = Aggregate(run.Verdicts)
	}

	fmt.Fprintf(f, "<!doctype html><html><head><meta charset='utf-8'><title>%s</title>", html.EscapeString(runID))
	fmt.Fprint(f, "<style>body{font-family:system-ui,Arial,sans-serif;padding:20px;line-height:1.4} table{border-collapse:collapse;margin:8px 0} td,th{border:1px solid #ddd;padding:6px} h1,h2{margin:6px 0 4px} .dim{color:#666} .mono{font-family:ui-monospace,Menlo,Consolas,monospace} .fail{color:#b00} .pass{color:#080}</style>")
	fmt.Fprint(f, "</head><body>")

	fmt.Fprintf(f, "<h1>higlint report - <span class='mono'>%s</span></h1>", html.EscapeString(runID))
	cls := "pass"
	if rep.Overall == ir.OutcomeFail {
		cls = "fail"
	}
	fmt.Fprintf(f, "<p>Overall: <b class='%s'>%s</b></p>", cls, rep.Overall)
	fmt.Fprintf(f, "<p>Scenes: %d &nbsp; Verdicts: %d &nbsp; Pass: %d &nbsp; Warn: %d &nbsp; Fail: %d</p>",
		len(run.Scenes), rep.Summary.Total, rep.Summary.Pass, rep.Summary.Warn, rep.Summary.Fail)
	if run.Source != "" {
		fmt.Fprintf(f, "<p class='dim'>Source: %s</p>", html.EscapeString(run.Source))
	}
	if run.Context.SeverityThreshold != "" {
		fmt.Fprintf(f, "<p class='dim'>Severity threshold: %s", html.EscapeString(run.Context.SeverityThreshold))
		if n := len(run.Context.DisabledRules); n > 0 {
			fmt.Fprintf(f, " &nbsp; Disabled rules: %d", n)
		}
		fmt.Fprint(f, "</p>")
	}

	for _, cat := range ir.Categories() {
		vs := rep.Categories[cat]
		if len(vs) == 0 {
			continue
		}
		fmt.Fprintf(f, "<h2>%s</h2><table><tr><th>Result</th><th>Severity</th><th>Rule</th><th>Scene</th><th>Element</th><th>Message</th></tr>", html.EscapeString(string(cat)))
		for _, v := range vs {
			result := "pass"
			if !v.Passed {
				result = "FAIL"
			}
			fmt.Fprintf(f, "<tr><td class='%s'>%s</td><td>%s</td><td>%s</td><td>%s</td><td class='mono'>%s</td><td>%s</td></tr>",
				map[bool]string{true: "pass", false: "fail"}[v.Passed],
				result,
				html.EscapeString(string(v.Severity)),
				html.EscapeString(v.RuleID),
				html.EscapeString(v.Scene),
				html.EscapeString(v.ElementID),
				html.EscapeString(v.Message),
			)
		}
		fmt.Fprint(f, "</table>")
	}
	if rep.Summary.Total == 0 {
		fmt.Fprint(f, "<p class='dim'>No applicable rules for this input.</p>")
	}

	fmt.Fprint(f, "</body></html>")
	return path, nil
}
