package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sh4d0w/ios-mobile-designer/internal/ir"
	"github.com/sh4d0w/ios-mobile-designer/internal/report"
)

func newReportCmd() *cobra.Command {
	var (
		format string
		outDir string
		minSev string
	)

	cmd := &cobra.Command{
		Use:   "report [run-id]",
		Short: "Render a stored run (latest when no ID is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			var run ir.Run
			if len(args) == 1 {
				run, err = db.LoadRun(args[0])
			} else {
				run, err = db.LoadLatestRun()
			}
			if err != nil {
				return err
			}

			if minSev != "" {
				run.Verdicts = report.MinSeverity(run.Verdicts, severityFromString(minSev))
				run.Report = report.Aggregate(run.Verdicts)
			}
			if run.Report == nil {
				run.Report = report.Aggregate(run.Verdicts)
			}

			if outDir == "" {
				outDir = cfg.Reporting.OutDir
			}
			switch strings.ToLower(format) {
			case "json":
				return report.EncodeJSON(os.Stdout, run.Report)
			case "html":
				if err := os.MkdirAll(outDir, 0o755); err != nil {
					return err
				}
				path, err := report.WriteHTML(run.ID, outDir, &run)
				if err != nil {
					return err
				}
				log.WithField("path", path).Info("html report written")
				return nil
			default:
				report.WriteText(os.Stdout, run.Report)
				return nil
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text|json|html")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "directory for html report files")
	cmd.Flags().StringVar(&minSev, "min-severity", "", "hide failing verdicts below this severity")
	return cmd
}
