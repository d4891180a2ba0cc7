package main

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sh4d0w/ios-mobile-designer/internal/engine"
	"github.com/sh4d0w/ios-mobile-designer/internal/extractor"
	"github.com/sh4d0w/ios-mobile-designer/internal/ir"
	"github.com/sh4d0w/ios-mobile-designer/internal/report"
	"github.com/sh4d0w/ios-mobile-designer/internal/storage"
)

func newValidateCmd() *cobra.Command {
	var (
		format    string
		failOn    string
		packs     []string
		disabled  []string
		threshold string
		outDir    string
		save      bool
		parallel  bool
		workers   int
	)

	cmd := &cobra.Command{
		Use:   "validate [sources...]",
		Short: "Validate scene documents and report verdicts",
		Long: `Validate parses the given scene files or directories, evaluates every
enabled rule against every extracted fact, and prints the report.

Exit status is 0 when the run passes, 1 when it fails (or warns with
--fail-on warning), and 2 on malformed input or an operational error.`,
		Run: func(cmd *cobra.Command, args []string) {
			sources := args
			if len(sources) == 0 {
				sources = cfg.Validation.Sources
			}
			if len(sources) == 0 {
				log.Error("no input: pass scene files or set validation.sources in config")
				os.Exit(exitMalformed)
			}

			reg, err := buildRegistry(packs, disabled, threshold)
			if err != nil {
				log.WithError(err).Error("rule registry")
				os.Exit(exitMalformed)
			}

			var scenes []ir.Scene
			for _, src := range sources {
				parsed, err := extractor.ParsePath(src)
				if err != nil {
					var mal *extractor.MalformedInputError
					if errors.As(err, &mal) {
						log.WithField("source", src).Error(mal.Error())
					} else {
						log.WithField("source", src).WithError(err).Error("parse input")
					}
					os.Exit(exitMalformed)
				}
				scenes = append(scenes, parsed...)
			}

			opts := engine.Options{
				Source:   strings.Join(sources, ","),
				Parallel: parallel || cfg.Validation.Parallel,
				Workers:  workersOrDefault(workers),
			}

			var db *storage.DB
			if save {
				db, err = openStore()
				if err != nil {
					log.WithError(err).Error("open database")
					os.Exit(exitMalformed)
				}
				defer db.Close()
				if ws, werr := db.ListWaivers(true); werr == nil {
					opts.Waivers = ws
				}
			}

			if failOn == "" {
				failOn = cfg.Validation.FailOn
			}
			start := time.Now()
			run := engine.Validate(context.Background(), reg, scenes, opts)
			run.Context.FailOn = failOn
			log.WithField("run", run.ID).
				WithField("verdicts", len(run.Verdicts)).
				WithField("took", time.Since(start).Round(time.Millisecond)).
				Debug("evaluated")

			if save {
				if err := db.SaveRun(run); err != nil {
					log.WithError(err).Error("save run")
					os.Exit(exitMalformed)
				}
				log.WithField("run", run.ID).Info("saved")
			}

			if outDir == "" {
				outDir = cfg.Reporting.OutDir
			}
			if err := render(run, format, outDir); err != nil {
				log.WithError(err).Error("write report")
				os.Exit(exitMalformed)
			}
			os.Exit(exitCode(run.Report.Overall, failOn))
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: text|json|html")
	cmd.Flags().StringVar(&failOn, "fail-on", "", "fail threshold: error|warning")
	cmd.Flags().StringArrayVar(&packs, "rules", nil, "extra YAML rule pack (repeatable)")
	cmd.Flags().StringArrayVar(&disabled, "disable", nil, "rule ID to skip (repeatable)")
	cmd.Flags().StringVar(&threshold, "severity-threshold", "", "minimum severity to evaluate: ERROR|WARNING|INFO")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "directory for json/html report files")
	cmd.Flags().BoolVar(&save, "save", false, "persist the run to the database (applies active waivers)")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "evaluate facts concurrently")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker count for --parallel")
	return cmd
}

func render(run *ir.Run, format, outDir string) error {
	if format == "" {
		format = cfg.Reporting.Format
	}
	switch strings.ToLower(format) {
	case "json":
		return report.EncodeJSON(os.Stdout, run.Report)
	case "html":
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return err
		}
		path, err := report.WriteHTML(run.ID, outDir, run)
		if err != nil {
			return err
		}
		log.WithField("path", path).Info("html report written")
		return nil
	default:
		report.WriteText(os.Stdout, run.Report)
		return nil
	}
}

func exitCode(overall ir.Outcome, failOn string) int {
	switch overall {
	case ir.OutcomeFail:
		return exitFail
	case ir.OutcomeWarn:
		if strings.EqualFold(failOn, "warning") {
			return exitFail
		}
	}
	return exitPass
}

func workersOrDefault(n int) int {
	if n > 0 {
		return n
	}
	return cfg.Validation.Workers
}

func severityFromString(s string) ir.Severity {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ERROR":
		return ir.SeverityError
	case "WARNING":
		return ir.SeverityWarning
	default:
		return ir.SeverityInfo
	}
}
