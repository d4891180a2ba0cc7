package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sh4d0w/ios-mobile-designer/internal/report"
)

func newDiffCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "diff <base-run-id> <head-run-id>",
		Short: "Diff the failures of two stored runs",
		Long: `Diff compares two stored runs and writes a JSON document listing new
failures (in head but not base), fixed failures (in base but not head),
and changed ones (present in both with a different message).`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			base, err := db.LoadRun(args[0])
			if err != nil {
				return err
			}
			head, err := db.LoadRun(args[1])
			if err != nil {
				return err
			}

			if outDir == "" {
				outDir = cfg.Reporting.OutDir
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
			path, err := report.WriteDiffJSON(base.ID, head.ID, outDir, &base, &head)
			if err != nil {
				return err
			}
			log.WithField("path", path).Info("diff written")
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "directory for the diff file")
	return cmd
}
