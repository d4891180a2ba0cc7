// Command higlint validates interface scene documents against Human
// Interface Guidelines rules: touch targets, contrast, typography,
// spacing, motion, materials, and accessibility labels.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sh4d0w/ios-mobile-designer/internal/rules"
	"github.com/sh4d0w/ios-mobile-designer/internal/rulesdsl"
	"github.com/sh4d0w/ios-mobile-designer/internal/shared"
	"github.com/sh4d0w/ios-mobile-designer/internal/storage"
)

const (
	exitPass      = 0
	exitFail      = 1
	exitMalformed = 2
)

var (
	cfgPath string
	cfg     shared.Config
	log     *logrus.Logger
)

func main() {
	root := &cobra.Command{
		Use:   "higlint",
		Short: "Lint UI scene documents against interface guideline rules",
		Long: `higlint extracts design facts from JSON scene documents and checks
them against a registry of interface guideline rules. Reports can be
rendered as text, JSON, or HTML, persisted to SQLite, diffed across
runs, and served over HTTP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			var err error
			cfg, err = shared.LoadConfig(cfgPath)
			if err != nil {
				// LoadConfig falls back to defaults; err is advisory
				cfg = shared.DefaultConfig()
			}
			if v, _ := cmd.Flags().GetString("db"); v != "" {
				cfg.Database.DSN = v
			}
			if v, _ := cmd.Flags().GetString("log-level"); v != "" {
				cfg.Logging.Level = v
			}
			if v, _ := cmd.Flags().GetString("log-format"); v != "" {
				cfg.Logging.Format = v
			}
			log = shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to higlint.yaml")
	root.PersistentFlags().String("db", "", "sqlite database path (overrides config)")
	root.PersistentFlags().String("log-level", "", "log level: debug|info|warn|error")
	root.PersistentFlags().String("log-format", "", "log format: text|json")

	root.AddCommand(
		newValidateCmd(),
		newReportCmd(),
		newDiffCmd(),
		newRulesCmd(),
		newServeCmd(),
		newWatchCmd(),
		newUserCmd(),
		newVersionCmd(),
	)

	if err := root.Execute(); err != nil {
		if log != nil {
			log.Error(err)
		} else {
			os.Stderr.WriteString(err.Error() + "\n")
		}
		os.Exit(exitMalformed)
	}
}

// buildRegistry assembles built-in rules plus any configured packs and
// applies the disabled list and severity threshold.
func buildRegistry(extraPacks, disabled []string, threshold string) (*rules.Registry, error) {
	reg := rules.Builtin()

	packs := append([]string{}, cfg.Rules.Packs...)
	packs = append(packs, extraPacks...)
	for _, p := range packs {
		n, err := rulesdsl.LoadAndRegister(p, reg)
		if err != nil {
			return nil, err
		}
		log.WithField("pack", p).WithField("rules", n).Debug("loaded rule pack")
	}

	off := map[string]bool{}
	for _, id := range cfg.Rules.Disabled {
		off[id] = true
	}
	for _, id := range disabled {
		off[id] = true
	}
	s := rules.Settings{Disabled: off}
	if threshold == "" {
		threshold = cfg.Rules.SeverityThreshold
	}
	s.SeverityThreshold = severityFromString(threshold)
	reg.SetSettings(s)
	return reg, nil
}

func openStore() (*storage.DB, error) {
	db, err := storage.OpenSQLite(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}
	if err := db.CreateSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
