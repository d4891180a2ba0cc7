package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sh4d0w/ios-mobile-designer/internal/ir"
)

func newRulesCmd() *cobra.Command {
	var (
		packs    []string
		asJSON   bool
		category string
	)

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List registered rules (built-ins plus configured packs)",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := buildRegistry(packs, nil, "")
			if err != nil {
				return err
			}

			all := reg.All()
			if category != "" {
				all = reg.ByCategory(ir.Category(category))
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				type row struct {
					ID       string `json:"id"`
					Category string `json:"category"`
					Severity string `json:"severity"`
					Summary  string `json:"summary"`
				}
				out := make([]row, 0, len(all))
				for _, r := range all {
					out = append(out, row{r.ID, string(r.Category), string(r.Severity), r.Summary})
				}
				return enc.Encode(out)
			}

			for _, r := range all {
				fmt.Printf("%-24s %-14s %-8s %s\n", r.ID, r.Category, r.Severity, r.Summary)
			}
			fmt.Printf("\n%d rules\n", len(all))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&packs, "rules", nil, "extra YAML rule pack (repeatable)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON")
	cmd.Flags().StringVar(&category, "category", "", "only rules in this category")
	return cmd
}
