// Package engine assembles one validation run: facts in, report out.
// Each run is an independent computation; the registry is the only
// long-lived piece and is passed in explicitly.
package engine

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/sh4d0w/ios-mobile-designer/internal/evaluator"
	"github.com/sh4d0w/ios-mobile-designer/internal/ir"
	"github.com/sh4d0w/ios-mobile-designer/internal/report"
	"github.com/sh4d0w/ios-mobile-designer/internal/rules"
	"github.com/sh4d0w/ios-mobile-designer/internal/storage"
)

type Options struct {
	Source   string
	Parallel bool
	Workers  int
	// Waivers, when present, suppress matching failures before the
	// report is aggregated.
	Waivers []storage.Waiver
}

// Validate evaluates scenes against reg and returns a fresh run with
// its aggregated report attached.
func Validate(ctx context.Context, reg *rules.Registry, scenes []ir.Scene, opts Options) *ir.Run {
	run := &ir.Run{
		ID:        "run-" + uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Source:    opts.Source,
		IRVersion: ir.Version,
		Scenes:    scenes,
	}
	s := reg.Settings()
	run.Context.SeverityThreshold = string(s.SeverityThreshold)
	for id, off := range s.Disabled {
		if off {
			run.Context.DisabledRules = append(run.Context.DisabledRules, id)
		}
	}
	sort.Strings(run.Context.DisabledRules)

	if opts.Parallel {
		run.Verdicts = evaluator.EvaluateParallel(ctx, reg, scenes, opts.Workers)
	} else {
		run.Verdicts = evaluator.Evaluate(reg, scenes)
	}
	if len(opts.Waivers) > 0 {
		run.Verdicts, _ = rules.ApplyWaivers(run.Verdicts, opts.Waivers)
	}
	run.Report = report.Aggregate(run.Verdicts)
	return run
}
