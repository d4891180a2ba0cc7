// Package evaluator applies a rule registry to extracted facts.
// Facts are visited in input order and rules in registry order, so a
// run over the same input always yields the same verdict sequence.
package evaluator

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/sh4d0w/ios-mobile-designer/internal/ir"
	"github.com/sh4d0w/ios-mobile-designer/internal/rules"
)

// Evaluate produces one verdict per applicable (rule, fact) pair.
func Evaluate(reg *rules.Registry, scenes []ir.Scene) []ir.Verdict {
	enabled := reg.Enabled()
	var out []ir.Verdict
	for _, sc := range scenes {
		for _, f := range sc.Facts {
			out = append(out, evalFact(enabled, f)...)
		}
	}
	return out
}

// EvaluateParallel evaluates facts concurrently with at most workers
// goroutines. Rule-fact pairs are independent pure computations, so
// the only ordering obligation is presentation: results are collected
// per fact slot and concatenated in input order, which keeps the
// output identical to Evaluate.
func EvaluateParallel(ctx context.Context, reg *rules.Registry, scenes []ir.Scene, workers int) []ir.Verdict {
	enabled := reg.Enabled()

	var facts []ir.Fact
	for _, sc := range scenes {
		facts = append(facts, sc.Facts...)
	}
	if len(facts) == 0 {
		return nil
	}
	if workers <= 0 {
		workers = 4
	}

	slots := make([][]ir.Verdict, len(facts))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, f := range facts {
		g.Go(func() error {
			slots[i] = evalFact(enabled, f)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; failures become verdicts

	var out []ir.Verdict
	for _, vs := range slots {
		out = append(out, vs...)
	}
	return out
}

func evalFact(enabled []rules.Rule, f ir.Fact) []ir.Verdict {
	var out []ir.Verdict
	for _, r := range enabled {
		if !rules.Applies(r.Category, f) {
			continue
		}
		out = append(out, applyRule(r, f))
	}
	return out
}

// applyRule isolates predicate faults: an error or panic becomes a
// failing ERROR verdict for this pair and the run continues.
func applyRule(r rules.Rule, f ir.Fact) ir.Verdict {
	v := ir.Verdict{
		RuleID:    r.ID,
		ElementID: f.ElementID,
		Scene:     f.Scene,
		Category:  r.Category,
		Severity:  r.Severity,
	}
	ok, err := safePredicate(r, f)
	if err != nil {
		v.Severity = ir.SeverityError
		v.Passed = false
		v.Message = "rule evaluation failed: " + err.Error()
		return v
	}
	v.Passed = ok
	if !ok {
		v.Message = r.Message
	}
	return v
}

func safePredicate(r rules.Rule, f ir.Fact) (ok bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			ok = false
			err = fmt.Errorf("%v", rec)
		}
	}()
	return r.Predicate(f)
}
