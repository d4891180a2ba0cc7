// Package rulesdsl loads YAML rule packs so teams can add checks
// (stricter touch targets, house spacing grids) without recompiling.
package rulesdsl

import (
	"math"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/sh4d0w/ios-mobile-designer/internal/ir"
	"github.com/sh4d0w/ios-mobile-designer/internal/rules"
)

type dslPack struct {
	Rules []dslRule `yaml:"rules"`
}

type dslRule struct {
	ID       string `yaml:"id"`
	Category string `yaml:"category"` // typography|color|spacing|touch_target|motion|material|accessibility
	Severity string `yaml:"severity"` // ERROR|WARNING|INFO
	Summary  string `yaml:"summary"`
	Message  string `yaml:"message"`

	Where struct {
		Kind   string     `yaml:"kind"` // optional kind restriction
		Checks []dslCheck `yaml:"checks"`
	} `yaml:"where"`
}

// dslCheck is one attribute constraint; all constraints must hold for
// the rule to pass.
type dslCheck struct {
	Attr       string   `yaml:"attr"`
	Min        *float64 `yaml:"min"`
	Max        *float64 `yaml:"max"`
	MultipleOf *float64 `yaml:"multiple_of"`
	Require    *bool    `yaml:"require"` // for boolean attributes
}

var numericAttrs = map[string]func(ir.Fact) float64{
	"widthPt":          func(f ir.Fact) float64 { return f.WidthPt },
	"heightPt":         func(f ir.Fact) float64 { return f.HeightPt },
	"fontSizePt":       func(f ir.Fact) float64 { return f.FontSizePt },
	"spacingPt":        func(f ir.Fact) float64 { return f.SpacingPt },
	"durationMs":       func(f ir.Fact) float64 { return f.DurationMs },
	"contrastRatio":    func(f ir.Fact) float64 { return f.ContrastRatio },
	"materialSurfaces": func(f ir.Fact) float64 { return float64(f.MaterialSurfaces) },
}

var boolAttrs = map[string]func(ir.Fact) bool{
	"supportsDynamicType":   func(f ir.Fact) bool { return f.SupportsDynamicType },
	"respectsReduceMotion":  func(f ir.Fact) bool { return f.RespectsReduceMotion },
	"usesSpringCurve":       func(f ir.Fact) bool { return f.UsesSpringCurve },
	"usesMaterial":          func(f ir.Fact) bool { return f.UsesMaterial },
	"animated":              func(f ir.Fact) bool { return f.Animated },
	"hasAccessibilityLabel": func(f ir.Fact) bool { return f.AccessibilityLabel != "" },
}

var categories = map[string]ir.Category{
	"typography":    ir.CategoryTypography,
	"color":         ir.CategoryColor,
	"spacing":       ir.CategorySpacing,
	"touch_target":  ir.CategoryTouchTarget,
	"motion":        ir.CategoryMotion,
	"material":      ir.CategoryMaterial,
	"accessibility": ir.CategoryAccessibility,
}

var severities = map[string]ir.Severity{
	"ERROR":   ir.SeverityError,
	"WARNING": ir.SeverityWarning,
	"INFO":    ir.SeverityInfo,
}

// LoadAndRegister compiles every rule in the pack at path into reg.
// Compile problems are collected per rule so a pack author sees all of
// them at once; on any error nothing may be trusted and the caller
// should abort startup.
func LoadAndRegister(path string, reg *rules.Registry) (int, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, errors.Wrap(err, "read rules pack")
	}
	var pack dslPack
	if err := yaml.Unmarshal(b, &pack); err != nil {
		return 0, errors.Wrap(err, "parse yaml")
	}

	var merr *multierror.Error
	n := 0
	for _, r := range pack.Rules {
		rule, err := compile(r)
		if err != nil {
			merr = multierror.Append(merr, errors.Wrapf(err, "rule %q", r.ID))
			continue
		}
		if err := reg.Register(rule); err != nil {
			merr = multierror.Append(merr, err)
			continue
		}
		n++
	}
	return n, merr.ErrorOrNil()
}

func compile(r dslRule) (rules.Rule, error) {
	if r.ID == "" || r.Category == "" || r.Severity == "" || r.Message == "" {
		return rules.Rule{}, errors.New("missing required fields (id/category/severity/message)")
	}
	cat, ok := categories[strings.ToLower(strings.TrimSpace(r.Category))]
	if !ok {
		return rules.Rule{}, errors.Errorf("unknown category %q", r.Category)
	}
	sev, ok := severities[strings.ToUpper(strings.TrimSpace(r.Severity))]
	if !ok {
		return rules.Rule{}, errors.Errorf("unknown severity %q", r.Severity)
	}

	kind := ir.Kind(strings.ToLower(strings.TrimSpace(r.Where.Kind)))
	checks := make([]func(ir.Fact) bool, 0, len(r.Where.Checks))
	for _, c := range r.Where.Checks {
		fn, err := compileCheck(c)
		if err != nil {
			return rules.Rule{}, err
		}
		checks = append(checks, fn)
	}

	return rules.Rule{
		ID:       r.ID,
		Category: cat,
		Severity: sev,
		Summary:  r.Summary,
		Message:  r.Message,
		Predicate: func(f ir.Fact) (bool, error) {
			if kind != "" && f.Kind != kind {
				return true, nil // out of scope for this rule
			}
			for _, check := range checks {
				if !check(f) {
					return false, nil
				}
			}
			return true, nil
		},
	}, nil
}

func compileCheck(c dslCheck) (func(ir.Fact) bool, error) {
	if c.Attr == "" {
		return nil, errors.New("check is missing attr")
	}
	if get, ok := numericAttrs[c.Attr]; ok {
		if c.Require != nil {
			return nil, errors.Errorf("attr %q is numeric; require is for boolean attributes", c.Attr)
		}
		if c.Min == nil && c.Max == nil && c.MultipleOf == nil {
			return nil, errors.Errorf("attr %q needs min, max, or multiple_of", c.Attr)
		}
		min, max, mult := c.Min, c.Max, c.MultipleOf
		if mult != nil && *mult <= 0 {
			return nil, errors.Errorf("attr %q: multiple_of must be positive", c.Attr)
		}
		return func(f ir.Fact) bool {
			v := get(f)
			if min != nil && v < *min {
				return false
			}
			if max != nil && v > *max {
				return false
			}
			if mult != nil && math.Mod(v, *mult) != 0 {
				return false
			}
			return true
		}, nil
	}
	if get, ok := boolAttrs[c.Attr]; ok {
		if c.Require == nil {
			return nil, errors.Errorf("attr %q needs require: true|false", c.Attr)
		}
		want := *c.Require
		return func(f ir.Fact) bool { return get(f) == want }, nil
	}
	return nil, errors.Errorf("unknown attr %q", c.Attr)
}
