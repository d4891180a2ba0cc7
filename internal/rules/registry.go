package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sh4d0w/ios-mobile-designer/internal/ir"
)

// DuplicateRuleIDError is a programmer (or rule-pack author) error at
// registry setup time; callers are expected to abort startup on it.
type DuplicateRuleIDError struct {
	ID string
}

func (e *DuplicateRuleIDError) Error() string {
	return fmt.Sprintf("duplicate rule id %q", e.ID)
}

type Settings struct {
	SeverityThreshold ir.Severity
	Disabled          map[string]bool // UPPER(ruleID) -> true
}

// Registry holds the rule set for one validation engine instance.
// It is mutated only during setup and read-only afterwards; there is
// no ambient global registry.
type Registry struct {
	rules    []Rule
	index    map[string]int // UPPER(ruleID) -> index
	settings Settings
}

func NewRegistry() *Registry {
	return &Registry{
		index: map[string]int{},
		settings: Settings{
			SeverityThreshold: ir.SeverityInfo,
			Disabled:          map[string]bool{},
		},
	}
}

func (r *Registry) Register(rule Rule) error {
	key := strings.ToUpper(strings.TrimSpace(rule.ID))
	if key == "" {
		return fmt.Errorf("rule id is required")
	}
	if _, ok := r.index[key]; ok {
		return &DuplicateRuleIDError{ID: rule.ID}
	}
	r.rules = append(r.rules, rule)
	r.index[key] = len(r.rules) - 1
	return nil
}

func (r *Registry) mustRegister(rule Rule) {
	if err := r.Register(rule); err != nil {
		panic(err)
	}
}

// All returns every registered rule in registration order.
func (r *Registry) All() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Enabled returns the rules that survive the disabled set and the
// severity threshold, in registration order. Evaluation order derives
// from this.
func (r *Registry) Enabled() []Rule {
	out := make([]Rule, 0, len(r.rules))
	for _, rule := range r.rules {
		if r.settings.Disabled[strings.ToUpper(rule.ID)] {
			continue
		}
		if ir.SeverityRank(rule.Severity) < ir.SeverityRank(r.settings.SeverityThreshold) {
			continue
		}
		out = append(out, rule)
	}
	return out
}

// ByCategory filters registered rules by category, sorted by ID for
// stable listings.
func (r *Registry) ByCategory(cat ir.Category) []Rule {
	var out []Rule
	for _, rule := range r.rules {
		if rule.Category == cat {
			out = append(out, rule)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *Registry) Get(id string) (Rule, bool) {
	idx, ok := r.index[strings.ToUpper(strings.TrimSpace(id))]
	if !ok {
		return Rule{}, false
	}
	return r.rules[idx], true
}

func (r *Registry) Len() int { return len(r.rules) }

func (r *Registry) SetSettings(s Settings) {
	if s.SeverityThreshold == "" {
		s.SeverityThreshold = ir.SeverityInfo
	}
	if s.Disabled == nil {
		s.Disabled = map[string]bool{}
	}
	r.settings = s
}

func (r *Registry) Settings() Settings { return r.settings }

// Builtin constructs a registry with the stock HIG rule set. The IDs
// are known-unique, so a duplicate here is a bug and panics.
func Builtin() *Registry {
	r := NewRegistry()
	for _, rule := range []Rule{
		touchTargetRule(),
		contrastRule(),
		fontSizeRule(),
		dynamicTypeRule(),
		spacingGridRule(),
		reduceMotionRule(),
		motionDurationRule(),
		motionSpringRule(),
		materialSurfacesRule(),
		accessibilityLabelRule(),
	} {
		r.mustRegister(rule)
	}
	return r
}

// kindCategories is the closed kind-to-category applicability table.
// Unknown kinds map to nothing and are skipped by every rule.
var kindCategories = map[ir.Kind][]ir.Category{
	ir.KindButton:  {ir.CategoryTouchTarget, ir.CategoryColor, ir.CategorySpacing, ir.CategoryMotion, ir.CategoryMaterial, ir.CategoryAccessibility},
	ir.KindToggle:  {ir.CategoryTouchTarget, ir.CategoryColor, ir.CategorySpacing, ir.CategoryMotion, ir.CategoryMaterial, ir.CategoryAccessibility},
	ir.KindSlider:  {ir.CategoryTouchTarget, ir.CategoryColor, ir.CategorySpacing, ir.CategoryMotion, ir.CategoryMaterial, ir.CategoryAccessibility},
	ir.KindControl: {ir.CategoryTouchTarget, ir.CategoryColor, ir.CategorySpacing, ir.CategoryMotion, ir.CategoryMaterial, ir.CategoryAccessibility},
	ir.KindText:    {ir.CategoryTypography, ir.CategoryColor, ir.CategorySpacing, ir.CategoryMotion},
	ir.KindLabel:   {ir.CategoryTypography, ir.CategoryColor, ir.CategorySpacing, ir.CategoryMotion},
	ir.KindImage:   {ir.CategorySpacing, ir.CategoryMotion, ir.CategoryMaterial, ir.CategoryAccessibility},
	ir.KindCard:    {ir.CategorySpacing, ir.CategoryMotion, ir.CategoryMaterial},
	ir.KindSheet:   {ir.CategorySpacing, ir.CategoryMotion, ir.CategoryMaterial},
}

// Applies reports whether rules of the given category evaluate against
// the fact. Beyond the kind table, attribute-presence gates keep rules
// from judging attributes the element never declared.
func Applies(cat ir.Category, f ir.Fact) bool {
	switch cat {
	case ir.CategoryMotion:
		if !f.Animated {
			return false
		}
	case ir.CategorySpacing:
		if !f.HasSpacing {
			return false
		}
	case ir.CategoryMaterial:
		if !f.UsesMaterial {
			return false
		}
	case ir.CategoryColor:
		if f.ForegroundColor == "" || f.BackgroundColor == "" {
			return false
		}
	}
	for _, c := range kindCategories[f.Kind] {
		if c == cat {
			return true
		}
	}
	return false
}
