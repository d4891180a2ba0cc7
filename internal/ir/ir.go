package ir

import "time"

const Version = "1.0"

// Category buckets every rule and verdict. The set is closed; the
// kind-to-category applicability table lives in the rules package.
type Category string

const (
	CategoryTypography    Category = "typography"
	CategoryColor         Category = "color"
	CategorySpacing       Category = "spacing"
	CategoryTouchTarget   Category = "touch_target"
	CategoryMotion        Category = "motion"
	CategoryMaterial      Category = "material"
	CategoryAccessibility Category = "accessibility"
)

// Categories lists all categories in stable report order.
func Categories() []Category {
	return []Category{
		CategoryTypography,
		CategoryColor,
		CategorySpacing,
		CategoryTouchTarget,
		CategoryMotion,
		CategoryMaterial,
		CategoryAccessibility,
	}
}

type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
	SeverityInfo    Severity = "INFO"
)

// SeverityRank orders severities for threshold filtering and sorting.
// Unknown strings rank as INFO.
func SeverityRank(s Severity) int {
	switch s {
	case SeverityError:
		return 3
	case SeverityWarning:
		return 2
	default:
		return 1
	}
}

// Kind is the closed element taxonomy. Unrecognized input kinds map to
// KindUnknown and are skipped by every rule.
type Kind string

const (
	KindButton  Kind = "button"
	KindToggle  Kind = "toggle"
	KindSlider  Kind = "slider"
	KindControl Kind = "control"
	KindText    Kind = "text"
	KindLabel   Kind = "label"
	KindImage   Kind = "image"
	KindCard    Kind = "card"
	KindSheet   Kind = "sheet"
	KindUnknown Kind = "unknown"
)

// Fact is one normalized observation about a single UI element.
// Produced by the extractor, immutable afterwards. Presence flags
// (HasSpacing, Animated, UsesMaterial) gate rule applicability so a
// zero value is never mistaken for an observed attribute.
type Fact struct {
	ElementID string `json:"element_id"`
	Scene     string `json:"scene,omitempty"`
	Ordinal   int    `json:"ordinal"`
	Kind      Kind   `json:"kind"`

	WidthPt  float64 `json:"width_pt,omitempty"`
	HeightPt float64 `json:"height_pt,omitempty"`

	ForegroundColor string  `json:"foreground_color,omitempty"`
	BackgroundColor string  `json:"background_color,omitempty"`
	ContrastRatio   float64 `json:"contrast_ratio,omitempty"`

	FontSizePt          float64 `json:"font_size_pt,omitempty"`
	SupportsDynamicType bool    `json:"supports_dynamic_type,omitempty"`

	SpacingPt  float64 `json:"spacing_pt,omitempty"`
	HasSpacing bool    `json:"has_spacing,omitempty"`

	Animated             bool    `json:"animated,omitempty"`
	DurationMs           float64 `json:"duration_ms,omitempty"`
	Curve                string  `json:"curve,omitempty"`
	UsesSpringCurve      bool    `json:"uses_spring_curve,omitempty"`
	RespectsReduceMotion bool    `json:"respects_reduce_motion,omitempty"`

	UsesMaterial     bool `json:"uses_material,omitempty"`
	MaterialSurfaces int  `json:"material_surfaces,omitempty"`

	AccessibilityLabel string `json:"accessibility_label,omitempty"`
}

// Verdict records one rule applied to one fact. Never mutated after
// the evaluator creates it.
type Verdict struct {
	RuleID    string   `json:"rule_id"`
	ElementID string   `json:"element_id"`
	Scene     string   `json:"scene,omitempty"`
	Category  Category `json:"category"`
	Severity  Severity `json:"severity"`
	Passed    bool     `json:"passed"`
	Message   string   `json:"message,omitempty"`
}

type Outcome string

const (
	OutcomePass Outcome = "PASS"
	OutcomeWarn Outcome = "WARN"
	OutcomeFail Outcome = "FAIL"
)

type Summary struct {
	Pass  int `json:"pass"`
	Warn  int `json:"warn"`
	Fail  int `json:"fail"`
	Total int `json:"total"`
}

// Report is the aggregated read-side view of a run's verdicts.
type Report struct {
	Summary    Summary                `json:"summary"`
	Categories map[Category][]Verdict `json:"categories"`
	Overall    Outcome                `json:"overall"`
}

// Scene groups the facts extracted from one input document.
type Scene struct {
	Name  string `json:"name"`
	Facts []Fact `json:"facts"`
}

type Context struct {
	SeverityThreshold string   `json:"severity_threshold,omitempty"`
	DisabledRules     []string `json:"disabled_rules,omitempty"`
	FailOn            string   `json:"fail_on,omitempty"`
}

// Run wraps one validation from input to report, the unit persisted to
// storage and rendered by the reporting writers.
type Run struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
	Source    string    `json:"source,omitempty"`
	IRVersion string    `json:"ir_version,omitempty"`

	Context  Context   `json:"context"`
	Scenes   []Scene   `json:"scenes"`
	Verdicts []Verdict `json:"verdicts,omitempty"`
	Report   *Report   `json:"report,omitempty"`
}
