package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sh4d0w/ios-mobile-designer/internal/ir"
)

func eval(t *testing.T, r Rule, f ir.Fact) bool {
	t.Helper()
	ok, err := r.Predicate(f)
	require.NoError(t, err)
	return ok
}

func TestTouchTarget_PerDimension(t *testing.T) {
	r := touchTargetRule()
	assert.True(t, eval(t, r, ir.Fact{WidthPt: 44, HeightPt: 44}))
	assert.True(t, eval(t, r, ir.Fact{WidthPt: 120, HeightPt: 50}))
	// width below minimum fails even when height passes
	assert.False(t, eval(t, r, ir.Fact{WidthPt: 40, HeightPt: 48}))
	assert.False(t, eval(t, r, ir.Fact{WidthPt: 48, HeightPt: 40}))
	assert.False(t, eval(t, r, ir.Fact{WidthPt: 43.5, HeightPt: 44}))
}

func TestContrast_Thresholds(t *testing.T) {
	r := contrastRule()
	assert.True(t, eval(t, r, ir.Fact{ContrastRatio: 4.5, FontSizePt: 17}))
	assert.False(t, eval(t, r, ir.Fact{ContrastRatio: 4.4, FontSizePt: 17}))
	// large text gets the relaxed 3:1 minimum
	assert.True(t, eval(t, r, ir.Fact{ContrastRatio: 3.2, FontSizePt: 22}))
	assert.False(t, eval(t, r, ir.Fact{ContrastRatio: 2.9, FontSizePt: 28}))
}

func TestFontSizeMin(t *testing.T) {
	r := fontSizeRule()
	assert.True(t, eval(t, r, ir.Fact{FontSizePt: 11}))
	assert.False(t, eval(t, r, ir.Fact{FontSizePt: 10}))
}

func TestDynamicType(t *testing.T) {
	r := dynamicTypeRule()
	assert.True(t, eval(t, r, ir.Fact{SupportsDynamicType: true}))
	assert.False(t, eval(t, r, ir.Fact{}))
}

func TestSpacingGrid_MultiplesOfEight(t *testing.T) {
	r := spacingGridRule()
	assert.False(t, eval(t, r, ir.Fact{SpacingPt: 12}))
	assert.True(t, eval(t, r, ir.Fact{SpacingPt: 16}))
	assert.True(t, eval(t, r, ir.Fact{SpacingPt: 24}))
	assert.True(t, eval(t, r, ir.Fact{SpacingPt: 0}))
}

func TestMotionRules(t *testing.T) {
	assert.False(t, eval(t, reduceMotionRule(), ir.Fact{Animated: true}))
	assert.True(t, eval(t, reduceMotionRule(), ir.Fact{Animated: true, RespectsReduceMotion: true}))

	assert.True(t, eval(t, motionDurationRule(), ir.Fact{DurationMs: 400}))
	assert.False(t, eval(t, motionDurationRule(), ir.Fact{DurationMs: 401}))

	assert.True(t, eval(t, motionSpringRule(), ir.Fact{UsesSpringCurve: true}))
	assert.False(t, eval(t, motionSpringRule(), ir.Fact{Curve: "ease-in-out"}))
}

func TestMaterialSurfaces(t *testing.T) {
	r := materialSurfacesRule()
	assert.True(t, eval(t, r, ir.Fact{UsesMaterial: true, MaterialSurfaces: 3}))
	assert.False(t, eval(t, r, ir.Fact{UsesMaterial: true, MaterialSurfaces: 4}))
}

func TestAccessibilityLabel(t *testing.T) {
	r := accessibilityLabelRule()
	assert.True(t, eval(t, r, ir.Fact{AccessibilityLabel: "Continue"}))
	assert.False(t, eval(t, r, ir.Fact{}))
}
