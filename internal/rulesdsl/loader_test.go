package rulesdsl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sh4d0w/ios-mobile-designer/internal/ir"
	"github.com/sh4d0w/ios-mobile-designer/internal/rules"
)

func writePack(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pack.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAndRegister(t *testing.T) {
	pack := `
rules:
  - id: TEAM-TOUCH-TARGET-48
    category: touch_target
    severity: WARNING
    summary: House style wants 48pt targets.
    message: Touch target below the house 48pt minimum.
    where:
      kind: button
      checks:
        - attr: widthPt
          min: 48
        - attr: heightPt
          min: 48
  - id: TEAM-SHORT-MOTION
    category: motion
    severity: INFO
    message: Keep animations under 250ms.
    where:
      checks:
        - attr: durationMs
          max: 250
`
	reg := rules.NewRegistry()
	n, err := LoadAndRegister(writePack(t, pack), reg)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, reg.Len())

	rule, ok := reg.Get("TEAM-TOUCH-TARGET-48")
	require.True(t, ok)
	assert.Equal(t, ir.CategoryTouchTarget, rule.Category)

	ok, err = rule.Predicate(ir.Fact{Kind: ir.KindButton, WidthPt: 44, HeightPt: 50})
	require.NoError(t, err)
	assert.False(t, ok)

	// other kinds are out of scope and pass
	ok, err = rule.Predicate(ir.Fact{Kind: ir.KindToggle, WidthPt: 10, HeightPt: 10})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLoadAndRegister_BooleanAttr(t *testing.T) {
	pack := `
rules:
  - id: TEAM-NO-SPRINGS
    category: motion
    severity: INFO
    message: House style avoids spring curves.
    where:
      checks:
        - attr: usesSpringCurve
          require: false
`
	reg := rules.NewRegistry()
	_, err := LoadAndRegister(writePack(t, pack), reg)
	require.NoError(t, err)

	rule, _ := reg.Get("TEAM-NO-SPRINGS")
	ok, err := rule.Predicate(ir.Fact{UsesSpringCurve: true})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLoadAndRegister_CollectsAllCompileErrors(t *testing.T) {
	pack := `
rules:
  - id: BAD-ATTR
    category: motion
    severity: INFO
    message: m
    where:
      checks:
        - attr: warpFactor
          min: 1
  - id: BAD-SEVERITY
    category: motion
    severity: CATASTROPHIC
    message: m
  - id: GOOD
    category: spacing
    severity: WARNING
    message: m
    where:
      checks:
        - attr: spacingPt
          multiple_of: 4
`
	reg := rules.NewRegistry()
	n, err := LoadAndRegister(writePack(t, pack), reg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BAD-ATTR")
	assert.Contains(t, err.Error(), "BAD-SEVERITY")
	assert.Equal(t, 1, n, "the valid rule still compiles")
}

func TestLoadAndRegister_DuplicateAgainstBuiltin(t *testing.T) {
	pack := `
rules:
  - id: SPACING-GRID
    category: spacing
    severity: WARNING
    message: m
    where:
      checks:
        - attr: spacingPt
          multiple_of: 8
`
	reg := rules.Builtin()
	_, err := LoadAndRegister(writePack(t, pack), reg)
	require.Error(t, err)
	var dup *rules.DuplicateRuleIDError
	assert.ErrorAs(t, err, &dup)
}

func TestLoadAndRegister_MissingFile(t *testing.T) {
	_, err := LoadAndRegister("/does/not/exist.yaml", rules.NewRegistry())
	assert.Error(t, err)
}
