// Package extractor converts scene documents (JSON element records)
// into normalized facts. Extraction failures are fatal for the whole
// run; a fact set is only trusted when every element parsed cleanly.
package extractor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/sh4d0w/ios-mobile-designer/internal/contrast"
	"github.com/sh4d0w/ios-mobile-designer/internal/ir"
)

// MalformedInputError reports the offending element index and the
// missing (or unparseable) field, as surfaced by the CLI and API.
type MalformedInputError struct {
	Source string
	Index  int
	Field  string
	Reason string
}

func (e *MalformedInputError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "missing required field"
	}
	return fmt.Sprintf("%s: element %d: %s %q", e.Source, e.Index, reason, e.Field)
}

type animationDoc struct {
	DurationMs           *float64 `json:"durationMs"`
	Curve                *string  `json:"curve"`
	RespectsReduceMotion *bool    `json:"respectsReduceMotion"`
}

type elementDoc struct {
	ID                  string        `json:"id"`
	Kind                *string       `json:"kind"`
	WidthPt             *float64      `json:"widthPt"`
	HeightPt            *float64      `json:"heightPt"`
	ForegroundColor     *string       `json:"foregroundColor"`
	BackgroundColor     *string       `json:"backgroundColor"`
	FontSizePt          *float64      `json:"fontSizePt"`
	SupportsDynamicType bool          `json:"supportsDynamicType"`
	SpacingPt           *float64      `json:"spacingPt"`
	Material            bool          `json:"material"`
	AccessibilityLabel  string        `json:"accessibilityLabel"`
	Animation           *animationDoc `json:"animation"`
}

type sceneDoc struct {
	Scene    string       `json:"scene"`
	Elements []elementDoc `json:"elements"`
}

var kinds = map[string]ir.Kind{
	"button":  ir.KindButton,
	"toggle":  ir.KindToggle,
	"slider":  ir.KindSlider,
	"control": ir.KindControl,
	"text":    ir.KindText,
	"label":   ir.KindLabel,
	"image":   ir.KindImage,
	"card":    ir.KindCard,
	"sheet":   ir.KindSheet,
}

func sizedKind(k ir.Kind) bool {
	switch k {
	case ir.KindButton, ir.KindToggle, ir.KindSlider, ir.KindControl:
		return true
	}
	return false
}

func textKind(k ir.Kind) bool {
	return k == ir.KindText || k == ir.KindLabel
}

// ParsePath extracts scenes from a single .json file or, for a
// directory, every .json file under it in walk order.
func ParsePath(path string) ([]ir.Scene, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrap(err, "stat input")
	}
	if !info.IsDir() {
		sc, err := parseFile(path)
		if err != nil {
			return nil, err
		}
		return []ir.Scene{sc}, nil
	}

	var scenes []ir.Scene
	err = filepath.WalkDir(path, func(p string, d os.DirEntry, werr error) error {
		if werr != nil {
			return werr
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".json") {
			return nil
		}
		sc, perr := parseFile(p)
		if perr != nil {
			return perr
		}
		scenes = append(scenes, sc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return scenes, nil
}

func parseFile(path string) (ir.Scene, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return ir.Scene{}, errors.Wrap(err, "read scene file")
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ParseDocument(name, b)
}

// ParseDocument accepts either a bare JSON array of element records or
// an object {"scene": ..., "elements": [...]}. Element order is
// preserved; unknown kinds become KindUnknown facts that no rule
// applies to.
func ParseDocument(name string, data []byte) (ir.Scene, error) {
	var doc sceneDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		var els []elementDoc
		if aerr := json.Unmarshal(data, &els); aerr != nil {
			return ir.Scene{}, errors.Wrapf(err, "parse scene %s", name)
		}
		doc.Elements = els
	}
	if doc.Scene != "" {
		name = doc.Scene
	}

	scene := ir.Scene{Name: name}
	for i, el := range doc.Elements {
		fact, err := extractElement(name, i, el)
		if err != nil {
			return ir.Scene{}, err
		}
		scene.Facts = append(scene.Facts, fact)
	}
	dedupeElementIDs(scene.Facts)
	annotateMaterialSurfaces(scene.Facts)
	return scene, nil
}

// dedupeElementIDs makes element IDs unique within a scene. Verdicts
// are keyed by (scene, element, rule) in storage and in the run diff,
// so a reused id must not collide; later occurrences get an
// occurrence suffix.
func dedupeElementIDs(facts []ir.Fact) {
	seen := map[string]bool{}
	for i := range facts {
		id := facts[i].ElementID
		if !seen[id] {
			seen[id] = true
			continue
		}
		for n := 2; ; n++ {
			candidate := fmt.Sprintf("%s#%d", id, n)
			if !seen[candidate] {
				facts[i].ElementID = candidate
				seen[candidate] = true
				break
			}
		}
	}
}

func extractElement(scene string, idx int, el elementDoc) (ir.Fact, error) {
	if el.Kind == nil || strings.TrimSpace(*el.Kind) == "" {
		return ir.Fact{}, &MalformedInputError{Source: scene, Index: idx, Field: "kind"}
	}

	fact := ir.Fact{
		ElementID:           el.ID,
		Scene:               scene,
		Ordinal:             idx,
		SupportsDynamicType: el.SupportsDynamicType,
		UsesMaterial:        el.Material,
		AccessibilityLabel:  strings.TrimSpace(el.AccessibilityLabel),
	}
	if fact.ElementID == "" {
		fact.ElementID = fmt.Sprintf("e%d", idx+1)
	}

	kind, ok := kinds[strings.ToLower(strings.TrimSpace(*el.Kind))]
	if !ok {
		fact.Kind = ir.KindUnknown
		return fact, nil
	}
	fact.Kind = kind

	if sizedKind(kind) {
		if el.WidthPt == nil {
			return ir.Fact{}, &MalformedInputError{Source: scene, Index: idx, Field: "widthPt"}
		}
		if el.HeightPt == nil {
			return ir.Fact{}, &MalformedInputError{Source: scene, Index: idx, Field: "heightPt"}
		}
	}
	if el.WidthPt != nil {
		fact.WidthPt = *el.WidthPt
	}
	if el.HeightPt != nil {
		fact.HeightPt = *el.HeightPt
	}

	if textKind(kind) {
		if el.ForegroundColor == nil {
			return ir.Fact{}, &MalformedInputError{Source: scene, Index: idx, Field: "foregroundColor"}
		}
		if el.BackgroundColor == nil {
			return ir.Fact{}, &MalformedInputError{Source: scene, Index: idx, Field: "backgroundColor"}
		}
		if el.FontSizePt == nil {
			return ir.Fact{}, &MalformedInputError{Source: scene, Index: idx, Field: "fontSizePt"}
		}
	}
	if el.FontSizePt != nil {
		fact.FontSizePt = *el.FontSizePt
	}
	if el.ForegroundColor != nil && el.BackgroundColor != nil {
		fact.ForegroundColor = *el.ForegroundColor
		fact.BackgroundColor = *el.BackgroundColor
		ratio, err := contrast.Ratio(fact.ForegroundColor, fact.BackgroundColor)
		if err != nil {
			field := "foregroundColor"
			if strings.Contains(err.Error(), "background") {
				field = "backgroundColor"
			}
			return ir.Fact{}, &MalformedInputError{
				Source: scene, Index: idx, Field: field, Reason: "invalid color in field",
			}
		}
		fact.ContrastRatio = ratio
	}

	if el.SpacingPt != nil {
		fact.SpacingPt = *el.SpacingPt
		fact.HasSpacing = true
	}

	if el.Animation != nil {
		if el.Animation.DurationMs == nil {
			return ir.Fact{}, &MalformedInputError{Source: scene, Index: idx, Field: "animation.durationMs"}
		}
		if el.Animation.Curve == nil {
			return ir.Fact{}, &MalformedInputError{Source: scene, Index: idx, Field: "animation.curve"}
		}
		if el.Animation.RespectsReduceMotion == nil {
			return ir.Fact{}, &MalformedInputError{Source: scene, Index: idx, Field: "animation.respectsReduceMotion"}
		}
		fact.Animated = true
		fact.DurationMs = *el.Animation.DurationMs
		fact.Curve = strings.ToLower(strings.TrimSpace(*el.Animation.Curve))
		fact.UsesSpringCurve = fact.Curve == "spring"
		fact.RespectsReduceMotion = *el.Animation.RespectsReduceMotion
	}

	return fact, nil
}

// annotateMaterialSurfaces stamps the scene-wide material surface count
// onto each material-bearing fact so the surface-budget rule stays a
// pure per-fact predicate.
func annotateMaterialSurfaces(facts []ir.Fact) {
	count := 0
	for i := range facts {
		if facts[i].UsesMaterial {
			count++
		}
	}
	if count == 0 {
		return
	}
	for i := range facts {
		if facts[i].UsesMaterial {
			facts[i].MaterialSurfaces = count
		}
	}
}
