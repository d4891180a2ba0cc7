package rules

import "github.com/sh4d0w/ios-mobile-designer/internal/ir"

// Stacking more than three translucent materials muddies the depth
// hierarchy and costs compositing time.
const maxMaterialSurfaces = 3

func materialSurfacesRule() Rule {
	return Rule{
		ID:       "MATERIAL-SURFACES",
		Category: ir.CategoryMaterial,
		Severity: ir.SeverityWarning,
		Summary:  "A scene uses materials on at most three surfaces.",
		Message:  "Scene applies materials to more than three surfaces; flatten some layers to opaque backgrounds.",
		Predicate: func(f ir.Fact) (bool, error) {
			return f.MaterialSurfaces <= maxMaterialSurfaces, nil
		},
	}
}
