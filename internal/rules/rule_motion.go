package rules

import "github.com/sh4d0w/ios-mobile-designer/internal/ir"

// Standard transitions longer than this read as sluggish.
const maxAnimationMs = 400.0

func reduceMotionRule() Rule {
	return Rule{
		ID:       "REDUCE-MOTION-FALLBACK",
		Category: ir.CategoryMotion,
		Severity: ir.SeverityError,
		Summary:  "Animated elements provide a Reduce Motion fallback.",
		Message:  "Animation ignores the Reduce Motion accessibility setting; provide a cross-fade or static fallback.",
		Predicate: func(f ir.Fact) (bool, error) {
			return f.RespectsReduceMotion, nil
		},
	}
}

func motionDurationRule() Rule {
	return Rule{
		ID:       "MOTION-DURATION",
		Category: ir.CategoryMotion,
		Severity: ir.SeverityWarning,
		Summary:  "Transition animations complete within 400ms.",
		Message:  "Animation runs longer than 400ms; shorten it so the interface stays responsive.",
		Predicate: func(f ir.Fact) (bool, error) {
			return f.DurationMs <= maxAnimationMs, nil
		},
	}
}

func motionSpringRule() Rule {
	return Rule{
		ID:       "MOTION-SPRING",
		Category: ir.CategoryMotion,
		Severity: ir.SeverityInfo,
		Summary:  "Interactive animations prefer spring curves over fixed easing.",
		Message:  "Animation uses a fixed easing curve; a spring curve tracks gestures more naturally.",
		Predicate: func(f ir.Fact) (bool, error) {
			return f.UsesSpringCurve, nil
		},
	}
}
