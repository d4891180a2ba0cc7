// Package contrast computes WCAG relative-luminance contrast ratios
// for sRGB color pairs expressed as hex strings.
package contrast

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// RGB holds sRGB channels in [0,1].
type RGB struct {
	R, G, B float64
}

// ParseHex accepts #RGB and #RRGGBB (leading '#' optional).
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	case 6:
	default:
		return RGB{}, errors.Errorf("invalid hex color %q", s)
	}
	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, errors.Wrapf(err, "invalid hex color %q", s)
	}
	return RGB{
		R: float64(n>>16&0xff) / 255.0,
		G: float64(n>>8&0xff) / 255.0,
		B: float64(n&0xff) / 255.0,
	}, nil
}

// Luminance returns the WCAG relative luminance of c.
func Luminance(c RGB) float64 {
	lin := func(v float64) float64 {
		if v <= 0.03928 {
			return v / 12.92
		}
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return 0.2126*lin(c.R) + 0.7152*lin(c.G) + 0.0722*lin(c.B)
}

// Ratio returns (L1+0.05)/(L2+0.05) with L1 >= L2, so the result is
// symmetric in its arguments and 1.0 for identical colors. Range is
// [1, 21].
func Ratio(fg, bg string) (float64, error) {
	f, err := ParseHex(fg)
	if err != nil {
		return 0, errors.Wrap(err, "foreground")
	}
	b, err := ParseHex(bg)
	if err != nil {
		return 0, errors.Wrap(err, "background")
	}
	l1, l2 := Luminance(f), Luminance(b)
	if l2 > l1 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05), nil
}
