// Package oklch recognizes hex color literals and converts them to the
// perceptually uniform OKLCH representation used by generated fallbacks.
package oklch

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// SupportsCondition is the canonical feature query wrapped around every
// generated block. Idempotence detection matches this exact text, so it must
// never change between releases.
const SupportsCondition = "(color: oklch(0 0 0))"

// hexPattern matches a complete hex color: # followed by 3, 4, 6 or 8 hex
// digits and nothing else. Anchoring both ends rejects values like
// "url(#icon)" or quoted tag-like strings.
var hexPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// Triple is a color in OKLCH: lightness, chroma and hue (degrees).
type Triple struct {
	L float64
	C float64
	H float64
}

// ConvertFunc converts a hex color literal to its formatted oklch() text.
// The second result is false when conversion is not possible. Transformers
// consume the converter through this contract only.
type ConvertFunc func(hex string) (string, bool)

// IsHexColor reports whether value (modulo surrounding whitespace) is a hex
// color literal eligible for conversion.
func IsHexColor(value string) bool {
	return hexPattern.MatchString(strings.TrimSpace(value))
}

// Convert parses a 3/4/6/8-digit hex color and returns its OKLCH triple.
// The alpha channel, when present, is tolerated and ignored.
func Convert(hex string) (Triple, error) {
	hex = strings.TrimSpace(hex)
	if !hexPattern.MatchString(hex) {
		return Triple{}, fmt.Errorf("not a hex color: %q", hex)
	}

	// Drop alpha digits - colorful.Hex accepts #rgb and #rrggbb forms only.
	switch len(hex) {
	case 5:
		hex = hex[:4]
	case 9:
		hex = hex[:7]
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return Triple{}, fmt.Errorf("unable to parse %q: %w", hex, err)
	}

	l, ch, h := c.OkLch()
	if h < 0 {
		h += 360
	}
	return Triple{L: l, C: ch, H: h}, nil
}

// Format renders a triple as oklch() function text: lightness and chroma at
// three decimal places, hue at two, trailing zeros and a dangling decimal
// point stripped. The result is bit-stable across runs.
func Format(t Triple) string {
	return fmt.Sprintf("oklch(%s %s %s)", formatComponent(t.L, 3), formatComponent(t.C, 3), formatComponent(t.H, 2))
}

// ConvertValue is the default ConvertFunc: Convert followed by Format.
func ConvertValue(hex string) (string, bool) {
	t, err := Convert(hex)
	if err != nil {
		return "", false
	}
	return Format(t), true
}

func formatComponent(v float64, prec int) string {
	s := strconv.FormatFloat(v, 'f', prec, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "" || s == "-0" {
		s = "0"
	}
	return s
}
