// Package color parses color literals: hex notation with 3, 4, 6, or 8
// digits, ten functional forms, or one of the 149 CSS color names.
//
// Grammar:
//
//	c ::= '!'? color
//
//	color ::=
//	  | '#' hex{3|4|6|8}
//	  | ('srgb'|'linear'|'hsl'|'hsv'|'hwb'|'lab'|'lch'|'oklab'|'oklch'|'xyz')
//	    '(' number (',' number){2,3} ')'
//	  | css-name
//
// Every form except 'linear' is normalized to sRGB; 'linear' stays in
// linear-light RGB. A leading '!' yields the bare RGBA value instead of
// the space-tagged Color.
package color

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Space tags the color space a normalized value lives in.
type Space uint8

const (
	SRGB Space = iota
	Linear
)

func (s Space) String() string {
	if s == Linear {
		return "linear"
	}

	return "srgb"
}

// RGBA is a bare color value in its space, components in [0, 1] with
// unclamped alpha multiplied out by nobody.
type RGBA struct {
	R, G, B, A float64
}

// Color is a space-tagged RGBA, the wrapped form literals normally
// produce.
type Color struct {
	Space Space
	RGBA
}

var (
	// ErrSyntax reports a malformed color literal.
	ErrSyntax = errors.New("invalid color literal")

	// ErrHex reports hex notation with a bad digit count or non-hex digit.
	ErrHex = errors.New("invalid hex color")

	// ErrComponents reports a functional form with the wrong arity.
	ErrComponents = errors.New("expected 3 or 4 components")

	// ErrName reports an unknown color name.
	ErrName = errors.New("unknown color name")
)

// Parse parses a color literal. Without the '!' prefix the result is a
// [Color]; with it, the unwrapped [RGBA].
func Parse(s string) (any, error) {
	s = strings.TrimSpace(s)

	if raw, ok := strings.CutPrefix(s, "!"); ok {
		c, err := ParseColor(raw)
		if err != nil {
			return nil, err
		}

		return c.RGBA, nil
	}

	return ParseColor(s)
}

// ParseColor parses a color literal into its wrapped form, rejecting the
// '!' prefix.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)

	switch {
	case s == "":
		return Color{}, fmt.Errorf("%w: empty input", ErrSyntax)

	case s[0] == '#':
		return parseHex(s[1:])
	}

	if fn, args, ok := splitCall(s); ok {
		return parseFunc(fn, args)
	}

	if rgba, ok := named[s]; ok {
		return Color{Space: SRGB, RGBA: rgba}, nil
	}

	return Color{}, fmt.Errorf("%w: %q", ErrName, s)
}

// parseHex expands 3- and 4-digit notation by digit duplication, so
// "#fff" and "#ffffff" are identical.
func parseHex(hex string) (Color, error) {
	for _, c := range hex {
		if !isHexDigit(c) {
			return Color{}, fmt.Errorf("%w: %q", ErrHex, "#"+hex)
		}
	}

	nibble := func(i int) float64 {
		d, _ := strconv.ParseUint(hex[i:i+1], 16, 8)

		return float64(d*0x11) / 0xff
	}

	pair := func(i int) float64 {
		d, _ := strconv.ParseUint(hex[i:i+2], 16, 8)

		return float64(d) / 0xff
	}

	c := Color{Space: SRGB, RGBA: RGBA{A: 1}}

	switch len(hex) {
	case 4:
		c.A = nibble(3)

		fallthrough
	case 3:
		c.R, c.G, c.B = nibble(0), nibble(1), nibble(2)

	case 8:
		c.A = pair(6)

		fallthrough
	case 6:
		c.R, c.G, c.B = pair(0), pair(2), pair(4)

	default:
		return Color{}, fmt.Errorf("%w: %q has %d digits", ErrHex, "#"+hex, len(hex))
	}

	return c, nil
}

func isHexDigit(c rune) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

// splitCall splits "fn(a, b, c)" into its name and argument text.
func splitCall(s string) (fn, args string, ok bool) {
	open := strings.IndexByte(s, '(')
	if open <= 0 || !strings.HasSuffix(s, ")") {
		return "", "", false
	}

	return strings.TrimSpace(s[:open]), s[open+1 : len(s)-1], true
}

func parseFunc(fn, args string) (Color, error) {
	var comps []float64

	for _, a := range strings.Split(args, ",") {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}

		// Percentage arguments scale to the component range.
		scale := 1.0
		if p, ok := strings.CutSuffix(a, "%"); ok {
			a, scale = p, 0.01
		}

		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return Color{}, fmt.Errorf("%w: bad component %q", ErrSyntax, a)
		}

		comps = append(comps, v*scale)
	}

	if len(comps) != 3 && len(comps) != 4 {
		return Color{}, fmt.Errorf("%w, got %d", ErrComponents, len(comps))
	}

	alpha := 1.0
	if len(comps) == 4 {
		alpha = comps[3]
	}

	a, b, c := comps[0], comps[1], comps[2]

	conv, ok := spaces[fn]
	if !ok {
		return Color{}, fmt.Errorf("%w: unknown function %q", ErrSyntax, fn)
	}

	col := conv(a, b, c)
	col.A = alpha

	return col, nil
}

// spaces maps each functional form to its normalizing conversion.
// Everything except linear lands in sRGB.
var spaces = map[string]func(a, b, c float64) Color{
	"srgb": func(r, g, b float64) Color {
		return srgb(r, g, b)
	},

	"linear": func(r, g, b float64) Color {
		return Color{Space: Linear, RGBA: RGBA{R: r, G: g, B: b}}
	},

	"hsl": func(h, s, l float64) Color {
		return fromColorful(colorful.Hsl(h, s, l))
	},

	"hsv": func(h, s, v float64) Color {
		return fromColorful(colorful.Hsv(h, s, v))
	},

	"hwb": func(h, w, b float64) Color {
		return hwb(h, w, b)
	},

	// CSS lab/lch carry L in [0,100] and chroma around [0,125]; the
	// conversion library works in unit L, so both scale by 1/100.
	"lab": func(l, a, b float64) Color {
		return fromColorful(colorful.Lab(l/100, a/100, b/100))
	},

	"lch": func(l, c, h float64) Color {
		return fromColorful(colorful.Hcl(h, c/100, l/100))
	},

	"oklab": func(l, a, b float64) Color {
		return oklab(l, a, b)
	},

	"oklch": func(l, c, h float64) Color {
		rad := h * math.Pi / 180

		return oklab(l, c*math.Cos(rad), c*math.Sin(rad))
	},

	"xyz": func(x, y, z float64) Color {
		return fromColorful(colorful.Xyz(x, y, z))
	},
}

func srgb(r, g, b float64) Color {
	return Color{Space: SRGB, RGBA: RGBA{R: r, G: g, B: b, A: 1}}
}

func fromColorful(c colorful.Color) Color {
	return srgb(c.R, c.G, c.B)
}

// hwb normalizes whiteness and blackness when they sum past one, then
// reaches sRGB through HSV.
func hwb(h, w, b float64) Color {
	if sum := w + b; sum > 1 {
		w, b = w/sum, b/sum
	}

	v := 1 - b

	s := 0.0
	if v > 0 {
		s = 1 - w/v
	}

	return fromColorful(colorful.Hsv(h, s, v))
}

// oklab converts OKLab to sRGB through LMS and linear RGB, using the
// reference matrices from the OKLab definition.
func oklab(l, a, b float64) Color {
	l2 := l + 0.3963377774*a + 0.2158037573*b
	m2 := l - 0.1055613458*a - 0.0638541728*b
	s2 := l - 0.0894841775*a - 1.2914855480*b

	l3, m3, s3 := l2*l2*l2, m2*m2*m2, s2*s2*s2

	r := 4.0767416621*l3 - 3.3077115913*m3 + 0.2309699292*s3
	g := -1.2684380046*l3 + 2.6097574011*m3 - 0.3413193965*s3
	bb := -0.0041960863*l3 - 0.7034186147*m3 + 1.7076147010*s3

	return fromColorful(colorful.LinearRgb(r, g, bb))
}
