// Package color resolves and manipulates the colours diagrams are drawn with:
// theme codes like B1 and any CSS colour.
package color

import (
	"fmt"
	"regexp"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"
)

var themeColorRegex = regexp.MustCompile(`^(N[1-7]|B[1-6]|AA[245]|AB[45])$`)

func IsThemeColor(colorString string) bool {
	return themeColorRegex.MatchString(colorString)
}

// Normalize parses any CSS colour and returns it as lowercase #rrggbb.
func Normalize(colorString string) (string, error) {
	c, err := csscolorparser.Parse(colorString)
	if err != nil {
		return "", fmt.Errorf("invalid color %q: %w", colorString, err)
	}
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex(), nil
}

// Darken returns the theme code one step darker, or the CSS colour with 10%
// less lightness.
func Darken(colorString string) (string, error) {
	if IsThemeColor(colorString) {
		if colorString[0] != 'B' {
			return "", fmt.Errorf("darkening color %q is not supported", colorString)
		}
		switch colorString[1] {
		case '1', '2':
			return B1, nil
		case '3':
			return B2, nil
		case '4':
			return B3, nil
		case '5':
			return B4, nil
		default:
			return B5, nil
		}
	}
	return darkenCSS(colorString)
}

func darkenCSS(colorString string) (string, error) {
	c, err := csscolorparser.Parse(colorString)
	if err != nil {
		return "", err
	}
	h, s, l := colorful.Color{R: c.R, G: c.G, B: c.B}.Hsl()
	// decrease luminance by 10%
	return colorful.Hsl(h, s, l-.1).Clamped().Hex(), nil
}

// Blend mixes a towards b by t in [0, 1], in Lab space.
func Blend(a, b string, t float64) (string, error) {
	ca, err := csscolorparser.Parse(a)
	if err != nil {
		return "", err
	}
	cb, err := csscolorparser.Parse(b)
	if err != nil {
		return "", err
	}
	from := colorful.Color{R: ca.R, G: ca.G, B: ca.B}
	to := colorful.Color{R: cb.R, G: cb.G, B: cb.B}
	return from.BlendLab(to, t).Clamped().Hex(), nil
}

func LuminanceCategory(colorString string) (string, error) {
	l, err := Luminance(colorString)
	if err != nil {
		return "", err
	}

	switch {
	case l >= .88:
		return "bright", nil
	case l >= .55:
		return "normal", nil
	case l >= .30:
		return "dark", nil
	default:
		return "darker", nil
	}
}

func Luminance(colorString string) (float64, error) {
	c, err := csscolorparser.Parse(colorString)
	if err != nil {
		return 0, err
	}
	return 0.299*c.R + 0.587*c.G + 0.114*c.B, nil
}

const (
	N1 = "N1"
	N2 = "N2"
	N3 = "N3"
	N4 = "N4"
	N5 = "N5"
	N6 = "N6"
	N7 = "N7"

	// Base Colors: used for nodes and groups
	B1 = "B1"
	B2 = "B2"
	B3 = "B3"
	B4 = "B4"
	B5 = "B5"
	B6 = "B6"

	// Alternative colors A
	AA2 = "AA2"
	AA4 = "AA4"
	AA5 = "AA5"

	// Alternative colors B
	AB4 = "AB4"
	AB5 = "AB5"

	// Special
	Empty = ""
	None  = "none"
)
