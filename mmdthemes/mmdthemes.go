// mmdthemes defines the palettes diagrams are coloured with
// Color codes: darkest (N1) -> lightest (N7)
package mmdthemes

import (
	"fmt"
	"strings"

	"oss.terrastruct.com/mmd/lib/color"
)

type Theme struct {
	ID     int64        `json:"id"`
	Name   string       `json:"name"`
	Colors ColorPalette `json:"colors"`
}

type Neutral struct {
	N1 string `json:"n1"`
	N2 string `json:"n2"`
	N3 string `json:"n3"`
	N4 string `json:"n4"`
	N5 string `json:"n5"`
	N6 string `json:"n6"`
	N7 string `json:"n7"`
}

type ColorPalette struct {
	Neutrals Neutral `json:"neutrals"`

	// Base Colors: used for nodes and groups
	B1 string `json:"b1"`
	B2 string `json:"b2"`
	B3 string `json:"b3"`
	B4 string `json:"b4"`
	B5 string `json:"b5"`
	B6 string `json:"b6"`

	// Alternative colors A
	AA2 string `json:"aa2"`
	AA4 string `json:"aa4"`
	AA5 string `json:"aa5"`

	// Alternative colors B
	AB4 string `json:"ab4"`
	AB5 string `json:"ab5"`
}

var CoolNeutral = Neutral{
	N1: "#0A0F25",
	N2: "#676C7E",
	N3: "#9499AB",
	N4: "#CFD2DD",
	N5: "#F0F3F9",
	N6: "#EEF1F8",
	N7: "#FFFFFF",
}

var WarmNeutral = Neutral{
	N1: "#170206",
	N2: "#535152",
	N3: "#787777",
	N4: "#CCCACA",
	N5: "#DFDCDC",
	N6: "#ECEBEB",
	N7: "#FFFFFF",
}

var DarkNeutral = Neutral{
	N1: "#CDD6F4",
	N2: "#BAC2DE",
	N3: "#A6ADC8",
	N4: "#585B70",
	N5: "#45475A",
	N6: "#313244",
	N7: "#1E1E2E",
}

// Theme codes of the diagram elements.
const (
	NodeStroke  = color.B1
	NodeText    = color.N1
	EdgeStroke  = color.B1
	EdgeArrow   = color.B2
	EdgeLabel   = color.N2
	GroupStroke = color.B3
)

func (t *Theme) slot(code string) *string {
	p := &t.Colors
	switch code {
	case color.N1:
		return &p.Neutrals.N1
	case color.N2:
		return &p.Neutrals.N2
	case color.N3:
		return &p.Neutrals.N3
	case color.N4:
		return &p.Neutrals.N4
	case color.N5:
		return &p.Neutrals.N5
	case color.N6:
		return &p.Neutrals.N6
	case color.N7:
		return &p.Neutrals.N7
	case color.B1:
		return &p.B1
	case color.B2:
		return &p.B2
	case color.B3:
		return &p.B3
	case color.B4:
		return &p.B4
	case color.B5:
		return &p.B5
	case color.B6:
		return &p.B6
	case color.AA2:
		return &p.AA2
	case color.AA4:
		return &p.AA4
	case color.AA5:
		return &p.AA5
	case color.AB4:
		return &p.AB4
	case color.AB5:
		return &p.AB5
	}
	return nil
}

// Resolve turns a theme code into the colour t assigns it. Anything else is
// returned as is.
func (t Theme) Resolve(code string) string {
	if !color.IsThemeColor(code) {
		return code
	}
	if s := t.slot(code); s != nil {
		return *s
	}
	return code
}

// Override returns a copy of t with the palette entries in overrides
// replaced. Keys are theme codes in any case; values are any CSS colour.
func (t Theme) Override(overrides map[string]string) (Theme, error) {
	for k, v := range overrides {
		code := strings.ToUpper(strings.TrimSpace(k))
		if !color.IsThemeColor(code) {
			return Theme{}, fmt.Errorf("unknown theme color %q", k)
		}
		hex, err := color.Normalize(v)
		if err != nil {
			return Theme{}, err
		}
		*t.slot(code) = hex
	}
	return t, nil
}

// IsDark reports whether the background, N7, is dark.
func (t Theme) IsDark() bool {
	c, err := color.LuminanceCategory(t.Resolve(color.N7))
	return err == nil && (c == "dark" || c == "darker")
}

// Muted returns the colour of code blended towards the background by
// amount in [0, 1].
func (t Theme) Muted(code string, amount float64) string {
	out, err := color.Blend(t.Resolve(code), t.Resolve(color.N7), amount)
	if err != nil {
		return t.Resolve(code)
	}
	return out
}
