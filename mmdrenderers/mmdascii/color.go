package mmdascii

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"oss.terrastruct.com/mmd/lib/color"
	"oss.terrastruct.com/mmd/lib/env"
	"oss.terrastruct.com/mmd/mmdrenderers/mmdascii/asciicanvas"
	"oss.terrastruct.com/mmd/mmdthemes"
)

type ColorMode string

const (
	ColorNone      ColorMode = "none"
	ColorAuto      ColorMode = "auto"
	Color16        ColorMode = "16"
	Color256       ColorMode = "256"
	ColorTrueColor ColorMode = "truecolor"
)

func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(s); m {
	case ColorNone, ColorAuto, Color16, Color256, ColorTrueColor:
		return m, nil
	case "":
		return ColorNone, nil
	}
	return "", fmt.Errorf("unknown color mode %q", s)
}

// Profile maps m to a terminal colour profile. Auto honours NO_COLOR, then
// an MMD_COLOR override, then what the environment advertises.
func (m ColorMode) Profile() termenv.Profile {
	switch m {
	case Color16:
		return termenv.ANSI
	case Color256:
		return termenv.ANSI256
	case ColorTrueColor:
		return termenv.TrueColor
	case ColorAuto:
		if env.NoColor() {
			return termenv.Ascii
		}
		if v, ok := env.ColorMode(); ok {
			if forced, err := ParseColorMode(v); err == nil && forced != ColorAuto {
				return forced.Profile()
			}
		}
		return termenv.EnvColorProfile()
	}
	return termenv.Ascii
}

type painter struct {
	styles map[asciicanvas.Role]lipgloss.Style
}

// newPainter returns nil when the profile carries no colour.
func newPainter(mode ColorMode, theme mmdthemes.Theme) asciicanvas.Painter {
	profile := mode.Profile()
	if profile == termenv.Ascii {
		return nil
	}
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(profile)
	fg := func(code string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(theme.Resolve(code)))
	}
	// arrow heads stand out one shade darker on light backgrounds
	arrow := mmdthemes.EdgeArrow
	if !theme.IsDark() {
		if darker, err := color.Darken(arrow); err == nil {
			arrow = darker
		}
	}
	return &painter{
		styles: map[asciicanvas.Role]lipgloss.Style{
			asciicanvas.RoleBorder: fg(mmdthemes.NodeStroke),
			asciicanvas.RoleText:   fg(mmdthemes.NodeText),
			asciicanvas.RoleLine:   fg(mmdthemes.EdgeStroke),
			asciicanvas.RoleArrow:  fg(arrow).Bold(true),
			asciicanvas.RoleLabel:  fg(mmdthemes.EdgeLabel),
			asciicanvas.RoleGroup:  r.NewStyle().Foreground(lipgloss.Color(theme.Muted(mmdthemes.GroupStroke, 0.3))),
		},
	}
}

func (p *painter) Paint(role asciicanvas.Role, s string) string {
	style, ok := p.styles[role]
	if !ok {
		return s
	}
	return style.Render(s)
}
