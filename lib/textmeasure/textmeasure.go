// Package textmeasure estimates the rendered size of text without a font
// engine. Every grapheme cluster falls into a width class measured in units,
// one unit being the advance of an average lowercase letter.
package textmeasure

import (
	"math"
	"regexp"
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
	"golang.org/x/text/width"
)

const (
	TAB_SIZE = 4

	FONT_SIZE_S  = 12
	FONT_SIZE_M  = 16
	FONT_SIZE_L  = 20
	FONT_SIZE_XL = 24

	DEFAULT_LINE_HEIGHT_FACTOR = 1.5

	// bold text runs slightly wider
	boldFactor = 1.05
)

// Width classes in units.
const (
	ZeroUnits    = 0.
	NarrowUnits  = 0.4
	SlimUnits    = 0.6
	RegularUnits = 1.
	CapitalUnits = 1.2
	BroadUnits   = 1.5
	WideUnits    = 2.
)

const (
	narrowChars = "il.,:;'!|`"
	slimChars   = "fjrtI()[]{}/\\-\" "
	broadChars  = "mwMW@%"
)

type FontStyle string

const (
	FONT_STYLE_REGULAR FontStyle = "regular"
	FONT_STYLE_BOLD    FontStyle = "bold"
	FONT_STYLE_ITALIC  FontStyle = "italic"
)

type Font struct {
	Family string
	Size   int
	Style  FontStyle
}

func NewFont(family string, size int, style FontStyle) Font {
	return Font{Family: family, Size: size, Style: style}
}

// unit advance as a fraction of font size, per family
var familyCalibration = map[string]float64{
	"":                0.55,
	"trebuchet ms":    0.55,
	"arial":           0.55,
	"helvetica":       0.55,
	"verdana":         0.62,
	"times new roman": 0.5,
	"georgia":         0.55,
	"monospace":       0.6,
	"courier new":     0.6,
	"source code pro": 0.6,
}

type Ruler struct {
	LineHeightFactor float64

	mono    bool
	isASCII bool
}

func NewRuler() *Ruler {
	return &Ruler{LineHeightFactor: DEFAULT_LINE_HEIGHT_FACTOR}
}

// NewMonoRuler measures every non-zero-width cell as one unit, or two for wide
// graphemes.
func NewMonoRuler() *Ruler {
	return &Ruler{LineHeightFactor: DEFAULT_LINE_HEIGHT_FACTOR, mono: true}
}

// NewASCIIRuler creates a fake ruler for ASCII rendering that measures each
// terminal cell as 1x1.
func NewASCIIRuler() *Ruler {
	return &Ruler{LineHeightFactor: 1, mono: true, isASCII: true}
}

func (r *Ruler) IsASCII() bool {
	return r.isASCII
}

// RuneUnits returns the width class of a single rune.
func RuneUnits(c rune) float64 {
	switch {
	case c == '\t':
		return TAB_SIZE * SlimUnits
	case unicode.In(c, unicode.Mn, unicode.Me, unicode.Cf):
		return ZeroUnits
	case unicode.IsControl(c):
		return ZeroUnits
	}
	switch width.LookupRune(c).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return WideUnits
	}
	switch {
	case strings.ContainsRune(narrowChars, c):
		return NarrowUnits
	case strings.ContainsRune(slimChars, c):
		return SlimUnits
	case strings.ContainsRune(broadChars, c):
		return BroadUnits
	case unicode.IsUpper(c):
		return CapitalUnits
	}
	return RegularUnits
}

func clusterUnits(cluster string, cellWidth int, mono bool) float64 {
	runes := []rune(cluster)
	if len(runes) == 0 {
		return 0
	}
	first := RuneUnits(runes[0])
	switch {
	case first == ZeroUnits && cellWidth == 0:
		return ZeroUnits
	case first == WideUnits || cellWidth >= 2:
		return WideUnits
	case first == ZeroUnits:
		// a stray modifier leads the cluster
		return ZeroUnits
	case mono && runes[0] == '\t':
		return TAB_SIZE
	case mono:
		return RegularUnits
	}
	return first
}

// Units measures a single line in width units.
func Units(s string) float64 {
	return units(s, false)
}

// MonoUnits measures a single line in monospace cells.
func MonoUnits(s string) float64 {
	return units(s, true)
}

func units(s string, mono bool) float64 {
	total := 0.
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		total += clusterUnits(gr.Str(), gr.Width(), mono)
	}
	return total
}

// Lines splits text on newlines and <br> tags.
func Lines(s string) []string {
	s = brRegex.ReplaceAllString(s, "\n")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(s, "\n")
}

var (
	brRegex  = regexp.MustCompile(`(?i)<br\s*/?>`)
	tagRegex = regexp.MustCompile(`(?i)</?(b|strong|i|em|u|ins|s|del|strike)>`)
	boldTag  = regexp.MustCompile(`(?i)<(b|strong)>`)
)

// StripFormatting drops the inline formatting tags understood by the text
// renderer.
func StripFormatting(s string) string {
	return tagRegex.ReplaceAllString(s, "")
}

func (r *Ruler) unitWidth(font Font) float64 {
	if r.isASCII {
		return 1
	}
	size := float64(font.Size)
	if size == 0 {
		size = FONT_SIZE_M
	}
	if r.mono {
		return size * familyCalibration["monospace"]
	}
	f, ok := familyCalibration[strings.ToLower(strings.TrimSpace(font.Family))]
	if !ok {
		f = familyCalibration[""]
	}
	return size * f
}

func (r *Ruler) lineHeight(font Font) float64 {
	if r.isASCII {
		return 1
	}
	size := float64(font.Size)
	if size == 0 {
		size = FONT_SIZE_M
	}
	return size * r.LineHeightFactor
}

// MeasurePrecise returns the width of the widest line and the height of all
// lines in pixels (cells for an ASCII ruler).
func (r *Ruler) MeasurePrecise(font Font, s string) (w, h float64) {
	if s == "" {
		return 0, 0
	}
	lines := Lines(s)
	for _, line := range lines {
		w = math.Max(w, units(line, r.mono))
	}
	w *= r.unitWidth(font)
	if font.Style == FONT_STYLE_BOLD && !r.mono {
		w *= boldFactor
	}
	return w, float64(len(lines)) * r.lineHeight(font)
}

func (r *Ruler) Measure(font Font, s string) (width, height int) {
	w, h := r.MeasurePrecise(font, s)
	return int(math.Ceil(w)), int(math.Ceil(h))
}

// MeasureFormatted measures text that may carry inline formatting tags. Any
// bold span widens the whole measurement.
func (r *Ruler) MeasureFormatted(font Font, s string) (w, h float64) {
	if boldTag.MatchString(s) {
		font.Style = FONT_STYLE_BOLD
	}
	return r.MeasurePrecise(font, StripFormatting(s))
}

// MeasureMono measures s as if it were set in the monospace family.
func (r *Ruler) MeasureMono(font Font, s string) (width, height int) {
	mono := &Ruler{LineHeightFactor: r.LineHeightFactor, mono: true, isASCII: r.isASCII}
	return mono.Measure(font, s)
}
