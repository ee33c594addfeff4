package textmeasure_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/mmd/lib/textmeasure"
)

var txts = []string{
	"Jesus is my POSTMASTER GENERAL ...",
	"Don't let go of what you've got hold of, until you have hold of something else.",
	"To get something clean, one has to get something dirty.",
	"The notes blatted skyward as they rose over the Canada geese, feathered",
	"Baseball is a skilled game.  It's America's game - it, and high taxes.",
	"The computing field is always in need of new cliches.",
}

func TestWidthClasses(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		in   string
		exp  float64
	}{
		{"emoji", "😀", 2},
		{"emoji_presentation", "\u2764\ufe0f", 2},
		{"flag", "\U0001F1EF\U0001F1F5", 2},
		{"cjk", "中", 2},
		{"hiragana", "あ", 2},
		{"fullwidth", "Ａ", 2},
		{"combining_acute", "\u0301", 0},
		{"combining_ring", "\u030a", 0},
		{"zero_width_joiner", "\u200d", 0},
		{"decomposed", "e\u0301", 1},
		{"empty", "", 0},
		{"narrow", "i", textmeasure.NarrowUnits},
		{"capital", "A", textmeasure.CapitalUnits},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.exp, textmeasure.Units(tc.in))
		})
	}
}

func TestMonotonic(t *testing.T) {
	t.Parallel()

	for _, ch := range []string{"a", "i", "M", "中", "😀", "W", "-"} {
		prev := -1.
		for n := 1; n < 30; n++ {
			u := textmeasure.Units(strings.Repeat(ch, n))
			assert.Greater(t, u, prev, fmt.Sprintf("%q x %d", ch, n))
			prev = u
		}
	}
}

func TestTextMeasure(t *testing.T) {
	t.Parallel()

	ruler := textmeasure.NewRuler()
	font := textmeasure.NewFont("", textmeasure.FONT_SIZE_M, textmeasure.FONT_STYLE_REGULAR)

	// every non-space char increases width but not height
	for _, txt := range txts {
		txt = strings.ReplaceAll(txt, " ", "")
		for i := 1; i < len(txt)-1; i++ {
			w1, h1 := ruler.MeasurePrecise(font, txt[:i])
			w2, h2 := ruler.MeasurePrecise(font, txt[:i+1])
			assert.Equal(t, h1, h2)
			assert.Less(t, w1, w2, fmt.Sprintf(`"%s" vs "%s"`, txt[:i], txt[:i+1]))
		}
	}

	// newlines increase height and never increase width
	for _, txt := range txts {
		whitespaces := strings.Count(txt, " ")
		for i := 0; i < whitespaces-1; i++ {
			txt1 := strings.Replace(txt, " ", "\n", i)
			txt2 := strings.Replace(txt, " ", "\n", i+1)

			w1, h1 := ruler.MeasurePrecise(font, txt1)
			w2, h2 := ruler.MeasurePrecise(font, txt2)

			assert.Less(t, h1, h2)
			assert.LessOrEqual(t, w2, w1)
		}
	}
}

func TestFontSizes(t *testing.T) {
	t.Parallel()

	ruler := textmeasure.NewRuler()
	sizes := []int{textmeasure.FONT_SIZE_S, textmeasure.FONT_SIZE_M, textmeasure.FONT_SIZE_L, textmeasure.FONT_SIZE_XL}
	for _, txt := range txts {
		for i := 0; i < len(sizes)-1; i++ {
			w1, h1 := ruler.Measure(textmeasure.NewFont("arial", sizes[i], textmeasure.FONT_STYLE_REGULAR), txt)
			w2, h2 := ruler.Measure(textmeasure.NewFont("arial", sizes[i+1], textmeasure.FONT_STYLE_REGULAR), txt)
			assert.Less(t, h1, h2)
			assert.Less(t, w1, w2)
		}
	}
}

func TestFormatted(t *testing.T) {
	t.Parallel()

	ruler := textmeasure.NewRuler()
	font := textmeasure.NewFont("", textmeasure.FONT_SIZE_M, textmeasure.FONT_STYLE_REGULAR)

	plainW, plainH := ruler.MeasurePrecise(font, "hello world")
	italW, _ := ruler.MeasureFormatted(font, "<i>hello</i> world")
	boldW, _ := ruler.MeasureFormatted(font, "<b>hello</b> world")
	assert.Equal(t, plainW, italW)
	assert.Greater(t, boldW, plainW)

	_, brH := ruler.MeasureFormatted(font, "hello<br/>world")
	assert.Equal(t, 2*plainH, brH)

	// unknown tags are measured as text
	unknownW, _ := ruler.MeasureFormatted(font, "<x>hello world")
	assert.Greater(t, unknownW, plainW)
}

func TestASCIIRuler(t *testing.T) {
	t.Parallel()

	ruler := textmeasure.NewASCIIRuler()
	font := textmeasure.NewFont("", textmeasure.FONT_SIZE_M, textmeasure.FONT_STYLE_REGULAR)

	w, h := ruler.Measure(font, "hello\nworld!")
	assert.Equal(t, 6, w)
	assert.Equal(t, 2, h)

	w, _ = ruler.Measure(font, "中文")
	assert.Equal(t, 4, w)
}
