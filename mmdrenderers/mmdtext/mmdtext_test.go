package mmdtext_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oss.terrastruct.com/mmd/mmdrenderers/mmdtext"
)

func TestParse(t *testing.T) {
	t.Parallel()

	bold := mmdtext.Style{Bold: true}
	testCases := []struct {
		name string
		text string
		exp  []mmdtext.Line
	}{
		{
			name: "plain",
			text: "hello",
			exp:  []mmdtext.Line{{{Text: "hello"}}},
		},
		{
			name: "empty",
			text: "",
			exp:  []mmdtext.Line{nil},
		},
		{
			name: "breaks",
			text: "a<br>b<br/>c<BR />d\r\ne",
			exp: []mmdtext.Line{
				{{Text: "a"}}, {{Text: "b"}}, {{Text: "c"}}, {{Text: "d"}}, {{Text: "e"}},
			},
		},
		{
			name: "bold",
			text: "<b>bold</b> plain",
			exp:  []mmdtext.Line{{{Text: "bold", Style: bold}, {Text: " plain"}}},
		},
		{
			name: "style_across_lines",
			text: "a <strong>x<br>y</strong>",
			exp: []mmdtext.Line{
				{{Text: "a "}, {Text: "x", Style: bold}},
				{{Text: "y", Style: bold}},
			},
		},
		{
			name: "nested",
			text: "<i><u>x</u></i>",
			exp:  []mmdtext.Line{{{Text: "x", Style: mmdtext.Style{Italic: true, Underline: true}}}},
		},
		{
			name: "aliases_merge",
			text: "<s>x</s><del>y</del><strike>z</strike>",
			exp:  []mmdtext.Line{{{Text: "xyz", Style: mmdtext.Style{Strikethrough: true}}}},
		},
		{
			name: "upper_case_tags",
			text: "<EM>x</EM>",
			exp:  []mmdtext.Line{{{Text: "x", Style: mmdtext.Style{Italic: true}}}},
		},
		{
			name: "unknown_tag",
			text: "<Foo>x</foo>",
			exp:  []mmdtext.Line{{{Text: "<Foo>x</foo>"}}},
		},
		{
			name: "unmatched_close",
			text: "x</b>y",
			exp:  []mmdtext.Line{{{Text: "xy"}}},
		},
		{
			name: "unterminated_tag",
			text: "x<y",
			exp:  []mmdtext.Line{{{Text: "x<y"}}},
		},
		{
			name: "comparison",
			text: "1 < 2",
			exp:  []mmdtext.Line{{{Text: "1 < 2"}}},
		},
		{
			name: "entities",
			text: "&lt;b&gt; &amp;",
			exp:  []mmdtext.Line{{{Text: "<b> &"}}},
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.exp, mmdtext.Parse(tc.text))
		})
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	t.Run("stacked", func(t *testing.T) {
		t.Parallel()

		out := mmdtext.Render("a\nb", &mmdtext.Opts{X: 10, Y: 100})
		require.Len(t, out, 2)
		assert.Equal(t, `<text x="10" y="88" text-anchor="middle" dominant-baseline="middle" style="font-size:16px">a</text>`, out[0])
		assert.Equal(t, `<text x="10" y="112" text-anchor="middle" dominant-baseline="middle" style="font-size:16px">b</text>`, out[1])
	})

	t.Run("start_aligned", func(t *testing.T) {
		t.Parallel()

		out := mmdtext.Render("a", &mmdtext.Opts{
			Align:      mmdtext.AlignStart,
			FontSize:   20,
			FontFamily: "monospace",
			Fill:       "#0A0F25",
			Class:      "label",
		})
		require.Len(t, out, 1)
		assert.Equal(t, `<text x="0" y="0" text-anchor="start" dominant-baseline="middle" fill="#0A0F25" class="label" style="font-size:20px;font-family:monospace">a</text>`, out[0])
	})

	t.Run("escaping", func(t *testing.T) {
		t.Parallel()

		out := mmdtext.Render(`a & <b>b</b> "q" 'x' <foo>`, nil)
		require.Len(t, out, 1)
		assert.Contains(t, out[0], `>a &amp; <tspan font-weight="bold">b</tspan> &#34;q&#34; &#39;x&#39; &lt;foo&gt;</text>`)
	})

	t.Run("decorations", func(t *testing.T) {
		t.Parallel()

		out := mmdtext.Render("<u><s>x</s></u>", nil)
		assert.Contains(t, out[0], `<tspan text-decoration="underline line-through">x</tspan>`)
	})

	t.Run("empty_line", func(t *testing.T) {
		t.Parallel()

		out := mmdtext.Render("a\n\nb", nil)
		require.Len(t, out, 3)
		assert.Contains(t, out[1], "> </text>")
	})
}

func TestLineString(t *testing.T) {
	t.Parallel()

	lines := mmdtext.Parse("<b>a</b>b<i>c</i>")
	require.Len(t, lines, 1)
	assert.Equal(t, "abc", lines[0].String())
}
