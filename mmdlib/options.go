package mmdlib

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"oss.terrastruct.com/mmd/mmdrenderers/mmdascii"
	"oss.terrastruct.com/mmd/mmdrenderers/mmdascii/charset"
	"oss.terrastruct.com/mmd/mmdthemes"
	"oss.terrastruct.com/mmd/mmdthemes/mmdthemescatalog"
)

const (
	EngineGraphviz = "graphviz"
	// EngineELKJS lays graphs out with elk.js; classes stay on graphviz.
	EngineELKJS = "elk-js"
	// EngineDagreJS lays classes out with dagre; graphs stay on graphviz.
	EngineDagreJS = "dagre-js"
)

var validate = validator.New()

// Options configures layout and rendering. The zero value is valid.
type Options struct {
	UseASCII bool `yaml:"useAscii"`

	// Space around the diagram: characters for ASCII output, pixels for
	// graph and sequence layouts. Zero keeps each engine's default.
	PaddingX int `yaml:"paddingX" validate:"gte=0"`
	PaddingY int `yaml:"paddingY" validate:"gte=0"`
	// ASCII spacing between a box border and its label, in characters.
	BoxBorderPadding *int `yaml:"boxBorderPadding" validate:"omitempty,gte=0"`
	// Unicode selects box drawing characters over plain ASCII. Defaults to
	// true.
	Unicode   *bool  `yaml:"unicode"`
	ColorMode string `yaml:"colorMode" validate:"omitempty,oneof=none auto 16 256 truecolor"`

	// ThemeName picks a theme from the catalog; Theme overrides single
	// colors of it, keyed by theme code.
	ThemeName string            `yaml:"themeName"`
	Theme     map[string]string `yaml:"theme" validate:"omitempty,dive,keys,required,endkeys,required"`

	FontFamily   string `yaml:"fontFamily"`
	NodeSpacing  int    `yaml:"nodeSpacing" validate:"gte=0"`
	LayerSpacing int    `yaml:"layerSpacing" validate:"gte=0"`
	LayoutEngine string `yaml:"layoutEngine" validate:"omitempty,oneof=graphviz elk-js dagre-js"`
}

// ParseOptions decodes YAML options and validates them. Unknown keys are
// rejected; empty input yields the defaults.
func ParseOptions(data []byte) (*Options, error) {
	opts := &Options{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(opts); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode options: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// Validate checks field ranges, the theme name and the theme overrides.
func (o *Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	if _, err := o.theme(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}

func (o *Options) withDefaults() Options {
	out := Options{}
	if o != nil {
		out = *o
	}
	if out.LayoutEngine == "" {
		out.LayoutEngine = EngineGraphviz
	}
	if out.ColorMode == "" {
		out.ColorMode = string(mmdascii.ColorNone)
	}
	if out.Unicode == nil {
		unicode := true
		out.Unicode = &unicode
	}
	return out
}

func (o *Options) theme() (mmdthemes.Theme, error) {
	theme := mmdthemescatalog.NeutralDefault
	if o.ThemeName != "" {
		var ok bool
		theme, ok = mmdthemescatalog.FindName(o.ThemeName)
		if !ok {
			return mmdthemes.Theme{}, fmt.Errorf("unknown theme %q, available:\n%s", o.ThemeName, mmdthemescatalog.CLIString())
		}
	}
	if len(o.Theme) == 0 {
		return theme, nil
	}
	return theme.Override(o.Theme)
}

func (o *Options) asciiOpts(theme mmdthemes.Theme) *mmdascii.Opts {
	out := &mmdascii.Opts{
		PaddingX:  o.PaddingX,
		PaddingY:  o.PaddingY,
		ColorMode: mmdascii.ColorMode(o.ColorMode),
		Theme:     &theme,
		Charset:   charset.ASCII,
	}
	if o.Unicode == nil || *o.Unicode {
		out.Charset = charset.Unicode
	}
	if o.BoxBorderPadding != nil {
		out.BoxBorderPadding = *o.BoxBorderPadding
		if out.BoxBorderPadding == 0 {
			out.BoxBorderPadding = -1
		}
	}
	return out
}
