package aieps

import (
	"strings"
	"testing"

	"github.com/tdewolff/test"
)

func TestLoadOptions(t *testing.T) {
	opts, err := LoadOptions(strings.NewReader(`
auto-close = false
precision = 3
legacy-px-ratio = 1.25
preview = true
`))
	test.Error(t, err)
	test.That(t, !opts.AutoClose)
	test.T(t, opts.Precision, 3)
	test.Float(t, opts.LegacyPxRatio, 1.25)
	test.That(t, opts.Preview)

	// absent keys keep their defaults
	test.That(t, opts.RemoveInvisible)
	test.T(t, opts.WrapWidth, DefaultOptions.WrapWidth)
	test.String(t, opts.ModernVersion, "0.92")
	test.T(t, opts.PreviewMaxSize, 256)

	opts, err = LoadOptions(strings.NewReader(""))
	test.Error(t, err)
	test.T(t, opts.Precision, DefaultOptions.Precision)
}

func TestLoadOptionsErrors(t *testing.T) {
	var tts = []string{
		"unknown = 1",
		"precision = 16",
		"precision = \"6\"",
		"wrap-width = -1",
		"legacy-px-ratio = 0.0",
		"preview = true\npreview-max-size = 0",
		"precision",
	}
	for _, tt := range tts {
		t.Run(tt, func(t *testing.T) {
			_, err := LoadOptions(strings.NewReader(tt))
			test.That(t, err != nil, "expected error")
		})
	}
}
