package aieps

import (
	"errors"
	"fmt"
	"testing"

	"github.com/tdewolff/test"
)

func TestParseColor(t *testing.T) {
	var tts = []struct {
		v   string
		col RGB
	}{
		{"#f00", RGB{1.0, 0.0, 0.0}},
		{"#00FF00", RGB{0.0, 1.0, 0.0}},
		{"rgb(0, 0, 255)", RGB{0.0, 0.0, 1.0}},
		{"rgb(100%,50%,0%)", RGB{1.0, 0.5, 0.0}},
		{"rgb(300,0,-5)", RGB{1.0, 0.0, 0.0}},
		{"red", RGB{1.0, 0.0, 0.0}},
		{"White", RGB{1.0, 1.0, 1.0}},
	}
	for _, tt := range tts {
		t.Run(tt.v, func(t *testing.T) {
			col, ok := parseColor(tt.v)
			test.That(t, ok)
			test.T(t, col, tt.col)
		})
	}

	col, ok := parseColor("#808080")
	test.That(t, ok)
	test.Float(t, col.G, 128.0/255.0)

	for _, v := range []string{"#12345", "#ggg", "rgb(1,2)", "rgb(a,b,c)", "notacolor"} {
		_, ok := parseColor(v)
		test.That(t, !ok, "expected invalid color", v)
	}
}

func TestCMYK(t *testing.T) {
	var tts = []struct {
		col        RGB
		c, m, y, k float64
	}{
		{RGB{0.0, 0.0, 0.0}, 0.0, 0.0, 0.0, 1.0},
		{RGB{1.0, 1.0, 1.0}, 0.0, 0.0, 0.0, 0.0},
		{RGB{1.0, 0.0, 0.0}, 0.0, 1.0, 1.0, 0.0},
		{RGB{0.5, 0.5, 0.5}, 0.0, 0.0, 0.0, 0.5},
		{RGB{0.5, 0.25, 0.0}, 0.0, 0.5, 1.0, 0.5},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			c, m, y, k := tt.col.CMYK()
			test.Float(t, c, tt.c)
			test.Float(t, m, tt.m)
			test.Float(t, y, tt.y)
			test.Float(t, k, tt.k)
		})
	}
}

func TestParsePaint(t *testing.T) {
	p, err := parsePaint("none", "")
	test.Error(t, err)
	test.That(t, p.IsNone())

	p, err = parsePaint("", "")
	test.Error(t, err)
	test.That(t, p.IsNone())

	p, err = parsePaint("url(#grad)", "")
	test.Error(t, err)
	test.That(t, p.IsGradient())
	test.String(t, p.ID, "grad")

	p, err = parsePaint("currentColor", "#fff")
	test.Error(t, err)
	test.That(t, p.IsColor())
	test.T(t, p.Color, RGB{1.0, 1.0, 1.0})

	p, err = parsePaint("currentColor", "")
	test.Error(t, err)
	test.That(t, p.IsColor())
	test.T(t, p.Color, RGB{})

	p, err = parsePaint("icc-color(x)", "")
	test.That(t, errors.Is(err, ErrUnsupported))
	test.That(t, !p.IsNone() && !p.IsColor())
}

func TestURLID(t *testing.T) {
	var tts = []struct {
		v  string
		id string
		ok bool
	}{
		{"url(#a)", "a", true},
		{" url( '#a' ) ", "a", true},
		{`url("#b") red`, "b", true},
		{"url(#)", "", false},
		{"url(a)", "", false},
		{"url(#a", "", false},
		{"#a", "", false},
	}
	for _, tt := range tts {
		t.Run(tt.v, func(t *testing.T) {
			id, ok := urlID(tt.v)
			test.T(t, ok, tt.ok)
			test.String(t, id, tt.id)
		})
	}
}
