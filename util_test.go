package aieps

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestDec(t *testing.T) {
	var tts = []struct {
		prec     dec
		f        float64
		expected string
	}{
		{6, 1.5, "1.5"},
		{6, 0.25, ".25"},
		{6, -0.5, "-.5"},
		{6, 100.0, "100"},
		{3, 1.23456789, "1.235"},
		{2, 10.0 / 3.0, "3.33"},
	}
	for _, tt := range tts {
		t.Run(tt.expected, func(t *testing.T) {
			test.String(t, tt.prec.f(tt.f), tt.expected)
		})
	}
	test.String(t, dec(6).fs(1.0, 0.5, 2.0), "1 .5 2")
}

func TestWrap(t *testing.T) {
	test.String(t, wrap("aa bb cc", 6), " aa bb \ncc")
	test.String(t, wrap("a\nbbbb c", 6), " a\nbbbb c")
	test.String(t, wrap("a b", 0), " a b")
}

func TestParseNumbers(t *testing.T) {
	nums, err := parseNumbers(" 1,2 -35\t.5 ")
	test.Error(t, err)
	test.T(t, nums, []float64{1.0, 2.0, -35.0, 0.5})

	nums, err = parseNumbers("")
	test.Error(t, err)
	test.T(t, len(nums), 0)

	_, err = parseNumbers("1 x")
	test.That(t, err != nil)
}

func TestPSString(t *testing.T) {
	test.String(t, psString(`a(b)\_`), `(a\(b\)\\_)`)
	test.String(t, psString("Ebene é"), "(Ebene _)")
	test.String(t, sanitize("a\tb\x7fc"), "a_b\x7fc")
}
