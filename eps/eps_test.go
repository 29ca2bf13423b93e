package eps

import (
	"bytes"
	"image"
	"strings"
	"testing"

	"github.com/tdewolff/aieps"
	"github.com/tdewolff/test"
)

func TestWrite(t *testing.T) {
	w := &bytes.Buffer{}
	err := Write(w, &aieps.Document{Width: 10.5, Height: 20.0, Page: " 0 0 m 1 1 l S"})
	test.Error(t, err)

	s := w.String()
	test.That(t, strings.HasPrefix(s, "%!PS-Adobe-3.0 EPSF-3.0\n"))
	test.That(t, strings.Contains(s, "\n%%BoundingBox: 0 0 11 20\n"), s)
	test.That(t, strings.Contains(s, "\n%%HiResBoundingBox: 0 0 10.5 20\n"), s)
	test.That(t, strings.Contains(s, "\n%AI5_ArtSize: 10.5 20\n"), s)
	test.That(t, strings.Contains(s, "\n%%PageBoundingBox: 0 0 11 20\n"), s)
	test.That(t, strings.HasSuffix(s, "%%EOF\n"))
	test.That(t, !strings.Contains(s, "%%BeginPreview"))

	// sections appear in fixed order
	last := -1
	for _, section := range []string{"%%EndComments", "%%BeginProlog", "%%EndProlog", "%%BeginSetup", "%%EndSetup", "%%Page: 1 1", " 0 0 m 1 1 l S", "%%Trailer"} {
		i := strings.Index(s, section)
		test.That(t, last < i, section, "out of order")
		last = i
	}
}

func TestWriteSetup(t *testing.T) {
	w := &bytes.Buffer{}
	err := Write(w, &aieps.Document{Width: 1.0, Height: 1.0, Setup: "\n1 Bn\n"})
	test.Error(t, err)
	s := w.String()
	test.That(t, strings.Index(s, "%%BeginSetup") < strings.Index(s, "\n1 Bn\n"))
	test.That(t, strings.Index(s, "\n1 Bn\n") < strings.Index(s, "%%EndSetup"))
}

func TestWritePreview(t *testing.T) {
	img := image.NewAlpha(image.Rect(0, 0, 2, 2))
	img.Pix[1] = 0xff
	img.Pix[2] = 0x80

	w := &bytes.Buffer{}
	err := Write(w, &aieps.Document{Width: 2.0, Height: 2.0, Preview: img})
	test.Error(t, err)
	s := w.String()
	test.That(t, strings.Contains(s, "\n%%BeginPreview: 2 2 8 2\n% 00ff\n% 8000\n%%EndPreview\n"), s)
	test.That(t, strings.Index(s, "%%EndComments") < strings.Index(s, "%%BeginPreview"))
	test.That(t, strings.Index(s, "%%EndPreview") < strings.Index(s, "%%BeginProlog"))

	// long rows are split over several lines
	b := &bytes.Buffer{}
	writePreview(b, image.NewAlpha(image.Rect(0, 0, previewLineBytes+1, 1)))
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	test.String(t, lines[0], "%%BeginPreview: 65 1 8 2")
	test.T(t, len(lines), 4)
	test.T(t, len(lines[1]), 2+2*previewLineBytes)
	test.String(t, lines[2], "% 00")
}

func TestConvert(t *testing.T) {
	r := strings.NewReader(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="10pt" height="10pt" viewBox="0 0 10 10">
  <circle r="5"/>
  <rect width="10" height="10" fill="#ff0000"/>
</svg>`)
	w := &bytes.Buffer{}
	diag, err := Convert(w, r, nil)
	test.Error(t, err)
	test.T(t, diag.Messages(), []string{"unhandled element: circle"})

	s := w.String()
	test.That(t, strings.Contains(s, "%%BoundingBox: 0 0 10 10\n"), s)
	test.That(t, strings.Contains(s, "1 0 0 Xa 0 10 m 10 10 l 10 0 l 0 0 l 0 10 l f"), s)
}

func TestConvertErrors(t *testing.T) {
	_, err := Convert(&bytes.Buffer{}, strings.NewReader(`<html></html>`), nil)
	test.That(t, err != nil)

	w := &bytes.Buffer{}
	_, err = Convert(w, strings.NewReader(`<svg xmlns="http://www.w3.org/2000/svg" width="abc"/>`), nil)
	test.That(t, err != nil)
	test.T(t, w.Len(), 0)
}

func TestDec(t *testing.T) {
	test.String(t, dec(10.0).String(), "10")
	test.String(t, dec(0.5).String(), ".5")
	test.String(t, dec(1.0/3.0).String(), ".333333")
}
