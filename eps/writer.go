// Package eps writes converted SVG documents as Illustrator EPS files.
package eps

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"image"
	"io"
	"math"

	"github.com/tdewolff/aieps"
	"github.com/tdewolff/aieps/svg"
	"github.com/tdewolff/minify/v2"
)

// Precision is the number of decimals of the document size.
const Precision = 6

// previewLineBytes is the number of preview bytes per hexadecimal line, keeping lines below 255 characters.
const previewLineBytes = 64

// Convert reads an SVG document from r and writes it as EPS file to w.
func Convert(w io.Writer, r io.Reader, opts *aieps.Options) (*aieps.Diagnostics, error) {
	root, err := svg.Parse(r)
	if err != nil {
		return nil, err
	}
	return Writer(w, root, opts)
}

// Writer converts the SVG document tree and writes it as EPS file to w. The returned diagnostics hold the features that were skipped or approximated.
func Writer(w io.Writer, root *svg.Element, opts *aieps.Options) (*aieps.Diagnostics, error) {
	diag := aieps.NewDiagnostics()
	doc, err := aieps.Transcode(root, diag, opts)
	if err != nil {
		return diag, err
	}
	return diag, Write(w, doc)
}

// Write writes the document into the fixed structure of an EPS file.
func Write(w io.Writer, doc *aieps.Document) error {
	width, height := dec(doc.Width), dec(doc.Height)
	ceilW, ceilH := math.Ceil(doc.Width), math.Ceil(doc.Height)

	b := &bytes.Buffer{}
	b.WriteString(header)
	fmt.Fprintf(b, "%%%%BoundingBox: 0 0 %d %d\n", int(ceilW), int(ceilH))
	fmt.Fprintf(b, "%%%%HiResBoundingBox: 0 0 %v %v\n", width, height)
	fmt.Fprintf(b, "%%AI5_ArtSize: %v %v\n", width, height)
	b.WriteString("%%EndComments\n\n")
	if doc.Preview != nil {
		writePreview(b, doc.Preview)
	}
	b.WriteString(prolog + "\n%%EndProlog\n\n")
	b.WriteString(setup + doc.Setup + "\n%%EndSetup\n\n")
	fmt.Fprintf(b, "%%%%Page: 1 1\n%%%%BeginPageSetup\n%%%%PageBoundingBox: 0 0 %d %d\n%%%%EndPageSetup\n", int(ceilW), int(ceilH))
	b.WriteString(doc.Page + "\n\n")
	b.WriteString(trailer)

	_, err := w.Write(b.Bytes())
	return err
}

// writePreview writes an EPSI preview of 8 bits per pixel, where zero is white, with rows from top to bottom.
func writePreview(b *bytes.Buffer, img *image.Alpha) {
	size := img.Bounds().Size()
	linesPerRow := (size.X + previewLineBytes - 1) / previewLineBytes
	fmt.Fprintf(b, "%%%%BeginPreview: %d %d 8 %d\n", size.X, size.Y, size.Y*linesPerRow)
	for y := 0; y < size.Y; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+size.X]
		for i := 0; i < len(row); i += previewLineBytes {
			b.WriteString("% ")
			b.WriteString(hex.EncodeToString(row[i:min(i+previewLineBytes, len(row))]))
			b.WriteByte('\n')
		}
	}
	b.WriteString("%%EndPreview\n\n")
}

type dec float64

func (f dec) String() string {
	s := fmt.Sprintf("%.*f", Precision, f)
	s = string(minify.Decimal([]byte(s), Precision))
	if s == "" || s == "-0" {
		return "0"
	}
	return s
}
