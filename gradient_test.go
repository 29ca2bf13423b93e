package aieps

import (
	"strings"
	"testing"

	"github.com/tdewolff/aieps/svg"
	"github.com/tdewolff/test"
)

func stopOffsets(setup, name string) []string {
	offsets := []string{}
	inside := false
	for _, line := range strings.Split(setup, "\n") {
		if strings.HasPrefix(line, "%AI5_BeginGradient: ") {
			inside = line == "%AI5_BeginGradient: "+name
		} else if inside && strings.HasSuffix(line, "%_Bs") {
			offsets = append(offsets, strings.Fields(line)[9])
		}
	}
	return offsets
}

const gradients = `<defs>
<linearGradient id="g"><stop offset="0" stop-color="#000"/><stop offset="50%" style="stop-color:#f00"/><stop offset="1" stop-color="#fff"/></linearGradient>
<radialGradient id="r" xlink:href="#g"/>
</defs>`

func TestGradientStopOrder(t *testing.T) {
	doc, diag := transcodeString(t, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="100pt" height="100pt" viewBox="0 0 100 100">`+gradients+
		`<rect width="10" height="10" fill="url(#g)"/><rect x="20" width="10" height="10" fill="url(#r)"/></svg>`)
	test.T(t, diag.Messages(), []string{"radial gradients will appear circle shaped"})

	test.That(t, strings.HasPrefix(doc.Setup, "\n2 Bn\n"), doc.Setup)
	test.That(t, strings.Contains(doc.Setup, "(l_g) 0 3 Bd"), doc.Setup)
	test.That(t, strings.Contains(doc.Setup, "(r_g) 1 3 Bd"), doc.Setup)
	test.T(t, stopOffsets(doc.Setup, "(l_g)"), []string{"100", "50", "0"})
	test.T(t, stopOffsets(doc.Setup, "(r_g)"), []string{"0", "50", "100"})
	test.That(t, strings.Contains(doc.Setup, "\n0 0 0 1 0 0 0 2 50 0 %_Bs\n"), doc.Setup)
	test.That(t, strings.Contains(doc.Setup, "\n0 1 1 0 1 0 0 2 50 50 %_Bs\n"), doc.Setup)

	page := normalize(doc.Page)
	test.That(t, strings.Contains(page, "0 100 m 10 100 l 10 90 l 0 90 l 0 100 l Bb 1 (l_g) 0 100 0 10 1 0 0 1 0 0 Bg f 0 BB"), page)
	test.That(t, strings.Contains(page, "Bb 1 (r_g) 25 95 0 5 1 0 0 1 0 0 Bg f 0 BB"), page)
}

func TestGradientUserSpace(t *testing.T) {
	doc, _ := transcodeString(t, page(`<linearGradient id="g" gradientUnits="userSpaceOnUse" x1="0" y1="0" x2="0" y2="5" gradientTransform="translate(1 0)"><stop offset="0" stop-color="#000"/><stop offset="1" stop-color="#fff"/></linearGradient>`+
		`<linearGradient id="h" xlink:href="#g" xmlns:xlink="http://www.w3.org/1999/xlink"/>`+
		`<rect width="10" height="10" fill="url(#h)"/>`))
	page := normalize(doc.Page)
	test.That(t, strings.Contains(page, "Bb 1 (l_g) 1 10 -90 5 1 0 0 1 0 0 Bg f 0 BB"), page)
	test.T(t, stopOffsets(doc.Setup, "(l_g)"), []string{"100", "0"})
	test.T(t, len(stopOffsets(doc.Setup, "(l_h)")), 0)
}

func TestGradientSingleStop(t *testing.T) {
	doc, _ := transcodeString(t, page(`<linearGradient id="g"><stop offset="0" stop-color="#00f"/></linearGradient><rect width="1" height="1" fill="url(#g)"/>`))
	test.String(t, doc.Setup, "")
	test.That(t, strings.HasPrefix(normalize(doc.Page), "0 0 1 Xa 0 10 m"), doc.Page)
}

func TestGradientErrors(t *testing.T) {
	doc, diag := transcodeString(t, page(`<rect id="a" width="1" height="1" fill="url(#missing)"/>`))
	test.That(t, diag.Has(ErrGradientNotFound))
	test.String(t, diag.Messages()[0], "fill gradient not defined: missing")
	test.T(t, diag.Alerts()[0].IDs, []string{"a"})
	test.String(t, doc.Setup, "")
	test.That(t, strings.HasSuffix(normalize(doc.Page), "l f"), doc.Page)

	// a reference cycle without stops
	_, diag = transcodeString(t, page(`<linearGradient id="a" href="#b"/><linearGradient id="b" href="#a"/><rect width="1" height="1" fill="url(#a)"/>`))
	test.That(t, diag.Has(ErrGradientNotFound))

	_, diag = transcodeString(t, page(`<linearGradient id="a"/><rect width="1" height="1" fill="url(#a)"/>`))
	test.That(t, hasMessage(diag, "gradient without stops: a"), diag.Messages())

	_, diag = transcodeString(t, page(`<linearGradient id="a"><stop offset="0"/><stop offset="1"/></linearGradient><path d="M0 0H5" stroke="#000" fill="url(#a)"/>`))
	test.That(t, hasMessage(diag, "gradient on object without area: a"), diag.Messages())
}

func TestGradientTable(t *testing.T) {
	el := svg.NewElement("radialGradient", "id", "r", "href", "#base").Append(
		svg.NewElement("stop", "offset", "0.7"),
		svg.NewElement("stop", "offset", "0.2"),
		svg.NewElement("stop", "offset", "150%"),
		svg.NewElement("circle"),
	)
	tab := newGradientTable(map[string]*svg.Element{}, nil)
	g := tab.register(el)
	test.T(t, g.kind, radialGradient)
	test.String(t, g.href, "base")
	test.T(t, len(g.stops), 3)
	test.Float(t, g.stops[0].offset, 0.7)
	test.Float(t, g.stops[1].offset, 0.7)
	test.Float(t, g.stops[2].offset, 1.0)

	test.That(t, tab.register(svg.NewElement("linearGradient", "id", "r")) == g)
	test.That(t, tab.register(svg.NewElement("linearGradient")) == nil)
	test.T(t, len(tab.list), 1)
}

func TestParseOffset(t *testing.T) {
	test.Float(t, parseOffset("0.5"), 0.5)
	test.Float(t, parseOffset(" 25% "), 0.25)
	test.Float(t, parseOffset("-1"), 0.0)
	test.Float(t, parseOffset("2"), 1.0)
	test.Float(t, parseOffset("x"), 0.0)
	test.Float(t, parseOffset(""), 0.0)
}
