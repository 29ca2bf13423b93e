package aieps

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/tdewolff/aieps/svg"
	"github.com/tdewolff/parse/v2"
)

type gradientKind int

const (
	linearGradient gradientKind = iota
	radialGradient
)

// gradientStop is a color stop with an offset in [0,1].
type gradientStop struct {
	offset float64
	color  RGB
}

type gradient struct {
	id    string
	kind  gradientKind
	el    *svg.Element
	href  string
	stops []gradientStop

	// number of uses as linear or radial paint, stops are only written for used kinds
	linUses, radUses int
}

// gradientTable holds the gradients by identifier in order of registration.
type gradientTable struct {
	list  []*gradient
	byID  map[string]*gradient
	ids   map[string]*svg.Element
	sheet *styleSheet
}

func newGradientTable(ids map[string]*svg.Element, sheet *styleSheet) *gradientTable {
	return &gradientTable{
		byID:  map[string]*gradient{},
		ids:   ids,
		sheet: sheet,
	}
}

// register adds a linearGradient or radialGradient element with its stops. Elements without identifier cannot be referenced and are skipped, the first element with an identifier wins.
func (tab *gradientTable) register(el *svg.Element) *gradient {
	id := el.ID()
	if id == "" {
		return nil
	} else if g, ok := tab.byID[id]; ok {
		return g
	}

	g := &gradient{
		id:   id,
		kind: linearGradient,
		el:   el,
	}
	if el.Name == "radialGradient" {
		g.kind = radialGradient
	}
	if href := el.Href(); strings.HasPrefix(href, "#") {
		g.href = href[1:]
	}

	style := Style{}.Cascade(el, tab.sheet)
	prev := 0.0
	for _, child := range el.Children {
		if child.Name != "stop" {
			continue
		}
		stop := gradientStop{offset: parseOffset(child.Get("offset"))}
		stop.offset = math.Max(stop.offset, prev) // offsets never decrease
		prev = stop.offset

		if paint, err := parsePaint(style.Cascade(child, tab.sheet)["stop-color"], ""); err == nil && paint.IsColor() {
			stop.color = paint.Color
		}
		g.stops = append(g.stops, stop)
	}
	tab.list = append(tab.list, g)
	tab.byID[id] = g
	return g
}

// get returns the gradient with the given identifier, registering gradients that are referenced before their definition.
func (tab *gradientTable) get(id string) *gradient {
	if g, ok := tab.byID[id]; ok {
		return g
	} else if el, ok := tab.ids[id]; ok && (el.Name == "linearGradient" || el.Name == "radialGradient") {
		return tab.register(el)
	}
	return nil
}

// resolve returns the gradient with the given identifier, and the gradient that holds its stops following the href chain.
func (tab *gradientTable) resolve(id string) (*gradient, *gradient, error) {
	g := tab.get(id)
	if g == nil {
		return nil, nil, &UnresolvedReferenceError{Kind: "gradient", ID: id}
	}
	base := g
	seen := map[*gradient]bool{g: true}
	for len(base.stops) == 0 && base.href != "" {
		next := tab.get(base.href)
		if next == nil || seen[next] {
			return nil, nil, &UnresolvedReferenceError{Kind: "gradient", ID: base.href}
		}
		seen[next] = true
		base = next
	}
	return g, base, nil
}

// attr returns the attribute of the gradient or, when absent, of the gradients it references.
func (tab *gradientTable) attr(g *gradient, name string) (string, bool) {
	seen := map[*gradient]bool{}
	for g != nil && !seen[g] {
		if v, ok := g.el.Attr("", name); ok {
			return v, true
		}
		seen[g] = true
		g = tab.get(g.href)
	}
	return "", false
}

// setup returns the gradient resource definitions of the used gradients. Linear gradients list their stops by decreasing offset, radial gradients by increasing offset.
func (tab *gradientTable) setup(prec dec) string {
	n := 0
	sb := strings.Builder{}
	for _, g := range tab.list {
		if 0 < g.linUses {
			n++
			writeGradient(&sb, prec, g, linearGradient)
		}
		if 0 < g.radUses {
			n++
			writeGradient(&sb, prec, g, radialGradient)
		}
	}
	if n == 0 {
		return ""
	}
	return "\n" + strconv.Itoa(n) + " Bn\n" + sb.String()
}

func writeGradient(sb *strings.Builder, prec dec, g *gradient, kind gradientKind) {
	name, typ := psString("l_"+g.id), 0
	stops := append([]gradientStop{}, g.stops...)
	if kind == radialGradient {
		name, typ = psString("r_"+g.id), 1
		sort.SliceStable(stops, func(i, j int) bool {
			return stops[i].offset < stops[j].offset
		})
	} else {
		sort.SliceStable(stops, func(i, j int) bool {
			return stops[j].offset < stops[i].offset
		})
	}

	sb.WriteString("\n%AI5_BeginGradient: " + name + "\n")
	sb.WriteString(name + " " + strconv.Itoa(typ) + " " + strconv.Itoa(len(stops)) + " Bd\n[\n")
	for _, stop := range stops {
		c, m, y, k := stop.color.CMYK()
		sb.WriteString(prec.fs(c, m, y, k, stop.color.R, stop.color.G, stop.color.B))
		sb.WriteString(" 2 50 " + prec.f(stop.offset*100.0) + " %_Bs\n")
	}
	sb.WriteString("BD\n%AI5_EndGradient\n")
}

// parseOffset parses a stop offset given as number or percentage and clamps it to [0,1].
func parseOffset(v string) float64 {
	v = strings.TrimSpace(v)
	scale := 1.0
	if strings.HasSuffix(v, "%") {
		v = v[:len(v)-1]
		scale = 100.0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0.0
	}
	return math.Max(0.0, math.Min(1.0, f/scale))
}

////////////////////////////////////////////////////////////////

// gradientCoordinate converts a gradient geometry attribute. Percentages are relative to size, which is 1 for object bounding box units.
func (t *transcoder) gradientCoordinate(v string, size float64, bbox bool) (float64, error) {
	v = strings.TrimSpace(v)
	if strings.HasSuffix(v, "%") {
		f, err := strconv.ParseFloat(v[:len(v)-1], 64)
		if err != nil {
			return 0.0, &ParseError{Value: v, Reason: "bad gradient coordinate"}
		}
		return f / 100.0 * size, nil
	} else if bbox {
		nn, _ := parse.Dimension([]byte(v))
		f, err := strconv.ParseFloat(v[:nn], 64)
		if err != nil {
			return 0.0, &ParseError{Value: v, Reason: "bad gradient coordinate"}
		}
		return f, nil
	}
	return t.units.convert(v, "uu")
}

// gradientPaint returns the gradient instance that fills a path whose control points have the user space bounding box bounds. A gradient with a single stop returns a flat fill color operator instead.
func (t *transcoder) gradientPaint(el *svg.Element, id string, bounds Rect) (string, string, error) {
	g, base, err := t.gradients.resolve(id)
	if err != nil {
		t.alert(err, el)
		return "", "", nil
	}
	if len(base.stops) == 0 {
		t.alert(unsupported("gradient without stops", id), el)
		return "", "", nil
	} else if len(base.stops) == 1 {
		c := base.stops[0].color
		return " " + t.prec.fs(c.R, c.G, c.B) + " Xa", "", nil
	}

	bbox := true
	if v, ok := t.gradients.attr(g, "gradientUnits"); ok && strings.TrimSpace(v) == "userSpaceOnUse" {
		bbox = false
	}

	m := t.matrix()
	sizeX, sizeY := t.viewW, t.viewH
	if bbox {
		if bounds.W == 0.0 || bounds.H == 0.0 {
			t.alert(unsupported("gradient on object without area", id), el)
			return "", "", nil
		}
		m = m.Translate(bounds.X, bounds.Y).Scale(bounds.W, bounds.H)
		sizeX, sizeY = 1.0, 1.0
	}
	if v, ok := t.gradients.attr(g, "gradientTransform"); ok {
		gm, skipped, err := parseTransform(v)
		if err != nil {
			return "", "", withID(err, g.el)
		}
		for _, fun := range skipped {
			t.alert(unsupported("transform", fun), g.el)
		}
		m = m.Compose(gm)
	}

	coord := func(name string, size float64, def string) (float64, error) {
		v, ok := t.gradients.attr(g, name)
		if !ok {
			v = def
		}
		return t.gradientCoordinate(v, size, bbox)
	}
	if g.kind == linearGradient {
		x1, err1 := coord("x1", sizeX, "0%")
		y1, err2 := coord("y1", sizeY, "0%")
		x2, err3 := coord("x2", sizeX, "100%")
		y2, err4 := coord("y2", sizeY, "0%")
		if err := firstError(err1, err2, err3, err4); err != nil {
			return "", "", withID(err, g.el)
		}

		p1, p2 := m.Dot(Point{x1, y1}), m.Dot(Point{x2, y2})
		d := p2.Sub(p1)
		angle := math.Atan2(d.Y, d.X) * 180.0 / math.Pi
		base.linUses++
		op := "Bb 1 " + psString("l_"+base.id) + " " + t.prec.fs(p1.X, p1.Y, angle, d.Length()) + " 1 0 0 1 0 0 Bg"
		return "", op, nil
	}

	size := math.Sqrt((sizeX*sizeX + sizeY*sizeY) / 2.0)
	cx, err1 := coord("cx", sizeX, "50%")
	cy, err2 := coord("cy", sizeY, "50%")
	r, err3 := coord("r", size, "50%")
	if err := firstError(err1, err2, err3); err != nil {
		return "", "", withID(err, g.el)
	}
	t.alert(unsupported("radial gradients will appear circle shaped", ""), el)

	c := m.Dot(Point{cx, cy})
	rp := m.Dot(Point{cx + r, cy})
	base.radUses++
	op := "Bb 1 " + psString("r_"+base.id) + " " + t.prec.fs(c.X, c.Y) + " 0 " + t.prec.f(rp.Sub(c).Length()) + " 1 0 0 1 0 0 Bg"
	return "", op, nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
