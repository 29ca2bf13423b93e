package aieps

import (
	"strconv"
	"strings"

	"github.com/tdewolff/aieps/svg"
	"go.uber.org/zap"
)

type elementKind int

const (
	unknownKind elementKind = iota
	svgKind
	groupKind
	pathKind
	rectKind
	useKind
	defsKind
	namedviewKind
	linearGradientKind
	radialGradientKind
	stopKind
	clipPathKind
	symbolKind
	nonRenderingKind // marker, pattern, mask
	styleKind
	scriptKind
	ignoredKind // metadata and foreign elements, skipped with their children
)

var elementKinds = map[string]elementKind{
	"svg":            svgKind,
	"g":              groupKind,
	"path":           pathKind,
	"rect":           rectKind,
	"use":            useKind,
	"defs":           defsKind,
	"linearGradient": linearGradientKind,
	"radialGradient": radialGradientKind,
	"stop":           stopKind,
	"clipPath":       clipPathKind,
	"symbol":         symbolKind,
	"marker":         nonRenderingKind,
	"pattern":        nonRenderingKind,
	"mask":           nonRenderingKind,
	"style":          styleKind,
	"script":         scriptKind,
	"metadata":       ignoredKind,
	"title":          ignoredKind,
	"desc":           ignoredKind,
}

func kindOf(el *svg.Element) elementKind {
	if el.Space == svg.SodipodiNS && el.Name == "namedview" {
		return namedviewKind
	} else if el.Space != "" && el.Space != svg.NS {
		return ignoredKind
	}
	return elementKinds[el.Name]
}

// transcoder holds the state of one conversion. The matrix and style stacks grow when descending into an element and shrink to their previous depth when leaving it.
type transcoder struct {
	opts *Options
	diag *Diagnostics
	log  *zap.Logger
	prec dec

	ids       map[string]*svg.Element
	sheet     *styleSheet
	gradients *gradientTable

	units         units
	width, height float64 // page size in points
	viewW, viewH  float64 // viewport in user units
	initialized   bool

	matrices   []Matrix
	styles     []Style
	suppress   int  // depth of non-rendering sections such as defs
	collecting bool // rendering a clip path

	using      map[*svg.Element]bool
	useTarget  *svg.Element
	layerColor int
	layers     int

	page    strings.Builder
	paths   int
	preview []Path
}

// Transcode converts the SVG document tree into the page description of an Illustrator EPS document. Malformed numbers and lengths abort the conversion with a ParseError, other problems are recorded in diag and the affected feature is skipped.
func Transcode(root *svg.Element, diag *Diagnostics, opts *Options) (*Document, error) {
	t := newTranscoder(root, diag, opts)
	if err := t.walk(root); err != nil {
		return nil, err
	}

	doc := &Document{
		Width:  t.width,
		Height: t.height,
		Setup:  t.gradients.setup(t.prec),
		Page:   t.page.String(),
	}
	if t.opts.Preview {
		doc.Preview = renderPreview(t.preview, t.width, t.height, t.opts.PreviewMaxSize)
	}
	t.log.Debug("transcoded",
		zap.Float64("width", t.width),
		zap.Float64("height", t.height),
		zap.Int("paths", t.paths),
		zap.Int("gradients", len(t.gradients.list)),
		zap.Int("alerts", t.diag.Len()))
	return doc, nil
}

// newTranscoder indexes the identifiers and style sheets of the document.
func newTranscoder(root *svg.Element, diag *Diagnostics, opts *Options) *transcoder {
	if opts == nil {
		opts = &DefaultOptions
	}
	if diag == nil {
		diag = NewDiagnostics()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	diag.setLogger(log)

	t := &transcoder{
		opts:     opts,
		diag:     diag,
		log:      log,
		prec:     dec(opts.Precision),
		ids:      map[string]*svg.Element{},
		sheet:    &styleSheet{},
		units:    newUnits(1.0),
		width:    400.0,
		height:   400.0,
		matrices: []Matrix{Identity},
		styles:   []Style{{}},
		using:    map[*svg.Element]bool{},
	}
	t.viewW, t.viewH = t.width, t.height

	root.Walk(func(el *svg.Element) bool {
		if id := el.ID(); id != "" {
			if _, ok := t.ids[id]; !ok {
				t.ids[id] = el
			}
		}
		if kindOf(el) == styleKind {
			for _, sel := range t.sheet.parse(el.Text) {
				t.alert(unsupported("style selector", sel), el)
			}
		}
		return true
	})
	t.gradients = newGradientTable(t.ids, t.sheet)
	return t
}

func (t *transcoder) alert(err error, el *svg.Element) {
	t.diag.Add(err, el.ID())
}

func (t *transcoder) emit(s string) {
	if t.suppress == 0 {
		t.page.WriteString(s)
	}
}

func (t *transcoder) matrix() Matrix {
	return t.matrices[len(t.matrices)-1]
}

func (t *transcoder) push(m Matrix) {
	t.matrices = append(t.matrices, t.matrix().Compose(m))
}

func (t *transcoder) pop() {
	t.matrices = t.matrices[:len(t.matrices)-1]
}

func (t *transcoder) style() Style {
	return t.styles[len(t.styles)-1]
}

// localProperty returns a property that is not inherited, from the style attribute or else the presentation attribute.
func localProperty(el *svg.Element, name string) string {
	for _, decl := range parseDeclarations(el.Get("style")) {
		if decl.key == name {
			return decl.val
		}
	}
	return el.Get(name)
}

func (t *transcoder) walk(el *svg.Element) error {
	kind := kindOf(el)
	if kind == ignoredKind {
		return nil
	}
	root := false
	if kind == svgKind && !t.initialized {
		if err := t.setupViewport(el); err != nil {
			return err
		}
		root = true
	}

	style := t.style().Cascade(el, t.sheet)
	t.styles = append(t.styles, style)
	defer func() { t.styles = t.styles[:len(t.styles)-1] }()

	if t.opts.RemoveInvisible {
		if style.hidden() {
			return nil
		} else if (kind == pathKind || kind == rectKind) && !t.collecting && style.unpainted() {
			return nil
		}
	}

	if v, ok := el.Attr("", "transform"); ok {
		m, skipped, err := parseTransform(v)
		if err != nil {
			return withID(err, el)
		}
		for _, fun := range skipped {
			t.alert(unsupported("unsupported transformation", fun), el)
		}
		t.push(m)
		defer t.pop()
	}

	clipped := false
	if v := localProperty(el, "clip-path"); v != "" && v != "none" && !t.collecting {
		id, _ := urlID(v)
		if target := t.ids[id]; target == nil || kindOf(target) != clipPathKind {
			t.alert(&UnresolvedReferenceError{Kind: "clip", ID: id}, el)
		} else {
			t.emit("\nq\n")
			t.collecting = true
			err := t.walk(target)
			t.collecting = false
			if err != nil {
				return err
			}
			t.emit(" W")
			clipped = true
		}
	}

	// markers written around the children
	var begin, end string
	switch kind {
	case svgKind:
		if !root && !clipped && !t.collecting {
			begin, end = "\nu\n", "\nU\n"
		}
	case groupKind:
		if t.collecting {
			break
		} else if mode, _ := el.Attr(svg.InkscapeNS, "groupmode"); mode == "layer" {
			begin, end = t.layerMarkers(el)
		} else if !clipped {
			begin, end = "\nu\n", "\nU\n"
		}
	case pathKind:
		if t.suppress == 0 {
			cmds, err := parsePathData(el.Get("d"))
			if err != nil {
				return withID(err, el)
			}
			if err := t.drawPath(el, cmds); err != nil {
				return err
			}
		}
	case rectKind:
		if t.suppress == 0 {
			if err := t.rect(el); err != nil {
				return err
			}
		}
	case useKind:
		if err := t.use(el); err != nil {
			return err
		}
	case defsKind, namedviewKind, nonRenderingKind:
		t.suppress++
		defer func() { t.suppress-- }()
	case linearGradientKind, radialGradientKind:
		t.gradients.register(el)
		return nil
	case stopKind, styleKind:
		return nil
	case clipPathKind:
		if !t.collecting {
			return nil
		}
	case symbolKind:
		if el != t.useTarget {
			return nil
		} else if !clipped && !t.collecting {
			begin, end = "\nu\n", "\nU\n"
		}
	case scriptKind:
		t.alert(unsupported("unhandled element", el.Name), el)
		return nil
	default:
		t.alert(unsupported("unhandled element", el.Name), el)
	}

	t.emit(begin)
	for _, child := range el.Children {
		if err := t.walk(child); err != nil {
			return err
		}
	}
	t.emit(end)
	if clipped {
		t.emit("\nQ\n")
	}
	return nil
}

// setupViewport initializes the units and the transformation from user space to page space, where the y-axis points up from the bottom of the page.
func (t *transcoder) setupViewport(el *svg.Element) error {
	t.initialized = true

	version := "0.92.0"
	if v, ok := el.Attr(svg.InkscapeNS, "version"); ok {
		version = v
	}
	px := pxRatio(version, t.opts.ModernVersion, t.opts.LegacyPxRatio)
	t.units = newUnits(px)

	var viewBox []float64
	if v := el.Get("viewBox"); strings.TrimSpace(v) != "" {
		var err error
		if viewBox, err = parseNumbers(v); err != nil || len(viewBox) != 4 || viewBox[2] <= 0.0 || viewBox[3] <= 0.0 {
			return &ParseError{ID: el.ID(), Value: v, Reason: "bad viewBox"}
		}
	}

	length := func(name string, i int) (float64, error) {
		v := strings.TrimSpace(el.Get(name))
		if v == "" || strings.HasSuffix(v, "%") {
			if viewBox != nil {
				return viewBox[i] * px, nil
			}
			return 400.0, nil
		}
		f, err := t.units.convert(v, "pt")
		if err != nil {
			return 0.0, withID(err, el)
		}
		return f, nil
	}
	var err error
	if t.width, err = length("width", 2); err != nil {
		return err
	} else if t.height, err = length("height", 3); err != nil {
		return err
	}

	minX, minY := 0.0, 0.0
	if viewBox != nil {
		t.units.uu = t.width / viewBox[2]
		minX, minY = viewBox[0], viewBox[1]
		t.viewW, t.viewH = viewBox[2], viewBox[3]
	} else {
		t.viewW, t.viewH = t.width/t.units.uu, t.height/t.units.uu
	}
	uu := t.units.uu
	t.matrices[len(t.matrices)-1] = Matrix{
		{uu, 0.0, -uu * minX},
		{0.0, -uu, t.height + uu*minY},
	}
	return nil
}

func (t *transcoder) layerMarkers(el *svg.Element) (string, string) {
	t.layers++
	name, _ := el.Attr(svg.InkscapeNS, "label")
	if name == "" {
		name = el.ID()
	}
	if name == "" {
		name = "Layer " + strconv.Itoa(t.layers)
	}
	begin := "\n\n%AI5_BeginLayer\n1 1 1 1 0 0 " + strconv.Itoa(t.layerColor) + " 0 0 0 Lb\n" + psString(name) + " Ln\n"
	t.layerColor = (t.layerColor + 1) % 27
	return begin, "\nLB\n%AI5_EndLayer\n"
}

// use renders the referenced element in place, translated by the x and y attributes.
func (t *transcoder) use(el *svg.Element) error {
	href := el.Href()
	id := strings.TrimPrefix(href, "#")
	target := t.ids[id]
	if !strings.HasPrefix(href, "#") || target == nil || t.using[target] {
		t.alert(&UnresolvedReferenceError{Kind: "use", ID: id}, el)
		return nil
	}

	x, err := t.units.convert(el.Get("x"), "uu")
	if err != nil {
		return withID(err, el)
	}
	y, err := t.units.convert(el.Get("y"), "uu")
	if err != nil {
		return withID(err, el)
	}
	if x != 0.0 || y != 0.0 {
		t.push(Identity.Translate(x, y))
		defer t.pop()
	}

	t.using[target] = true
	useTarget := t.useTarget
	t.useTarget = target
	defer func() {
		delete(t.using, target)
		t.useTarget = useTarget
	}()
	return t.walk(target)
}

// rect renders a rectangle as path with optional rounded corners.
func (t *transcoder) rect(el *svg.Element) error {
	var v [6]float64
	for i, name := range []string{"x", "y", "width", "height", "rx", "ry"} {
		s := el.Get(name)
		if (i == 4 || i == 5) && strings.TrimSpace(s) == "auto" {
			s = ""
		}
		f, err := t.units.convert(s, "uu")
		if err != nil {
			return withID(err, el)
		}
		v[i] = f
	}
	x, y, w, h := v[0], v[1], v[2], v[3]
	rx, ry := v[4], v[5]
	if w < 0.0 || h < 0.0 {
		t.alert(unsupported("rect with negative size", ""), el)
		return nil
	} else if w == 0.0 || h == 0.0 {
		return nil
	}

	_, hasRx := el.Attr("", "rx")
	_, hasRy := el.Attr("", "ry")
	if !hasRx {
		rx = ry
	} else if !hasRy {
		ry = rx
	}
	rx, ry = min(max(rx, 0.0), w/2.0), min(max(ry, 0.0), h/2.0)

	var cmds []pathCommand
	if rx == 0.0 || ry == 0.0 {
		cmds = []pathCommand{
			{'M', []float64{x, y}},
			{'L', []float64{x + w, y}},
			{'L', []float64{x + w, y + h}},
			{'L', []float64{x, y + h}},
			{'Z', nil},
		}
	} else {
		arc := func(x, y float64) pathCommand {
			return pathCommand{'A', []float64{rx, ry, 0.0, 0.0, 1.0, x, y}}
		}
		cmds = []pathCommand{
			{'M', []float64{x, y + ry}},
			arc(x+rx, y),
			{'L', []float64{x + w - rx, y}},
			arc(x+w, y+ry),
			{'L', []float64{x + w, y + h - ry}},
			arc(x+w-rx, y+h),
			{'L', []float64{x + rx, y + h}},
			arc(x, y+h-ry),
			{'Z', nil},
		}
	}
	return t.drawPath(el, cmds)
}

// drawPath writes a path element, preceded by its style operators and wrapped as compound path when it has several subpaths.
func (t *transcoder) drawPath(el *svg.Element, cmds []pathCommand) error {
	style := t.style()
	paint := t.shapePaint(el, style)

	autoClose := t.opts.AutoClose && (paint.op == "f" || paint.op == "b")
	pi := newPathInterpreter(t.matrix(), t.opts, autoClose, func(err error) {
		t.alert(err, el)
	})
	if err := pi.run(cmds); err != nil {
		return withID(err, el)
	} else if pi.p.Empty() {
		return nil
	}

	ops, err := t.styleOps(el, style, &paint, pi.bounds)
	if err != nil {
		return err
	}

	sb := strings.Builder{}
	if id := el.ID(); id != "" {
		sb.WriteString("\n%AI3_Note: " + sanitize(id) + "\n")
	}
	sb.WriteString(ops)
	pi.p.toAI(&sb, t.prec, paint.paintOp)

	text := sb.String()
	if 1 < pi.p.Len() {
		text = " *u\n" + text + "\n*U "
	}
	t.emit("\n" + wrap(text, t.opts.WrapWidth) + "\n")
	t.paths++

	if t.opts.Preview && !t.collecting && !paint.fill.IsNone() {
		t.preview = append(t.preview, pi.p)
	}
	return nil
}
