package aieps

import (
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/tdewolff/aieps/svg"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Style is a resolved set of style properties. A style is never modified after it has been resolved.
type Style map[string]string

// presentationAttributes are the attributes that act as style properties.
var presentationAttributes = []string{
	"color",
	"display",
	"fill",
	"fill-opacity",
	"fill-rule",
	"opacity",
	"stop-color",
	"stop-opacity",
	"stroke",
	"stroke-dasharray",
	"stroke-dashoffset",
	"stroke-linecap",
	"stroke-linejoin",
	"stroke-miterlimit",
	"stroke-opacity",
	"stroke-width",
	"visibility",
}

// Cascade returns the style of a child element: its presentation attributes, matching style sheet rules, and style attribute, in increasing priority, overlaid on s.
func (s Style) Cascade(el *svg.Element, sheet *styleSheet) Style {
	child := make(Style, len(s)+4)
	for k, v := range s {
		child[k] = v
	}
	set := func(key, val string) {
		if val != "inherit" {
			child[key] = val
		}
	}
	for _, name := range presentationAttributes {
		if v, ok := el.Attr("", name); ok {
			set(name, strings.TrimSpace(v))
		}
	}
	if sheet != nil {
		for _, decl := range sheet.match(el) {
			set(decl.key, decl.val)
		}
	}
	for _, decl := range parseDeclarations(el.Get("style")) {
		set(decl.key, decl.val)
	}
	return child
}

type declaration struct {
	key, val string
}

// parseDeclarations parses the declarations of a style attribute.
func parseDeclarations(v string) []declaration {
	decls := []declaration{}
	for _, item := range strings.Split(v, ";") {
		if keyVal := strings.SplitN(item, ":", 2); len(keyVal) == 2 {
			key := strings.ToLower(strings.TrimSpace(keyVal[0]))
			if key != "" {
				decls = append(decls, declaration{key, strings.TrimSpace(keyVal[1])})
			}
		}
	}
	return decls
}

// hidden returns true if the element is not displayed.
func (s Style) hidden() bool {
	if v := s["visibility"]; v == "hidden" || v == "collapse" {
		return true
	}
	return s["display"] == "none"
}

// unpainted returns true if neither stroke nor fill of a shape is visible.
func (s Style) unpainted() bool {
	if isZero(s["opacity"]) {
		return true
	}
	stroke := s["stroke"] != "" && s["stroke"] != "none"
	if isZero(s["stroke-opacity"]) || isZero(s["stroke-width"]) {
		stroke = false
	}
	fill := s["fill"] != "" && s["fill"] != "none"
	if isZero(s["fill-opacity"]) {
		fill = false
	}
	return !stroke && !fill
}

// isZero returns true for numbers, lengths, and percentages that are zero.
func isZero(v string) bool {
	v = strings.TrimSpace(v)
	if len(v) == 0 {
		return false
	}
	nn, _ := parse.Dimension([]byte(v))
	f, err := strconv.ParseFloat(v[:nn], 64)
	return err == nil && f == 0.0
}

////////////////////////////////////////////////////////////////

type styleRule struct {
	selector    selector
	specificity int
	decls       []declaration
}

// selector is a simple selector such as rect, .cls-1, #id, or path.cls-1.
type selector struct {
	tag, id string
	classes []string
}

func (sel selector) matches(el *svg.Element) bool {
	if sel.tag != "" && sel.tag != "*" && sel.tag != el.Name {
		return false
	} else if sel.id != "" && sel.id != el.ID() {
		return false
	}
	classes := strings.Fields(el.Get("class"))
	for _, class := range sel.classes {
		found := false
		for _, c := range classes {
			if c == class {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// styleSheet holds the rules of style elements.
type styleSheet struct {
	rules []styleRule
}

// parse adds the rules of a style element. It returns the selectors that were skipped because they combine several elements.
func (sheet *styleSheet) parse(text string) []string {
	skipped := []string{}
	parser := css.NewParser(parse.NewInputString(text), false)
	selectors := []string{}
	decls := []declaration{}
	for {
		gt, _, data := parser.Next()
		if gt == css.QualifiedRuleGrammar || gt == css.BeginRulesetGrammar {
			sel := strings.Builder{}
			for _, val := range parser.Values() {
				if val.TokenType == css.WhitespaceToken {
					sel.WriteByte(' ')
				} else {
					sel.Write(val.Data)
				}
			}
			if s := strings.TrimSpace(sel.String()); len(s) != 0 {
				selectors = append(selectors, s)
			}
		} else if gt == css.DeclarationGrammar {
			val := strings.Builder{}
			for _, v := range parser.Values() {
				val.Write(v.Data)
			}
			v := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(val.String()), "!important"))
			decls = append(decls, declaration{strings.ToLower(string(data)), v})
		}

		if gt == css.ErrorGrammar || gt == css.EndRulesetGrammar {
			for _, s := range selectors {
				if sel, ok := parseSelector(s); ok {
					sheet.rules = append(sheet.rules, styleRule{
						selector:    sel,
						specificity: sel.specificity(),
						decls:       decls,
					})
				} else {
					skipped = append(skipped, s)
				}
			}
			selectors = []string{}
			decls = []declaration{}
		}
		if gt == css.ErrorGrammar {
			if parser.Err() != io.EOF {
				skipped = append(skipped, "style sheet: "+parser.Err().Error())
			}
			break
		}
	}
	return skipped
}

func parseSelector(s string) (selector, bool) {
	sel := selector{}
	if strings.ContainsAny(s, " >+~[:") {
		return sel, false
	}
	i := 0
	for i < len(s) && s[i] != '.' && s[i] != '#' {
		i++
	}
	sel.tag = s[:i]
	for i < len(s) {
		j := i + 1
		for j < len(s) && s[j] != '.' && s[j] != '#' {
			j++
		}
		if j == i+1 {
			return sel, false
		} else if s[i] == '#' {
			sel.id = s[i+1 : j]
		} else {
			sel.classes = append(sel.classes, s[i+1:j])
		}
		i = j
	}
	return sel, true
}

func (sel selector) specificity() int {
	n := len(sel.classes) * 10
	if sel.id != "" {
		n += 100
	}
	if sel.tag != "" && sel.tag != "*" {
		n++
	}
	return n
}

// match returns the declarations of the matching rules by increasing specificity, rules of equal specificity in document order.
func (sheet *styleSheet) match(el *svg.Element) []declaration {
	rules := []styleRule{}
	for _, rule := range sheet.rules {
		if rule.selector.matches(el) {
			rules = append(rules, rule)
		}
	}
	if len(rules) == 0 {
		return nil
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].specificity < rules[j].specificity
	})
	decls := []declaration{}
	for _, rule := range rules {
		decls = append(decls, rule.decls...)
	}
	return decls
}

////////////////////////////////////////////////////////////////

// shapePaint is the paint of a shape derived from its style.
type shapePaint struct {
	paintOp
	stroke, fill Paint
}

// shapePaint derives the stroke and fill and selects the painting operator. A zero opacity or stroke width disables the respective paint.
func (t *transcoder) shapePaint(el *svg.Element, style Style) shapePaint {
	if t.collecting {
		return shapePaint{paintOp: paintOp{op: "h n"}}
	}

	sp := shapePaint{paintOp: paintOp{op: "n"}}
	var err error
	if sp.stroke, err = parsePaint(style["stroke"], style["color"]); err != nil {
		t.alert(err, el)
	}
	if sp.fill, err = parsePaint(style["fill"], style["color"]); err != nil {
		t.alert(err, el)
	}
	if isZero(style["stroke-opacity"]) || isZero(style["stroke-width"]) {
		sp.stroke = Paint{}
	}
	if isZero(style["fill-opacity"]) {
		sp.fill = Paint{}
	}

	if !sp.stroke.IsNone() && !sp.fill.IsNone() {
		sp.op = "b"
	} else if !sp.stroke.IsNone() {
		sp.op = "s"
	} else if !sp.fill.IsNone() {
		sp.op = "f"
	}
	return sp
}

var lineCaps = map[string]string{"butt": "0", "round": "1", "square": "2"}
var lineJoins = map[string]string{"miter": "0", "round": "1", "bevel": "2"}

// styleOps returns the color and stroke operators of a shape. A gradient fill sets the gradient instance of the paint operator.
func (t *transcoder) styleOps(el *svg.Element, style Style, sp *shapePaint, bounds Rect) (string, error) {
	if t.collecting {
		return "", nil
	}

	m := t.matrix()
	length := func(v string) (float64, error) {
		f, err := t.units.convert(v, "uu")
		if err != nil {
			return 0.0, withID(err, el)
		}
		return math.Copysign(m.DotLength(f), f), nil
	}

	sb := strings.Builder{}
	if sp.stroke.IsGradient() {
		t.alert(unsupported("gradient strokes not supported", ""), el)
	} else if sp.stroke.IsColor() {
		c := sp.stroke.Color
		sb.WriteString(" " + t.prec.fs(c.R, c.G, c.B) + " XA")
	}

	if sp.fill.IsGradient() {
		ops, gradient, err := t.gradientPaint(el, sp.fill.ID, bounds)
		if err != nil {
			return "", err
		}
		sb.WriteString(ops)
		sp.gradient = gradient
	} else if sp.fill.IsColor() {
		c := sp.fill.Color
		sb.WriteString(" " + t.prec.fs(c.R, c.G, c.B) + " Xa")
	}

	if v, ok := style["fill-rule"]; ok {
		if v == "evenodd" {
			sb.WriteString(" 1 XR")
		} else {
			sb.WriteString(" 0 XR")
		}
	}
	if v, ok := style["stroke-width"]; ok {
		w, err := length(v)
		if err != nil {
			return "", err
		}
		sb.WriteString(" " + t.prec.f(w) + " w")
	}
	if v, ok := lineCaps[style["stroke-linecap"]]; ok {
		sb.WriteString(" " + v + " J")
	}
	if v, ok := lineJoins[style["stroke-linejoin"]]; ok {
		sb.WriteString(" " + v + " j")
	}
	if v, ok := style["stroke-miterlimit"]; ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return "", &ParseError{ID: el.ID(), Value: v, Reason: "bad miter limit"}
		}
		sb.WriteString(" " + t.prec.f(f) + " M")
	}
	if v, ok := style["stroke-dasharray"]; ok {
		dashes := []string{}
		phase := 0.0
		if v != "none" {
			for _, dash := range strings.FieldsFunc(v, func(r rune) bool {
				return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
			}) {
				d, err := length(dash)
				if err != nil {
					return "", err
				}
				dashes = append(dashes, t.prec.f(d))
			}
			var err error
			if phase, err = length(style["stroke-dashoffset"]); err != nil {
				return "", err
			}
		}
		sb.WriteString(" [" + strings.Join(dashes, " ") + "] " + t.prec.f(phase) + " d")
	}
	return sb.String(), nil
}
