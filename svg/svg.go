// Package svg holds an in-memory SVG element tree and reads it from XML.
package svg

// Namespaces of the elements and attributes that are interpreted.
const (
	NS         = "http://www.w3.org/2000/svg"
	XLinkNS    = "http://www.w3.org/1999/xlink"
	XMLNS      = "http://www.w3.org/XML/1998/namespace"
	InkscapeNS = "http://www.inkscape.org/namespaces/inkscape"
	SodipodiNS = "http://sodipodi.sourceforge.net/DTD/sodipodi-0.dtd"
)

// Attr is an attribute. Space is the namespace URI, which is empty for attributes without prefix.
type Attr struct {
	Space, Name string
	Value       string
}

// Element is an element of the document tree. Space is the namespace URI of the element.
type Element struct {
	Space, Name string
	Attrs       []Attr
	Children    []*Element
	Text        string
}

// NewElement returns an SVG element with attributes given as name and value pairs. A name may have an inkscape:, sodipodi:, xlink:, or xml: prefix.
func NewElement(name string, attrs ...string) *Element {
	el := &Element{Space: NS, Name: name}
	for i := 0; i+1 < len(attrs); i += 2 {
		space, local := splitName(attrs[i])
		switch space {
		case "inkscape":
			space = InkscapeNS
		case "sodipodi":
			space = SodipodiNS
		case "xlink":
			space = XLinkNS
		case "xml":
			space = XMLNS
		}
		el.Attrs = append(el.Attrs, Attr{space, local, attrs[i+1]})
	}
	return el
}

// Append adds children and returns the element.
func (el *Element) Append(children ...*Element) *Element {
	el.Children = append(el.Children, children...)
	return el
}

// Attr returns the value of the attribute in the given namespace.
func (el *Element) Attr(space, name string) (string, bool) {
	for _, attr := range el.Attrs {
		if attr.Name == name && attr.Space == space {
			return attr.Value, true
		}
	}
	return "", false
}

// Get returns the value of the attribute without namespace, or an empty string.
func (el *Element) Get(name string) string {
	v, _ := el.Attr("", name)
	return v
}

// ID returns the id attribute.
func (el *Element) ID() string {
	return el.Get("id")
}

// Href returns the xlink:href attribute, or the href attribute otherwise.
func (el *Element) Href() string {
	if v, ok := el.Attr(XLinkNS, "href"); ok {
		return v
	}
	return el.Get("href")
}

// Walk calls f for the element and its descendants in document order. Children of an element are skipped when f returns false.
func (el *Element) Walk(f func(*Element) bool) {
	if f(el) {
		for _, child := range el.Children {
			child.Walk(f)
		}
	}
}

// FindByID returns the first element in document order with the given id.
func (el *Element) FindByID(id string) *Element {
	var found *Element
	el.Walk(func(e *Element) bool {
		if found == nil && e.ID() == id {
			found = e
		}
		return found == nil
	})
	return found
}

func splitName(name string) (string, string) {
	for i := 0; i < len(name); i++ {
		if name[i] == ':' {
			return name[:i], name[i+1:]
		}
	}
	return "", name
}
