package svg

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
	"golang.org/x/net/html/charset"
)

type frame struct {
	el    *Element
	qname string
	scope map[string]string // namespace prefix to URI
}

// Parse reads an SVG document and returns its root element. Documents with an XML declaration naming an encoding other than UTF-8 are decoded first.
func Parse(r io.Reader) (*Element, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if label := xmlEncoding(b); label != "" && !strings.EqualFold(label, "utf-8") && !strings.EqualFold(label, "utf8") {
		cr, err := charset.NewReaderLabel(label, bytes.NewReader(b))
		if err != nil {
			return nil, fmt.Errorf("svg: %w", err)
		}
		if b, err = io.ReadAll(cr); err != nil {
			return nil, fmt.Errorf("svg: %w", err)
		}
	}

	z := parse.NewInputBytes(b)
	defer z.Restore()

	l := xml.NewLexer(z)
	var root *Element
	stack := []frame{{scope: map[string]string{"xml": XMLNS}}}
	for {
		tt, data := l.Next()
		switch tt {
		case xml.ErrorToken:
			if l.Err() != io.EOF {
				return nil, l.Err()
			} else if 1 < len(stack) {
				return nil, parse.NewErrorLexer(z, "unclosed tag: %s", stack[len(stack)-1].qname)
			} else if root == nil {
				return nil, fmt.Errorf("svg: expected SVG tag")
			}
			return root, nil
		case xml.StartTagToken:
			qname := string(data[1:])
			attrs := [][2]string{}
			for {
				tt, _ = l.Next()
				if tt != xml.AttributeToken {
					break
				}
				val := l.AttrVal()
				if 2 <= len(val) && (val[0] == '"' || val[0] == '\'') {
					val = val[1 : len(val)-1]
				}
				attrs = append(attrs, [2]string{string(l.Text()), html.UnescapeString(string(val))})
			}

			parent := stack[len(stack)-1]
			scope, cloned := parent.scope, false
			for _, attr := range attrs {
				if attr[0] == "xmlns" || strings.HasPrefix(attr[0], "xmlns:") {
					if !cloned {
						scope, cloned = cloneScope(parent.scope), true
					}
					scope[strings.TrimPrefix(strings.TrimPrefix(attr[0], "xmlns"), ":")] = attr[1]
				}
			}

			el := &Element{}
			prefix, local := splitName(qname)
			el.Space, el.Name = resolve(scope, prefix, true), local
			for _, attr := range attrs {
				if attr[0] == "xmlns" || strings.HasPrefix(attr[0], "xmlns:") {
					continue
				}
				prefix, local := splitName(attr[0])
				el.Attrs = append(el.Attrs, Attr{resolve(scope, prefix, false), local, attr[1]})
			}

			if parent.el == nil {
				if root != nil {
					return nil, parse.NewErrorLexer(z, "unexpected second root element: %s", qname)
				} else if el.Name != "svg" {
					return nil, parse.NewErrorLexer(z, "expected SVG tag: %s", qname)
				}
				root = el
			} else {
				parent.el.Children = append(parent.el.Children, el)
			}
			if tt == xml.StartTagCloseToken {
				stack = append(stack, frame{el, qname, scope})
			} else if tt != xml.StartTagCloseVoidToken {
				return nil, parse.NewErrorLexer(z, "bad tag: %s", qname)
			}
		case xml.EndTagToken:
			qname := strings.TrimSpace(string(data[2 : len(data)-1]))
			if len(stack) == 1 || stack[len(stack)-1].qname != qname {
				return nil, parse.NewErrorLexer(z, "unexpected closing tag: %s", qname)
			}
			stack = stack[:len(stack)-1]
		case xml.TextToken:
			if el := stack[len(stack)-1].el; el != nil {
				el.Text += html.UnescapeString(string(data))
			}
		case xml.CDATAToken:
			if el := stack[len(stack)-1].el; el != nil && 12 <= len(data) {
				el.Text += string(data[9 : len(data)-3])
			}
		}
	}
}

func cloneScope(scope map[string]string) map[string]string {
	clone := make(map[string]string, len(scope)+1)
	for k, v := range scope {
		clone[k] = v
	}
	return clone
}

// resolve returns the namespace URI of a prefix. Unprefixed attributes have no namespace, unprefixed elements are in the default namespace. Unbound prefixes resolve to themselves.
func resolve(scope map[string]string, prefix string, element bool) string {
	if prefix == "" && !element {
		return ""
	} else if uri, ok := scope[prefix]; ok {
		return uri
	}
	return prefix
}

// xmlEncoding returns the encoding named by the XML declaration, if any.
func xmlEncoding(b []byte) string {
	b = bytes.TrimPrefix(b, []byte("\xef\xbb\xbf"))
	if !bytes.HasPrefix(b, []byte("<?xml")) {
		return ""
	}
	end := bytes.Index(b, []byte("?>"))
	if end == -1 {
		return ""
	}
	decl := string(b[:end])
	i := strings.Index(decl, "encoding")
	if i == -1 {
		return ""
	}
	decl = strings.TrimLeft(decl[i+len("encoding"):], " \t\r\n")
	if !strings.HasPrefix(decl, "=") {
		return ""
	}
	decl = strings.TrimLeft(decl[1:], " \t\r\n")
	if len(decl) == 0 || decl[0] != '"' && decl[0] != '\'' {
		return ""
	}
	if j := strings.IndexByte(decl[1:], decl[0]); j != -1 {
		return decl[1 : j+1]
	}
	return ""
}
