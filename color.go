package aieps

import (
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// RGB is a color with components in [0,1].
type RGB struct {
	R, G, B float64
}

// CMYK converts to CMYK by extracting the black component.
func (c RGB) CMYK() (float64, float64, float64, float64) {
	if c.R == 0.0 && c.G == 0.0 && c.B == 0.0 {
		return 0.0, 0.0, 0.0, 1.0
	}
	cc, mm, yy := 1.0-c.R, 1.0-c.G, 1.0-c.B
	k := min(cc, mm, yy)
	return (cc - k) / (1.0 - k), (mm - k) / (1.0 - k), (yy - k) / (1.0 - k), k
}

type paintKind int

const (
	noPaint       paintKind = iota
	colorPaint              // flat color
	gradientPaint           // url(#id) reference
	otherPaint              // enabled without an expressible color
)

// Paint is a resolved fill or stroke value.
type Paint struct {
	kind  paintKind
	Color RGB
	ID    string // referenced paint server
}

// IsNone returns true if nothing is painted.
func (p Paint) IsNone() bool {
	return p.kind == noPaint
}

// IsColor returns true for flat colors.
func (p Paint) IsColor() bool {
	return p.kind == colorPaint
}

// IsGradient returns true for references to a paint server.
func (p Paint) IsGradient() bool {
	return p.kind == gradientPaint
}

// parsePaint parses the value of a fill, stroke, or stop-color property. Values that enable painting but cannot be expressed return a paint together with an UnsupportedFeatureError.
func parsePaint(v, currentColor string) (Paint, error) {
	v = strings.TrimSpace(v)
	if len(v) == 0 || v == "none" {
		return Paint{}, nil
	} else if strings.HasPrefix(v, "url(") {
		id, ok := urlID(v)
		if !ok {
			return Paint{kind: otherPaint}, unsupported("paint", v)
		}
		return Paint{kind: gradientPaint, ID: id}, nil
	} else if strings.EqualFold(v, "currentColor") {
		if currentColor == "" || strings.EqualFold(currentColor, "currentColor") {
			return Paint{kind: colorPaint}, nil
		}
		return parsePaint(currentColor, "")
	}

	if col, ok := parseColor(v); ok {
		return Paint{kind: colorPaint, Color: col}, nil
	}
	return Paint{kind: otherPaint}, unsupported("paint", v)
}

// parseColor parses hexadecimal colors, rgb() functions, and named colors.
func parseColor(v string) (RGB, bool) {
	if v[0] == '#' {
		h := v[1:]
		if len(h) == 3 {
			h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
		}
		if len(h) != 6 {
			return RGB{}, false
		}
		n, err := strconv.ParseUint(h, 16, 32)
		if err != nil {
			return RGB{}, false
		}
		return RGB{
			float64(n>>16&0xff) / 255.0,
			float64(n>>8&0xff) / 255.0,
			float64(n&0xff) / 255.0,
		}, true
	}

	v = strings.ToLower(v)
	if strings.HasPrefix(v, "rgb(") && strings.HasSuffix(v, ")") {
		comps := strings.Split(v[4:len(v)-1], ",")
		if len(comps) != 3 {
			return RGB{}, false
		}
		var c [3]float64
		for i, comp := range comps {
			comp = strings.TrimSpace(comp)
			scale := 255.0
			if strings.HasSuffix(comp, "%") {
				comp = comp[:len(comp)-1]
				scale = 100.0
			}
			f, err := strconv.ParseFloat(comp, 64)
			if err != nil {
				return RGB{}, false
			}
			c[i] = max(0.0, min(1.0, f/scale))
		}
		return RGB{c[0], c[1], c[2]}, true
	}
	if col, ok := colornames.Map[v]; ok {
		return RGB{float64(col.R) / 255.0, float64(col.G) / 255.0, float64(col.B) / 255.0}, true
	}
	return RGB{}, false
}

// urlID returns the identifier of a url(#id) reference. A fallback after the closing parenthesis is ignored.
func urlID(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "url(") {
		return "", false
	}
	end := strings.IndexByte(v, ')')
	if end == -1 {
		return "", false
	}
	id := strings.Trim(strings.TrimSpace(v[4:end]), `'"`)
	if !strings.HasPrefix(id, "#") || len(id) == 1 {
		return "", false
	}
	return id[1:], true
}
