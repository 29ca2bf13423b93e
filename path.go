package aieps

import (
	"math"
	"strings"
)

// Path commands. Each command in Path.d is followed by its coordinates and repeated, so that the path can be traversed in both directions.
const (
	MoveToCmd = 1.0
	LineToCmd = 2.0
	CubeToCmd = 4.0
	CloseCmd  = 8.0
)

func cmdLen(cmd float64) int {
	switch cmd {
	case CubeToCmd:
		return 8
	}
	return 4
}

// Path is a sequence of subpaths in page coordinates. A closed subpath ends with a close command that returns to its start.
type Path struct {
	d     []float64
	start Point
}

// Empty returns true if the path has no subpaths.
func (p *Path) Empty() bool {
	return len(p.d) == 0
}

// Len returns the number of subpaths.
func (p *Path) Len() int {
	n := 0
	for i := 0; i < len(p.d); i += cmdLen(p.d[i]) {
		if p.d[i] == MoveToCmd {
			n++
		}
	}
	return n
}

// MoveTo starts a new subpath.
func (p *Path) MoveTo(x, y float64) {
	p.start = Point{x, y}
	p.d = append(p.d, MoveToCmd, x, y, MoveToCmd)
}

// LineTo adds a straight line.
func (p *Path) LineTo(x, y float64) {
	p.d = append(p.d, LineToCmd, x, y, LineToCmd)
}

// CubeTo adds a cubic Bézier curve with control points (cpx1,cpy1) and (cpx2,cpy2).
func (p *Path) CubeTo(cpx1, cpy1, cpx2, cpy2, x, y float64) {
	p.d = append(p.d, CubeToCmd, cpx1, cpy1, cpx2, cpy2, x, y, CubeToCmd)
}

// Close closes the current subpath.
func (p *Path) Close() {
	p.d = append(p.d, CloseCmd, p.start.X, p.start.Y, CloseCmd)
}

// truncate removes everything from position i onwards.
func (p *Path) truncate(i int) {
	p.d = p.d[:i]
}

// Bounds returns the bounding box of the end and control points.
func (p *Path) Bounds() Rect {
	if len(p.d) == 0 {
		return Rect{}
	}
	xmin, ymin := math.Inf(1), math.Inf(1)
	xmax, ymax := math.Inf(-1), math.Inf(-1)
	for i := 0; i < len(p.d); {
		cmd := p.d[i]
		n := cmdLen(cmd)
		for j := i + 1; j+1 < i+n; j += 2 {
			xmin, xmax = math.Min(xmin, p.d[j]), math.Max(xmax, p.d[j])
			ymin, ymax = math.Min(ymin, p.d[j+1]), math.Max(ymax, p.d[j+1])
		}
		i += n
	}
	return Rect{xmin, ymin, xmax - xmin, ymax - ymin}
}

// Rect is a rectangle given by its origin and size.
type Rect struct {
	X, Y, W, H float64
}

// paintOp describes how the subpaths of a path are painted.
type paintOp struct {
	op       string // lowercase AI painting operator such as f, s, b, n, or "h n"
	gradient string // gradient instance placed around the operator of the last subpath
}

// toAI writes the subpaths as AI path operators. Each subpath ends with its painting operator, lowercase if the subpath is closed.
func (p *Path) toAI(sb *strings.Builder, prec dec, paint paintOp) {
	n := p.Len()
	k := 0
	open := false
	for i := 0; i < len(p.d); {
		cmd := p.d[i]
		switch cmd {
		case MoveToCmd:
			if open {
				endAI(sb, paint, false, false)
			}
			open = true
			k++
			sb.WriteString(" " + prec.fs(p.d[i+1], p.d[i+2]) + " m")
		case LineToCmd:
			sb.WriteString(" " + prec.fs(p.d[i+1], p.d[i+2]) + " l")
		case CubeToCmd:
			sb.WriteString(" " + prec.fs(p.d[i+1], p.d[i+2], p.d[i+3], p.d[i+4], p.d[i+5], p.d[i+6]) + " c")
		case CloseCmd:
			endAI(sb, paint, true, k == n)
			open = false
		}
		i += cmdLen(cmd)
	}
	if open {
		endAI(sb, paint, false, true)
	}
}

func endAI(sb *strings.Builder, paint paintOp, closed, last bool) {
	op := paint.op
	if !closed {
		op = strings.ToUpper(op)
	}
	if last && paint.gradient != "" {
		op = "\n" + paint.gradient + " " + op + " 0 BB"
	}
	sb.WriteString(" " + op + "\n")
}
