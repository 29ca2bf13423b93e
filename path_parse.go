package aieps

import (
	"fmt"
	"math"

	"github.com/tdewolff/parse/v2/strconv"
)

// pathCommand is a path data command with its arguments. Commands with an unknown letter have no arguments.
type pathCommand struct {
	cmd  byte
	args []float64
}

func (c pathCommand) String() string {
	return fmt.Sprintf("%c%v", c.cmd, c.args)
}

// pathArgs is the number of arguments per command.
var pathArgs = map[byte]int{
	'M': 2, 'L': 2, 'H': 1, 'V': 1, 'C': 6, 'S': 4, 'Q': 4, 'T': 2, 'A': 7, 'Z': 0,
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func upper(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

// parsePathData splits SVG path data into commands. Numbers without a command letter repeat the previous command, where a moveto repeats as lineto. The numbers following an unknown command letter are skipped.
func parsePathData(d string) ([]pathCommand, error) {
	path := []byte(d)
	cmds := []pathCommand{}

	var prevCmd byte
	i := skipCommaWhitespace(path)
	for i < len(path) {
		cmd := prevCmd
		implicit := !isLetter(path[i])
		if !implicit {
			cmd = path[i]
			i++
		} else if prevCmd == 0 {
			return nil, &ParseError{Value: d, Reason: "bad path: expected command"}
		}

		n, ok := pathArgs[upper(cmd)]
		if !ok {
			cmds = append(cmds, pathCommand{cmd: cmd})
			i += skipCommaWhitespace(path[i:])
			for i < len(path) && !isLetter(path[i]) {
				if _, m := strconv.ParseFloat(path[i:]); m != 0 {
					i += m
				} else {
					i++
				}
				i += skipCommaWhitespace(path[i:])
			}
			prevCmd = cmd
			continue
		} else if n == 0 && implicit {
			return nil, &ParseError{Value: d, Reason: "bad path: numbers after closepath"}
		}

		args := make([]float64, n)
		for j := 0; j < n; j++ {
			i += skipCommaWhitespace(path[i:])
			if upper(cmd) == 'A' && (j == 3 || j == 4) {
				// flags may be written without separator
				if i < len(path) && (path[i] == '0' || path[i] == '1') {
					args[j] = float64(path[i] - '0')
					i++
					continue
				}
				return nil, &ParseError{Value: d, Reason: "bad path: expected arc flag"}
			}
			f, m := strconv.ParseFloat(path[i:])
			if m == 0 {
				return nil, &ParseError{Value: d, Reason: fmt.Sprintf("bad path: expected %d numbers after %c", n, cmd)}
			}
			args[j] = f
			i += m
		}
		cmds = append(cmds, pathCommand{cmd, args})

		prevCmd = cmd
		if cmd == 'M' {
			prevCmd = 'L'
		} else if cmd == 'm' {
			prevCmd = 'l'
		}
		i += skipCommaWhitespace(path[i:])
	}
	return cmds, nil
}

////////////////////////////////////////////////////////////////

// pathInterpreter executes path commands in user space and builds the path in page space.
type pathInterpreter struct {
	m          Matrix // user to page space
	closeDist  float64
	autoClose  bool
	dropStrays bool
	alert      func(error)

	p           Path
	cur, start  Point
	open        bool // inside a subpath
	closed      bool // explicitly closed by z
	segStart    int  // position in p.d of the current subpath
	segCmds     int  // commands in the current subpath, including its moveto
	prevCmd     byte
	cubicCtrl   Point // second control point of the previous cubic
	quadCtrl    Point // control point of the previous quadratic
	bounds      Rect  // in user space
	boundsEmpty bool
}

func newPathInterpreter(m Matrix, opts *Options, autoClose bool, alert func(error)) *pathInterpreter {
	return &pathInterpreter{
		m:           m,
		closeDist:   opts.CloseDistance,
		autoClose:   autoClose,
		dropStrays:  opts.RemoveStrayPoints,
		alert:       alert,
		boundsEmpty: true,
	}
}

func (pi *pathInterpreter) extend(ps ...Point) {
	for _, p := range ps {
		if pi.boundsEmpty {
			pi.bounds = Rect{p.X, p.Y, 0.0, 0.0}
			pi.boundsEmpty = false
			continue
		}
		x0, y0 := math.Min(pi.bounds.X, p.X), math.Min(pi.bounds.Y, p.Y)
		x1, y1 := math.Max(pi.bounds.X+pi.bounds.W, p.X), math.Max(pi.bounds.Y+pi.bounds.H, p.Y)
		pi.bounds = Rect{x0, y0, x1 - x0, y1 - y0}
	}
}

func (pi *pathInterpreter) moveTo(p Point) {
	pi.endSegment()
	pi.segStart = len(pi.p.d)
	q := pi.m.Dot(p)
	pi.p.MoveTo(q.X, q.Y)
	pi.cur, pi.start = p, p
	pi.open, pi.closed = true, false
	pi.segCmds = 1
	pi.extend(p)
}

func (pi *pathInterpreter) lineTo(p Point) {
	q := pi.m.Dot(p)
	pi.p.LineTo(q.X, q.Y)
	pi.cur = p
	pi.extend(p)
}

func (pi *pathInterpreter) cubeTo(c1, c2, p Point) {
	q1, q2, q := pi.m.Dot(c1), pi.m.Dot(c2), pi.m.Dot(p)
	pi.p.CubeTo(q1.X, q1.Y, q2.X, q2.Y, q.X, q.Y)
	pi.cur = p
	pi.extend(c1, c2, p)
}

// endSegment finishes the current subpath. Subpaths with only a moveto are removed, closed subpaths get an explicit line to their start if they do not end there.
func (pi *pathInterpreter) endSegment() {
	if !pi.open {
		return
	}
	pi.open = false
	if pi.dropStrays && pi.segCmds <= 1 {
		pi.alert(ErrStrayPoint)
		pi.p.truncate(pi.segStart)
	} else if pi.closed || pi.autoClose {
		if pi.closeDist < math.Abs(pi.cur.X-pi.start.X)+math.Abs(pi.cur.Y-pi.start.Y) {
			pi.lineTo(pi.start)
		}
		pi.p.Close()
	}
	if pi.closed {
		pi.cur = pi.start
	}
}

// run executes the commands. It fails when drawing commands precede the first moveto.
func (pi *pathInterpreter) run(cmds []pathCommand) error {
	for _, c := range cmds {
		cmd, a := c.cmd, c.args
		if _, ok := pathArgs[upper(cmd)]; !ok {
			pi.alert(unsupported("unhandled path command", string(cmd)))
			pi.prevCmd = 0
			continue
		}

		if upper(cmd) != 'M' && upper(cmd) != 'Z' && (!pi.open || pi.closed) {
			if !pi.open && pi.segCmds == 0 {
				return &ParseError{Value: c.String(), Reason: "bad path: expected moveto"}
			}
			// a drawing command after closepath starts a new subpath at the start of the previous one
			pi.moveTo(pi.start)
		}

		rel := 'a' <= cmd && cmd <= 'z'
		abs := func(x, y float64) Point {
			if rel {
				return Point{pi.cur.X + x, pi.cur.Y + y}
			}
			return Point{x, y}
		}

		switch upper(cmd) {
		case 'M':
			if pi.closed {
				pi.endSegment() // relative moveto after closepath starts from the subpath start
			}
			pi.moveTo(abs(a[0], a[1]))
		case 'Z':
			if pi.open {
				pi.closed = true
			}
		case 'L':
			pi.lineTo(abs(a[0], a[1]))
			pi.segCmds++
		case 'H':
			x := a[0]
			if rel {
				x += pi.cur.X
			}
			pi.lineTo(Point{x, pi.cur.Y})
			pi.segCmds++
		case 'V':
			y := a[0]
			if rel {
				y += pi.cur.Y
			}
			pi.lineTo(Point{pi.cur.X, y})
			pi.segCmds++
		case 'C', 'S':
			var c1, c2, p Point
			if upper(cmd) == 'C' {
				c1, c2, p = abs(a[0], a[1]), abs(a[2], a[3]), abs(a[4], a[5])
			} else {
				c1 = pi.cur
				if prev := upper(pi.prevCmd); prev == 'C' || prev == 'S' {
					c1 = pi.cur.Mul(2.0).Sub(pi.cubicCtrl)
				}
				c2, p = abs(a[0], a[1]), abs(a[2], a[3])
			}
			pi.cubeTo(c1, c2, p)
			pi.cubicCtrl = c2
			pi.segCmds++
		case 'Q', 'T':
			var q, p Point
			if upper(cmd) == 'Q' {
				q, p = abs(a[0], a[1]), abs(a[2], a[3])
			} else {
				q = pi.cur
				if prev := upper(pi.prevCmd); prev == 'Q' || prev == 'T' {
					q = pi.cur.Mul(2.0).Sub(pi.quadCtrl)
				}
				p = abs(a[0], a[1])
			}
			c1 := pi.cur.Add(q.Sub(pi.cur).Mul(2.0 / 3.0))
			c2 := p.Add(q.Sub(p).Mul(2.0 / 3.0))
			pi.cubeTo(c1, c2, p)
			pi.quadCtrl = q
			pi.segCmds++
		case 'A':
			p := abs(a[5], a[6])
			cubics := ArcToCubics(pi.cur, a[0], a[1], a[2], a[3] == 1.0, a[4] == 1.0, p)
			if cubics == nil {
				pi.lineTo(p)
			}
			for _, cubic := range cubics {
				pi.cubeTo(cubic[1], cubic[2], cubic[3])
			}
			pi.segCmds++
		}
		pi.prevCmd = cmd
	}
	pi.endSegment()
	return nil
}
