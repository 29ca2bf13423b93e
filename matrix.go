package aieps

import (
	"fmt"
	"math"
	"strings"
)

// Epsilon is the smallest number below which we assume the value to be zero.
const Epsilon = 1e-10

func equal(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

// Point is a coordinate in user or page space.
type Point struct {
	X, Y float64
}

// Add adds Q to P.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub subtracts Q from P.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Mul multiplies x and y by f.
func (p Point) Mul(f float64) Point {
	return Point{f * p.X, f * p.Y}
}

// Length returns the length of the vector from the origin to P.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Equals returns true if P and Q are equal within Epsilon.
func (p Point) Equals(q Point) bool {
	return equal(p.X, q.X) && equal(p.Y, q.Y)
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

////////////////////////////////////////////////////////////////

// Matrix is an affine transformation {{a, c, e}, {b, d, f}} that maps x' = a*x + c*y + e and y' = b*x + d*y + f. Concatenated transformations are evaluated right-to-left, so that m.Mul(q) applies q first and m second.
type Matrix [2][3]float64

// Identity is the transformation that leaves every point in place.
var Identity = Matrix{
	{1.0, 0.0, 0.0},
	{0.0, 1.0, 0.0},
}

// NewMatrix returns the matrix for the SVG coefficients a, b, c, d, e, f as written in matrix(a b c d e f).
func NewMatrix(a, b, c, d, e, f float64) Matrix {
	return Matrix{{a, c, e}, {b, d, f}}
}

// Mul returns m·q, the transformation that applies q and then m.
func (m Matrix) Mul(q Matrix) Matrix {
	return Matrix{{
		m[0][0]*q[0][0] + m[0][1]*q[1][0],
		m[0][0]*q[0][1] + m[0][1]*q[1][1],
		m[0][0]*q[0][2] + m[0][1]*q[1][2] + m[0][2],
	}, {
		m[1][0]*q[0][0] + m[1][1]*q[1][0],
		m[1][0]*q[0][1] + m[1][1]*q[1][1],
		m[1][0]*q[0][2] + m[1][1]*q[1][2] + m[1][2],
	}}
}

// Compose returns the transformation of a child whose local transformation is local, given that m is the transformation of its parent. The local transformation is applied inside the coordinate space of the parent.
func (m Matrix) Compose(local Matrix) Matrix {
	return m.Mul(local)
}

// Dot maps a point.
func (m Matrix) Dot(p Point) Point {
	return Point{
		m[0][0]*p.X + m[0][1]*p.Y + m[0][2],
		m[1][0]*p.X + m[1][1]*p.Y + m[1][2],
	}
}

// DotLength maps a length that has no position, such as a stroke width, as the length of the mapped horizontal vector.
func (m Matrix) DotLength(l float64) float64 {
	return math.Hypot(m[0][0]*l, m[1][0]*l)
}

// Translate translates by (x,y) before applying m.
func (m Matrix) Translate(x, y float64) Matrix {
	return m.Mul(Matrix{
		{1.0, 0.0, x},
		{0.0, 1.0, y},
	})
}

// Rotate rotates by rot degrees counter clockwise before applying m.
func (m Matrix) Rotate(rot float64) Matrix {
	sintheta, costheta := math.Sincos(rot * math.Pi / 180.0)
	return m.Mul(Matrix{
		{costheta, -sintheta, 0.0},
		{sintheta, costheta, 0.0},
	})
}

// RotateAt rotates by rot degrees around (x,y) before applying m.
func (m Matrix) RotateAt(rot, x, y float64) Matrix {
	return m.Translate(x, y).Rotate(rot).Translate(-x, -y)
}

// Scale scales by x and y before applying m.
func (m Matrix) Scale(x, y float64) Matrix {
	return m.Mul(Matrix{
		{x, 0.0, 0.0},
		{0.0, y, 0.0},
	})
}

// Det returns the determinant.
func (m Matrix) Det() float64 {
	return m[0][0]*m[1][1] - m[0][1]*m[1][0]
}

// Equals returns true if both matrices are equal within Epsilon.
func (m Matrix) Equals(q Matrix) bool {
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			if !equal(m[i][j], q[i][j]) {
				return false
			}
		}
	}
	return true
}

func (m Matrix) String() string {
	return fmt.Sprintf("[%g %g %g %g %g %g]", m[0][0], m[1][0], m[0][1], m[1][1], m[0][2], m[1][2])
}

////////////////////////////////////////////////////////////////

// parseTransform parses an SVG transform attribute. It returns the transformation and a list of transform functions that were skipped because they are not supported.
func parseTransform(v string) (Matrix, []string, error) {
	i, j := 0, 0
	m := Identity
	var fun string
	var skipped []string
	for i < len(v) {
		if v[i] == '(' {
			fun = strings.TrimSpace(strings.Trim(v[j:i], ", \t\r\n"))
			j = i + 1
		} else if v[i] == ')' {
			d, err := parseNumbers(v[j:i])
			if err != nil {
				return Identity, skipped, &ParseError{Value: v, Reason: "bad transform"}
			}
			switch fun {
			case "matrix":
				if len(d) != 6 {
					return Identity, skipped, &ParseError{Value: v, Reason: "bad transform matrix"}
				}
				m = m.Mul(NewMatrix(d[0], d[1], d[2], d[3], d[4], d[5]))
			case "translate":
				if len(d) == 1 {
					m = m.Translate(d[0], 0.0)
				} else if len(d) == 2 {
					m = m.Translate(d[0], d[1])
				} else {
					return Identity, skipped, &ParseError{Value: v, Reason: "bad transform translate"}
				}
			case "scale":
				if len(d) == 1 {
					m = m.Scale(d[0], d[0])
				} else if len(d) == 2 {
					m = m.Scale(d[0], d[1])
				} else {
					return Identity, skipped, &ParseError{Value: v, Reason: "bad transform scale"}
				}
			case "rotate":
				if len(d) == 1 {
					m = m.Rotate(d[0])
				} else if len(d) == 3 {
					m = m.RotateAt(d[0], d[1], d[2])
				} else {
					return Identity, skipped, &ParseError{Value: v, Reason: "bad transform rotate"}
				}
			default:
				skipped = append(skipped, fun)
			}
			i++
			j = i
			continue
		}
		i++
	}
	return m, skipped, nil
}
