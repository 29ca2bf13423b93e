package aieps

import "math"

// Cubic is a cubic Bézier curve given by its start point, two control points, and end point.
type Cubic [4]Point

// ArcToCubics converts the elliptical arc from start to end with radii rx and ry, x-axis rotation phi in degrees, and the large-arc and sweep flags into cubic Bézier curves, each spanning at most 90 degrees. It returns nil when the arc degenerates into a straight line, which is when either radius is zero or the start and end points coincide.
func ArcToCubics(start Point, rx, ry, phi float64, large, sweep bool, end Point) []Cubic {
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0.0 || ry == 0.0 || start.Equals(end) {
		return nil
	}

	sinphi, cosphi := math.Sincos(phi * math.Pi / 180.0)

	// endpoint to center parameterization
	hx := (start.X - end.X) / 2.0
	hy := (start.Y - end.Y) / 2.0
	x1p := cosphi*hx + sinphi*hy
	y1p := -sinphi*hx + cosphi*hy

	rx2, ry2 := rx*rx, ry*ry
	x1p2, y1p2 := x1p*x1p, y1p*y1p
	lambda := x1p2/rx2 + y1p2/ry2
	sds := 0.0
	if 1.0 < lambda {
		// radii too small to connect both points
		rx *= math.Sqrt(lambda)
		ry *= math.Sqrt(lambda)
	} else {
		sign := 1.0
		if large == sweep {
			sign = -1.0
		}
		sq := (rx2*ry2 - rx2*y1p2 - ry2*x1p2) / (rx2*y1p2 + ry2*x1p2)
		sds = sign * math.Sqrt(math.Max(sq, 0.0))
	}

	cxp := sds * rx * y1p / ry
	cyp := -sds * ry * x1p / rx
	center := Point{
		cosphi*cxp - sinphi*cyp + (start.X+end.X)/2.0,
		sinphi*cxp + cosphi*cyp + (start.Y+end.Y)/2.0,
	}

	theta := math.Atan2((y1p-cyp)/ry, (x1p-cxp)/rx)
	if theta < 0.0 {
		theta += 2.0 * math.Pi
	}
	delta := math.Atan2((-y1p-cyp)/ry, (-x1p-cxp)/rx) - math.Atan2((y1p-cyp)/ry, (x1p-cxp)/rx)
	if delta < 0.0 {
		delta += 2.0 * math.Pi
	}
	if !sweep && 0.0 < delta {
		delta -= 2.0 * math.Pi
	} else if sweep && delta < 0.0 {
		delta += 2.0 * math.Pi
	}

	n := int(math.Ceil(math.Abs(delta)*2.0/math.Pi - 1e-9))
	if n == 0 {
		return nil
	}
	dtheta := delta / float64(n)
	t := 8.0 / 3.0 * math.Sin(dtheta/4.0) * math.Sin(dtheta/4.0) / math.Sin(dtheta/2.0)

	// derivative of the ellipse at angle theta scaled by t
	tangent := func(theta float64) Point {
		sintheta, costheta := math.Sincos(theta)
		return Point{
			-t * (cosphi*rx*sintheta + sinphi*ry*costheta),
			-t * (sinphi*rx*sintheta - cosphi*ry*costheta),
		}
	}

	cubics := make([]Cubic, 0, n)
	p0 := start
	c1 := start.Add(tangent(theta))
	for i := 0; i < n; i++ {
		theta += dtheta
		sintheta, costheta := math.Sincos(theta)
		p3 := Point{
			cosphi*rx*costheta - sinphi*ry*sintheta + center.X,
			sinphi*rx*costheta + cosphi*ry*sintheta + center.Y,
		}
		if i == n-1 {
			p3 = end
		}
		d := tangent(theta)
		cubics = append(cubics, Cubic{p0, c1, p3.Sub(d), p3})
		p0 = p3
		c1 = p3.Add(d)
	}
	return cubics
}
