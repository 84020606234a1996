package geometry

import (
	"math"

	"github.com/stewartad1/RapidEdge/internal/dxf/domain"
)

// SampleEllipse flattens an ellipse (or elliptical arc) into n+1 points.
// Returns nil when the ellipse is degenerate; callers fall back to a
// closed-form estimate.
func SampleEllipse(e domain.Ellipse, n int) []domain.Point {
	major := e.MajorAxis
	if (major.X == 0 && major.Y == 0) || e.Ratio <= 0 || n < 1 {
		return nil
	}
	// Minor axis is the major axis rotated 90 degrees and scaled.
	minor := domain.Point{X: -major.Y * e.Ratio, Y: major.X * e.Ratio}

	start, end := e.StartParam, e.EndParam
	if end <= start {
		end += 2 * math.Pi
	}
	if start == 0 && e.EndParam == 0 {
		end = 2 * math.Pi
	}

	pts := make([]domain.Point, 0, n+1)
	for i := 0; i <= n; i++ {
		t := start + (end-start)*float64(i)/float64(n)
		cos, sin := math.Cos(t), math.Sin(t)
		pts = append(pts, domain.Point{
			X: e.Center.X + cos*major.X + sin*minor.X,
			Y: e.Center.Y + cos*major.Y + sin*minor.Y,
			Z: e.Center.Z,
		})
	}
	return pts
}

// ramanujanCircumference estimates a full ellipse circumference when
// sampling is impossible (degenerate axis data).
func ramanujanCircumference(e domain.Ellipse) float64 {
	a := math.Hypot(e.MajorAxis.X, e.MajorAxis.Y)
	b := a * e.Ratio
	if a == 0 || b <= 0 {
		return 0
	}
	return math.Pi * (3*(a+b) - math.Sqrt((3*a+b)*(a+3*b)))
}

// SampleSpline evaluates a B-spline at n+1 parameter values via de Boor's
// algorithm. A missing or inconsistent knot vector is replaced by a
// clamped uniform one.
func SampleSpline(s domain.Spline, n int) []domain.Point {
	ctrl := s.Controls
	if len(ctrl) < 2 || n < 1 {
		return nil
	}
	if len(ctrl) == 2 {
		return []domain.Point{ctrl[0], ctrl[1]}
	}

	degree := s.Degree
	if degree < 1 {
		degree = 3
	}
	if degree > len(ctrl)-1 {
		degree = len(ctrl) - 1
	}

	knots := s.Knots
	if len(knots) != len(ctrl)+degree+1 {
		knots = clampedUniformKnots(len(ctrl), degree)
	}

	lo, hi := knots[degree], knots[len(ctrl)]
	if hi <= lo {
		return nil
	}

	pts := make([]domain.Point, 0, n+1)
	for i := 0; i <= n; i++ {
		u := lo + (hi-lo)*float64(i)/float64(n)
		pts = append(pts, deBoor(u, degree, ctrl, knots))
	}
	return pts
}

func clampedUniformKnots(nCtrl, degree int) []float64 {
	knots := make([]float64, nCtrl+degree+1)
	interior := nCtrl - degree
	for i := range knots {
		switch {
		case i <= degree:
			knots[i] = 0
		case i >= nCtrl:
			knots[i] = float64(interior)
		default:
			knots[i] = float64(i - degree)
		}
	}
	return knots
}

func deBoor(u float64, degree int, ctrl []domain.Point, knots []float64) domain.Point {
	// Find the knot span k with knots[k] <= u < knots[k+1].
	k := degree
	for k < len(ctrl)-1 && u >= knots[k+1] {
		k++
	}

	d := make([]domain.Point, degree+1)
	for j := 0; j <= degree; j++ {
		d[j] = ctrl[k-degree+j]
	}

	for r := 1; r <= degree; r++ {
		for j := degree; j >= r; j-- {
			i := k - degree + j
			denom := knots[i+degree-r+1] - knots[i]
			var alpha float64
			if denom != 0 {
				alpha = (u - knots[i]) / denom
			}
			d[j] = domain.Point{
				X: (1-alpha)*d[j-1].X + alpha*d[j].X,
				Y: (1-alpha)*d[j-1].Y + alpha*d[j].Y,
				Z: (1-alpha)*d[j-1].Z + alpha*d[j].Z,
			}
		}
	}
	return d[degree]
}
