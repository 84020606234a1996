// Package geometry extracts point samples, lengths, and bounding shapes
// from drawing entities. Everything here is a pure function of its input.
package geometry

import (
	"math"

	"github.com/stewartad1/RapidEdge/internal/dxf/domain"
)

// curveSamples is the number of parametric samples used to approximate
// splines, ellipses, and full circles.
const curveSamples = 128

// Sample returns the hull-contributing points of an entity and its
// approximate arc length. ok is false for kinds that contribute no
// geometry (they are excluded from aggregates, not an error).
func Sample(e domain.Entity) (pts []domain.Point, length float64, ok bool) {
	switch v := e.(type) {
	case domain.Line:
		return []domain.Point{v.Start, v.End}, v.Start.DistanceTo(v.End), true
	case domain.Circle:
		// Circles contribute no endpoints; connectivity tracks them by
		// center and radius instead.
		return nil, 2 * math.Pi * v.Radius, true
	case domain.Arc:
		start, end := arcEndpoints(v)
		sweep := NormalizeSweep(v.StartAngle, v.EndAngle)
		return []domain.Point{start, end}, v.Radius * sweep * math.Pi / 180, true
	case domain.Polyline:
		return append([]domain.Point(nil), v.Vertices...), polylineLength(v), true
	case domain.Spline:
		sampled := SampleSpline(v, curveSamples)
		if len(sampled) == 0 {
			return nil, 0, true
		}
		return sampled, chordLength(sampled, false), true
	case domain.Ellipse:
		sampled := SampleEllipse(v, curveSamples)
		if len(sampled) == 0 {
			return nil, ramanujanCircumference(v), true
		}
		return sampled, chordLength(sampled, false), true
	default:
		return nil, 0, false
	}
}

// EntityBounds computes the axis-aligned box of a single entity, nil when
// it has no geometric extent.
func EntityBounds(e domain.Entity) *domain.Bounds {
	switch v := e.(type) {
	case domain.Line:
		return domain.BoundsOf([]domain.Point{v.Start, v.End})
	case domain.Circle:
		return domain.BoundsOf([]domain.Point{
			{X: v.Center.X - v.Radius, Y: v.Center.Y - v.Radius, Z: v.Center.Z},
			{X: v.Center.X + v.Radius, Y: v.Center.Y + v.Radius, Z: v.Center.Z},
		})
	case domain.Arc:
		return domain.BoundsOf(arcExtremes(v))
	case domain.Polyline:
		return domain.BoundsOf(v.Vertices)
	case domain.Spline:
		return domain.BoundsOf(SampleSpline(v, curveSamples))
	case domain.Ellipse:
		return domain.BoundsOf(SampleEllipse(v, curveSamples))
	default:
		return nil
	}
}

// Outline returns a drawable polyline approximation of an entity, used by
// the rendering collaborator. Curved kinds are flattened.
func Outline(e domain.Entity) []domain.Point {
	switch v := e.(type) {
	case domain.Line:
		return []domain.Point{v.Start, v.End}
	case domain.Circle:
		pts := make([]domain.Point, 0, curveSamples+1)
		for i := 0; i <= curveSamples; i++ {
			t := 2 * math.Pi * float64(i) / curveSamples
			pts = append(pts, domain.Point{
				X: v.Center.X + v.Radius*math.Cos(t),
				Y: v.Center.Y + v.Radius*math.Sin(t),
			})
		}
		return pts
	case domain.Arc:
		return arcSamples(v, curveSamples)
	case domain.Polyline:
		pts := append([]domain.Point(nil), v.Vertices...)
		if v.Closed && len(v.Vertices) > 1 {
			pts = append(pts, v.Vertices[0])
		}
		return pts
	case domain.Spline:
		return SampleSpline(v, curveSamples)
	case domain.Ellipse:
		return SampleEllipse(v, curveSamples)
	default:
		return nil
	}
}

// NormalizeSweep maps a start/end angle pair (degrees) to the CCW sweep
// from start to end, in [0, 360).
func NormalizeSweep(startDeg, endDeg float64) float64 {
	sweep := math.Mod(endDeg-startDeg, 360)
	if sweep < 0 {
		sweep += 360
	}
	return sweep
}

func arcEndpoints(a domain.Arc) (domain.Point, domain.Point) {
	return pointOnCircle(a.Center, a.Radius, a.StartAngle),
		pointOnCircle(a.Center, a.Radius, a.EndAngle)
}

func pointOnCircle(c domain.Point, r, angleDeg float64) domain.Point {
	rad := angleDeg * math.Pi / 180
	return domain.Point{X: c.X + r*math.Cos(rad), Y: c.Y + r*math.Sin(rad), Z: c.Z}
}

// arcExtremes returns the arc endpoints plus every axis-extreme angle
// (0, 90, 180, 270 degrees) that falls inside the sweep, which together
// determine the arc's bounding box.
func arcExtremes(a domain.Arc) []domain.Point {
	start, end := arcEndpoints(a)
	pts := []domain.Point{start, end}
	sweep := NormalizeSweep(a.StartAngle, a.EndAngle)
	for _, axis := range []float64{0, 90, 180, 270} {
		if NormalizeSweep(a.StartAngle, axis) <= sweep {
			pts = append(pts, pointOnCircle(a.Center, a.Radius, axis))
		}
	}
	return pts
}

func arcSamples(a domain.Arc, n int) []domain.Point {
	sweep := NormalizeSweep(a.StartAngle, a.EndAngle)
	pts := make([]domain.Point, 0, n+1)
	for i := 0; i <= n; i++ {
		angle := a.StartAngle + sweep*float64(i)/float64(n)
		pts = append(pts, pointOnCircle(a.Center, a.Radius, angle))
	}
	return pts
}

func polylineLength(p domain.Polyline) float64 {
	return chordLength(p.Vertices, p.Closed)
}

func chordLength(pts []domain.Point, closed bool) float64 {
	var total float64
	for i := 1; i < len(pts); i++ {
		total += pts[i-1].DistanceTo(pts[i])
	}
	if closed && len(pts) > 2 {
		total += pts[len(pts)-1].DistanceTo(pts[0])
	}
	return total
}

// MaxPairwiseDistance is the longest straight span between any two sampled
// points, across entities. Quadratic in the number of points.
func MaxPairwiseDistance(pts []domain.Point) float64 {
	var best float64
	for i := 0; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			if d := pts[i].DistanceTo(pts[j]); d > best {
				best = d
			}
		}
	}
	return best
}
