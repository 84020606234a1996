package geometry

import (
	"sort"

	"github.com/stewartad1/RapidEdge/internal/dxf/domain"
)

// ConvexHull computes the 2D convex hull of a point set with the monotone
// chain algorithm. The result is in counter-clockwise order starting at
// the lexicographically smallest point. Degenerate inputs (0 or 1 distinct
// point) come back unchanged; collinear inputs yield the two extremes.
func ConvexHull(pts []domain.Point) []domain.Point {
	sorted := append([]domain.Point(nil), pts...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})
	sorted = dedupe(sorted)

	if len(sorted) <= 2 {
		return sorted
	}

	// Lower then upper chain, discarding the middle point of every
	// clockwise-or-straight triple.
	lower := make([]domain.Point, 0, len(sorted))
	for _, p := range sorted {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}

	upper := make([]domain.Point, 0, len(sorted))
	for i := len(sorted) - 1; i >= 0; i-- {
		p := sorted[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	// Each chain's last point duplicates the other's first.
	return append(lower[:len(lower)-1], upper[:len(upper)-1]...)
}

func cross(o, a, b domain.Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

func dedupe(sorted []domain.Point) []domain.Point {
	if len(sorted) == 0 {
		return sorted
	}
	out := sorted[:1]
	for _, p := range sorted[1:] {
		last := out[len(out)-1]
		if p.X != last.X || p.Y != last.Y {
			out = append(out, p)
		}
	}
	return out
}

// HullArea is the signed-area-based area of a CCW hull polygon.
func HullArea(hull []domain.Point) float64 {
	if len(hull) < 3 {
		return 0
	}
	var sum float64
	for i := range hull {
		j := (i + 1) % len(hull)
		sum += hull[i].X*hull[j].Y - hull[j].X*hull[i].Y
	}
	return sum / 2
}
