package geometry

import (
	"math"

	"github.com/stewartad1/RapidEdge/internal/dxf/domain"
)

// candidate is one caliper rectangle, aligned to a hull edge.
type candidate struct {
	w, h     float64 // extent along the edge, extent across it
	angleDeg float64 // edge direction, degrees CCW from +X
}

func (c candidate) area() float64 { return c.w * c.h }

func (c candidate) maxSide() float64 { return math.Max(c.w, c.h) }

// rect reports the candidate with width >= length; the angle follows the
// longer side.
func (c candidate) rect() domain.OrientedRect {
	if c.w >= c.h {
		return domain.OrientedRect{Width: c.w, Length: c.h, AngleDeg: c.angleDeg}
	}
	return domain.OrientedRect{Width: c.h, Length: c.w, AngleDeg: c.angleDeg + 90}
}

// tieEps treats near-equal candidates as ties. Symmetric hulls (squares,
// equilateral triangles) produce candidates that are equal mathematically
// but differ by rounding noise; without the epsilon the winner would be
// arbitrary instead of the first hull edge.
const tieEps = 1e-9

func improves(best, cand float64) bool {
	return best-cand > tieEps*(1+best)
}

// MinAreaRect runs rotating calipers over the hull edges and keeps the
// rectangle with the smallest area. Ties keep the first edge encountered
// in hull order.
func MinAreaRect(hull []domain.Point) domain.OrientedRect {
	return sweep(hull, func(best, c candidate) bool {
		return improves(best.area(), c.area())
	})
}

// MinMaxSideRect keeps the rectangle minimizing its own longer side
// instead of its area; ties broken by smaller area. Its longer side is
// the minimal enclosing square side.
func MinMaxSideRect(hull []domain.Point) domain.OrientedRect {
	return sweep(hull, func(best, c candidate) bool {
		if improves(best.maxSide(), c.maxSide()) {
			return true
		}
		if improves(c.maxSide(), best.maxSide()) {
			return false
		}
		return improves(best.area(), c.area())
	})
}

// EnclosingSquareSide is the side of the smallest square containing the
// hull.
func EnclosingSquareSide(hull []domain.Point) float64 {
	return MinMaxSideRect(hull).Width
}

func sweep(hull []domain.Point, better func(best, c candidate) bool) domain.OrientedRect {
	switch len(hull) {
	case 0, 1:
		return domain.OrientedRect{}
	case 2:
		angle := math.Atan2(hull[1].Y-hull[0].Y, hull[1].X-hull[0].X) * 180 / math.Pi
		return domain.OrientedRect{Width: hull[0].DistanceTo(hull[1]), AngleDeg: angle}
	}

	var best candidate
	for i := range hull {
		next := hull[(i+1)%len(hull)]
		theta := math.Atan2(next.Y-hull[i].Y, next.X-hull[i].X)
		c := extentAt(hull, theta)
		if i == 0 || better(best, c) {
			best = c
		}
	}
	return best.rect()
}

// extentAt rotates the hull so the edge direction theta is axis-aligned
// and measures the axis-aligned extent in that frame.
func extentAt(hull []domain.Point, theta float64) candidate {
	cos, sin := math.Cos(theta), math.Sin(theta)

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range hull {
		x := p.X*cos + p.Y*sin
		y := -p.X*sin + p.Y*cos
		minX = math.Min(minX, x)
		maxX = math.Max(maxX, x)
		minY = math.Min(minY, y)
		maxY = math.Max(maxY, y)
	}

	return candidate{
		w:        maxX - minX,
		h:        maxY - minY,
		angleDeg: theta * 180 / math.Pi,
	}
}
