// Package connectivity clusters drawing entities into connected
// components: entities whose endpoints coincide (or nearly coincide,
// within a tolerance) belong to the same cut path.
package connectivity

import (
	"fmt"
	"math"
	"sort"

	"github.com/stewartad1/RapidEdge/internal/dxf/domain"
	"github.com/stewartad1/RapidEdge/internal/dxf/geometry"
)

// quantDigits is the fixed decimal precision used for exact-coincidence
// keys. Two endpoints rounding to the same key are treated as touching.
const quantDigits = 6

type connPoint struct {
	entity int
	p      domain.Point
}

// Components groups entities into connected components.
//
// Joins, in order: exact quantized-coordinate matches; pairwise endpoint
// distance <= tol (skipped when tol is zero); entity endpoints landing on
// a circle's boundary within tol. Increasing tol can only merge
// components, never split them.
func Components(entities []domain.Entity, tol float64) []domain.Component {
	uf := newUnionFind(len(entities))

	var points []connPoint
	byKey := make(map[string]int)
	var circles []int

	for i, e := range entities {
		if e.Kind() == domain.KindCircle {
			circles = append(circles, i)
		}
		for _, p := range connectionPoints(e) {
			points = append(points, connPoint{entity: i, p: p})
			key := quantKey(p)
			if first, ok := byKey[key]; ok {
				uf.union(first, i)
			} else {
				byKey[key] = i
			}
		}
	}

	if tol > 0 {
		for i := 0; i < len(points); i++ {
			for j := i + 1; j < len(points); j++ {
				if points[i].entity == points[j].entity {
					continue
				}
				if points[i].p.DistanceTo(points[j].p) <= tol {
					uf.union(points[i].entity, points[j].entity)
				}
			}
		}
	}

	// A line or arc terminating on (or tangent to) a circle joins it.
	for _, ci := range circles {
		circle := entities[ci].(domain.Circle)
		for _, cp := range points {
			if cp.entity == ci {
				continue
			}
			gap := math.Abs(cp.p.DistanceTo(circle.Center) - circle.Radius)
			if gap <= tol {
				uf.union(ci, cp.entity)
			}
		}
	}

	return collect(entities, uf)
}

// ConnectedPierces counts components containing at least one pierceable
// entity.
func ConnectedPierces(components []domain.Component) int {
	n := 0
	for _, c := range components {
		if c.Pierceable {
			n++
		}
	}
	return n
}

// Membership maps each entity index to the ordinal of its component in
// the given slice.
func Membership(components []domain.Component, nEntities int) []int {
	member := make([]int, nEntities)
	for ci, comp := range components {
		for _, ei := range comp.Entities {
			member[ei] = ci
		}
	}
	return member
}

func connectionPoints(e domain.Entity) []domain.Point {
	switch v := e.(type) {
	case domain.Line:
		return []domain.Point{v.Start, v.End}
	case domain.Arc:
		pts, _, _ := geometry.Sample(v)
		return pts
	case domain.Polyline:
		return v.Vertices
	default:
		// Circles join through the boundary rule, not endpoints.
		return nil
	}
}

func quantKey(p domain.Point) string {
	return fmt.Sprintf("%.*f:%.*f", quantDigits, quantize(p.X), quantDigits, quantize(p.Y))
}

func quantize(v float64) float64 {
	q := math.Round(v*1e6) / 1e6
	if q == 0 {
		return 0 // normalize -0 so it keys identically to +0
	}
	return q
}

func collect(entities []domain.Entity, uf *unionFind) []domain.Component {
	groups := make(map[int][]int)
	for i := range entities {
		root := uf.find(i)
		groups[root] = append(groups[root], i)
	}

	roots := make([]int, 0, len(groups))
	for root := range groups {
		roots = append(roots, root)
	}
	sort.Ints(roots)

	out := make([]domain.Component, 0, len(roots))
	for _, root := range roots {
		members := groups[root]
		comp := domain.Component{Entities: members}
		for _, ei := range members {
			comp.Bounds = comp.Bounds.Union(geometry.EntityBounds(entities[ei]))
			if entities[ei].Kind().Pierceable() {
				comp.Pierceable = true
			}
		}
		out = append(out, comp)
	}
	return out
}
