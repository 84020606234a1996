package domain

import "math"

// Bounds is an axis-aligned bounding box. A nil *Bounds means "no extents"
// (empty drawing); it is never represented as an all-zero box.
type Bounds struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MinZ float64 `json:"min_z"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
	MaxZ float64 `json:"max_z"`
}

// BoundsOf builds the bounding box of a point set, nil for an empty set.
func BoundsOf(pts []Point) *Bounds {
	if len(pts) == 0 {
		return nil
	}
	b := &Bounds{
		MinX: pts[0].X, MinY: pts[0].Y, MinZ: pts[0].Z,
		MaxX: pts[0].X, MaxY: pts[0].Y, MaxZ: pts[0].Z,
	}
	for _, p := range pts[1:] {
		b.Extend(p)
	}
	return b
}

func (b *Bounds) Extend(p Point) {
	b.MinX = math.Min(b.MinX, p.X)
	b.MinY = math.Min(b.MinY, p.Y)
	b.MinZ = math.Min(b.MinZ, p.Z)
	b.MaxX = math.Max(b.MaxX, p.X)
	b.MaxY = math.Max(b.MaxY, p.Y)
	b.MaxZ = math.Max(b.MaxZ, p.Z)
}

// Union merges another box into this one; either side may be nil.
func (b *Bounds) Union(other *Bounds) *Bounds {
	if other == nil {
		return b
	}
	if b == nil {
		cp := *other
		return &cp
	}
	b.MinX = math.Min(b.MinX, other.MinX)
	b.MinY = math.Min(b.MinY, other.MinY)
	b.MinZ = math.Min(b.MinZ, other.MinZ)
	b.MaxX = math.Max(b.MaxX, other.MaxX)
	b.MaxY = math.Max(b.MaxY, other.MaxY)
	b.MaxZ = math.Max(b.MaxZ, other.MaxZ)
	return b
}

func (b *Bounds) XExtent() float64 {
	if b == nil {
		return 0
	}
	return b.MaxX - b.MinX
}

func (b *Bounds) YExtent() float64 {
	if b == nil {
		return 0
	}
	return b.MaxY - b.MinY
}
