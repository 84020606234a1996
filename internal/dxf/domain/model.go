package domain

import "math"

// EntityKind discriminates the drawing entity variants the measurement
// engine understands. Anything else is carried as KindOther so it still
// shows up in diagnostics.
type EntityKind string

const (
	KindLine     EntityKind = "LINE"
	KindCircle   EntityKind = "CIRCLE"
	KindArc      EntityKind = "ARC"
	KindPolyline EntityKind = "POLYLINE"
	KindSpline   EntityKind = "SPLINE"
	KindEllipse  EntityKind = "ELLIPSE"
	KindOther    EntityKind = "OTHER"
)

// Pierceable reports whether entities of this kind count as a cut pass.
func (k EntityKind) Pierceable() bool {
	switch k {
	case KindLine, KindCircle, KindArc, KindPolyline:
		return true
	}
	return false
}

// Point is an immutable 2D/3D coordinate. Z is zero for flat drawings.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z,omitempty"`
}

func (p Point) DistanceTo(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Hypot(dx, dy)
}

// Entity is a closed set of drawing variants; the geometry sampler
// switches exhaustively on the concrete type.
type Entity interface {
	Kind() EntityKind
	Layer() string
}

type Line struct {
	LayerName  string
	Start, End Point
}

func (l Line) Kind() EntityKind { return KindLine }
func (l Line) Layer() string    { return l.LayerName }

type Circle struct {
	LayerName string
	Center    Point
	Radius    float64
}

func (c Circle) Kind() EntityKind { return KindCircle }
func (c Circle) Layer() string    { return c.LayerName }

// Arc is a circular arc swept counter-clockwise from StartAngle to
// EndAngle, both in degrees.
type Arc struct {
	LayerName  string
	Center     Point
	Radius     float64
	StartAngle float64
	EndAngle   float64
}

func (a Arc) Kind() EntityKind { return KindArc }
func (a Arc) Layer() string    { return a.LayerName }

type Polyline struct {
	LayerName string
	Vertices  []Point
	Closed    bool
}

func (p Polyline) Kind() EntityKind { return KindPolyline }
func (p Polyline) Layer() string    { return p.LayerName }

type Spline struct {
	LayerName string
	Controls  []Point
	Knots     []float64
	Degree    int
	Closed    bool
}

func (s Spline) Kind() EntityKind { return KindSpline }
func (s Spline) Layer() string    { return s.LayerName }

// Ellipse follows the DXF convention: MajorAxis is the endpoint of the
// major axis relative to Center, Ratio is minor/major, and the params
// are radians along the curve (0..2pi for a full ellipse).
type Ellipse struct {
	LayerName  string
	Center     Point
	MajorAxis  Point
	Ratio      float64
	StartParam float64
	EndParam   float64
}

func (e Ellipse) Kind() EntityKind { return KindEllipse }
func (e Ellipse) Layer() string    { return e.LayerName }

// Other preserves unrecognized DXF types for diagnostics. It contributes
// no geometry.
type Other struct {
	LayerName string
	TypeName  string
}

func (o Other) Kind() EntityKind { return KindOther }
func (o Other) Layer() string    { return o.LayerName }

// TypeName returns the DXF type string for an entity, falling back to the
// raw type of an Other variant.
func TypeName(e Entity) string {
	if o, ok := e.(Other); ok && o.TypeName != "" {
		return o.TypeName
	}
	return string(e.Kind())
}
