package domain

// OrientedRect is a rotated bounding rectangle. Width is always the longer
// side, Length the shorter, and AngleDeg the rotation of the width side
// counter-clockwise from the positive X axis. The angle is not normalized
// beyond that.
type OrientedRect struct {
	Width    float64 `json:"width"`
	Length   float64 `json:"length"`
	AngleDeg float64 `json:"angle_deg"`
}

// Component is a set of entities judged physically connected. Indices
// address the entity list of the analysis call that produced it.
type Component struct {
	Entities   []int   `json:"entities"`
	Bounds     *Bounds `json:"bounds,omitempty"`
	Pierceable bool    `json:"pierceable"`
}

// EntityCounts tallies entities by kind.
type EntityCounts struct {
	Lines     int `json:"lines"`
	Circles   int `json:"circles"`
	Arcs      int `json:"arcs"`
	Polylines int `json:"polylines"`
	Splines   int `json:"splines"`
	Ellipses  int `json:"ellipses"`
	Others    int `json:"others"`
}

func (c EntityCounts) Pierces() int {
	return c.Lines + c.Circles + c.Arcs + c.Polylines
}

// BaseMeasurements carries the linear measurements in the drawing's
// resolved base unit, labeled by the report's source_units. When the
// base unit is millimeters or inches these repeat the _mm/_in fields;
// for centimeter and meter drawings they are the only native values.
type BaseMeasurements struct {
	Width                  float64 `json:"width"`
	Length                 float64 `json:"length"`
	BBoxWidth              float64 `json:"bbox_width"`
	BBoxLength             float64 `json:"bbox_length"`
	MaxEdgeLength          float64 `json:"max_edge_length"`
	OBBWidth               float64 `json:"obb_width"`
	OBBLength              float64 `json:"obb_length"`
	MinMaxRectWidth        float64 `json:"min_max_rect_width"`
	MinMaxRectLength       float64 `json:"min_max_rect_length"`
	MinEnclosingSquareSide float64 `json:"min_enclosing_square_side"`
}

// DimensionReport is the aggregate measurement output for one drawing.
// Linear values are reported in the resolved base unit plus millimeters
// and inches, rounded to three decimals at this boundary only.
type DimensionReport struct {
	WidthMM  float64 `json:"width_mm"`
	WidthIn  float64 `json:"width_in"`
	LengthMM float64 `json:"length_mm"`
	LengthIn float64 `json:"length_in"`

	// Raw axis extents, before the larger/smaller swap above.
	BBoxWidthMM  float64 `json:"bbox_width_mm"`
	BBoxWidthIn  float64 `json:"bbox_width_in"`
	BBoxLengthMM float64 `json:"bbox_length_mm"`
	BBoxLengthIn float64 `json:"bbox_length_in"`
	BBoxAreaIn2  float64 `json:"bbox_area_in2"`

	ObjectWidthMM float64 `json:"object_width_mm"`
	ObjectWidthIn float64 `json:"object_width_in"`

	MaxEdgeLengthMM float64 `json:"max_edge_length_mm"`
	MaxEdgeLengthIn float64 `json:"max_edge_length_in"`

	OBBWidthMM  float64 `json:"obb_width_mm"`
	OBBWidthIn  float64 `json:"obb_width_in"`
	OBBLengthMM float64 `json:"obb_length_mm"`
	OBBLengthIn float64 `json:"obb_length_in"`
	OBBAngleDeg float64 `json:"obb_angle_deg"`

	MinMaxRectWidthMM  float64 `json:"min_max_rect_width_mm"`
	MinMaxRectWidthIn  float64 `json:"min_max_rect_width_in"`
	MinMaxRectLengthMM float64 `json:"min_max_rect_length_mm"`
	MinMaxRectLengthIn float64 `json:"min_max_rect_length_in"`
	MinMaxRectAngleDeg float64 `json:"min_max_rect_angle_deg"`

	MinEnclosingSquareSideMM float64 `json:"min_enclosing_square_side_mm"`
	MinEnclosingSquareSideIn float64 `json:"min_enclosing_square_side_in"`

	// Base repeats the linear measurements in the resolved base unit
	// named by SourceUnits.
	Base BaseMeasurements `json:"base_units"`

	NumberOfLines     int `json:"number_of_lines"`
	NumberOfCircles   int `json:"number_of_circles"`
	NumberOfArcs      int `json:"number_of_arcs"`
	NumberOfPolylines int `json:"number_of_polylines"`
	NumberOfPierces   int `json:"number_of_pierces"`
	ConnectedPierces  int `json:"connected_pierces"`

	SourceUnits string `json:"source_units"`
}

// EntityDiagnostic describes one entity for the inspect surface. Length
// is nil for kinds that contribute no geometry.
type EntityDiagnostic struct {
	Index      int      `json:"index"`
	Type       string   `json:"type"`
	Layer      string   `json:"layer"`
	Bounds     *Bounds  `json:"bounds,omitempty"`
	PointCount int      `json:"point_count"`
	Length     *float64 `json:"length,omitempty"`
	Component  int      `json:"component"`
}

// Inspection is the per-entity diagnostic listing plus the connectivity
// summary, all lengths in the requested output unit.
type Inspection struct {
	Counts           EntityCounts       `json:"counts"`
	NumberOfPierces  int                `json:"number_of_pierces"`
	ConnectedPierces int                `json:"connected_pierces"`
	Components       []Component        `json:"components"`
	Entities         []EntityDiagnostic `json:"entities"`
	JoinTolerance    float64            `json:"join_tolerance"`
	Units            string             `json:"units"`
}

// LayerInfo mirrors the drawing's layer table (name only drives behavior).
type LayerInfo struct {
	Name  string `json:"name"`
	Color *int   `json:"color,omitempty"`
}

// Metadata describes the parsed document itself.
type Metadata struct {
	Filename string `json:"filename"`
	Version  string `json:"version"`
	Units    *int   `json:"units,omitempty"`
}

// EntityInfo is the lightweight entity listing for the parse surface.
type EntityInfo struct {
	Type  string `json:"type"`
	Layer string `json:"layer"`
}

// ParseResult is the structured outcome of "parse this drawing".
type ParseResult struct {
	Metadata          Metadata     `json:"metadata"`
	Layers            []LayerInfo  `json:"layers"`
	Entities          []EntityInfo `json:"entities"`
	Bounds            *Bounds      `json:"bounds,omitempty"`
	NumberOfLines     int          `json:"number_of_lines"`
	NumberOfCircles   int          `json:"number_of_circles"`
	NumberOfArcs      int          `json:"number_of_arcs"`
	NumberOfPolylines int          `json:"number_of_polylines"`
	NumberOfPierces   int          `json:"number_of_pierces"`
}
