package service

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stewartad1/RapidEdge/internal/dxf/domain"
	"github.com/stewartad1/RapidEdge/internal/dxf/dxftest"
)

// rectOutline draws a w x h axis-aligned rectangle from four lines.
func rectOutline(d *dxftest.Doc, w, h float64) *dxftest.Doc {
	return d.
		Line(0, 0, w, 0).
		Line(w, 0, w, h).
		Line(w, h, 0, h).
		Line(0, h, 0, 0)
}

func TestMeasureRectangleInInches(t *testing.T) {
	content := rectOutline(dxftest.New().Units(1), 4, 2).Bytes()

	report, err := New(nil, nil).Measure(context.Background(), content, MeasureOptions{Filename: "part.dxf"})

	require.NoError(t, err)
	assert.Equal(t, "inches", report.SourceUnits)

	assert.Equal(t, 4.0, report.WidthIn)
	assert.Equal(t, 2.0, report.LengthIn)
	assert.Equal(t, 101.6, report.WidthMM)
	assert.Equal(t, 50.8, report.LengthMM)

	assert.Equal(t, 4.0, report.BBoxWidthIn)
	assert.Equal(t, 2.0, report.BBoxLengthIn)
	assert.Equal(t, 8.0, report.BBoxAreaIn2)
	assert.Equal(t, 4.0, report.ObjectWidthIn)

	// Longest straight span between any two endpoints is the diagonal.
	assert.InDelta(t, 4.472, report.MaxEdgeLengthIn, 1e-9)

	assert.Equal(t, 4.0, report.OBBWidthIn)
	assert.Equal(t, 2.0, report.OBBLengthIn)
	assert.Equal(t, 0.0, report.OBBAngleDeg)
	assert.Equal(t, 4.0, report.MinMaxRectWidthIn)
	assert.Equal(t, 2.0, report.MinMaxRectLengthIn)
	assert.Equal(t, 4.0, report.MinEnclosingSquareSideIn)

	assert.Equal(t, 4, report.NumberOfLines)
	assert.Equal(t, 4, report.NumberOfPierces)
	assert.Equal(t, 1, report.ConnectedPierces, "the four sides form one closed loop")
}

func TestMeasureUnitOverrideWinsOverHeader(t *testing.T) {
	content := rectOutline(dxftest.New().Units(4), 25.4, 25.4).Bytes() // header says mm

	report, err := New(nil, nil).Measure(context.Background(), content, MeasureOptions{UnitOverride: "inches"})

	require.NoError(t, err)
	assert.Equal(t, "inches", report.SourceUnits)
	assert.Equal(t, 25.4, report.WidthIn, "override reinterprets raw coordinates as inches")
	assert.InDelta(t, 645.16, report.WidthMM, 1e-9)
}

func TestMeasureDefaultsToMillimeters(t *testing.T) {
	content := rectOutline(dxftest.New(), 10, 5).Bytes() // no $INSUNITS

	report, err := New(nil, nil).Measure(context.Background(), content, MeasureOptions{})

	require.NoError(t, err)
	assert.Equal(t, "millimeters", report.SourceUnits)
	assert.Equal(t, 10.0, report.WidthMM)
	assert.InDelta(t, 0.394, report.WidthIn, 1e-9)
}

func TestMeasureCarriesBaseUnitValues(t *testing.T) {
	content := rectOutline(dxftest.New().Units(5), 4, 2).Bytes() // $INSUNITS = cm

	report, err := New(nil, nil).Measure(context.Background(), content, MeasureOptions{})

	require.NoError(t, err)
	assert.Equal(t, "centimeters", report.SourceUnits)

	// Base values stay in centimeters while the converted fields do not.
	assert.Equal(t, 4.0, report.Base.Width)
	assert.Equal(t, 2.0, report.Base.Length)
	assert.Equal(t, 4.0, report.Base.BBoxWidth)
	assert.Equal(t, 2.0, report.Base.BBoxLength)
	assert.Equal(t, 4.0, report.Base.OBBWidth)
	assert.Equal(t, 2.0, report.Base.OBBLength)
	assert.Equal(t, 4.0, report.Base.MinMaxRectWidth)
	assert.Equal(t, 4.0, report.Base.MinEnclosingSquareSide)
	assert.InDelta(t, 4.472, report.Base.MaxEdgeLength, 1e-3)

	assert.Equal(t, 40.0, report.WidthMM)
	assert.Equal(t, 1.575, report.WidthIn)
}

func TestMeasureBaseMatchesInchFieldsForInchDrawings(t *testing.T) {
	content := rectOutline(dxftest.New().Units(1), 4, 2).Bytes()

	report, err := New(nil, nil).Measure(context.Background(), content, MeasureOptions{})

	require.NoError(t, err)
	assert.Equal(t, report.WidthIn, report.Base.Width)
	assert.Equal(t, report.LengthIn, report.Base.Length)
	assert.Equal(t, report.OBBWidthIn, report.Base.OBBWidth)
	assert.Equal(t, report.MaxEdgeLengthIn, report.Base.MaxEdgeLength)
}

func TestMeasureOrientedBoxIsRotationInvariant(t *testing.T) {
	theta := 30.0 * math.Pi / 180
	rot := func(x, y float64) (float64, float64) {
		return x*math.Cos(theta) - y*math.Sin(theta), x*math.Sin(theta) + y*math.Cos(theta)
	}
	corners := [][2]float64{{0, 0}, {6, 0}, {6, 2}, {0, 2}}
	doc := dxftest.New().Units(4)
	for i := range corners {
		x1, y1 := rot(corners[i][0], corners[i][1])
		next := corners[(i+1)%len(corners)]
		x2, y2 := rot(next[0], next[1])
		doc.Line(x1, y1, x2, y2)
	}

	report, err := New(nil, nil).Measure(context.Background(), doc.Bytes(), MeasureOptions{})

	require.NoError(t, err)
	assert.Equal(t, 6.0, report.OBBWidthMM)
	assert.Equal(t, 2.0, report.OBBLengthMM)
	assert.InDelta(t, 30.0, math.Mod(report.OBBAngleDeg+180, 180), 1e-3)
	assert.Equal(t, 6.0, report.MinEnclosingSquareSideMM)
	assert.Greater(t, report.BBoxWidthMM, 6.0, "the axis-aligned box grows under rotation")
}

// triangleContent builds an equilateral triangle with a 3.21in base from
// three lines, optionally rotated a quarter turn.
func triangleContent(rotated bool) []byte {
	const base = 3.21
	h := math.Sqrt(base*base - (base/2)*(base/2))
	corners := [][2]float64{{0, 0}, {base, 0}, {base / 2, h}}
	if rotated {
		for i, c := range corners {
			corners[i] = [2]float64{-c[1], c[0]}
		}
	}

	doc := dxftest.New().Units(1)
	for i := range corners {
		next := corners[(i+1)%len(corners)]
		doc.Line(corners[i][0], corners[i][1], next[0], next[1])
	}
	return doc.Bytes()
}

func TestMeasureTriangleWithFlatBase(t *testing.T) {
	report, err := New(nil, nil).Measure(context.Background(), triangleContent(false), MeasureOptions{})

	require.NoError(t, err)
	assert.InDelta(t, 3.21, report.ObjectWidthIn, 1e-9)
	assert.InDelta(t, 3.21, report.OBBWidthIn, 1e-9)
	assert.InDelta(t, 2.78, report.OBBLengthIn, 1e-3)
	assert.InDelta(t, 0.0, report.OBBAngleDeg, 1e-9,
		"all three sides tie; the base edge wins as the first hull edge")

	// All sides are equal, so the square must cover a full side.
	assert.InDelta(t, 3.21, report.MinEnclosingSquareSideIn, 1e-9)
	assert.InDelta(t, 3.21, report.MaxEdgeLengthIn, 1e-9)
	assert.Equal(t, 3, report.NumberOfLines)
	assert.Equal(t, 1, report.ConnectedPierces)
}

func TestMeasureTriangleRotatedQuarterTurn(t *testing.T) {
	svc := New(nil, nil)
	ctx := context.Background()

	flat, err := svc.Measure(ctx, triangleContent(false), MeasureOptions{})
	require.NoError(t, err)
	rotated, err := svc.Measure(ctx, triangleContent(true), MeasureOptions{})
	require.NoError(t, err)

	assert.Equal(t, flat.ObjectWidthIn, rotated.ObjectWidthIn,
		"object width takes the larger axis extent, so a rotated copy reports the same size")
	assert.InDelta(t, flat.OBBWidthIn*flat.OBBLengthIn, rotated.OBBWidthIn*rotated.OBBLengthIn, 1e-3)
	assert.Equal(t, flat.MinEnclosingSquareSideIn, rotated.MinEnclosingSquareSideIn)
	assert.Equal(t, flat.MaxEdgeLengthIn, rotated.MaxEdgeLengthIn)
}

func TestMeasureMixedEntityCounts(t *testing.T) {
	content := dxftest.New().Units(4).
		Line(0, 0, 10, 0).
		Circle(20, 20, 3).
		Arc(0, 0, 5, 0, 90).
		LWPolyline(false, [2]float64{30, 30}, [2]float64{31, 30}, [2]float64{31, 31}).
		Bytes()

	report, err := New(nil, nil).Measure(context.Background(), content, MeasureOptions{})

	require.NoError(t, err)
	assert.Equal(t, 1, report.NumberOfLines)
	assert.Equal(t, 1, report.NumberOfCircles)
	assert.Equal(t, 1, report.NumberOfArcs)
	assert.Equal(t, 1, report.NumberOfPolylines)
	assert.Equal(t, 4, report.NumberOfPierces)
}

func TestMeasureCircleOnlyDrawing(t *testing.T) {
	content := dxftest.New().Units(4).Circle(0, 0, 5).Bytes()

	report, err := New(nil, nil).Measure(context.Background(), content, MeasureOptions{})

	require.NoError(t, err)
	assert.Equal(t, 10.0, report.BBoxWidthMM)
	assert.Equal(t, 10.0, report.BBoxLengthMM)
	assert.Equal(t, 1, report.NumberOfPierces)
	assert.Equal(t, 1, report.ConnectedPierces)
}

func TestMeasureErrors(t *testing.T) {
	svc := New(nil, nil)
	ctx := context.Background()

	_, err := svc.Measure(ctx, nil, MeasureOptions{})
	assert.ErrorIs(t, err, domain.ErrEmptyInput)

	_, err = svc.Measure(ctx, []byte("not a drawing at all"), MeasureOptions{})
	assert.ErrorIs(t, err, domain.ErrInvalidDocument)

	_, err = svc.Measure(ctx, dxftest.New().Line(0, 0, 1, 1).Bytes(), MeasureOptions{UnitOverride: "furlongs"})
	assert.ErrorIs(t, err, domain.ErrInvalidUnit)

	_, err = svc.Measure(ctx, dxftest.New().Bytes(), MeasureOptions{})
	assert.ErrorIs(t, err, domain.ErrNoMeasurableGeometry, "a document with no entities has nothing to measure")

	_, err = svc.Measure(ctx, dxftest.New().Entity("0", "MTEXT", "8", "0").Bytes(), MeasureOptions{})
	assert.ErrorIs(t, err, domain.ErrNoMeasurableGeometry, "annotation-only documents have nothing to measure")
}

func TestMeasureReportsAreRoundedToThreeDecimals(t *testing.T) {
	// An irrational diagonal forces rounding everywhere.
	content := dxftest.New().Units(1).
		Line(0, 0, 1, 1).
		Line(1, 1, 2, 0.5).
		Bytes()

	report, err := New(nil, nil).Measure(context.Background(), content, MeasureOptions{})

	require.NoError(t, err)
	for name, v := range map[string]float64{
		"width_mm":        report.WidthMM,
		"width_in":        report.WidthIn,
		"max_edge_in":     report.MaxEdgeLengthIn,
		"obb_width_in":    report.OBBWidthIn,
		"obb_angle":       report.OBBAngleDeg,
		"square_side_in":  report.MinEnclosingSquareSideIn,
		"bbox_area_in2":   report.BBoxAreaIn2,
		"min_max_len_in":  report.MinMaxRectLengthIn,
	} {
		assert.InDelta(t, math.Round(v*1000)/1000, v, 1e-12, "%s must carry at most three decimals", name)
	}
}

func TestMeasureIsDeterministic(t *testing.T) {
	content := rectOutline(dxftest.New().Units(1), 3, 7).Bytes()
	svc := New(nil, nil)

	a, err := svc.Measure(context.Background(), content, MeasureOptions{JoinTolerance: 0.01})
	require.NoError(t, err)
	b, err := svc.Measure(context.Background(), content, MeasureOptions{JoinTolerance: 0.01})
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestInspectReportsPerEntityDiagnostics(t *testing.T) {
	content := dxftest.New().Units(4).
		Line(0, 0, 3, 4).
		Circle(20, 20, 2).
		Bytes()

	insp, err := New(nil, nil).Inspect(context.Background(), content, MeasureOptions{})

	require.NoError(t, err)
	assert.Equal(t, "millimeters", insp.Units)
	require.Len(t, insp.Entities, 2)

	l := insp.Entities[0]
	assert.Equal(t, 0, l.Index)
	assert.Equal(t, "LINE", l.Type)
	require.NotNil(t, l.Length)
	assert.Equal(t, 5.0, *l.Length)

	c := insp.Entities[1]
	assert.Equal(t, "CIRCLE", c.Type)
	require.NotNil(t, c.Length)
	assert.InDelta(t, 12.566, *c.Length, 1e-9)

	assert.NotEqual(t, l.Component, c.Component, "disjoint entities sit in different components")
	assert.Equal(t, 2, insp.NumberOfPierces)
	assert.Equal(t, 2, insp.ConnectedPierces)
}

func TestInspectJoinToleranceMergesComponents(t *testing.T) {
	content := dxftest.New().Units(4).
		Line(0, 0, 1, 0).
		Line(1.02, 0, 2, 0).
		Bytes()
	svc := New(nil, nil)
	ctx := context.Background()

	strict, err := svc.Inspect(ctx, content, MeasureOptions{JoinTolerance: 0})
	require.NoError(t, err)
	assert.Equal(t, 2, strict.ConnectedPierces)

	loose, err := svc.Inspect(ctx, content, MeasureOptions{JoinTolerance: 0.03})
	require.NoError(t, err)
	assert.Equal(t, 1, loose.ConnectedPierces)
	assert.Equal(t, 0.03, loose.JoinTolerance)
}

func TestParseReturnsDocumentStructure(t *testing.T) {
	content := dxftest.New().Units(1).
		Line(0, 0, 2, 0).
		Circle(1, 1, 0.5).
		Bytes()

	result, err := New(nil, nil).Parse(context.Background(), content, "bracket.dxf")

	require.NoError(t, err)
	assert.Equal(t, "bracket.dxf", result.Metadata.Filename)
	assert.Equal(t, "R2010", result.Metadata.Version)
	require.NotNil(t, result.Metadata.Units)
	assert.Equal(t, 1, *result.Metadata.Units)

	require.Len(t, result.Layers, 1)
	assert.Equal(t, "0", result.Layers[0].Name)

	require.Len(t, result.Entities, 2)
	assert.Equal(t, "LINE", result.Entities[0].Type)
	assert.Equal(t, "CIRCLE", result.Entities[1].Type)

	require.NotNil(t, result.Bounds)
	assert.Equal(t, 0.0, result.Bounds.MinX)
	assert.Equal(t, 2.0, result.Bounds.MaxX)
	assert.Equal(t, 1.5, result.Bounds.MaxY)

	assert.Equal(t, 1, result.NumberOfLines)
	assert.Equal(t, 1, result.NumberOfCircles)
	assert.Equal(t, 2, result.NumberOfPierces)
}

func TestHistoryWithoutStoreIsEmpty(t *testing.T) {
	entries, err := New(nil, nil).History(context.Background(), 10)

	require.NoError(t, err)
	assert.Empty(t, entries)
}
