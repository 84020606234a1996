package reader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stewartad1/RapidEdge/internal/dxf/domain"
	"github.com/stewartad1/RapidEdge/internal/dxf/dxftest"
)

func TestReadRejectsNonDXFContent(t *testing.T) {
	for name, content := range map[string]string{
		"prose":      "this is not a drawing\nat all\n",
		"empty":      "",
		"half a tag": "0\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Read([]byte(content))
			assert.ErrorIs(t, err, domain.ErrInvalidDocument)
		})
	}
}

func TestReadRejectsTagStreamWithoutSections(t *testing.T) {
	_, err := Read([]byte("0\nLINE\n10\n0\n20\n0\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidDocument)
}

func TestReadHeader(t *testing.T) {
	doc, err := Read(dxftest.New().Units(4).Line(0, 0, 1, 1).Bytes())

	require.NoError(t, err)
	assert.Equal(t, "AC1024", doc.Version)
	assert.Equal(t, "R2010", doc.ReleaseName())
	require.NotNil(t, doc.Units)
	assert.Equal(t, 4, *doc.Units)
}

func TestReadHeaderWithoutUnits(t *testing.T) {
	doc, err := Read(dxftest.New().Line(0, 0, 1, 1).Bytes())

	require.NoError(t, err)
	assert.Nil(t, doc.Units)
}

func TestReadLayers(t *testing.T) {
	doc, err := Read(dxftest.New().Line(0, 0, 1, 1).Bytes())

	require.NoError(t, err)
	require.Len(t, doc.Layers, 1)
	assert.Equal(t, "0", doc.Layers[0].Name)
	require.NotNil(t, doc.Layers[0].Color)
	assert.Equal(t, 7, *doc.Layers[0].Color)
}

func TestReadLine(t *testing.T) {
	doc, err := Read(dxftest.New().Line(1, 2, 3, 4).Bytes())

	require.NoError(t, err)
	require.Len(t, doc.Entities, 1)
	l, ok := doc.Entities[0].(domain.Line)
	require.True(t, ok)
	assert.Equal(t, domain.Point{X: 1, Y: 2}, l.Start)
	assert.Equal(t, domain.Point{X: 3, Y: 4}, l.End)
	assert.Equal(t, "0", l.Layer())
	assert.Equal(t, domain.KindLine, l.Kind())
}

func TestReadCircle(t *testing.T) {
	doc, err := Read(dxftest.New().Circle(5, 6, 2.5).Bytes())

	require.NoError(t, err)
	require.Len(t, doc.Entities, 1)
	c, ok := doc.Entities[0].(domain.Circle)
	require.True(t, ok)
	assert.Equal(t, domain.Point{X: 5, Y: 6}, c.Center)
	assert.Equal(t, 2.5, c.Radius)
}

func TestReadArc(t *testing.T) {
	doc, err := Read(dxftest.New().Arc(0, 0, 3, 45, 135).Bytes())

	require.NoError(t, err)
	require.Len(t, doc.Entities, 1)
	a, ok := doc.Entities[0].(domain.Arc)
	require.True(t, ok)
	assert.Equal(t, 3.0, a.Radius)
	assert.Equal(t, 45.0, a.StartAngle)
	assert.Equal(t, 135.0, a.EndAngle)
}

func TestReadLWPolyline(t *testing.T) {
	doc, err := Read(dxftest.New().
		LWPolyline(true, [2]float64{0, 0}, [2]float64{2, 0}, [2]float64{2, 2}).
		Bytes())

	require.NoError(t, err)
	require.Len(t, doc.Entities, 1)
	p, ok := doc.Entities[0].(domain.Polyline)
	require.True(t, ok)
	assert.True(t, p.Closed)
	require.Len(t, p.Vertices, 3)
	assert.Equal(t, domain.Point{X: 2, Y: 2}, p.Vertices[2])
}

func TestReadLegacyPolylineWithVertexSubEntities(t *testing.T) {
	content := dxftest.New().
		Entity("0", "POLYLINE", "8", "0", "70", "1").
		Entity("0", "VERTEX", "8", "0", "10", "0", "20", "0").
		Entity("0", "VERTEX", "8", "0", "10", "1", "20", "0").
		Entity("0", "VERTEX", "8", "0", "10", "1", "20", "1").
		Entity("0", "SEQEND").
		Line(5, 5, 6, 6). // entity after SEQEND must still be read
		Bytes()

	doc, err := Read(content)

	require.NoError(t, err)
	require.Len(t, doc.Entities, 2)
	p, ok := doc.Entities[0].(domain.Polyline)
	require.True(t, ok)
	assert.True(t, p.Closed)
	require.Len(t, p.Vertices, 3)
	_, ok = doc.Entities[1].(domain.Line)
	assert.True(t, ok)
}

func TestReadSpline(t *testing.T) {
	doc, err := Read(dxftest.New().
		Spline(3, [2]float64{0, 0}, [2]float64{1, 2}, [2]float64{3, 2}, [2]float64{4, 0}).
		Bytes())

	require.NoError(t, err)
	require.Len(t, doc.Entities, 1)
	s, ok := doc.Entities[0].(domain.Spline)
	require.True(t, ok)
	assert.Equal(t, 3, s.Degree)
	assert.Len(t, s.Controls, 4)
}

func TestReadEllipse(t *testing.T) {
	doc, err := Read(dxftest.New().Ellipse(0, 0, 2, 0, 0.5).Bytes())

	require.NoError(t, err)
	require.Len(t, doc.Entities, 1)
	e, ok := doc.Entities[0].(domain.Ellipse)
	require.True(t, ok)
	assert.Equal(t, domain.Point{X: 2, Y: 0}, e.MajorAxis)
	assert.Equal(t, 0.5, e.Ratio)
}

func TestReadUnsupportedEntityBecomesOther(t *testing.T) {
	doc, err := Read(dxftest.New().
		Entity("0", "MTEXT", "8", "0", "1", "hello").
		Line(0, 0, 1, 1).
		Bytes())

	require.NoError(t, err)
	require.Len(t, doc.Entities, 2)
	o, ok := doc.Entities[0].(domain.Other)
	require.True(t, ok)
	assert.Equal(t, "MTEXT", o.TypeName)
	assert.Equal(t, domain.KindOther, o.Kind())
}

func TestReadCarriageReturnLineEndings(t *testing.T) {
	content := strings.ReplaceAll(string(dxftest.New().Line(0, 0, 1, 1).Bytes()), "\n", "\r\n")

	doc, err := Read([]byte(content))

	require.NoError(t, err)
	assert.Len(t, doc.Entities, 1)
}

func TestReadMixedDocumentPreservesEntityOrder(t *testing.T) {
	doc, err := Read(dxftest.New().
		Line(0, 0, 1, 0).
		Circle(5, 5, 1).
		Arc(0, 0, 2, 0, 90).
		LWPolyline(false, [2]float64{0, 0}, [2]float64{1, 1}).
		Bytes())

	require.NoError(t, err)
	require.Len(t, doc.Entities, 4)
	assert.Equal(t, domain.KindLine, doc.Entities[0].Kind())
	assert.Equal(t, domain.KindCircle, doc.Entities[1].Kind())
	assert.Equal(t, domain.KindArc, doc.Entities[2].Kind())
	assert.Equal(t, domain.KindPolyline, doc.Entities[3].Kind())
}

func TestReleaseNameFallsBackToRawVersion(t *testing.T) {
	doc := &Document{Version: "AC9999"}
	assert.Equal(t, "AC9999", doc.ReleaseName())
}
