package render

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stewartad1/RapidEdge/internal/dxf/connectivity"
	"github.com/stewartad1/RapidEdge/internal/dxf/domain"
)

func decode(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func colorCount(img image.Image) int {
	seen := make(map[[4]uint32]struct{})
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bb, a := img.At(x, y).RGBA()
			seen[[4]uint32{r, g, bb, a}] = struct{}{}
		}
	}
	return len(seen)
}

func testEntities() []domain.Entity {
	return []domain.Entity{
		domain.Line{Start: domain.Point{X: 0, Y: 0}, End: domain.Point{X: 10, Y: 0}},
		domain.Line{Start: domain.Point{X: 10, Y: 0}, End: domain.Point{X: 10, Y: 6}},
		domain.Circle{Center: domain.Point{X: 30, Y: 3}, Radius: 2},
	}
}

func TestDrawingProducesDecodablePNG(t *testing.T) {
	data, err := Drawing(testEntities())

	require.NoError(t, err)
	img := decode(t, data)

	b := img.Bounds()
	assert.Greater(t, b.Dx(), 2*margin, "canvas must be wider than its margins")
	assert.Greater(t, b.Dy(), 2*margin)
	assert.GreaterOrEqual(t, colorCount(img), 2, "strokes must land on the white canvas")
}

func TestDrawingWithNoGeometryFails(t *testing.T) {
	_, err := Drawing(nil)
	assert.ErrorIs(t, err, domain.ErrNoMeasurableGeometry)

	_, err = Drawing([]domain.Entity{domain.Other{TypeName: "TEXT"}})
	assert.ErrorIs(t, err, domain.ErrNoMeasurableGeometry)
}

func TestEntityBoxesUsesDistinctColors(t *testing.T) {
	data, err := EntityBoxes(testEntities())

	require.NoError(t, err)
	img := decode(t, data)

	// White background, dark strokes, and one box color per entity.
	assert.GreaterOrEqual(t, colorCount(img), 4)
}

func TestComponentBoxesColorsByComponent(t *testing.T) {
	entities := testEntities()
	comps := connectivity.Components(entities, 0)
	require.Len(t, comps, 2, "touching lines join, the circle stays apart")

	data, err := ComponentBoxes(entities, comps)

	require.NoError(t, err)
	img := decode(t, data)
	assert.GreaterOrEqual(t, colorCount(img), 3)
}

func TestPaletteIsStableAndDistinct(t *testing.T) {
	colors := palette(6)

	require.Len(t, colors, 6)
	seen := make(map[[3]uint8]struct{})
	for _, c := range colors {
		seen[[3]uint8{c.R, c.G, c.B}] = struct{}{}
		assert.Equal(t, uint8(255), c.A)
	}
	assert.Len(t, seen, 6, "hues must not collide")

	assert.Equal(t, colors, palette(6))
}

func TestDrawingScalesWideAspectRatio(t *testing.T) {
	entities := []domain.Entity{
		domain.Line{Start: domain.Point{X: 0, Y: 0}, End: domain.Point{X: 100, Y: 1}},
	}

	data, err := Drawing(entities)

	require.NoError(t, err)
	img := decode(t, data)
	assert.Equal(t, canvasSize, img.Bounds().Dx(), "the long axis fills the canvas")
	assert.Less(t, img.Bounds().Dy(), canvasSize/2)
}
