// Package render rasterizes drawings into PNG previews for the
// presentation boundary. It consumes only geometric inputs from the core:
// entity outlines and bounding boxes. No measurement logic lives here.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/stewartad1/RapidEdge/internal/dxf/domain"
	"github.com/stewartad1/RapidEdge/internal/dxf/geometry"
)

const (
	canvasSize = 800 // longest output dimension in pixels
	margin     = 24
)

var strokeColor = color.RGBA{R: 30, G: 30, B: 30, A: 255}

// Drawing renders every entity outline in a single stroke color.
func Drawing(entities []domain.Entity) ([]byte, error) {
	canvas, tf, err := prepare(entities)
	if err != nil {
		return nil, err
	}
	for _, e := range entities {
		drawOutline(canvas, tf, geometry.Outline(e), strokeColor)
	}
	return encode(canvas)
}

// EntityBoxes renders entity outlines plus each entity's axis-aligned
// bounding box in a distinct color.
func EntityBoxes(entities []domain.Entity) ([]byte, error) {
	canvas, tf, err := prepare(entities)
	if err != nil {
		return nil, err
	}
	colors := palette(len(entities))
	for i, e := range entities {
		drawOutline(canvas, tf, geometry.Outline(e), strokeColor)
		if b := geometry.EntityBounds(e); b != nil {
			drawBox(canvas, tf, b, colors[i])
		}
	}
	return encode(canvas)
}

// ComponentBoxes renders entity outlines colored by connectivity
// component, with one bounding box per component.
func ComponentBoxes(entities []domain.Entity, components []domain.Component) ([]byte, error) {
	canvas, tf, err := prepare(entities)
	if err != nil {
		return nil, err
	}
	colors := palette(len(components))
	for ci, comp := range components {
		for _, ei := range comp.Entities {
			drawOutline(canvas, tf, geometry.Outline(entities[ei]), colors[ci])
		}
		if comp.Bounds != nil {
			drawBox(canvas, tf, comp.Bounds, colors[ci])
		}
	}
	return encode(canvas)
}

// transform maps drawing coordinates onto the pixel grid. The Y flip to
// image orientation happens once, at encode time.
type transform struct {
	scale      float64
	offX, offY float64
}

func (t transform) apply(p domain.Point) (int, int) {
	return int(math.Round((p.X-t.offX)*t.scale)) + margin,
		int(math.Round((p.Y-t.offY)*t.scale)) + margin
}

func prepare(entities []domain.Entity) (*image.RGBA, transform, error) {
	var bounds *domain.Bounds
	for _, e := range entities {
		bounds = bounds.Union(geometry.EntityBounds(e))
	}
	if bounds == nil {
		return nil, transform{}, fmt.Errorf("nothing to render: %w", domain.ErrNoMeasurableGeometry)
	}

	w, h := bounds.XExtent(), bounds.YExtent()
	longest := math.Max(w, h)
	scale := 1.0
	if longest > 0 {
		scale = float64(canvasSize-2*margin) / longest
	}

	pxW := int(math.Ceil(w*scale)) + 2*margin
	pxH := int(math.Ceil(h*scale)) + 2*margin
	canvas := image.NewRGBA(image.Rect(0, 0, pxW, pxH))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	return canvas, transform{scale: scale, offX: bounds.MinX, offY: bounds.MinY}, nil
}

func palette(n int) []color.RGBA {
	out := make([]color.RGBA, n)
	for i := range out {
		c := colorful.Hsv(float64(i)*360/math.Max(float64(n), 1), 0.85, 0.85)
		r, g, b := c.RGB255()
		out[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return out
}

func drawOutline(canvas *image.RGBA, tf transform, pts []domain.Point, col color.RGBA) {
	for i := 1; i < len(pts); i++ {
		x0, y0 := tf.apply(pts[i-1])
		x1, y1 := tf.apply(pts[i])
		drawSegment(canvas, x0, y0, x1, y1, col)
	}
}

func drawBox(canvas *image.RGBA, tf transform, b *domain.Bounds, col color.RGBA) {
	x0, y0 := tf.apply(domain.Point{X: b.MinX, Y: b.MinY})
	x1, y1 := tf.apply(domain.Point{X: b.MaxX, Y: b.MaxY})
	drawSegment(canvas, x0, y0, x1, y0, col)
	drawSegment(canvas, x1, y0, x1, y1, col)
	drawSegment(canvas, x1, y1, x0, y1, col)
	drawSegment(canvas, x0, y1, x0, y0, col)
}

// drawSegment is Bresenham's line algorithm.
func drawSegment(canvas *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		canvas.SetRGBA(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// encode flips from cartesian (Y up) to image (Y down) orientation and
// emits PNG bytes.
func encode(canvas *image.RGBA) ([]byte, error) {
	flipped := imaging.FlipV(canvas)
	var buf bytes.Buffer
	if err := png.Encode(&buf, flipped); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
