// Package service wires the measurement engine together: reader output in,
// dimension reports and diagnostics out. Each call is independent; nothing
// is shared or mutated across requests.
package service

import (
	"context"
	"log"
	"math"

	"github.com/stewartad1/RapidEdge/internal/dxf/connectivity"
	"github.com/stewartad1/RapidEdge/internal/dxf/domain"
	"github.com/stewartad1/RapidEdge/internal/dxf/geometry"
	"github.com/stewartad1/RapidEdge/internal/dxf/reader"
	"github.com/stewartad1/RapidEdge/internal/dxf/render"
	"github.com/stewartad1/RapidEdge/internal/dxf/repository"
	"github.com/stewartad1/RapidEdge/internal/dxf/units"
)

// Service exposes the analysis operations to the HTTP boundary. Cache and
// history are optional; nil disables them.
type Service struct {
	cache   *repository.ReportCache
	history *repository.HistoryRepository
}

func New(cache *repository.ReportCache, history *repository.HistoryRepository) *Service {
	return &Service{cache: cache, history: history}
}

// MeasureOptions carries the caller-tunable parameters of one analysis.
type MeasureOptions struct {
	Filename      string
	UnitOverride  string  // empty means "use the document's units"
	JoinTolerance float64 // fuzzy-connectivity tolerance, 0 disables
}

// Measure parses the content and produces the full dimension report.
func (s *Service) Measure(ctx context.Context, content []byte, opts MeasureOptions) (*domain.DimensionReport, error) {
	if len(content) == 0 {
		return nil, domain.ErrEmptyInput
	}

	override, err := parseOverride(opts.UnitOverride)
	if err != nil {
		return nil, err
	}

	var cacheKey string
	if s.cache != nil {
		cacheKey = s.cache.Key(content, opts.UnitOverride, opts.JoinTolerance)
		if cached, err := s.cache.Get(ctx, cacheKey); err != nil {
			log.Printf("[cache] get failed: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	doc, err := reader.Read(content)
	if err != nil {
		return nil, err
	}
	base := units.Resolve(override, doc.Units)

	report, err := buildReport(doc.Entities, base, opts.JoinTolerance)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, cacheKey, report); err != nil {
			log.Printf("[cache] put failed: %v", err)
		}
	}
	if s.history != nil {
		if _, err := s.history.Record(ctx, opts.Filename, report); err != nil {
			log.Printf("[history] record failed: %v", err)
		}
	}
	return report, nil
}

// Inspect returns the per-entity diagnostic listing at the given join
// tolerance. Lengths are reported in the resolved base unit.
func (s *Service) Inspect(ctx context.Context, content []byte, opts MeasureOptions) (*domain.Inspection, error) {
	if len(content) == 0 {
		return nil, domain.ErrEmptyInput
	}
	override, err := parseOverride(opts.UnitOverride)
	if err != nil {
		return nil, err
	}
	doc, err := reader.Read(content)
	if err != nil {
		return nil, err
	}
	base := units.Resolve(override, doc.Units)

	comps := connectivity.Components(doc.Entities, opts.JoinTolerance)
	member := connectivity.Membership(comps, len(doc.Entities))
	counts := countKinds(doc.Entities)

	insp := &domain.Inspection{
		Counts:           counts,
		NumberOfPierces:  counts.Pierces(),
		ConnectedPierces: connectivity.ConnectedPierces(comps),
		Components:       comps,
		JoinTolerance:    opts.JoinTolerance,
		Units:            string(base),
	}
	for i, e := range doc.Entities {
		pts, length, ok := geometry.Sample(e)
		diag := domain.EntityDiagnostic{
			Index:      i,
			Type:       domain.TypeName(e),
			Layer:      e.Layer(),
			Bounds:     roundBounds(geometry.EntityBounds(e)),
			PointCount: len(pts),
			Component:  member[i],
		}
		if ok {
			rounded := units.Round3(length)
			diag.Length = &rounded
		}
		insp.Entities = append(insp.Entities, diag)
	}
	return insp, nil
}

// Parse returns the document structure: metadata, layers, the entity
// listing, and overall bounds.
func (s *Service) Parse(ctx context.Context, content []byte, filename string) (*domain.ParseResult, error) {
	if len(content) == 0 {
		return nil, domain.ErrEmptyInput
	}
	doc, err := reader.Read(content)
	if err != nil {
		return nil, err
	}

	var bounds *domain.Bounds
	for _, e := range doc.Entities {
		bounds = bounds.Union(geometry.EntityBounds(e))
	}

	counts := countKinds(doc.Entities)
	result := &domain.ParseResult{
		Metadata: domain.Metadata{
			Filename: filename,
			Version:  doc.ReleaseName(),
			Units:    doc.Units,
		},
		Layers:            doc.Layers,
		Bounds:            roundBounds(bounds),
		NumberOfLines:     counts.Lines,
		NumberOfCircles:   counts.Circles,
		NumberOfArcs:      counts.Arcs,
		NumberOfPolylines: counts.Polylines,
		NumberOfPierces:   counts.Pierces(),
	}
	for _, e := range doc.Entities {
		result.Entities = append(result.Entities, domain.EntityInfo{
			Type:  domain.TypeName(e),
			Layer: e.Layer(),
		})
	}
	return result, nil
}

// Render produces a plain PNG preview of the drawing.
func (s *Service) Render(ctx context.Context, content []byte) ([]byte, error) {
	doc, err := s.readForRender(content)
	if err != nil {
		return nil, err
	}
	return render.Drawing(doc.Entities)
}

// RenderEntityBoxes produces a PNG with each entity's bounding box
// overlaid in a distinct color.
func (s *Service) RenderEntityBoxes(ctx context.Context, content []byte) ([]byte, error) {
	doc, err := s.readForRender(content)
	if err != nil {
		return nil, err
	}
	return render.EntityBoxes(doc.Entities)
}

// RenderComponentBoxes colors entities by connectivity component.
func (s *Service) RenderComponentBoxes(ctx context.Context, content []byte, tol float64) ([]byte, error) {
	doc, err := s.readForRender(content)
	if err != nil {
		return nil, err
	}
	comps := connectivity.Components(doc.Entities, tol)
	return render.ComponentBoxes(doc.Entities, comps)
}

func (s *Service) readForRender(content []byte) (*reader.Document, error) {
	if len(content) == 0 {
		return nil, domain.ErrEmptyInput
	}
	return reader.Read(content)
}

// History lists recent measurements; empty when no store is configured.
func (s *Service) History(ctx context.Context, limit int) ([]repository.HistoryEntry, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.List(ctx, limit)
}

func parseOverride(s string) (units.Unit, error) {
	if s == "" {
		return "", nil
	}
	return units.Parse(s)
}

// buildReport aggregates the geometry of one entity list into the final
// report. All intermediate math stays in the base unit; conversion and
// rounding happen once, here.
func buildReport(entities []domain.Entity, base units.Unit, tol float64) (*domain.DimensionReport, error) {
	var (
		bounds    *domain.Bounds
		hullPts   []domain.Point
		edgePts   []domain.Point // line/polyline endpoints for max-edge
	)
	for _, e := range entities {
		pts, _, ok := geometry.Sample(e)
		if !ok {
			continue
		}
		bounds = bounds.Union(geometry.EntityBounds(e))
		hullPts = append(hullPts, pts...)
		switch e.Kind() {
		case domain.KindLine, domain.KindPolyline:
			edgePts = append(edgePts, pts...)
		}
	}
	if bounds == nil {
		return nil, domain.ErrNoMeasurableGeometry
	}

	xExt, yExt := bounds.XExtent(), bounds.YExtent()
	objectWidth := math.Max(xExt, yExt)
	objectLength := math.Min(xExt, yExt)
	maxEdge := geometry.MaxPairwiseDistance(edgePts)

	hull := geometry.ConvexHull(hullPts)
	obb := geometry.MinAreaRect(hull)
	minMax := geometry.MinMaxSideRect(hull)

	comps := connectivity.Components(entities, tol)
	counts := countKinds(entities)

	mm := func(v float64) float64 { return units.Round3(units.Convert(v, base, units.Millimeters)) }
	in := func(v float64) float64 { return units.Round3(units.Convert(v, base, units.Inches)) }
	bu := units.Round3

	widthIn := units.Convert(xExt, base, units.Inches)
	lengthIn := units.Convert(yExt, base, units.Inches)

	return &domain.DimensionReport{
		WidthMM:  mm(objectWidth),
		WidthIn:  in(objectWidth),
		LengthMM: mm(objectLength),
		LengthIn: in(objectLength),

		BBoxWidthMM:  mm(xExt),
		BBoxWidthIn:  in(xExt),
		BBoxLengthMM: mm(yExt),
		BBoxLengthIn: in(yExt),
		BBoxAreaIn2:  units.Round3(widthIn * lengthIn),

		ObjectWidthMM: mm(objectWidth),
		ObjectWidthIn: in(objectWidth),

		MaxEdgeLengthMM: mm(maxEdge),
		MaxEdgeLengthIn: in(maxEdge),

		OBBWidthMM:  mm(obb.Width),
		OBBWidthIn:  in(obb.Width),
		OBBLengthMM: mm(obb.Length),
		OBBLengthIn: in(obb.Length),
		OBBAngleDeg: units.Round3(obb.AngleDeg),

		MinMaxRectWidthMM:  mm(minMax.Width),
		MinMaxRectWidthIn:  in(minMax.Width),
		MinMaxRectLengthMM: mm(minMax.Length),
		MinMaxRectLengthIn: in(minMax.Length),
		MinMaxRectAngleDeg: units.Round3(minMax.AngleDeg),

		MinEnclosingSquareSideMM: mm(minMax.Width),
		MinEnclosingSquareSideIn: in(minMax.Width),

		Base: domain.BaseMeasurements{
			Width:                  bu(objectWidth),
			Length:                 bu(objectLength),
			BBoxWidth:              bu(xExt),
			BBoxLength:             bu(yExt),
			MaxEdgeLength:          bu(maxEdge),
			OBBWidth:               bu(obb.Width),
			OBBLength:              bu(obb.Length),
			MinMaxRectWidth:        bu(minMax.Width),
			MinMaxRectLength:       bu(minMax.Length),
			MinEnclosingSquareSide: bu(minMax.Width),
		},

		NumberOfLines:     counts.Lines,
		NumberOfCircles:   counts.Circles,
		NumberOfArcs:      counts.Arcs,
		NumberOfPolylines: counts.Polylines,
		NumberOfPierces:   counts.Pierces(),
		ConnectedPierces:  connectivity.ConnectedPierces(comps),

		SourceUnits: string(base),
	}, nil
}

func countKinds(entities []domain.Entity) domain.EntityCounts {
	var c domain.EntityCounts
	for _, e := range entities {
		switch e.Kind() {
		case domain.KindLine:
			c.Lines++
		case domain.KindCircle:
			c.Circles++
		case domain.KindArc:
			c.Arcs++
		case domain.KindPolyline:
			c.Polylines++
		case domain.KindSpline:
			c.Splines++
		case domain.KindEllipse:
			c.Ellipses++
		default:
			c.Others++
		}
	}
	return c
}

func roundBounds(b *domain.Bounds) *domain.Bounds {
	if b == nil {
		return nil
	}
	return &domain.Bounds{
		MinX: units.Round3(b.MinX), MinY: units.Round3(b.MinY), MinZ: units.Round3(b.MinZ),
		MaxX: units.Round3(b.MaxX), MaxY: units.Round3(b.MaxY), MaxZ: units.Round3(b.MaxZ),
	}
}
