package reader

import "github.com/stewartad1/RapidEdge/internal/dxf/domain"

// Polyline flag bit: closed.
const flagClosed = 1

func (d *Document) parseEntities(body []tag) {
	for i := 0; i < len(body); i++ {
		if body[i].code != 0 {
			continue
		}
		next := entityEnd(body, i+1)
		group := body[i+1 : next]
		switch body[i].value {
		case "LINE":
			d.Entities = append(d.Entities, parseLine(group))
		case "CIRCLE":
			d.Entities = append(d.Entities, parseCircle(group))
		case "ARC":
			d.Entities = append(d.Entities, parseArc(group))
		case "LWPOLYLINE":
			d.Entities = append(d.Entities, parseLWPolyline(group))
		case "POLYLINE":
			poly, consumed := parsePolyline(body, i)
			d.Entities = append(d.Entities, poly)
			i = consumed
			continue
		case "SPLINE":
			d.Entities = append(d.Entities, parseSpline(group))
		case "ELLIPSE":
			d.Entities = append(d.Entities, parseEllipse(group))
		default:
			d.Entities = append(d.Entities, domain.Other{
				TypeName:  body[i].value,
				LayerName: layerOf(group),
			})
		}
		i = next - 1
	}
}

func entityEnd(body []tag, from int) int {
	for i := from; i < len(body); i++ {
		if body[i].code == 0 {
			return i
		}
	}
	return len(body)
}

func layerOf(group []tag) string {
	for _, t := range group {
		if t.code == 8 {
			return t.value
		}
	}
	return ""
}

func parseLine(group []tag) domain.Line {
	var l domain.Line
	for _, t := range group {
		switch t.code {
		case 8:
			l.LayerName = t.value
		case 10:
			l.Start.X = t.asFloat()
		case 20:
			l.Start.Y = t.asFloat()
		case 30:
			l.Start.Z = t.asFloat()
		case 11:
			l.End.X = t.asFloat()
		case 21:
			l.End.Y = t.asFloat()
		case 31:
			l.End.Z = t.asFloat()
		}
	}
	return l
}

func parseCircle(group []tag) domain.Circle {
	var c domain.Circle
	for _, t := range group {
		switch t.code {
		case 8:
			c.LayerName = t.value
		case 10:
			c.Center.X = t.asFloat()
		case 20:
			c.Center.Y = t.asFloat()
		case 30:
			c.Center.Z = t.asFloat()
		case 40:
			c.Radius = t.asFloat()
		}
	}
	return c
}

func parseArc(group []tag) domain.Arc {
	var a domain.Arc
	for _, t := range group {
		switch t.code {
		case 8:
			a.LayerName = t.value
		case 10:
			a.Center.X = t.asFloat()
		case 20:
			a.Center.Y = t.asFloat()
		case 30:
			a.Center.Z = t.asFloat()
		case 40:
			a.Radius = t.asFloat()
		case 50:
			a.StartAngle = t.asFloat()
		case 51:
			a.EndAngle = t.asFloat()
		}
	}
	return a
}

// LWPOLYLINE vertices arrive as repeated 10/20 pairs; 20 closes a vertex.
func parseLWPolyline(group []tag) domain.Polyline {
	var p domain.Polyline
	var x float64
	for _, t := range group {
		switch t.code {
		case 8:
			p.LayerName = t.value
		case 70:
			p.Closed = t.asInt()&flagClosed != 0
		case 10:
			x = t.asFloat()
		case 20:
			p.Vertices = append(p.Vertices, domain.Point{X: x, Y: t.asFloat()})
		}
	}
	return p
}

// Legacy POLYLINE is followed by VERTEX entities and terminated by SEQEND.
// Returns the index of the SEQEND tag so the caller can resume after it.
func parsePolyline(body []tag, start int) (domain.Polyline, int) {
	var p domain.Polyline

	i := start + 1
	for ; i < len(body) && body[i].code != 0; i++ {
		switch body[i].code {
		case 8:
			p.LayerName = body[i].value
		case 70:
			p.Closed = body[i].asInt()&flagClosed != 0
		}
	}

	for i < len(body) {
		if body[i].code != 0 {
			i++
			continue
		}
		switch body[i].value {
		case "VERTEX":
			var v domain.Point
			for i++; i < len(body) && body[i].code != 0; i++ {
				switch body[i].code {
				case 10:
					v.X = body[i].asFloat()
				case 20:
					v.Y = body[i].asFloat()
				case 30:
					v.Z = body[i].asFloat()
				}
			}
			p.Vertices = append(p.Vertices, v)
		case "SEQEND":
			return p, i
		default:
			// Malformed stream: next entity began without SEQEND.
			return p, i - 1
		}
	}
	return p, len(body) - 1
}

func parseSpline(group []tag) domain.Spline {
	var s domain.Spline
	var x float64
	for _, t := range group {
		switch t.code {
		case 8:
			s.LayerName = t.value
		case 70:
			s.Closed = t.asInt()&flagClosed != 0
		case 71:
			s.Degree = t.asInt()
		case 40:
			s.Knots = append(s.Knots, t.asFloat())
		case 10:
			x = t.asFloat()
		case 20:
			s.Controls = append(s.Controls, domain.Point{X: x, Y: t.asFloat()})
		}
	}
	return s
}

func parseEllipse(group []tag) domain.Ellipse {
	var e domain.Ellipse
	for _, t := range group {
		switch t.code {
		case 8:
			e.LayerName = t.value
		case 10:
			e.Center.X = t.asFloat()
		case 20:
			e.Center.Y = t.asFloat()
		case 30:
			e.Center.Z = t.asFloat()
		case 11:
			e.MajorAxis.X = t.asFloat()
		case 21:
			e.MajorAxis.Y = t.asFloat()
		case 40:
			e.Ratio = t.asFloat()
		case 41:
			e.StartParam = t.asFloat()
		case 42:
			e.EndParam = t.asFloat()
		}
	}
	return e
}
