// Package dxftest builds minimal ASCII DXF documents for tests, the way
// the original drawings are produced by CAD exports: HEADER, a single
// layer table, and an ENTITIES section.
package dxftest

import (
	"fmt"
	"strconv"
	"strings"
)

type Doc struct {
	units    *int
	version  string
	entities []string
}

func New() *Doc {
	return &Doc{version: "AC1024"}
}

// Units sets the $INSUNITS header code (1=in, 4=mm, 5=cm, 6=m).
func (d *Doc) Units(code int) *Doc {
	d.units = &code
	return d
}

func (d *Doc) Line(x1, y1, x2, y2 float64) *Doc {
	d.entities = append(d.entities, tags(
		"0", "LINE", "8", "0",
		"10", f(x1), "20", f(y1),
		"11", f(x2), "21", f(y2),
	))
	return d
}

func (d *Doc) Circle(cx, cy, r float64) *Doc {
	d.entities = append(d.entities, tags(
		"0", "CIRCLE", "8", "0",
		"10", f(cx), "20", f(cy), "40", f(r),
	))
	return d
}

func (d *Doc) Arc(cx, cy, r, startDeg, endDeg float64) *Doc {
	d.entities = append(d.entities, tags(
		"0", "ARC", "8", "0",
		"10", f(cx), "20", f(cy), "40", f(r),
		"50", f(startDeg), "51", f(endDeg),
	))
	return d
}

func (d *Doc) LWPolyline(closed bool, pts ...[2]float64) *Doc {
	flags := "0"
	if closed {
		flags = "1"
	}
	parts := []string{
		"0", "LWPOLYLINE", "8", "0",
		"90", strconv.Itoa(len(pts)), "70", flags,
	}
	for _, p := range pts {
		parts = append(parts, "10", f(p[0]), "20", f(p[1]))
	}
	d.entities = append(d.entities, tags(parts...))
	return d
}

func (d *Doc) Spline(degree int, ctrl ...[2]float64) *Doc {
	parts := []string{
		"0", "SPLINE", "8", "0",
		"71", strconv.Itoa(degree),
	}
	for _, p := range ctrl {
		parts = append(parts, "10", f(p[0]), "20", f(p[1]))
	}
	d.entities = append(d.entities, tags(parts...))
	return d
}

func (d *Doc) Ellipse(cx, cy, majX, majY, ratio float64) *Doc {
	d.entities = append(d.entities, tags(
		"0", "ELLIPSE", "8", "0",
		"10", f(cx), "20", f(cy),
		"11", f(majX), "21", f(majY),
		"40", f(ratio), "41", "0", "42", "6.283185307179586",
	))
	return d
}

// Entity appends a raw entity from alternating code/value strings, for
// exercising types the builder has no shorthand for.
func (d *Doc) Entity(codeValues ...string) *Doc {
	d.entities = append(d.entities, tags(codeValues...))
	return d
}

func (d *Doc) Bytes() []byte {
	var b strings.Builder

	b.WriteString(tags("0", "SECTION", "2", "HEADER"))
	b.WriteString(tags("9", "$ACADVER", "1", d.version))
	if d.units != nil {
		b.WriteString(tags("9", "$INSUNITS", "70", strconv.Itoa(*d.units)))
	}
	b.WriteString(tags("0", "ENDSEC"))

	b.WriteString(tags("0", "SECTION", "2", "TABLES"))
	b.WriteString(tags("0", "TABLE", "2", "LAYER"))
	b.WriteString(tags("0", "LAYER", "2", "0", "62", "7"))
	b.WriteString(tags("0", "ENDTAB", "0", "ENDSEC"))

	b.WriteString(tags("0", "SECTION", "2", "ENTITIES"))
	for _, e := range d.entities {
		b.WriteString(e)
	}
	b.WriteString(tags("0", "ENDSEC", "0", "EOF"))

	return []byte(b.String())
}

func tags(codeValues ...string) string {
	if len(codeValues)%2 != 0 {
		panic(fmt.Sprintf("odd tag list: %v", codeValues))
	}
	var b strings.Builder
	for _, cv := range codeValues {
		b.WriteString(cv)
		b.WriteString("\n")
	}
	return b.String()
}

func f(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
