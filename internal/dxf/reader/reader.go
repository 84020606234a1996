// Package reader parses ASCII DXF byte content into typed drawing
// entities. It is the measurement core's document-reading collaborator;
// the core itself never looks at raw bytes.
//
// DXF is a stream of (group code, value) tag pairs. The reader walks the
// HEADER section for $ACADVER and $INSUNITS, the TABLES section for the
// layer list, and the ENTITIES section for the graphic entities.
package reader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/stewartad1/RapidEdge/internal/dxf/domain"
)

// Document is one parsed drawing layout.
type Document struct {
	Version  string // raw $ACADVER, e.g. "AC1024"
	Units    *int   // $INSUNITS code, nil when the header omits it
	Layers   []domain.LayerInfo
	Entities []domain.Entity
}

var releaseNames = map[string]string{
	"AC1009": "R12",
	"AC1015": "R2000",
	"AC1018": "R2004",
	"AC1021": "R2007",
	"AC1024": "R2010",
	"AC1027": "R2013",
	"AC1032": "R2018",
}

// ReleaseName maps the ACADVER header to the familiar release label.
func (d *Document) ReleaseName() string {
	if name, ok := releaseNames[d.Version]; ok {
		return name
	}
	return d.Version
}

type tag struct {
	code  int
	value string
}

func (t tag) asFloat() float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(t.value), 64)
	return v
}

func (t tag) asInt() int {
	v, _ := strconv.Atoi(strings.TrimSpace(t.value))
	return v
}

// Read parses DXF byte content. Content that is not a tag stream with at
// least one SECTION is rejected with ErrInvalidDocument.
func Read(content []byte) (*Document, error) {
	tags, err := scan(content)
	if err != nil {
		return nil, err
	}

	doc := &Document{}
	sections := 0
	for i := 0; i < len(tags); i++ {
		if tags[i].code != 0 || tags[i].value != "SECTION" {
			continue
		}
		if i+1 >= len(tags) || tags[i+1].code != 2 {
			return nil, fmt.Errorf("SECTION without name tag: %w", domain.ErrInvalidDocument)
		}
		sections++
		end := sectionEnd(tags, i+2)
		body := tags[i+2 : end]
		switch tags[i+1].value {
		case "HEADER":
			doc.parseHeader(body)
		case "TABLES":
			doc.parseTables(body)
		case "ENTITIES":
			doc.parseEntities(body)
		}
		i = end
	}
	if sections == 0 {
		return nil, fmt.Errorf("no sections found: %w", domain.ErrInvalidDocument)
	}
	return doc, nil
}

func scan(content []byte) ([]tag, error) {
	lines := strings.Split(string(content), "\n")
	var tags []tag
	for i := 0; i+1 < len(lines); i += 2 {
		codeStr := strings.TrimSpace(lines[i])
		if codeStr == "" && i+1 == len(lines)-1 {
			break // trailing blank line
		}
		code, err := strconv.Atoi(codeStr)
		if err != nil {
			return nil, fmt.Errorf("bad group code %q at line %d: %w", codeStr, i+1, domain.ErrInvalidDocument)
		}
		tags = append(tags, tag{code: code, value: strings.TrimSpace(lines[i+1])})
	}
	if len(tags) == 0 {
		return nil, fmt.Errorf("no tags: %w", domain.ErrInvalidDocument)
	}
	return tags, nil
}

func sectionEnd(tags []tag, from int) int {
	for i := from; i < len(tags); i++ {
		if tags[i].code == 0 && tags[i].value == "ENDSEC" {
			return i
		}
	}
	return len(tags)
}

func (d *Document) parseHeader(body []tag) {
	for i := 0; i < len(body); i++ {
		if body[i].code != 9 {
			continue
		}
		switch body[i].value {
		case "$ACADVER":
			if i+1 < len(body) {
				d.Version = body[i+1].value
			}
		case "$INSUNITS":
			if i+1 < len(body) {
				code := body[i+1].asInt()
				d.Units = &code
			}
		}
	}
}

func (d *Document) parseTables(body []tag) {
	for i := 0; i < len(body); i++ {
		if body[i].code != 0 || body[i].value != "LAYER" {
			continue
		}
		layer := domain.LayerInfo{}
		for j := i + 1; j < len(body) && body[j].code != 0; j++ {
			switch body[j].code {
			case 2:
				layer.Name = body[j].value
			case 62:
				color := body[j].asInt()
				layer.Color = &color
			}
		}
		if layer.Name != "" {
			d.Layers = append(d.Layers, layer)
		}
	}
}
