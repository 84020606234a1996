// Package units resolves and converts the length units a drawing is
// measured in. All factors are anchored at millimeters.
package units

import (
	"fmt"
	"math"

	"github.com/stewartad1/RapidEdge/internal/dxf/domain"
)

type Unit string

const (
	Millimeters Unit = "millimeters"
	Centimeters Unit = "centimeters"
	Meters      Unit = "meters"
	Inches      Unit = "inches"
)

// DXF INSUNITS header codes for the units we recognize.
const (
	insunitsInches      = 1
	insunitsMillimeters = 4
	insunitsCentimeters = 5
	insunitsMeters      = 6
)

var mmPer = map[Unit]float64{
	Millimeters: 1,
	Centimeters: 10,
	Meters:      1000,
	Inches:      25.4,
}

// Parse validates a caller-supplied unit string.
func Parse(s string) (Unit, error) {
	u := Unit(s)
	if _, ok := mmPer[u]; !ok {
		return "", fmt.Errorf("%q: %w", s, domain.ErrInvalidUnit)
	}
	return u, nil
}

// Resolve picks the base unit for a drawing: an explicit override wins,
// then a recognized document INSUNITS code, then millimeters.
func Resolve(override Unit, docCode *int) Unit {
	if override != "" {
		return override
	}
	if docCode != nil {
		switch *docCode {
		case insunitsInches:
			return Inches
		case insunitsMillimeters:
			return Millimeters
		case insunitsCentimeters:
			return Centimeters
		case insunitsMeters:
			return Meters
		}
	}
	return Millimeters
}

// Convert rescales a length between two supported units.
func Convert(v float64, from, to Unit) float64 {
	if from == to {
		return v
	}
	return v * mmPer[from] / mmPer[to]
}

// Round3 rounds for presentation. Applied once at the report boundary,
// never on intermediate values.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
