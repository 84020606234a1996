package domain

import "errors"

var (
	ErrInvalidDocument      = errors.New("invalid DXF document")
	ErrInvalidUnit          = errors.New("invalid unit; accepted: millimeters, centimeters, meters, inches")
	ErrEmptyInput           = errors.New("empty upload")
	ErrNoMeasurableGeometry = errors.New("document contains no measurable geometry")
)
