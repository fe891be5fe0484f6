// Package chart describes figures as plain data and renders them to images.
// Analysis code builds Figures; only the renderer knows about gonum/plot.
package chart

import (
	"github.com/rustyeddy/rangescope/stats"
)

// Figure is one output image made of side-by-side charts.
type Figure struct {
	Name   string // file-safe name, e.g. "price-ranges"
	Charts []Chart
}

type Chart struct {
	Title  string
	XLabel string
	YLabel string
	XRange *Range
	YRange *Range

	// XTime formats the x axis as dates; X values are unix seconds.
	XTime bool

	Series  []Series
	Markers []Marker
}

// Range is a fixed axis window.
type Range struct {
	Min, Max float64
}

func Limits(min, max float64) *Range {
	return &Range{Min: min, Max: max}
}

type SeriesKind int

const (
	Scatter SeriesKind = iota
	Hist
	Bars
)

type Series struct {
	Kind  SeriesKind
	Label string
	Color string
	Alpha float64 // 0 means opaque

	// Scatter
	X, Y   []float64
	Radius float64 // glyph radius in points

	// Hist
	Bins []stats.Bin

	// Bars, one value per label
	Values []float64
	Labels []string
}

type Axis int

const (
	Vertical Axis = iota
	Horizontal
)

type LineStyle int

const (
	Solid LineStyle = iota
	Dashed
	Dotted
)

// Marker is a reference line across the chart at Value.
type Marker struct {
	Label string
	Axis  Axis
	Value float64
	Color string
	Style LineStyle
	Width float64 // points, 0 means default
}

func VLine(label string, x float64, color string, style LineStyle) Marker {
	return Marker{Label: label, Axis: Vertical, Value: x, Color: color, Style: style}
}

func HLine(label string, y float64, color string, style LineStyle) Marker {
	return Marker{Label: label, Axis: Horizontal, Value: y, Color: color, Style: style}
}

// Renderer turns a figure into an artifact and reports where it went.
type Renderer interface {
	Render(seq int, fig Figure) (string, error)
}
