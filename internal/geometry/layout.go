package geometry

import (
	"math"

	"github.com/iburimskiy/tonal-tangents/internal/notes"
)

const (
	labelPadding    = 20
	bigLabelPadding = 30
)

// Point is a position in screen space relative to the circle's bounding box.
type Point struct {
	X, Y float64
}

// LayoutConfig is everything the point positions depend on.
type LayoutConfig struct {
	Size        float64
	StrokeWidth float64
}

// CirclePoint is a note marker and its label anchors.
type CirclePoint struct {
	Note string
	Point
	Label    Point
	BigLabel Point
}

// LabelAnchor picks the anchor appropriate to the note name's width.
func (p CirclePoint) LabelAnchor() Point {
	if notes.IsWide(p.Note) {
		return p.BigLabel
	}
	return p.Label
}

// Radius returns the radius the markers sit on.
func (c LayoutConfig) Radius() float64 {
	return c.Size/2 - c.StrokeWidth
}

// ComputePoints places one point per note clockwise around the circle,
// starting at the top.
func ComputePoints(cfg LayoutConfig) []CirclePoint {
	n := notes.NumPoints
	center := cfg.Size / 2
	r := cfg.Radius()
	labelR := (cfg.Size + labelPadding) / 2
	bigLabelR := (cfg.Size + bigLabelPadding) / 2
	theta := 2 * math.Pi / float64(n)

	points := make([]CirclePoint, n)
	for i := 0; i < n; i++ {
		sin, cos := math.Sincos(theta * float64(i))
		points[i] = CirclePoint{
			Note:     notes.Names[i],
			Point:    Point{X: center + r*sin, Y: center - r*cos},
			Label:    Point{X: center + labelR*sin, Y: center - labelR*cos},
			BigLabel: Point{X: center + bigLabelR*sin, Y: center - bigLabelR*cos},
		}
	}
	return points
}

// LayoutCache keeps the last computed layout and only recomputes it when
// the size or stroke width changes.
type LayoutCache struct {
	cfg        LayoutConfig
	points     []CirclePoint
	recomputes int
}

// Points returns the layout for cfg.
func (c *LayoutCache) Points(cfg LayoutConfig) []CirclePoint {
	if c.points != nil && c.cfg == cfg {
		return c.points
	}
	c.cfg = cfg
	c.points = ComputePoints(cfg)
	c.recomputes++
	return c.points
}
