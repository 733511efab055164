package chakra

import (
	"image/color"

	"gonum.org/v1/gonum/floats"

	"vastu-chakra/pkg/geometry"
)

// Line is a boundary-clipped radial line.
type Line struct {
	Start geometry.Point2D
	End   geometry.Point2D
	Angle float64 // effective angle in degrees (rotation applied)
}

// Wedge is one sector's ring segment, for fill rendering. The outline
// is purely circular and intentionally not clipped to the polygon.
type Wedge struct {
	Name    string
	Outline []geometry.Point2D
	Color   color.RGBA
}

// Label is a positioned piece of overlay text.
type Label struct {
	Anchor geometry.Point2D
	Text   string
}

// SectorArea is one direction's share of the outlined plan area.
type SectorArea struct {
	Direction string
	Percent   float64
}

// Overlay is the full geometry payload for one overlay configuration.
// Consumers must replace the previous payload wholesale on every
// recomputation; partial merges of stale geometry are a correctness
// bug.
type Overlay struct {
	Center          geometry.Point2D
	Outline         []geometry.Point2D
	Radials         []Line
	EntranceRays    []Line
	Zones           []Wedge
	DirectionLabels []Label
	EntranceLabels  []Label
	Compass         []Label
	Layers          Layer
	Opacity         float64
}

// Engine derives overlay geometry from a center, an outline polygon
// and a transform. Every operation is a pure function of its inputs
// and recomputes from scratch; the engine itself holds only the
// immutable configuration.
type Engine struct {
	cfg Config
}

// NewEngine creates a layout engine with the given configuration.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// radius is the effective nominal radius under the transform scale.
func (e *Engine) radius(tf Transform) float64 {
	return e.cfg.BaseRadius * tf.Scale
}

// RadialLines returns the 16 direction sector lines from the center to
// the polygon boundary (or to the fallback circle).
func (e *Engine) RadialLines(center geometry.Point2D, polygon []geometry.Point2D, tf Transform) []Line {
	lines := make([]Line, 0, SectorCount)
	for _, d := range Directions {
		end := CastToBoundary(center, d.Angle, tf.Rotation, polygon, e.radius(tf))
		lines = append(lines, Line{
			Start: center,
			End:   end,
			Angle: NormalizeAngle(d.Angle + tf.Rotation),
		})
	}
	return lines
}

// EntranceLines returns the 32 entrance rays, boundary-clipped like
// the direction lines.
func (e *Engine) EntranceLines(center geometry.Point2D, polygon []geometry.Point2D, tf Transform) []Line {
	lines := make([]Line, 0, EntranceCount)
	for _, ent := range Entrances {
		end := CastToBoundary(center, ent.Angle, tf.Rotation, polygon, e.radius(tf))
		lines = append(lines, Line{
			Start: center,
			End:   end,
			Angle: NormalizeAngle(ent.Angle + tf.Rotation),
		})
	}
	return lines
}

// ZoneSectorPaths returns the 16 colored ring wedges. These are
// circular (inner ring fraction to the full scaled radius) and do not
// follow the polygon boundary.
func (e *Engine) ZoneSectorPaths(center geometry.Point2D, tf Transform) []Wedge {
	outer := e.radius(tf)
	inner := outer * e.cfg.InnerRingFraction
	steps := e.cfg.ArcSteps
	if steps < 1 {
		steps = 1
	}

	wedges := make([]Wedge, 0, SectorCount)
	for _, d := range Directions {
		from := d.Angle - SectorHalfWidth + tf.Rotation
		to := d.Angle + SectorHalfWidth + tf.Rotation

		outline := make([]geometry.Point2D, 0, 2*(steps+1))
		// Outer arc, sweeping clockwise.
		for s := 0; s <= steps; s++ {
			a := from + (to-from)*float64(s)/float64(steps)
			outline = append(outline, center.Add(UnitVector(a).Scale(outer)))
		}
		// Inner arc back.
		for s := steps; s >= 0; s-- {
			a := from + (to-from)*float64(s)/float64(steps)
			outline = append(outline, center.Add(UnitVector(a).Scale(inner)))
		}

		wedges = append(wedges, Wedge{Name: d.Name, Outline: outline, Color: d.Color})
	}
	return wedges
}

// DirectionLabels returns the 16 direction names anchored a fixed
// fraction of the boundary distance from the center.
func (e *Engine) DirectionLabels(center geometry.Point2D, polygon []geometry.Point2D, tf Transform) []Label {
	return e.labelsAt(center, polygon, tf, e.cfg.DirectionLabelFraction, func(i int) (float64, string) {
		return Directions[i].Angle, Directions[i].Name
	}, SectorCount)
}

// EntranceLabels returns the 32 entrance codes anchored near the
// boundary.
func (e *Engine) EntranceLabels(center geometry.Point2D, polygon []geometry.Point2D, tf Transform) []Label {
	return e.labelsAt(center, polygon, tf, e.cfg.EntranceLabelFraction, func(i int) (float64, string) {
		return Entrances[i].Angle, Entrances[i].Code
	}, EntranceCount)
}

// CompassMarkers returns the four cardinal letters, placed well inside
// the boundary so they stay visible for any polygon shape.
func (e *Engine) CompassMarkers(center geometry.Point2D, polygon []geometry.Point2D, tf Transform) []Label {
	markers := make([]Label, 0, len(CardinalIndices))
	for _, idx := range CardinalIndices {
		d := Directions[idx]
		boundary := CastToBoundary(center, d.Angle, tf.Rotation, polygon, e.radius(tf))
		markers = append(markers, Label{
			Anchor: center.Lerp(boundary, e.cfg.CompassFraction),
			Text:   d.Name,
		})
	}
	return markers
}

// labelsAt computes label anchors by casting at each entry's angle and
// pulling the boundary point toward the center by the given fraction.
func (e *Engine) labelsAt(center geometry.Point2D, polygon []geometry.Point2D, tf Transform, frac float64, entry func(int) (float64, string), count int) []Label {
	labels := make([]Label, 0, count)
	for i := 0; i < count; i++ {
		angle, text := entry(i)
		boundary := CastToBoundary(center, angle, tf.Rotation, polygon, e.radius(tf))
		labels = append(labels, Label{
			Anchor: center.Lerp(boundary, frac),
			Text:   text,
		})
	}
	return labels
}

// DirectionalAreaBreakdown estimates each direction sector's share of
// the outlined plan area. For every sector it casts rays at the two
// sector boundary angles and takes the triangle spanned by the center
// and the two boundary hits, then normalizes across all 16 sectors.
//
// This is a triangle approximation of the true wedge/polygon
// intersection, not an exact planimetric split; it is adequate for
// the percentage bar display it feeds. Polygons with fewer than 3
// points yield all-zero percentages, never NaN.
func (e *Engine) DirectionalAreaBreakdown(center geometry.Point2D, polygon []geometry.Point2D, tf Transform) []SectorArea {
	breakdown := make([]SectorArea, SectorCount)
	for i, d := range Directions {
		breakdown[i].Direction = d.Name
	}
	if len(polygon) < 3 {
		return breakdown
	}

	areas := make([]float64, SectorCount)
	for i, d := range Directions {
		p0 := CastToBoundary(center, d.Angle-SectorHalfWidth, tf.Rotation, polygon, e.radius(tf))
		p1 := CastToBoundary(center, d.Angle+SectorHalfWidth, tf.Rotation, polygon, e.radius(tf))
		cross := geometry.CrossProduct(center, p0, p1)
		if cross < 0 {
			cross = -cross
		}
		areas[i] = cross / 2
	}

	total := floats.Sum(areas)
	if total <= 0 {
		return breakdown
	}
	for i := range breakdown {
		breakdown[i].Percent = areas[i] / total * 100
	}
	return breakdown
}

// Layout computes the aggregate overlay payload for the requested
// layers. Layers absent from the mask are left nil.
func (e *Engine) Layout(center geometry.Point2D, polygon []geometry.Point2D, tf Transform, layers Layer) *Overlay {
	ov := &Overlay{
		Center:  center,
		Layers:  layers,
		Opacity: tf.Opacity,
	}

	if layers.Has(LayerOutline) && len(polygon) >= 2 {
		ov.Outline = append([]geometry.Point2D(nil), polygon...)
	}
	if layers.Has(LayerZones) {
		ov.Zones = e.ZoneSectorPaths(center, tf)
	}
	if layers.Has(LayerDirections) {
		ov.Radials = e.RadialLines(center, polygon, tf)
		ov.DirectionLabels = e.DirectionLabels(center, polygon, tf)
	}
	if layers.Has(LayerEntrances) {
		ov.EntranceRays = e.EntranceLines(center, polygon, tf)
		ov.EntranceLabels = e.EntranceLabels(center, polygon, tf)
	}
	if layers.Has(LayerCompass) {
		ov.Compass = e.CompassMarkers(center, polygon, tf)
	}
	return ov
}
