package chakra

import (
	"math"
	"reflect"
	"testing"

	"vastu-chakra/pkg/geometry"
)

func testEngine() *Engine {
	return NewEngine(DefaultConfig())
}

func TestDirectionTable(t *testing.T) {
	if len(Directions) != SectorCount {
		t.Fatalf("expected %d directions, got %d", SectorCount, len(Directions))
	}
	for i, d := range Directions {
		want := float64(i) * SectorPitch
		if d.Angle != want {
			t.Errorf("Directions[%d] (%s) angle = %v, want %v", i, d.Name, d.Angle, want)
		}
	}
	if Directions[CardinalIndices[0]].Name != "N" ||
		Directions[CardinalIndices[1]].Name != "E" ||
		Directions[CardinalIndices[2]].Name != "S" ||
		Directions[CardinalIndices[3]].Name != "W" {
		t.Error("cardinal indices do not point at N/E/S/W")
	}
}

func TestEntranceTable(t *testing.T) {
	if len(Entrances) != EntranceCount {
		t.Fatalf("expected %d entrances, got %d", EntranceCount, len(Entrances))
	}

	seen := make(map[string]bool)
	for _, ent := range Entrances {
		if len(ent.Code) != 2 {
			t.Errorf("entrance code %q is not two characters", ent.Code)
		}
		if seen[ent.Code] {
			t.Errorf("duplicate entrance code %q", ent.Code)
		}
		seen[ent.Code] = true

		// Every entrance sits at a k*11.25 + 5.625 midpoint.
		rem := math.Mod(ent.Angle-EntrancePitch/2, EntrancePitch)
		if math.Abs(rem) > 1e-9 && math.Abs(rem-EntrancePitch) > 1e-9 {
			t.Errorf("entrance %s angle %v is not an entrance midpoint", ent.Code, ent.Angle)
		}
	}

	// Spot-check the side labelling: E1 is the first pada clockwise of
	// the NE corner, N5 straddles due north's east side.
	if Entrances[0].Code != "E1" || math.Abs(Entrances[0].Angle-50.625) > 1e-9 {
		t.Errorf("Entrances[0] = %+v, want E1 at 50.625", Entrances[0])
	}
	for _, ent := range Entrances {
		if ent.Code == "N5" && math.Abs(ent.Angle-5.625) > 1e-9 {
			t.Errorf("N5 angle = %v, want 5.625", ent.Angle)
		}
	}
}

func TestRadialLinesClipToBoundary(t *testing.T) {
	center := geometry.Point2D{X: 5, Y: 5}
	lines := testEngine().RadialLines(center, square, DefaultTransform())

	if len(lines) != SectorCount {
		t.Fatalf("expected %d lines, got %d", SectorCount, len(lines))
	}
	north := lines[0]
	if math.Abs(north.End.X-5) > 1e-9 || math.Abs(north.End.Y) > 1e-9 {
		t.Errorf("north radial end = (%v,%v), want (5,0)", north.End.X, north.End.Y)
	}
	for _, ln := range lines {
		if ln.Start != center {
			t.Errorf("line at %v° does not start at center", ln.Angle)
		}
		// Boundary points of a 10x10 square centered at (5,5) are at
		// most the half-diagonal away.
		if d := ln.End.Distance(center); d > math.Sqrt2*5+1e-9 {
			t.Errorf("line at %v° escapes the square: distance %v", ln.Angle, d)
		}
	}
}

func TestEntranceLinesCount(t *testing.T) {
	center := geometry.Point2D{X: 5, Y: 5}
	lines := testEngine().EntranceLines(center, square, DefaultTransform())
	if len(lines) != EntranceCount {
		t.Fatalf("expected %d entrance lines, got %d", EntranceCount, len(lines))
	}
}

func TestZoneSectorPaths(t *testing.T) {
	e := testEngine()
	center := geometry.Point2D{X: 400, Y: 300}
	tf := Transform{Rotation: 0, Scale: 0.5, Opacity: 1}

	wedges := e.ZoneSectorPaths(center, tf)
	if len(wedges) != SectorCount {
		t.Fatalf("expected %d wedges, got %d", SectorCount, len(wedges))
	}

	outer := e.Config().BaseRadius * tf.Scale
	inner := outer * e.Config().InnerRingFraction
	for _, w := range wedges {
		if len(w.Outline) != 2*(e.Config().ArcSteps+1) {
			t.Fatalf("wedge %s outline has %d points", w.Name, len(w.Outline))
		}
		for _, p := range w.Outline {
			d := p.Distance(center)
			if d < inner-1e-6 || d > outer+1e-6 {
				t.Errorf("wedge %s point at distance %v outside ring [%v,%v]", w.Name, d, inner, outer)
			}
		}
	}
}

func TestDirectionLabelsInsideBoundary(t *testing.T) {
	// End-to-end scenario: 400x300 outline on an 800x600 canvas,
	// centered at (400,300).
	outline := []geometry.Point2D{
		{X: 200, Y: 150}, {X: 600, Y: 150}, {X: 600, Y: 450}, {X: 200, Y: 450},
	}
	center := geometry.PolygonCentroid(outline)
	if center.X != 400 || center.Y != 300 {
		t.Fatalf("centroid = %+v, want (400,300)", center)
	}

	labels := testEngine().DirectionLabels(center, outline, DefaultTransform())
	if len(labels) != SectorCount {
		t.Fatalf("expected %d labels, got %d", SectorCount, len(labels))
	}

	north := labels[0]
	if north.Text != "N" {
		t.Fatalf("labels[0] = %q, want N", north.Text)
	}
	if math.Abs(north.Anchor.X-400) > 1e-6 {
		t.Errorf("N anchor X = %v, want 400", north.Anchor.X)
	}
	if north.Anchor.Y <= 150 || north.Anchor.Y >= 300 {
		t.Errorf("N anchor Y = %v, want strictly between 150 and 300", north.Anchor.Y)
	}

	for _, l := range labels {
		if !geometry.PointInPolygon(l.Anchor, outline) {
			t.Errorf("label %s anchor %+v outside outline", l.Text, l.Anchor)
		}
	}
}

func TestCompassMarkers(t *testing.T) {
	center := geometry.Point2D{X: 5, Y: 5}
	markers := testEngine().CompassMarkers(center, square, DefaultTransform())
	if len(markers) != 4 {
		t.Fatalf("expected 4 markers, got %d", len(markers))
	}
	names := []string{"N", "E", "S", "W"}
	for i, m := range markers {
		if m.Text != names[i] {
			t.Errorf("marker %d = %q, want %q", i, m.Text, names[i])
		}
		if !geometry.PointInPolygon(m.Anchor, square) {
			t.Errorf("marker %s outside the outline", m.Text)
		}
	}
}

func TestDirectionalAreaBreakdown(t *testing.T) {
	e := testEngine()
	center := geometry.Point2D{X: 5, Y: 5}
	tf := DefaultTransform()

	breakdown := e.DirectionalAreaBreakdown(center, square, tf)
	if len(breakdown) != SectorCount {
		t.Fatalf("expected %d entries, got %d", SectorCount, len(breakdown))
	}

	var sum float64
	for _, s := range breakdown {
		if s.Percent < 0 {
			t.Errorf("sector %s has negative percent %v", s.Direction, s.Percent)
		}
		sum += s.Percent
	}
	if math.Abs(sum-100) > 1e-6 {
		t.Errorf("percentages sum to %v, want 100", sum)
	}

	// Symmetry of the square about its center: opposite sectors match.
	for i := 0; i < SectorCount/2; i++ {
		a, b := breakdown[i].Percent, breakdown[i+8].Percent
		if math.Abs(a-b) > 1e-6 {
			t.Errorf("sectors %s/%s differ: %v vs %v",
				breakdown[i].Direction, breakdown[i+8].Direction, a, b)
		}
	}
}

func TestDirectionalAreaBreakdownDegenerate(t *testing.T) {
	e := testEngine()
	tf := DefaultTransform()

	for _, poly := range [][]geometry.Point2D{nil, square[:2]} {
		breakdown := e.DirectionalAreaBreakdown(geometry.Point2D{}, poly, tf)
		for _, s := range breakdown {
			if s.Percent != 0 {
				t.Errorf("degenerate polygon: sector %s percent = %v, want 0", s.Direction, s.Percent)
			}
			if math.IsNaN(s.Percent) {
				t.Errorf("sector %s percent is NaN", s.Direction)
			}
		}
	}
}

func TestLayoutIdempotent(t *testing.T) {
	e := testEngine()
	center := geometry.Point2D{X: 5, Y: 5}
	tf := Transform{Rotation: 33.5, Scale: 1.2, Opacity: 0.6}

	a := e.Layout(center, square, tf, LayerAll)
	b := e.Layout(center, square, tf, LayerAll)
	if !reflect.DeepEqual(a, b) {
		t.Error("identical inputs produced different layouts")
	}
}

func TestLayoutLayerMask(t *testing.T) {
	e := testEngine()
	center := geometry.Point2D{X: 5, Y: 5}
	tf := DefaultTransform()

	ov := e.Layout(center, square, tf, LayerDirections|LayerCompass)
	if ov.Radials == nil || ov.DirectionLabels == nil || ov.Compass == nil {
		t.Error("requested layers missing from payload")
	}
	if ov.EntranceRays != nil || ov.EntranceLabels != nil || ov.Zones != nil || ov.Outline != nil {
		t.Error("unrequested layers present in payload")
	}
	if ov.Opacity != tf.Opacity {
		t.Errorf("opacity = %v, want %v", ov.Opacity, tf.Opacity)
	}
}

func TestLayoutRotationMovesLabels(t *testing.T) {
	e := testEngine()
	center := geometry.Point2D{X: 5, Y: 5}

	a := e.DirectionLabels(center, square, Transform{Rotation: 0, Scale: 1})
	b := e.DirectionLabels(center, square, Transform{Rotation: 90, Scale: 1})

	// After a 90° turn, N's anchor coincides with where E's anchor was.
	if math.Abs(a[4].Anchor.X-b[0].Anchor.X) > 1e-9 ||
		math.Abs(a[4].Anchor.Y-b[0].Anchor.Y) > 1e-9 {
		t.Errorf("rotated N anchor %+v, want E anchor %+v", b[0].Anchor, a[4].Anchor)
	}
}
