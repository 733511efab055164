package app

import (
	"math"
	"testing"

	"vastu-chakra/internal/chakra"
	"vastu-chakra/pkg/geometry"
)

func tracedSquare(s *State) {
	s.AddPoint(geometry.Point2D{X: 0, Y: 0})
	s.AddPoint(geometry.Point2D{X: 10, Y: 0})
	s.AddPoint(geometry.Point2D{X: 10, Y: 10})
	s.AddPoint(geometry.Point2D{X: 0, Y: 10})
}

func TestCompletePolygonComputesCentroid(t *testing.T) {
	s := NewState()
	tracedSquare(s)

	if !s.CompletePolygon() {
		t.Fatal("CompletePolygon returned false for four points")
	}
	if !s.HasOutline {
		t.Fatal("HasOutline not set")
	}
	if math.Abs(s.Center.X-5) > 1e-9 || math.Abs(s.Center.Y-5) > 1e-9 {
		t.Errorf("centroid = %v, want (5, 5)", s.Center)
	}
}

func TestCompletePolygonNeedsThreePoints(t *testing.T) {
	s := NewState()
	s.AddPoint(geometry.Point2D{X: 0, Y: 0})
	s.AddPoint(geometry.Point2D{X: 10, Y: 0})

	if s.CompletePolygon() {
		t.Fatal("CompletePolygon accepted two points")
	}
	if s.HasOutline {
		t.Error("HasOutline set without a polygon")
	}
}

func TestAddPointAfterCompletionStartsFresh(t *testing.T) {
	s := NewState()
	tracedSquare(s)
	s.CompletePolygon()

	s.AddPoint(geometry.Point2D{X: 50, Y: 50})

	if s.HasOutline {
		t.Error("outline should be discarded when tracing restarts")
	}
	if got := s.PendingPoints(); len(got) != 1 || got[0] != (geometry.Point2D{X: 50, Y: 50}) {
		t.Errorf("pending points = %v, want just the new point", got)
	}
}

func TestClearOutlineClearsCenterToo(t *testing.T) {
	s := NewState()
	tracedSquare(s)
	s.CompletePolygon()

	s.ClearOutline()

	if s.HasOutline || len(s.Outline) != 0 || len(s.Points) != 0 {
		t.Error("outline state not fully cleared")
	}
	if s.Center != (geometry.Point2D{}) {
		t.Errorf("center = %v, want zero", s.Center)
	}
}

func TestTransformSetters(t *testing.T) {
	s := NewState()

	s.SetRotation(450)
	if s.Transform.Rotation != 90 {
		t.Errorf("rotation = %v, want 90", s.Transform.Rotation)
	}

	s.SetScale(-1)
	if s.Transform.Scale != chakra.DefaultTransform().Scale {
		t.Errorf("negative scale should be ignored, got %v", s.Transform.Scale)
	}
	s.SetScale(1.5)
	if s.Transform.Scale != 1.5 {
		t.Errorf("scale = %v, want 1.5", s.Transform.Scale)
	}

	s.SetOpacity(2)
	if s.Transform.Opacity != 1 {
		t.Errorf("opacity = %v, want clamp to 1", s.Transform.Opacity)
	}
	s.SetOpacity(-0.5)
	if s.Transform.Opacity != 0 {
		t.Errorf("opacity = %v, want clamp to 0", s.Transform.Opacity)
	}
}

func TestToggleLayer(t *testing.T) {
	s := NewState()

	layers := s.ToggleLayer(chakra.LayerZones)
	if layers.Has(chakra.LayerZones) {
		t.Error("zones should be off after toggling from LayerAll")
	}
	if !layers.Has(chakra.LayerDirections) {
		t.Error("other layers should be untouched")
	}

	layers = s.ToggleLayer(chakra.LayerZones)
	if !layers.Has(chakra.LayerZones) {
		t.Error("zones should be back on after second toggle")
	}
}

func TestEvents(t *testing.T) {
	s := NewState()

	var outlineEvents, transformEvents int
	s.On(EventOutlineChanged, func(interface{}) { outlineEvents++ })
	s.On(EventTransformChanged, func(interface{}) { transformEvents++ })

	tracedSquare(s)
	s.CompletePolygon()
	s.SetRotation(15)

	if outlineEvents != 5 {
		t.Errorf("outline events = %d, want 5 (four points + completion)", outlineEvents)
	}
	if transformEvents != 1 {
		t.Errorf("transform events = %d, want 1", transformEvents)
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	s := NewState()
	tracedSquare(s)
	s.CompletePolygon()

	outline, center, _, _, ok := s.Snapshot()
	if !ok {
		t.Fatal("snapshot should report a completed outline")
	}
	if center != s.Center {
		t.Errorf("snapshot center = %v, want %v", center, s.Center)
	}

	outline[0] = geometry.Point2D{X: -1, Y: -1}
	if s.Outline[0] == (geometry.Point2D{X: -1, Y: -1}) {
		t.Error("mutating the snapshot outline leaked into state")
	}
}
