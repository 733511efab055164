// Package app provides application lifecycle management, shared state,
// and events.
package app

import (
	"sync"

	"vastu-chakra/internal/chakra"
	"vastu-chakra/internal/plan"
	"vastu-chakra/pkg/geometry"
)

// State holds the application state: the loaded plan, the plot outline
// being traced, and the overlay configuration.
type State struct {
	mu sync.RWMutex

	// Floor plan
	Plan *plan.Layer

	// Outline tracing. Points accumulate while the user clicks; once
	// CompletePolygon freezes them, Outline and Center are set and
	// HasOutline is true.
	Points     []geometry.Point2D
	Outline    []geometry.Point2D
	Center     geometry.Point2D
	HasOutline bool

	// Overlay configuration
	Transform chakra.Transform
	Layers    chakra.Layer

	// Event listeners
	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventPlanLoaded EventType = iota
	EventOutlineChanged
	EventTransformChanged
	EventLayersChanged
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewState creates a new application state with the default overlay
// configuration and all layers visible.
func NewState() *State {
	return &State{
		Transform: chakra.DefaultTransform(),
		Layers:    chakra.LayerAll,
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// LoadPlan loads a floor plan image from the specified path.
func (s *State) LoadPlan(path string) error {
	layer, err := plan.Load(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.Plan = layer
	// A new plan invalidates any outline traced on the old one.
	s.Points = nil
	s.Outline = nil
	s.Center = geometry.Point2D{}
	s.HasOutline = false
	s.mu.Unlock()

	s.Emit(EventPlanLoaded, layer)
	s.Emit(EventOutlineChanged, nil)
	return nil
}

// SetPlan installs an already decoded plan layer. Used by headless
// callers and tests.
func (s *State) SetPlan(layer *plan.Layer) {
	s.mu.Lock()
	s.Plan = layer
	s.Points = nil
	s.Outline = nil
	s.Center = geometry.Point2D{}
	s.HasOutline = false
	s.mu.Unlock()

	s.Emit(EventPlanLoaded, layer)
	s.Emit(EventOutlineChanged, nil)
}

// AddPoint appends a vertex to the outline being traced. Clicking
// after a completed outline starts a fresh selection.
func (s *State) AddPoint(p geometry.Point2D) {
	s.mu.Lock()
	if s.HasOutline {
		s.Points = nil
		s.Outline = nil
		s.Center = geometry.Point2D{}
		s.HasOutline = false
	}
	s.Points = append(s.Points, p)
	s.mu.Unlock()

	s.Emit(EventOutlineChanged, p)
}

// CompletePolygon freezes the traced points as the plot outline and
// computes its centroid. Returns false if fewer than three points
// have been placed.
func (s *State) CompletePolygon() bool {
	s.mu.Lock()
	if len(s.Points) < 3 {
		s.mu.Unlock()
		return false
	}
	s.Outline = append([]geometry.Point2D(nil), s.Points...)
	s.Center = geometry.PolygonCentroid(s.Outline)
	s.HasOutline = true
	s.mu.Unlock()

	s.Emit(EventOutlineChanged, nil)
	return true
}

// ClearOutline discards the traced points and any completed outline.
// The outline and its centroid are always cleared together.
func (s *State) ClearOutline() {
	s.mu.Lock()
	s.Points = nil
	s.Outline = nil
	s.Center = geometry.Point2D{}
	s.HasOutline = false
	s.mu.Unlock()

	s.Emit(EventOutlineChanged, nil)
}

// SetRotation updates the overlay rotation, normalized into [0, 360).
func (s *State) SetRotation(deg float64) {
	s.mu.Lock()
	s.Transform.Rotation = chakra.NormalizeAngle(deg)
	tf := s.Transform
	s.mu.Unlock()

	s.Emit(EventTransformChanged, tf)
}

// SetScale updates the overlay scale factor. Non-positive values are
// ignored.
func (s *State) SetScale(scale float64) {
	if scale <= 0 {
		return
	}
	s.mu.Lock()
	s.Transform.Scale = scale
	tf := s.Transform
	s.mu.Unlock()

	s.Emit(EventTransformChanged, tf)
}

// SetOpacity updates the overlay opacity, clamped to [0, 1].
func (s *State) SetOpacity(opacity float64) {
	if opacity < 0 {
		opacity = 0
	} else if opacity > 1 {
		opacity = 1
	}
	s.mu.Lock()
	s.Transform.Opacity = opacity
	tf := s.Transform
	s.mu.Unlock()

	s.Emit(EventTransformChanged, tf)
}

// SetLayers replaces the visible layer mask.
func (s *State) SetLayers(layers chakra.Layer) {
	s.mu.Lock()
	s.Layers = layers
	s.mu.Unlock()

	s.Emit(EventLayersChanged, layers)
}

// ToggleLayer flips one layer bit and returns the new mask.
func (s *State) ToggleLayer(layer chakra.Layer) chakra.Layer {
	s.mu.Lock()
	s.Layers ^= layer
	layers := s.Layers
	s.mu.Unlock()

	s.Emit(EventLayersChanged, layers)
	return layers
}

// Snapshot returns a consistent copy of the fields the overlay and
// export pipelines consume.
func (s *State) Snapshot() (outline []geometry.Point2D, center geometry.Point2D, tf chakra.Transform, layers chakra.Layer, hasOutline bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	outline = append([]geometry.Point2D(nil), s.Outline...)
	return outline, s.Center, s.Transform, s.Layers, s.HasOutline
}

// PendingPoints returns a copy of the points traced so far, including
// before the polygon is completed.
func (s *State) PendingPoints() []geometry.Point2D {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]geometry.Point2D(nil), s.Points...)
}
