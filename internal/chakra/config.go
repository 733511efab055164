package chakra

// Config enumerates every recognized layout option and its default.
// A single explicit struct replaces ad hoc per-call option bags.
type Config struct {
	// BaseRadius is the nominal overlay radius in image pixels before
	// the Transform scale is applied. It bounds the circle fallback
	// when no polygon boundary is available and sizes the zone ring.
	BaseRadius float64

	// InnerRingFraction is the inner radius of the zone wedges as a
	// fraction of the (scaled) base radius.
	InnerRingFraction float64

	// DirectionLabelFraction places direction labels this fraction of
	// the way from the center to the boundary, keeping them inside
	// the plot.
	DirectionLabelFraction float64

	// EntranceLabelFraction places entrance codes near the boundary.
	EntranceLabelFraction float64

	// CompassFraction places the four N/E/S/W markers.
	CompassFraction float64

	// ArcSteps is the number of segments used to approximate one
	// sector's arc in zone wedge outlines.
	ArcSteps int
}

// DefaultConfig returns the standard layout configuration.
func DefaultConfig() Config {
	return Config{
		BaseRadius:             220,
		InnerRingFraction:      0.35,
		DirectionLabelFraction: 0.72,
		EntranceLabelFraction:  0.82,
		CompassFraction:        0.9,
		ArcSteps:               6,
	}
}

// Layer is a bitmask of overlay layers to compute and draw. A single
// mask replaces independent per-layer show/hide booleans.
type Layer uint8

const (
	LayerDirections Layer = 1 << iota
	LayerEntrances
	LayerZones
	LayerCompass
	LayerOutline
)

// LayerAll enables every overlay layer.
const LayerAll = LayerDirections | LayerEntrances | LayerZones | LayerCompass | LayerOutline

// Has reports whether the mask includes the given layer.
func (l Layer) Has(layer Layer) bool {
	return l&layer != 0
}
