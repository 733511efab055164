package chakra

import (
	"math"

	"vastu-chakra/pkg/geometry"
)

// Transform is the externally controlled chakra transform. Rotation is
// added to every sector and entrance angle before projecting, Scale
// multiplies the nominal overlay radius, Opacity is consumed by the
// rendering collaborator only and never affects geometry.
type Transform struct {
	Rotation float64 // degrees, any real value, wrapped modularly
	Scale    float64 // positive multiplier
	Opacity  float64 // 0..1
}

// DefaultTransform returns the identity transform with full opacity.
func DefaultTransform() Transform {
	return Transform{Rotation: 0, Scale: 1, Opacity: 1}
}

// NormalizeAngle wraps an angle in degrees into [0, 360).
func NormalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// UnitVector returns the unit direction for an angle under the package
// convention: 0 degrees points up (negative image y), clockwise
// positive.
func UnitVector(angleDeg float64) geometry.Point2D {
	rad := angleDeg * math.Pi / 180
	return geometry.Point2D{X: math.Sin(rad), Y: -math.Cos(rad)}
}
