package chakra

import (
	"math"

	"vastu-chakra/pkg/geometry"
)

// CastToBoundary projects a ray from center at angleDeg plus the
// current rotation and returns the nearest intersection with the
// polygon's edge list, i.e. the first boundary crossing as seen from
// an interior center.
//
// Degenerate input is a defined fallback, never an error: when the
// polygon has fewer than 3 points, or no edge intersects the ray
// (center outside, self-intersecting outline), the result is the
// circle point center + fallbackRadius in the ray direction.
func CastToBoundary(center geometry.Point2D, angleDeg, rotation float64, polygon []geometry.Point2D, fallbackRadius float64) geometry.Point2D {
	dir := UnitVector(angleDeg + rotation)

	if len(polygon) < 3 {
		return center.Add(dir.Scale(fallbackRadius))
	}

	best := math.Inf(1)
	n := len(polygon)
	for i := 0; i < n; i++ {
		a := polygon[i]
		b := polygon[(i+1)%n]
		if t, ok := geometry.RaySegmentIntersection(center, dir, a, b); ok && t < best {
			best = t
		}
	}

	if math.IsInf(best, 1) {
		return center.Add(dir.Scale(fallbackRadius))
	}
	return center.Add(dir.Scale(best))
}
