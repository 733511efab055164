package geometry

import "math"

// degenerateAreaEpsilon is the signed-area threshold below which a
// polygon is treated as collinear and the centroid falls back to the
// vertex mean.
const degenerateAreaEpsilon = 1e-3

// SignedArea computes the signed area of a polygon via the shoelace
// formula. Positive for counter-clockwise vertex order in a y-up frame
// (clockwise in image space, where y points down). Returns 0 for fewer
// than 3 points.
func SignedArea(points []Point2D) float64 {
	if len(points) < 3 {
		return 0
	}
	var sum float64
	n := len(points)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += points[i].X*points[j].Y - points[j].X*points[i].Y
	}
	return sum / 2
}

// Area computes the non-negative area of a polygon. Returns 0 for
// fewer than 3 points. Used for display and statistics only.
func Area(points []Point2D) float64 {
	return math.Abs(SignedArea(points))
}

// PolygonCentroid computes the area-weighted centroid of a polygon.
// Degenerate input never fails:
//   - empty input returns (0,0)
//   - fewer than 3 points returns the arithmetic mean
//   - near-zero signed area (collinear vertices) returns the arithmetic mean
//
// The result is invariant to vertex winding order: the sign of the
// area cancels in the centroid terms.
func PolygonCentroid(points []Point2D) Point2D {
	if len(points) == 0 {
		return Point2D{}
	}
	if len(points) < 3 {
		return Centroid(points)
	}

	a := SignedArea(points)
	if math.Abs(a) < degenerateAreaEpsilon {
		return Centroid(points)
	}

	var cx, cy float64
	n := len(points)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := points[i].X*points[j].Y - points[j].X*points[i].Y
		cx += (points[i].X + points[j].X) * cross
		cy += (points[i].Y + points[j].Y) * cross
	}

	f := 1 / (6 * a)
	return Point2D{X: cx * f, Y: cy * f}
}

// RaySegmentIntersection intersects the ray origin + t*dir (t >= 0)
// with the segment a-b (u in [0,1]) by solving the standard 2x2 linear
// system. dir is expected to be a unit vector, so the returned t is
// the distance from the origin to the intersection. Near-parallel
// configurations where the determinant magnitude is below 1e-10 report
// no intersection.
func RaySegmentIntersection(origin, dir, a, b Point2D) (t float64, ok bool) {
	ex := b.X - a.X
	ey := b.Y - a.Y

	// origin + t*dir = a + u*edge
	det := dir.X*(-ey) - dir.Y*(-ex)
	if math.Abs(det) < 1e-10 {
		return 0, false
	}

	dx := a.X - origin.X
	dy := a.Y - origin.Y

	t = (dx*(-ey) - dy*(-ex)) / det
	u := (dir.X*dy - dir.Y*dx) / det

	if t < 0 || u < 0 || u > 1 {
		return 0, false
	}
	return t, true
}

// PointInPolygon tests if a point is inside a polygon using ray casting.
func PointInPolygon(p Point2D, polygon []Point2D) bool {
	if len(polygon) < 3 {
		return false
	}

	inside := false
	n := len(polygon)

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		pi, pj := polygon[i], polygon[j]

		// Check if ray from p going right intersects edge pi-pj
		if ((pi.Y > p.Y) != (pj.Y > p.Y)) &&
			(p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X) {
			inside = !inside
		}
	}

	return inside
}

// CrossProduct computes the cross product of vectors OA and OB.
func CrossProduct(o, a, b Point2D) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}
