// Package orient suggests an overlay rotation from the shape of the
// building outline.
package orient

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"vastu-chakra/pkg/geometry"
)

// SuggestRotation returns the clockwise rotation in degrees that aligns
// the chakra's north axis with the outline's principal axis, computed
// from the eigen decomposition of the vertex covariance matrix.
//
// The axis is undirected, so the result is folded into (-90, 90]: the
// smallest turn that lines the overlay up with the building's dominant
// direction. Outlines with fewer than 3 vertices, or with no dominant
// axis, suggest 0.
func SuggestRotation(points []geometry.Point2D) float64 {
	if len(points) < 3 {
		return 0
	}

	data := mat.NewDense(len(points), 2, nil)
	for i, p := range points {
		data.Set(i, 0, p.X)
		data.Set(i, 1, p.Y)
	}

	var cov mat.SymDense
	stat.CovarianceMatrix(&cov, data, nil)

	var eig mat.EigenSym
	if !eig.Factorize(&cov, true) {
		return 0
	}

	vals := eig.Values(nil)
	// Eigenvalues come back in ascending order; the principal axis is
	// the last column. A near-isotropic vertex cloud has no meaningful
	// axis.
	if vals[1] < 1e-9 || vals[0]/vals[1] > 0.999 {
		return 0
	}

	var vecs mat.Dense
	eig.VectorsTo(&vecs)
	vx := vecs.At(0, 1)
	vy := vecs.At(1, 1)

	// Compass angle of the axis: 0 = up, clockwise positive, image y down.
	angle := math.Atan2(vx, -vy) * 180 / math.Pi

	// Fold the undirected axis into (-90, 90].
	for angle > 90 {
		angle -= 180
	}
	for angle <= -90 {
		angle += 180
	}
	return angle
}
