// Package spatialmath defines the rigid transform algebra used to express the
// pose of one tracked body in the local coordinate frame of another.
package spatialmath

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/num/quat"
)

// Quaternions with a norm below this cannot be trusted to encode an
// orientation at all.
const minQuatNorm = 1e-8

// NewQuaternion returns a quaternion from its scalar-first (w, x, y, z)
// components, the component order used by tracking providers.
func NewQuaternion(w, x, y, z float64) quat.Number {
	return quat.Number{Real: w, Imag: x, Jmag: y, Kmag: z}
}

// Normalize scales a quaternion to unit norm. A quaternion too close to zero
// to normalize becomes the identity rotation.
func Normalize(q quat.Number) quat.Number {
	norm := quat.Abs(q)
	if norm < minQuatNorm {
		return quat.Number{Real: 1}
	}
	return quat.Scale(1/norm, q)
}

// Flip will multiply a quaternion by -1, returning a quaternion representing the same orientation but in the opposing octant.
func Flip(q quat.Number) quat.Number {
	return quat.Number{Real: -q.Real, Imag: -q.Imag, Jmag: -q.Jmag, Kmag: -q.Kmag}
}

// QuaternionAlmostEqual reports whether two quaternions represent the same
// orientation within tol, treating q and -q as equal.
func QuaternionAlmostEqual(a, b quat.Number, tol float64) bool {
	return quatComponentsWithin(a, b, tol) || quatComponentsWithin(a, Flip(b), tol)
}

func quatComponentsWithin(a, b quat.Number, tol float64) bool {
	return scalar.EqualWithinAbs(a.Real, b.Real, tol) &&
		scalar.EqualWithinAbs(a.Imag, b.Imag, tol) &&
		scalar.EqualWithinAbs(a.Jmag, b.Jmag, tol) &&
		scalar.EqualWithinAbs(a.Kmag, b.Kmag, tol)
}

// QuatIsUnit reports whether q has unit norm within tol.
func QuatIsUnit(q quat.Number, tol float64) bool {
	return math.Abs(quat.Abs(q)-1) <= tol
}
