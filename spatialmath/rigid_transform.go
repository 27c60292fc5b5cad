package spatialmath

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// RigidTransform is a 3x4 rigid-body mapping [R | t] from a local coordinate
// frame into a reference frame: rotation followed by translation. Transforms
// are immutable; every operation returns a freshly constructed value and
// never aliases its inputs, so they are safe to share across goroutines.
type RigidTransform struct {
	rotation    *RotationMatrix
	translation r3.Vector
}

// NewRigidTransform encodes a pose sample (position in meters, orientation as
// a unit quaternion) into a rigid transform. The quaternion must already be
// unit norm; no normalization happens here.
func NewRigidTransform(point r3.Vector, orientation quat.Number) *RigidTransform {
	return &RigidTransform{
		rotation:    NewRotationMatrixFromQuaternion(orientation),
		translation: point,
	}
}

// NewZeroRigidTransform returns the identity transform.
func NewZeroRigidTransform() *RigidTransform {
	return &RigidTransform{rotation: NewZeroRotationMatrix()}
}

// NewRigidTransformFromPoint returns a pure translation with identity
// orientation.
func NewRigidTransformFromPoint(point r3.Vector) *RigidTransform {
	return &RigidTransform{rotation: NewZeroRotationMatrix(), translation: point}
}

// Point returns the translation component.
func (t *RigidTransform) Point() r3.Vector {
	return t.translation
}

// Rotation returns the rotation component.
func (t *RigidTransform) Rotation() *RotationMatrix {
	return t.rotation
}

// Quaternion returns the orientation encoded by the rotation component.
func (t *RigidTransform) Quaternion() quat.Number {
	return t.rotation.Quaternion()
}

// At returns the element at the given row and column of the 3x4 matrix;
// column 3 is the translation.
func (t *RigidTransform) At(row, col int) float64 {
	if col == 3 {
		switch row {
		case 0:
			return t.translation.X
		case 1:
			return t.translation.Y
		default:
			return t.translation.Z
		}
	}
	return t.rotation.At(row, col)
}

// Invert returns the inverse mapping. Because the rotation block is
// orthonormal its inverse is its transpose, and the inverse translation is
// the transposed rotation applied to the negated translation. The transpose
// must be taken first; applying the original rotation here yields a transform
// for the wrong frame.
func Invert(t *RigidTransform) *RigidTransform {
	rotInv := t.rotation.Transpose()
	return &RigidTransform{
		rotation:    rotInv,
		translation: rotInv.Apply(t.translation.Mul(-1)),
	}
}

// Compose returns the transform a * b, the result of applying b's mapping
// first and then a's: it maps b's local frame into a's reference frame.
// Rotation is the matrix product R_a * R_b; translation is t_a + R_a * t_b.
// Swapping the operands silently produces a transform for the wrong
// reference frame.
func Compose(a, b *RigidTransform) *RigidTransform {
	return &RigidTransform{
		rotation:    a.rotation.Mul(b.rotation),
		translation: a.translation.Add(a.rotation.Apply(b.translation)),
	}
}

// RigidTransformAlmostEqual reports whether two transforms agree within tol
// in every rotation element and translation coordinate.
func RigidTransformAlmostEqual(a, b *RigidTransform, tol float64) bool {
	return RotationMatrixAlmostEqual(a.rotation, b.rotation, tol) &&
		a.translation.Sub(b.translation).Norm() <= tol
}
