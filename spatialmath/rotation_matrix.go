package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// RotationMatrix is a 3x3 rotation matrix stored row major. A valid
// RotationMatrix is orthonormal with determinant +1; constructors derive it
// from a unit quaternion, which guarantees that up to floating point error.
type RotationMatrix struct {
	mat [9]float64
}

// NewRotationMatrixFromQuaternion converts a unit quaternion into its rotation
// matrix. The caller is responsible for supplying a unit quaternion; a
// quaternion of non-unit norm produces a matrix that scales or collapses
// space rather than rotating it.
func NewRotationMatrixFromQuaternion(q quat.Number) *RotationMatrix {
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	return &RotationMatrix{[9]float64{
		1 - 2*y*y - 2*z*z, 2*x*y - 2*w*z, 2*x*z + 2*w*y,
		2*x*y + 2*w*z, 1 - 2*x*x - 2*z*z, 2*y*z - 2*w*x,
		2*x*z - 2*w*y, 2*y*z + 2*w*x, 1 - 2*x*x - 2*y*y,
	}}
}

// NewZeroRotationMatrix returns the identity rotation.
func NewZeroRotationMatrix() *RotationMatrix {
	return &RotationMatrix{[9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}}
}

// At returns the value at the given row and column.
func (rm *RotationMatrix) At(row, col int) float64 {
	return rm.mat[row*3+col]
}

// Row returns the a vector with the given row of the matrix.
func (rm *RotationMatrix) Row(row int) r3.Vector {
	return r3.Vector{X: rm.mat[row*3], Y: rm.mat[row*3+1], Z: rm.mat[row*3+2]}
}

// Col returns the a vector with the given column of the matrix.
func (rm *RotationMatrix) Col(col int) r3.Vector {
	return r3.Vector{X: rm.mat[col], Y: rm.mat[3+col], Z: rm.mat[6+col]}
}

// Transpose returns a new matrix which is the transpose of this one. For a
// rotation matrix the transpose is also the inverse.
func (rm *RotationMatrix) Transpose() *RotationMatrix {
	return &RotationMatrix{[9]float64{
		rm.mat[0], rm.mat[3], rm.mat[6],
		rm.mat[1], rm.mat[4], rm.mat[7],
		rm.mat[2], rm.mat[5], rm.mat[8],
	}}
}

// Mul returns the matrix product rm * other as a new matrix.
func (rm *RotationMatrix) Mul(other *RotationMatrix) *RotationMatrix {
	var out [9]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i*3+j] = rm.Row(i).Dot(other.Col(j))
		}
	}
	return &RotationMatrix{out}
}

// Apply rotates the given vector, returning a new vector.
func (rm *RotationMatrix) Apply(v r3.Vector) r3.Vector {
	return r3.Vector{X: rm.Row(0).Dot(v), Y: rm.Row(1).Dot(v), Z: rm.Row(2).Dot(v)}
}

// Det returns the determinant, which is 1 for any true rotation.
func (rm *RotationMatrix) Det() float64 {
	m := rm.mat
	return m[0]*(m[4]*m[8]-m[5]*m[7]) -
		m[1]*(m[3]*m[8]-m[5]*m[6]) +
		m[2]*(m[3]*m[7]-m[4]*m[6])
}

// OrthonormalityError returns the largest absolute deviation of transpose(R)*R
// from the identity, a cheap measure of how far the matrix has strayed from
// being a rotation.
func (rm *RotationMatrix) OrthonormalityError() float64 {
	prod := rm.Transpose().Mul(rm)
	ident := NewZeroRotationMatrix()
	var worst float64
	for i := range prod.mat {
		if dev := math.Abs(prod.mat[i] - ident.mat[i]); dev > worst {
			worst = dev
		}
	}
	return worst
}

// Quaternion recovers the unit quaternion encoded by the matrix, branching on
// the largest diagonal term for numerical stability.
func (rm *RotationMatrix) Quaternion() quat.Number {
	m := rm.mat
	trace := m[0] + m[4] + m[8]
	switch {
	case trace > 0:
		s := 2 * math.Sqrt(trace+1)
		return Normalize(quat.Number{
			Real: 0.25 * s,
			Imag: (m[7] - m[5]) / s,
			Jmag: (m[2] - m[6]) / s,
			Kmag: (m[3] - m[1]) / s,
		})
	case m[0] > m[4] && m[0] > m[8]:
		s := 2 * math.Sqrt(1+m[0]-m[4]-m[8])
		return Normalize(quat.Number{
			Real: (m[7] - m[5]) / s,
			Imag: 0.25 * s,
			Jmag: (m[1] + m[3]) / s,
			Kmag: (m[2] + m[6]) / s,
		})
	case m[4] > m[8]:
		s := 2 * math.Sqrt(1+m[4]-m[0]-m[8])
		return Normalize(quat.Number{
			Real: (m[2] - m[6]) / s,
			Imag: (m[1] + m[3]) / s,
			Jmag: 0.25 * s,
			Kmag: (m[5] + m[7]) / s,
		})
	default:
		s := 2 * math.Sqrt(1+m[8]-m[0]-m[4])
		return Normalize(quat.Number{
			Real: (m[3] - m[1]) / s,
			Imag: (m[2] + m[6]) / s,
			Jmag: (m[5] + m[7]) / s,
			Kmag: 0.25 * s,
		})
	}
}

// RotationMatrixAlmostEqual reports whether two matrices agree elementwise
// within tol.
func RotationMatrixAlmostEqual(a, b *RotationMatrix, tol float64) bool {
	for i := range a.mat {
		if math.Abs(a.mat[i]-b.mat[i]) > tol {
			return false
		}
	}
	return true
}
