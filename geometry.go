/*
 * geometry.go, part of guia.
 *
 *
 */

package guia

import (
	"math"

	"github.com/rmera/guia/xyz"
	matrix "github.com/skelterjohn/go.matrix"
	"gonum.org/v1/gonum/mat"
)

const appzero float64 = 0.000000000001 //used to compare floats to zero

//Centroid returns the geometric center of the vectors in m.
func Centroid(m *xyz.Matrix) *xyz.Matrix {
	n := m.NVecs()
	var x, y, z float64
	for i := 0; i < n; i++ {
		x += m.At(i, 0)
		y += m.At(i, 1)
		z += m.At(i, 2)
	}
	fn := float64(n)
	ret, _ := xyz.NewMatrix([]float64{x / fn, y / fn, z / fn}) //3 elements, can't fail
	return ret
}

//RigidFrame returns the rotation part of the local rigid frame defined by
//the backbone points n, ca and c: the 3x3 matrix whose columns are the unit
//vector from ca to c, the ca-to-n vector orthogonalized against the first,
//and their cross product. The frame origin is ca.
func RigidFrame(n, ca, c *xyz.Matrix) *mat.Dense {
	e1 := xyz.Zeros(1)
	e1.Sub(c.Dense, ca.Dense)
	e1.Unit(e1)
	e2 := xyz.Zeros(1)
	e2.Sub(n.Dense, ca.Dense)
	dot := e1.At(0, 0)*e2.At(0, 0) + e1.At(0, 1)*e2.At(0, 1) + e1.At(0, 2)*e2.At(0, 2)
	for k := 0; k < 3; k++ {
		e2.Set(0, k, e2.At(0, k)-dot*e1.At(0, k))
	}
	e2.Unit(e2)
	e3 := xyz.Zeros(1)
	e3.Cross(e1, e2)
	R := mat.NewDense(3, 3, nil)
	for k := 0; k < 3; k++ {
		R.Set(k, 0, e1.At(0, k))
		R.Set(k, 1, e2.At(0, k))
		R.Set(k, 2, e3.At(0, k))
	}
	return R
}

//RecoverAffine returns the linear part and the translation of the affine
//transform that takes the 4 points in from to the 4 points in to. Each
//coefficient is obtained as a signed ratio of 4x4 determinants over the
//matrix that holds the source points as columns on top of a row of ones
//(the simplex affine method). It errors if the source points are coplanar.
func RecoverAffine(from, to *xyz.Matrix) (*mat.Dense, *xyz.Matrix, error) {
	if from == nil || to == nil {
		return nil, nil, CError{string(ErrNilData), []string{"RecoverAffine"}}
	}
	if from.NVecs() != 4 || to.NVecs() != 4 {
		return nil, nil, CError{"guia: affine recovery needs exactly 4 points on each side", []string{"RecoverAffine"}}
	}
	b := make([]float64, 16)
	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			b[i*4+j] = from.At(j, i)
		}
	}
	for j := 12; j < 16; j++ {
		b[j] = 1
	}
	D := matrix.MakeDenseMatrix(b, 4, 4).Det()
	if math.Abs(D) < appzero {
		return nil, nil, CError{"guia: degenerate source frame, the 4 points are coplanar", []string{"RecoverAffine"}}
	}
	M := mat.NewDense(3, 4, nil)
	num := make([]float64, 16)
	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			//the numerator matrix is [to_i; b] with row j+1 deleted
			row := 0
			for k := 0; k < 5; k++ {
				if k == j+1 {
					continue
				}
				for col := 0; col < 4; col++ {
					if k == 0 {
						num[row*4+col] = to.At(col, i)
					} else {
						num[row*4+col] = b[(k-1)*4+col]
					}
				}
				row++
			}
			sign := 1.0
			if j%2 == 1 {
				sign = -1.0
			}
			M.Set(i, j, sign*matrix.MakeDenseMatrix(num, 4, 4).Det()/D)
		}
	}
	A := mat.NewDense(3, 3, nil)
	A.Copy(M.Slice(0, 3, 0, 3))
	t, _ := xyz.NewMatrix([]float64{M.At(0, 3), M.At(1, 3), M.At(2, 3)})
	return A, t, nil
}

//TransformAffine applies the affine transform given by the linear part A
//and the translation t to every point of m, returning a fresh matrix.
func TransformAffine(m *xyz.Matrix, A *mat.Dense, t *xyz.Matrix) *xyz.Matrix {
	out := xyz.Zeros(m.NVecs())
	out.Mul(m.Dense, A.T())
	out.AddVec(out, t)
	return out
}

//MaskExpand returns a copy of mask where every true entry has been expanded
//n positions in each direction.
func MaskExpand(mask []bool, n int) []bool {
	out := make([]bool, len(mask))
	copy(out, mask)
	for i, m := range mask {
		if !m {
			continue
		}
		lo := i - n
		if lo < 0 {
			lo = 0
		}
		hi := i + n
		if hi > len(mask)-1 {
			hi = len(mask) - 1
		}
		for j := lo; j <= hi; j++ {
			out[j] = true
		}
	}
	return out
}
