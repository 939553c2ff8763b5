package guia

import (
	"log"
	"math"

	"github.com/rmera/guia/xyz"
	"gonum.org/v1/gonum/mat"
)

//GyrationTensor returns the gyration tensor of the points in m: the 3x3
//covariance of the coordinates around their centroid.
func GyrationTensor(m *xyz.Matrix) *mat.SymDense {
	n := m.NVecs()
	c := Centroid(m)
	t := mat.NewSymDense(3, nil)
	var d [3]float64
	for i := 0; i < n; i++ {
		for k := 0; k < 3; k++ {
			d[k] = m.At(i, k) - c.At(0, k)
		}
		for a := 0; a < 3; a++ {
			for b := a; b < 3; b++ {
				t.SetSym(a, b, t.At(a, b)+d[a]*d[b])
			}
		}
	}
	t.ScaleSym(1/float64(n), t)
	return t
}

//GyrationRadii returns the radii of gyration of the points in m along the
//3 axes: the square roots of the diagonal of the gyration tensor or, with
//principal set, of its eigenvalues, in ascending order.
func GyrationRadii(m *xyz.Matrix, principal bool) ([3]float64, error) {
	t := GyrationTensor(m)
	var r [3]float64
	if !principal {
		for i := 0; i < 3; i++ {
			r[i] = math.Sqrt(t.At(i, i))
		}
		return r, nil
	}
	var eig mat.EigenSym
	if ok := eig.Factorize(t, false); !ok {
		return r, CError{"guia: could not diagonalize the gyration tensor", []string{"GyrationRadii"}}
	}
	vals := eig.Values(nil) //ascending
	for i, v := range vals {
		r[i] = math.Sqrt(v)
	}
	return r, nil
}

//Rgs pushes the per-axis radii of gyration of the Cα trace toward given
//targets, shaping the overall dimensions of a structure. The score is the
//negated, weighted sum of the squared deviations from the targets; a NaN
//target leaves its axis unconstrained. With principal set the radii (and
//the targets) refer to the principal axes of the structure, smallest first,
//so the constraint is independent of the orientation.
type Rgs struct {
	targets   [3]float64
	principal bool
	weight    float64
}

//NewRgs returns an Rgs with targets rgx, rgy and rgz. At least one target
//must be a number.
func NewRgs(rgx, rgy, rgz float64, principal bool, weight float64) (*Rgs, error) {
	if math.IsNaN(rgx) && math.IsNaN(rgy) && math.IsNaN(rgz) {
		return nil, CError{"guia: at least one target gyration radius is needed", []string{"NewRgs"}}
	}
	return &Rgs{targets: [3]float64{rgx, rgy, rgz}, principal: principal, weight: weight}, nil
}

func (P *Rgs) Compute(s *Structure, ctx *Context) (float64, error) {
	if s == nil {
		return 0, CError{string(ErrNilData), []string{"Rgs.Compute"}}
	}
	r, err := GyrationRadii(s.CAlphas(), P.principal)
	if err != nil {
		return 0, errDecorate(err, "Rgs.Compute")
	}
	var pot float64
	for i, t := range P.targets {
		if math.IsNaN(t) {
			continue
		}
		d := r[i] - t
		pot -= d * d
	}
	log.Printf("Rgs guiding potential: radii %.2f %.2f %.2f, potential %.3f", r[0], r[1], r[2], pot)
	return P.weight * pot, nil
}
