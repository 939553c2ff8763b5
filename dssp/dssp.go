/*
 * dssp.go, part of guia.
 *
 *
 */

//Package dssp assigns soft backbone-backbone hydrogen bonds from atomic
//coordinates. It implements the electrostatic criterion of Kabsch and
//Sander (the one behind the DSSP program) with the hard energy cutoff
//replaced by a sinusoidal switch, so the resulting [0,1] bond map stays
//differentiable with respect to the coordinates.
package dssp

import (
	"fmt"
	"math"

	"github.com/rmera/guia"
	"github.com/rmera/guia/xyz"
	"gonum.org/v1/gonum/mat"
)

const (
	nhBond = 1.01  //amide N-H bond length, in A
	q1q2   = 0.084 //Kabsch-Sander partial-charge product, in e^2
	fconv  = 332   //electrostatic conversion factor, kcal*A/(mol*e^2)
	cutoff = -0.5  //bond energy threshold, in kcal/mol
	margin = 1.0   //half-width of the smoothing window below cutoff
)

//Mapper produces soft backbone hydrogen-bond maps. The zero value is ready
//to use, and satisfies the HBondMapper interface of the parent package.
type Mapper struct{}

//HBondMap returns an LxL matrix whose (i,j) entry is the degree, in [0,1],
//to which the amide group of residue i donates a hydrogen bond to the
//carbonyl group of residue j. The first residue has no amide hydrogen and
//the carbonyl of the last residue is not taken as an acceptor, so the first
//row and the last column are zero, as is the whole |i-j|<=2 band. Each
//matrix must have one row per residue, and the oxygens can not have NaNs
//(reconstruct them first).
func (M Mapper) HBondMap(n, ca, c, o *xyz.Matrix) (*mat.Dense, error) {
	e, err := Energies(n, ca, c, o)
	if err != nil {
		return nil, errDecorate(err, "HBondMap")
	}
	r := n.NVecs()
	m := mat.NewDense(r, r, nil)
	for i := 1; i < r; i++ {
		for j := 0; j < r-1; j++ {
			if d := i - j; d >= -2 && d <= 2 {
				continue
			}
			m.Set(i, j, soft(e.At(i, j)))
		}
	}
	return m, nil
}

//Energies returns the LxL matrix of Kabsch-Sander electrostatic energies,
//in kcal/mol, between the amide group of residue i (rows) and the carbonyl
//group of residue j (columns). The first row is zero, as the first residue
//has no amide hydrogen. Entries at or below about -0.5 kcal/mol indicate
//a hydrogen bond.
func Energies(n, ca, c, o *xyz.Matrix) (*mat.Dense, error) {
	if o == nil {
		return nil, Error{"dssp: nil coordinates given", []string{"Energies"}}
	}
	h, err := Hydrogens(n, ca, c)
	if err != nil {
		return nil, errDecorate(err, "Energies")
	}
	r := n.NVecs()
	if o.NVecs() != r {
		return nil, Error{fmt.Sprintf("dssp: %d oxygen rows for %d residues", o.NVecs(), r), []string{"Energies"}}
	}
	for i := 0; i < r; i++ {
		if math.IsNaN(o.At(i, 0)) {
			return nil, Error{fmt.Sprintf("dssp: missing backbone oxygen on residue %d", i), []string{"Energies"}}
		}
	}
	e := mat.NewDense(r, r, nil)
	for i := 1; i < r; i++ {
		for j := 0; j < r; j++ {
			don := o.Dist(j, n, i)
			dch := c.Dist(j, h, i)
			doh := o.Dist(j, h, i)
			dcn := c.Dist(j, n, i)
			e.Set(i, j, q1q2*fconv*(1/don+1/dch-1/doh-1/dcn))
		}
	}
	return e, nil
}

//Hydrogens returns the idealized amide hydrogen positions for a backbone
//given as per-residue N, CA and C coordinate matrices. The hydrogen of
//residue i sits 1.01 A from its nitrogen, along the bisector of the unit
//vectors pointing from the preceding carbonyl carbon and from the alpha
//carbon towards the nitrogen. The first residue has no preceding carbon,
//so its row is NaN.
func Hydrogens(n, ca, c *xyz.Matrix) (*xyz.Matrix, error) {
	if n == nil || ca == nil || c == nil {
		return nil, Error{"dssp: nil coordinates given", []string{"Hydrogens"}}
	}
	r := n.NVecs()
	if ca.NVecs() != r || c.NVecs() != r {
		return nil, Error{fmt.Sprintf("dssp: mismatched backbone matrices, %d N, %d CA and %d C rows", r, ca.NVecs(), c.NVecs()), []string{"Hydrogens"}}
	}
	h := xyz.Zeros(r)
	for k := 0; k < 3; k++ {
		h.Set(0, k, math.NaN())
	}
	for i := 1; i < r; i++ {
		var u, v, w [3]float64
		for k := 0; k < 3; k++ {
			u[k] = n.At(i, k) - c.At(i-1, k)
			v[k] = n.At(i, k) - ca.At(i, k)
		}
		u = unit3(u)
		v = unit3(v)
		for k := 0; k < 3; k++ {
			w[k] = u[k] + v[k]
		}
		w = unit3(w)
		for k := 0; k < 3; k++ {
			h.Set(i, k, n.At(i, k)+nhBond*w[k])
		}
	}
	return h, nil
}

//soft maps a Kabsch-Sander energy to a bond degree: 0 at and above the
//cutoff energy, 1 at and below cutoff-2*margin, a sinusoidal switch in
//between.
func soft(e float64) float64 {
	w := cutoff - margin - e
	if w < -margin {
		w = -margin
	} else if w > margin {
		w = margin
	}
	return (math.Sin(w/margin*math.Pi/2) + 1) / 2
}

func unit3(v [3]float64) [3]float64 {
	n := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	return [3]float64{v[0] / n, v[1] / n, v[2] / n}
}

//Error implements the guia.Error interface for this package.
type Error struct {
	message string
	deco    []string
}

func (err Error) Error() string { return err.message }

//Decorate adds dec to the decoration of the error and returns the resulting
//decoration. An empty dec just returns the current decoration.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//errDecorate asserts that err implements guia.Error, decorates it with the
//name of the caller and returns it.
func errDecorate(err error, caller string) error {
	err2 := err.(guia.Error) //it better implement guia.Error
	err2.Decorate(caller)
	return err2
}
