package guia

import (
	"fmt"
	"math"

	"github.com/rmera/guia/xyz"
)

//clippedROG returns the root mean square distance between the vectors of m
//and their centroid, with every distance floored at min before squaring.
//The floor keeps the gradient from collapsing a structure onto one point.
func clippedROG(m *xyz.Matrix, min float64) float64 {
	c := Centroid(m)
	n := m.NVecs()
	var sum float64
	for i := 0; i < n; i++ {
		d := m.Dist(i, c, 0)
		if d < min {
			d = min
		}
		sum += d * d
	}
	return math.Sqrt(sum / float64(n))
}

//MonomerROG favors compact single-chain structures: it returns the clipped
//radius of gyration of the Cα trace, negated and scaled by the weight, so
//pushing it uphill shrinks the structure.
type MonomerROG struct {
	weight  float64
	minDist float64
}

//NewMonomerROG returns a MonomerROG with the given weight and distance floor.
func NewMonomerROG(weight, minDist float64) *MonomerROG {
	return &MonomerROG{weight: weight, minDist: minDist}
}

func (P *MonomerROG) Compute(s *Structure, ctx *Context) (float64, error) {
	if s == nil {
		return 0, CError{string(ErrNilData), []string{"MonomerROG.Compute"}}
	}
	return -P.weight * clippedROG(s.CAlphas(), P.minDist), nil
}

//BinderROG is as MonomerROG, but only over the binder, the first binderlen
//residues of the structure. The rest (the target) is ignored.
type BinderROG struct {
	binderlen int
	weight    float64
	minDist   float64
}

func NewBinderROG(binderlen int, weight, minDist float64) (*BinderROG, error) {
	if binderlen < 1 {
		return nil, CError{"guia: a positive binder length is needed", []string{"NewBinderROG"}}
	}
	return &BinderROG{binderlen: binderlen, weight: weight, minDist: minDist}, nil
}

func (P *BinderROG) Compute(s *Structure, ctx *Context) (float64, error) {
	if s == nil {
		return 0, CError{string(ErrNilData), []string{"BinderROG.Compute"}}
	}
	if s.Len() < P.binderlen {
		return 0, CError{fmt.Sprintf("guia: %d residues can not hold a %d-residue binder", s.Len(), P.binderlen), []string{"BinderROG.Compute"}}
	}
	ca := s.CAlphas()
	binder := ca.View(0, 0, P.binderlen, 3)
	return -P.weight * clippedROG(binder, P.minDist), nil
}

//DimerROG favors a compact binder and a compact target at the same time: it
//averages the clipped radii of gyration of both halves, each taken around
//its own centroid, and returns the average negated and scaled by the weight.
type DimerROG struct {
	binderlen int
	weight    float64
	minDist   float64
}

func NewDimerROG(binderlen int, weight, minDist float64) (*DimerROG, error) {
	if binderlen < 1 {
		return nil, CError{"guia: a positive binder length is needed", []string{"NewDimerROG"}}
	}
	return &DimerROG{binderlen: binderlen, weight: weight, minDist: minDist}, nil
}

func (P *DimerROG) Compute(s *Structure, ctx *Context) (float64, error) {
	if s == nil {
		return 0, CError{string(ErrNilData), []string{"DimerROG.Compute"}}
	}
	if s.Len() <= P.binderlen {
		return 0, CError{fmt.Sprintf("guia: a dimer needs residues beyond the %d-residue binder, got %d", P.binderlen, s.Len()), []string{"DimerROG.Compute"}}
	}
	ca := s.CAlphas()
	binder := ca.View(0, 0, P.binderlen, 3)
	target := ca.View(P.binderlen, 0, s.Len()-P.binderlen, 3)
	rog := (clippedROG(binder, P.minDist) + clippedROG(target, P.minDist)) / 2
	return -P.weight * rog, nil
}
