/*
 * substrate.go, part of guia.
 *
 *
 */

package guia

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/rmera/guia/xyz"
)

//affineTol is the largest discrepancy allowed by the self-consistency check
//on the recovered motif-to-current transform. It is a sanity bound, not a
//tunable.
const affineTol = 0.01

//atomRef points to one atom sampled for the motif frame: the position of
//its residue within the motif region (not the absolute residue index) and
//the atom index within the residue.
type atomRef struct {
	res, atom int
}

//SubstrateContacts implicitly models a ligand rigidly attached to the
//motif. On each call it samples 4 motif atoms, recovers the affine
//transform from their recorded positions to their current ones, carries
//the recorded substrate atoms along, and scores every non-motif Cα against
//the transformed substrate with an attractive contact term plus a
//polynomial repulsion. It needs Mask, Motif and Substrate in the Context.
type SubstrateContacts struct {
	weight, r0, d0, s float64
	repR, repSlope    float64
	repMin            bool //repulsion on the nearest substrate atom only, not the full grid
}

//NewSubstrateContacts returns a SubstrateContacts. The attractive term uses
//d0/r0 scaled by s; the repulsive one pushes off substrate atoms closer
//than repR with the given slope.
func NewSubstrateContacts(weight, r0, d0, s, repR, repSlope float64, repMin bool) *SubstrateContacts {
	return &SubstrateContacts{weight: weight, r0: r0, d0: d0, s: s, repR: repR, repSlope: repSlope, repMin: repMin}
}

func (P *SubstrateContacts) Compute(s *Structure, ctx *Context) (float64, error) {
	if s == nil {
		return 0, CError{string(ErrNilData), []string{"SubstrateContacts.Compute"}}
	}
	if ctx == nil || ctx.Motif == nil || ctx.Substrate == nil || ctx.Mask == nil {
		return 0, CError{"guia: substrate_contacts needs the mask, motif and substrate in the context", []string{"SubstrateContacts.Compute"}}
	}
	if len(ctx.Mask) != s.Len() {
		return 0, CError{string(ErrMismatchedMask), []string{"SubstrateContacts.Compute"}}
	}
	motifres := make([]int, 0, len(ctx.Mask))
	for i, m := range ctx.Mask {
		if m {
			motifres = append(motifres, i)
		}
	}
	if len(motifres) != ctx.Motif.Len() {
		return 0, CError{fmt.Sprintf("guia: the mask marks %d motif residues but the recorded motif has %d", len(motifres), ctx.Motif.Len()), []string{"SubstrateContacts.Compute"}}
	}
	frame, mapping, err := sampleMotifFrame(ctx.Motif, motifres)
	if err != nil {
		return 0, errDecorate(err, "SubstrateContacts.Compute")
	}
	first := math.Sqrt(ctx.Substrate.Dist(0, frame, 0))
	newframe := xyz.Zeros(4)
	for k, ref := range mapping {
		newframe.SetMatrix(k, 0, s.Atom(motifres[ref.res], ref.atom))
	}
	A, t, err := RecoverAffine(frame, newframe)
	if err != nil {
		return 0, errDecorate(err, "SubstrateContacts.Compute")
	}
	substrate := TransformAffine(ctx.Substrate, A, t)
	second := math.Sqrt(newframe.Dist(0, substrate, 0))
	if math.Abs(first-second) >= affineTol {
		panic(PanicMsg(fmt.Sprintf("%s: reference distances %.4f and %.4f", ErrBadAlignment, first, second)))
	}
	//score the Cα of the residues away from the (expanded) motif
	expanded := MaskExpand(ctx.Mask, 1)
	ca := s.CAlphas()
	ns := substrate.NVecs()
	var energy float64
	for i, masked := range expanded {
		if masked {
			continue
		}
		min := math.Inf(1)
		for j := 0; j < ns; j++ {
			d := ca.Dist(i, substrate, j)
			if d < min {
				min = d
			}
			if !P.repMin {
				energy += PolyRepulse(d, P.repR, P.repSlope, 1.5)
			}
		}
		energy += P.s * ContactEnergy(min, P.d0, P.r0)
		if P.repMin {
			energy += PolyRepulse(min, P.repR, P.repSlope, 1.5)
		}
	}
	return -P.weight * energy, nil
}

//sampleMotifFrame draws 4 atoms from the recorded motif: 4 distinct Cα when
//the motif has at least 4 residues, the 4 backbone atoms of a single
//residue otherwise. Residues are drawn with probability proportional to
//their absolute index (given in motifres), so the residue at index 0 is
//never picked. It returns the 4 coordinates and the (residue position,
//atom) references that let the caller find the same atoms elsewhere.
func sampleMotifFrame(motif *Structure, motifres []int) (*xyz.Matrix, []atomRef, error) {
	weights := make([]float64, len(motifres))
	for i, r := range motifres {
		weights[i] = float64(r)
	}
	frame := xyz.Zeros(4)
	mapping := make([]atomRef, 4)
	if motif.Len() >= 4 {
		picks, err := weightedDistinct(weights, 4)
		if err != nil {
			return nil, nil, errDecorate(err, "sampleMotifFrame")
		}
		for k, p := range picks {
			frame.SetMatrix(k, 0, motif.Atom(p, AtomCA))
			mapping[k] = atomRef{res: p, atom: AtomCA}
		}
		return frame, mapping, nil
	}
	if motif.NAtoms() < 4 {
		return nil, nil, CError{fmt.Sprintf("guia: a motif of %d residues with %d atoms each can not give a 4-atom frame", motif.Len(), motif.NAtoms()), []string{"sampleMotifFrame"}}
	}
	picks, err := weightedDistinct(weights, 1)
	if err != nil {
		return nil, nil, errDecorate(err, "sampleMotifFrame")
	}
	for k := 0; k < 4; k++ {
		frame.SetMatrix(k, 0, motif.Atom(picks[0], k))
		mapping[k] = atomRef{res: picks[0], atom: k}
	}
	return frame, mapping, nil
}

//weightedDistinct draws n distinct indexes from the given non-negative
//weights, each draw with probability proportional to the remaining weights.
//It errors if fewer than n weights are positive.
func weightedDistinct(weights []float64, n int) ([]int, error) {
	positive := 0
	for _, w := range weights {
		if w > 0 {
			positive++
		}
	}
	if positive < n {
		return nil, CError{fmt.Sprintf("guia: can not draw %d distinct indexes from %d positive weights", n, positive), []string{"weightedDistinct"}}
	}
	w := make([]float64, len(weights))
	copy(w, weights)
	picks := make([]int, n)
	for k := 0; k < n; k++ {
		var tot float64
		for _, v := range w {
			tot += v
		}
		r := rand.Float64() * tot
		var acc float64
		pick := -1
		for i, v := range w {
			if v <= 0 {
				continue
			}
			acc += v
			if r < acc {
				pick = i
				break
			}
		}
		if pick < 0 { //r landed on the very top edge
			for i := len(w) - 1; i >= 0; i-- {
				if w[i] > 0 {
					pick = i
					break
				}
			}
		}
		picks[k] = pick
		w[pick] = 0
	}
	return picks, nil
}
