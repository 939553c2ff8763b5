package guia

import (
	"fmt"
	"log"
	"math"

	"github.com/rmera/guia/xyz"
	"gonum.org/v1/gonum/mat"
)

//HBondMapper produces a soft (differentiable) backbone hydrogen-bond map
//from the per-residue N, Cα, C and O coordinates of a structure: one row
//per donor residue, one column per acceptor, values in [0,1]. The guia/dssp
//package provides an implementation; keeping it behind this interface lets
//tests mock it.
type HBondMapper interface {
	HBondMap(n, ca, c, o *xyz.Matrix) (*mat.Dense, error)
}

//idealO is the offset of the carbonyl oxygen from the carbonyl carbon, in
//the local rigid frame of the residue's N/Cα/C triplet. Its norm is the
//1.231 A carbonyl bond length.
var idealO = [3]float64{0.6303, 1.0574, 0.0}

//EnsureOxygens returns a structure where every residue carries a backbone
//oxygen. If s already does, s itself is returned. Otherwise the oxygens
//are placed at the ideal carbonyl position in the local frame of each
//residue's N/Cα/C triplet, on a private copy; structures with only 3 atoms
//per residue get a fourth slot added.
func EnsureOxygens(s *Structure) (*Structure, error) {
	if s == nil {
		return nil, CError{string(ErrNilData), []string{"EnsureOxygens"}}
	}
	if s.NAtoms() < 3 {
		return nil, CError{"guia: oxygen reconstruction needs at least the N, Cα and C backbone atoms", []string{"EnsureOxygens"}}
	}
	var out *Structure
	if s.NAtoms() > AtomO {
		if s.HasOxygens() {
			return s, nil
		}
		out = s.Copy()
	} else {
		//only N, Cα and C given, make room for the oxygens
		coords := xyz.Zeros(s.Len() * 4)
		for i := 0; i < s.Len(); i++ {
			for a := 0; a < 3; a++ {
				coords.SetMatrix(i*4+a, 0, s.Atom(i, a))
			}
			for k := 0; k < 3; k++ {
				coords.Set(i*4+AtomO, k, math.NaN())
			}
		}
		var err error
		out, err = NewStructure(coords, 4)
		if err != nil {
			return nil, errDecorate(err, "EnsureOxygens")
		}
	}
	log.Printf("adding ideal backbone oxygen(s)")
	for i := 0; i < out.Len(); i++ {
		if out.hasOxygen(i) {
			continue
		}
		R := RigidFrame(out.Atom(i, AtomN), out.Atom(i, AtomCA), out.Atom(i, AtomC))
		c := out.Atom(i, AtomC)
		o := out.Atom(i, AtomO)
		for k := 0; k < 3; k++ {
			o.Set(0, k, c.At(0, k)+R.At(k, 0)*idealO[0]+R.At(k, 1)*idealO[1]+R.At(k, 2)*idealO[2])
		}
	}
	return out, nil
}

//HBContacts rewards or penalizes backbone hydrogen bonding within and
//between the chains of an oligomer, following a ChainMap just like
//OligContacts: nonzero entries pick the chain (pairs) to score, their sign
//multiplies the score, intra sums are halved, and the total is
//wIntra*intra + wInter*inter. Mode 0 sums the whole hydrogen-bond map,
//mode 1 only its positive entries.
type HBContacts struct {
	chains         *ChainMap
	mapper         HBondMapper
	wIntra, wInter float64
	positiveOnly   bool
}

func NewHBContacts(chains *ChainMap, mapper HBondMapper, wIntra, wInter float64, mode int) (*HBContacts, error) {
	if chains == nil {
		return nil, CError{"guia: a chain intent map is needed", []string{"NewHBContacts"}}
	}
	if mapper == nil {
		return nil, CError{"guia: no hydrogen-bond mapper given (guia/dssp provides one)", []string{"NewHBContacts"}}
	}
	if mode != 0 && mode != 1 {
		return nil, CError{fmt.Sprintf("guia: no aggregation mode %d, only 0 (sum all) and 1 (sum positive)", mode), []string{"NewHBContacts"}}
	}
	return &HBContacts{chains: chains, mapper: mapper, wIntra: wIntra, wInter: wInter, positiveOnly: mode == 1}, nil
}

func (P *HBContacts) Compute(s *Structure, ctx *Context) (float64, error) {
	if s == nil {
		return 0, CError{string(ErrNilData), []string{"HBContacts.Compute"}}
	}
	full, err := EnsureOxygens(s)
	if err != nil {
		return 0, errDecorate(err, "HBContacts.Compute")
	}
	nch := P.chains.NChains()
	var intra, inter float64
	for i := 0; i < nch; i++ {
		for j := i; j < nch; j++ {
			e := P.chains.At(i, j)
			if e == 0 {
				continue
			}
			var sub *Structure
			if i == j {
				sub, err = chainSlice(full, P.chains, i)
			} else {
				sub, err = chainPair(full, P.chains, i, j)
			}
			if err != nil {
				return 0, errDecorate(err, "HBContacts.Compute")
			}
			hb, err := P.mapper.HBondMap(sub.Backbone(AtomN), sub.Backbone(AtomCA), sub.Backbone(AtomC), sub.Backbone(AtomO))
			if err != nil {
				return 0, errDecorate(err, "HBContacts.Compute")
			}
			v := P.sum(hb)
			if i == j {
				intra += v * e / 2
			} else {
				inter += v * e
			}
		}
	}
	pot := P.wIntra*intra + P.wInter*inter
	log.Printf("hb_contacts guiding potential: intra %.3f, inter %.3f, total %.3f", intra, inter, pot)
	return pot, nil
}

func (P *HBContacts) sum(m *mat.Dense) float64 {
	r, c := m.Dims()
	var tot float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := m.At(i, j)
			if P.positiveOnly && v <= 0 {
				continue
			}
			tot += v
		}
	}
	return tot
}
