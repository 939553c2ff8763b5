package guia

import (
	"fmt"
	"log"
)

//Residue identities in the 0-21 alphabet of the samplers.
const (
	GlycineIndex = 7
	MaskIndex    = 21
)

//EnergyScorer is the narrow interface to an external learned force field.
//Score takes a structure and one residue identity per residue, and returns
//its energy terms, in whatever per-atom or per-interaction breakdown the
//force field produces; callers only sum (and maybe clip) them. Lower
//energies are better.
type EnergyScorer interface {
	Score(s *Structure, seq []int) ([]float64, error)
}

//PrepSequence returns a copy of seq with every masked identity replaced by
//glycine, which is how a not yet designed residue gets scored.
func PrepSequence(seq []int) []int {
	out := make([]int, len(seq))
	for i, s := range seq {
		if s == MaskIndex {
			out[i] = GlycineIndex
		} else {
			out[i] = s
		}
	}
	return out
}

//FFEnergy favors low force-field energy within and between the chains of
//an oligomer, following a ChainMap as OligContacts does. Each chain (or
//concatenated chain pair) with a nonzero entry is scored by the external
//force field; with a positive clip every energy term is clamped to
//[-clip, clip] before summing. The weighted total is negated, so lower
//energy means higher potential.
type FFEnergy struct {
	chains         *ChainMap
	scorer         EnergyScorer
	wIntra, wInter float64
	clip           float64
}

func NewFFEnergy(chains *ChainMap, scorer EnergyScorer, wIntra, wInter, clip float64) (*FFEnergy, error) {
	if chains == nil {
		return nil, CError{"guia: a chain intent map is needed", []string{"NewFFEnergy"}}
	}
	if scorer == nil {
		return nil, CError{"guia: no force field given, madrax_energy needs an EnergyScorer", []string{"NewFFEnergy"}}
	}
	return &FFEnergy{chains: chains, scorer: scorer, wIntra: wIntra, wInter: wInter, clip: clip}, nil
}

func (P *FFEnergy) Compute(s *Structure, ctx *Context) (float64, error) {
	if s == nil {
		return 0, CError{string(ErrNilData), []string{"FFEnergy.Compute"}}
	}
	if ctx == nil || ctx.Seq == nil {
		return 0, CError{"guia: madrax_energy needs the sequence in the context", []string{"FFEnergy.Compute"}}
	}
	if len(ctx.Seq) != s.Len() {
		return 0, CError{fmt.Sprintf("guia: %d sequence entries for %d residues", len(ctx.Seq), s.Len()), []string{"FFEnergy.Compute"}}
	}
	seq := PrepSequence(ctx.Seq)
	nch := P.chains.NChains()
	var intra, inter float64
	for i := 0; i < nch; i++ {
		for j := i; j < nch; j++ {
			e := P.chains.At(i, j)
			if e == 0 {
				continue
			}
			var sub *Structure
			var subseq []int
			var err error
			if i == j {
				sub, err = chainSlice(s, P.chains, i)
				if err != nil {
					return 0, errDecorate(err, "FFEnergy.Compute")
				}
				fi, li, _ := P.chains.Bounds(i, s.Len())
				subseq = seq[fi:li]
			} else {
				sub, err = chainPair(s, P.chains, i, j)
				if err != nil {
					return 0, errDecorate(err, "FFEnergy.Compute")
				}
				fi, li, _ := P.chains.Bounds(i, s.Len())
				fj, lj, _ := P.chains.Bounds(j, s.Len())
				subseq = append(append(make([]int, 0, (li-fi)+(lj-fj)), seq[fi:li]...), seq[fj:lj]...)
			}
			terms, err := P.scorer.Score(sub, subseq)
			if err != nil {
				return 0, errDecorate(err, "FFEnergy.Compute")
			}
			v := P.clippedSum(terms)
			if i == j {
				intra += v * e / 2
			} else {
				inter += v * e
			}
		}
	}
	pot := -(P.wIntra*intra + P.wInter*inter)
	log.Printf("madrax_energy guiding potential: clip %.3g, intra %.3f, inter %.3f, total %.3f", P.clip, intra, inter, pot)
	return pot, nil
}

func (P *FFEnergy) clippedSum(terms []float64) float64 {
	var tot float64
	for _, t := range terms {
		if P.clip > 0 {
			if t > P.clip {
				t = P.clip
			} else if t < -P.clip {
				t = -P.clip
			}
		}
		tot += t
	}
	return tot
}
