/*
 * oligomer.go, part of guia.
 *
 *
 */

package guia

import (
	"fmt"
	"log"
)

//ChainMap encodes what each pair of chains of an oligomer should do: 1 to
//favor contacts between (or within) them, -1 to penalize, 0 to leave them
//alone. Chains are equally long, consecutive blocks of residues.
type ChainMap struct {
	entries [][]float64
	n       int
}

//NewChainMap validates and stores a chain intent matrix, which must be
//square, symmetric, and contain only 0, 1 and -1.
func NewChainMap(entries [][]float64) (*ChainMap, error) {
	if entries == nil {
		return nil, CError{string(ErrNilData), []string{"NewChainMap"}}
	}
	n := len(entries)
	cp := make([][]float64, n)
	for i, row := range entries {
		if len(row) != n {
			return nil, CError{fmt.Sprintf("guia: the chain intent matrix must be square, row %d has %d entries for %d chains", i, len(row), n), []string{"NewChainMap"}}
		}
		for _, v := range row {
			if v != -1 && v != 0 && v != 1 {
				return nil, CError{fmt.Sprintf("guia: the chain intent matrix takes only 0, 1 and -1, not %v", v), []string{"NewChainMap"}}
			}
		}
		cp[i] = make([]float64, n)
		copy(cp[i], row)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if cp[i][j] != cp[j][i] {
				return nil, CError{fmt.Sprintf("guia: the chain intent matrix must be symmetric, entries (%d,%d) and (%d,%d) differ", i, j, j, i), []string{"NewChainMap"}}
			}
		}
	}
	return &ChainMap{entries: cp, n: n}, nil
}

//NChains returns the number of chains in the map.
func (M *ChainMap) NChains() int { return M.n }

//At returns the intent for the chain pair i, j.
func (M *ChainMap) At(i, j int) float64 { return M.entries[i][j] }

//Bounds returns the [first, last) residue range of the ith chain in a
//structure of L residues. It errors if L does not split into equal chains.
func (M *ChainMap) Bounds(i, L int) (int, int, error) {
	if L%M.n != 0 {
		return 0, 0, CError{fmt.Sprintf("guia: %d residues do not divide into %d equal chains", L, M.n), []string{"ChainMap.Bounds"}}
	}
	lc := L / M.n
	return i * lc, (i + 1) * lc, nil
}

//chainSlice returns a fresh structure with the residues of the ith chain.
func chainSlice(s *Structure, m *ChainMap, i int) (*Structure, error) {
	fi, li, err := m.Bounds(i, s.Len())
	if err != nil {
		return nil, err
	}
	return s.Slice(fi, li)
}

//chainPair returns a fresh structure with the residues of the ith chain
//followed by those of the jth.
func chainPair(s *Structure, m *ChainMap, i, j int) (*Structure, error) {
	a, err := chainSlice(s, m, i)
	if err != nil {
		return nil, err
	}
	b, err := chainSlice(s, m, j)
	if err != nil {
		return nil, err
	}
	return a.Concat(b)
}

//OligContacts rewards or penalizes Cα contacts within and between the
//chains of an oligomer, following a ChainMap. Intra-chain sums count each
//residue pair twice (both orders), so they are halved before weighting;
//inter-chain pairs are visited once.
type OligContacts struct {
	chains         *ChainMap
	wIntra, wInter float64
	r0, d0         float64
}

func NewOligContacts(chains *ChainMap, wIntra, wInter, r0, d0 float64) (*OligContacts, error) {
	if chains == nil {
		return nil, CError{"guia: a chain intent map is needed", []string{"NewOligContacts"}}
	}
	return &OligContacts{chains: chains, wIntra: wIntra, wInter: wInter, r0: r0, d0: d0}, nil
}

func (P *OligContacts) Compute(s *Structure, ctx *Context) (float64, error) {
	if s == nil {
		return 0, CError{string(ErrNilData), []string{"OligContacts.Compute"}}
	}
	ca := s.CAlphas()
	L := s.Len()
	nch := P.chains.NChains()
	var intra, inter float64
	for i := 0; i < nch; i++ {
		for j := i; j < nch; j++ {
			e := P.chains.At(i, j)
			if e == 0 {
				continue
			}
			fi, li, err := P.chains.Bounds(i, L)
			if err != nil {
				return 0, errDecorate(err, "OligContacts.Compute")
			}
			fj, lj, _ := P.chains.Bounds(j, L) //the first call did the checking
			ci := ca.View(fi, 0, li-fi, 3)
			cj := ca.View(fj, 0, lj-fj, 3)
			nc := SumContacts(ci, cj, P.d0, P.r0)
			if i == j {
				intra += nc * e / 2
			} else {
				inter += nc * e
			}
		}
	}
	pot := P.wIntra*intra + P.wInter*inter
	log.Printf("olig_contacts guiding potential: intra %.3f, inter %.3f, total %.3f", intra, inter, pot)
	return pot, nil
}
