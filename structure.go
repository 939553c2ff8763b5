/*
 * structure.go, part of guia.
 *
 *
 */

package guia

import (
	"fmt"
	"math"

	"github.com/rmera/guia/xyz"
)

//Indexes of the backbone atoms within each residue of a Structure.
const (
	AtomN  = 0
	AtomCA = 1
	AtomC  = 2
	AtomO  = 3
)

//Structure is a protein backbone under construction: an ordered sequence of
//residues, each with the same, fixed number of atoms, in N, Cα, C, O order
//(plus whatever comes after, which this library ignores). It wraps the raw
//(residues*atoms)x3 coordinate matrix of the sampler, so writes through the
//views it hands out are seen by the caller.
type Structure struct {
	coords *xyz.Matrix
	nres   int
	natoms int
}

//NewStructure builds a structure over coords, which must contain natoms rows
//per residue. The matrix is not copied.
func NewStructure(coords *xyz.Matrix, natoms int) (*Structure, error) {
	if coords == nil {
		return nil, CError{string(ErrNilData), []string{"NewStructure"}}
	}
	if natoms < 1 {
		return nil, CError{"guia: at least one atom per residue is needed", []string{"NewStructure"}}
	}
	r := coords.NVecs()
	if r == 0 || r%natoms != 0 {
		return nil, CError{fmt.Sprintf("guia: %d coordinates do not divide into residues of %d atoms", r, natoms), []string{"NewStructure"}}
	}
	return &Structure{coords: coords, nres: r / natoms, natoms: natoms}, nil
}

//Len returns the number of residues.
func (S *Structure) Len() int { return S.nres }

//NAtoms returns the number of atoms per residue.
func (S *Structure) NAtoms() int { return S.natoms }

//Coords returns the underlying coordinate matrix, which is not a copy.
func (S *Structure) Coords() *xyz.Matrix { return S.coords }

//Atom returns a view of the coordinates of the given atom of the given
//residue. It panics on out of range indexes.
func (S *Structure) Atom(res, atom int) *xyz.Matrix {
	if res < 0 || res >= S.nres || atom < 0 || atom >= S.natoms {
		panic(PanicMsg(fmt.Sprintf("guia: residue %d, atom %d out of range", res, atom)))
	}
	return S.coords.VecView(res*S.natoms + atom)
}

//Backbone returns a fresh matrix with the coordinates of the given backbone
//atom of every residue, in residue order.
func (S *Structure) Backbone(atom int) *xyz.Matrix {
	list := make([]int, S.nres)
	for i := range list {
		list[i] = i*S.natoms + atom
	}
	ret := xyz.Zeros(S.nres)
	ret.SomeVecs(S.coords, list)
	return ret
}

//CAlphas returns a fresh matrix with the Cα coordinates of every residue.
func (S *Structure) CAlphas() *xyz.Matrix {
	return S.Backbone(AtomCA)
}

//Copy returns a deep copy of the structure.
func (S *Structure) Copy() *Structure {
	c := xyz.Zeros(S.coords.NVecs())
	c.Dense.Copy(S.coords.Dense)
	return &Structure{coords: c, nres: S.nres, natoms: S.natoms}
}

//Slice returns a fresh structure with copies of the residues in
//[first, last).
func (S *Structure) Slice(first, last int) (*Structure, error) {
	if first < 0 || last > S.nres || first >= last {
		return nil, CError{fmt.Sprintf("guia: residue range [%d, %d) out of bounds for %d residues", first, last, S.nres), []string{"Structure.Slice"}}
	}
	n := (last - first) * S.natoms
	c := xyz.Zeros(n)
	c.Dense.Copy(S.coords.View(first*S.natoms, 0, n, 3).Dense)
	return &Structure{coords: c, nres: last - first, natoms: S.natoms}, nil
}

//Concat returns a fresh structure with the residues of S followed by copies
//of the residues of T. Both structures must have the same number of atoms
//per residue.
func (S *Structure) Concat(T *Structure) (*Structure, error) {
	if T == nil {
		return nil, CError{string(ErrNilData), []string{"Structure.Concat"}}
	}
	if S.natoms != T.natoms {
		return nil, CError{"guia: can not concatenate structures with different atoms per residue", []string{"Structure.Concat"}}
	}
	c := xyz.Zeros(S.coords.NVecs() + T.coords.NVecs())
	c.Stack(S.coords, T.coords)
	return &Structure{coords: c, nres: S.nres + T.nres, natoms: S.natoms}, nil
}

//HasOxygens tells whether every residue of the structure carries actual
//coordinates (not NaN) for its backbone oxygen.
func (S *Structure) HasOxygens() bool {
	if S.natoms <= AtomO {
		return false
	}
	for i := 0; i < S.nres; i++ {
		if !S.hasOxygen(i) {
			return false
		}
	}
	return true
}

//hasOxygen tells whether residue i carries actual coordinates (not NaN) for
//its backbone oxygen. The caller ensures there is an oxygen slot.
func (S *Structure) hasOxygen(i int) bool {
	o := S.Atom(i, AtomO)
	for k := 0; k < 3; k++ {
		if math.IsNaN(o.At(0, k)) {
			return false
		}
	}
	return true
}
