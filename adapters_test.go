package guia

import (
	"fmt"
	"math"
	"testing"

	"github.com/rmera/guia/xyz"
	"gonum.org/v1/gonum/mat"
)

//backbone builds an natoms-per-residue coordinate set from per-residue
//N, Cα and C positions, leaving any remaining atoms as NaN.
func backbone(natoms int, ncac []float64) *xyz.Matrix {
	nres := len(ncac) / 9
	m := xyz.Zeros(nres * natoms)
	for i := 0; i < nres; i++ {
		for a := 0; a < natoms; a++ {
			for k := 0; k < 3; k++ {
				if a < 3 {
					m.Set(i*natoms+a, k, ncac[i*9+a*3+k])
				} else {
					m.Set(i*natoms+a, k, math.NaN())
				}
			}
		}
	}
	return m
}

var twoResidues = []float64{
	//residue 0: N, Cα, C
	0, 0, 0,
	1.458, 0, 0,
	2.009, 1.42, 0,
	//residue 1
	3.32, 1.536, 0,
	4.74, 1.68, 0.2,
	5.29, 3.1, 0.1,
}

//TestEnsureOxygens checks the ideal carbonyl placement: 1.231 A from the
//carbonyl carbon, in the plane of a planar residue, and only where the
//oxygen is actually missing.
func TestEnsureOxygens(Te *testing.T) {
	s, err := NewStructure(backbone(4, twoResidues), 4)
	if err != nil {
		Te.Fatal(err)
	}
	if s.HasOxygens() {
		Te.Error("NaN oxygens should not count as present")
	}
	out, err := EnsureOxygens(s)
	if err != nil {
		Te.Fatal(err)
	}
	if out == s {
		Te.Fatal("missing oxygens should force a fresh structure")
	}
	if !out.HasOxygens() {
		Te.Error("reconstruction left missing oxygens behind")
	}
	for i := 0; i < out.Len(); i++ {
		d := out.Atom(i, AtomO).Dist(0, out.Atom(i, AtomC), 0)
		if math.Abs(d-1.231) > 1e-3 {
			Te.Error("oxygen of residue", i, "placed", d, "A from its carbon")
		}
	}
	//residue 0 is planar (z=0), its oxygen must stay in that plane
	if z := out.Atom(0, AtomO).At(0, 2); math.Abs(z) > 1e-9 {
		Te.Error("the oxygen of a planar residue left the plane:", z)
	}
	fmt.Println("placed oxygens:", out.Atom(0, AtomO), out.Atom(1, AtomO))
	//a complete structure passes through untouched
	same, err := EnsureOxygens(out)
	if err != nil {
		Te.Fatal(err)
	}
	if same != out {
		Te.Error("a structure with all oxygens should be returned as is")
	}
	//3 atoms per residue get a fourth slot added
	short, err := NewStructure(backbone(3, twoResidues), 3)
	if err != nil {
		Te.Fatal(err)
	}
	if short.HasOxygens() {
		Te.Error("a 3-atom structure has no oxygen slot")
	}
	grown, err := EnsureOxygens(short)
	if err != nil {
		Te.Fatal(err)
	}
	if grown.NAtoms() != 4 || grown.Len() != short.Len() {
		Te.Fatal("expected 4 atoms per residue after growing, got", grown.NAtoms())
	}
	for i := 0; i < grown.Len(); i++ {
		want := out.Atom(i, AtomO)
		got := grown.Atom(i, AtomO)
		if got.Dist(0, want, 0) > 1e-9 {
			Te.Error("grown and filled oxygens differ for residue", i)
		}
	}
}

//onesMapper is a stand-in hydrogen-bond mapper that reports a uniform map.
type onesMapper struct{ v float64 }

func (M onesMapper) HBondMap(n, ca, c, o *xyz.Matrix) (*mat.Dense, error) {
	L := n.NVecs()
	d := mat.NewDense(L, L, nil)
	for i := 0; i < L; i++ {
		for j := 0; j < L; j++ {
			d.Set(i, j, M.v)
		}
	}
	return d, nil
}

//signMapper reports +1 above the diagonal and -1 below it.
type signMapper struct{}

func (M signMapper) HBondMap(n, ca, c, o *xyz.Matrix) (*mat.Dense, error) {
	L := n.NVecs()
	d := mat.NewDense(L, L, nil)
	for i := 0; i < L; i++ {
		for j := 0; j < L; j++ {
			if i < j {
				d.Set(i, j, 1)
			} else if i > j {
				d.Set(i, j, -1)
			}
		}
	}
	return d, nil
}

//fourChainResidues returns a 4-residue structure for 2 chains of 2.
func fourChainResidues(Te *testing.T) *Structure {
	double := append(append([]float64{}, twoResidues...), twoResidues...)
	for i := 18; i < 36; i += 3 {
		double[i+1] += 8 //shift the second chain in y
	}
	s, err := NewStructure(backbone(4, double), 4)
	if err != nil {
		Te.Fatal(err)
	}
	return s
}

//TestHBContacts checks the chain-map aggregation of the hydrogen-bond
//potential with mock mappers: intra sums halve, signs multiply, and mode 1
//only counts positive entries.
func TestHBContacts(Te *testing.T) {
	s := fourChainResidues(Te)
	chains, err := NewChainMap([][]float64{{1, -1}, {-1, 1}})
	if err != nil {
		Te.Fatal(err)
	}
	p, err := NewHBContacts(chains, onesMapper{v: 1}, 2, 0.5, 0)
	if err != nil {
		Te.Fatal(err)
	}
	got, err := p.Compute(s, nil)
	if err != nil {
		Te.Fatal(err)
	}
	//each chain has 2 residues: intra maps sum to 4, halved, twice;
	//the concatenated pair map sums to 16, times the -1 entry
	want := 2*(4.0/2+4.0/2) + 0.5*(-16.0)
	if math.Abs(got-want) > 1e-12 {
		Te.Error("hb_contacts aggregation mismatch:", got, want)
	}
	//mode 1 ignores the negative half of the map
	p1, err := NewHBContacts(chains, signMapper{}, 1, 1, 1)
	if err != nil {
		Te.Fatal(err)
	}
	got1, err := p1.Compute(s, nil)
	if err != nil {
		Te.Fatal(err)
	}
	//intra positive entries: 1 per chain; inter: 6 positives in a 4x4 map
	want1 := (1.0/2+1.0/2)*1 + 6.0*(-1)
	if math.Abs(got1-want1) > 1e-12 {
		Te.Error("mode 1 aggregation mismatch:", got1, want1)
	}
	if _, err := NewHBContacts(chains, nil, 1, 1, 0); err == nil {
		Te.Error("a nil mapper should be rejected at construction")
	}
	if _, err := NewHBContacts(chains, signMapper{}, 1, 1, 3); err == nil {
		Te.Error("an unknown aggregation mode should be rejected")
	}
	fmt.Println("hb_contacts:", got, got1)
}

//recordingScorer is a stand-in force field that returns fixed terms and
//records what it was asked to score.
type recordingScorer struct {
	terms []float64
	seqs  [][]int
	sizes []int
}

func (F *recordingScorer) Score(s *Structure, seq []int) ([]float64, error) {
	F.seqs = append(F.seqs, seq)
	F.sizes = append(F.sizes, s.Len())
	return F.terms, nil
}

//TestFFEnergy checks the clipping, the negation and the sequence handling
//of the force-field potential.
func TestFFEnergy(Te *testing.T) {
	s := fourChainResidues(Te)
	chains, err := NewChainMap([][]float64{{1, 1}, {1, 1}})
	if err != nil {
		Te.Fatal(err)
	}
	ff := &recordingScorer{terms: []float64{5, -30}}
	p, err := NewFFEnergy(chains, ff, 1, 1, 10)
	if err != nil {
		Te.Fatal(err)
	}
	ctx := &Context{Seq: []int{3, MaskIndex, MaskIndex, 12}}
	got, err := p.Compute(s, ctx)
	if err != nil {
		Te.Fatal(err)
	}
	//each scored piece contributes 5-10=-5 clipped: two intra halved,
	//one inter; all negated
	want := -(-5.0/2 + -5.0/2 + -5.0)
	if math.Abs(got-want) > 1e-12 {
		Te.Error("madrax_energy aggregation mismatch:", got, want)
	}
	if len(ff.seqs) != 3 {
		Te.Fatal("expected 3 force-field calls, got", len(ff.seqs))
	}
	//masked identities reach the force field as glycine; the calls come
	//as chain 0, then the 0-1 pair, then chain 1
	if ff.seqs[0][1] != GlycineIndex || ff.seqs[0][0] != 3 {
		Te.Error("bad sequence for the first chain:", ff.seqs[0])
	}
	if ff.sizes[1] != 4 {
		Te.Error("the chain pair should hold 4 residues, got", ff.sizes[1])
	}
	if inter := ff.seqs[1]; len(inter) != 4 || inter[3] != 12 {
		Te.Error("bad sequence for the chain pair:", inter)
	}
	if last := ff.seqs[2]; len(last) != 2 || last[1] != 12 {
		Te.Error("bad sequence for the second chain:", last)
	}
	if _, err := NewFFEnergy(chains, nil, 1, 1, 0); err == nil {
		Te.Error("a nil force field should be rejected at construction")
	}
	if _, err := p.Compute(s, &Context{}); err == nil {
		Te.Error("a missing sequence should be an error")
	}
	fmt.Println("madrax_energy:", got)
}
