package guia

import (
	"fmt"
	"math"
	"testing"

	"github.com/rmera/guia/xyz"
)

//caOnly builds the coordinates of a 2-atoms-per-residue structure whose Cα
//(atom 1) take the given points; atom 0 sits half an Angstrom below.
func caOnly(cas []float64) *xyz.Matrix {
	n := len(cas) / 3
	m := xyz.Zeros(2 * n)
	for i := 0; i < n; i++ {
		for k := 0; k < 3; k++ {
			m.Set(2*i, k, cas[i*3+k])
			m.Set(2*i+1, k, cas[i*3+k])
		}
		m.Set(2*i, 2, cas[i*3+2]-0.5)
	}
	return m
}

func mustStructure(Te *testing.T, cas []float64) *Structure {
	s, err := NewStructure(caOnly(cas), 2)
	if err != nil {
		Te.Fatal(err)
	}
	return s
}

//rigidMove rotates every point around the z axis by theta and then
//translates it, in place.
func rigidMove(m *xyz.Matrix, theta, tx, ty, tz float64) {
	sin, cos := math.Sincos(theta)
	for i := 0; i < m.NVecs(); i++ {
		x, y, z := m.At(i, 0), m.At(i, 1), m.At(i, 2)
		m.Set(i, 0, cos*x-sin*y+tx)
		m.Set(i, 1, sin*x+cos*y+ty)
		m.Set(i, 2, z+tz)
	}
}

//TestROGCoincident checks the clipping floor: on fully coincident points
//every distance to the centroid is 0, so the clipped radius of gyration is
//the floor itself.
func TestROGCoincident(Te *testing.T) {
	cas := make([]float64, 0, 15)
	for i := 0; i < 5; i++ {
		cas = append(cas, 1.0, -2.0, 3.0)
	}
	s := mustStructure(Te, cas)
	p := NewMonomerROG(2, 15)
	got, err := p.Compute(s, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(got-(-2*15)) > 1e-12 {
		Te.Error("coincident points should score -weight*minDist, got", got)
	}
}

//TestROGInvariance checks that the radius of gyration potentials do not
//change under a rigid move of the whole structure nor under residue
//reordering.
func TestROGInvariance(Te *testing.T) {
	cas := []float64{
		0, 0, 0,
		20, 0, 0,
		0, 25, 0,
		0, 0, 30,
		10, 10, 10,
		-5, 8, 2,
	}
	s := mustStructure(Te, cas)
	p := NewMonomerROG(1, 15)
	before, err := p.Compute(s, nil)
	if err != nil {
		Te.Fatal(err)
	}
	rigidMove(s.Coords(), 0.77, 5, -3, 11)
	after, err := p.Compute(s, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(before-after) > 1e-9 {
		Te.Error("monomer_ROG changed under a rigid move:", before, after)
	}
	//permute the residues
	perm := []float64{
		cas[3*4], cas[3*4+1], cas[3*4+2],
		cas[0], cas[1], cas[2],
		cas[3*5], cas[3*5+1], cas[3*5+2],
		cas[3*2], cas[3*2+1], cas[3*2+2],
		cas[3*1], cas[3*1+1], cas[3*1+2],
		cas[3*3], cas[3*3+1], cas[3*3+2],
	}
	s2 := mustStructure(Te, perm)
	permuted, err := p.Compute(s2, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(before-permuted) > 1e-9 {
		Te.Error("monomer_ROG changed under residue reordering:", before, permuted)
	}
	fmt.Println("monomer_ROG:", before)
}

//TestDimerROG checks that the dimer variant averages the per-half values,
//each around its own centroid.
func TestDimerROG(Te *testing.T) {
	binder := []float64{0, 0, 0, 40, 0, 0, 0, 40, 0}
	target := []float64{100, 100, 100, 160, 100, 100, 100, 160, 100}
	s := mustStructure(Te, append(append([]float64{}, binder...), target...))
	dim, err := NewDimerROG(3, 1, 15)
	if err != nil {
		Te.Fatal(err)
	}
	got, err := dim.Compute(s, nil)
	if err != nil {
		Te.Fatal(err)
	}
	b := mustStructure(Te, binder)
	t := mustStructure(Te, target)
	mono := NewMonomerROG(1, 15)
	vb, _ := mono.Compute(b, nil)
	vt, _ := mono.Compute(t, nil)
	want := (vb + vt) / 2
	if math.Abs(got-want) > 1e-12 {
		Te.Error("dimer_ROG should average the halves:", got, want)
	}
}

//TestOligZeroMatrix checks that an all-zero chain map scores 0 on any
//structure.
func TestOligZeroMatrix(Te *testing.T) {
	chains, err := NewChainMap([][]float64{{0, 0}, {0, 0}})
	if err != nil {
		Te.Fatal(err)
	}
	p, err := NewOligContacts(chains, 1, 1, 8, 2)
	if err != nil {
		Te.Fatal(err)
	}
	s := mustStructure(Te, []float64{
		0, 0, 0,
		1, 0, 0,
		50, 0, 0,
		51, 0, 0,
	})
	got, err := p.Compute(s, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if got != 0 {
		Te.Error("an all-zero chain map should score 0, got", got)
	}
}

//TestOligClustered checks that with an intra-only chain map two compact
//chains outscore two spread ones.
func TestOligClustered(Te *testing.T) {
	chains, err := NewChainMap([][]float64{{1, 0}, {0, 1}})
	if err != nil {
		Te.Fatal(err)
	}
	p, err := NewOligContacts(chains, 1, 1, 8, 2)
	if err != nil {
		Te.Fatal(err)
	}
	clustered := mustStructure(Te, []float64{
		0, 0, 0,
		2, 0, 0,
		0, 2, 0,
		100, 0, 0,
		102, 0, 0,
		100, 2, 0,
	})
	spread := mustStructure(Te, []float64{
		0, 0, 0,
		40, 0, 0,
		0, 40, 0,
		100, 0, 0,
		140, 0, 0,
		100, 40, 0,
	})
	vc, err := p.Compute(clustered, nil)
	if err != nil {
		Te.Fatal(err)
	}
	vs, err := p.Compute(spread, nil)
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println("olig_contacts clustered vs spread:", vc, vs)
	if vc <= vs {
		Te.Error("clustered chains should outscore spread ones:", vc, vs)
	}
}

//TestChainMapValidation checks the construction-time validation of the
//chain intent matrix.
func TestChainMapValidation(Te *testing.T) {
	if _, err := NewChainMap([][]float64{{0, 1}, {1, 0}, {0, 0}}); err == nil {
		Te.Error("a non-square matrix should be rejected")
	}
	if _, err := NewChainMap([][]float64{{0, 2}, {2, 0}}); err == nil {
		Te.Error("entries outside {-1,0,1} should be rejected")
	}
	if _, err := NewChainMap([][]float64{{0, 1}, {-1, 0}}); err == nil {
		Te.Error("an asymmetric matrix should be rejected")
	}
	chains, err := NewChainMap([][]float64{{1, -1}, {-1, 0}})
	if err != nil {
		Te.Fatal(err)
	}
	if _, _, err := chains.Bounds(0, 7); err == nil {
		Te.Error("7 residues should not split into 2 equal chains")
	}
}

//TestRgs checks the ordering of the principal radii and the target
//handling of the gyration potential.
func TestRgs(Te *testing.T) {
	cas := []float64{
		0, 0, 0,
		30, 1, 0,
		-28, 0, 2,
		2, 10, -1,
		1, -9, 0,
		0, 1, 4,
		-1, 0, -5,
	}
	s := mustStructure(Te, cas)
	r, err := GyrationRadii(s.CAlphas(), true)
	if err != nil {
		Te.Fatal(err)
	}
	if r[0] > r[1] || r[1] > r[2] {
		Te.Error("principal radii should come sorted, smallest first:", r)
	}
	fmt.Println("principal radii:", r)
	raw, err := GyrationRadii(s.CAlphas(), false)
	if err != nil {
		Te.Fatal(err)
	}
	//the tensor trace equals the sum of its eigenvalues, so the total
	//squared radius must match between the two modes
	var tp, ta float64
	for i := 0; i < 3; i++ {
		tp += r[i] * r[i]
		ta += raw[i] * raw[i]
	}
	if math.Abs(tp-ta) > 1e-9 {
		Te.Error("axis-aligned and principal radii disagree in total:", ta, tp)
	}
	if _, err := NewRgs(math.NaN(), math.NaN(), math.NaN(), false, 1); err == nil {
		Te.Error("Rgs with no target should be rejected")
	}
	//on target, the score is 0
	p, err := NewRgs(r[0], math.NaN(), r[2], true, 3)
	if err != nil {
		Te.Fatal(err)
	}
	got, err := p.Compute(s, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(got) > 1e-12 {
		Te.Error("Rgs on target should score 0, got", got)
	}
	//off target, negative
	p2, err := NewRgs(r[0]+2, math.NaN(), math.NaN(), true, 3)
	if err != nil {
		Te.Fatal(err)
	}
	off, err := p2.Compute(s, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(off-(-3*4)) > 1e-9 {
		Te.Error("Rgs 2 A off one target with weight 3 should score -12, got", off)
	}
}

//TestZProfileSelf checks that a structure whose binned radial profile is
//the target itself scores 0.
func TestZProfileSelf(Te *testing.T) {
	cas := []float64{
		3, 0, -20, //below every boundary
		0, 4, -20,
		5, 0, -6,
		0, 3, -6,
		4, 0, 2,
		0, 6, 2,
		3, 3, 8,
	}
	s := mustStructure(Te, cas)
	boundaries := Profile{{Z: -12}, {Z: -4}, {Z: 4}, {Z: 12}}
	self := ZProfileOf(s.CAlphas(), boundaries)
	p, err := NewZProfile(self, 0, 5)
	if err != nil {
		Te.Fatal(err)
	}
	got, err := p.Compute(s, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if got != 0 {
		Te.Error("a structure matching its own profile should score 0, got", got)
	}
	//deviations below the cutoff are forgiven
	almost := make(Profile, len(self))
	copy(almost, self)
	almost[0].Rmean += 0.3
	p2, err := NewZProfile(almost, 1, 5)
	if err != nil {
		Te.Fatal(err)
	}
	forgiven, err := p2.Compute(s, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if forgiven != 0 {
		Te.Error("deviations below the cutoff should not count, got", forgiven)
	}
	p3, err := NewZProfile(almost, 0, 5)
	if err != nil {
		Te.Fatal(err)
	}
	strict, err := p3.Compute(s, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(strict-(-5*0.09)) > 1e-9 {
		Te.Error("a 0.3 deviation with weight 5 should score -0.45, got", strict)
	}
}

//TestReadProfile reads the sample profile from the test directory and runs
//the z_profile potential from the registry with it.
func TestReadProfile(Te *testing.T) {
	prof, err := ReadProfile("test/profile.csv")
	if err != nil {
		Te.Fatal(err)
	}
	if len(prof) != 4 {
		Te.Fatal("expected 4 slabs, got", len(prof))
	}
	if prof[1].Z != -4 || prof[1].Rmin != 2.5 || prof[1].Rmean != 4.5 || prof[1].Rmax != 7.5 {
		Te.Error("mis-read slab:", prof[1])
	}
	if _, err := ReadProfile("test/no_such_file.csv"); err == nil {
		Te.Error("a missing profile file should be an error")
	}
	pot, err := New("z_profile", &Config{Profile: "test/profile.csv"})
	if err != nil {
		Te.Fatal(err)
	}
	s := mustStructure(Te, []float64{3, 0, -20, 0, 4, -6, 5, 0, 2})
	v, err := pot.Compute(s, nil)
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println("z_profile on the sample profile:", v)
	if v > 0 {
		Te.Error("a mismatched profile should score negative, got", v)
	}
}
