package guia

import (
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/rmera/guia/xyz"
	"github.com/rmera/scu"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//ProfileRow is one row of a radial envelope profile: the upper z boundary
//of a slab, and the smallest, mean and largest radial (xy-plane) distances
//from the z axis among the Cα in the slab.
type ProfileRow struct {
	Z, Rmin, Rmean, Rmax float64
}

//Profile is a radial envelope along the z axis, one row per slab, with the
//z boundaries in ascending order.
type Profile []ProfileRow

//ReadProfile reads a profile from a text table: one header line, then one
//line per slab with the 4 columns z, rmin, rmean, rmax, separated by commas
//and/or whitespace.
func ReadProfile(filename string) (Profile, error) {
	fin, err := scu.NewMustReadFile(filename)
	if err != nil {
		return nil, CError{err.Error(), []string{"scu.NewMustReadFile", "ReadProfile"}}
	}
	defer fin.Close()
	prof := make(Profile, 0, 30)
	header := true
	for line := fin.Next(); line != "EOF"; line = fin.Next() {
		if header {
			header = false
			continue
		}
		fields := strings.Fields(strings.ReplaceAll(line, ",", " "))
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 4 {
			return nil, CError{fmt.Sprintf("guia: the profile line %q should have 4 columns", strings.TrimSpace(line)), []string{"ReadProfile"}}
		}
		var v [4]float64
		for i := 0; i < 4; i++ {
			v[i], err = strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return nil, CError{fmt.Sprintf("guia: can not parse the profile value %q: %v", fields[i], err), []string{"ReadProfile"}}
			}
		}
		prof = append(prof, ProfileRow{Z: v[0], Rmin: v[1], Rmean: v[2], Rmax: v[3]})
	}
	if len(prof) == 0 {
		return nil, CError{"guia: no slabs in the profile " + filename, []string{"ReadProfile"}}
	}
	return prof, nil
}

//ZProfileOf bins the points of m into the z slabs of target and returns the
//observed profile: per slab, the min, mean and max radial distances from
//the z axis. Slabs with no points keep zeroed statistics; points at or
//beyond the last boundary are left out.
func ZProfileOf(m *xyz.Matrix, target Profile) Profile {
	nb := len(target)
	radii := make([][]float64, nb)
	for i := 0; i < m.NVecs(); i++ {
		idx := slab(m.At(i, 2), target)
		if idx >= nb {
			continue
		}
		radii[idx] = append(radii[idx], math.Hypot(m.At(i, 0), m.At(i, 1)))
	}
	out := make(Profile, nb)
	for i := range out {
		out[i].Z = target[i].Z
		if len(radii[i]) == 0 {
			continue
		}
		out[i].Rmin = floats.Min(radii[i])
		out[i].Rmean = stat.Mean(radii[i], nil)
		out[i].Rmax = floats.Max(radii[i])
	}
	return out
}

//slab returns the index of the slab z falls in: the number of boundaries
//at or below z.
func slab(z float64, target Profile) int {
	n := 0
	for _, row := range target {
		if row.Z <= z {
			n++
		}
	}
	return n
}

//ZProfile pushes a structure toward a target radial envelope along z. The
//score is the negated, weighted sum of the squared deviations between the
//observed and target slab statistics, over the slabs that hold at least one
//Cα off the z axis. With a positive cutoff, only deviations whose square
//exceeds the squared cutoff count, so slabs already close to the target
//stop contributing.
type ZProfile struct {
	target Profile
	cutoff float64
	weight float64
}

func NewZProfile(target Profile, cutoff, weight float64) (*ZProfile, error) {
	if len(target) == 0 {
		return nil, CError{"guia: an empty profile is of no use", []string{"NewZProfile"}}
	}
	return &ZProfile{target: target, cutoff: cutoff, weight: weight}, nil
}

func (P *ZProfile) Compute(s *Structure, ctx *Context) (float64, error) {
	if s == nil {
		return 0, CError{string(ErrNilData), []string{"ZProfile.Compute"}}
	}
	cur := ZProfileOf(s.CAlphas(), P.target)
	c2 := P.cutoff * P.cutoff
	var sum float64
	for i, row := range cur {
		if row.Rmin <= 0 {
			continue
		}
		t := P.target[i]
		for _, d := range [3]float64{row.Rmin - t.Rmin, row.Rmean - t.Rmean, row.Rmax - t.Rmax} {
			d2 := d * d
			if P.cutoff > 0 && d2 <= c2 {
				continue
			}
			sum += d2
		}
	}
	pot := -sum
	log.Printf("z_profile guiding potential: %.3f", pot)
	return P.weight * pot, nil
}
