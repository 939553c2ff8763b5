/*
 * guia.go, part of guia.
 *
 * Copyright 2025 Raul Mera A. (rmeraaatacademicosdotutadotcl)
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package guia

import (
	"fmt"
	"math"
	"sort"

	"github.com/rmera/guia/xyz"
)

//Potential is a differentiable guiding potential: any scalar function of a
//backbone to be pushed uphill during the denoising steps of a diffusion
//sampler. Larger values are better, a sampler adds the gradient of the
//potential to its denoising update. Compute must not modify the structure.
type Potential interface {
	Compute(s *Structure, ctx *Context) (float64, error)
}

//Context carries the per-design state that the sampler owns and some
//potentials need: which residues are fixed (motif), the motif and substrate
//coordinates recorded when the design started, and the current sequence.
//Potentials that need a field error when it is missing.
type Context struct {
	//Mask is true at the fixed (motif) residues, false at the diffused ones.
	Mask []bool
	//Motif holds the coordinates of the masked residues, in masking order,
	//as they were when the design started.
	Motif *Structure
	//Substrate holds the heavy-atom coordinates of the substrate, in the
	//same reference frame as Motif.
	Substrate *xyz.Matrix
	//Seq holds one residue identity per residue, in the 0-21 alphabet of
	//the samplers, where 21 marks a not yet designed position.
	Seq []int
}

//Config gathers the construction-time settings for the potentials. Numeric
//arguments go in Args and take per-potential defaults when absent; the
//remaining fields are only needed by the potentials that use them.
type Config struct {
	Args      map[string]float64
	BinderLen int          //number of binder residues, at the start of the structure
	Chains    *ChainMap    //pairwise chain intent for the oligomer potentials
	Profile   string       //filename with the target radial profile, for z_profile
	HBonds    HBondMapper  //hydrogen-bond map provider, for hb_contacts
	Energy    EnergyScorer //external force field, for madrax_energy
}

//Arg returns the value stored for key, or def if there is none.
func (C *Config) Arg(key string, def float64) float64 {
	if C == nil || C.Args == nil {
		return def
	}
	if v, ok := C.Args[key]; ok {
		return v
	}
	return def
}

//Builder builds a configured potential from conf.
type Builder func(conf *Config) (Potential, error)

var builders = map[string]Builder{
	"monomer_ROG": func(c *Config) (Potential, error) {
		return NewMonomerROG(c.Arg("weight", 1), c.Arg("min_dist", 15)), nil
	},
	"binder_ROG": func(c *Config) (Potential, error) {
		return NewBinderROG(c.BinderLen, c.Arg("weight", 1), c.Arg("min_dist", 15))
	},
	"dimer_ROG": func(c *Config) (Potential, error) {
		return NewDimerROG(c.BinderLen, c.Arg("weight", 1), c.Arg("min_dist", 15))
	},
	"binder_ncontacts": func(c *Config) (Potential, error) {
		return NewBinderNContacts(c.BinderLen, c.Arg("weight", 1), c.Arg("r_0", 8), c.Arg("d_0", 4))
	},
	"interface_ncontacts": func(c *Config) (Potential, error) {
		return NewInterfaceNContacts(c.BinderLen, c.Arg("weight", 1), c.Arg("r_0", 8), c.Arg("d_0", 6))
	},
	"monomer_contacts": func(c *Config) (Potential, error) {
		return NewMonomerContacts(c.Arg("weight", 1), c.Arg("r_0", 8), c.Arg("d_0", 2)), nil
	},
	"olig_contacts": func(c *Config) (Potential, error) {
		return NewOligContacts(c.Chains, c.Arg("weight_intra", 1), c.Arg("weight_inter", 1), c.Arg("r_0", 8), c.Arg("d_0", 2))
	},
	"substrate_contacts": func(c *Config) (Potential, error) {
		return NewSubstrateContacts(c.Arg("weight", 1), c.Arg("r_0", 8), c.Arg("d_0", 2), c.Arg("s", 1),
			c.Arg("rep_r_0", 5), c.Arg("rep_s", 2), c.Arg("rep_r_min", 1) != 0), nil
	},
	"z_profile": func(c *Config) (Potential, error) {
		prof, err := ReadProfile(c.Profile)
		if err != nil {
			return nil, errDecorate(err, "z_profile")
		}
		return NewZProfile(prof, c.Arg("cutoff", 0), c.Arg("weight", 1))
	},
	"Rgs": func(c *Config) (Potential, error) {
		nan := math.NaN()
		return NewRgs(c.Arg("Rgx", nan), c.Arg("Rgy", nan), c.Arg("Rgz", nan),
			c.Arg("diagonalise", 0) != 0, c.Arg("weight", 1))
	},
	"hb_contacts": func(c *Config) (Potential, error) {
		return NewHBContacts(c.Chains, c.HBonds, c.Arg("weight_intra", 1), c.Arg("weight_inter", 1),
			int(c.Arg("mode", 0)))
	},
	"madrax_energy": func(c *Config) (Potential, error) {
		return NewFFEnergy(c.Chains, c.Energy, c.Arg("weight_intra", 1), c.Arg("weight_inter", 1),
			c.Arg("clip", 0))
	},
}

//needBinderLen marks the potentials that only make sense for binder design,
//so they need Config.BinderLen set.
var needBinderLen = map[string]bool{
	"binder_ROG":          true,
	"dimer_ROG":           true,
	"binder_ncontacts":    true,
	"interface_ncontacts": true,
}

//New builds the potential registered under name, configured by conf, which
//can be nil if the potential needs nothing beyond its defaults.
func New(name string, conf *Config) (Potential, error) {
	b, ok := builders[name]
	if !ok {
		return nil, CError{fmt.Sprintf("guia: no %q potential, the implemented ones are %v", name, Implemented()), []string{"New"}}
	}
	if conf == nil {
		conf = &Config{}
	}
	p, err := b(conf)
	if err != nil {
		return nil, errDecorate(err, "New: "+name)
	}
	return p, nil
}

//Implemented returns the names of all the registered potentials, sorted.
func Implemented() []string {
	ret := make([]string, 0, len(builders))
	for k := range builders {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

//RequireBinderLen tells whether the potential registered under name needs
//Config.BinderLen to be set.
func RequireBinderLen(name string) bool {
	return needBinderLen[name]
}
