/*
 * plot.go, part of guia.
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

//Package guiaplot draws PNG figures from guiding-potential data: the radial
//envelope targeted by the z_profile potential against the radii actually
//sampled, and the per-step value traces of a sampling run.
package guiaplot

import (
	"fmt"
	"image/color"
	"math"

	"github.com/rmera/guia"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func basicPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	return p
}

//Profile produces a plot, in PNG format, of the radial envelope in target
//(min, mean and max lines against z) together with the observed (zs, rs)
//points, and saves it as plotname.png. It panics on nil or mismatched data,
//and returns an error on plotting or I/O failures.
func Profile(target guia.Profile, zs, rs []float64, title, plotname string) error {
	if target == nil || zs == nil || rs == nil {
		panic("Given nil data")
	}
	if len(zs) != len(rs) {
		panic(fmt.Sprintf("Given %d z values for %d radii", len(zs), len(rs)))
	}
	p := basicPlot(title, "z (A)", "radius (A)")
	envelopes := []struct {
		name string
		r    func(guia.ProfileRow) float64
	}{
		{"min", func(v guia.ProfileRow) float64 { return v.Rmin }},
		{"mean", func(v guia.ProfileRow) float64 { return v.Rmean }},
		{"max", func(v guia.ProfileRow) float64 { return v.Rmax }},
	}
	for key, env := range envelopes {
		pts := make(plotter.XYs, len(target))
		for k, row := range target {
			pts[k].X = row.Z
			pts[k].Y = env.r(row)
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		r, g, b := colors(key, len(envelopes)+1)
		l.LineStyle.Color = color.RGBA{R: r, G: g, B: b, A: 255}
		l.LineStyle.Width = vg.Points(1.5)
		p.Add(l)
		p.Legend.Add(env.name, l)
	}
	obs := make(plotter.XYs, 0, len(zs))
	for i, z := range zs {
		if math.IsNaN(z) || math.IsNaN(rs[i]) {
			continue
		}
		obs = append(obs, plotter.XY{X: z, Y: rs[i]})
	}
	s, err := plotter.NewScatter(obs)
	if err != nil {
		return err
	}
	s.GlyphStyle.Color = color.RGBA{A: 255}
	p.Add(s)
	p.Legend.Add("sampled", s)
	p.Legend.Top = true
	filename := fmt.Sprintf("%s.png", plotname)
	return p.Save(15*vg.Centimeter, 10*vg.Centimeter, filename)
}

//Trace produces a plot, in PNG format, of guiding-potential values along a
//sampling run, one line per potential with the colors spread over the hue
//wheel, and saves it as plotname.png. vals holds one series per potential,
//in the order of names; NaN steps are left out of their line. It panics on
//nil or mismatched data, and returns an error on plotting or I/O failures.
func Trace(vals [][]float64, names []string, title, plotname string) error {
	if vals == nil {
		panic("Given nil data")
	}
	if names != nil && len(names) != len(vals) {
		panic(fmt.Sprintf("Given %d names for %d series", len(names), len(vals)))
	}
	p := basicPlot(title, "step", "potential")
	for key, series := range vals {
		pts := make(plotter.XYs, 0, len(series))
		for step, v := range series {
			if math.IsNaN(v) {
				continue
			}
			pts = append(pts, plotter.XY{X: float64(step), Y: v})
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		r, g, b := colors(key, len(vals))
		l.LineStyle.Color = color.RGBA{R: r, G: g, B: b, A: 255}
		l.LineStyle.Width = vg.Points(1.5)
		p.Add(l)
		if names != nil {
			p.Legend.Add(names[key], l)
		}
	}
	p.Legend.Top = true
	filename := fmt.Sprintf("%s.png", plotname)
	return p.Save(15*vg.Centimeter, 10*vg.Centimeter, filename)
}

//takes hue (0-360), v and s (0-1), returns r,g,b (0-255)
func iHVS2RGB(h, v, s float64) (uint8, uint8, uint8) {
	var i, f, p, q, t float64
	var r, g, b float64
	maxcolor := 255.0
	conversion := maxcolor * v
	if s == 0.0 {
		return uint8(conversion), uint8(conversion), uint8(conversion)
	}
	h = h / 60
	i = math.Floor(h)
	f = h - i
	p = v * (1 - s)
	q = v * (1 - s*f)
	t = v * (1 - s*(1-f))
	switch int(i) {
	case 0:
		r = v
		g = t
		b = p
	case 1:
		r = q
		g = v
		b = p
	case 2:
		r = p
		g = v
		b = t
	case 3:
		r = p
		g = q
		b = v
	case 4:
		r = t
		g = p
		b = v
	default: //case 5
		r = v
		g = p
		b = q
	}
	r = r * conversion
	g = g * conversion
	b = b * conversion
	return uint8(r), uint8(g), uint8(b)
}

//colors spreads the series over the hue wheel, skipping the yellows around
//hue 60.
func colors(key, steps int) (r, g, b uint8) {
	norm := 260.0 / float64(steps)
	hp := float64(key)*norm + 20.0
	var h float64
	if hp < 55 {
		h = hp - 20.0
	} else {
		h = hp + 20.0
	}
	return iHVS2RGB(h, 1.0, 1.0)
}
