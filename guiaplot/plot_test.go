package guiaplot

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/rmera/guia"
	"github.com/rmera/guia/trace"
)

//TestProfilePlot draws the test profile envelope with synthetic sampled
//radii, some inside and some outside the envelope.
func TestProfilePlot(Te *testing.T) {
	prof, err := guia.ReadProfile("../test/profile.csv")
	if err != nil {
		Te.Fatal(err)
	}
	var zs, rs []float64
	for _, row := range prof {
		//the test profile has its slab boundaries 8 A apart
		for k := 0; k < 5; k++ {
			zs = append(zs, row.Z-7+1.5*float64(k))
			rs = append(rs, row.Rmin+(row.Rmax-row.Rmin)*float64(k)/4)
		}
		zs = append(zs, row.Z-4)
		rs = append(rs, row.Rmax+1.5)
	}
	err = Profile(prof, zs, rs, "Radial envelope", "../test/ProfilePlot")
	if err != nil {
		Te.Error(err)
	}
	st, err := os.Stat("../test/ProfilePlot.png")
	if err != nil || st.Size() == 0 {
		Te.Error("the profile plot did not make it to disk:", err)
	}
}

//TestTracePlot runs the whole pipeline: a trace is written, read back into
//per-potential series and plotted. One series carries a NaN, which should
//just leave a gap in its line.
func TestTracePlot(Te *testing.T) {
	names := []string{"monomer_ROG", "binder_ncontacts", "z_profile"}
	name := filepath.Join(Te.TempDir(), "run.trc")
	w, err := trace.NewWriter(name, names)
	if err != nil {
		Te.Fatal(err)
	}
	nsteps := 60
	for i := 0; i < nsteps; i++ {
		t := float64(i)
		vals := []float64{
			-30 + 14*(1-math.Exp(-t/20)),
			2 + 0.4*t + 3*math.Sin(t/5),
			-8 + 0.1*t,
		}
		if i == 30 {
			vals[2] = math.NaN()
		}
		if err := w.WNext(vals); err != nil {
			Te.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		Te.Fatal(err)
	}
	r, header, err := trace.New(name)
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println("plotting trace with header:", header)
	series := make([][]float64, r.NCols())
	vals := make([]float64, r.NCols())
	for {
		err := r.Next(vals)
		if err != nil {
			if _, ok := err.(trace.LastStepError); ok {
				break
			}
			Te.Fatal(err)
		}
		for j, v := range vals {
			series[j] = append(series[j], v)
		}
	}
	err = Trace(series, r.Names(), "Guiding potentials", "../test/TracePlot")
	if err != nil {
		Te.Error(err)
	}
	st, err := os.Stat("../test/TracePlot.png")
	if err != nil || st.Size() == 0 {
		Te.Error("the trace plot did not make it to disk:", err)
	}
}

func TestPlotMisuse(Te *testing.T) {
	defer func() {
		if recover() == nil {
			Te.Error("plotting nil data should panic")
		}
	}()
	Profile(nil, []float64{1}, []float64{1}, "bad", "nope")
}
