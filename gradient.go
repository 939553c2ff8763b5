package guia

import (
	"io"
	"log"

	"github.com/rmera/guia/xyz"
	"gonum.org/v1/gonum/diff/fd"
)

//Gradient returns the gradient of the potential with respect to every
//coordinate of s, estimated by central finite differences, as one row per
//atom in the structure's storage order. The structure itself is left
//untouched; the evaluations run on a private copy. Potentials that draw
//random state on every call (substrate_contacts) do not have a well defined
//numerical gradient.
func Gradient(p Potential, s *Structure, ctx *Context) (*xyz.Matrix, error) {
	if p == nil || s == nil {
		return nil, CError{string(ErrNilData), []string{"Gradient"}}
	}
	work := s.Copy()
	raw := work.Coords().RawMatrix().Data
	//the sweep below evaluates the potential a few thousand times,
	//silence its per-call diagnostics for the duration
	prev := log.Writer()
	log.SetOutput(io.Discard)
	defer log.SetOutput(prev)
	var ferr error
	f := func(x []float64) float64 {
		copy(raw, x)
		v, err := p.Compute(work, ctx)
		if err != nil && ferr == nil {
			ferr = err
		}
		return v
	}
	at := make([]float64, len(raw))
	copy(at, raw)
	grad := make([]float64, len(at))
	fd.Gradient(grad, f, at, &fd.Settings{Formula: fd.Central})
	if ferr != nil {
		return nil, errDecorate(ferr, "Gradient")
	}
	ret, err := xyz.NewMatrix(grad)
	if err != nil {
		return nil, errDecorate(err, "Gradient")
	}
	return ret, nil
}

//MaskedGradient is as Gradient, but zeroes the rows of every atom of the
//masked (motif) residues, so a gradient step never moves the fixed region.
//It needs Mask in the Context.
func MaskedGradient(p Potential, s *Structure, ctx *Context) (*xyz.Matrix, error) {
	if ctx == nil || ctx.Mask == nil {
		return nil, CError{"guia: MaskedGradient needs the mask in the context", []string{"MaskedGradient"}}
	}
	if s == nil {
		return nil, CError{string(ErrNilData), []string{"MaskedGradient"}}
	}
	if len(ctx.Mask) != s.Len() {
		return nil, CError{string(ErrMismatchedMask), []string{"MaskedGradient"}}
	}
	g, err := Gradient(p, s, ctx)
	if err != nil {
		return nil, errDecorate(err, "MaskedGradient")
	}
	na := s.NAtoms()
	for i, m := range ctx.Mask {
		if !m {
			continue
		}
		for a := 0; a < na; a++ {
			for k := 0; k < 3; k++ {
				g.Set(i*na+a, k, 0)
			}
		}
	}
	return g, nil
}
