/*
 * kernel.go, part of guia.
 *
 *
 */

package guia

import (
	"math"

	"github.com/rmera/guia/xyz"
)

//Contacts returns a smooth, differentiable proxy for "number of contacts"
//at the distance d, using a rational switching function of reference
//distance d0 and decay r0:
//
//  (1 - ((d-d0)/r0)^6) / (1 - ((d-d0)/r0)^12)
//
//It is 1 at d=d0 and decays smoothly to 0 at large d. At exactly d=d0+r0
//both numerator and denominator vanish and the result is NaN. The function
//does not mask that, the NaN will show in the final score.
func Contacts(d, d0, r0 float64) float64 {
	x := (d - d0) / r0
	x3 := x * x * x
	x6 := x3 * x3
	return (1 - x6) / (1 - x6*x6)
}

//ContactsGrad returns the derivative of Contacts with respect to d.
func ContactsGrad(d, d0, r0 float64) float64 {
	x := (d - d0) / r0
	x5 := x * x * x * x * x
	den := 1 + x5*x
	return -6 * x5 / (r0 * den * den)
}

//SumContacts returns the sum of Contacts over every pair formed by a vector
//of a and a vector of b. If a and b are the same matrix, self distances
//contribute Contacts(0), they are not excluded.
func SumContacts(a, b *xyz.Matrix, d0, r0 float64) float64 {
	na := a.NVecs()
	nb := b.NVecs()
	var tot float64
	for i := 0; i < na; i++ {
		for j := 0; j < nb; j++ {
			tot += Contacts(a.Dist(i, b, j), d0, r0)
		}
	}
	return tot
}

//ContactEnergy returns the negated Contacts value, so that forming contacts
//lowers the energy.
func ContactEnergy(d, d0, r0 float64) float64 {
	return -Contacts(d, d0, r0)
}

//LJ returns a generalized Lennard-Jones energy at the distance d, with the
//potential minimum at rmin and exponents p1 (attractive) and p2 (repulsive).
//The usual LJ is p1=6, p2=12.
func LJ(d, rmin, p1, p2 float64) float64 {
	sd := rmin / (math.Pow(2, 1/p1) * d)
	return 4 * (math.Pow(sd, p2) - math.Pow(sd, p1))
}

//LJGrad returns the derivative of the Lennard-Jones energy with respect
//to d. The closed form requires the exponents to pair as p2=2*p1.
func LJGrad(d, rmin, p1, p2 float64) float64 {
	rp := math.Pow(rmin, p1)
	return -p2 * rp * (rp - math.Pow(d, p1)) / math.Pow(d, p2+1)
}

//DampedLJ returns a Lennard-Jones energy function whose repulsive branch is
//replaced, below the distance rlin, by its tangent line at rlin, so the
//energy and its derivative stay finite all the way to d=0.
func DampedLJ(rmin, rlin, p1, p2 float64) func(d float64) float64 {
	y := LJ(rlin, rmin, p1, p2)
	ydot := LJGrad(rlin, rmin, p1, p2)
	return func(d float64) float64 {
		if d < rlin {
			return ydot*(d-rlin) + y
		}
		return LJ(d, rmin, p1, p2)
	}
}

//PolyRepulse returns a polynomial repulsion energy at the distance d: zero
//at and beyond the contact distance r, and a*|r-d|^p*slope inside it, with
//a=slope/(p*r^(p-1)). Note that slope enters the value twice, the overall
//magnitude grows with its square.
func PolyRepulse(d, r, slope, p float64) float64 {
	if d >= r {
		return 0
	}
	a := slope / (p * math.Pow(r, p-1))
	return a * math.Pow(math.Abs(r-d), p) * slope
}
