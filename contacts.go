package guia

import (
	"fmt"
	"log"
)

//BinderNContacts favors contacts within the binder: it returns the weighted
//sum of the contact proxy (see Contacts) over all Cα pairs of the first
//binderlen residues, self pairs included.
type BinderNContacts struct {
	binderlen      int
	weight, r0, d0 float64
}

func NewBinderNContacts(binderlen int, weight, r0, d0 float64) (*BinderNContacts, error) {
	if binderlen < 1 {
		return nil, CError{"guia: a positive binder length is needed", []string{"NewBinderNContacts"}}
	}
	return &BinderNContacts{binderlen: binderlen, weight: weight, r0: r0, d0: d0}, nil
}

func (P *BinderNContacts) Compute(s *Structure, ctx *Context) (float64, error) {
	if s == nil {
		return 0, CError{string(ErrNilData), []string{"BinderNContacts.Compute"}}
	}
	if s.Len() < P.binderlen {
		return 0, CError{fmt.Sprintf("guia: %d residues can not hold a %d-residue binder", s.Len(), P.binderlen), []string{"BinderNContacts.Compute"}}
	}
	ca := s.CAlphas()
	binder := ca.View(0, 0, P.binderlen, 3)
	n := SumContacts(binder, binder, P.d0, P.r0)
	log.Printf("binder_ncontacts guiding potential: %.3f contacts", n)
	return P.weight * n, nil
}

//InterfaceNContacts favors contacts across the binder-target interface: it
//returns the weighted sum of the contact proxy over all Cα pairs with one
//residue in the binder and one in the target.
type InterfaceNContacts struct {
	binderlen      int
	weight, r0, d0 float64
}

func NewInterfaceNContacts(binderlen int, weight, r0, d0 float64) (*InterfaceNContacts, error) {
	if binderlen < 1 {
		return nil, CError{"guia: a positive binder length is needed", []string{"NewInterfaceNContacts"}}
	}
	return &InterfaceNContacts{binderlen: binderlen, weight: weight, r0: r0, d0: d0}, nil
}

func (P *InterfaceNContacts) Compute(s *Structure, ctx *Context) (float64, error) {
	if s == nil {
		return 0, CError{string(ErrNilData), []string{"InterfaceNContacts.Compute"}}
	}
	if s.Len() <= P.binderlen {
		return 0, CError{fmt.Sprintf("guia: an interface needs residues beyond the %d-residue binder, got %d", P.binderlen, s.Len()), []string{"InterfaceNContacts.Compute"}}
	}
	ca := s.CAlphas()
	binder := ca.View(0, 0, P.binderlen, 3)
	target := ca.View(P.binderlen, 0, s.Len()-P.binderlen, 3)
	n := SumContacts(binder, target, P.d0, P.r0)
	log.Printf("interface_ncontacts guiding potential: %.3f contacts", n)
	return P.weight * n, nil
}

//MonomerContacts favors overall contact formation: it returns the weighted
//sum of the contact proxy over every Cα pair of the whole structure, self
//pairs included.
type MonomerContacts struct {
	weight, r0, d0 float64
}

func NewMonomerContacts(weight, r0, d0 float64) *MonomerContacts {
	return &MonomerContacts{weight: weight, r0: r0, d0: d0}
}

func (P *MonomerContacts) Compute(s *Structure, ctx *Context) (float64, error) {
	if s == nil {
		return 0, CError{string(ErrNilData), []string{"MonomerContacts.Compute"}}
	}
	ca := s.CAlphas()
	return P.weight * SumContacts(ca, ca, P.d0, P.r0), nil
}
