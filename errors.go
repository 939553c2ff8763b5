/*
 * errors.go, part of guia.
 *
 *
 */

package guia

//Error is the interface for errors that all the packages in this library
//implement. Decorate adds one string of information to the error without
//wrapping it or changing its type, and returns the decoration collected so
//far. The strings are meant to be the names of the functions in the calling
//stack, plus, possibly, extra information after a colon.
type Error interface {
	Error() string
	Decorate(string) []string
}

//CError is the concrete error type of the package. The zero value is not
//useful, fill the message at construction.
type CError struct {
	msg  string
	deco []string
}

func (err CError) Error() string { return err.msg }

//Decorate adds dec to the decoration of the error and returns the resulting
//decoration. An empty dec just returns the current decoration.
func (err CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//errDecorate asserts that err implements Error, decorates it with the name
//of the caller and returns it.
func errDecorate(err error, caller string) error {
	err2 := err.(Error) //it better implement Error
	err2.Decorate(caller)
	return err2
}

//PanicMsg is the type used for the message given to panic when an
//unrecoverable problem is found. It implements error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNilData        = PanicMsg("guia: nil data given")
	ErrMismatchedMask = PanicMsg("guia: the mask length and the number of residues differ")
	ErrBadAlignment   = PanicMsg("guia: substrate alignment seems to be off")
)
