//Package trace reads and writes compressed traces of guiding-potential
//values along a sampling run: one named column per potential, one row per
//denoising step. The format is plain text inside a zstd stream, with a
//key=value header terminated by a "** n" line giving the column count, so
//a trace remains greppable after decompression.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
)

//Writer writes a trace, one row of values per step.
type Writer struct {
	f         *os.File
	h         io.WriteCloser
	ncols     int
	filename  string
	writeable bool
	prec      int
	buf       []byte
}

//NewWriter creates the file name and writes the trace header for the given
//potential names, one column per name. prec, if given, is the number of
//decimals kept per value (3 if not given, -1 for the shortest exact
//representation).
func NewWriter(name string, names []string, prec ...int) (*Writer, error) {
	if len(names) == 0 {
		return nil, Error{"no potential names given", name, []string{"NewWriter"}, true}
	}
	for _, v := range names {
		if strings.ContainsAny(v, ",=\n") {
			return nil, Error{fmt.Sprintf("potential name %q: commas, equal signs and newlines are not allowed", v), name, []string{"NewWriter"}, true}
		}
	}
	p := 3
	if len(prec) > 0 {
		if prec[0] < -1 {
			log.Printf("Invalid precision for trace %s. Will use the default", name)
		} else {
			p = prec[0]
		}
	}
	W := new(Writer)
	var err error
	W.f, err = os.Create(name)
	if err != nil {
		return nil, err
	}
	W.h, err = zstd.NewWriter(W.f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		W.f.Close()
		return nil, Error{"Can't open the compressor " + err.Error(), name, []string{"NewWriter"}, true}
	}
	W.ncols = len(names)
	W.filename = name
	W.prec = p
	W.writeable = true
	W.h.Write([]byte(fmt.Sprintf("names=%s\n", strings.Join(names, ","))))
	W.h.Write([]byte(fmt.Sprintf("prec=%d\n", p)))
	W.h.Write([]byte(fmt.Sprintf("** %d\n", W.ncols)))
	return W, nil
}

//WNext writes the values for the next step, which must be one per column.
//NaNs are written as such and survive a round trip.
func (W *Writer) WNext(vals []float64) error {
	if !W.writeable {
		return Error{TraceUnIniWrite, W.filename, []string{"WNext"}, true}
	}
	if vals == nil {
		return Error{NilValues, W.filename, []string{"WNext"}, true}
	}
	if len(vals) != W.ncols {
		return Error{fmt.Sprintf("%d values given, but %d expected", len(vals), W.ncols), W.filename, []string{"WNext"}, true}
	}
	W.buf = W.buf[:0]
	for i, v := range vals {
		if i > 0 {
			W.buf = append(W.buf, ' ')
		}
		W.buf = strconv.AppendFloat(W.buf, v, 'f', W.prec, 64)
	}
	W.buf = append(W.buf, '\n')
	if _, err := W.h.Write(W.buf); err != nil {
		return Error{err.Error(), W.filename, []string{"WNext"}, true}
	}
	return nil
}

//NCols returns the number of values per step.
func (W *Writer) NCols() int {
	return W.ncols
}

//Close flushes and closes the trace. The Writer can not be used after this
//call.
func (W *Writer) Close() error {
	if W == nil || !W.writeable {
		return nil
	}
	W.writeable = false
	if err := W.h.Close(); err != nil {
		W.f.Close()
		return Error{"Can't flush the compressor " + err.Error(), W.filename, []string{"Close"}, true}
	}
	if err := W.f.Close(); err != nil {
		return Error{err.Error(), W.filename, []string{"Close"}, true}
	}
	return nil
}

//Reader reads a trace written by Writer.
type Reader struct {
	f        *os.File
	z        io.ReadCloser
	h        *bufio.Reader
	ncols    int
	filename string
	names    []string
	readable bool
}

//zstd's Decoder has a Close method without a return value, so it does not
//satisfy io.ReadCloser on its own.
type zstdCloser struct {
	close func()
	*zstd.Decoder
}

func (z zstdCloser) Close() error {
	z.close()
	return nil
}

//New opens the trace file name for reading and returns a handle to it plus
//a map with the header metadata.
func New(name string) (*Reader, map[string]string, error) {
	R := new(Reader)
	R.ncols = -1
	R.filename = name
	var err error
	R.f, err = os.Open(name)
	if err != nil {
		return nil, nil, err
	}
	d, err := zstd.NewReader(bufio.NewReader(R.f))
	if err != nil {
		R.f.Close()
		return nil, nil, Error{"Can't open the decompressor " + err.Error(), name, []string{"New"}, true}
	}
	R.z = zstdCloser{d.Close, d}
	R.h = bufio.NewReader(R.z)
	m := make(map[string]string)
	for {
		str, err := R.h.ReadString('\n')
		if err != nil {
			R.Close()
			return nil, nil, Error{"Can't read header " + err.Error(), name, []string{"New"}, true}
		}
		str = strings.TrimSuffix(str, "\n")
		if strings.HasPrefix(str, "**") {
			fields := strings.Fields(str)
			if len(fields) < 2 {
				R.Close()
				return nil, nil, Error{fmt.Sprintf("Can't read the column count from '%s'", str), name, []string{"New"}, true}
			}
			R.ncols, err = strconv.Atoi(fields[1])
			if err != nil {
				R.Close()
				return nil, nil, Error{fmt.Sprintf("Can't read the column count from '%s': %s", fields[1], err.Error()), name, []string{"New"}, true}
			}
			break
		}
		kv := strings.SplitN(str, "=", 2)
		if len(kv) != 2 {
			R.Close()
			return nil, nil, Error{fmt.Sprintf("Malformed header line '%s'", str), name, []string{"New"}, true}
		}
		m[kv[0]] = kv[1]
	}
	if n, ok := m["names"]; ok {
		R.names = strings.Split(n, ",")
		if len(R.names) != R.ncols {
			R.Close()
			return nil, nil, Error{fmt.Sprintf("%d names in the header for %d columns", len(R.names), R.ncols), name, []string{"New"}, true}
		}
	}
	R.readable = true
	return R, m, nil
}

//Names returns the potential names from the trace header, in column order,
//or nil if the header had none.
func (R *Reader) Names() []string {
	return R.names
}

//NCols returns the number of values per step.
func (R *Reader) NCols() int {
	return R.ncols
}

//Readable returns true if it is possible to call Next on the handle.
func (R *Reader) Readable() bool {
	return R.readable
}

//Next puts the values of the next step in vals, which must hold at least
//NCols elements. A nil vals reads and checks the step without storing it.
//At the normal end of the trace Next closes the handle and returns a
//LastStepError.
func (R *Reader) Next(vals []float64) error {
	if !R.readable {
		return Error{TraceUnIniRead, R.filename, []string{"Next"}, true}
	}
	str, err := R.h.ReadString('\n')
	if err != nil {
		if err == io.EOF && str == "" {
			//nothing bad happened here, the trace just ended.
			R.Close()
			return newLastStepError(R.filename, "Next")
		}
		return Error{"Truncated step: " + err.Error(), R.filename, []string{"Next"}, true}
	}
	fields := strings.Fields(str)
	if len(fields) != R.ncols {
		return Error{fmt.Sprintf("Step with %d values, but %d expected", len(fields), R.ncols), R.filename, []string{"Next"}, true}
	}
	if vals == nil {
		return nil
	}
	if len(vals) < R.ncols {
		return Error{NotEnoughSpace, R.filename, []string{"Next"}, true}
	}
	for i, v := range fields {
		vals[i], err = strconv.ParseFloat(v, 64)
		if err != nil {
			return Error{fmt.Sprintf("Can't parse value %d (%s): %s", i, v, err.Error()), R.filename, []string{"Next"}, true}
		}
	}
	return nil
}

//Close closes the handle, which can not be read after this call.
func (R *Reader) Close() {
	if R == nil || R.z == nil {
		return
	}
	R.readable = false
	R.z.Close()
	R.f.Close()
	R.z = nil
	return
}

//Errors

//TraceError is the interface for the errors of this package. It adds to
//the Error interface of the parent package the file associated to the
//error and whether the error is critical.
type TraceError interface {
	Error() string
	Decorate(string) []string
	FileName() string
	Critical() bool
}

//LastStepError is a TraceError marking the normal end of a trace: the
//reader just ran out of steps. It is never critical.
type LastStepError interface {
	TraceError
	NormalLastStepTermination()
}

//Error is the general structure for trace errors. It fulfills TraceError.
type Error struct {
	message  string
	filename string //the trace file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("trace file %s error: %s", err.filename, err.message)
}

//Decorate adds new information to the error and returns the decoration
//collected so far.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//FileName returns the file to which the failing trace was associated.
func (err Error) FileName() string { return err.filename }

//Critical returns true if the error is critical, false otherwise.
func (err Error) Critical() bool { return err.critical }

const (
	TraceUnIniRead  = "Trace object uninitialized to read"
	TraceUnIniWrite = "Trace object uninitialized to write"
	NilValues       = "Given nil values"
	NotEnoughSpace  = "Not enough space in the passed slice"
)

//lastStepError implements LastStepError
type lastStepError struct {
	deco     []string
	fileName string
}

//NormalLastStepTermination does nothing
func (E lastStepError) NormalLastStepTermination() {}

func (E lastStepError) FileName() string { return E.fileName }

func (E lastStepError) Error() string { return "EOF" }

func (E lastStepError) Critical() bool { return false }

func (E lastStepError) Decorate(dec string) []string {
	if dec != "" {
		E.deco = append(E.deco, dec)
	}
	return E.deco
}

func newLastStepError(filename string, caller string) *lastStepError {
	e := new(lastStepError)
	e.fileName = filename
	e.deco = []string{caller}
	return e
}
