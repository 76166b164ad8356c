package readfiles

import (
	"fmt"
	"os"

	"github.com/ctessum/cdf"
	"github.com/notargets/gllinterp/utils"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

// Series is a combined set of point traces ready for persistence: the
// sample times, one NFields x NPoints matrix per time and the NPoints x Ldim
// point coordinates.
type Series struct {
	T         []float64
	Data      []*mat.Dense
	Locs      *mat.Dense
	WriteTime float64
	Ldim      int
}

func (s *Series) Dims() (nt, nfields, npoints int) {
	nt = len(s.T)
	if nt > 0 && len(s.Data) > 0 && s.Data[0] != nil {
		nfields, npoints = s.Data[0].Dims()
	}
	return
}

func (s *Series) check() (err error) {
	nt, nf, np := s.Dims()
	if nt == 0 || nf == 0 || np == 0 || len(s.Data) != nt {
		return fmt.Errorf("%w: series is empty or ragged: %d times, %d steps, %d fields, %d points",
			utils.ErrValueSize, nt, len(s.Data), nf, np)
	}
	for n, d := range s.Data {
		if d == nil {
			return fmt.Errorf("%w: step %d has no data", utils.ErrValueSize, n)
		}
		if r, c := d.Dims(); r != nf || c != np {
			return fmt.Errorf("%w: step %d is %dx%d, expected %dx%d", utils.ErrValueSize, n, r, c, nf, np)
		}
	}
	if s.Locs == nil {
		return fmt.Errorf("%w: series has no point locations", utils.ErrValueSize)
	}
	if r, c := s.Locs.Dims(); r != np || c != s.Ldim {
		return fmt.Errorf("%w: locs are %dx%d, expected %dx%d", utils.ErrValueSize, r, c, np, s.Ldim)
	}
	return
}

// WriteSeries stores s in a netCDF file with variables t(t),
// data(t,field,point) and locs(point,dim)
func WriteSeries(filename string, s *Series) (err error) {
	var (
		file *os.File
		f    *cdf.File
	)
	if err = s.check(); err != nil {
		return
	}
	nt, nf, np := s.Dims()
	h := cdf.NewHeader([]string{"t", "field", "point", "dim"}, []int{nt, nf, np, s.Ldim})
	h.AddAttribute("", "comment", "combined point traces")
	h.AddAttribute("", "writetime", []float64{s.WriteTime})
	h.AddAttribute("", "nfields", []int32{int32(nf)})
	h.AddAttribute("", "npoints", []int32{int32(np)})
	h.AddAttribute("", "ldim", []int32{int32(s.Ldim)})
	h.AddAttribute("", "nt", []int32{int32(nt)})
	h.AddVariable("t", []string{"t"}, []float64{0})
	h.AddVariable("data", []string{"t", "field", "point"}, []float64{0})
	h.AddVariable("locs", []string{"point", "dim"}, []float64{0})
	h.Define()

	if file, err = os.Create(filename); err != nil {
		return fmt.Errorf("unable to create file %s: %w", filename, err)
	}
	defer file.Close()
	if f, err = cdf.Create(file, h); err != nil {
		return fmt.Errorf("writing header of %s: %w", filename, err)
	}
	data := make([]float64, 0, nt*nf*np)
	for _, d := range s.Data {
		data = append(data, denseData(d)...)
	}
	for _, v := range []struct {
		name string
		val  []float64
	}{
		{"t", s.T},
		{"data", data},
		{"locs", denseData(s.Locs)},
	} {
		if err = writeVar(f, v.name, v.val); err != nil {
			return fmt.Errorf("writing %s to %s: %w", v.name, filename, err)
		}
	}
	if err = cdf.UpdateNumRecs(file); err != nil {
		return
	}
	log.WithFields(log.Fields{"file": filename, "nt": nt, "npoints": np}).Info("wrote series")
	return
}

// ReadSeries reads a file written by WriteSeries
func ReadSeries(filename string) (s *Series, err error) {
	var (
		file *os.File
		f    *cdf.File
	)
	if file, err = os.Open(filename); err != nil {
		return nil, fmt.Errorf("unable to open file %s: %w", filename, err)
	}
	defer file.Close()
	if f, err = cdf.Open(file); err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", filename, err)
	}
	dims := f.Header.Lengths("data")
	ldims := f.Header.Lengths("locs")
	if len(dims) != 3 || len(ldims) != 2 {
		return nil, fmt.Errorf("%w: %s is not a series file", utils.ErrConfig, filename)
	}
	nt, nf, np := dims[0], dims[1], dims[2]
	if nt < 1 || nf < 1 || np < 1 || ldims[1] < 1 {
		return nil, fmt.Errorf("%w: %s is empty, %d times, %d fields, %d points, %d dims",
			utils.ErrValueSize, filename, nt, nf, np, ldims[1])
	}
	s = &Series{Ldim: ldims[1]}
	if wt, ok := f.Header.GetAttribute("", "writetime").([]float64); ok && len(wt) > 0 {
		s.WriteTime = wt[0]
	}
	var data, locs []float64
	if s.T, err = readVar(f, "t", nt); err != nil {
		return nil, fmt.Errorf("reading t from %s: %w", filename, err)
	}
	if data, err = readVar(f, "data", nt*nf*np); err != nil {
		return nil, fmt.Errorf("reading data from %s: %w", filename, err)
	}
	if locs, err = readVar(f, "locs", np*s.Ldim); err != nil {
		return nil, fmt.Errorf("reading locs from %s: %w", filename, err)
	}
	s.Locs = mat.NewDense(np, s.Ldim, locs)
	s.Data = make([]*mat.Dense, nt)
	for n := range s.Data {
		s.Data[n] = mat.NewDense(nf, np, data[n*nf*np:(n+1)*nf*np])
	}
	return
}

// WriteField stores interpolated fields, one N1 x N2 matrix per time, as
// variables t(t) and data(t,x,z)
func WriteField(filename string, t []float64, fields []*mat.Dense) (err error) {
	var (
		file *os.File
		f    *cdf.File
	)
	if len(t) == 0 || len(fields) != len(t) || fields[0] == nil {
		return fmt.Errorf("%w: %d times and %d fields", utils.ErrValueSize, len(t), len(fields))
	}
	n1, n2 := fields[0].Dims()
	h := cdf.NewHeader([]string{"t", "x", "z"}, []int{len(t), n1, n2})
	h.AddAttribute("", "comment", "interpolated field")
	h.AddVariable("t", []string{"t"}, []float64{0})
	h.AddVariable("data", []string{"t", "x", "z"}, []float64{0})
	h.Define()
	data := make([]float64, 0, len(t)*n1*n2)
	for n, fd := range fields {
		if fd == nil {
			return fmt.Errorf("%w: field %d is missing", utils.ErrValueSize, n)
		}
		if r, c := fd.Dims(); r != n1 || c != n2 {
			return fmt.Errorf("%w: field %d is %dx%d, expected %dx%d", utils.ErrValueSize, n, r, c, n1, n2)
		}
		data = append(data, denseData(fd)...)
	}
	if file, err = os.Create(filename); err != nil {
		return fmt.Errorf("unable to create file %s: %w", filename, err)
	}
	defer file.Close()
	if f, err = cdf.Create(file, h); err != nil {
		return fmt.Errorf("writing header of %s: %w", filename, err)
	}
	if err = writeVar(f, "t", t); err != nil {
		return fmt.Errorf("writing t to %s: %w", filename, err)
	}
	if err = writeVar(f, "data", data); err != nil {
		return fmt.Errorf("writing data to %s: %w", filename, err)
	}
	if err = cdf.UpdateNumRecs(file); err != nil {
		return
	}
	log.WithFields(log.Fields{"file": filename, "nt": len(t), "shape": []int{n1, n2}}).Info("wrote field")
	return
}

// ReadField reads a file written by WriteField
func ReadField(filename string) (t []float64, fields []*mat.Dense, err error) {
	var (
		file *os.File
		f    *cdf.File
		data []float64
	)
	if file, err = os.Open(filename); err != nil {
		return nil, nil, fmt.Errorf("unable to open file %s: %w", filename, err)
	}
	defer file.Close()
	if f, err = cdf.Open(file); err != nil {
		return nil, nil, fmt.Errorf("reading header of %s: %w", filename, err)
	}
	dims := f.Header.Lengths("data")
	if len(dims) != 3 {
		return nil, nil, fmt.Errorf("%w: %s is not a field file", utils.ErrConfig, filename)
	}
	nt, n1, n2 := dims[0], dims[1], dims[2]
	if nt < 1 || n1 < 1 || n2 < 1 {
		return nil, nil, fmt.Errorf("%w: %s is empty, shape %v", utils.ErrValueSize, filename, dims)
	}
	if t, err = readVar(f, "t", nt); err != nil {
		return nil, nil, err
	}
	if data, err = readVar(f, "data", nt*n1*n2); err != nil {
		return nil, nil, err
	}
	fields = make([]*mat.Dense, nt)
	for n := range fields {
		fields[n] = mat.NewDense(n1, n2, data[n*n1*n2:(n+1)*n1*n2])
	}
	return
}

func writeVar(f *cdf.File, name string, val []float64) (err error) {
	end := f.Header.Lengths(name)
	start := make([]int, len(end))
	w := f.Writer(name, start, end)
	_, err = w.Write(val)
	return
}

func readVar(f *cdf.File, name string, n int) (val []float64, err error) {
	val = make([]float64, n)
	r := f.Reader(name, nil, nil)
	if _, err = r.Read(val); err != nil {
		return nil, err
	}
	return
}

// denseData returns the row major contents of d
func denseData(d *mat.Dense) (x []float64) {
	r, c := d.Dims()
	x = make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		x = append(x, d.RawRowView(i)...)
	}
	return
}
