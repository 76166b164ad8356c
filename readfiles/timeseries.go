package readfiles

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/notargets/gllinterp/utils"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

const headerSize = 132

// Point is the record of one sampling point in a trace file
type Point struct {
	ID   int       // zero based global point number
	Pos  []float64 // Ldim coordinates
	Data [][]float64
}

// TimeSeries holds one point-trace file: every point sampled at NT times
type TimeSeries struct {
	Points          []Point
	T               []float64
	Ldim, NFields   int
	WriteTime       float64
	WdSizeT, WdSize int
	// Collated data, one NFields x NPoints matrix per time step
	Data []*mat.Dense
}

type traceHeader struct {
	wdsizet, wdsizef  int
	ldim, npoints, nt int
	nfields           int
	time              float64
}

func parseHeader(hdr []byte) (th traceHeader, err error) {
	fields := strings.Fields(string(hdr))
	if len(fields) < 9 {
		err = fmt.Errorf("%w: trace header has %d fields, need 9", utils.ErrConfig, len(fields))
		return
	}
	ints := make([]int, 8)
	for _, i := range []int{1, 2, 3, 5, 6, 7} {
		if ints[i], err = strconv.Atoi(fields[i]); err != nil {
			err = fmt.Errorf("%w: trace header field %d: %v", utils.ErrConfig, i, err)
			return
		}
	}
	th = traceHeader{
		wdsizet: ints[1], wdsizef: ints[2], ldim: ints[3],
		npoints: ints[5], nt: ints[6], nfields: ints[7],
	}
	if th.time, err = strconv.ParseFloat(fields[8], 64); err != nil {
		err = fmt.Errorf("%w: trace header time: %v", utils.ErrConfig, err)
		return
	}
	if err = checkWordSize(th.wdsizet); err != nil {
		return
	}
	if err = checkWordSize(th.wdsizef); err != nil {
		return
	}
	// a file may hold no time steps, but every step carries points and fields
	if th.ldim < 1 || th.npoints < 1 || th.nt < 0 || th.nfields < 1 {
		err = fmt.Errorf("%w: trace header dimensions ldim=%d npoints=%d nt=%d nfields=%d",
			utils.ErrConfig, th.ldim, th.npoints, th.nt, th.nfields)
	}
	return
}

// ReadTimeSeries reads a point-trace file; points are sorted by ID when sortPoints is set
func ReadTimeSeries(filename string, sortPoints bool) (ts *TimeSeries, err error) {
	var (
		file *os.File
	)
	if file, err = os.Open(filename); err != nil {
		return nil, fmt.Errorf("unable to open file %s: %w", filename, err)
	}
	defer file.Close()
	if ts, err = DecodeTimeSeries(bufio.NewReader(file), sortPoints); err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	log.WithFields(log.Fields{
		"file":    filename,
		"npoints": len(ts.Points),
		"nt":      len(ts.T),
		"nfields": ts.NFields,
	}).Debug("read time series")
	return
}

// DecodeTimeSeries decodes a point-trace record from r
func DecodeTimeSeries(r io.Reader, sortPoints bool) (ts *TimeSeries, err error) {
	var (
		hdr = make([]byte, headerSize)
		th  traceHeader
		ids []int32
		bo  binary.ByteOrder
	)
	if _, err = io.ReadFull(r, hdr); err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if th, err = parseHeader(hdr); err != nil {
		return
	}
	if bo, err = DetectByteOrder(r); err != nil {
		return
	}
	ts = &TimeSeries{
		Points:    make([]Point, th.npoints),
		Ldim:      th.ldim,
		NFields:   th.nfields,
		WriteTime: th.time,
		WdSizeT:   th.wdsizet,
		WdSize:    th.wdsizef,
	}
	if ts.T, err = readReals(r, bo, th.wdsizet, th.nt); err != nil {
		return nil, fmt.Errorf("reading times: %w", err)
	}
	if ids, err = readInts(r, bo, th.npoints); err != nil {
		return nil, fmt.Errorf("reading point ids: %w", err)
	}
	for i := range ts.Points {
		ts.Points[i].ID = int(ids[i]) - 1
	}
	for i := range ts.Points {
		if ts.Points[i].Pos, err = readReals(r, bo, th.wdsizet, th.ldim); err != nil {
			return nil, fmt.Errorf("reading coordinates of point %d: %w", i, err)
		}
	}
	for i := range ts.Points {
		ts.Points[i].Data = make([][]float64, th.nt)
		for j := 0; j < th.nt; j++ {
			if ts.Points[i].Data[j], err = readReals(r, bo, th.wdsizef, th.nfields); err != nil {
				return nil, fmt.Errorf("reading fields of point %d, step %d: %w", i, j, err)
			}
		}
	}
	if sortPoints {
		sort.SliceStable(ts.Points, func(i, j int) bool { return ts.Points[i].ID < ts.Points[j].ID })
	}
	return
}

func (ts *TimeSeries) NPoints() int { return len(ts.Points) }
func (ts *TimeSeries) NT() int      { return len(ts.T) }

// Locs returns the point coordinates as an NPoints x Ldim matrix
func (ts *TimeSeries) Locs() (locs *mat.Dense) {
	if ts.NPoints() == 0 {
		return nil
	}
	locs = mat.NewDense(ts.NPoints(), ts.Ldim, nil)
	for i, p := range ts.Points {
		locs.SetRow(i, p.Pos)
	}
	return
}

// Collate gathers the per-point samples into one NFields x NPoints matrix per time step
func (ts *TimeSeries) Collate() {
	if ts.NPoints() == 0 || ts.NFields == 0 {
		ts.Data = nil
		return
	}
	ts.Data = make([]*mat.Dense, ts.NT())
	for j := range ts.Data {
		ts.Data[j] = mat.NewDense(ts.NFields, ts.NPoints(), nil)
		for i, p := range ts.Points {
			ts.Data[j].SetCol(i, p.Data[j])
		}
	}
}
