package readfiles

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/notargets/gllinterp/utils"
	"gonum.org/v1/gonum/mat"
)

const pointsHeaderSize = 32

// WritePoints writes the interpolation point file read by the sampling
// solver: a 32 byte header, the endian tag and the coordinates of each point.
// locs is NPoints x Ldim.
func WritePoints(w io.Writer, locs mat.Matrix, wdsize int, order binary.ByteOrder) (err error) {
	if err = checkWordSize(wdsize); err != nil {
		return
	}
	np, ldim := locs.Dims()
	hdr := fmt.Sprintf("#iv1 %1d %1d %10d ", wdsize, ldim, np)
	if len(hdr) > pointsHeaderSize {
		return fmt.Errorf("%w: points header %q exceeds %d bytes", utils.ErrConfig, hdr, pointsHeaderSize)
	}
	bw := bufio.NewWriter(w)
	if _, err = bw.WriteString(fmt.Sprintf("%-*s", pointsHeaderSize, hdr)); err != nil {
		return
	}
	if err = writeEndianTag(bw, order); err != nil {
		return
	}
	row := make([]float64, ldim)
	for i := 0; i < np; i++ {
		mat.Row(row, i, locs)
		if err = writeReals(bw, order, wdsize, row); err != nil {
			return
		}
	}
	return bw.Flush()
}

// WritePointsFile creates filename and writes the points to it
func WritePointsFile(filename string, locs mat.Matrix, wdsize int, order binary.ByteOrder) (err error) {
	var file *os.File
	if file, err = os.Create(filename); err != nil {
		return fmt.Errorf("unable to create file %s: %w", filename, err)
	}
	if err = WritePoints(file, locs, wdsize, order); err != nil {
		file.Close()
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	return file.Close()
}

// ReadPoints decodes a file written by WritePoints
func ReadPoints(r io.Reader) (locs *mat.Dense, wdsize int, order binary.ByteOrder, err error) {
	hdr := make([]byte, pointsHeaderSize)
	if _, err = io.ReadFull(r, hdr); err != nil {
		return nil, 0, nil, fmt.Errorf("reading header: %w", err)
	}
	fields := strings.Fields(string(hdr))
	if len(fields) != 4 || fields[0] != "#iv1" {
		return nil, 0, nil, fmt.Errorf("%w: bad points header %q", utils.ErrConfig, hdr)
	}
	var ldim, np int
	for i, dst := range []*int{&wdsize, &ldim, &np} {
		if *dst, err = strconv.Atoi(fields[i+1]); err != nil {
			return nil, 0, nil, fmt.Errorf("%w: points header field %d: %v", utils.ErrConfig, i+1, err)
		}
	}
	if err = checkWordSize(wdsize); err != nil {
		return nil, 0, nil, err
	}
	if ldim < 1 || np < 1 {
		return nil, 0, nil, fmt.Errorf("%w: points header ldim=%d npoints=%d", utils.ErrConfig, ldim, np)
	}
	if order, err = DetectByteOrder(r); err != nil {
		return nil, 0, nil, err
	}
	var x []float64
	if x, err = readReals(r, order, wdsize, np*ldim); err != nil {
		return nil, 0, nil, fmt.Errorf("reading coordinates: %w", err)
	}
	return mat.NewDense(np, ldim, x), wdsize, order, nil
}
