package readfiles

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/notargets/gllinterp/utils"
)

// DetectByteOrder reads the 4 byte endian tag and returns the byte order in
// which it decodes to 6.54321.
func DetectByteOrder(r io.Reader) (order binary.ByteOrder, err error) {
	var tag [4]byte
	if _, err = io.ReadFull(r, tag[:]); err != nil {
		return nil, fmt.Errorf("reading endian tag: %w", err)
	}
	little := float64(math.Float32frombits(binary.LittleEndian.Uint32(tag[:])))
	big := float64(math.Float32frombits(binary.BigEndian.Uint32(tag[:])))
	switch {
	case utils.Truncate5(little) == utils.ENDIANTAG:
		order = binary.LittleEndian
	case utils.Truncate5(big) == utils.ENDIANTAG:
		order = binary.BigEndian
	default:
		err = fmt.Errorf("%w: could not determine endian, tag reads %v (little) / %v (big)",
			utils.ErrConfig, little, big)
	}
	return
}

func writeEndianTag(w io.Writer, order binary.ByteOrder) error {
	return binary.Write(w, order, float32(utils.ENDIANTAG))
}

func checkWordSize(wdsize int) (err error) {
	if wdsize != 4 && wdsize != 8 {
		err = fmt.Errorf("%w: word size must be 4 or 8, got %d", utils.ErrConfig, wdsize)
	}
	return
}

// readReals reads n reals of the given word size
func readReals(r io.Reader, order binary.ByteOrder, wdsize, n int) (x []float64, err error) {
	x = make([]float64, n)
	switch wdsize {
	case 4:
		x32 := make([]float32, n)
		if err = binary.Read(r, order, x32); err != nil {
			return nil, err
		}
		for i, v := range x32 {
			x[i] = float64(v)
		}
	case 8:
		if err = binary.Read(r, order, x); err != nil {
			return nil, err
		}
	default:
		return nil, checkWordSize(wdsize)
	}
	return
}

func writeReals(w io.Writer, order binary.ByteOrder, wdsize int, x []float64) (err error) {
	switch wdsize {
	case 4:
		x32 := make([]float32, len(x))
		for i, v := range x {
			x32[i] = float32(v)
		}
		err = binary.Write(w, order, x32)
	case 8:
		err = binary.Write(w, order, x)
	default:
		err = checkWordSize(wdsize)
	}
	return
}

func readInts(r io.Reader, order binary.ByteOrder, n int) (x []int32, err error) {
	x = make([]int32, n)
	if err = binary.Read(r, order, x); err != nil {
		return nil, err
	}
	return
}
