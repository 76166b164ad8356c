package readfiles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ctessum/cdf"
	"github.com/notargets/gllinterp/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestSeriesRoundTrip(t *testing.T) {
	s := &Series{
		T:         []float64{0, 0.5, 1},
		Locs:      mat.NewDense(4, 2, []float64{0, 0, 1, 0, 0, 1, 1, 1}),
		WriteTime: 1.25,
		Ldim:      2,
	}
	for n := range s.T {
		d := mat.NewDense(2, 4, nil)
		for f := 0; f < 2; f++ {
			for i := 0; i < 4; i++ {
				d.Set(f, i, float64(100*n+10*f+i))
			}
		}
		s.Data = append(s.Data, d)
	}
	path := filepath.Join(t.TempDir(), "series.nc")
	require.NoError(t, WriteSeries(path, s))

	got, err := ReadSeries(path)
	require.NoError(t, err)
	assert.Equal(t, s.T, got.T)
	assert.Equal(t, s.WriteTime, got.WriteTime)
	assert.Equal(t, s.Ldim, got.Ldim)
	assert.True(t, mat.Equal(s.Locs, got.Locs))
	require.Len(t, got.Data, len(s.Data))
	for n := range s.Data {
		assert.True(t, mat.Equal(s.Data[n], got.Data[n]))
	}
}

func TestWriteSeriesErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.nc")
	assert.ErrorIs(t, WriteSeries(path, &Series{}), utils.ErrValueSize)
	s := &Series{
		T:    []float64{0},
		Data: []*mat.Dense{mat.NewDense(1, 3, nil)},
		Locs: mat.NewDense(2, 2, nil),
		Ldim: 2,
	}
	assert.ErrorIs(t, WriteSeries(path, s), utils.ErrValueSize)

	// Steps without data and series without locations
	s = &Series{
		T:    []float64{0, 1},
		Data: []*mat.Dense{nil, nil},
		Locs: mat.NewDense(2, 2, nil),
		Ldim: 2,
	}
	assert.ErrorIs(t, WriteSeries(path, s), utils.ErrValueSize)
	s.Data = []*mat.Dense{mat.NewDense(1, 2, nil), nil}
	assert.ErrorIs(t, WriteSeries(path, s), utils.ErrValueSize)
	s.Data[1] = mat.NewDense(1, 2, nil)
	s.Locs = nil
	assert.ErrorIs(t, WriteSeries(path, s), utils.ErrValueSize)
	assert.ErrorIs(t, WriteField(path, []float64{0, 1}, []*mat.Dense{mat.NewDense(1, 1, nil), nil}), utils.ErrValueSize)
}

func TestReadSeriesNoSteps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.nc")
	file, err := os.Create(path)
	require.NoError(t, err)
	// t is the record dimension and no record is written
	h := cdf.NewHeader([]string{"t", "field", "point", "dim"}, []int{0, 1, 2, 2})
	h.AddVariable("t", []string{"t"}, []float64{0})
	h.AddVariable("data", []string{"t", "field", "point"}, []float64{0})
	h.AddVariable("locs", []string{"point", "dim"}, []float64{0})
	h.Define()
	f, err := cdf.Create(file, h)
	require.NoError(t, err)
	require.NoError(t, writeVar(f, "locs", []float64{0, 0, 1, 1}))
	require.NoError(t, cdf.UpdateNumRecs(file))
	require.NoError(t, file.Close())

	_, err = ReadSeries(path)
	assert.ErrorIs(t, err, utils.ErrValueSize)
}

func TestFieldRoundTrip(t *testing.T) {
	tt := []float64{1, 2}
	fields := []*mat.Dense{
		mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6}),
		mat.NewDense(2, 3, []float64{-1, -2, -3, -4, -5, -6}),
	}
	path := filepath.Join(t.TempDir(), "field.nc")
	require.NoError(t, WriteField(path, tt, fields))
	gotT, got, err := ReadField(path)
	require.NoError(t, err)
	assert.Equal(t, tt, gotT)
	require.Len(t, got, 2)
	for n := range fields {
		assert.True(t, mat.Equal(fields[n], got[n]))
	}
	assert.ErrorIs(t, WriteField(path, tt, fields[:1]), utils.ErrValueSize)
	assert.ErrorIs(t, WriteField(path, tt, []*mat.Dense{fields[0], mat.NewDense(3, 2, nil)}), utils.ErrValueSize)
}
