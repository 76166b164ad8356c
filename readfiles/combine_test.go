package readfiles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/notargets/gllinterp/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestFindTraceFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"ptsrun0.f00002", "ptsrun1.f00001", "ptsrun0.f00003",
		"ptsrun2.f00001", "ptsrun0.f0001", "ptsother0.f00001", "run.txt",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}
	paths, err := FindTraceFiles(dir, "run")
	require.NoError(t, err)
	var names []string
	for _, p := range paths {
		names = append(names, filepath.Base(p))
	}
	assert.Equal(t, []string{"ptsrun0.f00002", "ptsrun0.f00003", "ptsrun1.f00001"}, names)

	paths, err = FindTraceFiles(dir, "missing")
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestCombineTimeSeries(t *testing.T) {
	dir := t.TempDir()
	ids := []int32{2, 1, 3}
	// The later file sorts first by name, the combiner must order by write time
	later := newTrace(8, 8, ids, []float64{2, 3, 4}, 4)
	for _, steps := range later.data {
		steps[0][1] = -99
	}
	later.writeFile(t, filepath.Join(dir, "ptsrun0.f00001"))
	earlier := newTrace(4, 8, ids, []float64{0, 1, 2}, 2)
	earlier.writeFile(t, filepath.Join(dir, "ptsrun0.f00002"))

	paths, err := FindTraceFiles(dir, "run")
	require.NoError(t, err)
	require.Len(t, paths, 2)
	for _, workers := range []int{1, 2, 8} {
		s, err := CombineTimeSeries(paths, workers)
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 1, 2, 3, 4}, s.T)
		assert.Equal(t, 4.0, s.WriteTime)
		assert.Equal(t, 2, s.Ldim)
		nt, nf, np := s.Dims()
		assert.Equal(t, 5, nt)
		assert.Equal(t, 3, nf)
		assert.Equal(t, 3, np)
		// t=2 comes from the earlier file
		assert.Equal(t, 2.5, s.Data[2].At(1, 0))
		assert.Equal(t, 3.5, s.Data[3].At(1, 0))
		for i := 0; i < np; i++ {
			x := float64(i + 1)
			assert.Equal(t, 0.5*x, s.Locs.At(i, 0))
			for n, tt := range s.T {
				assert.Equal(t, 100*x+tt, s.Data[n].At(0, i))
			}
		}
	}
}

func TestCombineTimeSeriesErrors(t *testing.T) {
	_, err := CombineTimeSeries(nil, 2)
	assert.ErrorIs(t, err, utils.ErrConfig)

	dir := t.TempDir()
	newTrace(8, 8, []int32{1, 2}, []float64{0}, 0).writeFile(t, filepath.Join(dir, "a"))
	newTrace(8, 8, []int32{1, 2, 3}, []float64{1}, 1).writeFile(t, filepath.Join(dir, "b"))
	_, err = CombineTimeSeries([]string{filepath.Join(dir, "a"), filepath.Join(dir, "b")}, 2)
	assert.ErrorIs(t, err, utils.ErrValueSize)

	_, err = CombineTimeSeries([]string{filepath.Join(dir, "a"), filepath.Join(dir, "c")}, 2)
	assert.ErrorIs(t, err, os.ErrNotExist)

	// Files without time steps leave nothing to combine
	newTrace(8, 8, []int32{1, 2}, nil, 0).writeFile(t, filepath.Join(dir, "d"))
	newTrace(8, 8, []int32{1, 2}, nil, 1).writeFile(t, filepath.Join(dir, "e"))
	_, err = CombineTimeSeries([]string{filepath.Join(dir, "d"), filepath.Join(dir, "e")}, 2)
	assert.ErrorIs(t, err, utils.ErrValueSize)
}

func TestUniqueTimes(t *testing.T) {
	data := make([]*mat.Dense, 5)
	for i := range data {
		data[i] = mat.NewDense(1, 1, []float64{float64(i)})
	}
	tu, du := uniqueTimes([]float64{1, 0, 1, 2, 0}, data)
	assert.Equal(t, []float64{0, 1, 2}, tu)
	require.Len(t, du, 3)
	// first occurrence wins
	assert.Equal(t, 1.0, du[0].At(0, 0))
	assert.Equal(t, 0.0, du[1].At(0, 0))
	assert.Equal(t, 3.0, du[2].At(0, 0))
}
