package readfiles

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/notargets/gllinterp/utils"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

// FindTraceFiles returns the trace files written for basename in dir
func FindTraceFiles(dir, basename string) (paths []string, err error) {
	pattern := filepath.Join(dir, "pts"+basename+"[0-1].f[0-9][0-9][0-9][0-9][0-9]")
	if paths, err = filepath.Glob(pattern); err != nil {
		return nil, fmt.Errorf("%w: bad trace file pattern %q: %v", utils.ErrConfig, pattern, err)
	}
	sort.Strings(paths)
	log.WithFields(log.Fields{"pattern": pattern, "count": len(paths)}).Info("found datafiles")
	return
}

// CombineTimeSeries reads the trace files concurrently, orders them by write
// time and joins them into a single Series. Repeated time values, which
// occur when consecutive files overlap, keep their first occurrence.
func CombineTimeSeries(paths []string, workers int) (s *Series, err error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no trace files to combine", utils.ErrConfig)
	}
	var (
		datasets = make([]*TimeSeries, len(paths))
		errs     = make([]error, len(paths))
		pm       = utils.NewPartitionMap(workers, len(paths))
	)
	pm.Run(func(bn, kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			if datasets[k], errs[k] = ReadTimeSeries(paths[k], true); errs[k] == nil {
				datasets[k].Collate()
			}
		}
		log.WithFields(log.Fields{"worker": bn, "files": kMax - kMin}).Debug("read trace files")
	})
	for _, e := range errs {
		if e != nil {
			return nil, e
		}
	}
	sort.SliceStable(datasets, func(i, j int) bool { return datasets[i].WriteTime < datasets[j].WriteTime })
	first := datasets[0]
	for _, ds := range datasets[1:] {
		if ds.NPoints() != first.NPoints() || ds.NFields != first.NFields {
			return nil, fmt.Errorf("%w: trace files disagree on shape, %d points/%d fields vs %d/%d",
				utils.ErrValueSize, ds.NPoints(), ds.NFields, first.NPoints(), first.NFields)
		}
	}
	var (
		t    []float64
		data []*mat.Dense
	)
	for _, ds := range datasets {
		t = append(t, ds.T...)
		data = append(data, ds.Data...)
	}
	s = &Series{
		Locs:      first.Locs(),
		WriteTime: datasets[len(datasets)-1].WriteTime,
		Ldim:      first.Ldim,
	}
	if len(t) == 0 {
		return nil, fmt.Errorf("%w: trace files hold no time steps", utils.ErrValueSize)
	}
	s.T, s.Data = uniqueTimes(t, data)
	log.WithFields(log.Fields{
		"files": len(paths), "steps": len(t), "unique": len(s.T),
	}).Info("combined time series")
	return
}

// uniqueTimes returns the sorted distinct times and the data of the first
// occurrence of each
func uniqueTimes(t []float64, data []*mat.Dense) (tu []float64, du []*mat.Dense) {
	ind := make([]int, len(t))
	for i := range ind {
		ind[i] = i
	}
	sort.SliceStable(ind, func(i, j int) bool { return t[ind[i]] < t[ind[j]] })
	for n, i := range ind {
		if n > 0 && t[i] == tu[len(tu)-1] {
			continue
		}
		tu = append(tu, t[i])
		du = append(du, data[i])
	}
	return
}
