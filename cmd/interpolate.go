/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/james-bowman/sparse"
	"github.com/notargets/gllinterp/InputParameters"
	"github.com/notargets/gllinterp/grid"
	"github.com/notargets/gllinterp/interpolator"
	"github.com/notargets/gllinterp/readfiles"
	"github.com/notargets/gllinterp/utils"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gonum.org/v1/gonum/mat"
)

// InterpolateCmd represents the interpolate command
var InterpolateCmd = &cobra.Command{
	Use:   "interpolate",
	Short: "Interpolate a combined series from GLL nodes onto uniform points in x",
	Long: `
Reads a series written by combine, reshapes the first field of each time step
onto the (x, z) GLL nodes and interpolates every z line onto uniformly spaced
points in x. Parameters come from the flags or from a YAML job file (-I),

gllinterp interpolate -i series.nc -o field.nc --lenx 6.28 --lenz 1 --nx 16 --nz 4 --lx 8`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var ip *InputParameters.InterpolateParameters
		if ip, err = interpolateParameters(cmd); err != nil {
			return
		}
		if viper.GetBool("verbose") {
			ip.Print()
		}
		return RunInterpolate(ip)
	},
}

func init() {
	rootCmd.AddCommand(InterpolateCmd)
	InterpolateCmd.Flags().StringP("inputParametersFile", "I", "", "YAML job file, overrides the other flags")
	InterpolateCmd.Flags().StringP("input", "i", "", "netCDF series written by combine")
	InterpolateCmd.Flags().StringP("output", "o", "", "netCDF file to write")
	InterpolateCmd.Flags().Float64("lenx", 0, "length of the box along x")
	InterpolateCmd.Flags().Float64("lenz", 0, "length of the box along z")
	InterpolateCmd.Flags().Int("nx", 0, "number of elements along x")
	InterpolateCmd.Flags().Int("nz", 0, "number of elements along z")
	InterpolateCmd.Flags().Int("lx", 0, "number of GLL nodes per element")
	InterpolateCmd.Flags().Float64("eps", 1.e-7, "inset of the grid from the box walls")
	InterpolateCmd.Flags().Int("steps", 0, "number of time steps to interpolate, 0 for all")
	InterpolateCmd.Flags().IntP("workers", "w", utils.DefaultParallelDegree(), "number of time steps processed concurrently")
	InterpolateCmd.Flags().Bool("operator", false, "apply a precomputed sparse interpolation operator")
	bindFlags(InterpolateCmd)
}

func interpolateParameters(cmd *cobra.Command) (ip *InputParameters.InterpolateParameters, err error) {
	ip = &InputParameters.InterpolateParameters{}
	if fileName := viper.GetString(key(cmd, "inputParametersFile")); len(fileName) != 0 {
		var data []byte
		if data, err = os.ReadFile(fileName); err != nil {
			return nil, err
		}
		if err = ip.Parse(data); err != nil {
			return nil, fmt.Errorf("%w: parsing %s: %v", utils.ErrConfig, fileName, err)
		}
	} else {
		*ip = InputParameters.InterpolateParameters{
			Input:    viper.GetString(key(cmd, "input")),
			Output:   viper.GetString(key(cmd, "output")),
			LenX:     viper.GetFloat64(key(cmd, "lenx")),
			LenZ:     viper.GetFloat64(key(cmd, "lenz")),
			NX:       viper.GetInt(key(cmd, "nx")),
			NZ:       viper.GetInt(key(cmd, "nz")),
			Lx:       viper.GetInt(key(cmd, "lx")),
			Eps:      viper.GetFloat64(key(cmd, "eps")),
			Steps:    viper.GetInt(key(cmd, "steps")),
			Workers:  viper.GetInt(key(cmd, "workers")),
			Operator: viper.GetBool(key(cmd, "operator")),
		}
	}
	if err = ip.Validate(); err != nil {
		return nil, err
	}
	return
}

// RunInterpolate interpolates the first field of each time step in ip.Input
// along x and writes data(t, npx, npz) to ip.Output
func RunInterpolate(ip *InputParameters.InterpolateParameters) (err error) {
	var (
		s  *readfiles.Series
		g  *grid.Grid1D
		op *sparse.CSR
	)
	if err = ip.Validate(); err != nil {
		return
	}
	if s, err = readfiles.ReadSeries(ip.Input); err != nil {
		return
	}
	if g, err = grid.NewSimpleGrid1D(ip.Eps, ip.LenX-ip.Eps, ip.NX, ip.Lx); err != nil {
		return
	}
	npx, npz := ip.NodeCounts()
	nt, _, np := s.Dims()
	if nt == 0 {
		return fmt.Errorf("%w: %s holds no time steps", utils.ErrValueSize, ip.Input)
	}
	if np != npx*npz {
		return fmt.Errorf("%w: series has %d points, the %dx%d grid has %d nodes",
			utils.ErrValueSize, np, npx, npz, npx*npz)
	}
	if ip.Steps > 0 && ip.Steps < nt {
		nt = ip.Steps
	}
	log.WithFields(log.Fields{
		"tmin": s.T[0], "tmax": s.T[len(s.T)-1], "steps": nt, "npx": npx, "npz": npz,
	}).Info("interpolating")

	var opts []interpolator.Option
	if ip.Workers > 1 {
		// time steps are already spread across the workers
		opts = append(opts, interpolator.WithParallelDegree(1))
	}
	intp := interpolator.NewInterpolator1D(g, opts...)
	points := utils.Linspace(ip.Eps, ip.LenX-ip.Eps, npx)
	if ip.Operator {
		if op, err = intp.Operator(points); err != nil {
			return
		}
	}
	var (
		fields = make([]*mat.Dense, nt)
		errs   = make([]error, nt)
		pm     = utils.NewPartitionMap(ip.Workers, nt)
	)
	pm.Run(func(bn, kMin, kMax int) {
		for n := kMin; n < kMax; n++ {
			fields[n], errs[n] = interpolateStep(intp, op, s.Data[n].RawRowView(0), points, npx, npz)
		}
		log.WithFields(log.Fields{"worker": bn, "steps": kMax - kMin}).Debug("interpolated time steps")
	})
	for n, e := range errs {
		if e != nil {
			return fmt.Errorf("time step %d: %w", n, e)
		}
	}
	log.Debug(utils.GetMemUsage())
	return readfiles.WriteField(ip.Output, s.T[:nt], fields)
}

// interpolateStep treats field as an npx x npz array stored column major and
// interpolates each column onto points
func interpolateStep(intp *interpolator.Interpolator1D, op *sparse.CSR,
	field, points []float64, npx, npz int) (out *mat.Dense, err error) {
	var (
		values []float64
		col    = make([]float64, npx)
	)
	out = mat.NewDense(len(points), npz, nil)
	for iz := 0; iz < npz; iz++ {
		copy(col, field[iz*npx:(iz+1)*npx])
		if op != nil {
			values, err = interpolator.ApplyOperator(op, col)
		} else {
			values, err = intp.Interpolate(col, points)
		}
		if err != nil {
			return nil, err
		}
		out.SetCol(iz, values)
	}
	return
}
