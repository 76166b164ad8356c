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
	"encoding/binary"

	"github.com/notargets/gllinterp/grid"
	"github.com/notargets/gllinterp/readfiles"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gonum.org/v1/gonum/mat"
)

// PointsCmd represents the points command
var PointsCmd = &cobra.Command{
	Use:   "points",
	Short: "Write the GLL nodes of a 2D grid as solver sampling points",
	Long: `
Writes the nodes of the spectral element grid matching the simulation box in
the binary int_pos format read by the solver,

gllinterp points --lenx 6.28 --lenz 1 --nx 16 --nz 4 --lx 8`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var order binary.ByteOrder = binary.LittleEndian
		if viper.GetBool(key(cmd, "big-endian")) {
			order = binary.BigEndian
		}
		return RunPoints(
			viper.GetString(key(cmd, "output")),
			viper.GetFloat64(key(cmd, "lenx")), viper.GetFloat64(key(cmd, "lenz")),
			viper.GetInt(key(cmd, "nx")), viper.GetInt(key(cmd, "nz")), viper.GetInt(key(cmd, "lx")),
			viper.GetFloat64(key(cmd, "eps")),
			viper.GetInt(key(cmd, "wdsize")), order,
		)
	},
}

func init() {
	rootCmd.AddCommand(PointsCmd)
	PointsCmd.Flags().Float64("lenx", 0, "length of the box along x")
	PointsCmd.Flags().Float64("lenz", 0, "length of the box along z")
	PointsCmd.Flags().Int("nx", 0, "number of elements along x")
	PointsCmd.Flags().Int("nz", 0, "number of elements along z")
	PointsCmd.Flags().Int("lx", 0, "number of GLL nodes per element")
	PointsCmd.Flags().Float64("eps", 1.e-7, "inset of the grid from the box walls")
	PointsCmd.Flags().Int("wdsize", 8, "bytes per real, 4 or 8")
	PointsCmd.Flags().Bool("big-endian", false, "write big endian data")
	PointsCmd.Flags().StringP("output", "o", "int_pos", "points file to write")
	bindFlags(PointsCmd)
}

func RunPoints(output string, lenx, lenz float64, nx, nz, lx int, eps float64,
	wdsize int, order binary.ByteOrder) (err error) {
	var g *grid.Grid2D
	if g, err = grid.NewSimpleGrid2D(eps, lenx-eps, eps, lenz-eps, nx, nz, lx); err != nil {
		return
	}
	nodes := g.GLL()
	locs := mat.NewDense(len(nodes), 2, nil)
	for i, p := range nodes {
		locs.SetRow(i, p[:])
	}
	if err = readfiles.WritePointsFile(output, locs, wdsize, order); err != nil {
		return
	}
	log.WithFields(log.Fields{"file": output, "npoints": len(nodes)}).Info("wrote points")
	return
}
