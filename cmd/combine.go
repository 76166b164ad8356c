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
	"github.com/notargets/gllinterp/readfiles"
	"github.com/notargets/gllinterp/utils"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// CombineCmd represents the combine command
var CombineCmd = &cobra.Command{
	Use:   "combine",
	Short: "Combine point-trace files into one netCDF series",
	Long: `
Finds the trace files pts<basename>[0-1].fNNNNN written by the solver, orders
them by write time, drops repeated time steps and writes a single series,

gllinterp combine --basename channel --output series.nc`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunCombine(
			viper.GetString(key(cmd, "dir")),
			viper.GetString(key(cmd, "basename")),
			viper.GetString(key(cmd, "output")),
			viper.GetInt(key(cmd, "workers")),
		)
	},
}

func init() {
	rootCmd.AddCommand(CombineCmd)
	CombineCmd.Flags().StringP("basename", "b", "", "case name used by the solver in the trace file names")
	CombineCmd.Flags().StringP("dir", "d", ".", "directory holding the trace files")
	CombineCmd.Flags().StringP("output", "o", "series.nc", "netCDF file to write")
	CombineCmd.Flags().IntP("workers", "w", utils.DefaultParallelDegree(), "number of files read concurrently")
	bindFlags(CombineCmd)
}

func RunCombine(dir, basename, output string, workers int) (err error) {
	var (
		paths []string
		s     *readfiles.Series
	)
	if paths, err = readfiles.FindTraceFiles(dir, basename); err != nil {
		return
	}
	if s, err = readfiles.CombineTimeSeries(paths, workers); err != nil {
		return
	}
	log.WithFields(log.Fields{"tmin": s.T[0], "tmax": s.T[len(s.T)-1]}).Info("time span of the data")
	return readfiles.WriteSeries(output, s)
}
