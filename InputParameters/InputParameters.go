package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
	"github.com/notargets/gllinterp/utils"
)

// Parameters of an interpolate job, obtained from the YAML input file or the command line
type InterpolateParameters struct {
	Input    string  `json:"Input"`  // combined series, netCDF
	Output   string  `json:"Output"` // interpolated field, netCDF
	LenX     float64 `json:"LenX"`
	LenZ     float64 `json:"LenZ"`
	NX       int     `json:"NX"` // Number of elements along x
	NZ       int     `json:"NZ"` // Number of elements along z
	Lx       int     `json:"Lx"` // Nodes per element
	Eps      float64 `json:"Eps"`
	Steps    int     `json:"Steps"` // Zero means every time step
	Workers  int     `json:"Workers"`
	Operator bool    `json:"Operator"`
}

func (ip *InterpolateParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *InterpolateParameters) Validate() (err error) {
	switch {
	case len(ip.Input) == 0:
		err = fmt.Errorf("%w: no input file", utils.ErrConfig)
	case len(ip.Output) == 0:
		err = fmt.Errorf("%w: no output file", utils.ErrConfig)
	case ip.NX < 1 || ip.NZ < 1:
		err = fmt.Errorf("%w: need at least one element per axis, have NX=%d NZ=%d", utils.ErrConfig, ip.NX, ip.NZ)
	case ip.Lx < 2:
		err = fmt.Errorf("%w: need at least 2 nodes per element, have Lx=%d", utils.ErrConfig, ip.Lx)
	case ip.Eps < 0 || ip.LenX <= 2*ip.Eps:
		err = fmt.Errorf("%w: LenX=%g leaves no room inside Eps=%g", utils.ErrConfig, ip.LenX, ip.Eps)
	case ip.LenZ <= 2*ip.Eps:
		err = fmt.Errorf("%w: LenZ=%g leaves no room inside Eps=%g", utils.ErrConfig, ip.LenZ, ip.Eps)
	case ip.Steps < 0 || ip.Workers < 0:
		err = fmt.Errorf("%w: Steps and Workers must not be negative", utils.ErrConfig)
	}
	return
}

// NodeCounts is the number of GLL nodes along x and z
func (ip *InterpolateParameters) NodeCounts() (npx, npz int) {
	return ip.NX*(ip.Lx-1) + 1, ip.NZ*(ip.Lx-1) + 1
}

func (ip *InterpolateParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Input\n", ip.Input)
	fmt.Printf("\"%s\"\t\t= Output\n", ip.Output)
	fmt.Printf("%8.5f\t\t= LenX\n", ip.LenX)
	fmt.Printf("%8.5f\t\t= LenZ\n", ip.LenZ)
	fmt.Printf("[%d, %d]\t\t\t= Elements (x, z)\n", ip.NX, ip.NZ)
	fmt.Printf("[%d]\t\t\t\t= Nodes per element\n", ip.Lx)
	fmt.Printf("%8.5g\t\t= Eps\n", ip.Eps)
	fmt.Printf("[%d]\t\t\t\t= Steps\n", ip.Steps)
	fmt.Printf("[%d]\t\t\t\t= Workers\n", ip.Workers)
	fmt.Printf("[%v]\t\t\t= Operator\n", ip.Operator)
}
