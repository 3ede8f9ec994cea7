// internal/clibase/common.go
package clibase

import (
	"flag"
	"fmt"
)

// Common holds CLI fields shared by plumefig and plumetab.
type Common struct {
	// Dataset
	Config string // YAML observation overlay; empty = published defaults

	// Sweep grids
	RatioMin    float64
	RatioMax    float64
	RatioSteps  int
	InflowMin   float64
	InflowMax   float64
	InflowSteps int

	// Performance
	Threads int

	// Misc
	Quiet   bool
	Version bool
}

// Register wires the shared flags onto fs.
func Register(fs *flag.FlagSet, c *Common) {
	// Dataset
	fs.StringVar(&c.Config, "config", "", "YAML file overriding the published observation set")

	// Sweep grids
	fs.Float64Var(&c.RatioMin, "ratio-min", 1e-6, "smallest abiotic:biotic CH4 ratio [1e-6]")
	fs.Float64Var(&c.RatioMax, "ratio-max", 1e6, "largest abiotic:biotic CH4 ratio [1e6]")
	fs.IntVar(&c.RatioSteps, "ratio-steps", 100, "points on the ratio axis [100]")
	fs.Float64Var(&c.InflowMin, "inflow-min", 1e-5, "smallest seafloor H2 inflow (mol/s) [1e-5]")
	fs.Float64Var(&c.InflowMax, "inflow-max", 1e5, "largest seafloor H2 inflow (mol/s) [1e5]")
	fs.IntVar(&c.InflowSteps, "inflow-steps", 10000, "points on the inflow axis [10000]")

	// Performance
	fs.IntVar(&c.Threads, "threads", 0, "worker threads (0 = all CPUs) [0]")
	fs.IntVar(&c.Threads, "t", 0, "alias of --threads")

	// Misc
	fs.BoolVar(&c.Quiet, "quiet", false, "suppress progress and non-essential logs [false]")
	fs.BoolVar(&c.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&c.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&c.Version, "v", false, "alias of --version")
}

// Validate runs the shared sanity checks.
func Validate(c *Common) error {
	if c.RatioSteps < 2 || c.InflowSteps < 2 {
		return fmt.Errorf("grid axes need at least 2 points")
	}
	if c.RatioMin <= 0 || c.RatioMax <= c.RatioMin {
		return fmt.Errorf("ratio axis [%g, %g] must be ordered and positive", c.RatioMin, c.RatioMax)
	}
	if c.InflowMin <= 0 || c.InflowMax <= c.InflowMin {
		return fmt.Errorf("inflow axis [%g, %g] must be ordered and positive", c.InflowMin, c.InflowMax)
	}
	if c.Threads < 0 {
		return fmt.Errorf("threads must be >= 0")
	}
	return nil
}
