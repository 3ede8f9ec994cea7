// internal/clibase/usage.go
package clibase

import (
	"flag"
	"fmt"
	"io"

	"plumeflux/internal/version"
)

// UsageCommon installs a shared Usage() handler on fs. extra prints
// tool-specific sections (figure selection, table formats, ...).
func UsageCommon(fs *flag.FlagSet, name, oneliner string, extra func(out io.Writer, def func(string) string)) {
	fs.Usage = func() {
		out := fs.Output()
		def := func(flagName string) string {
			if f := fs.Lookup(flagName); f != nil {
				return f.DefValue
			}
			return ""
		}

		fmt.Fprintf(out, "%s – %s\n\n", name, oneliner)
		fmt.Fprintf(out, "Version: %s\n\n", version.Version)

		if extra != nil {
			extra(out, def)
		}

		fmt.Fprintln(out, "\nDataset:")
		fmt.Fprintln(out, "      --config file           YAML overriding the published observation set")

		fmt.Fprintln(out, "\nSweep grid:")
		fmt.Fprintf(out, "      --ratio-min float       Smallest abiotic:biotic CH4 ratio [%s]\n", def("ratio-min"))
		fmt.Fprintf(out, "      --ratio-max float       Largest abiotic:biotic CH4 ratio [%s]\n", def("ratio-max"))
		fmt.Fprintf(out, "      --ratio-steps int       Points on the ratio axis [%s]\n", def("ratio-steps"))
		fmt.Fprintf(out, "      --inflow-min float      Smallest seafloor H2 inflow, mol/s [%s]\n", def("inflow-min"))
		fmt.Fprintf(out, "      --inflow-max float      Largest seafloor H2 inflow, mol/s [%s]\n", def("inflow-max"))
		fmt.Fprintf(out, "      --inflow-steps int      Points on the inflow axis [%s]\n", def("inflow-steps"))

		fmt.Fprintln(out, "\nPerformance:")
		fmt.Fprintf(out, "  -t, --threads int           Worker threads (0=all CPUs) [%s]\n", def("threads"))

		fmt.Fprintln(out, "\nMiscellaneous:")
		fmt.Fprintf(out, "  -q, --quiet                 Suppress progress and non-essential logs [%s]\n", def("quiet"))
		fmt.Fprintln(out, "  -v, --version               Print version and exit")
		fmt.Fprintln(out, "  -h, --help                  Show this help and exit")
	}
}
