// internal/tabcli/options.go
package tabcli

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"plumeflux/internal/clibase"
	"plumeflux/internal/writers"
)

// Table names accepted by --table.
const (
	TableEnvelope = "envelope"
	TableProfiles = "profiles"
)

// Options holds all plumetab flags.
type Options struct {
	clibase.Common

	Table  string    // envelope | profiles
	Output string    // csv | tsv | json | jsonl
	Ratios []float64 // profile ratios; empty = dataset default
}

// ratioSlice appends parsed values to a *[]float64 (for --ratio).
type ratioSlice struct{ dst *[]float64 }

func (s *ratioSlice) String() string {
	if s.dst == nil {
		return ""
	}
	parts := make([]string, len(*s.dst))
	for i, r := range *s.dst {
		parts[i] = strconv.FormatFloat(r, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

func (s *ratioSlice) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		f, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return fmt.Errorf("ratio %q: %w", part, err)
		}
		if f < 0 {
			return fmt.Errorf("ratio %g must be non-negative", f)
		}
		*s.dst = append(*s.dst, f)
	}
	return nil
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	clibase.UsageCommon(fs, name, "icy-moon plume flux tables",
		func(out io.Writer, def func(string) string) {
			fmt.Fprintln(out, "Exports the consistency-sweep results as machine-readable tables.")
			fmt.Fprintln(out, "\nTable:")
			fmt.Fprintf(out, "      --table string          Table: envelope | profiles [%s]\n", def("table"))
			fmt.Fprintf(out, "  -o, --output string         Format: %s [%s]\n", strings.Join(writers.Formats(), " | "), def("output"))
			fmt.Fprintln(out, "      --ratio float           Profile ratio (repeatable or comma-separated)")
		})
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	clibase.Register(fs, &opt.Common)

	fs.StringVar(&opt.Table, "table", TableEnvelope, "table: envelope | profiles [envelope]")
	fs.StringVar(&opt.Output, "output", "csv", "output format: csv | tsv | json | jsonl [csv]")
	fs.StringVar(&opt.Output, "o", "csv", "alias of --output")
	fs.Var(&ratioSlice{dst: &opt.Ratios}, "ratio", "profile ratio (repeatable)")

	fs.BoolVar(&help, "h", false, "show this help message [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	return opt, Validate(&opt)
}

// Validate checks plumetab-specific fields, then the shared block.
func Validate(opt *Options) error {
	switch opt.Table {
	case TableEnvelope, TableProfiles:
	default:
		return fmt.Errorf("unknown --table %q (want envelope | profiles)", opt.Table)
	}
	found := false
	for _, f := range writers.Formats() {
		if f == opt.Output {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("unknown --output %q (want %s)", opt.Output, strings.Join(writers.Formats(), " | "))
	}
	return clibase.Validate(&opt.Common)
}
