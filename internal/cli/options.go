// internal/cli/options.go
package cli

import (
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"plumeflux/internal/clibase"
)

// Figure names accepted by --figures.
const (
	FigureTurnover   = "turnover"
	FigureFluxWindow = "fluxwindow"
	FigureAll        = "all"
)

var knownFormats = map[string]bool{"png": true, "pdf": true, "svg": true}

// Options holds all plumefig flags.
type Options struct {
	clibase.Common

	Figures string   // turnover | fluxwindow | all
	OutDir  string
	Formats []string // png | pdf | svg (repeatable)
	DPI     int      // raster resolution for png

	// Width and Height override a figure's native page size, in inches.
	// Zero keeps the native size.
	Width  float64
	Height float64
}

// formatSlice appends each value to a *[]string (for --format).
type formatSlice struct{ dst *[]string }

func (s *formatSlice) String() string {
	if s.dst == nil {
		return ""
	}
	return strings.Join(*s.dst, ",")
}

func (s *formatSlice) Set(v string) error {
	for _, f := range strings.Split(v, ",") {
		f = strings.TrimSpace(strings.ToLower(f))
		if f == "" {
			continue
		}
		*s.dst = append(*s.dst, f)
	}
	return nil
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	clibase.UsageCommon(fs, name, "icy-moon plume flux figures",
		func(out io.Writer, def func(string) string) {
			fmt.Fprintln(out, "Renders the biomass-turnover and flux-window figures for the")
			fmt.Fprintln(out, "hydrogen/methane plume consistency analysis.")
			fmt.Fprintln(out, "\nFigures:")
			fmt.Fprintf(out, "      --figures string        Figure set: turnover | fluxwindow | all [%s]\n", def("figures"))
			fmt.Fprintf(out, "      --outdir dir            Output directory [%s]\n", def("outdir"))
			fmt.Fprintf(out, "  -f, --format string         Output format(s): png | pdf | svg (repeatable) [png]\n")
			fmt.Fprintf(out, "      --dpi int               Raster resolution for png [%s]\n", def("dpi"))
			fmt.Fprintf(out, "      --width float           Page width in inches (0 = figure default) [%s]\n", def("width"))
			fmt.Fprintf(out, "      --height float          Page height in inches (0 = figure default) [%s]\n", def("height"))
		})
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	clibase.Register(fs, &opt.Common)

	fs.StringVar(&opt.Figures, "figures", FigureAll, "figure set: turnover | fluxwindow | all [all]")
	fs.StringVar(&opt.OutDir, "outdir", "figures", "output directory [figures]")
	fmtVal := &formatSlice{dst: &opt.Formats}
	fs.Var(fmtVal, "format", "output format(s): png | pdf | svg (repeatable)")
	fs.Var(fmtVal, "f", "alias of --format")
	fs.IntVar(&opt.DPI, "dpi", 200, "raster resolution for png [200]")
	fs.Float64Var(&opt.Width, "width", 0, "page width in inches (0 = figure default)")
	fs.Float64Var(&opt.Height, "height", 0, "page height in inches (0 = figure default)")

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

// Validate checks plumefig-specific fields, then the shared block.
func Validate(opt *Options) error {
	switch opt.Figures {
	case FigureTurnover, FigureFluxWindow, FigureAll:
	default:
		return fmt.Errorf("unknown --figures %q (want turnover | fluxwindow | all)", opt.Figures)
	}

	if len(opt.Formats) == 0 {
		opt.Formats = []string{"png"}
	}
	seen := map[string]bool{}
	var dedup []string
	for _, f := range opt.Formats {
		if !knownFormats[f] {
			return fmt.Errorf("unknown --format %q (want png | pdf | svg)", f)
		}
		if !seen[f] {
			seen[f] = true
			dedup = append(dedup, f)
		}
	}
	sort.Strings(dedup)
	opt.Formats = dedup

	if opt.OutDir == "" {
		return fmt.Errorf("--outdir must not be empty")
	}
	if opt.DPI < 36 || opt.DPI > 1200 {
		return fmt.Errorf("--dpi %d out of range [36, 1200]", opt.DPI)
	}
	if opt.Width < 0 || opt.Height < 0 {
		return fmt.Errorf("--width/--height must be non-negative")
	}
	return clibase.Validate(&opt.Common)
}
