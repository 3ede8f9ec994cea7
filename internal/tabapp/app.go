// internal/tabapp/app.go
package tabapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"go.uber.org/zap"

	"plumeflux-core/sweep"
	"plumeflux/internal/app"
	"plumeflux/internal/dataset"
	"plumeflux/internal/tabcli"
	"plumeflux/internal/version"
	"plumeflux/internal/writers"
)

// RunContext is the plumetab entry point. Exit codes: 0 ok, 1 runtime
// failure, 2 usage error, 3 output flush failure.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := tabcli.NewFlagSet("plumetab")
	fs.SetOutput(io.Discard)

	opts, err := tabcli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			if e := outw.Flush(); writers.IsBrokenPipe(e) {
				return 0
			} else if e != nil {
				_, _ = fmt.Fprintln(stderr, e)
				return 3
			}
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(outw)
		fs.Usage()
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 2
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "plumetab version %s\n", version.Version)
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 0
	}

	log := app.NewLogger(stderr, opts.Quiet)
	defer func() { _ = log.Sync() }()

	ds := dataset.Default()
	if opts.Config != "" {
		ds, err = dataset.Load(opts.Config)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		}
		log.Info("loaded dataset overlay", zap.String("path", opts.Config))
	}

	cfg := sweep.Config{
		Inflow:  sweep.Grid{Min: opts.InflowMin, Max: opts.InflowMax, N: opts.InflowSteps},
		Ratio:   sweep.Grid{Min: opts.RatioMin, Max: opts.RatioMax, N: opts.RatioSteps},
		Workers: opts.Threads,
	}
	obs := ds.Observations()

	switch opts.Table {
	case tabcli.TableEnvelope:
		rows, err := sweep.Envelope(parent, cfg, obs)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return app.ExitCode(err)
		}
		err = writers.WriteEnvelope(opts.Output, outw, writers.EnvelopeRows(rows))
		if writers.IsBrokenPipe(err) {
			return 0
		} else if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 1
		}
	case tabcli.TableProfiles:
		ratios := opts.Ratios
		if len(ratios) == 0 {
			ratios = ds.ProfileRatios
		}
		profs, err := sweep.Profiles(parent, cfg, obs, ratios)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return app.ExitCode(err)
		}
		err = writers.WriteProfile(opts.Output, outw, writers.ProfileRows(profs))
		if writers.IsBrokenPipe(err) {
			return 0
		} else if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 1
		}
	}

	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		_, _ = fmt.Fprintln(stderr, e)
		return 3
	}
	return 0
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
