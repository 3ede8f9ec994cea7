// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/gosuri/uiprogress"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gonum.org/v1/plot/vg"

	"plumeflux-core/sweep"
	"plumeflux/internal/cli"
	"plumeflux/internal/dataset"
	"plumeflux/internal/figures"
	"plumeflux/internal/version"
	"plumeflux/internal/writers"
)

// RunContext is the plumefig entry point. Exit codes: 0 ok, 1 runtime
// failure, 2 usage error, 3 output flush failure.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("plumefig")
	fs.SetOutput(io.Discard)

	opts, err := cli.ParseArgs(fs, argv)
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
		_, _ = fmt.Fprintf(outw, "plumefig version %s\n", version.Version)
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 0
	}

	log := NewLogger(stderr, opts.Quiet)
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

	wantTurnover := opts.Figures == cli.FigureTurnover || opts.Figures == cli.FigureAll
	wantWindow := opts.Figures == cli.FigureFluxWindow || opts.Figures == cli.FigureAll

	var figs []*figures.Figure

	if wantTurnover {
		rows, err := runEnvelope(parent, cfg, obs, stderr, opts.Quiet)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return ExitCode(err)
		}
		fig, err := figures.Turnover(rows, ds)
		if err != nil {
			log.Error("turnover figure", zap.Error(err))
			return 1
		}
		figs = append(figs, fig)
	}
	if wantWindow {
		profs, err := sweep.Profiles(parent, cfg, obs, ds.ProfileRatios)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return ExitCode(err)
		}
		fig, err := figures.FluxWindow(profs, ds)
		if err != nil {
			log.Error("flux-window figure", zap.Error(err))
			return 1
		}
		figs = append(figs, fig)
	}

	for _, fig := range figs {
		if opts.Width > 0 {
			fig.Width = vg.Length(opts.Width) * vg.Inch
		}
		if opts.Height > 0 {
			fig.Height = vg.Length(opts.Height) * vg.Inch
		}
		paths, err := fig.Save(opts.OutDir, opts.Formats, opts.DPI)
		if err != nil {
			log.Error("save figure", zap.String("figure", fig.Name), zap.Error(err))
			return 1
		}
		log.Info("wrote figure", zap.String("figure", fig.Name), zap.Strings("paths", paths))
	}
	return 0
}

// runEnvelope sweeps the ratio axis with a per-row progress bar unless quiet.
func runEnvelope(ctx context.Context, cfg sweep.Config, obs sweep.Observations, stderr io.Writer, quiet bool) ([]sweep.EnvelopeRow, error) {
	if !quiet {
		prog := uiprogress.New()
		prog.Out = stderr
		prog.Start()
		defer prog.Stop()
		bar := prog.AddBar(cfg.Ratio.N)
		bar.AppendCompleted()
		cfg.OnRow = func(int) { bar.Incr() }
	}
	return sweep.Envelope(ctx, cfg, obs)
}

// ExitCode maps a sweep error to a process exit code: 130 for cancellation,
// 1 otherwise.
func ExitCode(err error) int {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return 130
	}
	return 1
}

// NewLogger builds the console logger both binaries share. Quiet drops it to
// warnings.
func NewLogger(w io.Writer, quiet bool) *zap.Logger {
	level := zap.InfoLevel
	if quiet {
		level = zap.WarnLevel
	}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	enc := zapcore.NewConsoleEncoder(encCfg)
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), level))
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
