// core/sweep/sweep.go
// Parameter-grid sweeps over seafloor H2 inflow and plume abiotic:biotic CH4
// ratio. Each ratio row is independent, so rows fan out over a bounded worker
// pool; results land in pre-indexed slots so output order never depends on
// scheduling.
package sweep

import (
	"context"
	"math"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/floats"

	"plumeflux-core/flux"
	"plumeflux-core/uncert"
)

// Grid is a log-spaced axis from Min to Max (inclusive) with N points.
type Grid struct {
	Min, Max float64
	N        int
}

// Points materializes the axis.
func (g Grid) Points() []float64 {
	return floats.LogSpan(make([]float64, g.N), g.Min, g.Max)
}

// Observations bundles the directional plume measurements a sweep is checked
// against.
type Observations struct {
	PlumeCH4    uncert.Value // CH4 escaping in the plume (negative nominal)
	PlumeH2     uncert.Value // H2 escaping in the plume (negative nominal)
	MixingRatio uncert.Value // plume molar H2:CH4
	RBio        float64      // metabolic H2:CH4 ratio (negative)
}

// Config controls a sweep.
type Config struct {
	Inflow Grid // seafloor H2 inflow axis (mol/s)
	Ratio  Grid // abiotic:biotic CH4 ratio axis

	Workers int        // worker goroutines; <1 means GOMAXPROCS
	OnRow   func(i int) // optional per-completed-row hook (must be goroutine-safe)
}

// DefaultConfig mirrors the published analysis grids.
func DefaultConfig() Config {
	return Config{
		Inflow: Grid{Min: 1e-5, Max: 1e5, N: 10000},
		Ratio:  Grid{Min: 1e-6, Max: 1e6, N: 100},
	}
}

// EnvelopeRow is the consumption envelope at one abiotic:biotic ratio: the
// extreme biological H2 consumption rates consistent with both plume
// observations across all inflows, and the seafloor inflow bands required to
// support each extreme together with the observed plume escape. Fields are
// NaN when no inflow on the grid is consistent at this ratio.
type EnvelopeRow struct {
	Ratio float64

	MaxConsumption float64 // largest consistent |H2 bio| upper bound (mol/s)
	MinConsumption float64 // smallest consistent |H2 bio| lower bound (mol/s)

	MaxInflowHi, MaxInflowLo float64 // inflow band supporting MaxConsumption
	MinInflowHi, MinInflowLo float64 // inflow band supporting MinConsumption
}

// Envelope sweeps every ratio on the grid and reduces each row to its
// consumption envelope.
func Envelope(ctx context.Context, cfg Config, obs Observations) ([]EnvelopeRow, error) {
	ratios := cfg.Ratio.Points()
	inflows := cfg.Inflow.Points()
	rows := make([]EnvelopeRow, len(ratios))

	err := forEachRow(ctx, cfg, len(ratios), func(i int) {
		rows[i] = envelopeRow(ratios[i], inflows, obs)
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func envelopeRow(rAbb float64, inflows []float64, obs Observations) EnvelopeRow {
	maxHi := math.NaN()
	minLo := math.NaN()
	for _, h2in := range inflows {
		a := ConsistentConsumption(h2in, rAbb, obs)
		if hi := a.Hi(); !math.IsNaN(hi) && (math.IsNaN(maxHi) || hi > maxHi) {
			maxHi = hi
		}
		if lo := a.Lo(); !math.IsNaN(lo) && (math.IsNaN(minLo) || lo < minLo) {
			minLo = lo
		}
	}

	// Inflow needed to feed both the extremum and the observed escape,
	// bracketed by the plume H2 endmembers.
	escHi := -obs.PlumeH2.N + obs.PlumeH2.S
	escLo := -obs.PlumeH2.N - obs.PlumeH2.S
	return EnvelopeRow{
		Ratio:          rAbb,
		MaxConsumption: maxHi,
		MinConsumption: minLo,
		MaxInflowHi:    escHi + maxHi,
		MaxInflowLo:    escLo + maxHi,
		MinInflowHi:    escHi + minLo,
		MinInflowLo:    escLo + minLo,
	}
}

// ConsistentConsumption runs the full per-point chain: stoichiometric
// estimate, methane reconciliation, hydrogen reconciliation, magnitude.
func ConsistentConsumption(h2in, rAbb float64, obs Observations) uncert.Value {
	hb := flux.BioConsumption(h2in, rAbb, obs.MixingRatio)
	hb = flux.ReconcileMethane(obs.PlumeCH4, hb, obs.RBio, rAbb)
	return flux.ReconcileHydrogen(h2in, hb, obs.PlumeH2).Abs()
}

// Profile retains the full inflow axis at one ratio.
type Profile struct {
	Ratio  float64
	Inflow []float64

	// Consumption[i] is |consistent bio consumption| at Inflow[i]; PlumeH2[i]
	// the anticipated escape Inflow[i] − Consumption[i]. Sentinel where the
	// combination is inconsistent.
	Consumption []uncert.Value
	PlumeH2     []uncert.Value

	// Critical is the closed-form consumption bound at this ratio.
	Critical uncert.Value
}

// Profiles sweeps the inflow axis for each requested ratio.
func Profiles(ctx context.Context, cfg Config, obs Observations, ratios []float64) ([]Profile, error) {
	inflows := cfg.Inflow.Points()
	out := make([]Profile, len(ratios))

	err := forEachRow(ctx, cfg, len(ratios), func(i int) {
		r := ratios[i]
		p := Profile{
			Ratio:       r,
			Inflow:      inflows,
			Consumption: make([]uncert.Value, len(inflows)),
			PlumeH2:     make([]uncert.Value, len(inflows)),
			Critical:    flux.CriticalBioConsumption(obs.PlumeH2, obs.MixingRatio, r, obs.RBio),
		}
		for j, h2in := range inflows {
			c := ConsistentConsumption(h2in, r, obs)
			p.Consumption[j] = c
			p.PlumeH2[j] = c.Scale(-1).AddScalar(h2in)
		}
		out[i] = p
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// forEachRow distributes row indices over the worker pool, honoring ctx.
func forEachRow(ctx context.Context, cfg Config, n int, row func(i int)) error {
	workers := cfg.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				row(i)
				if cfg.OnRow != nil {
					cfg.OnRow(i)
				}
			}
		}()
	}

feed:
	for i := 0; i < n; i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	return ctx.Err()
}
