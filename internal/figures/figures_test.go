package figures

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"plumeflux-core/sweep"
	"plumeflux/internal/dataset"
)

func testSweep(t *testing.T) ([]sweep.EnvelopeRow, []sweep.Profile, dataset.Dataset) {
	t.Helper()
	ds := dataset.Default()
	cfg := sweep.Config{
		Inflow:  sweep.Grid{Min: 1e-5, Max: 1e5, N: 120},
		Ratio:   sweep.Grid{Min: 1e-6, Max: 1e6, N: 9},
		Workers: 2,
	}
	obs := ds.Observations()
	rows, err := sweep.Envelope(context.Background(), cfg, obs)
	require.NoError(t, err)
	profs, err := sweep.Profiles(context.Background(), cfg, obs, ds.ProfileRatios)
	require.NoError(t, err)
	return rows, profs, ds
}

func TestTurnoverBuilds(t *testing.T) {
	rows, _, ds := testSweep(t)
	fig, err := Turnover(rows, ds)
	require.NoError(t, err)
	require.Equal(t, "biomass_turnover_vs_abio_bio_ratio", fig.Name)
	require.Len(t, fig.Panels, 2)
	require.Len(t, fig.Panels[0], 3)
	require.Len(t, fig.Panels[1], 3)
}

func TestFluxWindowBuilds(t *testing.T) {
	_, profs, ds := testSweep(t)
	fig, err := FluxWindow(profs, ds)
	require.NoError(t, err)
	require.Equal(t, "h2_flux_window", fig.Name)
	require.Len(t, fig.Panels, 2)
	require.Len(t, fig.Panels[0], len(ds.ProfileRatios))
}

func TestRenderFormats(t *testing.T) {
	rows, _, ds := testSweep(t)
	fig, err := Turnover(rows, ds)
	require.NoError(t, err)

	var png bytes.Buffer
	require.NoError(t, fig.Render("png", &png, 96))
	require.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png.Bytes()[:4])

	var pdf bytes.Buffer
	require.NoError(t, fig.Render("pdf", &pdf, 96))
	require.True(t, bytes.HasPrefix(pdf.Bytes(), []byte("%PDF")))

	var svg bytes.Buffer
	require.NoError(t, fig.Render("svg", &svg, 96))
	require.Contains(t, svg.String(), "<svg")

	require.Error(t, fig.Render("gif", &png, 96))
}

func TestSaveWritesEachFormat(t *testing.T) {
	_, profs, ds := testSweep(t)
	fig, err := FluxWindow(profs[:1], ds)
	require.NoError(t, err)

	dir := t.TempDir()
	paths, err := fig.Save(dir, []string{"png", "svg"}, 72)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "h2_flux_window.png"),
		filepath.Join(dir, "h2_flux_window.svg"),
	}, paths)
	for _, p := range paths {
		st, err := os.Stat(p)
		require.NoError(t, err)
		require.Greater(t, st.Size(), int64(0))
	}
}

func TestAddBandSkipsSentinelRuns(t *testing.T) {
	p := logLogPanel("x", "y", 1, 100, 1, 100)
	xs := []float64{1, 2, 3, 4, 5, 6}
	lo := []float64{2, 2, math.NaN(), math.NaN(), 2, 2}
	hi := []float64{8, 8, math.NaN(), math.NaN(), 8, 8}
	require.NoError(t, addBand(p, xs, lo, hi, translucent(colBlue, 80), p.Y.Min, "band"))

	var buf bytes.Buffer
	fig := &Figure{Name: "band", Panels: [][]*plot.Plot{{p}}, Width: 4 * vg.Inch, Height: 3 * vg.Inch}
	require.NoError(t, fig.Render("png", &buf, 72))
	require.NotZero(t, buf.Len())
}

func TestLogXYsDropsNonPositive(t *testing.T) {
	pts := logXYs([]float64{1, 2, 3, 4}, []float64{10, 0, math.NaN(), 40})
	require.Len(t, pts, 2)
	require.Equal(t, 1.0, pts[0].X)
	require.Equal(t, 4.0, pts[1].X)
}
