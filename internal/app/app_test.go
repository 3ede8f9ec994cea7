package app

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// smallGrid keeps test sweeps fast.
var smallGrid = []string{
	"--ratio-steps", "9", "--inflow-steps", "120", "--quiet",
}

func run(t *testing.T, argv ...string) (int, string, string) {
	t.Helper()
	var out, errb bytes.Buffer
	code := Run(argv, &out, &errb)
	return code, out.String(), errb.String()
}

func TestHelpExitsZero(t *testing.T) {
	code, out, _ := run(t, "-h")
	require.Equal(t, 0, code)
	require.Contains(t, out, "plumefig")
	require.Contains(t, out, "--figures")
}

func TestVersion(t *testing.T) {
	code, out, _ := run(t, "--version")
	require.Equal(t, 0, code)
	require.Contains(t, out, "plumefig version")
}

func TestUnknownFigureIsUsageError(t *testing.T) {
	code, _, errs := run(t, "--figures", "sparkline")
	require.Equal(t, 2, code)
	require.Contains(t, errs, "sparkline")
}

func TestMissingConfigIsUsageError(t *testing.T) {
	code, _, _ := run(t, append([]string{"--config", "no/such/file.yaml"}, smallGrid...)...)
	require.Equal(t, 2, code)
}

func TestWritesFluxWindowSVG(t *testing.T) {
	dir := t.TempDir()
	argv := append([]string{
		"--figures", "fluxwindow", "--outdir", dir, "--format", "svg",
	}, smallGrid...)
	code, _, errs := run(t, argv...)
	require.Equal(t, 0, code, errs)

	st, err := os.Stat(filepath.Join(dir, "h2_flux_window.svg"))
	require.NoError(t, err)
	require.Greater(t, st.Size(), int64(0))
}

func TestWritesTurnoverSVG(t *testing.T) {
	dir := t.TempDir()
	argv := append([]string{
		"--figures", "turnover", "--outdir", dir, "--format", "svg",
	}, smallGrid...)
	code, _, errs := run(t, argv...)
	require.Equal(t, 0, code, errs)

	_, err := os.Stat(filepath.Join(dir, "biomass_turnover_vs_abio_bio_ratio.svg"))
	require.NoError(t, err)
}

func TestConfigOverlayApplies(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "obs.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("r_bio: -3\n"), 0o644))

	argv := append([]string{
		"--config", cfg, "--figures", "fluxwindow", "--outdir", dir, "--format", "svg",
	}, smallGrid...)
	code, _, errs := run(t, argv...)
	require.Equal(t, 0, code, errs)
}

func TestExitCode(t *testing.T) {
	require.Equal(t, 1, ExitCode(os.ErrPermission))
	require.Equal(t, 130, ExitCode(context.Canceled))
	require.Equal(t, 130, ExitCode(fmt.Errorf("sweep: %w", context.Canceled)))
}

func TestLoggerQuietSuppressesInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, true)
	log.Info("hidden")
	log.Warn("shown")
	require.NoError(t, log.Sync())
	require.False(t, strings.Contains(buf.String(), "hidden"))
	require.Contains(t, buf.String(), "shown")
}
