package integration

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"plumeflux/internal/app"
	"plumeflux/internal/tabapp"
)

var smallGrid = []string{
	"--ratio-steps", "9", "--inflow-steps", "120", "--quiet",
}

func TestFiguresThenTables(t *testing.T) {
	dir := t.TempDir()

	argv := append([]string{"--outdir", dir, "--format", "svg"}, smallGrid...)
	var errb bytes.Buffer
	if code := app.Run(argv, io.Discard, &errb); code != 0 {
		t.Fatalf("plumefig exit %d: %s", code, errb.String())
	}
	for _, name := range []string{"biomass_turnover_vs_abio_bio_ratio.svg", "h2_flux_window.svg"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("missing figure %s: %v", name, err)
		}
	}

	var out bytes.Buffer
	errb.Reset()
	if code := tabapp.Run(append([]string{"--output", "tsv"}, smallGrid...), &out, &errb); code != 0 {
		t.Fatalf("plumetab exit %d: %s", code, errb.String())
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 10 {
		t.Fatalf("expected header + 9 rows, got %d lines", len(lines))
	}
	if !strings.Contains(lines[0], "\t") {
		t.Fatalf("expected tab-separated header, got %q", lines[0])
	}
}

func TestSharedConfigOverlay(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "obs.yaml")
	overlay := "plume:\n  h2:\n    lo: 10\n    hi: 500\n"
	if err := os.WriteFile(cfg, []byte(overlay), 0o644); err != nil {
		t.Fatal(err)
	}

	var out, errb bytes.Buffer
	argv := append([]string{"--config", cfg}, smallGrid...)
	if code := tabapp.Run(argv, &out, &errb); code != 0 {
		t.Fatalf("plumetab exit %d: %s", code, errb.String())
	}
	if out.Len() == 0 {
		t.Fatal("expected table output")
	}
}

func TestCancelledContextExit130(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	argv := append([]string{"--figures", "turnover", "--outdir", t.TempDir()},
		"--ratio-steps", "50", "--inflow-steps", "10000", "--quiet")
	if code := app.RunContext(ctx, argv, io.Discard, io.Discard); code != 130 {
		t.Fatalf("expected exit 130 on cancel, got %d", code)
	}

	var out bytes.Buffer
	tab := append([]string{"--table", "profiles"}, "--ratio-steps", "9", "--inflow-steps", "10000", "--quiet")
	if code := tabapp.RunContext(ctx, tab, &out, io.Discard); code != 130 {
		t.Fatalf("expected exit 130 on cancel, got %d", code)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no table output on cancel, got %d bytes", out.Len())
	}
}
