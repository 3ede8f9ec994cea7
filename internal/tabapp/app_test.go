package tabapp

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

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
	require.Contains(t, out, "plumetab")
	require.Contains(t, out, "--table")
}

func TestVersion(t *testing.T) {
	code, out, _ := run(t, "--version")
	require.Equal(t, 0, code)
	require.Contains(t, out, "plumetab version")
}

func TestUnknownOutputIsUsageError(t *testing.T) {
	code, _, errs := run(t, "--output", "parquet")
	require.Equal(t, 2, code)
	require.Contains(t, errs, "parquet")
}

func TestEnvelopeCSV(t *testing.T) {
	code, out, errs := run(t, smallGrid...)
	require.Equal(t, 0, code, errs)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 10) // header + 9 ratio rows
	require.Contains(t, lines[0], "abio_bio_ratio")
	require.Contains(t, lines[0], "max_consumption")
}

func TestProfilesJSONL(t *testing.T) {
	argv := append([]string{"--table", "profiles", "--output", "jsonl", "--ratio", "1"}, smallGrid...)
	code, out, errs := run(t, argv...)
	require.Equal(t, 0, code, errs)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 120) // one inflow axis at one ratio
	var row map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &row))
	require.Contains(t, row, "abio_bio_ratio")
	require.Contains(t, row, "inflow")
}

func TestProfilesDefaultRatiosFromDataset(t *testing.T) {
	argv := append([]string{"--table", "profiles", "--output", "jsonl"}, smallGrid...)
	code, out, errs := run(t, argv...)
	require.Equal(t, 0, code, errs)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3*120) // dataset default: three profile ratios
}
