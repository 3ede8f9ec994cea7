package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValidates(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestDefaultObservations(t *testing.T) {
	obs := Default().Observations()

	assert.InDelta(t, -86.275, obs.PlumeCH4.N, 1e-9)
	assert.InDelta(t, 80.725, obs.PlumeCH4.S, 1e-9)
	assert.InDelta(t, -399.6, obs.PlumeH2.N, 1e-9)
	assert.InDelta(t, 377.4, obs.PlumeH2.S, 1e-9)

	// 0.9/0.2 with relative errors in quadrature
	assert.InDelta(t, 4.5, obs.MixingRatio.N, 1e-9)
	assert.InDelta(t, 3.3634, obs.MixingRatio.S, 1e-3)
	assert.Equal(t, -4.0, obs.RBio)
}

func TestDefaultTables(t *testing.T) {
	ds := Default()
	assert.Len(t, ds.StandingPH8.Temperatures, 7)
	assert.Len(t, ds.HabitabilityPH9.PercentUninhabitable, 25)
	assert.InDelta(t, 273.15, ds.HabitabilityPH8.Temperatures[0], 1e-9)
	assert.InDelta(t, 393.15, ds.HabitabilityPH8.Temperatures[24], 1e-9)
	assert.Len(t, ds.Turnover, 4)
	assert.Equal(t, []float64{0, 1, 100}, ds.ProfileRatios)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "obs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
plume:
  h2:
    lo: 10
    hi: 500
r_bio: -4
profile_ratios: [0, 10]
`), 0o644))

	ds, err := Load(path)
	require.NoError(t, err)

	// overridden
	assert.Equal(t, 10.0, ds.Plume.H2.Lo)
	assert.Equal(t, 500.0, ds.Plume.H2.Hi)
	assert.Equal(t, []float64{0, 10}, ds.ProfileRatios)
	// untouched defaults survive
	assert.Equal(t, 5.55, ds.Plume.CH4.Lo)
	assert.Len(t, ds.Turnover, 4)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("r_bio: 4\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "r_bio")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestValidateTableLengths(t *testing.T) {
	ds := Default()
	ds.StandingPH8.All = ds.StandingPH8.All[:3]
	require.Error(t, ds.Validate())

	ds = Default()
	ds.HabitabilityPH9.PercentUninhabitable = nil
	require.Error(t, ds.Validate())
}
