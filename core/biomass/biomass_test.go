package biomass

import (
	"math"
	"testing"

	"plumeflux-core/uncert"
)

func TestConversionFactors(t *testing.T) {
	// One cell/s sustained for a year, at half carbon by mass.
	wantKgC := CellDryMassKg * 0.5 * 3600 * 24 * 365
	if got := CarbonRateFactor(); math.Abs(got-wantKgC) > wantKgC*1e-12 {
		t.Errorf("CarbonRateFactor = %g, want %g", got, wantKgC)
	}

	// 1000 kg/s of plume water is 1e6 g/s.
	if got := PlumeCellConcentrationFactor(); got != 1e-6 {
		t.Errorf("PlumeCellConcentrationFactor = %g, want 1e-6", got)
	}

	if got := PlumeCarbonConcentrationFactor(); math.Abs(got-CellDryMassKg*0.5) > 1e-30 {
		t.Errorf("PlumeCarbonConcentrationFactor = %g", got)
	}
}

func TestEarthlikeTurnoverMagnitude(t *testing.T) {
	// ~10^11.6 cells per mol H2
	got := math.Log10(EarthlikeTurnover())
	if got < 11.5 || got > 11.7 {
		t.Errorf("log10 Earth-like turnover = %g, want ~11.6", got)
	}
}

func TestTurnoverCarbonRate(t *testing.T) {
	c := uncert.New(100, 10) // mol H2/s consumed
	v := TurnoverCarbonRate(1e12, c)
	want := 1e12 * CellDryMassKg * CellCarbonFraction * SecondsPerYear * 100
	if math.Abs(v.N-want) > want*1e-12 {
		t.Errorf("nominal = %g, want %g", v.N, want)
	}
	if math.Abs(v.S-want/10) > want*1e-12 {
		t.Errorf("deviation = %g, want %g", v.S, want/10)
	}
	if !TurnoverCarbonRate(1e12, uncert.NaN()).IsNaN() {
		t.Error("sentinel not propagated")
	}
}

func TestStandingTableLinearization(t *testing.T) {
	tbl := StandingTable{
		Temperatures:       []float64{273.15, 293.15},
		EnergyLimitedLog10: []float64{2, 3},
		AllLog10:           []float64{1, 2},
		MinLog10:           0,
		MaxLog10:           4,
	}
	if got := tbl.EnergyLimited(); got[0] != 100 || got[1] != 1000 {
		t.Errorf("EnergyLimited = %v", got)
	}
	if got := tbl.All(); got[0] != 10 || got[1] != 100 {
		t.Errorf("All = %v", got)
	}
	if tbl.Min() != 1 || tbl.Max() != 10000 {
		t.Errorf("extremes = %g, %g", tbl.Min(), tbl.Max())
	}
}
