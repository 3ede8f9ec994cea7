// core/biomass/biomass.go
// Converts biological H2 consumption into biomass turnover, carbon flux, and
// standing-population terms. Cell constants follow Higgins & Cockell (2020)
// total organic mass; the carbon fraction is the Atlas (1995) approximation.
package biomass

import (
	"math"

	"plumeflux-core/uncert"
)

const (
	// CellDryMassKg is the dry mass of a model methanogen cell (300 aC of
	// carbon-equivalent TOM).
	CellDryMassKg = 300 * 3.44128688529157e-18

	// CellCarbonFraction is the approximate mass fraction of a cell that is
	// carbon.
	CellCarbonFraction = 0.5

	// PlumeWaterKgPerSec caps the water mass flux feeding the plume.
	PlumeWaterKgPerSec = 1000

	SecondsPerYear = 3600 * 24 * 365
)

// EarthlikeTurnover is the cells-per-mol-H2 turnover of an Earth-like
// methanogen: 0.4 g biomass per gram-mole H2 at the model cell dry mass.
func EarthlikeTurnover() float64 {
	return 0.4 / (CellDryMassKg * 1000)
}

// CarbonRateFactor converts a cell production rate (cells/s) into a cellular
// carbon flux (kg C/yr).
func CarbonRateFactor() float64 {
	return CellDryMassKg * CellCarbonFraction * SecondsPerYear
}

// PlumeCellConcentrationFactor converts a cell production rate (cells/s)
// into the maximum plume cell concentration (cells/g H2O), assuming nothing
// dilutes or concentrates cells after they leave the habitat.
func PlumeCellConcentrationFactor() float64 {
	return 1 / (PlumeWaterKgPerSec * 1000)
}

// PlumeCarbonConcentrationFactor converts a cell production rate (cells/s)
// into the maximum plume cellular carbon concentration (g C/kg H2O).
func PlumeCarbonConcentrationFactor() float64 {
	return CellDryMassKg * CellCarbonFraction
}

// TurnoverCarbonRate scales a consumption magnitude (mol H2/s) by a turnover
// (cells/mol H2) into a carbon flux (kg C/yr).
func TurnoverCarbonRate(turnover float64, consumption uncert.Value) uncert.Value {
	return consumption.Scale(turnover * CellDryMassKg * CellCarbonFraction * SecondsPerYear)
}

// StandingTable is a habitable-distribution standing biomass table: mean
// log10 cell counts per mol/s of consumption at each temperature, for the
// energy-limited subset and the whole distribution, plus distribution
// extremes.
type StandingTable struct {
	Temperatures       []float64 // K
	EnergyLimitedLog10 []float64
	AllLog10           []float64
	MinLog10           float64
	MaxLog10           float64
}

// EnergyLimited returns the energy-limited means in linear cells.
func (t StandingTable) EnergyLimited() []float64 { return pow10(t.EnergyLimitedLog10) }

// All returns the whole-distribution means in linear cells.
func (t StandingTable) All() []float64 { return pow10(t.AllLog10) }

// Min returns the distribution minimum in linear cells.
func (t StandingTable) Min() float64 { return math.Pow(10, t.MinLog10) }

// Max returns the distribution maximum in linear cells.
func (t StandingTable) Max() float64 { return math.Pow(10, t.MaxLog10) }

func pow10(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = math.Pow(10, x)
	}
	return out
}

// HabitabilityProfile is the probability that a sampled ocean state is
// uninhabitable, as a function of temperature.
type HabitabilityProfile struct {
	Temperatures         []float64 // K
	PercentUninhabitable []float64
}
