// internal/dataset/dataset.go
// Every literature number the analysis depends on, collected in one place
// with a YAML overlay so alternative observation sets can be swept without a
// rebuild. Defaults reproduce the published figures.
package dataset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"plumeflux-core/biomass"
	"plumeflux-core/flux"
	"plumeflux-core/sweep"
	"plumeflux-core/uncert"
)

// Uncertain is the YAML shape of an uncert.Value.
type Uncertain struct {
	Nominal float64 `yaml:"nominal"`
	Sigma   float64 `yaml:"sigma"`
}

func (u Uncertain) Value() uncert.Value { return uncert.New(u.Nominal, u.Sigma) }

// Range is a two-endpoint magnitude interval.
type Range struct {
	Lo float64 `yaml:"lo"`
	Hi float64 `yaml:"hi"`
}

// Plume holds the Cassini observation set.
type Plume struct {
	// CH4 and H2 are magnitude ranges of material escaping in the plume
	// (mol/s), per Higgins (2022).
	CH4 Range `yaml:"ch4"`
	H2  Range `yaml:"h2"`

	// MixingH2 and MixingCH4 are the plume volume mixing ratios per Waite
	// et al. (2017); their quotient is the molar H2:CH4 ratio.
	MixingH2  Uncertain `yaml:"mixing_h2"`
	MixingCH4 Uncertain `yaml:"mixing_ch4"`
}

// Endmember names a turnover scenario.
type Endmember struct {
	Name        string  `yaml:"name"`
	CellsPerMol float64 `yaml:"cells_per_mol"`
}

// StandingTable is the YAML shape of a biomass.StandingTable.
type StandingTable struct {
	Temperatures  []float64 `yaml:"temperatures"`
	EnergyLimited []float64 `yaml:"energy_limited_log10"`
	All           []float64 `yaml:"all_log10"`
	Min           float64   `yaml:"min_log10"`
	Max           float64   `yaml:"max_log10"`
}

func (t StandingTable) Table() biomass.StandingTable {
	return biomass.StandingTable{
		Temperatures:       t.Temperatures,
		EnergyLimitedLog10: t.EnergyLimited,
		AllLog10:           t.All,
		MinLog10:           t.Min,
		MaxLog10:           t.Max,
	}
}

// Habitability is the YAML shape of a biomass.HabitabilityProfile.
type Habitability struct {
	Temperatures         []float64 `yaml:"temperatures"`
	PercentUninhabitable []float64 `yaml:"percent_uninhabitable"`
}

func (h Habitability) Profile() biomass.HabitabilityProfile {
	return biomass.HabitabilityProfile{
		Temperatures:         h.Temperatures,
		PercentUninhabitable: h.PercentUninhabitable,
	}
}

// Dataset is the full analysis input set.
type Dataset struct {
	Plume Plume `yaml:"plume"`

	// RBio is the metabolic H2:CH4 ratio of methanogenesis (negative).
	RBio float64 `yaml:"r_bio"`

	// Turnover endmembers, ordered for the turnover figure legend.
	Turnover []Endmember `yaml:"turnover"`

	// InflowEstimates are literature seafloor H2 production estimates
	// (mol/s) marked on the flux-window figure.
	InflowEstimates []float64 `yaml:"inflow_estimates"`

	// AffholderRange is the plume-informed turnover range (kg C/yr) of
	// Affholder et al. (2022).
	AffholderRange Range `yaml:"affholder_range"`

	// ProfileRatios are the abiotic:biotic CH4 ratios given a full
	// flux-window column each.
	ProfileRatios []float64 `yaml:"profile_ratios"`

	// Standing biomass tables and habitability profiles per ocean pH.
	StandingPH8 StandingTable `yaml:"standing_ph8"`
	StandingPH9 StandingTable `yaml:"standing_ph9"`

	HabitabilityPH8 Habitability `yaml:"habitability_ph8"`
	HabitabilityPH9 Habitability `yaml:"habitability_ph9"`
}

// Default reproduces the published analysis inputs.
func Default() Dataset {
	return Dataset{
		Plume: Plume{
			CH4:       Range{Lo: 5.55, Hi: 167},
			H2:        Range{Lo: 22.2, Hi: 777},
			MixingH2:  Uncertain{Nominal: 0.9, Sigma: 0.5},
			MixingCH4: Uncertain{Nominal: 0.2, Sigma: 0.1},
		},
		RBio: -4,
		Turnover: []Endmember{
			{Name: "MC upper limit", CellsPerMol: 1e14},
			{Name: "MC lower limit", CellsPerMol: 3e12},
			{Name: "Earth-like methanogen", CellsPerMol: biomass.EarthlikeTurnover()},
			{Name: "Conservative minimum", CellsPerMol: 1e11},
		},
		InflowEstimates: []float64{1e-3, 0.6, 34, 100},
		AffholderRange:  Range{Lo: 1e5, Hi: 1e7},
		ProfileRatios:   []float64{0, 1, 100},
		StandingPH8: StandingTable{
			Temperatures: []float64{273.15, 293.15, 313.15, 333.15, 353.15, 373.15, 393.15},
			EnergyLimited: []float64{
				21.36597115, 20.24115261, 19.21049981, 18.28892984,
				17.43741759, 16.64208399, 15.88770475,
			},
			All: []float64{
				20.79381304, 19.11069861, 17.42397541, 15.86177034,
				14.41758129, 13.19506159, 12.14756325,
			},
			Min: 7.75368542,
			Max: 23.30382862,
		},
		StandingPH9: StandingTable{
			Temperatures: []float64{273.15, 293.15, 313.15, 333.15, 353.15, 373.15, 393.15},
			EnergyLimited: []float64{
				22.95860457, 21.58720607, 20.22866652, 19.02796195,
				18.02763894, 17.12340047, 16.24818359,
			},
			All: []float64{
				22.95860457, 21.58720607, 20.22771856, 18.89025471,
				17.63163126, 16.4660584, 15.43205872,
			},
			Min: 12.12892001,
			Max: 23.28333132,
		},
		HabitabilityPH8: Habitability{
			Temperatures: tempAxis(),
			PercentUninhabitable: []float64{
				11.48, 8.66, 6.78, 5.41, 3.98, 3.09, 2.37, 1.86, 1.24, 0.94,
				0.62, 0.44, 0.39, 0.30, 0.14, 0.14, 0.08, 0.07, 0.05, 0.04,
				0.02, 0.03, 0.02, 0.02, 0.02,
			},
		},
		HabitabilityPH9: Habitability{
			Temperatures: tempAxis(),
			PercentUninhabitable: []float64{
				97.50, 95.69, 93.60, 90.49, 87.36, 83.69, 80.16, 75.79,
				71.89, 67.74, 64.53, 59.74, 56.67, 53.89, 50.32, 47.02,
				45.35, 43.15, 41.38, 39.59, 38.35, 37.50, 36.71, 36.05, 35.72,
			},
		},
	}
}

// tempAxis is the 25-point habitability temperature axis, 273.15–393.15 K.
func tempAxis() []float64 {
	out := make([]float64, 25)
	for i := range out {
		out[i] = 273.15 + float64(i)*(393.15-273.15)/24
	}
	return out
}

// Load starts from Default and overlays the YAML file at path. Scalars and
// whole sequences are replaced; untouched fields keep their defaults.
func Load(path string) (Dataset, error) {
	ds := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return ds, fmt.Errorf("dataset: %w", err)
	}
	if err := yaml.Unmarshal(raw, &ds); err != nil {
		return ds, fmt.Errorf("dataset %s: %w", path, err)
	}
	if err := ds.Validate(); err != nil {
		return ds, fmt.Errorf("dataset %s: %w", path, err)
	}
	return ds, nil
}

// Validate rejects datasets the sweep or figures cannot use.
func (d Dataset) Validate() error {
	if d.Plume.CH4.Lo <= 0 || d.Plume.CH4.Hi <= d.Plume.CH4.Lo {
		return fmt.Errorf("plume ch4 range [%g, %g] not ordered positive", d.Plume.CH4.Lo, d.Plume.CH4.Hi)
	}
	if d.Plume.H2.Lo <= 0 || d.Plume.H2.Hi <= d.Plume.H2.Lo {
		return fmt.Errorf("plume h2 range [%g, %g] not ordered positive", d.Plume.H2.Lo, d.Plume.H2.Hi)
	}
	if d.Plume.MixingH2.Nominal <= 0 || d.Plume.MixingCH4.Nominal <= 0 {
		return fmt.Errorf("mixing ratios must have positive nominals")
	}
	if d.Plume.MixingH2.Sigma < 0 || d.Plume.MixingCH4.Sigma < 0 {
		return fmt.Errorf("mixing ratio sigmas must be non-negative")
	}
	if d.RBio >= 0 {
		return fmt.Errorf("r_bio %g must be negative (H2 consumed per CH4 produced)", d.RBio)
	}
	if len(d.Turnover) == 0 {
		return fmt.Errorf("at least one turnover endmember required")
	}
	for _, e := range d.Turnover {
		if e.CellsPerMol <= 0 {
			return fmt.Errorf("turnover %q: cells_per_mol must be positive", e.Name)
		}
	}
	if len(d.ProfileRatios) == 0 {
		return fmt.Errorf("at least one profile ratio required")
	}
	for _, r := range d.ProfileRatios {
		if r < 0 {
			return fmt.Errorf("profile ratio %g must be non-negative", r)
		}
	}
	for name, t := range map[string]StandingTable{"standing_ph8": d.StandingPH8, "standing_ph9": d.StandingPH9} {
		if len(t.Temperatures) == 0 ||
			len(t.Temperatures) != len(t.EnergyLimited) ||
			len(t.Temperatures) != len(t.All) {
			return fmt.Errorf("%s: temperature/means lengths inconsistent", name)
		}
	}
	for name, h := range map[string]Habitability{"habitability_ph8": d.HabitabilityPH8, "habitability_ph9": d.HabitabilityPH9} {
		if len(h.Temperatures) == 0 || len(h.Temperatures) != len(h.PercentUninhabitable) {
			return fmt.Errorf("%s: temperature/probability lengths inconsistent", name)
		}
	}
	return nil
}

// Observations assembles the sweep inputs.
func (d Dataset) Observations() sweep.Observations {
	return sweep.Observations{
		PlumeCH4:    flux.OutflowFromRange(d.Plume.CH4.Lo, d.Plume.CH4.Hi),
		PlumeH2:     flux.OutflowFromRange(d.Plume.H2.Lo, d.Plume.H2.Hi),
		MixingRatio: uncert.Div(d.Plume.MixingH2.Value(), d.Plume.MixingCH4.Value()),
		RBio:        d.RBio,
	}
}
