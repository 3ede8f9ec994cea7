// core/flux/flux.go
// Hydrogen/methane mass balance for an ice-covered ocean fed by seafloor H2.
//
// Sign convention: fluxes entering the ocean are positive; fluxes leaving it
// (plume escape to space, biological consumption) are negative. Plume
// observations are therefore directional Values with negative nominals, and
// the consistency checks compare candidate outflows against the *magnitude*
// band of the observation.
//
// Steps for each consistency check:
//  1. Propose an outflow from the candidate biological consumption.
//  2. Intersect its uncertainty band with the observed magnitude band.
//  3. Overlap → merged Value mapped back to a consumption; none → sentinel.
package flux

import (
	"math"

	"plumeflux-core/uncert"
)

// BioConsumption estimates the H2 flux consumed by methanogens for a seafloor
// inflow h2in, a plume abiotic:biotic CH4 ratio rAbb, and the plume molar
// H2:CH4 mixing ratio rPlume:
//
//	-h2in / (1 + 0.25·rPlume·(1+rAbb))
//
// The 0.25 is the 4:1 H2:CH4 stoichiometry of hydrogenotrophic
// methanogenesis.
func BioConsumption(h2in, rAbb float64, rPlume uncert.Value) uncert.Value {
	denom := rPlume.Scale(0.25 * (1 + rAbb)).AddScalar(1)
	return uncert.Div(uncert.Exact(-h2in), denom)
}

// ReconcileMethane checks a candidate biological H2 consumption hBio against
// the observed plume methane mPlume. rBio is the metabolic H2:CH4 ratio
// (negative, typically -4); rAbb the plume abiotic:biotic CH4 ratio. On
// overlap it returns the consumption implied by the merged methane outflow;
// otherwise the sentinel.
func ReconcileMethane(mPlume, hBio uncert.Value, rBio, rAbb float64) uncert.Value {
	if hBio.IsNaN() {
		return uncert.NaN()
	}

	// Methane outflow this consumption would sustain, including the
	// abiotic contribution.
	mOut := hBio.Scale((1 + rAbb) / rBio)

	merged, ok := overlap(mOut, mPlume)
	if !ok {
		return uncert.NaN()
	}
	return merged.Scale(rBio / (1 + rAbb))
}

// ReconcileHydrogen checks the balance h2in + hBio + hPlume = 0: the hydrogen
// left over after consumption must match the observed plume escape hPlume.
// On overlap it returns the consumption range that closes the balance;
// otherwise the sentinel.
func ReconcileHydrogen(h2in float64, hBio, hPlume uncert.Value) uncert.Value {
	if hBio.IsNaN() {
		return uncert.NaN()
	}
	est := hBio.AddScalar(h2in) // should match -hPlume

	merged, ok := overlap(est, hPlume)
	if !ok {
		return uncert.NaN()
	}
	return merged.AddScalar(-h2in)
}

// CriticalBioConsumption is the closed-form bound on biological consumption
// for the observed plume hydrogen to remain explicable at ratio rAbb:
//
//	hPlume·rBio / (rPlume·(1+rAbb))
func CriticalBioConsumption(hPlume, rPlume uncert.Value, rAbb, rBio float64) uncert.Value {
	return uncert.Div(hPlume.Scale(rBio), rPlume.Scale(1+rAbb))
}

// OutflowFromRange builds a directional plume observation from a literature
// magnitude range [lo, hi] (mol/s leaving the ocean).
func OutflowFromRange(lo, hi float64) uncert.Value {
	nom := -(lo + hi) / 2
	return uncert.New(nom, math.Abs(nom+lo))
}

// overlap intersects the band of a candidate outflow est with the magnitude
// band of a directional observation obs. The merged Value spans the
// intersection; a zero-width or empty intersection reports !ok.
func overlap(est, obs uncert.Value) (uncert.Value, bool) {
	b := math.Max(est.Lo(), -obs.N-obs.S)
	t := math.Min(est.Hi(), -obs.N+obs.S)
	if !(b < t) {
		return uncert.NaN(), false
	}
	nom := (b + t) / 2
	return uncert.New(nom, math.Abs(nom-b)), true
}
