// internal/writers/convert.go
package writers

import (
	"plumeflux-core/sweep"
	"plumeflux/pkg/api"
)

// EnvelopeRows converts sweep envelope rows to their V1 wire schema.
func EnvelopeRows(rows []sweep.EnvelopeRow) []api.EnvelopeRowV1 {
	out := make([]api.EnvelopeRowV1, len(rows))
	for i, r := range rows {
		out[i] = api.EnvelopeRowV1{
			AbioBioRatio:   r.Ratio,
			MaxConsumption: api.Maybe(r.MaxConsumption),
			MinConsumption: api.Maybe(r.MinConsumption),
			MaxInflowHi:    api.Maybe(r.MaxInflowHi),
			MaxInflowLo:    api.Maybe(r.MaxInflowLo),
			MinInflowHi:    api.Maybe(r.MinInflowHi),
			MinInflowLo:    api.Maybe(r.MinInflowLo),
		}
	}
	return out
}

// ProfileRows flattens sweep profiles to their V1 wire schema, one row per
// (ratio, inflow) pair.
func ProfileRows(profs []sweep.Profile) []api.ProfileRowV1 {
	var out []api.ProfileRowV1
	for _, p := range profs {
		for j, inflow := range p.Inflow {
			out = append(out, api.ProfileRowV1{
				AbioBioRatio:     p.Ratio,
				Inflow:           inflow,
				ConsumptionNom:   api.Maybe(p.Consumption[j].N),
				ConsumptionSigma: api.Maybe(p.Consumption[j].S),
				PlumeH2Nom:       api.Maybe(p.PlumeH2[j].N),
				PlumeH2Sigma:     api.Maybe(p.PlumeH2[j].S),
				CriticalNom:      api.Maybe(p.Critical.N),
				CriticalSigma:    api.Maybe(p.Critical.S),
			})
		}
	}
	return out
}
