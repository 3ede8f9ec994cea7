// pkg/api/rows_v1.go
package api

import (
	"math"
	"strconv"
)

// Maybe is a float64 that marshals NaN as JSON null. Sweep rows carry NaN
// wherever no parameter combination is consistent with the plume
// observations, and encoding/json refuses bare NaN.
type Maybe float64

func (m Maybe) MarshalJSON() ([]byte, error) {
	f := float64(m)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

func (m *Maybe) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*m = Maybe(math.NaN())
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*m = Maybe(f)
	return nil
}

// EnvelopeRowV1 is the stable schema for consumption-envelope rows.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type EnvelopeRowV1 struct {
	AbioBioRatio   float64 `json:"abio_bio_ratio"`
	MaxConsumption Maybe   `json:"max_consumption"`
	MinConsumption Maybe   `json:"min_consumption"`
	MaxInflowHi    Maybe   `json:"max_inflow_hi"`
	MaxInflowLo    Maybe   `json:"max_inflow_lo"`
	MinInflowHi    Maybe   `json:"min_inflow_hi"`
	MinInflowLo    Maybe   `json:"min_inflow_lo"`
}

// ProfileRowV1 is the stable schema for per-inflow profile rows.
type ProfileRowV1 struct {
	AbioBioRatio     float64 `json:"abio_bio_ratio"`
	Inflow           float64 `json:"inflow"`
	ConsumptionNom   Maybe   `json:"consumption_nom"`
	ConsumptionSigma Maybe   `json:"consumption_sigma"`
	PlumeH2Nom       Maybe   `json:"plume_h2_nom"`
	PlumeH2Sigma     Maybe   `json:"plume_h2_sigma"`
	CriticalNom      Maybe   `json:"critical_nom"`
	CriticalSigma    Maybe   `json:"critical_sigma"`
}
