// internal/writers/profile.go
package writers

import (
	"encoding/csv"
	"encoding/json"
	"io"

	"plumeflux/pkg/api"
)

var profileHeader = []string{
	"abio_bio_ratio", "inflow",
	"consumption_nom", "consumption_sigma",
	"plume_h2_nom", "plume_h2_sigma",
	"critical_nom", "critical_sigma",
}

func init() {
	RegisterProfile("csv", func(w io.Writer, rows []api.ProfileRowV1) error {
		return writeProfileDelim(w, rows, ',')
	})
	RegisterProfile("tsv", func(w io.Writer, rows []api.ProfileRowV1) error {
		return writeProfileDelim(w, rows, '\t')
	})
	RegisterProfile("json", func(w io.Writer, rows []api.ProfileRowV1) error {
		return json.NewEncoder(w).Encode(rows)
	})
	RegisterProfile("jsonl", func(w io.Writer, rows []api.ProfileRowV1) error {
		enc := json.NewEncoder(w)
		for _, r := range rows {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeProfileDelim(w io.Writer, rows []api.ProfileRowV1, comma rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma
	if err := cw.Write(profileHeader); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			formatFloat(r.AbioBioRatio), formatFloat(r.Inflow),
			formatMaybe(r.ConsumptionNom), formatMaybe(r.ConsumptionSigma),
			formatMaybe(r.PlumeH2Nom), formatMaybe(r.PlumeH2Sigma),
			formatMaybe(r.CriticalNom), formatMaybe(r.CriticalSigma),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
