// internal/writers/envelope.go
package writers

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"math"
	"strconv"

	"plumeflux/pkg/api"
)

var envelopeHeader = []string{
	"abio_bio_ratio",
	"max_consumption", "min_consumption",
	"max_inflow_hi", "max_inflow_lo",
	"min_inflow_hi", "min_inflow_lo",
}

func init() {
	RegisterEnvelope("csv", func(w io.Writer, rows []api.EnvelopeRowV1) error {
		return writeEnvelopeDelim(w, rows, ',')
	})
	RegisterEnvelope("tsv", func(w io.Writer, rows []api.EnvelopeRowV1) error {
		return writeEnvelopeDelim(w, rows, '\t')
	})
	RegisterEnvelope("json", func(w io.Writer, rows []api.EnvelopeRowV1) error {
		enc := json.NewEncoder(w)
		return enc.Encode(rows)
	})
	RegisterEnvelope("jsonl", func(w io.Writer, rows []api.EnvelopeRowV1) error {
		enc := json.NewEncoder(w)
		for _, r := range rows {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeEnvelopeDelim(w io.Writer, rows []api.EnvelopeRowV1, comma rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma
	if err := cw.Write(envelopeHeader); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			formatFloat(r.AbioBioRatio),
			formatMaybe(r.MaxConsumption), formatMaybe(r.MinConsumption),
			formatMaybe(r.MaxInflowHi), formatMaybe(r.MaxInflowLo),
			formatMaybe(r.MinInflowHi), formatMaybe(r.MinInflowLo),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// formatMaybe renders inconsistent cells as "nan" rather than the empty
// string so a round trip through ParseFloat works.
func formatMaybe(m api.Maybe) string {
	f := float64(m)
	if math.IsNaN(f) {
		return "nan"
	}
	return formatFloat(f)
}
