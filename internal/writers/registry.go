// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"plumeflux/pkg/api"
)

// Writer registries (format → handler), registered from init() blocks in the
// per-schema files. Last registration wins.
var (
	envelopeWriters = map[string]func(io.Writer, []api.EnvelopeRowV1) error{}
	profileWriters  = map[string]func(io.Writer, []api.ProfileRowV1) error{}
)

func RegisterEnvelope(format string, fn func(io.Writer, []api.EnvelopeRowV1) error) {
	envelopeWriters[format] = fn
}

func RegisterProfile(format string, fn func(io.Writer, []api.ProfileRowV1) error) {
	profileWriters[format] = fn
}

// WriteEnvelope dispatches envelope rows to the writer registered for format.
func WriteEnvelope(format string, w io.Writer, rows []api.EnvelopeRowV1) error {
	fn, ok := envelopeWriters[format]
	if !ok {
		return fmt.Errorf("unknown envelope format %q (no writer registered)", format)
	}
	return fn(w, rows)
}

// WriteProfile dispatches profile rows to the writer registered for format.
func WriteProfile(format string, w io.Writer, rows []api.ProfileRowV1) error {
	fn, ok := profileWriters[format]
	if !ok {
		return fmt.Errorf("unknown profile format %q (no writer registered)", format)
	}
	return fn(w, rows)
}

// Formats lists the registered format names, sorted (both schemas register
// the same set).
func Formats() []string {
	out := make([]string, 0, len(envelopeWriters))
	for k := range envelopeWriters {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
