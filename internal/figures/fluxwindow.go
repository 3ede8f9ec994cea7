// internal/figures/fluxwindow.go
package figures

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"plumeflux-core/biomass"
	"plumeflux-core/sweep"
	"plumeflux/internal/dataset"
)

// FluxWindow builds the flux-window figure: one column per abiotic:biotic
// ratio, with the consistent consumption window over seafloor inflow on top
// and the implied cellular carbon production below.
func FluxWindow(profs []sweep.Profile, ds dataset.Dataset) (*Figure, error) {
	top := make([]*plot.Plot, len(profs))
	bottom := make([]*plot.Plot, len(profs))
	for i, prof := range profs {
		p, err := windowPanel(prof, ds, i == 0)
		if err != nil {
			return nil, err
		}
		top[i] = p
		q, err := carbonPanel(prof, ds, i == 0)
		if err != nil {
			return nil, err
		}
		bottom[i] = q
	}
	return &Figure{
		Name:   "h2_flux_window",
		Panels: [][]*plot.Plot{top, bottom},
		Width:  vg.Length(6*len(profs)) * vg.Inch,
		Height: 10 * vg.Inch,
	}, nil
}

// windowPanel plots the consistent H2 consumption and anticipated plume
// escape against seafloor inflow for one ratio.
func windowPanel(prof sweep.Profile, ds dataset.Dataset, legend bool) (*plot.Plot, error) {
	p := logLogPanel("H2 inflow from seafloor [mol / s]", "H2 flux [mol / s]", 1e-4, 1e5, 1e-2, 1.5e7)
	p.Title.Text = fmt.Sprintf("Abiotic : biotic methane in plume = %g", prof.Ratio)

	if err := addBand(p, prof.Inflow, los(prof.Consumption), his(prof.Consumption),
		translucent(colBlue, 76), p.Y.Min, legendLabel(legend, "Biological H2 consumption consistent with CH4 and H2 in plume")); err != nil {
		return nil, err
	}
	if err := addBand(p, prof.Inflow, los(prof.PlumeH2), his(prof.PlumeH2),
		translucent(colRed, 76), p.Y.Min, legendLabel(legend, "Anticipated H2 escaping in plume")); err != nil {
		return nil, err
	}
	if err := addLine(p, prof.Inflow, prof.Inflow, solidLine(colRed, vg.Points(1)),
		legendLabel(legend, "H2 escaping = H2 inflow (no consumption)")); err != nil {
		return nil, err
	}
	if err := hline(p, prof.Critical.Hi(), solidLine(colGreen, vg.Points(1.5)),
		legendLabel(legend, "Critical biological H2 consumption")); err != nil {
		return nil, err
	}
	if err := hband(p, ds.Plume.H2.Lo, ds.Plume.H2.Hi, translucent(colSlate, 50),
		legendLabel(legend, "Inferred range of plume H2")); err != nil {
		return nil, err
	}
	for i, est := range ds.InflowEstimates {
		label := ""
		if legend && i == 0 {
			label = "Literature seafloor H2 production estimates"
		}
		if err := vline(p, est, dashDotLine(colSlate, vg.Points(1)), label); err != nil {
			return nil, err
		}
	}
	if err := hline(p, ds.Plume.H2.Hi, dashedLine(colBlack, vg.Points(2)), ""); err != nil {
		return nil, err
	}
	if err := vline(p, ds.Plume.H2.Lo, solidLine(colBlack, vg.Points(2)),
		legendLabel(legend, "Minimum plume H2 escape")); err != nil {
		return nil, err
	}
	return p, nil
}

// carbonPanel plots the cellular carbon production implied by each turnover
// endmember over the inflow window.
func carbonPanel(prof sweep.Profile, ds dataset.Dataset, legend bool) (*plot.Plot, error) {
	p := logLogPanel("H2 inflow from seafloor [mol / s]", "Cellular carbon production [kg C / yr]", 10, 1e4, 100, 1e11)

	for i, em := range ds.Turnover {
		lo := make([]float64, len(prof.Inflow))
		hi := make([]float64, len(prof.Inflow))
		for j, c := range prof.Consumption {
			r := biomass.TurnoverCarbonRate(em.CellsPerMol, c)
			lo[j] = r.Lo()
			hi[j] = r.Hi()
		}
		col := fluxEndmemberColors[i%len(fluxEndmemberColors)]
		if err := addBand(p, prof.Inflow, lo, hi, translucent(col, 128),
			p.Y.Min, legendLabel(legend, em.Name)); err != nil {
			return nil, err
		}
	}
	affLabel := legendLabel(legend, "Plume-informed turnover range (Affholder et al. 2022)")
	if err := hline(p, ds.AffholderRange.Lo, dashedLine(colSlate, vg.Points(1.5)), affLabel); err != nil {
		return nil, err
	}
	if err := hline(p, ds.AffholderRange.Hi, dashedLine(colSlate, vg.Points(1.5)), ""); err != nil {
		return nil, err
	}
	if err := vline(p, ds.Plume.H2.Lo, solidLine(colBlack, vg.Points(2)), ""); err != nil {
		return nil, err
	}
	return p, nil
}

func legendLabel(legend bool, s string) string {
	if legend {
		return s
	}
	return ""
}
