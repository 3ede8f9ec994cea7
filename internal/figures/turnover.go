// internal/figures/turnover.go
package figures

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"plumeflux-core/biomass"
	"plumeflux-core/sweep"
	"plumeflux/internal/dataset"
)

// Turnover builds the biomass-turnover figure: consumption envelope (A),
// turnover endmembers (B), standing biomass at pH 8 and 9 (C, D), the
// habitability-probability panel (E), and a temperature colorbar.
func Turnover(rows []sweep.EnvelopeRow, ds dataset.Dataset) (*Figure, error) {
	ratios := make([]float64, len(rows))
	maxBio := make([]float64, len(rows))
	minBio := make([]float64, len(rows))
	maxInHi := make([]float64, len(rows))
	maxInLo := make([]float64, len(rows))
	minInHi := make([]float64, len(rows))
	minInLo := make([]float64, len(rows))
	for i, r := range rows {
		ratios[i] = r.Ratio
		maxBio[i] = r.MaxConsumption
		minBio[i] = r.MinConsumption
		maxInHi[i] = r.MaxInflowHi
		maxInLo[i] = r.MaxInflowLo
		minInHi[i] = r.MinInflowHi
		minInLo[i] = r.MinInflowLo
	}

	ratioLabel := "Ratio of abiotic to biotic CH4 in space plume"

	a, err := envelopePanel(ratios, maxBio, minBio, maxInHi, maxInLo, minInHi, minInLo, ratioLabel)
	if err != nil {
		return nil, err
	}
	b, err := turnoverPanel(ratios, maxBio, minBio, ds, ratioLabel)
	if err != nil {
		return nil, err
	}
	cm := moreland.SmoothBlueRed()
	cm.SetMin(273.15)
	cm.SetMax(393.15)

	c, err := standingPanel("C", ratios, maxBio, ds.StandingPH8.Table(), "ocean pH: 8", ratioLabel, cm)
	if err != nil {
		return nil, err
	}
	d, err := standingPanel("D", ratios, maxBio, ds.StandingPH9.Table(), "ocean pH: 9", ratioLabel, cm)
	if err != nil {
		return nil, err
	}
	e, err := habitabilityPanel(ds)
	if err != nil {
		return nil, err
	}
	bar := colorbarPanel(cm)

	return &Figure{
		Name: "biomass_turnover_vs_abio_bio_ratio",
		Panels: [][]*plot.Plot{
			{a, b, bar},
			{c, d, e},
		},
		Width:  11.5 * vg.Inch,
		Height: 7.5 * vg.Inch,
	}, nil
}

// envelopePanel is panel A: the consumption envelope and the seafloor inflow
// bands required to support it.
func envelopePanel(ratios, maxBio, minBio, maxInHi, maxInLo, minInHi, minInLo []float64, ratioLabel string) (*plot.Plot, error) {
	p := logLogPanel(ratioLabel, "H2 flux [mol / s]", 1e-6, 1e6, 1e-4, 1e4)
	p.Title.Text = "A"

	if err := addLine(p, ratios, maxBio, solidLine(colBlue, vg.Points(2)), "Maximum methanogen H2 consumption"); err != nil {
		return nil, err
	}
	if err := addLine(p, ratios, minBio, dashedLine(colBlue, vg.Points(2)), "Minimum methanogen H2 consumption"); err != nil {
		return nil, err
	}
	if err := addBand(p, ratios, maxInLo, maxInHi, translucent(colRed, 60), p.Y.Min,
		"H2 inflow corresponding to max. consumption"); err != nil {
		return nil, err
	}
	if err := addBand(p, ratios, minInLo, minInHi, translucent(colMagenta, 60), p.Y.Min,
		"H2 inflow corresponding to min. consumption"); err != nil {
		return nil, err
	}
	return p, nil
}

// turnoverPanel is panel B: the envelope scaled by each turnover endmember.
func turnoverPanel(ratios, maxBio, minBio []float64, ds dataset.Dataset, ratioLabel string) (*plot.Plot, error) {
	p := logLogPanel(ratioLabel, "Total biomass turnover [cells / s]", 1e-6, 1e6, 1e6, 1e18)
	p.Title.Text = "B"

	for i, em := range ds.Turnover {
		col := endmemberColors[i%len(endmemberColors)]
		label := fmt.Sprintf("%s ≈ 10^%.1f cells / mol H2", em.Name, log10(em.CellsPerMol))
		if err := addLine(p, ratios, scaleAll(maxBio, em.CellsPerMol), dottedLine(col, vg.Points(1.5)), label); err != nil {
			return nil, err
		}
		if err := addLine(p, ratios, scaleAll(minBio, em.CellsPerMol), dashedLine(col, vg.Points(1.5)), ""); err != nil {
			return nil, err
		}
	}
	// Shade the span of the most conservative endmember.
	last := ds.Turnover[len(ds.Turnover)-1]
	if err := addBand(p, ratios,
		scaleAll(minBio, last.CellsPerMol), scaleAll(maxBio, last.CellsPerMol),
		translucent(colLavender, 100), p.Y.Min, ""); err != nil {
		return nil, err
	}

	// dotted = maximum consumption, dashed = minimum
	thumbMax, err := plotter.NewLine(plotter.XYs{{X: 1, Y: 1}, {X: 2, Y: 1}})
	if err != nil {
		return nil, err
	}
	thumbMax.LineStyle = dottedLine(colBlack, vg.Points(1.5))
	p.Legend.Add("dotted: max methanogen H2 consumption", thumbMax)
	thumbMin, err := plotter.NewLine(plotter.XYs{{X: 1, Y: 1}, {X: 2, Y: 1}})
	if err != nil {
		return nil, err
	}
	thumbMin.LineStyle = dashedLine(colBlack, vg.Points(1.5))
	p.Legend.Add("dashed: min methanogen H2 consumption", thumbMin)

	// Unit conversions the matplotlib original carried as parasite axes.
	if err := note(p, 3e-6, 3e17,
		fmt.Sprintf("cells/s × %.2e → kg C / yr to top of ocean", biomass.CarbonRateFactor()), colBlack); err != nil {
		return nil, err
	}
	if err := note(p, 3e-6, 5e16,
		fmt.Sprintf("cells/s × %.2e → max cells / g in plume*", biomass.PlumeCellConcentrationFactor()), colBlack); err != nil {
		return nil, err
	}
	if err := note(p, 3e-6, 8e15,
		fmt.Sprintf("cells/s × %.2e → max g C / kg H2O in plume*", biomass.PlumeCarbonConcentrationFactor()), colBlack); err != nil {
		return nil, err
	}
	if err := note(p, 3e-6, 1.3e15,
		"*assumes no diluting or concentrating mechanisms after leaving habitat", colBlack); err != nil {
		return nil, err
	}
	return p, nil
}

// standingPanel is panel C or D: standing biomass against the habitable
// distribution at one ocean pH, colored by temperature.
func standingPanel(title string, ratios, maxBio []float64, tbl biomass.StandingTable, caption, ratioLabel string, cm colorMap) (*plot.Plot, error) {
	p := logLogPanel(ratioLabel, "Max.* total standing biomass [cells]", 1e-6, 1e6, 1e3, 1e28)
	p.Title.Text = title

	el := tbl.EnergyLimited()
	all := tbl.All()
	for i, temp := range tbl.Temperatures {
		col, err := cm.At(temp)
		if err != nil {
			return nil, err
		}
		if err := addLine(p, ratios, scaleAll(maxBio, el[i]), dottedLine(col, vg.Points(1.2)), ""); err != nil {
			return nil, err
		}
		if err := addLine(p, ratios, scaleAll(maxBio, all[i]), dashedLine(col, vg.Points(1.2)), ""); err != nil {
			return nil, err
		}
	}
	if err := addLine(p, ratios, scaleAll(maxBio, tbl.Min()), solidLine(colMaroon, vg.Points(1.5)), "Lowest biomass from distribution"); err != nil {
		return nil, err
	}
	if err := addLine(p, ratios, scaleAll(maxBio, tbl.Max()), solidLine(colNavy, vg.Points(1.5)), "Largest biomass from distribution"); err != nil {
		return nil, err
	}

	thumbAll, err := plotter.NewLine(plotter.XYs{{X: 1, Y: 1}, {X: 2, Y: 1}})
	if err != nil {
		return nil, err
	}
	thumbAll.LineStyle = dashedLine(colBlack, vg.Points(1.2))
	p.Legend.Add("Mean of entire habitable distribution (colors: T)", thumbAll)
	thumbEL, err := plotter.NewLine(plotter.XYs{{X: 1, Y: 1}, {X: 2, Y: 1}})
	if err != nil {
		return nil, err
	}
	thumbEL.LineStyle = dottedLine(colBlack, vg.Points(1.2))
	p.Legend.Add("Mean of energy-limited distribution (colors: T)", thumbEL)

	if err := note(p, 1e5, 1e26, caption, colBlack); err != nil {
		return nil, err
	}
	if err := note(p, 2e-6, 2e4, "*using maximum biological H2 consumption from A", colBlack); err != nil {
		return nil, err
	}
	return p, nil
}

// habitabilityPanel is panel E: probability uninhabitable vs temperature.
func habitabilityPanel(ds dataset.Dataset) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "E"
	p.X.Label.Text = "Probability uninhabitable [%]"
	p.Y.Label.Text = "Temperature [K]"
	p.X.Min, p.X.Max = 0, 100
	p.Y.Min, p.Y.Max = 273.15, 393.15
	p.Legend.TextStyle.Font.Size = vg.Points(6)

	ph9 := ds.HabitabilityPH9.Profile()
	l9, err := plotter.NewLine(linearXYs(ph9.PercentUninhabitable, ph9.Temperatures))
	if err != nil {
		return nil, err
	}
	l9.LineStyle = solidLine(colRed, vg.Points(3))
	p.Add(l9)

	ph8 := ds.HabitabilityPH8.Profile()
	l8, err := plotter.NewLine(linearXYs(ph8.PercentUninhabitable, ph8.Temperatures))
	if err != nil {
		return nil, err
	}
	l8.LineStyle = dashedLine(colOrange, vg.Points(3))
	p.Add(l8)

	if err := note(p, 16, 280, "pH 8", colOrange); err != nil {
		return nil, err
	}
	if err := note(p, 52, 385, "pH 9", colRed); err != nil {
		return nil, err
	}
	return p, nil
}

// colorbarPanel is the temperature key shared by panels C and D.
func colorbarPanel(cm colorMap) *plot.Plot {
	p := plot.New()
	p.Title.Text = "Temperature [K]"
	p.HideX()
	bar := &plotter.ColorBar{ColorMap: cm}
	bar.Vertical = true
	p.Add(bar)
	return p
}

func linearXYs(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i] = plotter.XY{X: xs[i], Y: ys[i]}
	}
	return pts
}
