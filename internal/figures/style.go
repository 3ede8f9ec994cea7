// internal/figures/style.go
// Shared panel styling: the print/colorblind-safe palette, dash patterns,
// log-axis helpers, and NaN-tolerant series assembly.
package figures

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"plumeflux-core/uncert"
)

var (
	colBlue     = color.NRGBA{R: 0x1f, G: 0x4e, B: 0xd8, A: 0xff}
	colRed      = color.NRGBA{R: 0xd6, G: 0x2a, B: 0x28, A: 0xff}
	colGreen    = color.NRGBA{R: 0x1a, G: 0x7f, B: 0x37, A: 0xff}
	colBlack    = color.NRGBA{A: 0xff}
	colMagenta  = color.NRGBA{R: 0xc0, G: 0x26, B: 0xb5, A: 0xff}
	colMaroon   = color.NRGBA{R: 0x80, A: 0xff}
	colNavy     = color.NRGBA{B: 0x80, A: 0xff}
	colSlate    = color.NRGBA{R: 0x70, G: 0x80, B: 0x90, A: 0xff}
	colOrange   = color.NRGBA{R: 0xe6, G: 0x61, B: 0x01, A: 0xff}
	colApricot  = color.NRGBA{R: 0xfd, G: 0xb8, B: 0x63, A: 0xff}
	colViolet   = color.NRGBA{R: 0x5e, G: 0x3c, B: 0x99, A: 0xff}
	colLavender = color.NRGBA{R: 0xb2, G: 0xab, B: 0xd2, A: 0xff}
)

// colorMap is the palette interface the temperature panels share.
type colorMap = palette.ColorMap

func log10(x float64) float64 { return math.Log10(x) }

// endmemberColors matches the turnover legend order.
var endmemberColors = []color.NRGBA{colOrange, colApricot, colViolet, colLavender}

// fluxEndmemberColors matches the flux-window bottom row.
var fluxEndmemberColors = []color.NRGBA{colBlue, colRed, colGreen, colBlack}

func translucent(c color.NRGBA, a uint8) color.NRGBA {
	c.A = a
	return c
}

func solidLine(c color.Color, w vg.Length) draw.LineStyle {
	return draw.LineStyle{Color: c, Width: w}
}

func dashedLine(c color.Color, w vg.Length) draw.LineStyle {
	return draw.LineStyle{Color: c, Width: w, Dashes: []vg.Length{vg.Points(7), vg.Points(4)}}
}

func dottedLine(c color.Color, w vg.Length) draw.LineStyle {
	return draw.LineStyle{Color: c, Width: w, Dashes: []vg.Length{vg.Points(1.5), vg.Points(3)}}
}

func dashDotLine(c color.Color, w vg.Length) draw.LineStyle {
	return draw.LineStyle{Color: c, Width: w, Dashes: []vg.Length{vg.Points(7), vg.Points(3), vg.Points(1.5), vg.Points(3)}}
}

// logLogPanel builds a panel with log scales and fixed limits on both axes.
func logLogPanel(xlabel, ylabel string, xmin, xmax, ymin, ymax float64) *plot.Plot {
	p := plot.New()
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.X.Scale, p.Y.Scale = plot.LogScale{}, plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.X.Min, p.X.Max = xmin, xmax
	p.Y.Min, p.Y.Max = ymin, ymax
	p.Legend.TextStyle.Font.Size = vg.Points(6)
	p.Add(plotter.NewGrid())
	return p
}

func validPoint(x, y float64) bool {
	return !math.IsNaN(x) && !math.IsNaN(y) && x > 0 && y > 0
}

// logXYs assembles a series, dropping points a log axis cannot represent.
func logXYs(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, 0, len(xs))
	for i := range xs {
		if validPoint(xs[i], ys[i]) {
			pts = append(pts, plotter.XY{X: xs[i], Y: ys[i]})
		}
	}
	return pts
}

// addLine plots ys against xs with the given style; points unrepresentable
// on a log axis are dropped. A non-empty label becomes a legend entry.
func addLine(p *plot.Plot, xs, ys []float64, st draw.LineStyle, label string) error {
	pts := logXYs(xs, ys)
	if len(pts) == 0 {
		return nil
	}
	l, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	l.LineStyle = st
	p.Add(l)
	if label != "" {
		p.Legend.Add(label, l)
	}
	return nil
}

// addBand fills between lo and hi over xs. NaN gaps split the band into
// separate polygons; the lower edge is clamped to floor so the band stays on
// a log axis.
func addBand(p *plot.Plot, xs, lo, hi []float64, fill color.Color, floor float64, label string) error {
	type run struct{ start, end int }
	var runs []run
	cur := -1
	for i := range xs {
		ok := !math.IsNaN(lo[i]) && !math.IsNaN(hi[i]) && xs[i] > 0 && hi[i] > 0
		if ok && cur < 0 {
			cur = i
		}
		if !ok && cur >= 0 {
			runs = append(runs, run{cur, i})
			cur = -1
		}
	}
	if cur >= 0 {
		runs = append(runs, run{cur, len(xs)})
	}

	added := false
	for _, r := range runs {
		if r.end-r.start < 2 {
			continue
		}
		pts := make(plotter.XYs, 0, 2*(r.end-r.start))
		for i := r.start; i < r.end; i++ {
			pts = append(pts, plotter.XY{X: xs[i], Y: math.Max(hi[i], floor)})
		}
		for i := r.end - 1; i >= r.start; i-- {
			pts = append(pts, plotter.XY{X: xs[i], Y: math.Max(lo[i], floor)})
		}
		poly, err := plotter.NewPolygon(pts)
		if err != nil {
			return err
		}
		poly.Color = fill
		poly.LineStyle.Color = color.NRGBA{}
		p.Add(poly)
		added = true
	}
	if added && label != "" {
		p.Legend.Add(label, fillThumb{fill})
	}
	return nil
}

// hline draws a horizontal guide across the panel's x limits.
func hline(p *plot.Plot, y float64, st draw.LineStyle, label string) error {
	return addLine(p, []float64{p.X.Min, p.X.Max}, []float64{y, y}, st, label)
}

// vline draws a vertical guide across the panel's y limits.
func vline(p *plot.Plot, x float64, st draw.LineStyle, label string) error {
	pts := plotter.XYs{{X: x, Y: p.Y.Min}, {X: x, Y: p.Y.Max}}
	if !validPoint(x, p.Y.Min) {
		return nil
	}
	l, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	l.LineStyle = st
	p.Add(l)
	if label != "" {
		p.Legend.Add(label, l)
	}
	return nil
}

// hband fills a horizontal strip between y0 and y1 across the panel.
func hband(p *plot.Plot, y0, y1 float64, fill color.Color, label string) error {
	xs := []float64{p.X.Min, p.X.Max}
	return addBand(p, xs, []float64{y0, y0}, []float64{y1, y1}, fill, p.Y.Min, label)
}

// note places a small text annotation at data coordinates.
func note(p *plot.Plot, x, y float64, s string, c color.Color) error {
	l, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    plotter.XYs{{X: x, Y: y}},
		Labels: []string{s},
	})
	if err != nil {
		return err
	}
	for i := range l.TextStyle {
		l.TextStyle[i].Font.Size = vg.Points(6)
		l.TextStyle[i].Color = c
	}
	p.Add(l)
	return nil
}

// fillThumb draws a filled legend swatch for band entries.
type fillThumb struct{ c color.Color }

func (f fillThumb) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(f.c, c.ClipPolygonXY(pts))
}

// los and his split a series of uncertain values into bound slices.
func los(vs []uncert.Value) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = v.Lo()
	}
	return out
}

func his(vs []uncert.Value) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = v.Hi()
	}
	return out
}

// scaleAll multiplies a series by k, preserving NaN.
func scaleAll(xs []float64, k float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = k * x
	}
	return out
}
