// internal/figures/figure.go
// Multi-panel publication figures composited from gonum/plot panels.
package figures

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

// Figure is a grid of panels with a base name and page size. Grid entries
// may be nil (empty cells).
type Figure struct {
	Name   string
	Panels [][]*plot.Plot

	Width, Height vg.Length
}

func (f *Figure) rows() int { return len(f.Panels) }

func (f *Figure) cols() int {
	n := 0
	for _, row := range f.Panels {
		if len(row) > n {
			n = len(row)
		}
	}
	return n
}

// draw lays the panels out on dc.
func (f *Figure) draw(dc draw.Canvas) {
	t := draw.Tiles{
		Rows: f.rows(), Cols: f.cols(),
		PadX: vg.Millimeter * 4, PadY: vg.Millimeter * 4,
		PadTop: vg.Millimeter * 2, PadBottom: vg.Millimeter * 2,
		PadLeft: vg.Millimeter * 2, PadRight: vg.Millimeter * 2,
	}
	canvases := plot.Align(f.Panels, t, dc)
	for i, row := range f.Panels {
		for j, p := range row {
			if p != nil {
				p.Draw(canvases[i][j])
			}
		}
	}
}

// Render writes the figure to w in the given format (png, pdf, or svg).
// dpi applies to png only.
func (f *Figure) Render(format string, w io.Writer, dpi int) error {
	switch format {
	case "png":
		c := vgimg.NewWith(vgimg.UseWH(f.Width, f.Height), vgimg.UseDPI(dpi))
		f.draw(draw.New(c))
		_, err := vgimg.PngCanvas{Canvas: c}.WriteTo(w)
		return err
	case "pdf":
		c := vgpdf.New(f.Width, f.Height)
		f.draw(draw.New(c))
		_, err := c.WriteTo(w)
		return err
	case "svg":
		c := vgsvg.New(f.Width, f.Height)
		f.draw(draw.New(c))
		_, err := c.WriteTo(w)
		return err
	default:
		return fmt.Errorf("unknown figure format %q (want png | pdf | svg)", format)
	}
}

// Save renders the figure into dir once per format and returns the written
// paths.
func (f *Figure) Save(dir string, formats []string, dpi int) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	var paths []string
	for _, format := range formats {
		path := filepath.Join(dir, f.Name+"."+format)
		out, err := os.Create(path)
		if err != nil {
			return paths, err
		}
		if err := f.Render(format, out, dpi); err != nil {
			_ = out.Close()
			return paths, fmt.Errorf("render %s: %w", path, err)
		}
		if err := out.Close(); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
