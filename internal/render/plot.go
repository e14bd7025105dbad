// Package render draws solutions: trajectory plots with gonum/plot and
// terminal frames with lipgloss.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"slices"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/pdrpinto/ringmaze/internal/pathfile"
)

// PlotSize is the edge length of saved plots.
const PlotSize = 6 * vg.Inch

var (
	topColor    = color.RGBA{R: 220, G: 50, B: 47, A: 255}
	bottomColor = color.RGBA{R: 38, G: 139, B: 210, A: 255}
	ringColor   = color.RGBA{R: 133, G: 153, B: 0, A: 255}
)

// Plot traces the top pin, bottom pin and ring centre over normalized coordinates.
// Lines may be in either order; they are plotted chronologically.
func Plot(lines []pathfile.Line, title string) (*plot.Plot, error) {
	if len(lines) == 0 {
		return nil, errors.New("render: empty path")
	}
	ordered := slices.Clone(lines)
	slices.SortFunc(ordered, func(a, b pathfile.Line) int { return a.Time - b.Time })

	top := make(plotter.XYs, len(ordered))
	bottom := make(plotter.XYs, len(ordered))
	ring := make(plotter.XYs, len(ordered))
	for i, l := range ordered {
		// Image rows grow downwards.
		top[i] = plotter.XY{X: l.Top.X, Y: 1 - l.Top.Y}
		bottom[i] = plotter.XY{X: l.Bottom.X, Y: 1 - l.Bottom.Y}
		ring[i] = plotter.XY{X: l.Ring.X, Y: 1 - l.Ring.Y}
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1

	series := []struct {
		name  string
		xys   plotter.XYs
		color color.Color
	}{
		{"top pin", top, topColor},
		{"bottom pin", bottom, bottomColor},
		{"ring", ring, ringColor},
	}
	for _, s := range series {
		line, err := plotter.NewLine(s.xys)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", s.name, err)
		}
		line.Color = s.color
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(s.name, line)
	}
	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p, nil
}

// SavePlot writes the plot to path; the extension selects the format.
func SavePlot(lines []pathfile.Line, title, path string) error {
	p, err := Plot(lines, title)
	if err != nil {
		return err
	}
	if err := p.Save(PlotSize, PlotSize, path); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}

// WritePlot writes the plot to w in the given format ("png", "svg", "pdf", ...).
func WritePlot(w io.Writer, lines []pathfile.Line, title, format string) error {
	p, err := Plot(lines, title)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(PlotSize, PlotSize, format)
	if err != nil {
		return fmt.Errorf("plot writer: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}
