package audiodat

import (
	"fmt"
	"io"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/soundfield/micview/internal/util"
)

// Subplot dimensions in points.
const (
	plotWidth     = vg.Length(620)
	subplotHeight = vg.Length(170)
)

// Plot renders one time-series subplot per channel, stacked vertically, and
// encodes the figure as a PNG to w. The x axis is seconds (sample index over
// sampleRate); signals shorter than the longest channel are zero-padded on
// the right so every subplot shares the same time axis.
func Plot(w io.Writer, dat Data, sampleRate float64) error {
	if len(dat) == 0 {
		return fmt.Errorf("no channels to plot")
	}
	if sampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %v", sampleRate)
	}

	names := dat.Channels()
	maxLen := dat.maxLen()

	plots := make([][]*plot.Plot, len(names))
	for i, name := range names {
		p := plot.New()
		p.Title.Text = fmt.Sprintf("Audio source from speaker/microphone %s", name)
		p.X.Label.Text = "Time (s)"
		p.Y.Label.Text = "Signal"

		sig := dat[name]
		pts := make(plotter.XYs, maxLen)
		for j := range pts {
			pts[j].X = float64(j) / sampleRate
			if j < len(sig) {
				pts[j].Y = sig[j]
			}
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return util.WrapError("build signal line", err)
		}
		p.Add(line)
		plots[i] = []*plot.Plot{p}
	}

	img := vgimg.New(plotWidth, subplotHeight*vg.Length(len(names)))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: len(names),
		Cols: 1,
		PadX: vg.Millimeter * 2,
		PadY: vg.Millimeter * 2,
	}

	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return util.WrapError("encode plot", err)
	}
	return nil
}

// PlotFile renders the figure to a PNG file at path.
func PlotFile(path string, dat Data, sampleRate float64) error {
	f, err := os.Create(path)
	if err != nil {
		return util.WrapError("create plot file", err)
	}
	if err := Plot(f, dat, sampleRate); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
