package util

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"sigs.k8s.io/worthsplit/pkg/optimizer/tracker"
)

// PlotProgressImage draws best and average fitness per generation to a
// static image. The format follows the file extension (png, svg, pdf...).
func PlotProgressImage(series tracker.Series, title, outputPath string) error {
	if len(series.Generations) == 0 {
		return fmt.Errorf("no generations recorded for %s", title)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Generation"
	p.Y.Label.Text = "Fitness"

	bestPts := make(plotter.XYs, len(series.Generations))
	avgPts := make(plotter.XYs, len(series.Generations))
	for i, g := range series.Generations {
		bestPts[i].X = float64(g)
		bestPts[i].Y = series.Best[i]
		avgPts[i].X = float64(g)
		avgPts[i].Y = series.Average[i]
	}

	bestLine, err := plotter.NewLine(bestPts)
	if err != nil {
		return err
	}
	avgLine, err := plotter.NewLine(avgPts)
	if err != nil {
		return err
	}
	avgLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(bestLine, avgLine, plotter.NewGrid())
	p.Legend.Add("best", bestLine)
	p.Legend.Add("average", avgLine)
	p.Legend.Top = true

	return p.Save(6*vg.Inch, 4*vg.Inch, outputPath)
}
