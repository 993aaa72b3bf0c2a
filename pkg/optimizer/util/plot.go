package util

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"sigs.k8s.io/worthsplit/pkg/optimizer/objectives/share"
	"sigs.k8s.io/worthsplit/pkg/optimizer/tracker"
)

// PlotProgress renders best fitness, average fitness and diversity per
// generation as an interactive HTML line chart.
func PlotProgress(series tracker.Series, title string, outputPath string) error {
	if len(series.Generations) == 0 {
		return fmt.Errorf("no generations recorded for %s", title)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "generation",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "fitness",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}))

	xs := make([]string, len(series.Generations))
	for i, g := range series.Generations {
		xs[i] = strconv.Itoa(g)
	}

	line.SetXAxis(xs).
		AddSeries("best", lineData(series.Best)).
		AddSeries("average", lineData(series.Average)).
		AddSeries("diversity", lineData(series.Diversity)).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(false),
			}),
		)

	return render(line, outputPath)
}

// PlotShares renders target against achieved share for every category as
// a grouped bar chart.
func PlotShares(result share.ShareResult, title string, outputPath string) error {
	if len(result.Categories) == 0 {
		return fmt.Errorf("no categories to plot for %s", title)
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("total deviation %.4f", result.TotalCost),
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "share"}))

	names := make([]string, len(result.Categories))
	target := make([]opts.BarData, len(result.Categories))
	achieved := make([]opts.BarData, len(result.Categories))
	for i, c := range result.Categories {
		names[i] = strconv.Itoa(c.Index)
		target[i] = opts.BarData{Value: c.Target}
		achieved[i] = opts.BarData{Value: c.Achieved}
	}

	bar.SetXAxis(names).
		AddSeries("target", target).
		AddSeries("achieved", achieved)

	return render(bar, outputPath)
}

func lineData(values []float64) []opts.LineData {
	data := make([]opts.LineData, len(values))
	for i, v := range values {
		data[i] = opts.LineData{Value: v}
	}
	return data
}

type renderer interface {
	Render(w io.Writer) error
}

func render(chart renderer, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer f.Close()

	return chart.Render(f)
}
