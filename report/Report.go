// Package report renders the per-episode data saved by experiment
// Trackers as line charts
package report

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SavePNG plots data against the episode index and saves the plot as
// an image. The image format is determined by the extension of path.
func SavePNG(data []float64, title, yLabel, path string) error {
	if len(data) == 0 {
		return fmt.Errorf("savePNG: no data to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Episode"
	p.Y.Label.Text = yLabel

	pts := make(plotter.XYs, len(data))
	for i := range data {
		pts[i].X = float64(i)
		pts[i].Y = data[i]
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("savePNG: could not create line plotter: %v", err)
	}
	p.Add(line)
	p.Legend.Add(yLabel, line)

	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("savePNG: could not save plot: %v", err)
	}
	return nil
}

// SaveHTML plots data against the episode index as an interactive
// line chart and saves it as an HTML page
func SaveHTML(data []float64, title, yLabel, path string) error {
	if len(data) == 0 {
		return fmt.Errorf("saveHTML: no data to plot")
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
	)

	episodes := make([]string, len(data))
	items := make([]opts.LineData, len(data))
	for i := range data {
		episodes[i] = fmt.Sprintf("%d", i)
		items[i] = opts.LineData{Value: data[i]}
	}
	line.SetXAxis(episodes).AddSeries(yLabel, items)

	page := components.NewPage()
	page.AddCharts(line)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("saveHTML: %v", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("saveHTML: could not render page: %v", err)
	}
	return nil
}
