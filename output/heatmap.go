package output

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/edalab/gcr/routingarea"
)

// PlotUtilization renders an interactive heatmap of how densely a ladder of
// routing areas (gaps, or one column's subchannels) is packed: the x-axis is
// the area index, the y-axis is the allocation's vertical offset within its
// area, and the cell value is the occupying allocation's width. Hovering a
// cell shows the allocation's name and type.
func PlotUtilization(areas []*routingarea.RoutingArea, title, filename string) error {
	var heatmapData []opts.HeatMapData
	maxWidth := 0.0

	for x, ra := range areas {
		for _, a := range ra.Allocations() {
			width, _ := a.Width().Float64()
			offset, _ := a.Offset.Float64()
			if width > maxWidth {
				maxWidth = width
			}
			name, err := a.Name()
			if err != nil {
				name = a.Type()
			}
			heatmapData = append(heatmapData, opts.HeatMapData{
				Value: [3]interface{}{x, offset, width},
				Name:  fmt.Sprintf("%s (%s)", name, a.Type()),
			})
		}
	}

	heatmap := charts.NewHeatMap()
	heatmap.SetGlobalOptions(
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:       title,
			Width:           "180vh",
			Height:          "100vh",
			Theme:           types.ThemeVintage,
			BackgroundColor: "transparent",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: title,
			Left:  "center",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Trigger: "item",
			Formatter: opts.FuncOpts(`function (params) {
		return params.name + '<br />Width: ' + params.value[2];
	}`),
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show: opts.Bool(true),
			Min:  0,
			Max:  float32(maxWidth),
			InRange: &opts.VisualMapInRange{
				Color: []string{"#ffff8f", "#ff0000", "#000000"},
			},
			Orient: "vertical",
			Right:  "5%",
			Top:    "middle",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Routing Area",
			Type: "category",
			Data: makeRange(0, len(areas)-1),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Vertical Offset",
			Type: "value",
		}),
	)

	heatmap.AddSeries("Utilization", heatmapData)

	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(heatmap)

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not create heatmap file %s: %w", filename, err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("rendering heatmap: %w", err)
	}

	return nil
}

// makeRange creates an integer slice [min..max].
func makeRange(min, max int) []int {
	if max < min {
		return nil
	}
	r := make([]int, max-min+1)
	for i := range r {
		r[i] = min + i
	}
	return r
}
