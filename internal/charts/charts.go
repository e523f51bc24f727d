// Package charts renders collection statistics as interactive HTML charts.
package charts

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// ChartConfig holds configuration for charts.
type ChartConfig struct {
	Title      string   // Chart title
	Subtitle   string   // Chart subtitle
	Width      string   // Chart width (e.g., "900px")
	Height     string   // Chart height (e.g., "500px")
	Theme      string   // Chart theme
	ShowLegend bool     // Show legend
	Colors     []string // Custom colors
}

// DefaultChartConfig returns default chart configuration.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Width:      "900px",
		Height:     "500px",
		Theme:      "light",
		ShowLegend: true,
		Colors:     []string{"#5470C6", "#91CC75", "#FAC858", "#EE6666", "#73C0DE"},
	}
}

// DataPoint represents a single data point in a chart.
type DataPoint struct {
	Label string
	Value float64
}

// SeriesData represents a data series for multi-series charts.
type SeriesData struct {
	Name   string
	Points []DataPoint
}

// NewBarChart builds a single-series bar chart.
func NewBarChart(seriesName string, data []DataPoint, config ChartConfig) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(barGlobalOptions(config)...)

	xLabels := make([]string, len(data))
	yData := make([]opts.BarData, len(data))
	for i, point := range data {
		xLabels[i] = point.Label
		yData[i] = opts.BarData{Value: point.Value}
	}

	bar.SetXAxis(xLabels).
		AddSeries(seriesName, yData).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(false),
			}),
		)

	return bar
}

// NewMultiBarChart builds a grouped bar chart from multiple series. The first
// series supplies the X-axis labels.
func NewMultiBarChart(series []SeriesData, config ChartConfig) (*charts.Bar, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("no data series provided")
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(barGlobalOptions(config)...)

	xLabels := make([]string, len(series[0].Points))
	for i, point := range series[0].Points {
		xLabels[i] = point.Label
	}
	bar.SetXAxis(xLabels)

	for i, s := range series {
		yData := make([]opts.BarData, len(s.Points))
		for j, point := range s.Points {
			yData[j] = opts.BarData{Value: point.Value}
		}

		color := config.Colors[i%len(config.Colors)]
		bar.AddSeries(s.Name, yData).
			SetSeriesOptions(
				charts.WithLabelOpts(opts.Label{
					Show: opts.Bool(false),
				}),
				charts.WithItemStyleOpts(opts.ItemStyle{
					Color: color,
				}),
			)
	}

	return bar, nil
}

func barGlobalOptions(config ChartConfig) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
			Theme:  config.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    config.Title,
			Subtitle: config.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(config.ShowLegend),
		}),
	}
}

// RenderPage writes one or more charts into a single HTML file.
func RenderPage(outputPath string, chartList ...components.Charter) error {
	page := components.NewPage()
	page.AddCharts(chartList...)

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("render chart page: %w", err)
	}

	return nil
}

// OpenInBrowser opens the given file path in the default web browser.
func OpenInBrowser(filePath string) error {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("get absolute path: %w", err)
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", absPath)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", absPath)
	case "linux":
		cmd = exec.Command("xdg-open", absPath)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
