// Package chart renders burndown series as PNG or SVG images using
// github.com/wcharczuk/go-chart/v2.
package chart

import (
	"fmt"
	"io"
	"time"

	"github.com/huangsam/burndown/internal/contract"
	"github.com/huangsam/burndown/schema"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Series names shown in the legend.
const (
	RemainingSeriesName  = "Remaining Scope"
	PredictedSeriesName  = "Predicted Burndown"
	CompletionSeriesName = "Predicted Completion"
)

// completionLabelRatio places the completion date label relative to the largest remaining scope.
const completionLabelRatio = 0.9

var (
	remainingColor  = drawing.Color{R: 44, G: 160, B: 44, A: 255}
	predictedColor  = drawing.Color{R: 214, G: 39, B: 40, A: 255}
	completionColor = drawing.Color{R: 31, G: 119, B: 180, A: 255}
)

// Options controls the rendered image.
type Options struct {
	Format schema.ChartFormat
	Width  int
	Height int
}

// Render draws the burndown chart for result and writes the encoded image to w.
func Render(w io.Writer, result schema.BurndownResult, opts Options) error {
	if len(result.Points) == 0 {
		return fmt.Errorf("cannot render a chart without points")
	}

	graph := NewBurndownChart(result, opts)

	var provider gochart.RendererProvider
	switch opts.Format {
	case schema.SVGChart:
		provider = gochart.SVG
	case schema.PNGChart, "":
		provider = gochart.PNG
	default:
		return fmt.Errorf("unsupported chart format: %q", opts.Format)
	}

	if err := graph.Render(provider, w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// NewBurndownChart assembles the chart definition without rendering it.
//
// The historical remaining scope is a filled green line, the predicted burndown
// a dotted red line over the full range, and the predicted completion a dashed
// blue vertical line with its date. The completion marker is omitted when the
// projection never reaches zero in range.
func NewBurndownChart(result schema.BurndownResult, opts Options) gochart.Chart {
	maxRemaining := result.MaxRemainingScope()
	yMax := max(maxRemaining, 1)

	series := []gochart.Series{}
	if past := result.HistoricalPoints(); len(past) > 0 {
		series = append(series, gochart.TimeSeries{
			Name:    RemainingSeriesName,
			XValues: pointDates(past),
			YValues: pointValues(past, func(p schema.BurndownPoint) float64 { return p.RemainingScope }),
			Style: gochart.Style{
				StrokeColor: remainingColor,
				StrokeWidth: 2,
				FillColor:   remainingColor.WithAlpha(25),
			},
		})
	}

	series = append(series, gochart.TimeSeries{
		Name:    PredictedSeriesName,
		XValues: pointDates(result.Points),
		YValues: pointValues(result.Points, func(p schema.BurndownPoint) float64 { return p.PredictedBurndown }),
		Style: gochart.Style{
			StrokeColor:     predictedColor,
			StrokeWidth:     2,
			StrokeDashArray: []float64{2, 4},
		},
	})

	if result.CompletionDate != nil {
		done := *result.CompletionDate
		series = append(series,
			gochart.TimeSeries{
				Name:    CompletionSeriesName,
				XValues: []time.Time{done, done},
				YValues: []float64{0, yMax},
				Style: gochart.Style{
					StrokeColor:     completionColor,
					StrokeWidth:     1.5,
					StrokeDashArray: []float64{6, 4},
				},
			},
			gochart.AnnotationSeries{
				Annotations: []gochart.Value2{{
					XValue: gochart.TimeToFloat64(done),
					YValue: completionLabelRatio * maxRemaining,
					Label:  done.Format(contract.DateFormat),
				}},
				Style: gochart.Style{
					FontColor:   completionColor,
					StrokeColor: completionColor,
				},
			},
		)
	}

	first, last := result.Points[0].Date, result.Points[len(result.Points)-1].Date
	if !last.After(first) {
		// A single bucket still needs a non-empty x-range
		last = first.AddDate(0, 0, 1)
	}

	graph := gochart.Chart{
		Title:  Title(result),
		Width:  opts.Width,
		Height: opts.Height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: gochart.XAxis{
			Name:           "Date",
			ValueFormatter: gochart.TimeValueFormatterWithFormat(contract.DateFormat),
			Range:          &gochart.ContinuousRange{Min: gochart.TimeToFloat64(first), Max: gochart.TimeToFloat64(last)},
			Ticks:          dateTicks(result.Points),
		},
		YAxis: gochart.YAxis{
			Name:  "Story Points",
			Range: &gochart.ContinuousRange{Min: 0, Max: yMax * 1.05},
		},
		Series: series,
	}
	graph.Elements = []gochart.Renderable{gochart.Legend(&graph)}
	return graph
}

// Title returns the chart title embedding the velocity and its label.
func Title(result schema.BurndownResult) string {
	return fmt.Sprintf("Burndown Chart (Velocity: %.2f story points%s)", result.Velocity, result.VelocityLabel)
}

// dateTicks labels every second axis point to keep the x-axis readable.
func dateTicks(points []schema.BurndownPoint) []gochart.Tick {
	var ticks []gochart.Tick
	for i := 0; i < len(points); i += 2 {
		ticks = append(ticks, gochart.Tick{
			Value: gochart.TimeToFloat64(points[i].Date),
			Label: points[i].Date.Format(contract.DateFormat),
		})
	}
	return ticks
}

func pointDates(points []schema.BurndownPoint) []time.Time {
	dates := make([]time.Time, len(points))
	for i, p := range points {
		dates[i] = p.Date
	}
	return dates
}

func pointValues(points []schema.BurndownPoint, value func(schema.BurndownPoint) float64) []float64 {
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = value(p)
	}
	return values
}
