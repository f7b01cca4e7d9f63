package report

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/marketpulse/ratingengine/internal/models"
)

// SparklineWriter renders the market MsciResult's history as a compact
// SVG line chart: the "thin adapter around the core" spec.md describes
// for the reporting collaborator, not a report generator.
type SparklineWriter struct{}

// NewSparklineWriter constructs a SparklineWriter.
func NewSparklineWriter() *SparklineWriter {
	return &SparklineWriter{}
}

// Write renders results.Market.History as a single-series SVG line
// chart to w. Returns an error if there are fewer than two history
// points to plot.
func (s *SparklineWriter) Write(w io.Writer, results models.AnalysisResults) error {
	history := results.Market.History
	if len(history) < 2 {
		return fmt.Errorf("need at least 2 history points, got %d", len(history))
	}

	xValues := make([]float64, len(history))
	yValues := make([]float64, len(history))
	for i, day := range history {
		xValues[i] = float64(i)
		yValues[i] = day.Score
	}

	series := chart.ContinuousSeries{
		Name: "MSCI",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"),
			StrokeWidth: 2,
		},
		XValues: xValues,
		YValues: yValues,
	}

	graph := chart.Chart{
		Title:  "Market Sentiment Composite Index",
		Width:  480,
		Height: 120,
		Background: chart.Style{
			Padding: chart.Box{Top: 20, Left: 10, Right: 10, Bottom: 10},
		},
		XAxis: chart.XAxis{Style: chart.Style{Hidden: true}},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{series},
	}

	return graph.Render(chart.SVG, w)
}
