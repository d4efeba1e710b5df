package report

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/ironsheep/greyscale-document-filter/internal/document"
)

const (
	chartWidth  = 1600
	chartHeight = 900
)

var seriesColours = []drawing.Color{
	chart.ColorBlue,
	chart.ColorRed,
	chart.ColorAlternateGreen,
	chart.ColorOrange,
}

// Series is a named histogram plotted by WriteChart.
type Series struct {
	Name      string
	Histogram *document.Histogram
}

// WriteChart renders the histograms as a PNG line chart of count per grey
// shade, one line per series.
func WriteChart(w io.Writer, title string, series ...Series) error {
	if len(series) == 0 {
		return ErrNoSeries
	}

	xvalues := make([]float64, document.Levels)
	for i := range xvalues {
		xvalues[i] = float64(i)
	}

	maxCount := 1.0
	lines := make([]chart.Series, 0, len(series))
	for i, s := range series {
		yvalues := make([]float64, document.Levels)
		for shade, n := range s.Histogram {
			yvalues[shade] = float64(n)
			if yvalues[shade] > maxCount {
				maxCount = yvalues[shade]
			}
		}
		lines = append(lines, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xvalues,
			YValues: yvalues,
			Style: chart.Style{
				StrokeColor: seriesColours[i%len(seriesColours)],
				StrokeWidth: 2,
			},
		})
	}

	graph := chart.Chart{
		Title:  title,
		Width:  chartWidth,
		Height: chartHeight,
		XAxis: chart.XAxis{
			Name: "Grey shade",
			Range: &chart.ContinuousRange{
				Min: 0.0,
				Max: document.Levels - 1,
			},
		},
		YAxis: chart.YAxis{
			Name: "Count",
			Range: &chart.ContinuousRange{
				Min: 0.0,
				Max: maxCount,
			},
		},
		Series: lines,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render histogram chart: %w", err)
	}
	return nil
}
