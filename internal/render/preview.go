package render

import (
	"fmt"
	"time"

	"github.com/GregMSThompson/widget-builder/internal/widget"
)

var (
	previewCategories = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"}
	previewBins       = []string{"0-10", "10-20", "20-30", "30-40", "40-50", "50-60"}
	previewCountries  = []string{"US", "GB", "DE", "FR", "BR", "IN", "JP"}
	previewOptions    = []string{"Option 1", "Option 2", "Option 3"}
	previewStart      = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
)

const (
	previewCardValue   = 1284
	previewHeatmapDays = 35
	previewPoints      = 12
)

// previewValue is a small periodic series: values stay between 10 and 40.
func previewValue(series, k int) float64 {
	return float64(10 + ((series*3+k*5)%7)*5)
}

// Preview builds placeholder data for cfg's visualization type. It depends
// only on the type and the metric labels, so repeated calls are identical.
func Preview(cfg widget.Config) widget.Payload {
	names, ids := previewSeries(cfg)

	switch cfg.VisualizationType {
	case widget.VisCard:
		return &widget.CardPayload{Value: float64(previewCardValue), Label: names[0]}

	case widget.VisBar:
		return &widget.BarPayload{
			Categories: previewCategories,
			Series:     periodicSeries(names, ids, len(previewCategories)),
		}

	case widget.VisLine:
		x := make([]any, len(previewCategories))
		for i, c := range previewCategories {
			x[i] = c
		}
		return &widget.LinePayload{X: x, Series: periodicSeries(names, ids, len(x))}

	case widget.VisPie:
		slices := make([]widget.Slice, len(previewCategories))
		for k, c := range previewCategories {
			slices[k] = widget.Slice{Label: c, Value: previewValue(0, k)}
		}
		return &widget.PiePayload{Slices: slices}

	case widget.VisHistogram:
		return &widget.HistogramPayload{
			Bins:   previewBins,
			Series: periodicSeries(names[:1], ids[:1], len(previewBins)),
		}

	case widget.VisScatter:
		series := make([]widget.ScatterSeries, len(names))
		for i := range names {
			points := make([]widget.Point, previewPoints)
			for k := range points {
				points[k] = widget.Point{X: float64(5 + k*8), Y: previewValue(i, k)}
			}
			series[i] = widget.ScatterSeries{Name: names[i], MetricID: ids[i], Points: points}
		}
		return &widget.ScatterPayload{Series: series}

	case widget.VisCalendarHeatmap:
		days := make([]widget.HeatmapDay, previewHeatmapDays)
		for k := range days {
			days[k] = widget.HeatmapDay{
				Date:  previewStart.AddDate(0, 0, k).Format(widget.DateLayout),
				Value: float64(((k * 3) % 7) * 2),
			}
		}
		return &widget.CalendarHeatmapPayload{Days: days}

	case widget.VisMap:
		byOption := cfg.Options.Map != nil && cfg.Options.Map.ColorBy == widget.MapColorByOptions
		countries := make([]widget.CountryValue, len(previewCountries))
		for k, c := range previewCountries {
			countries[k] = widget.CountryValue{Country: c, Value: previewValue(0, k) * 10}
			if byOption {
				countries[k].Option = previewOptions[k%len(previewOptions)]
			}
		}
		return &widget.MapPayload{Countries: countries}
	}

	return &widget.UnknownPayload{Tag: string(cfg.VisualizationType)}
}

// previewSeries names one series per metric, or a single series when the
// configuration has no metrics yet.
func previewSeries(cfg widget.Config) (names, ids []string) {
	if len(cfg.Metrics) == 0 {
		return []string{"Series 1"}, []string{""}
	}
	for i, m := range cfg.Metrics {
		name := m.Label
		if name == "" {
			name = fmt.Sprintf("Series %d", i+1)
		}
		names = append(names, name)
		ids = append(ids, m.ID)
	}
	return names, ids
}

func periodicSeries(names, ids []string, n int) []widget.Series {
	out := make([]widget.Series, len(names))
	for i := range names {
		data := make([]any, n)
		for k := range data {
			data[k] = previewValue(i, k)
		}
		out[i] = widget.Series{Name: names[i], MetricID: ids[i], Data: data}
	}
	return out
}
