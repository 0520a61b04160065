package render

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/GregMSThompson/widget-builder/internal/widget"
)

const (
	noDataMessage = "No data for the selected filters"
	errorMessage  = "Something went wrong loading this chart"
)

// Render turns a payload into a chart description. p may be nil; with
// flags.Preview set a nil payload is replaced by placeholder data. Render
// never panics: a failing transform degrades to the unknown-type empty state.
func Render(p widget.Payload, cfg widget.Config, flags Flags) (chart Chart) {
	chart = Chart{Type: cfg.VisualizationType, Title: cfg.Title}

	defer func() {
		if r := recover(); r != nil {
			chart = unknownType(chart.Type, cfg.Title)
		}
	}()

	if flags.Loading {
		chart.State = StateLoading
		return chart
	}
	if flags.Error != "" {
		chart.State = StateError
		chart.Message = flags.Error
		return chart
	}

	if isNil(p) {
		p = nil
		if flags.Preview {
			p = Preview(cfg)
			chart.Preview = true
		}
	}
	if p == nil {
		return empty(chart)
	}

	chart.Type = p.Kind()
	meta := p.Meta()
	if errs := nonBlank(meta.Errors); len(errs) > 0 {
		chart.State = StateError
		chart.Message = strings.Join(errs, "; ")
		return chart
	}
	if meta.Empty {
		return empty(chart)
	}
	if !widget.IsKnownType(chart.Type) {
		return unknownType(chart.Type, cfg.Title)
	}
	if !p.HasData() {
		return empty(chart)
	}

	chart.State = StateRendered
	switch v := p.(type) {
	case *widget.CardPayload:
		chart.Card = cardView(v, cfg)
	case *widget.BarPayload:
		chart.Bar = barView(v, cfg)
	case *widget.LinePayload:
		chart.Line = lineView(v, cfg)
	case *widget.PiePayload:
		chart.Pie = pieView(v, cfg)
	case *widget.HistogramPayload:
		chart.Histogram = histogramView(v, cfg)
	case *widget.ScatterPayload:
		chart.Scatter = scatterView(v, cfg)
	case *widget.CalendarHeatmapPayload:
		chart.Heatmap = heatmapView(v, cfg)
	case *widget.MapPayload:
		chart.Map = mapView(v, cfg)
	default:
		return unknownType(chart.Type, cfg.Title)
	}
	return chart
}

func empty(c Chart) Chart {
	c.State = StateEmpty
	c.Reason = ReasonNoData
	c.Message = noDataMessage
	return c
}

func unknownType(t widget.VisualizationType, title string) Chart {
	return Chart{
		State:   StateEmpty,
		Type:    t,
		Title:   title,
		Reason:  ReasonUnknownType,
		Message: fmt.Sprintf("Unsupported chart type %q", t),
	}
}

// isNil catches typed nil pointers stored in the interface.
func isNil(p widget.Payload) bool {
	if p == nil {
		return true
	}
	v := reflect.ValueOf(p)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

func nonBlank(msgs []string) []string {
	var out []string
	for _, m := range msgs {
		if m = strings.TrimSpace(m); m != "" {
			out = append(out, m)
		}
	}
	return out
}

// ErrorChart is the error state for a failed payload fetch. The message is
// generic; the cause belongs in the log.
func ErrorChart(cfg widget.Config) Chart {
	return Chart{State: StateError, Type: cfg.VisualizationType, Title: cfg.Title, Message: errorMessage}
}
