package render

import (
	"fmt"
	"strconv"

	"github.com/GregMSThompson/widget-builder/internal/widget"
	"github.com/GregMSThompson/widget-builder/pkg/helpers"
)

const (
	categoryKey = "category"
	xKey        = "x"
	binKey      = "bin"
	stackID     = "stack"
)

func cardView(p *widget.CardPayload, cfg widget.Config) *CardView {
	label := p.Label
	if label == "" && len(cfg.Metrics) > 0 {
		label = cfg.Metrics[0].Label
	}
	return &CardView{Label: label, Value: FormatCardValue(p.Value)}
}

func barView(p *widget.BarPayload, cfg widget.Config) *BarView {
	stacked := cfg.Appearance.BarMode == widget.BarStacked
	series := seriesViews(p.Series, cfg, categoryKey)
	for i := range series {
		if stacked {
			series[i].StackID = stackID
		}
		if m := metricByID(cfg, series[i].MetricID); m != nil {
			series[i].BarStyle = helpers.Value(m.Appearance).BarStyle
		}
	}

	keys := make([]any, len(p.Categories))
	for i, c := range p.Categories {
		keys[i] = c
	}

	v := &BarView{
		CategoryKey:  categoryKey,
		Records:      mergeRecords(categoryKey, keys, p.Series, series),
		Series:       series,
		Ticks:        ticks(keys),
		Orientation:  cfg.Appearance.Orientation,
		CategoryAxis: AxisX,
		ValueAxis:    AxisY,
		Stacked:      stacked,
		ShowLegend:   cfg.Appearance.ShowLegend,
	}
	if v.Orientation == widget.Horizontal {
		v.CategoryAxis, v.ValueAxis = AxisY, AxisX
	} else {
		v.Orientation = widget.Vertical
	}
	return v
}

func lineView(p *widget.LinePayload, cfg widget.Config) *LineView {
	series := seriesViews(p.Series, cfg, xKey)
	for i := range series {
		style := "solid"
		if cfg.Appearance.Dashed {
			style = "dashed"
		}
		if m := metricByID(cfg, series[i].MetricID); m != nil {
			if ls := helpers.Value(m.Appearance).LineStyle; ls != "" {
				style = ls
			}
		}
		series[i].LineStyle = style
	}
	return &LineView{
		XKey:       xKey,
		Records:    mergeRecords(xKey, p.X, p.Series, series),
		Series:     series,
		Ticks:      ticks(p.X),
		ShowPoints: cfg.Appearance.ShowPoints,
		Dashed:     cfg.Appearance.Dashed,
		ShowLegend: cfg.Appearance.ShowLegend,
	}
}

func pieView(p *widget.PiePayload, cfg widget.Config) *PieView {
	slices := make([]SliceView, len(p.Slices))
	total := 0.0
	for i, s := range p.Slices {
		v, _ := ToNumber(s.Value)
		total += v
		slices[i] = SliceView{
			Label: s.Label,
			Value: v,
			Color: CategoricalColor(i, cfg.Appearance.PaletteID),
		}
	}
	for i := range slices {
		if total != 0 {
			slices[i].Percent = slices[i].Value / total * 100
		}
		slices[i].Tooltip = fmt.Sprintf("%s: %s (%s%%)",
			slices[i].Label, Grouped(slices[i].Value), strconv.FormatFloat(round1(slices[i].Percent), 'f', -1, 64))
	}
	return &PieView{
		Slices:     slices,
		Total:      total,
		Donut:      cfg.Appearance.Donut,
		ShowLegend: cfg.Appearance.ShowLegend,
	}
}

func histogramView(p *widget.HistogramPayload, cfg widget.Config) *HistogramView {
	series := seriesViews(p.Series, cfg, binKey)
	keys := make([]any, len(p.Bins))
	for i, b := range p.Bins {
		keys[i] = b
	}
	return &HistogramView{
		BinKey:  binKey,
		Records: mergeRecords(binKey, keys, p.Series, series),
		Series:  series,
		Ticks:   ticks(keys),
	}
}

// scatterView keeps every series as its own point cloud. Points without a
// numeric y are dropped.
func scatterView(p *widget.ScatterPayload, cfg widget.Config) *ScatterView {
	colors := NewColorResolver(cfg.Appearance, cfg.Metrics)
	keys := map[string]int{}
	out := make([]ScatterSeriesView, len(p.Series))
	for i, s := range p.Series {
		metricID := seriesMetricID(s.MetricID, i, cfg)
		sv := ScatterSeriesView{
			SeriesView: SeriesView{
				Key:      seriesKey(s.Name, i, keys),
				Name:     s.Name,
				MetricID: metricID,
				Color:    colors.Color(i, metricID),
			},
			Points: make([]PointView, 0, len(s.Points)),
		}
		for _, pt := range s.Points {
			y, ok := ToNumber(pt.Y)
			if !ok || pt.X == nil {
				continue
			}
			x := pt.X
			if f, ok := ToNumber(pt.X); ok {
				x = f
			}
			sv.Points = append(sv.Points, PointView{
				X:       x,
				Y:       y,
				Tooltip: FormatTooltipLabel(pt.X) + ", " + CompactNumber(y),
			})
		}
		out[i] = sv
	}
	return &ScatterView{Series: out, ShowLegend: cfg.Appearance.ShowLegend}
}

// heatmapView colors each day against the largest value in this payload.
// Days whose date does not parse are skipped.
func heatmapView(p *widget.CalendarHeatmapPayload, cfg widget.Config) *HeatmapView {
	paletteID := cfg.Appearance.SequentialPaletteID
	if _, ok := sequentialPalettes[paletteID]; !ok {
		paletteID = DefaultSequentialPalette
	}

	cells := make([]HeatmapCell, 0, len(p.Days))
	values := make([]float64, 0, len(p.Days))
	for _, d := range p.Days {
		t, ok := ParseDate(d.Date)
		if !ok {
			continue
		}
		v, _ := ToNumber(d.Value)
		values = append(values, v)
		cells = append(cells, HeatmapCell{
			Date:    t.Format(widget.DateLayout),
			Value:   v,
			Tooltip: t.Format("January 2, 2006") + ": " + Grouped(v),
		})
	}

	maxValue := MaxValue(values)
	for i := range cells {
		cells[i].Color = SequentialColor(cells[i].Value, maxValue, paletteID)
	}
	return &HeatmapView{
		Cells:     cells,
		MaxValue:  maxValue,
		PaletteID: paletteID,
		Legend:    SequentialPalette(paletteID),
	}
}

// mapView resolves a color per country. Value coloring grades against the
// largest value; option coloring uses the configured option colors and
// falls back to the categorical palette in order of first appearance.
func mapView(p *widget.MapPayload, cfg widget.Config) *MapView {
	opts := helpers.ValueOr(cfg.Options.Map, widget.MapOptions{ColorBy: widget.MapColorByValue})
	v := &MapView{ColorBy: opts.ColorBy, Countries: make([]CountryView, len(p.Countries))}
	if v.ColorBy == "" {
		v.ColorBy = widget.MapColorByValue
	}

	values := make([]float64, len(p.Countries))
	for i, c := range p.Countries {
		values[i], _ = ToNumber(c.Value)
		v.Countries[i] = CountryView{
			Country: c.Country,
			Value:   values[i],
			Option:  c.Option,
			Tooltip: c.Country + ": " + Grouped(values[i]),
		}
	}

	if v.ColorBy == widget.MapColorByOptions {
		palette := opts.PaletteID
		if palette == "" {
			palette = cfg.Appearance.PaletteID
		}
		assigned := map[string]string{}
		for i, c := range v.Countries {
			color, ok := assigned[c.Option]
			if !ok {
				color = opts.OptionColors[c.Option]
				if color == "" {
					color = CategoricalColor(len(v.Legend), palette)
				}
				assigned[c.Option] = color
				v.Legend = append(v.Legend, LegendEntry{Label: c.Option, Color: color})
			}
			v.Countries[i].Color = color
		}
		return v
	}

	v.PaletteID = opts.PaletteID
	if _, ok := sequentialPalettes[v.PaletteID]; !ok {
		v.PaletteID = cfg.Appearance.SequentialPaletteID
	}
	if _, ok := sequentialPalettes[v.PaletteID]; !ok {
		v.PaletteID = DefaultSequentialPalette
	}
	v.MaxValue = MaxValue(values)
	for i := range v.Countries {
		v.Countries[i].Color = SequentialColor(values[i], v.MaxValue, v.PaletteID)
	}
	return v
}

// seriesViews assigns keys and colors. Series without a metric id take the
// id of the metric at the same position. Keys never collide with axisKey.
func seriesViews(series []widget.Series, cfg widget.Config, axisKey string) []SeriesView {
	colors := NewColorResolver(cfg.Appearance, cfg.Metrics)
	keys := map[string]int{axisKey: 1}
	out := make([]SeriesView, len(series))
	for i, s := range series {
		metricID := seriesMetricID(s.MetricID, i, cfg)
		out[i] = SeriesView{
			Key:      seriesKey(s.Name, i, keys),
			Name:     s.Name,
			MetricID: metricID,
			Color:    colors.Color(i, metricID),
		}
	}
	return out
}

// mergeRecords builds one record per key, holding every series' value at
// that position. Missing or non-numeric values are nil, never zero.
func mergeRecords(key string, keys []any, series []widget.Series, views []SeriesView) []Record {
	records := make([]Record, len(keys))
	for i, k := range keys {
		r := Record{key: k}
		for j, s := range series {
			var v any
			if i < len(s.Data) {
				if f, ok := ToNumber(s.Data[i]); ok {
					v = f
				}
			}
			r[views[j].Key] = v
		}
		records[i] = r
	}
	return records
}

func ticks(values []any) []Tick {
	out := make([]Tick, len(values))
	for i, v := range values {
		out[i] = Tick{Value: v, Label: FormatXAxisTick(v), Tooltip: FormatTooltipLabel(v)}
	}
	return out
}

// seriesKey returns the record key for a series: its name, made unique
// within the chart.
func seriesKey(name string, index int, seen map[string]int) string {
	key := name
	if key == "" {
		key = "series" + strconv.Itoa(index+1)
	}
	if n := seen[key]; n > 0 {
		seen[key] = n + 1
		key = key + " (" + strconv.Itoa(n+1) + ")"
	}
	seen[key]++
	return key
}

func seriesMetricID(id string, index int, cfg widget.Config) string {
	if id != "" {
		return id
	}
	if index < len(cfg.Metrics) {
		return cfg.Metrics[index].ID
	}
	return ""
}

func metricByID(cfg widget.Config, id string) *widget.Metric {
	if i := cfg.MetricIndex(id); i >= 0 {
		return &cfg.Metrics[i]
	}
	return nil
}

func round1(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	return r
}
