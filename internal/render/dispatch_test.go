package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/GregMSThompson/widget-builder/internal/widget"
)

func barConfig() widget.Config {
	cfg := widget.NewConfig(widget.VisBar)
	cfg.Title = "Revenue"
	cfg.Metrics = []widget.Metric{{ID: "m1", Label: "Revenue"}}
	return cfg
}

func revenuePayload() *widget.BarPayload {
	return &widget.BarPayload{
		Categories: []string{"Jan", "Feb"},
		Series:     []widget.Series{{Name: "Revenue", Data: []any{500.0, 650.0}}},
	}
}

// --- state machine ---

func TestRender_Loading(t *testing.T) {
	got := Render(revenuePayload(), barConfig(), Flags{Loading: true, Error: "boom"})
	if got.State != StateLoading {
		t.Errorf("expected loading, got %s", got.State)
	}
}

func TestRender_ErrorFlag(t *testing.T) {
	got := Render(revenuePayload(), barConfig(), Flags{Error: "query failed"})
	if got.State != StateError || got.Message != "query failed" {
		t.Errorf("expected error state with message, got %+v", got)
	}
}

func TestRender_PayloadErrors(t *testing.T) {
	p := revenuePayload()
	p.Errors = []string{"field missing", " "}
	p.Empty = true
	got := Render(p, barConfig(), Flags{})
	if got.State != StateError || got.Message != "field missing" {
		t.Errorf("expected payload error to win, got %+v", got)
	}
}

func TestRender_Empty(t *testing.T) {
	cases := map[string]widget.Payload{
		"nil":         nil,
		"typed nil":   (*widget.BarPayload)(nil),
		"empty flag":  &widget.BarPayload{PayloadMeta: widget.PayloadMeta{Empty: true}, Categories: []string{"a"}, Series: []widget.Series{{Name: "x"}}},
		"no data":     &widget.BarPayload{},
		"no slices":   &widget.PiePayload{},
		"blank error": &widget.CardPayload{PayloadMeta: widget.PayloadMeta{Errors: []string{""}}},
	}
	for name, p := range cases {
		got := Render(p, barConfig(), Flags{})
		if got.State != StateEmpty || got.Reason != ReasonNoData {
			t.Errorf("%s: expected no-data empty state, got %+v", name, got)
		}
	}
}

func TestRender_UnknownType(t *testing.T) {
	got := Render(&widget.UnknownPayload{Tag: "gauge"}, barConfig(), Flags{})
	if got.State != StateEmpty || got.Reason != ReasonUnknownType {
		t.Errorf("expected unknown-type empty state, got %+v", got)
	}
	if got.Type != "gauge" {
		t.Errorf("expected type gauge, got %s", got.Type)
	}
}

func TestRender_PreviewWithoutPayload(t *testing.T) {
	got := Render(nil, barConfig(), Flags{Preview: true})
	if got.State != StateRendered || !got.Preview || got.Bar == nil {
		t.Fatalf("expected rendered preview bar, got %+v", got)
	}
	if len(got.Bar.Records) != 6 {
		t.Errorf("expected 6 preview categories, got %d", len(got.Bar.Records))
	}
}

func TestRender_PreviewIgnoredWithPayload(t *testing.T) {
	got := Render(revenuePayload(), barConfig(), Flags{Preview: true})
	if got.Preview || len(got.Bar.Records) != 2 {
		t.Errorf("live payload should be rendered, got %+v", got)
	}
}

func TestRender_ExactlyOneView(t *testing.T) {
	for _, d := range widget.Descriptors() {
		cfg := widget.NewConfig(d.Type)
		got := Render(nil, cfg, Flags{Preview: true})
		if got.State != StateRendered {
			t.Fatalf("%s: expected rendered, got %s", d.Type, got.State)
		}
		views := 0
		for _, set := range []bool{got.Card != nil, got.Bar != nil, got.Line != nil, got.Pie != nil,
			got.Histogram != nil, got.Scatter != nil, got.Heatmap != nil, got.Map != nil} {
			if set {
				views++
			}
		}
		if views != 1 {
			t.Errorf("%s: expected exactly one view, got %d", d.Type, views)
		}
	}
}

// --- transforms ---

func TestRender_BarRecords(t *testing.T) {
	got := Render(revenuePayload(), barConfig(), Flags{})
	if got.State != StateRendered || got.Bar == nil {
		t.Fatalf("expected rendered bar, got %+v", got)
	}
	want := []Record{
		{"category": "Jan", "Revenue": 500.0},
		{"category": "Feb", "Revenue": 650.0},
	}
	if diff := cmp.Diff(want, got.Bar.Records); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
	if got.Bar.Series[0].MetricID != "m1" {
		t.Errorf("expected series bound to m1, got %q", got.Bar.Series[0].MetricID)
	}
}

func TestRender_BarOrientationAndStacking(t *testing.T) {
	cfg := barConfig()
	cfg.Appearance.Orientation = widget.Horizontal
	cfg.Appearance.BarMode = widget.BarStacked
	p := revenuePayload()
	p.Series = append(p.Series, widget.Series{Name: "Cost", Data: []any{"200", nil}})

	bar := Render(p, cfg, Flags{}).Bar
	if bar.CategoryAxis != AxisY || bar.ValueAxis != AxisX {
		t.Errorf("horizontal bars should swap axes, got category %s value %s", bar.CategoryAxis, bar.ValueAxis)
	}
	if !bar.Stacked || bar.Series[0].StackID == "" || bar.Series[0].StackID != bar.Series[1].StackID {
		t.Errorf("stacked bars should share a stack id, got %+v", bar.Series)
	}
	if bar.Records[0]["Cost"] != 200.0 || bar.Records[1]["Cost"] != nil {
		t.Errorf("unexpected cost values %v", bar.Records)
	}

	cfg.Appearance.BarMode = widget.BarGrouped
	grouped := Render(p, cfg, Flags{}).Bar
	if grouped.Stacked || grouped.Series[0].StackID != "" {
		t.Errorf("grouped bars should not stack, got %+v", grouped.Series)
	}
}

func TestRender_LineGaps(t *testing.T) {
	cfg := widget.NewConfig(widget.VisLine)
	cfg.Appearance.Dashed = true
	p := &widget.LinePayload{
		X: []any{"2024-01-01", "2024-01-02", "2024-01-03"},
		Series: []widget.Series{
			{Name: "Visits", Data: []any{1.0, nil}},
			{Name: "Visits", Data: []any{3.0, 4.0, 5.0}},
		},
	}
	line := Render(p, cfg, Flags{}).Line
	if line == nil {
		t.Fatal("expected line view")
	}
	want := []Record{
		{"x": "2024-01-01", "Visits": 1.0, "Visits (2)": 3.0},
		{"x": "2024-01-02", "Visits": nil, "Visits (2)": 4.0},
		{"x": "2024-01-03", "Visits": nil, "Visits (2)": 5.0},
	}
	if diff := cmp.Diff(want, line.Records); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
	if line.Ticks[0].Label != "1 Jan" {
		t.Errorf("expected date tick, got %q", line.Ticks[0].Label)
	}
	if line.Series[0].LineStyle != "dashed" {
		t.Errorf("expected dashed series, got %q", line.Series[0].LineStyle)
	}
}

func TestRender_PieColorsAndTotal(t *testing.T) {
	cfg := widget.NewConfig(widget.VisPie)
	p := &widget.PiePayload{Slices: []widget.Slice{{Label: "A", Value: 30.0}, {Label: "B", Value: "10"}}}
	pie := Render(p, cfg, Flags{}).Pie
	if pie.Total != 40 {
		t.Errorf("expected total 40, got %v", pie.Total)
	}
	if pie.Slices[0].Percent != 75 || pie.Slices[1].Percent != 25 {
		t.Errorf("unexpected percents %+v", pie.Slices)
	}
	for i, s := range pie.Slices {
		if s.Color != CategoricalColor(i, DefaultPalette) {
			t.Errorf("slice %d: expected palette color, got %s", i, s.Color)
		}
	}
}

func TestRender_HistogramMergesLikeBar(t *testing.T) {
	p := &widget.HistogramPayload{
		Bins:   []string{"0-10", "10-20"},
		Series: []widget.Series{{Name: "Count", Data: []any{4.0, 9.0}}},
	}
	h := Render(p, widget.NewConfig(widget.VisHistogram), Flags{}).Histogram
	want := []Record{{"bin": "0-10", "Count": 4.0}, {"bin": "10-20", "Count": 9.0}}
	if diff := cmp.Diff(want, h.Records); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_SeriesNamedLikeAxisKey(t *testing.T) {
	bar := Render(&widget.BarPayload{
		Categories: []string{"Jan", "Feb"},
		Series:     []widget.Series{{Name: "category", Data: []any{500.0, 650.0}}},
	}, barConfig(), Flags{}).Bar
	wantBar := []Record{
		{"category": "Jan", "category (2)": 500.0},
		{"category": "Feb", "category (2)": 650.0},
	}
	if diff := cmp.Diff(wantBar, bar.Records); diff != "" {
		t.Errorf("bar records mismatch (-want +got):\n%s", diff)
	}
	if bar.Series[0].Name != "category" || bar.Series[0].Key != "category (2)" {
		t.Errorf("unexpected series %+v", bar.Series[0])
	}

	line := Render(&widget.LinePayload{
		X:      []any{"2024-01-01", "2024-01-02"},
		Series: []widget.Series{{Name: "x", Data: []any{1.0, 2.0}}},
	}, widget.NewConfig(widget.VisLine), Flags{}).Line
	wantLine := []Record{
		{"x": "2024-01-01", "x (2)": 1.0},
		{"x": "2024-01-02", "x (2)": 2.0},
	}
	if diff := cmp.Diff(wantLine, line.Records); diff != "" {
		t.Errorf("line records mismatch (-want +got):\n%s", diff)
	}

	h := Render(&widget.HistogramPayload{
		Bins:   []string{"0-10"},
		Series: []widget.Series{{Name: "bin", Data: []any{4.0}}},
	}, widget.NewConfig(widget.VisHistogram), Flags{}).Histogram
	if diff := cmp.Diff([]Record{{"bin": "0-10", "bin (2)": 4.0}}, h.Records); diff != "" {
		t.Errorf("histogram records mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_ScatterKeepsSeriesApart(t *testing.T) {
	p := &widget.ScatterPayload{Series: []widget.ScatterSeries{
		{Name: "a", Points: []widget.Point{{X: 1.0, Y: 2.0}, {X: 2.0, Y: "bad"}}},
		{Name: "b", Points: []widget.Point{{X: "3", Y: "4"}}},
	}}
	s := Render(p, widget.NewConfig(widget.VisScatter), Flags{}).Scatter
	if len(s.Series) != 2 {
		t.Fatalf("expected 2 series, got %d", len(s.Series))
	}
	if len(s.Series[0].Points) != 1 {
		t.Errorf("expected non-numeric point dropped, got %+v", s.Series[0].Points)
	}
	if s.Series[1].Points[0].X != 3.0 || s.Series[1].Points[0].Y != 4.0 {
		t.Errorf("expected numeric strings converted, got %+v", s.Series[1].Points[0])
	}
	if s.Series[0].Color == s.Series[1].Color {
		t.Error("expected distinct series colors")
	}
}

func TestRender_HeatmapColors(t *testing.T) {
	p := &widget.CalendarHeatmapPayload{Days: []widget.HeatmapDay{
		{Date: "2024-01-01", Value: 0.0},
		{Date: "2024-01-02", Value: 8.0},
		{Date: "not a date", Value: 3.0},
	}}
	h := Render(p, widget.NewConfig(widget.VisCalendarHeatmap), Flags{}).Heatmap
	if len(h.Cells) != 2 {
		t.Fatalf("expected unparseable day skipped, got %d cells", len(h.Cells))
	}
	if h.MaxValue != 8 {
		t.Errorf("expected max 8, got %v", h.MaxValue)
	}
	steps := SequentialPalette(DefaultSequentialPalette)
	if h.Cells[0].Color != steps[0] || h.Cells[1].Color != steps[len(steps)-1] {
		t.Errorf("unexpected colors %s %s", h.Cells[0].Color, h.Cells[1].Color)
	}
}

func TestRender_MapByOptions(t *testing.T) {
	cfg := widget.NewConfig(widget.VisMap)
	cfg.Options.Map.ColorBy = widget.MapColorByOptions
	cfg.Options.Map.OptionColors = map[string]string{"Gold": "#FFD700"}
	p := &widget.MapPayload{Countries: []widget.CountryValue{
		{Country: "US", Value: 3.0, Option: "Gold"},
		{Country: "GB", Value: 1.0, Option: "Silver"},
		{Country: "DE", Value: 2.0, Option: "Gold"},
	}}
	m := Render(p, cfg, Flags{}).Map
	if m.Countries[0].Color != "#FFD700" || m.Countries[2].Color != "#FFD700" {
		t.Errorf("expected configured option color, got %+v", m.Countries)
	}
	if m.Countries[1].Color != CategoricalColor(1, DefaultPalette) {
		t.Errorf("expected palette fallback for Silver, got %s", m.Countries[1].Color)
	}
	if len(m.Legend) != 2 {
		t.Errorf("expected 2 legend entries, got %d", len(m.Legend))
	}
}

func TestRender_MapByValue(t *testing.T) {
	p := &widget.MapPayload{Countries: []widget.CountryValue{{Country: "US", Value: 10.0}, {Country: "FR", Value: 0.0}}}
	m := Render(p, widget.NewConfig(widget.VisMap), Flags{}).Map
	steps := SequentialPalette(DefaultSequentialPalette)
	if m.Countries[0].Color != steps[len(steps)-1] || m.Countries[1].Color != steps[0] {
		t.Errorf("unexpected colors %+v", m.Countries)
	}
}

func TestRender_CardValue(t *testing.T) {
	cfg := widget.NewConfig(widget.VisCard)
	cfg.Metrics = []widget.Metric{{ID: "m", Label: "Responses"}}
	card := Render(&widget.CardPayload{Value: "1234567"}, cfg, Flags{}).Card
	if card.Value.Compact != "1.2M" || card.Value.Full != "1,234,567" || card.Label != "Responses" {
		t.Errorf("unexpected card %+v", card)
	}
}
