package render

import "github.com/GregMSThompson/widget-builder/internal/widget"

// State is the display state of a chart.
type State string

const (
	StateLoading  State = "loading"
	StateError    State = "error"
	StateEmpty    State = "empty"
	StateRendered State = "rendered"
)

// EmptyReason tells the two empty states apart.
type EmptyReason string

const (
	ReasonNoData      EmptyReason = "no-data"
	ReasonUnknownType EmptyReason = "unknown-type"
)

// Flags are supplied by the caller alongside the payload.
type Flags struct {
	Loading bool   `json:"loading,omitempty"`
	Error   string `json:"error,omitempty"`
	Preview bool   `json:"preview,omitempty"`
}

// Chart is the description handed to the presentation layer. When State is
// rendered exactly one of the view fields is set.
type Chart struct {
	State   State                    `json:"state"`
	Type    widget.VisualizationType `json:"type"`
	Title   string                   `json:"title,omitempty"`
	Message string                   `json:"message,omitempty"`
	Reason  EmptyReason              `json:"reason,omitempty"`
	Preview bool                     `json:"preview,omitempty"`

	Card      *CardView      `json:"card,omitempty"`
	Bar       *BarView       `json:"bar,omitempty"`
	Line      *LineView      `json:"line,omitempty"`
	Pie       *PieView       `json:"pie,omitempty"`
	Histogram *HistogramView `json:"histogram,omitempty"`
	Scatter   *ScatterView   `json:"scatter,omitempty"`
	Heatmap   *HeatmapView   `json:"heatmap,omitempty"`
	Map       *MapView       `json:"map,omitempty"`
}

// Record is one row of a merged chart: the category (or x, or bin) under
// its key plus one entry per series key.
type Record map[string]any

// SeriesView describes how one series is drawn.
type SeriesView struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	MetricID  string `json:"metricId,omitempty"`
	Color     string `json:"color"`
	StackID   string `json:"stackId,omitempty"`
	LineStyle string `json:"lineStyle,omitempty"`
	BarStyle  string `json:"barStyle,omitempty"`
}

// Tick is a formatted axis value.
type Tick struct {
	Value   any    `json:"value"`
	Label   string `json:"label"`
	Tooltip string `json:"tooltip"`
}

type CardView struct {
	Label string    `json:"label,omitempty"`
	Value CardValue `json:"value"`
}

// Axis names which screen axis carries a role.
type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
)

type BarView struct {
	CategoryKey  string             `json:"categoryKey"`
	Records      []Record           `json:"records"`
	Series       []SeriesView       `json:"series"`
	Ticks        []Tick             `json:"ticks"`
	Orientation  widget.Orientation `json:"orientation"`
	CategoryAxis Axis               `json:"categoryAxis"`
	ValueAxis    Axis               `json:"valueAxis"`
	Stacked      bool               `json:"stacked"`
	ShowLegend   bool               `json:"showLegend"`
}

type LineView struct {
	XKey       string       `json:"xKey"`
	Records    []Record     `json:"records"`
	Series     []SeriesView `json:"series"`
	Ticks      []Tick       `json:"ticks"`
	ShowPoints bool         `json:"showPoints"`
	Dashed     bool         `json:"dashed"`
	ShowLegend bool         `json:"showLegend"`
}

type SliceView struct {
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"`
	Color   string  `json:"color"`
	Tooltip string  `json:"tooltip"`
}

type PieView struct {
	Slices     []SliceView `json:"slices"`
	Total      float64     `json:"total"`
	Donut      bool        `json:"donut"`
	ShowLegend bool        `json:"showLegend"`
}

// HistogramView has the bar layout with bins as categories.
type HistogramView struct {
	BinKey  string       `json:"binKey"`
	Records []Record     `json:"records"`
	Series  []SeriesView `json:"series"`
	Ticks   []Tick       `json:"ticks"`
}

type PointView struct {
	X       any    `json:"x"`
	Y       any    `json:"y"`
	Tooltip string `json:"tooltip"`
}

type ScatterSeriesView struct {
	SeriesView
	Points []PointView `json:"points"`
}

type ScatterView struct {
	Series     []ScatterSeriesView `json:"series"`
	ShowLegend bool                `json:"showLegend"`
}

type HeatmapCell struct {
	Date    string  `json:"date"`
	Value   float64 `json:"value"`
	Color   string  `json:"color"`
	Tooltip string  `json:"tooltip"`
}

type HeatmapView struct {
	Cells     []HeatmapCell `json:"cells"`
	MaxValue  float64       `json:"maxValue"`
	PaletteID string        `json:"paletteId"`
	// Legend is the palette's steps, lightest first.
	Legend []string `json:"legend"`
}

type CountryView struct {
	Country string  `json:"country"`
	Value   float64 `json:"value"`
	Option  string  `json:"option,omitempty"`
	Color   string  `json:"color"`
	Tooltip string  `json:"tooltip"`
}

type LegendEntry struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// MapView is the per-country color mapping passed to the map renderer.
type MapView struct {
	ColorBy   widget.MapColorBy `json:"colorBy"`
	Countries []CountryView     `json:"countries"`
	MaxValue  float64           `json:"maxValue,omitempty"`
	PaletteID string            `json:"paletteId,omitempty"`
	Legend    []LegendEntry     `json:"legend,omitempty"`
}
