package widget

import (
	"maps"
	"slices"
)

// MetricMode selects between aggregated groups and raw per-record values.
type MetricMode string

const (
	ModeAggregation MetricMode = "aggregation"
	ModeValue       MetricMode = "value"
)

// DateGranularity is the bucket size of a time group-by.
type DateGranularity string

const (
	GranularityMinute  DateGranularity = "minute"
	GranularityHour    DateGranularity = "hour"
	GranularityDay     DateGranularity = "day"
	GranularityWeek    DateGranularity = "week"
	GranularityMonth   DateGranularity = "month"
	GranularityQuarter DateGranularity = "quarter"
	GranularityYear    DateGranularity = "year"
	GranularityWhole   DateGranularity = "whole"
)

// IsValid reports whether g is one of the known granularities.
func (g DateGranularity) IsValid() bool {
	switch g {
	case GranularityMinute, GranularityHour, GranularityDay, GranularityWeek,
		GranularityMonth, GranularityQuarter, GranularityYear, GranularityWhole:
		return true
	}
	return false
}

// SeriesAppearance overrides how one metric's series is drawn.
type SeriesAppearance struct {
	Color     string `firestore:"color,omitempty" json:"color,omitempty"`
	LineStyle string `firestore:"lineStyle,omitempty" json:"lineStyle,omitempty"` // "solid","dashed","dotted"
	BarStyle  string `firestore:"barStyle,omitempty" json:"barStyle,omitempty"`   // "solid","outline"
}

// Metric is one measurement of the widget.
type Metric struct {
	ID          string            `firestore:"id" json:"id"`
	FormID      string            `firestore:"formId,omitempty" json:"formId,omitempty"`
	Field       FieldRef          `firestore:"field" json:"field"`
	FieldType   FieldType         `firestore:"fieldType,omitempty" json:"fieldType,omitempty"`
	Aggregation AggregationFn     `firestore:"aggregation,omitempty" json:"aggregation,omitempty"`
	Label       string            `firestore:"label,omitempty" json:"label,omitempty"`
	Appearance  *SeriesAppearance `firestore:"appearance,omitempty" json:"appearance,omitempty"`
}

// IsComplete reports whether the metric names a form and a field.
func (m Metric) IsComplete() bool {
	return m.FormID != "" && m.Field.IsSet()
}

// GroupBy is the single grouping dimension of a widget.
type GroupBy struct {
	Kind           GroupByKind     `firestore:"kind" json:"kind"`
	Field          FieldRef        `firestore:"field" json:"field"`
	Granularity    DateGranularity `firestore:"granularity,omitempty" json:"granularity,omitempty"`
	IncludeMissing bool            `firestore:"includeMissing" json:"includeMissing"`
}

// IsResolved reports whether the group-by points at a field.
func (g GroupBy) IsResolved() bool {
	return g.Kind != "" && g.Kind != GroupByNone && g.Field.IsSet()
}

// ValueModeGroupBy is the grouping forced by value mode: every record is
// its own category.
func ValueModeGroupBy() GroupBy {
	return GroupBy{Kind: GroupByCategorical, Field: SystemField(SystemResponseID)}
}

// Filter restricts the records fed into the aggregation.
type Filter struct {
	ID        string    `firestore:"id" json:"id"`
	FormID    string    `firestore:"formId,omitempty" json:"formId,omitempty"`
	Field     FieldRef  `firestore:"field" json:"field"`
	FieldType FieldType `firestore:"fieldType,omitempty" json:"fieldType,omitempty"`
	Operator  Operator  `firestore:"operator,omitempty" json:"operator,omitempty"`
	Value     any       `firestore:"value,omitempty" json:"value,omitempty"`
}

type PaletteMode string

const (
	PalettePreset PaletteMode = "preset"
	PaletteCustom PaletteMode = "custom"
)

type Orientation string

const (
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
)

type BarMode string

const (
	BarStacked BarMode = "stacked"
	BarGrouped BarMode = "grouped"
)

// Appearance holds palette selection and per-chart style flags.
type Appearance struct {
	PaletteMode         PaletteMode       `firestore:"paletteMode,omitempty" json:"paletteMode,omitempty"`
	PaletteID           string            `firestore:"paletteId,omitempty" json:"paletteId,omitempty"`
	SequentialPaletteID string            `firestore:"sequentialPaletteId,omitempty" json:"sequentialPaletteId,omitempty"`
	SeriesColors        map[string]string `firestore:"seriesColors,omitempty" json:"seriesColors,omitempty"` // metric id -> hex
	Orientation         Orientation       `firestore:"orientation,omitempty" json:"orientation,omitempty"`
	BarMode             BarMode           `firestore:"barMode,omitempty" json:"barMode,omitempty"`
	ShowPoints          bool              `firestore:"showPoints" json:"showPoints"`
	Dashed              bool              `firestore:"dashed" json:"dashed"`
	Donut               bool              `firestore:"donut" json:"donut"`
	ShowLegend          bool              `firestore:"showLegend" json:"showLegend"`
}

// MapColorBy selects how countries are colored on a map.
type MapColorBy string

const (
	MapColorByValue   MapColorBy = "value"
	MapColorByOptions MapColorBy = "options"
)

// MapMetric is the map type's metric: a country field plus a value field.
type MapMetric struct {
	ID             string        `firestore:"id" json:"id"`
	FormID         string        `firestore:"formId,omitempty" json:"formId,omitempty"`
	CountryFieldID string        `firestore:"countryFieldId,omitempty" json:"countryFieldId,omitempty"`
	ValueFieldID   string        `firestore:"valueFieldId,omitempty" json:"valueFieldId,omitempty"`
	Aggregation    AggregationFn `firestore:"aggregation,omitempty" json:"aggregation,omitempty"`
	Label          string        `firestore:"label,omitempty" json:"label,omitempty"`
}

func (m MapMetric) IsComplete() bool {
	return m.FormID != "" && m.CountryFieldID != "" && m.ValueFieldID != ""
}

// MapOptions is the map type's own sub-configuration.
type MapOptions struct {
	Metrics      []MapMetric       `firestore:"metrics" json:"metrics"`
	ColorBy      MapColorBy        `firestore:"colorBy,omitempty" json:"colorBy,omitempty"`
	PaletteID    string            `firestore:"paletteId,omitempty" json:"paletteId,omitempty"`
	OptionColors map[string]string `firestore:"optionColors,omitempty" json:"optionColors,omitempty"` // option value -> hex
}

// Options carries type-specific sub-configuration.
type Options struct {
	Map *MapOptions `firestore:"map,omitempty" json:"map,omitempty"`
}

// Config is a widget configuration snapshot. Edits go through Apply and
// never mutate an existing snapshot.
type Config struct {
	Title             string            `firestore:"title" json:"title"`
	Description       string            `firestore:"description,omitempty" json:"description,omitempty"`
	VisualizationType VisualizationType `firestore:"visualizationType" json:"visualizationType"`
	MetricMode        MetricMode        `firestore:"metricMode" json:"metricMode"`
	Metrics           []Metric          `firestore:"metrics" json:"metrics"`
	GroupBy           GroupBy           `firestore:"groupBy" json:"groupBy"`
	DateRange         DateRange         `firestore:"dateRange" json:"dateRange"`
	Filters           []Filter          `firestore:"filters" json:"filters"`
	Appearance        Appearance        `firestore:"appearance" json:"appearance"`
	Options           Options           `firestore:"options" json:"options"`
}

// NewConfig returns an empty configuration for t.
func NewConfig(t VisualizationType) Config {
	cfg := Config{
		VisualizationType: t,
		MetricMode:        ModeAggregation,
		Metrics:           []Metric{},
		GroupBy:           GroupBy{Kind: GroupByNone},
		DateRange:         DateRange{Preset: RangeLast30Days},
		Filters:           []Filter{},
		Appearance: Appearance{
			PaletteMode: PalettePreset,
			PaletteID:   "default",
			Orientation: Vertical,
			BarMode:     BarGrouped,
			ShowLegend:  true,
		},
	}
	if t == VisMap {
		cfg.Options.Map = &MapOptions{Metrics: []MapMetric{}, ColorBy: MapColorByValue}
	}
	return cfg
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	out := c
	out.Metrics = make([]Metric, len(c.Metrics))
	for i, m := range c.Metrics {
		if m.Appearance != nil {
			a := *m.Appearance
			m.Appearance = &a
		}
		out.Metrics[i] = m
	}
	out.Filters = slices.Clone(c.Filters)
	if out.Filters == nil {
		out.Filters = []Filter{}
	}
	out.Appearance.SeriesColors = maps.Clone(c.Appearance.SeriesColors)
	if c.Options.Map != nil {
		m := *c.Options.Map
		m.Metrics = slices.Clone(c.Options.Map.Metrics)
		m.OptionColors = maps.Clone(c.Options.Map.OptionColors)
		out.Options.Map = &m
	}
	return out
}

// MetricIndex returns the position of the metric with id, or -1.
func (c Config) MetricIndex(id string) int {
	return slices.IndexFunc(c.Metrics, func(m Metric) bool { return m.ID == id })
}

// FilterIndex returns the position of the filter with id, or -1.
func (c Config) FilterIndex(id string) int {
	return slices.IndexFunc(c.Filters, func(f Filter) bool { return f.ID == id })
}
