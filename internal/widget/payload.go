package widget

import (
	"encoding/json"
	"fmt"
)

// PayloadMeta is carried by every payload variant. Errors and Empty take
// precedence over the variant's own data when rendering.
type PayloadMeta struct {
	Empty  bool     `json:"empty,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

// Payload is the data returned by the aggregation service for one widget,
// one variant per visualization type.
type Payload interface {
	Kind() VisualizationType
	Meta() PayloadMeta
	// HasData reports whether the variant carries anything to draw.
	HasData() bool
}

func (m PayloadMeta) Meta() PayloadMeta { return m }

// Series is a named list of values aligned with the payload's categories,
// x values or bins. Values may be numbers, numeric strings or null.
type Series struct {
	Name     string `json:"name"`
	MetricID string `json:"metricId,omitempty"`
	Data     []any  `json:"data"`
}

type CardPayload struct {
	PayloadMeta
	Value any    `json:"value"`
	Label string `json:"label,omitempty"`
}

func (p *CardPayload) Kind() VisualizationType { return VisCard }
func (p *CardPayload) HasData() bool           { return p.Value != nil }

type BarPayload struct {
	PayloadMeta
	Categories []string `json:"categories"`
	Series     []Series `json:"series"`
}

func (p *BarPayload) Kind() VisualizationType { return VisBar }
func (p *BarPayload) HasData() bool           { return len(p.Categories) > 0 && len(p.Series) > 0 }

type LinePayload struct {
	PayloadMeta
	X      []any    `json:"x"`
	Series []Series `json:"series"`
}

func (p *LinePayload) Kind() VisualizationType { return VisLine }
func (p *LinePayload) HasData() bool           { return len(p.X) > 0 && len(p.Series) > 0 }

type Slice struct {
	Label string `json:"label"`
	Value any    `json:"value"`
}

type PiePayload struct {
	PayloadMeta
	Slices []Slice `json:"slices"`
}

func (p *PiePayload) Kind() VisualizationType { return VisPie }
func (p *PiePayload) HasData() bool           { return len(p.Slices) > 0 }

// HistogramPayload carries bins computed upstream.
type HistogramPayload struct {
	PayloadMeta
	Bins   []string `json:"bins"`
	Series []Series `json:"series"`
}

func (p *HistogramPayload) Kind() VisualizationType { return VisHistogram }
func (p *HistogramPayload) HasData() bool           { return len(p.Bins) > 0 && len(p.Series) > 0 }

type Point struct {
	X any `json:"x"`
	Y any `json:"y"`
}

type ScatterSeries struct {
	Name     string  `json:"name"`
	MetricID string  `json:"metricId,omitempty"`
	Points   []Point `json:"points"`
}

type ScatterPayload struct {
	PayloadMeta
	Series []ScatterSeries `json:"series"`
}

func (p *ScatterPayload) Kind() VisualizationType { return VisScatter }

func (p *ScatterPayload) HasData() bool {
	for _, s := range p.Series {
		if len(s.Points) > 0 {
			return true
		}
	}
	return false
}

type HeatmapDay struct {
	Date  string `json:"date"`
	Value any    `json:"value"`
}

type CalendarHeatmapPayload struct {
	PayloadMeta
	Days []HeatmapDay `json:"days"`
}

func (p *CalendarHeatmapPayload) Kind() VisualizationType { return VisCalendarHeatmap }
func (p *CalendarHeatmapPayload) HasData() bool           { return len(p.Days) > 0 }

// CountryValue is one country of a map payload. Option is set when the map
// is colored by a select field's options.
type CountryValue struct {
	Country string `json:"country"`
	Value   any    `json:"value"`
	Option  string `json:"option,omitempty"`
}

type MapPayload struct {
	PayloadMeta
	Countries []CountryValue `json:"countries"`
}

func (p *MapPayload) Kind() VisualizationType { return VisMap }
func (p *MapPayload) HasData() bool           { return len(p.Countries) > 0 }

// UnknownPayload is what DecodePayload produces for a tag it does not know.
type UnknownPayload struct {
	PayloadMeta
	Tag string `json:"type"`
}

func (p *UnknownPayload) Kind() VisualizationType { return VisualizationType(p.Tag) }
func (p *UnknownPayload) HasData() bool           { return false }

// DecodePayload reads a tagged payload. Unknown tags decode to
// *UnknownPayload rather than failing; only malformed JSON is an error.
func DecodePayload(data []byte) (Payload, error) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}

	var p Payload
	switch VisualizationType(env.Type) {
	case VisCard:
		p = &CardPayload{}
	case VisBar:
		p = &BarPayload{}
	case VisLine:
		p = &LinePayload{}
	case VisPie:
		p = &PiePayload{}
	case VisHistogram:
		p = &HistogramPayload{}
	case VisScatter:
		p = &ScatterPayload{}
	case VisCalendarHeatmap:
		p = &CalendarHeatmapPayload{}
	case VisMap:
		p = &MapPayload{}
	default:
		p = &UnknownPayload{}
	}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", env.Type, err)
	}
	return p, nil
}
