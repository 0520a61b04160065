package widget

import "slices"

// VisualizationType identifies a chart kind.
type VisualizationType string

const (
	VisCard            VisualizationType = "card"
	VisBar             VisualizationType = "bar"
	VisLine            VisualizationType = "line"
	VisPie             VisualizationType = "pie"
	VisHistogram       VisualizationType = "histogram"
	VisScatter         VisualizationType = "scatter"
	VisCalendarHeatmap VisualizationType = "calendar-heatmap"
	VisMap             VisualizationType = "map"
)

// AggregationFn is the function applied to a metric's field per group.
type AggregationFn string

const (
	AggCount  AggregationFn = "count"
	AggSum    AggregationFn = "sum"
	AggAvg    AggregationFn = "avg"
	AggMin    AggregationFn = "min"
	AggMax    AggregationFn = "max"
	AggMedian AggregationFn = "median"
)

// GroupByKind is the dimension kind used to bucket records.
type GroupByKind string

const (
	GroupByNone        GroupByKind = "none"
	GroupByCategorical GroupByKind = "categorical"
	GroupByTime        GroupByKind = "time"
)

var allAggregations = []AggregationFn{AggCount, AggSum, AggAvg, AggMin, AggMax, AggMedian}

// Descriptor describes what a visualization type accepts.
type Descriptor struct {
	Type                  VisualizationType `json:"type"`
	RequiresGroupBy       bool              `json:"requiresGroupBy"`
	SupportsMultiMetric   bool              `json:"supportsMultiMetric"`
	SupportsValueMode     bool              `json:"supportsValueMode"`
	MaxMetrics            int               `json:"maxMetrics"`
	SupportedAggregations []AggregationFn   `json:"supportedAggregations"`
	GroupByKinds          []GroupByKind     `json:"groupByKinds"`
}

// SupportsAggregation reports whether fn is in the supported set.
func (d Descriptor) SupportsAggregation(fn AggregationFn) bool {
	return slices.Contains(d.SupportedAggregations, fn)
}

// SupportsGroupByKind reports whether kind is a legal grouping for the type.
func (d Descriptor) SupportsGroupByKind(kind GroupByKind) bool {
	return slices.Contains(d.GroupByKinds, kind)
}

// clone copies the slices so callers cannot mutate the registry.
func (d Descriptor) clone() Descriptor {
	d.SupportedAggregations = slices.Clone(d.SupportedAggregations)
	d.GroupByKinds = slices.Clone(d.GroupByKinds)
	return d
}

// order is the catalog order returned by Descriptors.
var order = []VisualizationType{
	VisCard, VisBar, VisLine, VisPie, VisHistogram, VisScatter, VisCalendarHeatmap, VisMap,
}

var registry = map[VisualizationType]Descriptor{
	VisCard: {
		Type:                  VisCard,
		MaxMetrics:            1,
		SupportedAggregations: allAggregations,
		GroupByKinds:          []GroupByKind{GroupByNone},
	},
	VisBar: {
		Type:                  VisBar,
		RequiresGroupBy:       true,
		SupportsMultiMetric:   true,
		SupportsValueMode:     true,
		MaxMetrics:            5,
		SupportedAggregations: allAggregations,
		GroupByKinds:          []GroupByKind{GroupByCategorical, GroupByTime},
	},
	VisLine: {
		Type:                  VisLine,
		RequiresGroupBy:       true,
		SupportsMultiMetric:   true,
		SupportsValueMode:     true,
		MaxMetrics:            5,
		SupportedAggregations: allAggregations,
		GroupByKinds:          []GroupByKind{GroupByCategorical, GroupByTime},
	},
	VisPie: {
		Type:                  VisPie,
		RequiresGroupBy:       true,
		MaxMetrics:            1,
		SupportedAggregations: allAggregations,
		GroupByKinds:          []GroupByKind{GroupByCategorical},
	},
	VisHistogram: {
		Type:                  VisHistogram,
		RequiresGroupBy:       true,
		MaxMetrics:            1,
		SupportedAggregations: []AggregationFn{AggCount},
		GroupByKinds:          []GroupByKind{GroupByCategorical},
	},
	VisScatter: {
		Type:                  VisScatter,
		RequiresGroupBy:       true,
		SupportsMultiMetric:   true,
		SupportsValueMode:     true,
		MaxMetrics:            2,
		SupportedAggregations: allAggregations,
		GroupByKinds:          []GroupByKind{GroupByCategorical},
	},
	VisCalendarHeatmap: {
		Type:                  VisCalendarHeatmap,
		RequiresGroupBy:       true,
		MaxMetrics:            1,
		SupportedAggregations: []AggregationFn{AggCount, AggSum, AggAvg, AggMin, AggMax},
		GroupByKinds:          []GroupByKind{GroupByTime},
	},
	VisMap: {
		Type:                  VisMap,
		MaxMetrics:            1,
		SupportedAggregations: []AggregationFn{AggCount, AggSum, AggAvg},
		GroupByKinds:          []GroupByKind{GroupByNone},
	},
}

// DescriptorFor returns the capability descriptor of t. The type set is
// closed, so an unknown type is a programming error and panics.
func DescriptorFor(t VisualizationType) Descriptor {
	d, ok := registry[t]
	if !ok {
		panic("widget: unknown visualization type " + string(t))
	}
	return d.clone()
}

// Lookup is the non-panicking form of DescriptorFor, for input that has
// not been checked yet.
func Lookup(t VisualizationType) (Descriptor, bool) {
	d, ok := registry[t]
	if !ok {
		return Descriptor{}, false
	}
	return d.clone(), true
}

// IsKnownType reports whether t names a registered visualization type.
func IsKnownType(t VisualizationType) bool {
	_, ok := registry[t]
	return ok
}

// Descriptors lists every descriptor in catalog order.
func Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(order))
	for _, t := range order {
		out = append(out, registry[t].clone())
	}
	return out
}
