package widget

import (
	"maps"
	"slices"
)

// Edit is a single user change to a configuration.
type Edit interface {
	apply(c Config) Config
}

// Apply returns the configuration produced by e, with every derived field
// recomputed. cfg itself is left untouched.
func Apply(cfg Config, e Edit) Config {
	if e == nil {
		return cfg.Clone()
	}
	next := e.apply(cfg.Clone())
	return derive(cfg, next)
}

// ApplyAll folds edits over cfg in order.
func ApplyAll(cfg Config, edits ...Edit) Config {
	for _, e := range edits {
		cfg = Apply(cfg, e)
	}
	return cfg
}

// derive recomputes dependent fields after an edit, in a fixed order:
// type change, value mode, metric form change, metric field change.
func derive(prev, next Config) Config {
	d, known := Lookup(next.VisualizationType)

	if next.VisualizationType != prev.VisualizationType {
		next.Metrics = []Metric{}
		if !known || !d.SupportsValueMode {
			next.MetricMode = ModeAggregation
		}
		if known && next.GroupBy.Kind != GroupByNone && !d.SupportsGroupByKind(next.GroupBy.Kind) {
			next.GroupBy = GroupBy{Kind: GroupByNone}
		}
		if next.VisualizationType == VisMap && next.Options.Map == nil {
			next.Options.Map = &MapOptions{Metrics: []MapMetric{}, ColorBy: MapColorByValue}
		}
	}

	if next.MetricMode == ModeValue {
		if len(next.Metrics) > 0 {
			formID := next.Metrics[0].FormID
			for i := range next.Metrics {
				next.Metrics[i].FormID = formID
			}
		}
		next.GroupBy = ValueModeGroupBy()
	}

	for i, m := range next.Metrics {
		j := prev.MetricIndex(m.ID)
		if j < 0 {
			continue
		}
		old := prev.Metrics[j]
		if m.FormID != old.FormID {
			m.Field = FieldRef{}
			m.FieldType = ""
			m.Aggregation = ""
		} else if m.Field != old.Field && m.Field.IsSet() && known {
			if !slices.Contains(LegalAggregations(d, m.Field, m.FieldType), m.Aggregation) {
				m.Aggregation = DefaultAggregation(d, m.Field, m.FieldType)
			}
		}
		next.Metrics[i] = m
	}

	return next
}

func updateMetric(c Config, id string, fn func(*Metric)) Config {
	if i := c.MetricIndex(id); i >= 0 {
		fn(&c.Metrics[i])
	}
	return c
}

type SetTitle struct{ Title string }

func (e SetTitle) apply(c Config) Config {
	c.Title = e.Title
	return c
}

type SetDescription struct{ Description string }

func (e SetDescription) apply(c Config) Config {
	c.Description = e.Description
	return c
}

type SetVisualizationType struct{ Type VisualizationType }

func (e SetVisualizationType) apply(c Config) Config {
	c.VisualizationType = e.Type
	return c
}

// SetMetricMode switches between aggregation and value mode. Value mode is
// ignored for types that do not support it.
type SetMetricMode struct{ Mode MetricMode }

func (e SetMetricMode) apply(c Config) Config {
	switch e.Mode {
	case ModeAggregation:
		c.MetricMode = ModeAggregation
	case ModeValue:
		if d, ok := Lookup(c.VisualizationType); ok && d.SupportsValueMode {
			c.MetricMode = ModeValue
		}
	}
	return c
}

// AddMetric appends an empty metric slot. It does nothing once the type's
// metric limit is reached or when the id is already taken.
type AddMetric struct{ ID string }

func (e AddMetric) apply(c Config) Config {
	if e.ID == "" || c.MetricIndex(e.ID) >= 0 {
		return c
	}
	d, ok := Lookup(c.VisualizationType)
	if !ok || len(c.Metrics) >= d.MaxMetrics {
		return c
	}
	c.Metrics = append(c.Metrics, Metric{ID: e.ID})
	return c
}

type RemoveMetric struct{ ID string }

func (e RemoveMetric) apply(c Config) Config {
	c.Metrics = slices.DeleteFunc(c.Metrics, func(m Metric) bool { return m.ID == e.ID })
	return c
}

type SetMetricForm struct {
	MetricID string
	FormID   string
}

func (e SetMetricForm) apply(c Config) Config {
	return updateMetric(c, e.MetricID, func(m *Metric) { m.FormID = e.FormID })
}

// SetMetricField selects a form or system field. FieldType is the declared
// type of a form field and is ignored for system fields.
type SetMetricField struct {
	MetricID  string
	Field     FieldRef
	FieldType FieldType
}

func (e SetMetricField) apply(c Config) Config {
	return updateMetric(c, e.MetricID, func(m *Metric) {
		m.Field = e.Field
		m.FieldType = e.FieldType
		if e.Field.IsSystem() {
			if sf, ok := SystemFieldByID(e.Field.ID); ok {
				m.FieldType = sf.Type
			}
		}
	})
}

type SetMetricAggregation struct {
	MetricID    string
	Aggregation AggregationFn
}

func (e SetMetricAggregation) apply(c Config) Config {
	return updateMetric(c, e.MetricID, func(m *Metric) { m.Aggregation = e.Aggregation })
}

type SetMetricLabel struct {
	MetricID string
	Label    string
}

func (e SetMetricLabel) apply(c Config) Config {
	return updateMetric(c, e.MetricID, func(m *Metric) { m.Label = e.Label })
}

type SetMetricAppearance struct {
	MetricID   string
	Appearance *SeriesAppearance
}

func (e SetMetricAppearance) apply(c Config) Config {
	return updateMetric(c, e.MetricID, func(m *Metric) {
		if e.Appearance == nil {
			m.Appearance = nil
			return
		}
		a := *e.Appearance
		m.Appearance = &a
	})
}

// SetGroupBy replaces the group-by. Granularity only survives on time
// groupings, which default to daily buckets.
type SetGroupBy struct{ GroupBy GroupBy }

func (e SetGroupBy) apply(c Config) Config {
	g := e.GroupBy
	switch g.Kind {
	case GroupByTime:
		if g.Granularity == "" {
			g.Granularity = GranularityDay
		}
	case GroupByNone, "":
		g = GroupBy{Kind: GroupByNone}
	default:
		g.Granularity = ""
	}
	c.GroupBy = g
	return c
}

type SetDateRange struct{ DateRange DateRange }

func (e SetDateRange) apply(c Config) Config {
	c.DateRange = e.DateRange
	return c
}

type AddFilter struct{ Filter Filter }

func (e AddFilter) apply(c Config) Config {
	if e.Filter.ID == "" || c.FilterIndex(e.Filter.ID) >= 0 {
		return c
	}
	c.Filters = append(c.Filters, e.Filter)
	return c
}

// UpdateFilter replaces the filter with the same id.
type UpdateFilter struct{ Filter Filter }

func (e UpdateFilter) apply(c Config) Config {
	if i := c.FilterIndex(e.Filter.ID); i >= 0 {
		c.Filters[i] = e.Filter
	}
	return c
}

type RemoveFilter struct{ ID string }

func (e RemoveFilter) apply(c Config) Config {
	c.Filters = slices.DeleteFunc(c.Filters, func(f Filter) bool { return f.ID == e.ID })
	return c
}

type SetAppearance struct{ Appearance Appearance }

func (e SetAppearance) apply(c Config) Config {
	c.Appearance = e.Appearance
	c.Appearance.SeriesColors = maps.Clone(e.Appearance.SeriesColors)
	return c
}

type SetMapOptions struct{ Options MapOptions }

func (e SetMapOptions) apply(c Config) Config {
	o := e.Options
	o.Metrics = slices.Clone(o.Metrics)
	if o.Metrics == nil {
		o.Metrics = []MapMetric{}
	}
	o.OptionColors = maps.Clone(o.OptionColors)
	c.Options.Map = &o
	return c
}
