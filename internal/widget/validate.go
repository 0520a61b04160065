package widget

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
)

var check = validator.New()

// Errors maps a configuration field path to a user-facing message. A
// configuration can be saved only when it is empty.
type Errors map[string]string

// add records msg under key unless key already failed.
func (e Errors) add(key, msg string) {
	if _, ok := e[key]; !ok {
		e[key] = msg
	}
}

// Validate checks every cross-field rule on cfg. Rules are independent:
// each key keeps its first failure. Field types recorded on metrics and
// filters are trusted; callers refresh them from form metadata first.
func Validate(cfg Config) Errors {
	errs := Errors{}

	if check.Var(strings.TrimSpace(cfg.Title), "required") != nil {
		errs.add("title", "Title is required")
	} else if check.Var(cfg.Title, fmt.Sprintf("max=%d", MaxTitleLength)) != nil {
		errs.add("title", fmt.Sprintf("Title must be at most %d characters", MaxTitleLength))
	}
	if check.Var(cfg.Description, fmt.Sprintf("max=%d", MaxDescriptionLength)) != nil {
		errs.add("description", fmt.Sprintf("Description must be at most %d characters", MaxDescriptionLength))
	}

	d, known := Lookup(cfg.VisualizationType)
	if !known {
		errs.add("visualizationType", fmt.Sprintf("Unknown visualization type %q", cfg.VisualizationType))
	} else if cfg.VisualizationType == VisMap {
		validateMap(cfg.Options.Map, errs)
	} else {
		validateMetrics(cfg, d, errs)
		validateGroupBy(cfg, d, errs)
	}

	if msg := cfg.DateRange.Check(); msg != "" {
		errs.add("dateRange", msg)
	}
	validateFilters(cfg.Filters, errs)
	validateAppearance(cfg, errs)

	return errs
}

func validateMetrics(cfg Config, d Descriptor, errs Errors) {
	if len(cfg.Metrics) == 0 {
		errs.add("metrics", "At least one metric is required")
		return
	}
	if len(cfg.Metrics) > d.MaxMetrics {
		errs.add("metrics", fmt.Sprintf("At most %d metric(s) allowed for %s", d.MaxMetrics, d.Type))
	}
	for _, m := range cfg.Metrics {
		if !m.IsComplete() {
			errs.add("metrics", "Every metric needs a form and a field")
			return
		}
	}

	if cfg.MetricMode == ModeValue {
		if !d.SupportsValueMode {
			errs.add("metricMode", fmt.Sprintf("Value mode is not available for %s", d.Type))
		}
		for _, m := range cfg.Metrics[1:] {
			if m.FormID != cfg.Metrics[0].FormID {
				errs.add("metrics", "Value mode requires every metric to use the same form")
				break
			}
		}
		return
	}

	for _, m := range cfg.Metrics {
		key := "metrics." + m.ID + ".aggregation"
		if m.Aggregation == "" {
			errs.add(key, "Aggregation is required")
			continue
		}
		if !d.SupportsAggregation(m.Aggregation) {
			errs.add(key, fmt.Sprintf("%s is not available for %s", m.Aggregation, d.Type))
			continue
		}
		if m.Field.IsSystem() || m.FieldType != "" {
			if !slices.Contains(LegalAggregations(d, m.Field, m.FieldType), m.Aggregation) {
				errs.add(key, fmt.Sprintf("%s is not available for this field", m.Aggregation))
			}
		}
	}
}

func validateGroupBy(cfg Config, d Descriptor, errs Errors) {
	if cfg.MetricMode == ModeValue {
		return
	}
	g := cfg.GroupBy
	if d.RequiresGroupBy && !g.IsResolved() {
		errs.add("groupBy", "A group-by field is required")
		return
	}
	if g.Kind == "" || g.Kind == GroupByNone {
		return
	}
	if !d.SupportsGroupByKind(g.Kind) {
		errs.add("groupBy", fmt.Sprintf("%s grouping is not available for %s", g.Kind, d.Type))
		return
	}
	if !g.Field.IsSet() {
		errs.add("groupBy", "A group-by field is required")
		return
	}
	if g.Kind == GroupByTime && !g.Granularity.IsValid() {
		errs.add("groupBy", "Time grouping requires a granularity")
	}
}

// ValidateGrouping checks the group-by field against the fields the
// metrics' forms have in common. It reports nothing when no form is
// referenced; Validate covers the missing pieces.
func ValidateGrouping(cfg Config, avail AvailableFields) Errors {
	errs := Errors{}
	d, known := Lookup(cfg.VisualizationType)
	if !known || cfg.VisualizationType == VisMap || cfg.MetricMode == ModeValue {
		return errs
	}
	g := cfg.GroupBy
	if len(avail.Fields) == 0 || g.Kind == GroupByNone || !d.SupportsGroupByKind(g.Kind) || !g.Field.IsSet() {
		return errs
	}
	switch {
	case g.Kind == GroupByCategorical && !avail.AllowCategorical:
		errs.add("groupBy", "Categorical grouping needs a field shared by every selected form")
	case g.Kind == GroupByTime && !avail.AllowTime:
		errs.add("groupBy", "Time grouping is not available for the selected forms")
	default:
		if _, ok := avail.Find(g.Field); !ok {
			errs.add("groupBy", "Group-by field is not available on the selected forms")
		}
	}
	return errs
}

func validateFilters(filters []Filter, errs Errors) {
	for _, f := range filters {
		key := "filters." + f.ID
		info, ok := OperatorFor(f.Operator)
		if !ok {
			errs.add(key, fmt.Sprintf("Unknown operator %q", f.Operator))
			continue
		}
		if !f.Field.IsSet() {
			errs.add(key, "Filter needs a field")
			continue
		}
		ft := f.FieldType
		if f.Field.IsSystem() {
			if sf, ok := SystemFieldByID(f.Field.ID); ok {
				ft = sf.Type
			}
		}
		if ft != "" && !info.Accepts(ft) {
			errs.add(key, fmt.Sprintf("Operator %s cannot be used on %s fields", f.Operator, ft))
			continue
		}
		if msg := info.CheckValue(f.Value); msg != "" {
			errs.add(key, msg)
		}
	}
}

func validateAppearance(cfg Config, errs Errors) {
	if cfg.Appearance.PaletteMode == PaletteCustom {
		for id, c := range cfg.Appearance.SeriesColors {
			if check.Var(c, "hexcolor") != nil {
				errs.add("appearance.seriesColors."+id, "Color must be a hex value")
			}
		}
	}
	for _, m := range cfg.Metrics {
		if m.Appearance != nil && m.Appearance.Color != "" && check.Var(m.Appearance.Color, "hexcolor") != nil {
			errs.add("metrics."+m.ID+".appearance", "Color must be a hex value")
		}
	}
}

func validateMap(opts *MapOptions, errs Errors) {
	if opts == nil || opts.ColorBy != MapColorByOptions {
		return
	}
	if !slices.ContainsFunc(opts.Metrics, MapMetric.IsComplete) {
		errs.add("options.map.colorBy", "Coloring by options requires a complete map metric")
	}
}
