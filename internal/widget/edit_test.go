package widget

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// barWithMetric returns a bar config with one complete metric on a numeric field.
func barWithMetric() Config {
	return ApplyAll(NewConfig(VisBar),
		AddMetric{ID: "m1"},
		SetMetricForm{MetricID: "m1", FormID: "A"},
		SetMetricField{MetricID: "m1", Field: FormField("amount"), FieldType: FieldCurrency},
		SetGroupBy{GroupBy: GroupBy{Kind: GroupByCategorical, Field: FormField("country")}},
	)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	cfg := barWithMetric()
	before := cfg.Clone()
	_ = Apply(cfg, SetMetricLabel{MetricID: "m1", Label: "Revenue"})
	_ = Apply(cfg, SetAppearance{Appearance: Appearance{SeriesColors: map[string]string{"m1": "#fff"}}})
	if diff := cmp.Diff(before, cfg); diff != "" {
		t.Errorf("input mutated (-before +after):\n%s", diff)
	}
}

func TestAddMetric_NeverExceedsMax(t *testing.T) {
	for _, d := range Descriptors() {
		cfg := NewConfig(d.Type)
		for i := 0; i < d.MaxMetrics+3; i++ {
			cfg = Apply(cfg, AddMetric{ID: fmt.Sprintf("m%d", i)})
			if len(cfg.Metrics) > d.MaxMetrics {
				t.Fatalf("%s: %d metrics exceeds max %d", d.Type, len(cfg.Metrics), d.MaxMetrics)
			}
		}
		if len(cfg.Metrics) != d.MaxMetrics {
			t.Errorf("%s: expected %d metrics, got %d", d.Type, d.MaxMetrics, len(cfg.Metrics))
		}
		cfg = ApplyAll(cfg, RemoveMetric{ID: "m0"}, AddMetric{ID: "x"}, AddMetric{ID: "y"})
		if len(cfg.Metrics) > d.MaxMetrics {
			t.Fatalf("%s: %d metrics after remove/add exceeds max", d.Type, len(cfg.Metrics))
		}
	}
}

func TestAddMetric_DuplicateIDIgnored(t *testing.T) {
	cfg := ApplyAll(NewConfig(VisBar), AddMetric{ID: "m1"}, AddMetric{ID: "m1"}, AddMetric{})
	if len(cfg.Metrics) != 1 {
		t.Errorf("expected 1 metric, got %d", len(cfg.Metrics))
	}
}

func TestSetVisualizationType_ClearsMetrics(t *testing.T) {
	cfg := Apply(barWithMetric(), SetVisualizationType{Type: VisPie})
	if len(cfg.Metrics) != 0 {
		t.Errorf("expected metrics cleared, got %d", len(cfg.Metrics))
	}
	if cfg.GroupBy.Kind != GroupByCategorical {
		t.Errorf("categorical grouping is legal for pie and should survive, got %s", cfg.GroupBy.Kind)
	}
}

func TestSetVisualizationType_ResetsValueMode(t *testing.T) {
	cfg := Apply(barWithMetric(), SetMetricMode{Mode: ModeValue})
	if cfg.MetricMode != ModeValue {
		t.Fatalf("expected value mode on bar, got %s", cfg.MetricMode)
	}
	cfg = Apply(cfg, SetVisualizationType{Type: VisPie})
	if cfg.MetricMode != ModeAggregation {
		t.Errorf("expected aggregation mode after switching to pie, got %s", cfg.MetricMode)
	}
}

func TestSetVisualizationType_ResetsIllegalGroupBy(t *testing.T) {
	cfg := Apply(barWithMetric(), SetVisualizationType{Type: VisCalendarHeatmap})
	if cfg.GroupBy.Kind != GroupByNone {
		t.Errorf("expected group-by reset for heatmap, got %s", cfg.GroupBy.Kind)
	}
}

func TestSetVisualizationType_InitialisesMapOptions(t *testing.T) {
	cfg := Apply(barWithMetric(), SetVisualizationType{Type: VisMap})
	if cfg.Options.Map == nil || cfg.Options.Map.ColorBy != MapColorByValue {
		t.Errorf("expected map options initialised, got %+v", cfg.Options.Map)
	}
}

func TestSetMetricMode_ValueModeIgnoredWhenUnsupported(t *testing.T) {
	cfg := Apply(NewConfig(VisPie), SetMetricMode{Mode: ModeValue})
	if cfg.MetricMode != ModeAggregation {
		t.Errorf("expected aggregation mode for pie, got %s", cfg.MetricMode)
	}
}

func TestValueMode_RoundTripKeepsForcedGroupBy(t *testing.T) {
	cfg := barWithMetric()
	cfg = Apply(cfg, SetMetricMode{Mode: ModeValue})
	if diff := cmp.Diff(ValueModeGroupBy(), cfg.GroupBy); diff != "" {
		t.Fatalf("value mode group-by mismatch (-want +got):\n%s", diff)
	}

	// edits to the group-by are overwritten while value mode holds
	cfg = Apply(cfg, SetGroupBy{GroupBy: GroupBy{Kind: GroupByTime, Field: SystemField(SystemSubmissionDate)}})
	if diff := cmp.Diff(ValueModeGroupBy(), cfg.GroupBy); diff != "" {
		t.Fatalf("group-by changed in value mode (-want +got):\n%s", diff)
	}

	cfg = Apply(cfg, SetMetricMode{Mode: ModeAggregation})
	if diff := cmp.Diff(ValueModeGroupBy(), cfg.GroupBy); diff != "" {
		t.Errorf("previous group-by should not be restored (-want +got):\n%s", diff)
	}

	cfg = Apply(cfg, SetGroupBy{GroupBy: GroupBy{Kind: GroupByTime, Field: SystemField(SystemSubmissionDate)}})
	if cfg.GroupBy.Kind != GroupByTime || cfg.GroupBy.Granularity != GranularityDay {
		t.Errorf("expected time grouping by day once back in aggregation mode, got %+v", cfg.GroupBy)
	}
}

func TestValueMode_SharesFirstMetricForm(t *testing.T) {
	cfg := ApplyAll(barWithMetric(),
		AddMetric{ID: "m2"},
		SetMetricForm{MetricID: "m2", FormID: "B"},
		SetMetricMode{Mode: ModeValue},
	)
	for _, m := range cfg.Metrics {
		if m.FormID != "A" {
			t.Errorf("metric %s: expected form A, got %s", m.ID, m.FormID)
		}
	}

	cfg = Apply(cfg, AddMetric{ID: "m3"})
	if got := cfg.Metrics[2].FormID; got != "A" {
		t.Errorf("new metric in value mode should inherit form A, got %q", got)
	}
}

func TestSetMetricForm_ClearsFieldAndAggregation(t *testing.T) {
	cfg := Apply(barWithMetric(), SetMetricForm{MetricID: "m1", FormID: "B"})
	m := cfg.Metrics[0]
	if m.Field.IsSet() || m.FieldType != "" || m.Aggregation != "" {
		t.Errorf("expected field and aggregation cleared, got %+v", m)
	}
}

func TestSetMetricForm_SameFormKeepsField(t *testing.T) {
	cfg := Apply(barWithMetric(), SetMetricForm{MetricID: "m1", FormID: "A"})
	if !cfg.Metrics[0].Field.IsSet() {
		t.Error("re-selecting the same form should keep the field")
	}
}

func TestSetMetricField_DefaultsAggregation(t *testing.T) {
	cfg := barWithMetric()
	if got := cfg.Metrics[0].Aggregation; got != AggSum {
		t.Fatalf("expected sum for numeric field, got %s", got)
	}

	cfg = Apply(cfg, SetMetricAggregation{MetricID: "m1", Aggregation: AggAvg})
	cfg = Apply(cfg, SetMetricField{MetricID: "m1", Field: FormField("score"), FieldType: FieldInteger})
	if got := cfg.Metrics[0].Aggregation; got != AggAvg {
		t.Errorf("avg is still legal on a numeric field and should be kept, got %s", got)
	}

	cfg = Apply(cfg, SetMetricField{MetricID: "m1", Field: FormField("notes"), FieldType: FieldText})
	if got := cfg.Metrics[0].Aggregation; got != AggCount {
		t.Errorf("expected count for text field, got %s", got)
	}

	cfg = Apply(cfg, SetMetricField{MetricID: "m1", Field: SystemField(SystemSubmissionDate), FieldType: FieldText})
	m := cfg.Metrics[0]
	if m.FieldType != FieldDatetime {
		t.Errorf("system field should take its declared type, got %s", m.FieldType)
	}
	if m.Aggregation != AggCount {
		t.Errorf("count is legal on submission date and should be kept, got %s", m.Aggregation)
	}
}

func TestSetMetricField_SystemFieldDropsSum(t *testing.T) {
	cfg := Apply(barWithMetric(), SetMetricField{MetricID: "m1", Field: SystemField(SystemSubmissionDate)})
	if got := cfg.Metrics[0].Aggregation; got != AggCount {
		t.Errorf("sum is illegal on submission date, expected count, got %s", got)
	}
}

func TestSetGroupBy_Normalises(t *testing.T) {
	cfg := Apply(NewConfig(VisBar), SetGroupBy{GroupBy: GroupBy{Kind: GroupByCategorical, Field: FormField("country"), Granularity: GranularityMonth}})
	if cfg.GroupBy.Granularity != "" {
		t.Errorf("categorical grouping should drop granularity, got %s", cfg.GroupBy.Granularity)
	}
	cfg = Apply(cfg, SetGroupBy{GroupBy: GroupBy{Kind: GroupByNone, Field: FormField("country")}})
	if diff := cmp.Diff(GroupBy{Kind: GroupByNone}, cfg.GroupBy); diff != "" {
		t.Errorf("none grouping mismatch (-want +got):\n%s", diff)
	}
}

func TestFilters_AddressedByID(t *testing.T) {
	cfg := ApplyAll(NewConfig(VisBar),
		AddFilter{Filter: Filter{ID: "f1", Operator: OpEq, Value: "x"}},
		AddFilter{Filter: Filter{ID: "f2", Operator: OpIsNull}},
		AddFilter{Filter: Filter{ID: "f3", Operator: OpIsTrue}},
		AddFilter{Filter: Filter{ID: "f1", Operator: OpNeq}},
	)
	if len(cfg.Filters) != 3 {
		t.Fatalf("expected 3 filters, got %d", len(cfg.Filters))
	}

	cfg = Apply(cfg, RemoveFilter{ID: "f2"})
	cfg = Apply(cfg, UpdateFilter{Filter: Filter{ID: "f3", Operator: OpIsFalse}})
	want := []string{"f1", "f3"}
	got := []string{cfg.Filters[0].ID, cfg.Filters[1].ID}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("filter ids mismatch (-want +got):\n%s", diff)
	}
	if cfg.Filters[1].Operator != OpIsFalse {
		t.Errorf("expected f3 updated, got %s", cfg.Filters[1].Operator)
	}
	if cfg.Filters[0].Operator != OpEq {
		t.Errorf("duplicate add should not replace f1, got %s", cfg.Filters[0].Operator)
	}
}

func TestApply_NilEdit(t *testing.T) {
	cfg := barWithMetric()
	if diff := cmp.Diff(cfg, Apply(cfg, nil)); diff != "" {
		t.Errorf("nil edit changed config (-want +got):\n%s", diff)
	}
}
