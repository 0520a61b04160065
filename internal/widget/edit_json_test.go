package widget

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeEdit(t *testing.T) {
	cases := []struct {
		body string
		want Edit
	}{
		{`{"op":"setTitle","title":"Sales"}`, SetTitle{Title: "Sales"}},
		{`{"op":"setVisualizationType","visualizationType":"line"}`, SetVisualizationType{Type: VisLine}},
		{`{"op":"addMetric","id":"m1"}`, AddMetric{ID: "m1"}},
		{`{"op":"setMetricField","metricId":"m1","field":{"source":"system","id":"$submissionDate$"}}`,
			SetMetricField{MetricID: "m1", Field: SystemField(SystemSubmissionDate)}},
		{`{"op":"setGroupBy","groupBy":{"kind":"time","field":{"source":"system","id":"$submissionDate$"},"granularity":"week"}}`,
			SetGroupBy{GroupBy: GroupBy{Kind: GroupByTime, Field: SystemField(SystemSubmissionDate), Granularity: GranularityWeek}}},
		{`{"op":"removeFilter","id":"f1"}`, RemoveFilter{ID: "f1"}},
		{`{"op":"setMetricAppearance","metricId":"m1","seriesAppearance":{"color":"#000000"}}`,
			SetMetricAppearance{MetricID: "m1", Appearance: &SeriesAppearance{Color: "#000000"}}},
	}
	for _, tc := range cases {
		got, err := DecodeEdit([]byte(tc.body))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.body, err)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("%s: mismatch (-want +got):\n%s", tc.body, diff)
		}
	}
}

func TestDecodeEdit_Errors(t *testing.T) {
	for _, body := range []string{`{}`, `{"op":"explode"}`, `not json`} {
		if _, err := DecodeEdit([]byte(body)); err == nil {
			t.Errorf("%s: expected error", body)
		}
	}
}
