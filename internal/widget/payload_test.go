package widget

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodePayload_Bar(t *testing.T) {
	p, err := DecodePayload([]byte(`{"type":"bar","categories":["Jan","Feb"],"series":[{"name":"Revenue","data":[500,"650",null]}]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bar, ok := p.(*BarPayload)
	if !ok {
		t.Fatalf("expected *BarPayload, got %T", p)
	}
	want := []Series{{Name: "Revenue", Data: []any{500.0, "650", nil}}}
	if diff := cmp.Diff(want, bar.Series); diff != "" {
		t.Errorf("series mismatch (-want +got):\n%s", diff)
	}
	if !p.HasData() || p.Kind() != VisBar {
		t.Errorf("expected bar with data, got kind %s hasData %v", p.Kind(), p.HasData())
	}
}

func TestDecodePayload_MetaFields(t *testing.T) {
	p, err := DecodePayload([]byte(`{"type":"pie","slices":[],"empty":true,"errors":["query timed out"]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	meta := p.Meta()
	if !meta.Empty || len(meta.Errors) != 1 {
		t.Errorf("expected empty flag and one error, got %+v", meta)
	}
	if p.HasData() {
		t.Error("pie without slices should have no data")
	}
}

func TestDecodePayload_Variants(t *testing.T) {
	cases := []struct {
		body string
		kind VisualizationType
	}{
		{`{"type":"card","value":12}`, VisCard},
		{`{"type":"line","x":["2024-01-01"],"series":[]}`, VisLine},
		{`{"type":"histogram","bins":["0-10"],"series":[]}`, VisHistogram},
		{`{"type":"scatter","series":[{"name":"a","points":[]}]}`, VisScatter},
		{`{"type":"calendar-heatmap","days":[{"date":"2024-01-01"}]}`, VisCalendarHeatmap},
		{`{"type":"map","countries":[{"country":"US","value":3}]}`, VisMap},
	}
	for _, tc := range cases {
		p, err := DecodePayload([]byte(tc.body))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.body, err)
		}
		if p.Kind() != tc.kind {
			t.Errorf("%s: expected kind %s, got %s", tc.body, tc.kind, p.Kind())
		}
	}
}

func TestDecodePayload_UnknownTag(t *testing.T) {
	p, err := DecodePayload([]byte(`{"type":"gauge","value":3}`))
	if err != nil {
		t.Fatalf("unknown tag should not fail: %v", err)
	}
	u, ok := p.(*UnknownPayload)
	if !ok {
		t.Fatalf("expected *UnknownPayload, got %T", p)
	}
	if u.Kind() != "gauge" || u.HasData() {
		t.Errorf("unexpected unknown payload %+v", u)
	}
}

func TestDecodePayload_Malformed(t *testing.T) {
	if _, err := DecodePayload([]byte(`{"type":`)); err == nil {
		t.Error("expected error for malformed json")
	}
	if _, err := DecodePayload([]byte(`{"type":"bar","categories":"Jan"}`)); err == nil {
		t.Error("expected error for wrongly shaped bar payload")
	}
}

func TestScatterPayload_HasData(t *testing.T) {
	p := &ScatterPayload{Series: []ScatterSeries{{Name: "a"}, {Name: "b"}}}
	if p.HasData() {
		t.Error("series without points have no data")
	}
	p.Series[1].Points = []Point{{X: 1, Y: 2}}
	if !p.HasData() {
		t.Error("expected data once a point exists")
	}
}
