package widget

import (
	"testing"
	"time"
)

func TestDateRange_Resolve(t *testing.T) {
	now := time.Date(2024, time.May, 15, 13, 30, 0, 0, time.UTC)
	cases := []struct {
		preset   DatePreset
		from, to string
	}{
		{RangeToday, "2024-05-15", "2024-05-15"},
		{RangeYesterday, "2024-05-14", "2024-05-14"},
		{RangeLast7Days, "2024-05-09", "2024-05-15"},
		{RangeLast30Days, "2024-04-16", "2024-05-15"},
		{RangeThisMonth, "2024-05-01", "2024-05-15"},
		{RangeLastMonth, "2024-04-01", "2024-04-30"},
		{RangeThisQuarter, "2024-04-01", "2024-05-15"},
		{RangeLastQuarter, "2024-01-01", "2024-03-31"},
		{RangeThisYear, "2024-01-01", "2024-05-15"},
		{RangeLastYear, "2023-01-01", "2023-12-31"},
		{RangeAllTime, "", ""},
	}
	for _, tc := range cases {
		from, to, err := DateRange{Preset: tc.preset}.Resolve(now)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.preset, err)
		}
		if from != tc.from || to != tc.to {
			t.Errorf("%s: expected %s..%s, got %s..%s", tc.preset, tc.from, tc.to, from, to)
		}
	}
}

func TestDateRange_ResolveCustom(t *testing.T) {
	from, to, err := DateRange{Preset: RangeCustom, From: "2024-01-01", To: "2024-01-31"}.Resolve(time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if from != "2024-01-01" || to != "2024-01-31" {
		t.Errorf("expected custom bounds passed through, got %s..%s", from, to)
	}
	if _, _, err := (DateRange{Preset: RangeCustom, From: "2024-01-31"}).Resolve(time.Now()); err == nil {
		t.Error("expected error for custom range without to")
	}
}
