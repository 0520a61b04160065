package widget

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// DatePreset names a relative date range.
type DatePreset string

const (
	RangeToday       DatePreset = "today"
	RangeYesterday   DatePreset = "yesterday"
	RangeLast7Days   DatePreset = "last7Days"
	RangeLast30Days  DatePreset = "last30Days"
	RangeThisMonth   DatePreset = "thisMonth"
	RangeLastMonth   DatePreset = "lastMonth"
	RangeThisQuarter DatePreset = "thisQuarter"
	RangeLastQuarter DatePreset = "lastQuarter"
	RangeThisYear    DatePreset = "thisYear"
	RangeLastYear    DatePreset = "lastYear"
	RangeAllTime     DatePreset = "allTime"
	RangeCustom      DatePreset = "custom"
)

// DateRange is either a named preset or an explicit custom range.
type DateRange struct {
	Preset DatePreset `firestore:"preset" json:"preset"`
	From   string     `firestore:"from,omitempty" json:"from,omitempty"`
	To     string     `firestore:"to,omitempty" json:"to,omitempty"`
}

// Check returns a message describing what is wrong with r, or "".
func (r DateRange) Check() string {
	switch r.Preset {
	case RangeToday, RangeYesterday, RangeLast7Days, RangeLast30Days,
		RangeThisMonth, RangeLastMonth, RangeThisQuarter, RangeLastQuarter,
		RangeThisYear, RangeLastYear, RangeAllTime:
		return ""
	case RangeCustom:
		if r.From == "" || r.To == "" {
			return "custom date range requires both from and to"
		}
		from, err := time.Parse(DateLayout, r.From)
		if err != nil {
			return "from must be a YYYY-MM-DD date"
		}
		to, err := time.Parse(DateLayout, r.To)
		if err != nil {
			return "to must be a YYYY-MM-DD date"
		}
		if from.After(to) {
			return "from must not be after to"
		}
		return ""
	case "":
		return "date range is required"
	}
	return fmt.Sprintf("unknown date range preset: %s", r.Preset)
}

// Resolve turns r into concrete YYYY-MM-DD bounds relative to now. allTime
// resolves to empty bounds.
func (r DateRange) Resolve(now time.Time) (from, to string, err error) {
	if msg := r.Check(); msg != "" {
		return "", "", fmt.Errorf("%s", msg)
	}
	today := now.Format(DateLayout)
	day := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
	switch r.Preset {
	case RangeToday:
		return today, today, nil
	case RangeYesterday:
		y := now.AddDate(0, 0, -1).Format(DateLayout)
		return y, y, nil
	case RangeLast7Days:
		return day(now).AddDate(0, 0, -6).Format(DateLayout), today, nil
	case RangeLast30Days:
		return day(now).AddDate(0, 0, -29).Format(DateLayout), today, nil
	case RangeThisMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format(DateLayout), today, nil
	case RangeLastMonth:
		firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		lastOfPrev := firstOfMonth.AddDate(0, 0, -1)
		firstOfPrev := time.Date(lastOfPrev.Year(), lastOfPrev.Month(), 1, 0, 0, 0, 0, now.Location())
		return firstOfPrev.Format(DateLayout), lastOfPrev.Format(DateLayout), nil
	case RangeThisQuarter:
		return firstOfQuarter(now).Format(DateLayout), today, nil
	case RangeLastQuarter:
		f, l := prevQuarter(now)
		return f.Format(DateLayout), l.Format(DateLayout), nil
	case RangeThisYear:
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location()).Format(DateLayout), today, nil
	case RangeLastYear:
		return time.Date(now.Year()-1, 1, 1, 0, 0, 0, 0, now.Location()).Format(DateLayout),
			time.Date(now.Year()-1, 12, 31, 0, 0, 0, 0, now.Location()).Format(DateLayout), nil
	case RangeAllTime:
		return "", "", nil
	}
	return r.From, r.To, nil
}

func firstOfQuarter(t time.Time) time.Time {
	m := int(t.Month())
	qStart := ((m-1)/3)*3 + 1
	return time.Date(t.Year(), time.Month(qStart), 1, 0, 0, 0, 0, t.Location())
}

func prevQuarter(t time.Time) (first, last time.Time) {
	thisFirst := firstOfQuarter(t)
	last = thisFirst.AddDate(0, 0, -1)
	first = firstOfQuarter(last)
	return
}

var dateValueLayouts = []string{DateLayout, time.RFC3339, time.RFC3339Nano, "2006-01-02T15:04:05"}

// IsDateValue reports whether s is a date or timestamp accepted in filter
// values.
func IsDateValue(s string) bool {
	for _, layout := range dateValueLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}
