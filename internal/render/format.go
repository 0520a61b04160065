package render

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const maxTickLength = 6

var printer = message.NewPrinter(language.English)

// ToNumber interprets v the way the chart layer does: numbers pass through,
// strings must look like a number, anything else is not numeric.
func ToNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case nil, bool:
		return 0, false
	case string:
		return parseNumber(t)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// IsNumeric reports whether s is a non-empty numeric string.
func IsNumeric(s string) bool {
	_, ok := parseNumber(s)
	return ok
}

// parseNumber accepts any non-empty string that reads as a number once
// trimmed. A whitespace-only string reads as 0.
func parseNumber(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	t := strings.TrimSpace(s)
	if t == "" {
		return 0, true
	}
	switch t {
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}
	lower := strings.ToLower(t)
	if strings.Contains(lower, "inf") || strings.Contains(lower, "nan") || strings.Contains(t, "_") {
		return 0, false
	}
	if len(lower) > 2 && lower[0] == '0' {
		base := 0
		switch lower[1] {
		case 'x':
			base = 16
		case 'b':
			base = 2
		case 'o':
			base = 8
		}
		if base != 0 {
			n, err := strconv.ParseUint(lower[2:], base, 64)
			if err != nil {
				return 0, false
			}
			return float64(n), true
		}
	}
	if strings.HasPrefix(lower, "-0x") || strings.HasPrefix(lower, "+0x") {
		return 0, false
	}
	f, err := strconv.ParseFloat(t, 64)
	if err != nil {
		var ne *strconv.NumError
		if errors.As(err, &ne) && errors.Is(ne.Err, strconv.ErrRange) {
			return f, true
		}
		return 0, false
	}
	return f, true
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	time.RFC1123,
	time.RFC1123Z,
}

// ParseDate parses s as a date. A parse is accepted only if the instant it
// produces can be rebuilt into a valid calendar date; year-zero dates that
// some layouts let through are rejected.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		rebuilt := time.UnixMilli(t.UnixMilli()).UTC()
		if rebuilt.IsZero() || rebuilt.Year() < 1 || rebuilt.Year() > 9999 {
			return time.Time{}, false
		}
		return rebuilt, true
	}
	return time.Time{}, false
}

// IsDateString reports whether s parses as a valid date.
func IsDateString(s string) bool {
	_, ok := ParseDate(s)
	return ok
}

var compactUnits = []struct {
	div    float64
	suffix string
}{
	{1, ""},
	{1e3, "K"},
	{1e6, "M"},
	{1e9, "B"},
	{1e12, "T"},
}

// compact scales v to one decimal place and a K/M/B/T suffix.
func compact(v float64) (float64, string) {
	if math.IsInf(v, 0) {
		return v, ""
	}
	abs := math.Abs(v)
	i := 0
	for i+1 < len(compactUnits) && abs >= compactUnits[i+1].div {
		i++
	}
	m := math.Round(v/compactUnits[i].div*10) / 10
	if math.Abs(m) >= 1000 && i+1 < len(compactUnits) {
		i++
		m = math.Round(v/compactUnits[i].div*10) / 10
	}
	if m == 0 {
		m = 0 // drop negative zero
	}
	return m, compactUnits[i].suffix
}

// CompactNumber renders v as e.g. 1.2K or 44.7M.
func CompactNumber(v float64) string {
	if math.IsInf(v, 1) {
		return "∞"
	}
	if math.IsInf(v, -1) {
		return "-∞"
	}
	m, suffix := compact(v)
	return strconv.FormatFloat(m, 'f', -1, 64) + suffix
}

// FormatXAxisTick renders an axis tick: compact numbers, day and short
// month for dates, other strings cut to six characters.
func FormatXAxisTick(v any) string {
	if v == nil {
		return ""
	}
	if f, ok := ToNumber(v); ok {
		return CompactNumber(f)
	}
	s, ok := v.(string)
	if !ok {
		return plain(v)
	}
	if t, ok := ParseDate(s); ok {
		return t.Format("2 Jan")
	}
	if r := []rune(s); len(r) > maxTickLength {
		return string(r[:maxTickLength])
	}
	return s
}

// FormatTooltipLabel renders a tooltip label. Dates are shown in UTC with
// the full month, year and time.
func FormatTooltipLabel(v any) string {
	if v == nil {
		return ""
	}
	if f, ok := ToNumber(v); ok {
		return CompactNumber(f)
	}
	s, ok := v.(string)
	if !ok {
		return plain(v)
	}
	if t, ok := ParseDate(s); ok {
		return t.Format("January 2, 2006 15:04")
	}
	return s
}

// CardValue holds both renderings of a card's number. Both come from Raw.
type CardValue struct {
	Raw     float64 `json:"raw"`
	Numeric bool    `json:"numeric"`
	Compact string  `json:"compact"`
	Full    string  `json:"full"`
}

// FormatCardValue returns the compact (1.2M) and full (1,234,567) forms of
// v, or "-" for both when v is not numeric.
func FormatCardValue(v any) CardValue {
	f, ok := ToNumber(v)
	if !ok || math.IsInf(f, 0) {
		return CardValue{Compact: "-", Full: "-"}
	}
	return CardValue{Raw: f, Numeric: true, Compact: CompactGrouped(f), Full: Grouped(f)}
}

// CompactGrouped is CompactNumber with digit grouping on the mantissa.
func CompactGrouped(v float64) string {
	m, suffix := compact(v)
	return strings.ToUpper(printer.Sprint(number.Decimal(m, number.MaxFractionDigits(1))) + suffix)
}

// Grouped renders v in full with thousands separators.
func Grouped(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
		return printer.Sprintf("%d", int64(v))
	}
	return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}

func plain(v any) string {
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return s
}
