package bond

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order by NormalizeDate. ISO first so already-normal
// dates round-trip unchanged.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
}

// NormalizeDate reformats a date string to YYYY-MM-DD using the first layout
// that parses. If nothing parses the ORIGINAL string comes back unchanged,
// not nil. Callers downstream may therefore still see a non-ISO date; this
// lossy fallback is intentional and differs from every other coercer's
// nil-fallback policy.
func NormalizeDate(s string) string {
	trimmed := strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return s
}

// FromPercent converts percent-like values to decimal fractions.
//
//	"6.95%"  -> 0.0695
//	6.95     -> 0.0695 (bare numbers > 1 are treated as percents)
//	0.05     -> 0.05   (already a fraction)
//
// nil and unparseable values pass through unchanged.
func FromPercent(v any) any {
	if v == nil {
		return nil
	}
	switch x := v.(type) {
	case string:
		if strings.HasSuffix(strings.TrimSpace(x), "%") {
			num := strings.TrimSuffix(strings.TrimSpace(x), "%")
			if f, err := strconv.ParseFloat(strings.TrimSpace(num), 64); err == nil {
				return f / 100.0
			}
		}
		return v
	case float64:
		if x > 1.0 {
			return x / 100.0
		}
		return x
	case int:
		if float64(x) > 1.0 {
			return float64(x) / 100.0
		}
		return float64(x)
	}
	return v
}

// ToInt truncates numeric-like values to an integer. Non-numeric values
// coerce to nil.
func ToInt(v any) *int {
	if v == nil {
		return nil
	}
	switch x := v.(type) {
	case float64:
		n := int(math.Trunc(x))
		return &n
	case int:
		n := x
		return &n
	case bool:
		return nil
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(x), 64); err == nil {
			n := int(math.Trunc(f))
			return &n
		}
	}
	return nil
}

// ToBool maps booleans, numbers (zero/nonzero) and the usual string spellings
// to a boolean. Anything else coerces to nil.
func ToBool(v any) *bool {
	if v == nil {
		return nil
	}
	switch x := v.(type) {
	case bool:
		b := x
		return &b
	case float64:
		b := x != 0
		return &b
	case int:
		b := x != 0
		return &b
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "true", "t", "yes", "y":
			b := true
			return &b
		case "false", "f", "no", "n":
			b := false
			return &b
		}
	}
	return nil
}

// CoerceEnum resolves v against a closed set of variants: exact match first,
// then case-insensitive, then an alias match with hyphens, spaces and
// underscores stripped. Returns nil when nothing matches; there is no
// "unknown" variant to fall back to.
func CoerceEnum(variants []string, v any) *string {
	if v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)

	for _, e := range variants {
		if s == e {
			out := e
			return &out
		}
	}
	for _, e := range variants {
		if strings.EqualFold(s, e) {
			out := e
			return &out
		}
	}
	alias := normalizeAlias(s)
	for _, e := range variants {
		if alias == normalizeAlias(e) {
			out := e
			return &out
		}
	}
	return nil
}

func normalizeAlias(s string) string {
	r := strings.NewReplacer("-", "", " ", "", "_", "")
	return strings.ToLower(r.Replace(s))
}
