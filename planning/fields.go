// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package planning

import (
	"strconv"
	"strings"
	"time"

	"github.com/JJansen36/plan/store"
)

// ResolveField returns the first candidate present as a key on sample.
// When nothing matches it returns the first candidate unchanged: lookups
// through it yield absent values and the caller degrades to empty
// groupings. Schema variance is never an error here.
func ResolveField(sample store.Record, candidates []string) string {
	for _, c := range candidates {
		if _, ok := sample[c]; ok {
			return c
		}
	}
	if len(candidates) == 0 {
		return ""
	}
	return candidates[0]
}

// ResolveFrom resolves against the first record of a collection. All rows
// of one collection share one schema, so one probe per collection is enough.
func ResolveFrom(rows []store.Record, candidates []string) string {
	if len(rows) > 0 {
		return ResolveField(rows[0], candidates)
	}
	if len(candidates) == 0 {
		return ""
	}
	return candidates[0]
}

// StringField reads a value as a string identifier. Numeric ids survive a
// JSON round trip as float64 and must render without a decimal point.
func StringField(rec store.Record, key string) string {
	switch v := rec[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return ""
	}
}

// numberField reads a value as a float64, tolerating string-typed numbers.
func numberField(rec store.Record, key string) float64 {
	switch v := rec[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// dayField reads a value as a canonical YYYY-MM-DD day string. Timestamps
// are truncated to their date part. Unparsable or missing values report
// ok=false and the row is dropped from indexing.
func dayField(rec store.Record, key string) (string, bool) {
	switch v := rec[key].(type) {
	case string:
		return canonicalDay(v)
	case time.Time:
		return v.Format(dayLayout), true
	default:
		return "", false
	}
}

const dayLayout = "2006-01-02"

func canonicalDay(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if len(s) > len(dayLayout) {
		s = s[:len(dayLayout)]
	}
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return "", false
	}
	return t.Format(dayLayout), true
}
