package market

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// TimeLayout is the candle timestamp layout of the CSV exports, e.g. "2010-01-01 00:00".
const TimeLayout = "2006-01-02 15:04"

// accepted in order; the last one is the HistData ASCII layout
var timeLayouts = []string{
	TimeLayout,
	"2006-01-02 15:04:05",
	time.RFC3339,
	"20060102 150405",
}

// ParseTime parses a candle timestamp. Timestamps carry no zone and are
// taken as UTC.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

func parsePrice(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("bad number %q", s)
	}
	return checkFinite(v, s)
}

// checkFinite rejects NaN and infinities, which ParseFloat accepts but no
// price or volume can be.
func checkFinite(v float64, raw string) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("bad number %q", raw)
	}
	return v, nil
}
