package stats

import (
	"strings"
	"time"

	"github.com/rustyeddy/rangescope/market"
)

type WeekdayRow struct {
	Day        time.Weekday
	Total      int     // all candles on this day
	AboveCount int     // candles with range above the threshold
	AboveSum   float64 // cumulative range of those candles
}

func (r WeekdayRow) Name() string {
	return r.Day.String()
}

// Short is the axis label used by the weekday charts.
func (r WeekdayRow) Short() string {
	return shortDays[r.Day]
}

var shortDays = map[time.Weekday]string{
	time.Monday:    "Mon",
	time.Tuesday:   "Tues",
	time.Wednesday: "Wed",
	time.Thursday:  "Thurs",
	time.Friday:    "Fri",
	time.Saturday:  "Sat",
	time.Sunday:    "Sun",
}

// WeekdayTable always holds seven rows, Monday first. Days without candles
// keep a zero row.
type WeekdayTable [7]WeekdayRow

// ByWeekday groups cs by weekday, counting candles and the candles whose
// range exceeds threshold.
func ByWeekday(cs *market.CandleSet, threshold float64) WeekdayTable {
	var t WeekdayTable
	for i, d := range market.Weekdays {
		t[i].Day = d
	}

	it := cs.Iterator()
	for it.Next() {
		c := it.Candle()
		row := &t[c.WeekdayIndex()]
		row.Total++
		if r := c.Range(); r > threshold {
			row.AboveCount++
			row.AboveSum += r
		}
	}
	return t
}

// Row looks a day up by name ("Tuesday"), case-insensitively.
func (t WeekdayTable) Row(name string) (WeekdayRow, bool) {
	for _, r := range t {
		if strings.EqualFold(r.Name(), name) {
			return r, true
		}
	}
	return WeekdayRow{}, false
}

func (t WeekdayTable) Totals() []float64 {
	out := make([]float64, len(t))
	for i, r := range t {
		out[i] = float64(r.Total)
	}
	return out
}

func (t WeekdayTable) AboveCounts() []float64 {
	out := make([]float64, len(t))
	for i, r := range t {
		out[i] = float64(r.AboveCount)
	}
	return out
}

func (t WeekdayTable) AboveSums() []float64 {
	out := make([]float64, len(t))
	for i, r := range t {
		out[i] = r.AboveSum
	}
	return out
}

func (t WeekdayTable) Labels() []string {
	out := make([]string, len(t))
	for i, r := range t {
		out[i] = r.Short()
	}
	return out
}
