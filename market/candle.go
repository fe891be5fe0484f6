package market

import "time"

// Candle represents OHLCV (Open, High, Low, Close, Volume) candlestick data
type Candle struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Range is the price fluctuation inside the candle window (High - Low).
// Well formed data has High >= Low; nothing here enforces it.
func (c Candle) Range() float64 {
	return c.High - c.Low
}

// Day returns the English weekday name, e.g. "Monday".
func (c Candle) Day() string {
	return c.Time.Weekday().String()
}

// WeekdayIndex maps the candle weekday onto Monday=0 .. Sunday=6.
func (c Candle) WeekdayIndex() int {
	return MondayFirst(c.Time.Weekday())
}

// MondayFirst converts Go's Sunday-first weekday numbering to Monday-first.
func MondayFirst(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// Weekdays lists the weekdays Monday first.
var Weekdays = [7]time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}
