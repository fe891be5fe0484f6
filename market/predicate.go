package market

import (
	"fmt"
	"time"
)

// Predicate selects candles for CandleSet.Filter.
type Predicate func(Candle) bool

// RangeAbove keeps candles whose range is strictly greater than x.
func RangeAbove(x float64) Predicate {
	return func(c Candle) bool { return c.Range() > x }
}

// VolumeAbove keeps candles with volume strictly greater than x.
func VolumeAbove(x float64) Predicate {
	return func(c Candle) bool { return c.Volume > x }
}

// VolumeBetween keeps candles with lo < volume < hi.
func VolumeBetween(lo, hi float64) Predicate {
	return func(c Candle) bool { return c.Volume > lo && c.Volume < hi }
}

// HighAbove keeps candles whose high is strictly greater than x.
func HighAbove(x float64) Predicate {
	return func(c Candle) bool { return c.High > x }
}

func OnDay(d time.Weekday) Predicate {
	return func(c Candle) bool { return c.Time.Weekday() == d }
}

// And matches when every predicate matches.
func And(preds ...Predicate) Predicate {
	return func(c Candle) bool {
		for _, p := range preds {
			if !p(c) {
				return false
			}
		}
		return true
	}
}

// Field is a typed selector for one candle attribute.
type Field int

const (
	FieldOpen Field = iota
	FieldHigh
	FieldLow
	FieldClose
	FieldVolume
	FieldRange
	FieldTime
)

var fieldNames = map[Field]string{
	FieldOpen:   "open",
	FieldHigh:   "high",
	FieldLow:    "low",
	FieldClose:  "close",
	FieldVolume: "volume",
	FieldRange:  "range",
	FieldTime:   "time",
}

func (f Field) String() string {
	if s, ok := fieldNames[f]; ok {
		return s
	}
	return fmt.Sprintf("field(%d)", int(f))
}

// Value reads the field from c. FieldTime is unix seconds.
func (f Field) Value(c Candle) float64 {
	switch f {
	case FieldOpen:
		return c.Open
	case FieldHigh:
		return c.High
	case FieldLow:
		return c.Low
	case FieldClose:
		return c.Close
	case FieldVolume:
		return c.Volume
	case FieldRange:
		return c.Range()
	case FieldTime:
		return float64(c.Time.Unix())
	default:
		panic(fmt.Sprintf("unknown candle field %d", int(f)))
	}
}
