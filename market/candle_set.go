package market

import (
	"fmt"
	"io"
	"time"
)

// CandleSet is an ordered, read-only sequence of candles. Filtering returns a
// new set and never touches the receiver, so a set handed to one analysis
// pass cannot change under another.
type CandleSet struct {
	Instrument *InstrumentMeta
	Source     string

	candles []Candle
}

// NewCandleSet wraps candles in a set. The slice is copied.
func NewCandleSet(inst *InstrumentMeta, source string, candles []Candle) *CandleSet {
	cp := make([]Candle, len(candles))
	copy(cp, candles)
	return &CandleSet{
		Instrument: inst,
		Source:     source,
		candles:    cp,
	}
}

func (cs *CandleSet) Len() int {
	return len(cs.candles)
}

func (cs *CandleSet) At(idx int) Candle {
	return cs.candles[idx]
}

// Candles returns a copy of the underlying candles.
func (cs *CandleSet) Candles() []Candle {
	out := make([]Candle, len(cs.candles))
	copy(out, cs.candles)
	return out
}

// Start and End return the first and last candle time, zero for an empty set.
func (cs *CandleSet) Start() time.Time {
	if len(cs.candles) == 0 {
		return time.Time{}
	}
	return cs.candles[0].Time
}

func (cs *CandleSet) End() time.Time {
	if len(cs.candles) == 0 {
		return time.Time{}
	}
	return cs.candles[len(cs.candles)-1].Time
}

// Filter returns the candles matching pred, in order.
func (cs *CandleSet) Filter(pred Predicate) *CandleSet {
	out := &CandleSet{
		Instrument: cs.Instrument,
		Source:     cs.Source,
		candles:    make([]Candle, 0, len(cs.candles)),
	}
	for _, c := range cs.candles {
		if pred(c) {
			out.candles = append(out.candles, c)
		}
	}
	return out
}

// Field extracts one attribute of every candle.
func (cs *CandleSet) Field(f Field) []float64 {
	out := make([]float64, len(cs.candles))
	for i, c := range cs.candles {
		out[i] = f.Value(c)
	}
	return out
}

func (cs *CandleSet) Ranges() []float64 {
	return cs.Field(FieldRange)
}

func (cs *CandleSet) Volumes() []float64 {
	return cs.Field(FieldVolume)
}

// Times returns candle open times as unix seconds, the form chart axes want.
func (cs *CandleSet) Times() []float64 {
	return cs.Field(FieldTime)
}

// Count returns how many candles satisfy pred without building a new set.
func (cs *CandleSet) Count(pred Predicate) int {
	n := 0
	for _, c := range cs.candles {
		if pred(c) {
			n++
		}
	}
	return n
}

// Name is the display name of the instrument, or the source when unknown.
func (cs *CandleSet) Name() string {
	if cs.Instrument != nil {
		return cs.Instrument.DisplayName()
	}
	return cs.Source
}

func (cs *CandleSet) PrintStats(w io.Writer) {
	fmt.Fprintln(w, "---- CandleSet Stats ----")
	fmt.Fprintf(w, "     Source: %s\n", cs.Source)
	fmt.Fprintf(w, " Instrument: %s\n", cs.Name())
	fmt.Fprintf(w, "    Candles: %d\n", cs.Len())
	if cs.Len() > 0 {
		fmt.Fprintf(w, "      Range: %s → %s\n",
			cs.Start().Format(TimeLayout),
			cs.End().Format(TimeLayout))
	}
	fmt.Fprintln(w, "--------------------------")
}

type Iterator struct {
	cs  *CandleSet
	idx int
}

func (cs *CandleSet) Iterator() *Iterator {
	return &Iterator{
		cs:  cs,
		idx: -1,
	}
}

func (it *Iterator) Next() bool {
	it.idx++
	return it.idx < len(it.cs.candles)
}

func (it *Iterator) Candle() Candle {
	return it.cs.candles[it.idx]
}

func (it *Iterator) Index() int {
	return it.idx
}
