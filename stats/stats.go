// Package stats holds the descriptive statistics the analysis passes use:
// summaries, percentages, histogram bins and weekday grouping.
package stats

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/rustyeddy/rangescope/market"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrEmptySet matches every EmptySetError through errors.Is.
var ErrEmptySet = errors.New("empty candle set")

// EmptySetError is returned when a reduction would divide by the size of an
// empty set.
type EmptySetError struct {
	Op string
}

func (e *EmptySetError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, ErrEmptySet)
}

func (e *EmptySetError) Is(target error) bool {
	return target == ErrEmptySet
}

// Summary is the mean and sample standard deviation of one attribute over a
// set of candles.
type Summary struct {
	Count  int
	Mean   float64
	StdDev float64
}

// Summarize computes the mean and sample (n-1) standard deviation of x. A
// single value has an undefined deviation and yields NaN.
func Summarize(x []float64) (Summary, error) {
	if len(x) == 0 {
		return Summary{}, &EmptySetError{Op: "summarize"}
	}
	mean, sd := stat.MeanStdDev(x, nil)
	return Summary{Count: len(x), Mean: mean, StdDev: sd}, nil
}

// Upper is mean + 1 standard deviation.
func (s Summary) Upper() float64 {
	return s.Mean + s.StdDev
}

// Lower is mean - 1 standard deviation, clamped at zero since ranges and
// volumes cannot go negative.
func (s Summary) Lower() float64 {
	return math.Max(0, s.Mean-s.StdDev)
}

func (s Summary) String() string {
	return fmt.Sprintf("n=%d mean=%g sd=%g", s.Count, s.Mean, s.StdDev)
}

// Baseline is the range and volume summary of one candle set. Later passes
// compare subsets against it, so it always names the set it came from.
type Baseline struct {
	Set    *market.CandleSet
	Range  Summary
	Volume Summary
}

func NewBaseline(cs *market.CandleSet) (Baseline, error) {
	r, err := Summarize(cs.Ranges())
	if err != nil {
		return Baseline{}, fmt.Errorf("range baseline: %w", err)
	}
	v, err := Summarize(cs.Volumes())
	if err != nil {
		return Baseline{}, fmt.Errorf("volume baseline: %w", err)
	}
	return Baseline{Set: cs, Range: r, Volume: v}, nil
}

// Percent is round(100*a/b), halves rounded away from zero.
func Percent(a, b int) (int, error) {
	if b == 0 {
		return 0, &EmptySetError{Op: "percent"}
	}
	return int(math.Round(100 * float64(a) / float64(b))), nil
}

// CountAbove counts values strictly greater than threshold.
func CountAbove(x []float64, threshold float64) int {
	n := 0
	for _, v := range x {
		if v > threshold {
			n++
		}
	}
	return n
}

// Bin is one histogram bucket covering [Min, Max).
type Bin struct {
	Min    float64
	Max    float64
	Weight float64
}

// Histogram sorts x into n equal-width bins spanning [min(x), max(x)]. With
// normalize the weights are densities, so the histogram area is 1.
func Histogram(x []float64, n int, normalize bool) ([]Bin, error) {
	if len(x) == 0 {
		return nil, &EmptySetError{Op: "histogram"}
	}
	if n < 1 {
		return nil, fmt.Errorf("histogram: need at least one bin, got %d", n)
	}

	sorted := make([]float64, len(x))
	copy(sorted, x)
	sort.Float64s(sorted)

	lo, hi := sorted[0], sorted[len(sorted)-1]
	// NaN sorts first
	if math.IsNaN(lo) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil, fmt.Errorf("histogram: non-finite value in [%g, %g]", lo, hi)
	}
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}

	dividers := floats.Span(make([]float64, n+1), lo, hi)
	// stat.Histogram bins are half open; nudge the top so max(x) lands in the last bin.
	dividers[n] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(nil, dividers, sorted, nil)

	width := (hi - lo) / float64(n)
	bins := make([]Bin, n)
	for i := range bins {
		w := counts[i]
		if normalize {
			w /= float64(len(x)) * width
		}
		bins[i] = Bin{Min: dividers[i], Max: dividers[i+1], Weight: w}
	}
	return bins, nil
}
