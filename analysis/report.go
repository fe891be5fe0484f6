// Package analysis runs the six exploratory passes over a candle set. Each
// pass returns a Report: a figure to render and the text that explains it.
package analysis

import (
	"github.com/rustyeddy/rangescope/chart"
	"github.com/rustyeddy/rangescope/stats"
)

// Report is the outcome of one pass.
type Report struct {
	Number    int
	Title     string
	Figure    chart.Figure
	Details   []string // printed only with detailed output
	Narrative string
}

// SubsetComparison measures a filtered subset against the baseline it was
// cut from.
type SubsetComparison struct {
	Count             int
	Total             int
	Mean              float64 // mean range of the subset
	PercentOfTotal    int
	PercentAboveMean  int // share of the subset above the baseline mean
	PercentAboveUpper int // share of the subset above baseline mean + 1 SD
}

// CompareSubset summarizes sub against base. total is the size of the set
// percentages of the whole are taken from. An empty subset is an error.
func CompareSubset(sub []float64, base stats.Summary, total int) (SubsetComparison, error) {
	s, err := stats.Summarize(sub)
	if err != nil {
		return SubsetComparison{}, err
	}

	cmp := SubsetComparison{Count: s.Count, Total: total, Mean: s.Mean}
	if cmp.PercentOfTotal, err = stats.Percent(s.Count, total); err != nil {
		return SubsetComparison{}, err
	}
	if cmp.PercentAboveMean, err = stats.Percent(stats.CountAbove(sub, base.Mean), s.Count); err != nil {
		return SubsetComparison{}, err
	}
	if cmp.PercentAboveUpper, err = stats.Percent(stats.CountAbove(sub, base.Upper()), s.Count); err != nil {
		return SubsetComparison{}, err
	}
	return cmp, nil
}
