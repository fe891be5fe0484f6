package analysis

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/rangescope/chart"
	"github.com/rustyeddy/rangescope/config"
	"github.com/rustyeddy/rangescope/market"
	"github.com/rustyeddy/rangescope/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadSample(t *testing.T) *market.CandleSet {
	t.Helper()

	inst, _ := market.LookupInstrument("EUR_USD")
	cs, err := market.LoadFile("../testdata/eurusd_sample.csv", inst)
	require.NoError(t, err)
	return cs
}

func collect(t *testing.T, cs *market.CandleSet, p config.AnalysisConfig) ([]Report, error) {
	t.Helper()

	var reports []Report
	err := Analyze(cs, p, zerolog.Nop(), func(r Report) error {
		reports = append(reports, r)
		return nil
	})
	return reports, err
}

func TestAnalyzeProducesSixPasses(t *testing.T) {
	reports, err := collect(t, loadSample(t), config.Default().Analysis)
	require.NoError(t, err)
	require.Len(t, reports, 6)

	names := []string{"price-ranges", "volume-vs-range", "range-by-volume", "weekdays", "price-levels", "range-by-price"}
	charts := []int{2, 1, 1, 3, 1, 1}
	for i, r := range reports {
		assert.Equal(t, i+1, r.Number)
		assert.Equal(t, names[i], r.Figure.Name)
		assert.Len(t, r.Figure.Charts, charts[i], r.Figure.Name)
		assert.NotEmpty(t, r.Narrative)
	}
	assert.Contains(t, reports[0].Figure.Charts[0].Title, "EUR/USD")
}

func TestAnalyzeSubsetPercentages(t *testing.T) {
	reports, err := collect(t, loadSample(t), config.Default().Analysis)
	require.NoError(t, err)

	assert.Equal(t, "    12 of 48 of all candles are greater than 1 SD above average (~25%)", reports[0].Details[1])

	assert.Equal(t, []string{
		"For candles with volume greater than 3400000000:",
		"    20 of all 48 candles are in this set. (~42%)",
		"    30% of set is larger than original average",
		"    15% of set is larger than original average + 1 SD",
	}, reports[2].Details)
	assert.Contains(t, reports[2].Narrative, "We see that 30% of candles are larger than the average")

	assert.Equal(t, []string{
		"For candles with price high greater than price 1.394:",
		"    21 of all 48 candles are in this set. (~44%)",
		"    29% of set is larger than original average",
		"    14% of set is larger than original average + 1 SD",
	}, reports[5].Details)
	assert.Contains(t, reports[5].Narrative, "we only have 44% of all candles")
}

func TestAnalyzeWeekdayChartKeepsSevenDays(t *testing.T) {
	reports, err := collect(t, loadSample(t), config.Default().Analysis)
	require.NoError(t, err)

	for _, c := range reports[3].Figure.Charts {
		require.Len(t, c.Series, 1)
		assert.Len(t, c.Series[0].Values, 7)
		assert.Equal(t, "Sun", c.Series[0].Labels[6])
		assert.Equal(t, 0.0, c.Series[0].Values[6])
	}
}

func TestBaselineRecomputedAfterFilter(t *testing.T) {
	cs := loadSample(t)
	b0, err := stats.NewBaseline(cs)
	require.NoError(t, err)
	b1, err := stats.NewBaseline(cs.Filter(market.RangeAbove(0)))
	require.NoError(t, err)

	assert.Greater(t, b1.Range.Mean, b0.Range.Mean)
	assert.NotEqual(t, b0.Range.StdDev, b1.Range.StdDev)

	// pass 2 markers use the filtered baseline
	reports, err := collect(t, cs, config.Default().Analysis)
	require.NoError(t, err)
	avg := reports[1].Figure.Charts[0].Markers[0]
	assert.Equal(t, "Average", avg.Label)
	assert.Equal(t, b1.Range.Mean, avg.Value)
	assert.Equal(t, chart.Horizontal, avg.Axis)
}

func TestAnalyzeEmptySubsetFails(t *testing.T) {
	p := config.Default().Analysis
	p.PriceThreshold = 5.0

	reports, err := collect(t, loadSample(t), p)
	require.Error(t, err)
	assert.ErrorIs(t, err, stats.ErrEmptySet)
	assert.Contains(t, err.Error(), "pass 6")
	assert.Len(t, reports, 5)
}

func TestAnalyzeEmptyInput(t *testing.T) {
	_, err := collect(t, market.NewCandleSet(nil, "empty", nil), config.Default().Analysis)
	assert.ErrorIs(t, err, stats.ErrEmptySet)
}

func TestAnalyzeNonFiniteRangeFails(t *testing.T) {
	start := time.Date(2016, 3, 7, 0, 0, 0, 0, time.UTC)
	for _, bad := range []float64{math.Inf(1), math.NaN()} {
		candles := []market.Candle{
			{Time: start, Open: 1.1, High: 1.1010, Low: 1.1000, Close: 1.1005, Volume: 100},
			{Time: start.Add(15 * time.Minute), Open: 1.1, High: bad, Low: 1.1000, Close: 1.1005, Volume: 200},
			{Time: start.Add(30 * time.Minute), Open: 1.1, High: 1.1030, Low: 1.1000, Close: 1.1005, Volume: 300},
		}
		var err error
		require.NotPanics(t, func() {
			_, err = collect(t, market.NewCandleSet(nil, "inline", candles), config.Default().Analysis)
		})
		assert.ErrorContains(t, err, "non-finite", "high %v", bad)
	}
}

func TestAnalyzeStopsOnEmitError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := Analyze(loadSample(t), config.Default().Analysis, zerolog.Nop(), func(Report) error {
		calls++
		if calls == 2 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}

func TestCompareSubset(t *testing.T) {
	base := stats.Summary{Count: 4, Mean: 2, StdDev: 1}
	cmp, err := CompareSubset([]float64{1, 2.5, 3.5, 4}, base, 16)
	require.NoError(t, err)

	assert.Equal(t, SubsetComparison{
		Count:             4,
		Total:             16,
		Mean:              2.75,
		PercentOfTotal:    25,
		PercentAboveMean:  75,
		PercentAboveUpper: 50,
	}, cmp)

	_, err = CompareSubset(nil, base, 16)
	assert.ErrorIs(t, err, stats.ErrEmptySet)
}

type fakeRenderer struct {
	figures []string
}

func (f *fakeRenderer) Render(seq int, fig chart.Figure) (string, error) {
	f.figures = append(f.figures, fig.Name)
	return fmt.Sprintf("fake/%d", seq), nil
}

func TestRunnerPrintsAndRenders(t *testing.T) {
	var out bytes.Buffer
	fr := &fakeRenderer{}
	r := &Runner{
		Params:   config.Default().Analysis,
		Renderer: fr,
		Printer:  NewPrinter(&out, true, false),
		Logger:   zerolog.Nop(),
	}
	require.NoError(t, r.Run(loadSample(t)))

	assert.Len(t, fr.figures, 6)
	text := out.String()
	assert.Contains(t, text, "-------\nPREMISE\n-------\n")
	assert.Contains(t, text, "PLOT 3: Candle Range Distribution (All vs. Larger Volume)")
	assert.Contains(t, text, "(chart: fake/3)")
	assert.Contains(t, text, "20 of all 48 candles are in this set. (~42%)")
	assert.Contains(t, text, "after volume 6000000000")
	assert.NotContains(t, text, "\x1b[", "colors disabled")
}

func TestPrinterHidesDetails(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, false, false)
	p.Report(Report{Number: 9, Title: "Test", Details: []string{"secret"}, Narrative: "story"}, "")

	text := out.String()
	assert.Contains(t, text, "------------\nPLOT 9: Test\n------------\n")
	assert.Contains(t, text, "...so\nstory\n")
	assert.NotContains(t, text, "secret")
	assert.NotContains(t, text, "chart:")
}
