package analysis

import (
	"fmt"

	"github.com/rustyeddy/rangescope/chart"
	"github.com/rustyeddy/rangescope/config"
	"github.com/rustyeddy/rangescope/market"
	"github.com/rustyeddy/rangescope/stats"
)

const (
	rangeLabel      = "Range of Candle (High-Low)"
	countLabel      = "# Candles"
	normalizedLabel = "# Candles (Normalized)"
)

// meanMarkers are the average and +/- 1 SD lines drawn on range histograms.
func meanMarkers(s stats.Summary) []chart.Marker {
	return []chart.Marker{
		chart.VLine("Average", s.Mean, "blue", chart.Solid),
		chart.VLine("Average - 1SD", s.Lower(), "green", chart.Dashed),
		chart.VLine("Average + 1SD", s.Upper(), "green", chart.Dashed),
	}
}

// RangeOverview is pass 1: the range distribution of every candle and the
// range over time.
func RangeOverview(all *market.CandleSet, b0 stats.Baseline, p config.AnalysisConfig) (Report, error) {
	ranges := all.Ranges()
	bins, err := stats.Histogram(ranges, p.Bins, false)
	if err != nil {
		return Report{}, fmt.Errorf("range histogram: %w", err)
	}

	above := stats.CountAbove(ranges, b0.Range.Upper())
	pct, err := stats.Percent(above, all.Len())
	if err != nil {
		return Report{}, err
	}

	name := all.Name()
	hist := chart.Chart{
		Title:   name + " Candle Range (High - Low) Distribution",
		XLabel:  rangeLabel,
		YLabel:  countLabel,
		XRange:  chart.Limits(-0.0001, 0.0045),
		Series:  []chart.Series{{Kind: chart.Hist, Bins: bins}},
		Markers: meanMarkers(b0.Range),
	}
	byDate := chart.Chart{
		Title:  name + " Candle Range (High - Low) By Date",
		XLabel: "Date and Time",
		YLabel: "Candle Range (High-Low)",
		YRange: chart.Limits(-0.0001, 0.008),
		XTime:  true,
		Series: []chart.Series{{
			Kind:   chart.Scatter,
			X:      all.Times(),
			Y:      ranges,
			Radius: 0.5,
		}},
		Markers: []chart.Marker{
			chart.HLine("Average", b0.Range.Mean, "blue", chart.Solid),
			chart.HLine("Average + 1 SD", b0.Range.Upper(), "green", chart.Dashed),
		},
	}

	return Report{
		Number: 1,
		Title:  "Price Ranges (with Standard Deviation and Mean)",
		Figure: chart.Figure{Name: "price-ranges", Charts: []chart.Chart{hist, byDate}},
		Details: []string{
			"Of all candles:",
			fmt.Sprintf("    %d of %d of all candles are greater than 1 SD above average (~%d%%)",
				above, all.Len(), pct),
		},
		Narrative: rangeOverviewText,
	}, nil
}

// VolumeVsRange is pass 2: range against volume with the volume landmarks.
func VolumeVsRange(cs *market.CandleSet, b stats.Baseline, p config.AnalysisConfig) (Report, error) {
	if cs.Len() == 0 {
		return Report{}, &stats.EmptySetError{Op: "volume vs range"}
	}

	r := b.Range
	c := chart.Chart{
		Title:  cs.Name() + " Volume Vs. Candle Range",
		XLabel: "Volume",
		YLabel: "Price Change",
		XRange: chart.Limits(0, 1.5e10),
		YRange: chart.Limits(0, 0.008),
		Series: []chart.Series{{
			Kind:   chart.Scatter,
			Label:  "All Candles",
			Color:  "C0",
			Alpha:  0.4,
			Radius: 0.2,
			X:      cs.Volumes(),
			Y:      cs.Ranges(),
		}},
		Markers: []chart.Marker{
			chart.HLine("Average", r.Mean, "blue", chart.Solid),
			chart.HLine("Average + 1SD", r.Upper(), "green", chart.Dashed),
			chart.HLine("Average - 1SD", r.Mean-r.StdDev, "green", chart.Dashed),
			peak("1st Peak", p.FirstPeakVolume, "pink"),
			peak("2nd Peak", p.SecondPeakVolume, "red"),
			peak("Drop Off", p.VolumeDropOff, "orange"),
		},
	}

	return Report{
		Number:    2,
		Title:     "Volume vs. Candle Range",
		Figure:    chart.Figure{Name: "volume-vs-range", Charts: []chart.Chart{c}},
		Narrative: volumeVsRangeText(p.VolumeDropOff),
	}, nil
}

func peak(label string, x float64, color string) chart.Marker {
	m := chart.VLine(label, x, color, chart.Dotted)
	m.Width = 1.5
	return m
}

// VolumeSubset is pass 3: candles between the second volume peak and the
// drop off, compared with the whole working set. total is the size of the
// unfiltered data the percentages refer to.
func VolumeSubset(cs *market.CandleSet, b stats.Baseline, total int, p config.AnalysisConfig) (Report, error) {
	sub := cs.Filter(market.VolumeBetween(p.SecondPeakVolume, p.VolumeDropOff))
	cmp, err := CompareSubset(sub.Ranges(), b.Range, total)
	if err != nil {
		return Report{}, fmt.Errorf("volume subset: %w", err)
	}

	c, err := subsetHistogram(cs, sub, b, p.Bins, subsetLabels{
		title:    cs.Name() + " Candle Range Distribution (All vs. Large Volume)",
		series:   "Candles With Higher Volume",
		meanLine: "Mean (For Larger Volume)",
	}, cmp.Mean)
	if err != nil {
		return Report{}, err
	}
	c.XRange = chart.Limits(-0.0001, 0.0084)
	c.YRange = chart.Limits(0, 1000)

	return Report{
		Number: 3,
		Title:  "Candle Range Distribution (All vs. Larger Volume)",
		Figure: chart.Figure{Name: "range-by-volume", Charts: []chart.Chart{c}},
		Details: append(
			[]string{fmt.Sprintf("For candles with volume greater than %s:", volume(p.SecondPeakVolume))},
			subsetDetails(cmp)...,
		),
		Narrative: volumeSubsetText(cmp),
	}, nil
}

// Weekdays is pass 4: candle counts and cumulative above-average range per
// weekday.
func Weekdays(cs *market.CandleSet, b stats.Baseline) (Report, error) {
	if cs.Len() == 0 {
		return Report{}, &stats.EmptySetError{Op: "weekdays"}
	}

	t := stats.ByWeekday(cs, b.Range.Mean)
	labels := t.Labels()
	name := cs.Name()
	bar := func(title, ylabel, color string, values []float64) chart.Chart {
		return chart.Chart{
			Title:  title,
			XLabel: "Day of Week",
			YLabel: ylabel,
			Series: []chart.Series{{Kind: chart.Bars, Color: color, Values: values, Labels: labels}},
		}
	}

	details := make([]string, 0, len(t)+1)
	details = append(details, "Day        Total  Above avg  Above avg range")
	for _, r := range t {
		details = append(details, fmt.Sprintf("%-9s %6d %10d %16.5f", r.Name(), r.Total, r.AboveCount, r.AboveSum))
	}

	return Report{
		Number: 4,
		Title:  "Price Fluctuation by Day of Week",
		Figure: chart.Figure{Name: "weekdays", Charts: []chart.Chart{
			bar(name+" Total Candle Count By Day of Week", countLabel, "blue", t.Totals()),
			bar(name+" Above Average Candle Count By Day of Week", countLabel, "blue", t.AboveCounts()),
			bar(name+" Cumulative Candle Size (Above Average) By Day of Week", "Candle Size Total", "green", t.AboveSums()),
		}},
		Details:   details,
		Narrative: weekdaysText,
	}, nil
}

// PriceLevels is pass 5: range against each of open, high, low and close.
func PriceLevels(cs *market.CandleSet, b stats.Baseline, p config.AnalysisConfig) (Report, error) {
	if cs.Len() == 0 {
		return Report{}, &stats.EmptySetError{Op: "price levels"}
	}

	ranges := cs.Ranges()
	var series []chart.Series
	for _, f := range []market.Field{market.FieldOpen, market.FieldHigh, market.FieldLow, market.FieldClose} {
		series = append(series, chart.Series{
			Kind:   chart.Scatter,
			Color:  "C0",
			Alpha:  0.1,
			Radius: 0.2,
			X:      cs.Field(f),
			Y:      ranges,
		})
	}

	c := chart.Chart{
		Title:  "Price Level vs. Price Range",
		XLabel: "Price Level",
		YLabel: "Price Range",
		YRange: chart.Limits(-0.0001, 0.006),
		Series: series,
		Markers: []chart.Marker{
			chart.HLine("Average", b.Range.Mean, "blue", chart.Solid),
			chart.HLine("Average + 1SD", b.Range.Upper(), "green", chart.Dashed),
			chart.VLine("Price Threshold", p.PriceThreshold, "red", chart.Dashed),
		},
	}

	return Report{
		Number:    5,
		Title:     "Price Level vs. Price Range",
		Figure:    chart.Figure{Name: "price-levels", Charts: []chart.Chart{c}},
		Narrative: priceLevelsText(p.PriceThreshold),
	}, nil
}

// PriceSubset is pass 6: candles whose high clears the price threshold,
// compared with the whole working set.
func PriceSubset(cs *market.CandleSet, b stats.Baseline, total int, p config.AnalysisConfig) (Report, error) {
	sub := cs.Filter(market.HighAbove(p.PriceThreshold))
	cmp, err := CompareSubset(sub.Ranges(), b.Range, total)
	if err != nil {
		return Report{}, fmt.Errorf("price subset: %w", err)
	}

	c, err := subsetHistogram(cs, sub, b, p.Bins, subsetLabels{
		title:    cs.Name() + " Candle Range Distribution (All vs. High Price)",
		series:   "Candles With Higher Price",
		meanLine: "Average for Higher Price",
	}, cmp.Mean)
	if err != nil {
		return Report{}, err
	}
	c.XRange = chart.Limits(-0.0001, 0.005)

	return Report{
		Number: 6,
		Title:  "Candle Range Distribution (All vs. Higher Price Levels)",
		Figure: chart.Figure{Name: "range-by-price", Charts: []chart.Chart{c}},
		Details: append(
			[]string{fmt.Sprintf("For candles with price high greater than price %g:", p.PriceThreshold)},
			subsetDetails(cmp)...,
		),
		Narrative: priceSubsetText(p.PriceThreshold, cmp),
	}, nil
}

type subsetLabels struct {
	title, series, meanLine string
}

// subsetHistogram overlays the normalized range distribution of sub on that
// of cs.
func subsetHistogram(cs, sub *market.CandleSet, b stats.Baseline, n int, l subsetLabels, subMean float64) (chart.Chart, error) {
	allBins, err := stats.Histogram(cs.Ranges(), n, true)
	if err != nil {
		return chart.Chart{}, fmt.Errorf("range histogram: %w", err)
	}
	subBins, err := stats.Histogram(sub.Ranges(), n, true)
	if err != nil {
		return chart.Chart{}, fmt.Errorf("subset histogram: %w", err)
	}

	return chart.Chart{
		Title:  l.title,
		XLabel: rangeLabel,
		YLabel: normalizedLabel,
		Series: []chart.Series{
			{Kind: chart.Hist, Label: "All Candles", Color: "C0", Alpha: 0.6, Bins: allBins},
			{Kind: chart.Hist, Label: l.series, Color: "orange", Alpha: 0.6, Bins: subBins},
		},
		Markers: append(meanMarkers(b.Range),
			chart.VLine(l.meanLine, subMean, "red", chart.Solid)),
	}, nil
}

func subsetDetails(c SubsetComparison) []string {
	return []string{
		fmt.Sprintf("    %d of all %d candles are in this set. (~%d%%)", c.Count, c.Total, c.PercentOfTotal),
		fmt.Sprintf("    %d%% of set is larger than original average", c.PercentAboveMean),
		fmt.Sprintf("    %d%% of set is larger than original average + 1 SD", c.PercentAboveUpper),
	}
}
