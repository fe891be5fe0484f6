package analysis

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/rangescope/chart"
	"github.com/rustyeddy/rangescope/config"
	"github.com/rustyeddy/rangescope/market"
	"github.com/rustyeddy/rangescope/stats"
)

// Analyze runs the six passes in order and hands each report to emit as
// soon as it is ready. The first error from a pass or from emit stops the
// run.
//
// Pass 1 sees every candle. Passes 2-6 see only candles that moved
// (range > 0) and compare against a baseline recomputed on that set.
// Percentages "of all candles" always refer to the unfiltered total.
func Analyze(all *market.CandleSet, p config.AnalysisConfig, log zerolog.Logger, emit func(Report) error) error {
	b0, err := stats.NewBaseline(all)
	if err != nil {
		return fmt.Errorf("baseline: %w", err)
	}
	total := all.Len()
	log.Debug().
		Int("candles", total).
		Float64("range_mean", b0.Range.Mean).
		Float64("range_sd", b0.Range.StdDev).
		Msg("baseline over all candles")

	r, err := RangeOverview(all, b0, p)
	if err != nil {
		return fmt.Errorf("pass 1: %w", err)
	}
	if err := emit(r); err != nil {
		return err
	}

	moved := all.Filter(market.RangeAbove(0))
	b1, err := stats.NewBaseline(moved)
	if err != nil {
		return fmt.Errorf("baseline after dropping zero-range candles: %w", err)
	}
	log.Info().
		Int("dropped", total-moved.Len()).
		Int("remaining", moved.Len()).
		Float64("range_mean", b1.Range.Mean).
		Float64("range_sd", b1.Range.StdDev).
		Float64("volume_mean", b1.Volume.Mean).
		Float64("volume_sd", b1.Volume.StdDev).
		Msg("dropped zero-range candles")

	passes := []func() (Report, error){
		func() (Report, error) { return VolumeVsRange(moved, b1, p) },
		func() (Report, error) { return VolumeSubset(moved, b1, total, p) },
		func() (Report, error) { return Weekdays(moved, b1) },
		func() (Report, error) { return PriceLevels(moved, b1, p) },
		func() (Report, error) { return PriceSubset(moved, b1, total, p) },
	}
	for i, pass := range passes {
		r, err := pass()
		if err != nil {
			return fmt.Errorf("pass %d: %w", i+2, err)
		}
		if err := emit(r); err != nil {
			return err
		}
	}
	return nil
}

// Runner renders and prints each report as Analyze produces it.
type Runner struct {
	Params   config.AnalysisConfig
	Renderer chart.Renderer // nil skips chart output
	Printer  *Printer
	Logger   zerolog.Logger
}

func (r *Runner) Run(all *market.CandleSet) error {
	r.Printer.Premise()
	return Analyze(all, r.Params, r.Logger, func(rep Report) error {
		var path string
		if r.Renderer != nil {
			var err error
			if path, err = r.Renderer.Render(rep.Number, rep.Figure); err != nil {
				return fmt.Errorf("render plot %d: %w", rep.Number, err)
			}
			r.Logger.Info().Int("plot", rep.Number).Str("path", path).Msg("chart written")
		}
		r.Printer.Report(rep, path)
		return nil
	})
}
