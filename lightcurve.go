// Package lightcurve splits a lightcurve into a slowly varying trend and the short timescale
// residual variability around it.
package lightcurve

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/aouyang1/go-lightcurve/series"
	"github.com/aouyang1/go-lightcurve/smooth"
	"github.com/aouyang1/go-lightcurve/stats"
)

var ErrNoSeries = errors.New("no series to decompose")

const (
	LabelOriginal = "original"
	LabelSmoothed = "smoothed"
	LabelResidual = "residual"
)

// Result holds the input series, its smoothed trend and the residual left after subtracting the
// trend, all sampled at the input times.
type Result struct {
	Original *series.Series `json:"-"`
	Smoothed *series.Series `json:"-"`
	Residual *series.Series `json:"-"`

	OriginalSummary  stats.Summary `json:"original_summary"`
	ResidualSummary  stats.Summary `json:"residual_summary"`
	ResidualOutliers []int         `json:"residual_outliers"`
}

// Decompose smooths the series and subtracts the trend from it. If no options are provided the
// call fails since the smoothing width has no meaningful default.
func Decompose(s *series.Series, opt *Options) (*Result, error) {
	if s == nil {
		return nil, ErrNoSeries
	}
	if opt == nil || opt.SmoothOptions == nil {
		return nil, fmt.Errorf("unable to decompose, %w", smooth.ErrNoOptions)
	}

	original := s
	if original.Label() == "" {
		original = original.WithLabel(LabelOriginal)
	}

	smoothed, err := smooth.Smooth(original, opt.SmoothOptions)
	if err != nil {
		return nil, fmt.Errorf("unable to smooth series, %w", err)
	}
	smoothed = smoothed.WithLabel(LabelSmoothed)

	residual, err := series.Subtract(original, smoothed)
	if err != nil {
		return nil, fmt.Errorf("unable to subtract smoothed series, %w", err)
	}
	residual = residual.WithLabel(LabelResidual)

	res := &Result{
		Original: original,
		Smoothed: smoothed,
		Residual: residual,
	}
	if res.OriginalSummary, err = stats.Summarize(original); err != nil {
		return nil, err
	}
	if res.ResidualSummary, err = stats.Summarize(residual); err != nil {
		return nil, err
	}

	if opt.OutlierOptions != nil {
		res.ResidualOutliers = stats.DetectOutliers(
			residual.Values(),
			opt.OutlierOptions.LowerPercentile,
			opt.OutlierOptions.UpperPercentile,
			opt.OutlierOptions.TukeyFactor,
		)
		if len(res.ResidualOutliers) > 0 {
			slog.Info("residual outliers detected", "label", original.Label(), "count", len(res.ResidualOutliers))
		}
	}
	return res, nil
}

// Series returns the original, smoothed and residual series in that order
func (r *Result) Series() []*series.Series {
	return []*series.Series{r.Original, r.Smoothed, r.Residual}
}
