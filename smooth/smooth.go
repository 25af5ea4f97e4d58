// Package smooth extracts the slowly varying trend of a lightcurve. The series is interpolated onto
// a padded uniform grid, convolved with a normalized boxcar or gaussian window and interpolated
// back onto its own sample times.
package smooth

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/aouyang1/go-lightcurve/conv"
	"github.com/aouyang1/go-lightcurve/resample"
	"github.com/aouyang1/go-lightcurve/series"
	"github.com/aouyang1/go-lightcurve/window"
	"gonum.org/v1/gonum/floats"
)

var (
	ErrInvalidWindow = errors.New("invalid smoothing window")
	ErrNoOptions     = errors.New("no smoothing options")
)

const DefaultResamplingStep = 0.1

// Options configures a smoothing pass. Width is the full smoothing scale in the time units of the
// series. PropagateErrors is accepted for forward compatibility but uncertainties are currently
// passed through unchanged regardless of its value.
type Options struct {
	Width           float64     `json:"width"`
	ResamplingStep  float64     `json:"resampling_step"`
	Window          window.Type `json:"window"`
	PropagateErrors bool        `json:"propagate_errors"`
}

// NewDefaultOptions returns boxcar smoothing options for the given width
func NewDefaultOptions(width float64) *Options {
	return &Options{
		Width:           width,
		ResamplingStep:  DefaultResamplingStep,
		Window:          window.Boxcar,
		PropagateErrors: true,
	}
}

// Validate checks the width and resampling step are positive and finite
func (o *Options) Validate() error {
	if o == nil {
		return ErrNoOptions
	}
	if !(o.Width > 0) || math.IsInf(o.Width, 0) {
		return fmt.Errorf("width of %g, %w", o.Width, ErrInvalidWindow)
	}
	if !(o.ResamplingStep > 0) || math.IsInf(o.ResamplingStep, 0) {
		return fmt.Errorf("resampling step of %g, %w", o.ResamplingStep, ErrInvalidWindow)
	}
	return nil
}

// Smooth returns a new series with the same times, uncertainties and metadata as s whose values
// are the smoothed trend of s. If opt is nil an error is returned as no default width exists.
func Smooth(s *series.Series, opt *Options) (*series.Series, error) {
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	if s == nil || s.Len() < series.MinPoints {
		return nil, fmt.Errorf("unable to smooth, %w", series.ErrInvalidSeries)
	}

	grid, err := resample.Uniform(s, opt.ResamplingStep, opt.Width)
	if err != nil {
		return nil, fmt.Errorf("unable to resample onto uniform grid, %w", err)
	}

	w, err := window.Build(opt.Window, opt.Width, opt.ResamplingStep)
	if err != nil {
		return nil, fmt.Errorf("%w, %w", ErrInvalidWindow, err)
	}
	w, err = window.Normalize(w)
	if err != nil {
		return nil, fmt.Errorf("%w, %w", ErrInvalidWindow, err)
	}

	slog.Debug(
		"smoothing series",
		"label", s.Label(),
		"points", s.Len(),
		"window", opt.Window.String(),
		"width", opt.Width,
		"grid_points", grid.Len(),
		"window_points", len(w),
	)

	smoothed, err := conv.Same(grid.Y, w)
	if err != nil {
		return nil, fmt.Errorf("unable to convolve window, %w", err)
	}
	floats.Scale(1.0/floats.Sum(w), smoothed)

	// the grid already pads the series by several widths so linear extrapolation only matters
	// for pathological step sizes
	lin, err := resample.NewLinear(grid.X, smoothed, resample.ExtrapolateLinear)
	if err != nil {
		return nil, fmt.Errorf("unable to interpolate smoothed grid, %w", err)
	}

	return s.WithValues(lin.PredictTo(nil, s.Times()))
}
