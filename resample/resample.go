// Package resample moves series between sample grids with piecewise linear interpolation. It is
// used to turn an irregularly sampled lightcurve into a uniformly sampled one and back.
package resample

import (
	"errors"
	"fmt"
	"math"

	"github.com/aouyang1/go-lightcurve/series"
	"gonum.org/v1/gonum/interp"
)

var (
	ErrInvalidStep     = errors.New("resampling step must be positive")
	ErrInvalidWidth    = errors.New("width must be positive")
	ErrTooFewKnots     = errors.New("need at least 2 knots to interpolate")
	ErrKnotLenMismatch = errors.New("knot x and y have different lengths")
	ErrNonMonotonic    = errors.New("knot x is not strictly increasing")
)

// MarginFactor scales the window width into the padding added on both sides of the uniform grid
const MarginFactor = 5.0

// Extrapolation selects how queries outside of the knot range are answered.
type Extrapolation int

const (
	// ExtrapolateFlat holds the first value below the range and the last value above it
	ExtrapolateFlat Extrapolation = iota
	// ExtrapolateLinear extends the first and last segments
	ExtrapolateLinear
)

func (e Extrapolation) String() string {
	switch e {
	case ExtrapolateFlat:
		return "flat"
	case ExtrapolateLinear:
		return "linear"
	default:
		return fmt.Sprintf("Extrapolation(%d)", int(e))
	}
}

// Linear is a piecewise linear interpolator over a fixed set of knots.
type Linear struct {
	pl     interp.PiecewiseLinear
	xs     []float64
	ys     []float64
	extrap Extrapolation
}

// NewLinear fits a piecewise linear interpolator through (xs, ys). The knots are copied.
func NewLinear(xs, ys []float64, extrap Extrapolation) (*Linear, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("x has length %d, y has length %d, %w", len(xs), len(ys), ErrKnotLenMismatch)
	}
	if len(xs) < 2 {
		return nil, ErrTooFewKnots
	}
	for i := 1; i < len(xs); i++ {
		if !(xs[i] > xs[i-1]) {
			return nil, fmt.Errorf("at knot %d, %w", i, ErrNonMonotonic)
		}
	}

	l := &Linear{
		xs:     make([]float64, len(xs)),
		ys:     make([]float64, len(ys)),
		extrap: extrap,
	}
	copy(l.xs, xs)
	copy(l.ys, ys)
	if err := l.pl.Fit(l.xs, l.ys); err != nil {
		return nil, fmt.Errorf("unable to fit piecewise linear interpolator, %w", err)
	}
	return l, nil
}

// Predict returns the interpolated value at x
func (l *Linear) Predict(x float64) float64 {
	if l.extrap == ExtrapolateLinear {
		n := len(l.xs)
		if x < l.xs[0] {
			slope := (l.ys[1] - l.ys[0]) / (l.xs[1] - l.xs[0])
			return l.ys[0] + slope*(x-l.xs[0])
		}
		if x > l.xs[n-1] {
			slope := (l.ys[n-1] - l.ys[n-2]) / (l.xs[n-1] - l.xs[n-2])
			return l.ys[n-1] + slope*(x-l.xs[n-1])
		}
	}
	// gonum holds the end values outside of the knot range
	return l.pl.Predict(x)
}

// PredictTo evaluates the interpolator at every x and stores the result in dst. If dst is nil a
// new slice is allocated.
func (l *Linear) PredictTo(dst, x []float64) []float64 {
	if dst == nil {
		dst = make([]float64, len(x))
	}
	for i, xPnt := range x {
		dst[i] = l.Predict(xPnt)
	}
	return dst
}

// Arange returns start, start+step, ... for every value strictly below stop.
func Arange(start, stop, step float64) ([]float64, error) {
	if step <= 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return nil, fmt.Errorf("step of %g, %w", step, ErrInvalidStep)
	}
	n := int(math.Ceil((stop - start) / step))
	if n < 0 {
		n = 0
	}
	x := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = start + float64(i)*step
	}
	return x, nil
}

// Grid is a uniformly sampled signal.
type Grid struct {
	X    []float64
	Y    []float64
	Step float64
}

// Len returns the number of grid samples
func (g *Grid) Len() int {
	return len(g.X)
}

// Uniform interpolates a series onto a uniform grid of spacing step that covers the series
// padded by MarginFactor*width on both sides. Grid points outside of the series hold the first
// or last value of the series.
func Uniform(s *series.Series, step, width float64) (*Grid, error) {
	if step <= 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return nil, fmt.Errorf("step of %g, %w", step, ErrInvalidStep)
	}
	if width <= 0 || math.IsNaN(width) || math.IsInf(width, 0) {
		return nil, fmt.Errorf("width of %g, %w", width, ErrInvalidWidth)
	}
	if s == nil || s.Len() < series.MinPoints {
		return nil, fmt.Errorf("unable to resample, %w", series.ErrInvalidSeries)
	}

	lin, err := NewLinear(s.Times(), s.Values(), ExtrapolateFlat)
	if err != nil {
		return nil, fmt.Errorf("unable to build interpolator, %w", err)
	}

	margin := width * MarginFactor
	x, err := Arange(s.Start()-margin, s.End()+margin, step)
	if err != nil {
		return nil, err
	}

	return &Grid{
		X:    x,
		Y:    lin.PredictTo(nil, x),
		Step: step,
	}, nil
}
