// Package window builds the finite averaging windows used to smooth a uniformly sampled signal.
package window

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/goccy/go-json"
	"gonum.org/v1/gonum/floats"
)

var (
	ErrUnknownType     = errors.New("unknown window type")
	ErrWindowTooNarrow = errors.New("window rounds to zero samples")
	ErrInvalidSize     = errors.New("window size must be positive")
	ErrInvalidSigma    = errors.New("gaussian sigma must be positive")
	ErrZeroSum         = errors.New("window weights sum to zero")
)

const (
	// GaussianSpan is the gaussian window length in units of the smoothing width
	GaussianSpan = 5.0

	// SigmaToWidth converts a gaussian standard deviation into the smoothing width whose half
	// is used as the window sigma, derived from FWHM = 2.355 sigma.
	SigmaToWidth = 2.355 / 2.0
)

// Type identifies a window shape.
type Type int

const (
	Boxcar Type = iota
	Gaussian
)

var typeNames = map[Type]string{
	Boxcar:   "boxcar",
	Gaussian: "gaussian",
}

func (t Type) String() string {
	if name, exists := typeNames[t]; exists {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType maps a window name onto its Type
func ParseType(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for t, tName := range typeNames {
		if tName == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%q, %w", name, ErrUnknownType)
}

func (t Type) MarshalJSON() ([]byte, error) {
	name, exists := typeNames[t]
	if !exists {
		return nil, fmt.Errorf("%d, %w", int(t), ErrUnknownType)
	}
	return json.Marshal(name)
}

func (t *Type) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseType(name)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// NewBoxcar returns a flat window of n unit weights
func NewBoxcar(n int) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("size %d, %w", n, ErrInvalidSize)
	}
	w := make([]float64, n)
	floats.AddConst(1.0, w)
	return w, nil
}

// NewGaussian returns a symmetric gaussian window of n samples with a standard deviation of
// sigma samples, peaking at 1 in the middle.
func NewGaussian(n int, sigma float64) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("size %d, %w", n, ErrInvalidSize)
	}
	if sigma <= 0 || math.IsNaN(sigma) {
		return nil, fmt.Errorf("sigma %g, %w", sigma, ErrInvalidSigma)
	}
	w := make([]float64, n)
	center := float64(n-1) / 2.0
	denom := 2.0 * sigma * sigma
	for i := range w {
		k := float64(i) - center
		w[i] = math.Exp(-k * k / denom)
	}
	return w, nil
}

// Build returns the unnormalized window of the given type for a smoothing width and a resampling
// step, both in time units. A boxcar spans width/step samples. A gaussian spans
// GaussianSpan*width/step samples with a sigma of (width/2)/step samples.
func Build(t Type, width, step float64) ([]float64, error) {
	switch t {
	case Boxcar:
		n := int(math.Round(width / step))
		if n <= 0 {
			return nil, fmt.Errorf("boxcar of width %g at step %g, %w", width, step, ErrWindowTooNarrow)
		}
		return NewBoxcar(n)
	case Gaussian:
		n := int(math.Round(width * GaussianSpan / step))
		sigma := math.Round((width / 2.0) / step)
		if n <= 0 || sigma <= 0 {
			return nil, fmt.Errorf("gaussian of width %g at step %g, %w", width, step, ErrWindowTooNarrow)
		}
		return NewGaussian(n, sigma)
	default:
		return nil, fmt.Errorf("%s, %w", t, ErrUnknownType)
	}
}

// Normalize returns a copy of w scaled to a unit sum
func Normalize(w []float64) ([]float64, error) {
	sum := floats.Sum(w)
	if sum == 0 || math.IsNaN(sum) {
		return nil, ErrZeroSum
	}
	out := make([]float64, len(w))
	floats.ScaleTo(out, 1.0/sum, w)
	return out, nil
}

// WidthFromSigma converts a desired gaussian smoothing sigma in time units into the width
// accepted by Build.
func WidthFromSigma(sigma float64) float64 {
	return sigma / SigmaToWidth
}
