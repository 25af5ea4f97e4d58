// Package series holds the lightcurve data model: strictly increasing sample times with a value
// and an uncertainty per sample, plus descriptive metadata that is carried but never interpreted.
package series

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidSeries    = errors.New("invalid series")
	ErrTimeBaseMismatch = errors.New("series do not share a time base")
)

// MinPoints is the smallest number of samples a series can hold.
const MinPoints = 2

const (
	DefaultTimeUnit  = "days"
	DefaultTimeFrame = "observed"
	DefaultValueUnit = "cgs"
)

// Meta are the descriptive tags of a series. None of them take part in any computation. Redshift
// is reserved for rest frame transforms and is currently inert.
type Meta struct {
	TimeUnit  string  `json:"time_unit"`
	TimeFrame string  `json:"time_frame"`
	ValueUnit string  `json:"value_unit"`
	Redshift  float64 `json:"redshift"`
	Label     string  `json:"label"`
}

// NewDefaultMeta returns the metadata used when nothing else is known about a series
func NewDefaultMeta() Meta {
	return Meta{
		TimeUnit:  DefaultTimeUnit,
		TimeFrame: DefaultTimeFrame,
		ValueUnit: DefaultValueUnit,
	}
}

// Series is an immutable lightcurve. Every constructor copies its input buffers and every accessor
// returns a copy so two series never share backing arrays.
type Series struct {
	t    []float64
	y    []float64
	e    []float64
	meta Meta
}

// New validates and copies the time, value and uncertainty slices into a new Series. A nil
// uncertainty slice is treated as unknown uncertainties and filled with zeros.
func New(t, y, e []float64, meta Meta) (*Series, error) {
	if e == nil {
		e = make([]float64, len(t))
	}
	if err := Validate(t, y, e); err != nil {
		return nil, err
	}
	return &Series{
		t:    clone(t),
		y:    clone(y),
		e:    clone(e),
		meta: meta,
	}, nil
}

// Validate checks that the slices describe a valid series: at least MinPoints samples, equal
// lengths, strictly increasing finite times and non-negative uncertainties.
func Validate(t, y, e []float64) error {
	if len(t) != len(y) {
		return fmt.Errorf(
			"time has length of %d, but values has a length of %d, %w",
			len(t), len(y), ErrInvalidSeries,
		)
	}
	if len(t) != len(e) {
		return fmt.Errorf(
			"time has length of %d, but uncertainties has a length of %d, %w",
			len(t), len(e), ErrInvalidSeries,
		)
	}
	if len(t) < MinPoints {
		return fmt.Errorf("need at least %d points, got %d, %w", MinPoints, len(t), ErrInvalidSeries)
	}
	for i := 0; i < len(t); i++ {
		if math.IsNaN(t[i]) || math.IsInf(t[i], 0) {
			return fmt.Errorf("non-finite time at %d, %w", i, ErrInvalidSeries)
		}
		if i > 0 && t[i] <= t[i-1] {
			return fmt.Errorf("time not strictly increasing at %d, %w", i, ErrInvalidSeries)
		}
		if e[i] < 0 || math.IsNaN(e[i]) {
			return fmt.Errorf("negative uncertainty at %d, %w", i, ErrInvalidSeries)
		}
	}
	return nil
}

// Len returns the number of samples
func (s *Series) Len() int {
	return len(s.t)
}

// Times returns a copy of the sample times
func (s *Series) Times() []float64 {
	return clone(s.t)
}

// Values returns a copy of the sample values
func (s *Series) Values() []float64 {
	return clone(s.y)
}

// Uncertainties returns a copy of the per sample uncertainties
func (s *Series) Uncertainties() []float64 {
	return clone(s.e)
}

func (s *Series) Meta() Meta {
	return s.meta
}

func (s *Series) Label() string {
	return s.meta.Label
}

// Start returns the first sample time
func (s *Series) Start() float64 {
	return s.t[0]
}

// End returns the last sample time
func (s *Series) End() float64 {
	return s.t[len(s.t)-1]
}

// Duration is the time between the first and last sample
func (s *Series) Duration() float64 {
	return s.End() - s.Start()
}

// WithValues derives a new series sharing this series' times, uncertainties and metadata but with
// the values replaced.
func (s *Series) WithValues(y []float64) (*Series, error) {
	if len(y) != len(s.t) {
		return nil, fmt.Errorf(
			"time has length of %d, but values has a length of %d, %w",
			len(s.t), len(y), ErrInvalidSeries,
		)
	}
	next := s.Copy()
	next.y = clone(y)
	return next, nil
}

// WithLabel derives a new series with only the label changed
func (s *Series) WithLabel(label string) *Series {
	next := s.Copy()
	next.meta.Label = label
	return next
}

// Copy returns a deep copy of the series
func (s *Series) Copy() *Series {
	return &Series{
		t:    clone(s.t),
		y:    clone(s.y),
		e:    clone(s.e),
		meta: s.meta,
	}
}

// SameTimeBase reports whether both series are sampled at exactly the same times
func (s *Series) SameTimeBase(other *Series) bool {
	if len(s.t) != len(other.t) {
		return false
	}
	for i := range s.t {
		if s.t[i] != other.t[i] {
			return false
		}
	}
	return true
}

func clone(x []float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	return out
}
