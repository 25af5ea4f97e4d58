// Package stats summarizes the sampling and value range of a lightcurve and flags outlying samples.
package stats

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/aouyang1/go-lightcurve/series"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var ErrNoSeries = errors.New("no series to summarize")

// Summary describes the values and the time sampling of a series
type Summary struct {
	Label          string  `json:"label,omitempty"`
	Count          int     `json:"count"`
	MeanValue      float64 `json:"mean_value"`
	MinValue       float64 `json:"min_value"`
	MaxValue       float64 `json:"max_value"`
	Duration       float64 `json:"duration"`
	MeanSampling   float64 `json:"mean_sampling"`
	MedianSampling float64 `json:"median_sampling"`
	MinSampling    float64 `json:"min_sampling"`
	MaxSampling    float64 `json:"max_sampling"`
}

// Summarize computes the Summary of a series
func Summarize(s *series.Series) (Summary, error) {
	if s == nil {
		return Summary{}, ErrNoSeries
	}
	t := s.Times()
	y := s.Values()

	dt := make([]float64, len(t)-1)
	floats.SubTo(dt, t[1:], t[:len(t)-1])

	return Summary{
		Label:          s.Label(),
		Count:          s.Len(),
		MeanValue:      stat.Mean(y, nil),
		MinValue:       floats.Min(y),
		MaxValue:       floats.Max(y),
		Duration:       s.Duration(),
		MeanSampling:   stat.Mean(dt, nil),
		MedianSampling: Median(dt),
		MinSampling:    floats.Min(dt),
		MaxSampling:    floats.Max(dt),
	}, nil
}

// String renders the summary as a human readable report
func (s Summary) String() string {
	var sb strings.Builder
	if s.Label != "" {
		fmt.Fprintf(&sb, "series: %s\n", s.Label)
	}
	fmt.Fprintf(&sb, "number of observations: %d\n", s.Count)
	fmt.Fprintf(&sb, "mean value: %g\n", s.MeanValue)
	fmt.Fprintf(&sb, "min, max value: %g %g\n", s.MinValue, s.MaxValue)
	fmt.Fprintf(&sb, "duration: %g\n", s.Duration)
	fmt.Fprintf(&sb, "average time sampling: %g\n", s.MeanSampling)
	fmt.Fprintf(&sb, "median time sampling: %g\n", s.MedianSampling)
	fmt.Fprintf(&sb, "min, max time sampling: %g %g\n", s.MinSampling, s.MaxSampling)
	return sb.String()
}

// Median returns the middle value of x, averaging the two middle values for even lengths. NaN is
// returned for an empty slice.
func Median(x []float64) float64 {
	n := len(x)
	if n == 0 {
		return math.NaN()
	}
	sorted := make([]float64, n)
	copy(sorted, x)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2.0
}

// DetectOutliers returns the indices of y that fall outside of a Tukey fence. The fence is built
// from the lowerPerc and upperPerc percentiles widened by tukeyFactor times their distance.
func DetectOutliers(y []float64, lowerPerc, upperPerc, tukeyFactor float64) []int {
	if len(y) == 0 {
		return nil
	}
	lowerPerc = math.Max(lowerPerc, 0.0)
	upperPerc = math.Min(upperPerc, 1.0)
	tukeyFactor = math.Max(tukeyFactor, 0.0)

	yCopy := make([]float64, len(y))
	copy(yCopy, y)
	sort.Float64s(yCopy)
	lowerIdx := int(math.Floor(float64(len(yCopy)-1) * lowerPerc))
	upperIdx := int(math.Ceil(float64(len(yCopy)-1) * upperPerc))

	lower := yCopy[lowerIdx]
	upper := yCopy[upperIdx]
	innerRange := upper - lower
	lower -= innerRange * tukeyFactor
	upper += innerRange * tukeyFactor

	var outlierIdx []int
	for i := 0; i < len(y); i++ {
		if y[i] > upper || y[i] < lower {
			outlierIdx = append(outlierIdx, i)
		}
	}
	return outlierIdx
}
