package stats

import (
	"math"
	"testing"

	"github.com/aouyang1/go-lightcurve/series"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	meta := series.NewDefaultMeta()
	meta.Label = "original"
	s, err := series.New(
		[]float64{0, 1, 3, 4, 8},
		[]float64{2, -1, 4, 5, 0},
		nil,
		meta,
	)
	require.NoError(t, err)

	sum, err := Summarize(s)
	require.NoError(t, err)

	expected := Summary{
		Label:          "original",
		Count:          5,
		MeanValue:      2,
		MinValue:       -1,
		MaxValue:       5,
		Duration:       8,
		MeanSampling:   2,
		MedianSampling: 1.5,
		MinSampling:    1,
		MaxSampling:    4,
	}
	assert.Equal(t, expected, sum)

	report := sum.String()
	assert.Contains(t, report, "number of observations: 5")
	assert.Contains(t, report, "min, max value: -1 5")
	assert.Contains(t, report, "median time sampling: 1.5")

	out, err := json.Marshal(sum)
	require.NoError(t, err)
	var next Summary
	require.NoError(t, json.Unmarshal(out, &next))
	assert.Equal(t, sum, next)

	_, err = Summarize(nil)
	assert.ErrorIs(t, err, ErrNoSeries)
}

func TestMedian(t *testing.T) {
	testData := map[string]struct {
		x        []float64
		expected float64
	}{
		"odd":    {x: []float64{3, 1, 2}, expected: 2},
		"even":   {x: []float64{4, 1, 3, 2}, expected: 2.5},
		"single": {x: []float64{7}, expected: 7},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			in := make([]float64, len(td.x))
			copy(in, td.x)
			assert.Equal(t, td.expected, Median(in))
			assert.Equal(t, td.x, in, "input must not be sorted in place")
		})
	}

	assert.True(t, math.IsNaN(Median(nil)))
}

func TestDetectOutliers(t *testing.T) {
	testData := map[string]struct {
		y        []float64
		expected []int
	}{
		"empty": {},
		"no outliers": {
			y: []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		},
		"spike": {
			y:        []float64{0, 0.1, -0.1, 0.05, 50, 0, -0.05, 0.1, 0, -0.1, 0.02},
			expected: []int{4},
		},
		"dip and spike": {
			y:        []float64{0, -40, 0.1, -0.1, 0.05, 0, -0.05, 0.1, 0, -0.1, 30, 0.02},
			expected: []int{1, 10},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			res := DetectOutliers(td.y, 0.1, 0.9, 1.0)
			assert.Equal(t, td.expected, res)
		})
	}
}
