package series

import (
	"math"
	"math/rand/v2"
)

// GenerateT returns n evenly spaced times starting at start
func GenerateT(n int, start, step float64) []float64 {
	t := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		t = append(t, start+step*float64(i))
	}
	return t
}

// GenerateIrregularT returns n strictly increasing times whose gaps are drawn uniformly from
// [minStep, maxStep). minStep must be positive.
func GenerateIrregularT(n int, start, minStep, maxStep float64, rng *rand.Rand) []float64 {
	t := make([]float64, 0, n)
	ct := start
	for i := 0; i < n; i++ {
		t = append(t, ct)
		ct += minStep + rng.Float64()*(maxStep-minStep)
	}
	return t
}

func GenerateConstY(n int, val float64) []float64 {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, val)
	}
	return y
}

// GenerateWaveY samples amp*sin(2*pi*t/period + phase)
func GenerateWaveY(t []float64, amp, period, phase float64) []float64 {
	y := make([]float64, 0, len(t))
	for _, tPnt := range t {
		y = append(y, amp*math.Sin(2.0*math.Pi*tPnt/period+phase))
	}
	return y
}

// GenerateNoise returns n normally distributed samples with the given standard deviation
func GenerateNoise(n int, scale float64, rng *rand.Rand) []float64 {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, rng.NormFloat64()*scale)
	}
	return y
}
