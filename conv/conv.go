// Package conv provides the linear convolution used to apply a smoothing window to a uniformly
// sampled signal.
//
// Two strategies compute the same result:
//
//   - Direct: O(N*M) time domain convolution, best for short kernels
//   - FFT: zero padded fast fourier transform convolution, best when N*M is large
//
// Same selects between them based on the amount of work and trims the output to the length of the
// signal, centered on the kernel.
package conv

import (
	"errors"

	"github.com/aouyang1/go-lightcurve/floatsunrolled"
	"gonum.org/v1/gonum/dsp/fourier"
)

var (
	ErrEmptyInput  = errors.New("conv: empty input")
	ErrEmptyKernel = errors.New("conv: empty kernel")
)

// FFTWorkThreshold is the signal times kernel length above which Same switches to FFT convolution
const FFTWorkThreshold = 1 << 22

// Mode specifies the output length of a convolution.
type Mode int

const (
	// ModeFull returns the full convolution of length len(a)+len(b)-1
	ModeFull Mode = iota

	// ModeSame returns len(a) samples centered on the full convolution. Samples near the edges see
	// the signal as zero padded.
	ModeSame
)

// Convolve convolves a with b using the strategy picked by the amount of work
func Convolve(a, b []float64, mode Mode) ([]float64, error) {
	if len(a)*len(b) > FFTWorkThreshold {
		return FFT(a, b, mode)
	}
	return Direct(a, b, mode)
}

// Same is Convolve in ModeSame
func Same(a, b []float64) ([]float64, error) {
	return Convolve(a, b, ModeSame)
}

// Direct performs time domain linear convolution of a and b.
func Direct(a, b []float64, mode Mode) ([]float64, error) {
	if err := validate(a, b); err != nil {
		return nil, err
	}
	n, m := len(a), len(b)

	// full[k] = sum_r padded[k+r]*reversed[r] with the signal padded by m-1 zeros on each side
	reversed := make([]float64, m)
	for j, v := range b {
		reversed[m-1-j] = v
	}
	padded := make([]float64, n+2*(m-1))
	copy(padded[m-1:], a)

	start, length := window(n, m, mode)
	out := make([]float64, length)
	for i := range out {
		k := start + i
		out[i] = floatsunrolled.Dot(padded[k:k+m], reversed)
	}
	return out, nil
}

// FFT performs linear convolution of a and b by multiplying their spectra.
func FFT(a, b []float64, mode Mode) ([]float64, error) {
	if err := validate(a, b); err != nil {
		return nil, err
	}
	n, m := len(a), len(b)
	fullLen := n + m - 1
	size := nextPow2(fullLen)

	aPad := make([]float64, size)
	bPad := make([]float64, size)
	copy(aPad, a)
	copy(bPad, b)

	fft := fourier.NewFFT(size)
	aCoef := fft.Coefficients(nil, aPad)
	bCoef := fft.Coefficients(nil, bPad)
	for i := range aCoef {
		aCoef[i] *= bCoef[i]
	}
	// the inverse transform is unnormalized
	seq := fft.Sequence(nil, aCoef)
	scale := 1.0 / float64(size)

	start, length := window(n, m, mode)
	out := make([]float64, length)
	for i := range out {
		out[i] = seq[start+i] * scale
	}
	return out, nil
}

func validate(a, b []float64) error {
	if len(a) == 0 {
		return ErrEmptyInput
	}
	if len(b) == 0 {
		return ErrEmptyKernel
	}
	return nil
}

// window returns the offset and length of the requested output within the full convolution
func window(n, m int, mode Mode) (int, int) {
	if mode == ModeSame {
		return (m - 1) / 2, n
	}
	return 0, n + m - 1
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
