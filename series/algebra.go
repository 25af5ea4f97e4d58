package series

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Subtract returns a - b sample by sample. Times, uncertainties and metadata come from a and the
// uncertainties are not combined. Both series must be sampled at exactly the same times.
func Subtract(a, b *Series) (*Series, error) {
	if a.Len() != b.Len() {
		return nil, fmt.Errorf(
			"minuend has %d points, subtrahend has %d points, %w",
			a.Len(), b.Len(), ErrTimeBaseMismatch,
		)
	}
	for i := range a.t {
		if a.t[i] != b.t[i] {
			return nil, fmt.Errorf("times differ at %d (%g != %g), %w", i, a.t[i], b.t[i], ErrTimeBaseMismatch)
		}
	}

	diff := floats.SubTo(make([]float64, a.Len()), a.y, b.y)
	return a.WithValues(diff)
}
