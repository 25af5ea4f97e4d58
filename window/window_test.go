package window

import (
	"math"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func TestBuild(t *testing.T) {
	testData := map[string]struct {
		wType       Type
		width       float64
		step        float64
		expectedLen int
		err         error
	}{
		"boxcar": {
			wType: Boxcar, width: 2, step: 0.1,
			expectedLen: 20,
		},
		"boxcar rounds": {
			wType: Boxcar, width: 0.26, step: 0.1,
			expectedLen: 3,
		},
		"boxcar too narrow": {
			wType: Boxcar, width: 0.04, step: 0.1,
			err: ErrWindowTooNarrow,
		},
		"gaussian": {
			wType: Gaussian, width: 2, step: 0.1,
			expectedLen: 100,
		},
		"gaussian sigma too narrow": {
			wType: Gaussian, width: 0.08, step: 0.1,
			err: ErrWindowTooNarrow,
		},
		"unknown": {
			wType: Type(7), width: 2, step: 0.1,
			err: ErrUnknownType,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			w, err := Build(td.wType, td.width, td.step)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, w, td.expectedLen)
			for _, v := range w {
				assert.GreaterOrEqual(t, v, 0.0)
			}
		})
	}
}

func TestGaussianShape(t *testing.T) {
	w, err := NewGaussian(5, 1)
	require.NoError(t, err)

	expected := []float64{math.Exp(-2), math.Exp(-0.5), 1, math.Exp(-0.5), math.Exp(-2)}
	assert.InDeltaSlice(t, expected, w, 1e-12)

	w, err = NewGaussian(4, 2)
	require.NoError(t, err)
	assert.InDelta(t, w[0], w[3], 1e-15)
	assert.InDelta(t, w[1], w[2], 1e-15)
	assert.InDelta(t, math.Exp(-0.25/8), w[1], 1e-12)

	_, err = NewGaussian(4, 0)
	assert.ErrorIs(t, err, ErrInvalidSigma)
	_, err = NewGaussian(0, 1)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestNormalize(t *testing.T) {
	testData := map[string]struct {
		wType Type
		width float64
		step  float64
	}{
		"boxcar":         {wType: Boxcar, width: 3, step: 0.1},
		"boxcar single":  {wType: Boxcar, width: 0.1, step: 0.1},
		"gaussian":       {wType: Gaussian, width: 17, step: 0.1},
		"gaussian small": {wType: Gaussian, width: 0.3, step: 0.1},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			w, err := Build(td.wType, td.width, td.step)
			require.NoError(t, err)

			norm, err := Normalize(w)
			require.NoError(t, err)
			assert.InDelta(t, 1.0, floats.Sum(norm), 1e-12)
			assert.Len(t, norm, len(w))
		})
	}

	_, err := Normalize([]float64{0, 0})
	assert.ErrorIs(t, err, ErrZeroSum)
}

func TestParseType(t *testing.T) {
	testData := map[string]struct {
		name     string
		expected Type
		err      error
	}{
		"boxcar":   {name: "boxcar", expected: Boxcar},
		"gaussian": {name: " Gaussian ", expected: Gaussian},
		"unknown":  {name: "hann", err: ErrUnknownType},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			wType, err := ParseType(td.name)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, td.expected, wType)
		})
	}
}

func TestTypeJSON(t *testing.T) {
	type wrapper struct {
		Window Type `json:"window"`
	}

	out, err := json.Marshal(wrapper{Window: Gaussian})
	require.NoError(t, err)
	assert.JSONEq(t, `{"window":"gaussian"}`, string(out))

	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"window":"boxcar"}`), &w))
	assert.Equal(t, Boxcar, w.Window)

	assert.Error(t, json.Unmarshal([]byte(`{"window":"triangle"}`), &w))
}

func TestWidthFromSigma(t *testing.T) {
	assert.InDelta(t, 20/1.1775, WidthFromSigma(20), 1e-9)
}
