package lightcurve

import "github.com/aouyang1/go-lightcurve/smooth"

// OutlierOptions configures the Tukey fence used to flag residual samples. The fence starts at
// the lower and upper percentiles of the residual and is widened by TukeyFactor times their
// distance on both sides.
type OutlierOptions struct {
	LowerPercentile float64 `json:"lower_percentile"`
	UpperPercentile float64 `json:"upper_percentile"`
	TukeyFactor     float64 `json:"tukey_factor"`
}

func NewOutlierOptions() *OutlierOptions {
	return &OutlierOptions{
		LowerPercentile: 0.25,
		UpperPercentile: 0.75,
		TukeyFactor:     1.5,
	}
}

// Options configures a decomposition. OutlierOptions may be nil to skip outlier detection.
type Options struct {
	SmoothOptions  *smooth.Options `json:"smooth_options"`
	OutlierOptions *OutlierOptions `json:"outlier_options"`
}

// NewDefaultOptions returns boxcar smoothing of the given width with residual outlier detection
func NewDefaultOptions(width float64) *Options {
	return &Options{
		SmoothOptions:  smooth.NewDefaultOptions(width),
		OutlierOptions: NewOutlierOptions(),
	}
}
