package detector

// Params holds the region-extraction parameters. The defaults are tuned to
// the PP-OCRv5 detection model; they are named fields rather than inline
// constants so the model coupling stays visible and overridable.
type Params struct {
	// FullScale is the value range of the probability map handed to
	// ExtractRegions. The pipeline denormalizes the raw [0,1] map to
	// [0,255]; threshold and score are computed in that same scale.
	FullScale float64

	// Threshold is the foreground fraction of FullScale (default 0.3).
	Threshold float64

	// BoxThreshold is the minimum mean score of a component, normalized to
	// [0,1], for it to become a region (default 0.6).
	BoxThreshold float64

	// MinPixels is the smallest component kept, in map pixels (default 6).
	MinPixels int

	// MinMapSize discards boxes whose larger side, in map pixels, is below
	// this value times the preprocessing scale (default 3).
	MinMapSize float64

	// VerticalRatio is the height/width (or width/height near ±90°) factor
	// above which a box is classified as vertical text (default 2.7).
	VerticalRatio float64

	// EnlargeRatio grows detection boxes before recognition: width scales
	// by the ratio, height grows by width times (ratio-1) (default 1.95).
	EnlargeRatio float64

	// MinBoxSize rejects boxes with either dimension below this many
	// original-image pixels (default 1.0).
	MinBoxSize float64

	// MaxAspect rejects boxes whose height/width ratio (or its reciprocal)
	// exceeds this limit (default 120).
	MaxAspect float64
}

// DefaultParams returns the reference extraction parameters.
func DefaultParams() Params {
	return Params{
		FullScale:     255.0,
		Threshold:     0.3,
		BoxThreshold:  0.6,
		MinPixels:     6,
		MinMapSize:    3.0,
		VerticalRatio: 2.7,
		EnlargeRatio:  1.95,
		MinBoxSize:    1.0,
		MaxAspect:     120.0,
	}
}

// Remap describes how the probability map relates to the original image:
// the aspect-preserving resize scale and the total symmetric padding, in
// map pixels, applied after resizing.
type Remap struct {
	Scale float64
	PadW  int
	PadH  int
}

// IdentityRemap maps map coordinates straight to image coordinates.
func IdentityRemap() Remap { return Remap{Scale: 1} }
