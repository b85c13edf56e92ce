package recognizer

import "github.com/MeKo-Tech/textspot/internal/geometry"

// Recognition input range: the model expects (v - 127.5) / 127.5, mapping
// [0,255] pixels to [-1,1].
const (
	InputMean  = 127.5
	InputScale = 1.0 / 127.5
)

// NormalizeStrip rescales a canonical strip in place from [0,255] to the
// recognition model's input range.
func NormalizeStrip(strip geometry.Planar) {
	for i, v := range strip.Data {
		strip.Data[i] = (v - InputMean) * InputScale
	}
}
