package testutil

// ProbabilitySurface builds a w by h probability map filled with background
// and one or more rectangular blobs of foreground probability. Values are
// in [0,1] as a detection network would emit them.
type ProbabilitySurface struct {
	Data   []float32
	Width  int
	Height int
}

// NewProbabilitySurface creates a surface filled with background.
func NewProbabilitySurface(w, h int, background float32) *ProbabilitySurface {
	data := make([]float32, w*h)
	for i := range data {
		data[i] = background
	}
	return &ProbabilitySurface{Data: data, Width: w, Height: h}
}

// AddBlob sets a filled axis-aligned rectangle to the given probability.
// Coordinates outside the surface are clipped.
func (s *ProbabilitySurface) AddBlob(x0, y0, x1, y1 int, p float32) *ProbabilitySurface {
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > s.Width {
		x1 = s.Width
	}
	if y1 > s.Height {
		y1 = s.Height
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			s.Data[y*s.Width+x] = p
		}
	}
	return s
}

// Scaled returns a copy with every value multiplied by f, as when a map is
// brought from [0,1] to [0,255].
func (s *ProbabilitySurface) Scaled(f float32) []float32 {
	out := make([]float32, len(s.Data))
	for i, v := range s.Data {
		out[i] = v * f
	}
	return out
}
