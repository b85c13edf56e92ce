package geometry

// WarpBilinear resamples src into a dstW x dstH planar image through the
// inverse of the given forward transform, sampling bilinearly at the
// back-projected coordinate of every destination pixel. Because the inverse
// mapping is affine, the source coordinate advances by a constant step along
// each destination row; only the row start needs recomputing. Samples that
// fall outside the source are clamped per axis, so edges repeat instead of
// producing black borders. A degenerate transform yields a zero-filled
// output.
func WarpBilinear(src Planar, m AffineTransform, dstW, dstH int) Planar {
	dst := NewPlanar(dstW, dstH, src.Channels)
	warpInto(dst, src, m)
	return dst
}

// WarpBilinearPooled is WarpBilinear with the destination drawn from the
// buffer pool. The caller must Release the result.
func WarpBilinearPooled(src Planar, m AffineTransform, dstW, dstH int) Planar {
	dst := NewPlanarPooled(dstW, dstH, src.Channels)
	warpInto(dst, src, m)
	return dst
}

func warpInto(dst Planar, src Planar, m AffineTransform) {
	dstW, dstH := dst.Width, dst.Height
	inv, ok := m.Invert()
	if !ok {
		return
	}

	rowStartX := make([]float64, dstH)
	rowStartY := make([]float64, dstH)
	for dy := range dstH {
		rowStartX[dy] = float64(dy)*inv.B + inv.C
		rowStartY[dy] = float64(dy)*inv.E + inv.F
	}

	srcW, srcH := src.Width, src.Height
	for c := range src.Channels {
		srcPlane := src.Channel(c)
		dstPlane := dst.Channel(c)
		for dy := range dstH {
			sx := rowStartX[dy]
			sy := rowStartY[dy]
			for dx := range dstW {
				x0 := int(sx)
				y0 := int(sy)
				var val float32
				if x0 >= 0 && x0 < srcW-1 && y0 >= 0 && y0 < srcH-1 {
					// Interior fast path: the 2x2 neighborhood is in bounds.
					u := float32(sx - float64(x0))
					v := float32(sy - float64(y0))
					base := y0*srcW + x0
					v00 := srcPlane[base]
					v01 := srcPlane[base+1]
					v10 := srcPlane[base+srcW]
					v11 := srcPlane[base+srcW+1]
					val = v00*(1-u)*(1-v) + v01*u*(1-v) + v10*(1-u)*v + v11*u*v
				} else {
					val = sampleClamped(srcPlane, srcW, srcH, sx, sy, x0, y0)
				}
				dstPlane[dy*dstW+dx] = val
				sx += inv.A
				sy += inv.D
			}
		}
	}
}

// sampleClamped bilinearly samples with per-axis clamping of all four taps.
func sampleClamped(plane []float32, w, h int, sx, sy float64, x0, y0 int) float32 {
	x0c := clampIdx(x0, w-1)
	y0c := clampIdx(y0, h-1)
	x1c := clampIdx(x0+1, w-1)
	y1c := clampIdx(y0+1, h-1)

	u := float32(sx - float64(x0))
	v := float32(sy - float64(y0))

	v00 := plane[y0c*w+x0c]
	v01 := plane[y0c*w+x1c]
	v10 := plane[y1c*w+x0c]
	v11 := plane[y1c*w+x1c]
	return v00*(1-u)*(1-v) + v01*u*(1-v) + v10*(1-u)*v + v11*u*v
}

func clampIdx(v, hi int) int {
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}
