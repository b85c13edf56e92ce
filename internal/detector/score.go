package detector

// contourScore averages the probability map over the pixels of the contour's
// bounding window that fall inside the contour's polygon, using a ray-cast
// point-in-polygon test against the contour's point set. The result is in
// the map's own value scale.
func contourScore(prob []float32, w, h int, contour Contour) float64 {
	if len(contour) == 0 {
		return 0
	}

	minX, minY, maxX, maxY := contourBounds(contour, w, h)

	var sum float64
	count := 0
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if pointInContour(contour, x, y) {
				sum += float64(prob[y*w+x])
				count++
			}
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

func contourBounds(contour Contour, w, h int) (minX, minY, maxX, maxY int) {
	minX, minY = w, h
	maxX, maxY = 0, 0
	for _, p := range contour {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > w-1 {
		maxX = w - 1
	}
	if maxY > h-1 {
		maxY = h - 1
	}
	return minX, minY, maxX, maxY
}

// pointInContour casts a ray to +x and counts edge crossings of the closed
// polygon formed by the contour points in order.
func pointInContour(contour Contour, x, y int) bool {
	inside := false
	n := len(contour)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := contour[i], contour[j]
		if (pi.Y > y) != (pj.Y > y) &&
			float64(x) < float64(pj.X-pi.X)*float64(y-pi.Y)/float64(pj.Y-pi.Y)+float64(pi.X) {
			inside = !inside
		}
	}
	return inside
}
