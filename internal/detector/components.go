package detector

import (
	"github.com/MeKo-Tech/textspot/internal/mempool"
)

// findComponents collects the 4-connected components of the probability map
// whose pixels exceed threshold, dropping components smaller than minPixels.
// Components come back in scan order of their seed pixel, which fixes the
// discovery order of the resulting regions.
func findComponents(prob []float32, w, h int, threshold float32, minPixels int) []Contour {
	visited := mempool.GetBool(w * h)
	defer mempool.PutBool(visited)

	var contours []Contour
	queue := make([]int, 0, 256)

	for y := range h {
		for x := range w {
			idx := y*w + x
			if prob[idx] <= threshold || visited[idx] {
				continue
			}
			var contour Contour
			contour, queue = floodFill(prob, visited, queue, w, h, idx, threshold)
			if len(contour) >= minPixels {
				contours = append(contours, contour)
			}
		}
	}
	return contours
}

// floodFill runs a BFS from seed over the 4-neighborhood and returns the
// component's pixel set. The queue slice is reused across calls.
func floodFill(prob []float32, visited []bool, queue []int, w, h, seed int, threshold float32) (Contour, []int) {
	queue = queue[:0]
	queue = append(queue, seed)
	visited[seed] = true

	contour := make(Contour, 0, 64)
	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		cx, cy := cur%w, cur/w
		contour = append(contour, MapPoint{X: cx, Y: cy})

		if cx > 0 {
			queue = tryVisit(prob, visited, queue, cur-1, threshold)
		}
		if cx < w-1 {
			queue = tryVisit(prob, visited, queue, cur+1, threshold)
		}
		if cy > 0 {
			queue = tryVisit(prob, visited, queue, cur-w, threshold)
		}
		if cy < h-1 {
			queue = tryVisit(prob, visited, queue, cur+w, threshold)
		}
	}
	return contour, queue
}

func tryVisit(prob []float32, visited []bool, queue []int, idx int, threshold float32) []int {
	if prob[idx] > threshold && !visited[idx] {
		visited[idx] = true
		queue = append(queue, idx)
	}
	return queue
}
