package quality

import "image"

// connectedComponents labels foreground regions under 8-connectivity and
// returns the component count and mean component area in pixels. The
// background is not a component. Uses an explicit stack flood fill so deep
// regions cannot overflow the call stack.
func connectedComponents(img *image.Gray) (int, float64) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	visited := make([]bool, w*h)

	var neighbors = [8][2]int{
		{-1, -1}, {0, -1}, {1, -1},
		{-1, 0}, {1, 0},
		{-1, 1}, {0, 1}, {1, 1},
	}

	count := 0
	totalArea := 0

	var stack [][2]int

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if visited[idx] || img.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y == 0 {
				continue
			}

			count++
			area := 0

			stack = stack[:0]
			stack = append(stack, [2]int{x, y})
			visited[idx] = true

			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				area++

				for _, d := range neighbors {
					nx, ny := p[0]+d[0], p[1]+d[1]
					if nx < 0 || nx >= w || ny < 0 || ny >= h {
						continue
					}
					nIdx := ny*w + nx
					if visited[nIdx] || img.GrayAt(bounds.Min.X+nx, bounds.Min.Y+ny).Y == 0 {
						continue
					}
					visited[nIdx] = true
					stack = append(stack, [2]int{nx, ny})
				}
			}

			totalArea += area
		}
	}

	if count == 0 {
		return 0, 0
	}
	return count, float64(totalArea) / float64(count)
}
