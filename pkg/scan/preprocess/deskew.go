package preprocess

import (
	"image"
	"math"
	"sort"

	"github.com/Abraxas-365/inkwell/pkg/errx"
)

// Deskew estimates page rotation from the minimum-area bounding rectangle of
// all foreground (non-zero) pixels and rotates the image to compensate.
// A page with no foreground at all is returned unchanged: a blank page is
// not an error at this stage.
func Deskew(img *image.Gray) (*image.Gray, *errx.Error) {
	if err := requireGray(img, "deskew"); err != nil {
		return nil, err
	}

	points := foregroundPoints(img)
	if len(points) == 0 {
		return img, nil
	}

	angle := minAreaRectAngle(points)

	// The rectangle orientation is ambiguous by 90 degrees; fold it into a
	// single consistent rotation direction.
	if angle < -45 {
		angle = -(90 + angle)
	} else {
		angle = -angle
	}

	if angle == 0 {
		return img, nil
	}

	return rotate(img, angle), nil
}

type point struct {
	x, y float64
}

func foregroundPoints(img *image.Gray) []point {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	var points []point
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if img.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y > 0 {
				points = append(points, point{x: float64(x), y: float64(y)})
			}
		}
	}
	return points
}

// minAreaRectAngle returns the orientation of the minimum-area rectangle
// enclosing the points, normalized to [-90, 0).
func minAreaRectAngle(points []point) float64 {
	hull := convexHull(points)
	if len(hull) < 3 {
		return -90
	}

	bestArea := math.Inf(1)
	bestAngle := -90.0

	for i := 0; i < len(hull); i++ {
		j := (i + 1) % len(hull)
		theta := math.Atan2(hull[j].y-hull[i].y, hull[j].x-hull[i].x)

		cos, sin := math.Cos(-theta), math.Sin(-theta)

		minX, maxX := math.Inf(1), math.Inf(-1)
		minY, maxY := math.Inf(1), math.Inf(-1)
		for _, p := range hull {
			rx := p.x*cos - p.y*sin
			ry := p.x*sin + p.y*cos
			minX = math.Min(minX, rx)
			maxX = math.Max(maxX, rx)
			minY = math.Min(minY, ry)
			maxY = math.Max(maxY, ry)
		}

		area := (maxX - minX) * (maxY - minY)
		if area < bestArea {
			bestArea = area
			bestAngle = normalizeRectAngle(theta * 180 / math.Pi)
		}
	}

	return bestAngle
}

// normalizeRectAngle folds an edge direction into the [-90, 0) range used
// for rectangle orientation.
func normalizeRectAngle(deg float64) float64 {
	for deg >= 0 {
		deg -= 90
	}
	for deg < -90 {
		deg += 90
	}
	return deg
}

// convexHull computes the convex hull via Andrew's monotone chain,
// counter-clockwise, without collinear points.
func convexHull(points []point) []point {
	if len(points) <= 2 {
		return points
	}

	pts := make([]point, len(points))
	copy(pts, points)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].x != pts[j].x {
			return pts[i].x < pts[j].x
		}
		return pts[i].y < pts[j].y
	})

	cross := func(o, a, b point) float64 {
		return (a.x-o.x)*(b.y-o.y) - (a.y-o.y)*(b.x-o.x)
	}

	var lower []point
	for _, p := range pts {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}

	var upper []point
	for i := len(pts) - 1; i >= 0; i-- {
		p := pts[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	return append(lower[:len(lower)-1], upper[:len(upper)-1]...)
}

// rotate rotates the image by angleDeg about its center using bilinear
// sampling. Pixels mapped from outside the original bounds replicate the
// nearest edge pixel.
func rotate(img *image.Gray, angleDeg float64) *image.Gray {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	cx := float64(w / 2)
	cy := float64(h / 2)

	rad := angleDeg * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)

	out := image.NewGray(image.Rect(0, 0, w, h))

	sample := func(x, y int) float64 {
		x = clampInt(x, 0, w-1)
		y = clampInt(y, 0, h-1)
		return float64(img.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y)
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// Inverse mapping: where does this destination pixel come from?
			dx := float64(x) - cx
			dy := float64(y) - cy
			sx := cx + dx*cos + dy*sin
			sy := cy - dx*sin + dy*cos

			x0 := int(math.Floor(sx))
			y0 := int(math.Floor(sy))
			fx := sx - float64(x0)
			fy := sy - float64(y0)

			top := (1-fx)*sample(x0, y0) + fx*sample(x0+1, y0)
			bottom := (1-fx)*sample(x0, y0+1) + fx*sample(x0+1, y0+1)
			v := (1-fy)*top + fy*bottom

			out.Pix[y*out.Stride+x] = uint8(clampFloat(math.Round(v), 0, 255))
		}
	}

	return out
}
