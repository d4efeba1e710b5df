package document

import "math"

// Region represents a rectangular region within an image.
//
// Coordinates follow the standard image convention:
//   - (X1, Y1) is the top-left corner (inclusive)
//   - (X2, Y2) is the bottom-right corner (exclusive)
//
// The zero Region means "the whole image" for every operation that takes one.
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Whole returns the zero Region, which normalises to the full image.
func Whole() Region { return Region{} }

// Rect builds a Region from its corners.
func Rect(x1, y1, x2, y2 int) Region {
	return Region{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// Dx returns the width of the region, 0 if it is empty.
func (r Region) Dx() int {
	if r.X2 <= r.X1 {
		return 0
	}
	return r.X2 - r.X1
}

// Dy returns the height of the region, 0 if it is empty.
func (r Region) Dy() int {
	if r.Y2 <= r.Y1 {
		return 0
	}
	return r.Y2 - r.Y1
}

// Area returns the number of pixels in the region.
func (r Region) Area() int {
	return r.Dx() * r.Dy()
}

// Empty reports whether the region contains no pixels.
func (r Region) Empty() bool {
	return r.Dx() == 0 || r.Dy() == 0
}

// Normalize defaults and clamps r against a width x height image.
//
// If X2 is zero, not greater than X1, or beyond width, it becomes width; Y2
// follows the same rule against height. Negative X1/Y1 clamp to 0. X1 and Y1
// are otherwise left alone: a start at or beyond the image edge yields an
// empty region, which every operation treats as a no-op.
func (r Region) Normalize(width, height int) Region {
	if r.X1 < 0 {
		r.X1 = 0
	}
	if r.Y1 < 0 {
		r.Y1 = 0
	}
	if r.X2 == 0 || r.X2 <= r.X1 || r.X2 > width {
		r.X2 = width
	}
	if r.Y2 == 0 || r.Y2 <= r.Y1 || r.Y2 > height {
		r.Y2 = height
	}
	return r
}

// ValidateRegion is Normalize in function form.
func ValidateRegion(r Region, width, height int) Region {
	return r.Normalize(width, height)
}

// Zones partitions r into a grid of roughly side x side zones.
//
// The grid has floor(Dx/side) columns and floor(Dy/side) rows, each clamped
// to at least one, so a side larger than the region yields the region
// itself, and to at most one per pixel. Zone widths are the fractional
// Dx/cols: boundaries sit at X1+floor(i·zoneWidth) and the last zone always
// ends at X2, so leftover pixels are spread over the grid. Rows work the
// same way. Zones are returned column by column.
//
// An empty region or a non-positive side yields no zones.
func Zones(r Region, side float64) []Region {
	if r.Empty() || !(side > 0) {
		return nil
	}
	w, h := r.Dx(), r.Dy()

	cols := clampCount(float64(w)/side, w)
	rows := clampCount(float64(h)/side, h)

	xs := boundaries(r.X1, w, cols)
	ys := boundaries(r.Y1, h, rows)

	zones := make([]Region, 0, cols*rows)
	for i := 0; i < cols; i++ {
		for j := 0; j < rows; j++ {
			zones = append(zones, Region{X1: xs[i], Y1: ys[j], X2: xs[i+1], Y2: ys[j+1]})
		}
	}
	return zones
}

// clampCount truncates n to a zone count in [1, max]; a zone is never
// narrower than one pixel.
func clampCount(n float64, max int) int {
	if n < 1 {
		return 1
	}
	if n >= float64(max) {
		return max
	}
	return int(n)
}

// boundaries splits [start, start+length) into n parts of fractional width.
func boundaries(start, length, n int) []int {
	step := float64(length) / float64(n)
	b := make([]int, n+1)
	for i := 0; i < n; i++ {
		b[i] = start + int(math.Floor(float64(i)*step))
	}
	b[n] = start + length
	return b
}
