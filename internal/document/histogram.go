package document

import "github.com/ironsheep/greyscale-document-filter/internal/pixel"

// Levels is the number of distinct luminance values.
const Levels = pixel.MaxLuminance + 1

// Histogram counts pixels per luminance value; index is the shade.
type Histogram [Levels]uint64

// Histogram returns the luminance distribution of the pixels in r, deriving
// the greyscale grid first if needed. r is normalised, so the zero Region
// covers the whole image. The result always has all 256 buckets.
func (im *Image) Histogram(r Region) Histogram {
	var h Histogram
	im.EnsureGreyscale()
	r = r.Normalize(im.width, im.height)
	if r.Empty() {
		return h
	}
	for y := r.Y1; y < r.Y2; y++ {
		row := im.grey[y*im.width : (y+1)*im.width]
		for x := r.X1; x < r.X2; x++ {
			h[row[x].Y]++
		}
	}
	return h
}

// Total returns the number of pixels counted.
func (h *Histogram) Total() uint64 {
	var n uint64
	for _, c := range h {
		n += c
	}
	return n
}

// Peak returns the shade with the largest count in [lo, hi). Ties keep the
// lowest shade and an all-zero range returns lo. Bounds are clamped to the
// valid shade range.
func (h *Histogram) Peak(lo, hi int) int {
	if lo < 0 {
		lo = 0
	}
	if hi > Levels {
		hi = Levels
	}
	if lo >= Levels {
		return Levels - 1
	}
	peak := lo
	for i := lo + 1; i < hi; i++ {
		if h[i] > h[peak] {
			peak = i
		}
	}
	return peak
}

// ThresholdStart walks down from peak while the bucket count exceeds
// fraction of the peak count and returns where the walk stopped. The result
// is never above peak and only reaches 0 when every bucket below the peak
// stays above the cut-off.
func (h *Histogram) ThresholdStart(peak int, fraction float64) int {
	if peak < 0 {
		return 0
	}
	if peak >= Levels {
		peak = Levels - 1
	}
	cutoff := float64(h[peak]) * fraction
	start := peak
	for start > 0 && float64(h[start]) > cutoff {
		start--
	}
	return start
}
