package document

import (
	"fmt"

	"github.com/ironsheep/greyscale-document-filter/internal/pixel"
)

// CutOutColour sets every pixel of the colour grid inside r that equals c to
// white.
func (im *Image) CutOutColour(c pixel.RGB, r Region) {
	r = r.Normalize(im.width, im.height)
	if r.Empty() {
		return
	}
	colour := im.colourPix()
	for y := r.Y1; y < r.Y2; y++ {
		row := colour[y*im.width : (y+1)*im.width]
		for x := r.X1; x < r.X2; x++ {
			if row[x] == c {
				row[x] = pixel.WhiteRGB
			}
		}
	}
}

// CutOutGrey sets every greyscale pixel inside r that equals shade to white.
// Cutting white itself is a no-op.
func (im *Image) CutOutGrey(shade pixel.Grey, r Region) {
	if shade.IsWhite() {
		im.EnsureGreyscale()
		return
	}
	im.cutOutRange(shade.Y, shade.Y, r)
}

// CutOutGreys whitens every greyscale pixel inside r whose shade lies in
// [min, max]. The bounds may be given in either order. White is never a
// source shade, so a max of 255 is treated as 254.
func (im *Image) CutOutGreys(min, max pixel.Grey, r Region) {
	lo, hi := min.Y, max.Y
	if hi < lo {
		lo, hi = hi, lo
	}
	if hi == pixel.MaxLuminance {
		hi = pixel.MaxLuminance - 1
	}
	if lo > hi {
		im.EnsureGreyscale()
		return
	}
	im.cutOutRange(lo, hi, r)
}

func (im *Image) cutOutRange(lo, hi uint8, r Region) {
	im.EnsureGreyscale()
	r = r.Normalize(im.width, im.height)
	if r.Empty() {
		return
	}
	for y := r.Y1; y < r.Y2; y++ {
		row := im.grey[y*im.width : (y+1)*im.width]
		for x := r.X1; x < r.X2; x++ {
			if v := row[x].Y; v >= lo && v <= hi {
				row[x] = pixel.White
			}
		}
	}
}

// WithGreyCutOut returns a copy of the image with shade cut out of the
// greyscale grid inside r. The copy starts from the colour grid: its
// greyscale is freshly derived, so earlier greyscale edits on im are not
// carried over. im is not modified.
func (im *Image) WithGreyCutOut(shade pixel.Grey, r Region) *Image {
	c := im.copyColour()
	c.ToGreyscale()
	c.CutOutGrey(shade, r)
	return c
}

// WithGreysCutOut is the copying form of CutOutGreys, with the same
// semantics as WithGreyCutOut.
func (im *Image) WithGreysCutOut(min, max pixel.Grey, r Region) *Image {
	c := im.copyColour()
	c.ToGreyscale()
	c.CutOutGreys(min, max, r)
	return c
}

// Crop returns a new image holding the colour pixels of r. The crop keeps
// the source format but has no greyscale grid, baseline or path; derive
// greyscale on it when needed.
//
// # Errors
//
//   - ErrInvalidDimensions if r is empty or reaches outside the image
func (im *Image) Crop(r Region) (*Image, error) {
	if r.X1 < 0 || r.Y1 < 0 || r.X2 > im.width || r.Y2 > im.height {
		return nil, fmt.Errorf("%w: crop region (%d,%d)-(%d,%d) outside image bounds (0,0)-(%d,%d)",
			ErrInvalidDimensions, r.X1, r.Y1, r.X2, r.Y2, im.width, im.height)
	}
	if r.Empty() {
		return nil, fmt.Errorf("%w: invalid crop region: x1 must be < x2, y1 must be < y2", ErrInvalidDimensions)
	}

	w, h := r.Dx(), r.Dy()
	crop := &Image{width: w, height: h, Format: im.Format}
	dst := crop.colourPix()
	src := im.colourPix()
	for y := 0; y < h; y++ {
		off := (r.Y1+y)*im.width + r.X1
		copy(dst[y*w:(y+1)*w], src[off:off+w])
	}
	return crop, nil
}
