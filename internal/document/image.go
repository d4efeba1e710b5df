package document

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/ironsheep/greyscale-document-filter/internal/pixel"
)

var (
	// ErrInvalidDimensions is returned when a size or rectangle cannot be
	// satisfied inside the image.
	ErrInvalidDimensions = errors.New("invalid dimensions")

	// ErrUnsupportedFormat is returned for file formats other than 24-bit
	// uncompressed BMP.
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// Format identifies the binary layout an image was decoded from.
type Format int

const (
	// FormatUnknown marks images that were not decoded from a file.
	FormatUnknown Format = iota
	// FormatBMP24 is the uncompressed, bottom-up, 24 bits per pixel bitmap.
	FormatBMP24
)

// String returns "bmp24" or "unknown".
func (f Format) String() string {
	switch f {
	case FormatBMP24:
		return "bmp24"
	default:
		return "unknown"
	}
}

// Image is a document page: a colour grid plus a lazily derived greyscale
// grid of the same dimensions.
//
// Both grids are stored row-major, the pixel at (x, y) lives at index
// y*Width()+x.
type Image struct {
	width  int
	height int

	colour []pixel.RGB
	grey   []pixel.Grey

	baselineInk uint64
	baselineSet bool

	// Format is the layout the image was decoded from.
	Format Format

	// Path is the file the image was read from, empty for blank images.
	Path string
}

// New creates a blank image. The colour grid is allocated on first use and
// starts out black, the greyscale grid is absent.
//
// # Errors
//
//   - ErrInvalidDimensions if width or height is negative
func New(width, height int) (*Image, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return &Image{width: width, height: height}, nil
}

// Width returns the image width in pixels.
func (im *Image) Width() int { return im.width }

// Height returns the image height in pixels.
func (im *Image) Height() int { return im.height }

// Bounds returns the whole image as a Region.
func (im *Image) Bounds() Region {
	return Region{X2: im.width, Y2: im.height}
}

func (im *Image) index(x, y int) int {
	if x < 0 || x >= im.width || y < 0 || y >= im.height {
		panic(fmt.Sprintf("document: pixel (%d,%d) outside %dx%d image", x, y, im.width, im.height))
	}
	return y*im.width + x
}

// colourPix returns the colour grid, allocating it on first use.
func (im *Image) colourPix() []pixel.RGB {
	if im.colour == nil {
		im.colour = make([]pixel.RGB, im.width*im.height)
	}
	return im.colour
}

// Colour returns the colour pixel at (x, y). It panics if (x, y) is outside
// the image.
func (im *Image) Colour(x, y int) pixel.RGB {
	i := im.index(x, y)
	if im.colour == nil {
		return pixel.RGB{}
	}
	return im.colour[i]
}

// SetColour sets the colour pixel at (x, y). It does not touch the
// greyscale grid; call ToGreyscale to propagate colour edits.
func (im *Image) SetColour(x, y int, c pixel.RGB) {
	im.colourPix()[im.index(x, y)] = c
}

// HasGreyscale reports whether the greyscale grid has been derived.
func (im *Image) HasGreyscale() bool {
	return im.grey != nil
}

// Grey returns the greyscale pixel at (x, y). It does not derive the grid:
// before the first derivation every pixel reads as black.
func (im *Image) Grey(x, y int) pixel.Grey {
	i := im.index(x, y)
	if im.grey == nil {
		return pixel.Black
	}
	return im.grey[i]
}

// SetGrey sets the greyscale pixel at (x, y), deriving the grid first if it
// is absent.
func (im *Image) SetGrey(x, y int, g pixel.Grey) {
	i := im.index(x, y)
	im.EnsureGreyscale()
	im.grey[i] = g
}

// ToGreyscale derives the greyscale grid from the colour grid, replacing
// any earlier greyscale edits.
//
// The baseline ink sum is accumulated only by the very first derivation, so
// it always describes the unmodified page.
func (im *Image) ToGreyscale() {
	colour := im.colourPix()
	if im.grey == nil {
		im.grey = make([]pixel.Grey, len(colour))
	}
	record := !im.baselineSet

	var ink uint64
	for i, c := range colour {
		g := c.Grey()
		im.grey[i] = g
		ink += uint64(g.Ink())
	}

	if record {
		im.baselineInk = ink
		im.baselineSet = true
	}
}

// EnsureGreyscale derives the greyscale grid only if it is absent.
func (im *Image) EnsureGreyscale() {
	if im.grey == nil {
		im.ToGreyscale()
	}
}

// Clone returns a deep copy of the image, including the greyscale grid and
// the baseline ink sum.
func (im *Image) Clone() *Image {
	c := *im
	if im.colour != nil {
		c.colour = append([]pixel.RGB(nil), im.colour...)
	}
	if im.grey != nil {
		c.grey = append([]pixel.Grey(nil), im.grey...)
	}
	return &c
}

// copyColour returns a new image with a copy of the colour grid only.
func (im *Image) copyColour() *Image {
	c := &Image{width: im.width, height: im.height, Format: im.Format}
	if im.colour != nil {
		c.colour = append([]pixel.RGB(nil), im.colour...)
	}
	return c
}

// ColourImage renders the colour grid as a standard library image.
func (im *Image) ColourImage() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, im.width, im.height))
	colour := im.colourPix()
	for y := 0; y < im.height; y++ {
		for x := 0; x < im.width; x++ {
			c := colour[y*im.width+x]
			out.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
		}
	}
	return out
}

// GreyImage renders the greyscale grid as a standard library image,
// deriving it first if needed.
func (im *Image) GreyImage() *image.Gray {
	im.EnsureGreyscale()
	out := image.NewGray(image.Rect(0, 0, im.width, im.height))
	for i, g := range im.grey {
		out.Pix[i] = g.Y
	}
	return out
}
