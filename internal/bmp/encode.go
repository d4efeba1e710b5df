package bmp

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/google/renameio"

	"github.com/ironsheep/greyscale-document-filter/internal/document"
)

// Source selects which pixel grid of an image is encoded.
type Source int

const (
	// Colour writes the colour grid as is.
	Colour Source = iota
	// Greyscale writes each luminance to all three channels.
	Greyscale
)

func (s Source) String() string {
	switch s {
	case Colour:
		return "colour"
	case Greyscale:
		return "greyscale"
	default:
		return fmt.Sprintf("Source(%d)", int(s))
	}
}

// Encode writes im to w as a 24-bit bitmap. Encoding the greyscale source
// derives the greyscale grid first if the image has none.
func Encode(w io.Writer, im *document.Image, source Source) error {
	if source != Colour && source != Greyscale {
		return fmt.Errorf("unknown bitmap source %v", source)
	}
	width, height := im.Width(), im.Height()
	fh, ih, err := newHeaders(width, height)
	if err != nil {
		return err
	}
	if source == Greyscale {
		im.EnsureGreyscale()
	}

	bw := bufio.NewWriter(w)
	if err := writeHeaders(bw, fh, ih); err != nil {
		return err
	}

	line := make([]byte, Stride(width))
	for y := height - 1; y >= 0; y-- {
		for x := 0; x < width; x++ {
			c := im.Colour(x, y)
			if source == Greyscale {
				c = im.Grey(x, y).RGB()
			}
			line[3*x] = c.B
			line[3*x+1] = c.G
			line[3*x+2] = c.R
		}
		if _, err := bw.Write(line); err != nil {
			return fmt.Errorf("failed to write pixel row: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write pixel row: %w", err)
	}
	return nil
}

// Marshal returns the bitmap encoding of im.
func Marshal(im *document.Image, source Source) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(HeaderSize + Stride(im.Width())*im.Height())
	if err := Encode(&buf, im, source); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile encodes im to path. The file is written to a temporary name and
// renamed into place, so path is either replaced completely or left alone.
func WriteFile(path string, im *document.Image, source Source) error {
	o, err := renameio.TempFile("", path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer o.Cleanup()

	if err := Encode(o, im, source); err != nil {
		return err
	}
	if err := o.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
