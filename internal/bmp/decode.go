package bmp

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/ironsheep/greyscale-document-filter/internal/document"
	"github.com/ironsheep/greyscale-document-filter/internal/pixel"
)

// Decode parses a 24-bit bitmap held in data.
//
// The returned image has only its colour grid populated; its Format is
// document.FormatBMP24.
//
// # Errors
//
//   - document.ErrUnsupportedFormat for a signature other than "BM", a bit
//     depth other than 24 or any compression
//   - ErrInvalidHeader for truncated headers, non-positive width, zero
//     height, a pixel offset inside the headers or past the end of the file,
//     or a short pixel array
func Decode(data []byte) (*document.Image, error) {
	fh, ih, err := readHeaders(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	if fh.Type != TypeBM {
		return nil, fmt.Errorf("%w: signature 0x%04x is not BM", document.ErrUnsupportedFormat, fh.Type)
	}
	if ih.Size < InfoHeaderSize {
		return nil, fmt.Errorf("%w: info header size %d", ErrInvalidHeader, ih.Size)
	}
	if ih.BitCount != bitCount {
		return nil, fmt.Errorf("%w: %d bits per pixel, only 24 is supported", document.ErrUnsupportedFormat, ih.BitCount)
	}
	if ih.Compression != biRGB {
		return nil, fmt.Errorf("%w: compression %d, only uncompressed bitmaps are supported", document.ErrUnsupportedFormat, ih.Compression)
	}
	if ih.Width <= 0 || ih.Height == 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidHeader, ih.Width, ih.Height)
	}

	width := int(ih.Width)
	height := int(ih.Height)
	topDown := height < 0
	if topDown {
		height = -height
	}

	off := int64(fh.OffBits)
	if off < FileHeaderSize+int64(ih.Size) {
		return nil, fmt.Errorf("%w: pixel offset %d inside the %d byte headers", ErrInvalidHeader, fh.OffBits, FileHeaderSize+int64(ih.Size))
	}
	if off > int64(len(data)) {
		return nil, fmt.Errorf("%w: pixel offset %d outside %d byte file", ErrInvalidHeader, fh.OffBits, len(data))
	}
	stride := int64(Stride(width))
	avail := int64(len(data)) - off
	if stride > avail/int64(height) {
		return nil, fmt.Errorf("%w: pixel array needs %d bytes, file holds %d", ErrInvalidHeader, stride*int64(height), avail)
	}

	im, err := document.New(width, height)
	if err != nil {
		return nil, err
	}
	im.Format = document.FormatBMP24

	pix := data[off:]
	for row := 0; row < height; row++ {
		y := height - 1 - row
		if topDown {
			y = row
		}
		line := pix[int64(row)*stride:]
		for x := 0; x < width; x++ {
			b := line[3*x : 3*x+3]
			im.SetColour(x, y, pixel.RGB{R: b[2], G: b[1], B: b[0]})
		}
	}
	return im, nil
}

// Read decodes a bitmap from r.
func Read(r io.Reader) (*document.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read bitmap: %w", err)
	}
	return Decode(data)
}

// ReadFile decodes the bitmap at path and records path on the image.
func ReadFile(path string) (*document.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	im, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	im.Path = path
	return im, nil
}
