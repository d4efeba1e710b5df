package bmp

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrInvalidHeader is returned for a structurally broken bitmap.
var ErrInvalidHeader = errors.New("invalid bitmap header")

const (
	// TypeBM is the "BM" signature read as a little-endian uint16.
	TypeBM = 0x4D42

	// FileHeaderSize is the encoded size of FileHeader.
	FileHeaderSize = 14
	// InfoHeaderSize is the encoded size of InfoHeader.
	InfoHeaderSize = 40
	// HeaderSize is the pixel offset of every bitmap this package writes.
	HeaderSize = FileHeaderSize + InfoHeaderSize

	bitCount = 24
	biRGB    = 0
)

// FileHeader is the BITMAPFILEHEADER structure.
type FileHeader struct {
	Type      uint16
	Size      uint32
	Reserved1 uint16
	Reserved2 uint16
	OffBits   uint32
}

// InfoHeader is the BITMAPINFOHEADER structure.
type InfoHeader struct {
	Size          uint32
	Width         int32
	Height        int32
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	SizeImage     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
}

// Padding returns the number of zero bytes that pad a row of width pixels
// to a multiple of four bytes.
func Padding(width int) int {
	return (4 - (3*width)%4) % 4
}

// Stride returns the encoded length of one row of width pixels.
func Stride(width int) int {
	return 3*width + Padding(width)
}

// newHeaders builds the canonical headers for a width x height image.
func newHeaders(width, height int) (FileHeader, InfoHeader, error) {
	pixels := uint64(Stride(width)) * uint64(height)
	if width <= 0 || height <= 0 || pixels+HeaderSize > 0xFFFFFFFF {
		return FileHeader{}, InfoHeader{}, fmt.Errorf("%w: cannot encode %dx%d image", ErrInvalidHeader, width, height)
	}
	fh := FileHeader{
		Type:    TypeBM,
		Size:    uint32(pixels + HeaderSize),
		OffBits: HeaderSize,
	}
	ih := InfoHeader{
		Size:        InfoHeaderSize,
		Width:       int32(width),
		Height:      int32(height),
		Planes:      1,
		BitCount:    bitCount,
		Compression: biRGB,
		SizeImage:   uint32(pixels),
	}
	return fh, ih, nil
}

func readHeaders(r io.Reader) (FileHeader, InfoHeader, error) {
	var fh FileHeader
	var ih InfoHeader
	if err := binary.Read(r, binary.LittleEndian, &fh); err != nil {
		return fh, ih, fmt.Errorf("%w: file header: %v", ErrInvalidHeader, err)
	}
	if err := binary.Read(r, binary.LittleEndian, &ih); err != nil {
		return fh, ih, fmt.Errorf("%w: info header: %v", ErrInvalidHeader, err)
	}
	return fh, ih, nil
}

func writeHeaders(w io.Writer, fh FileHeader, ih InfoHeader) error {
	if err := binary.Write(w, binary.LittleEndian, fh); err != nil {
		return fmt.Errorf("failed to write file header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, ih); err != nil {
		return fmt.Errorf("failed to write info header: %w", err)
	}
	return nil
}
