package report

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/google/renameio"

	"github.com/ironsheep/greyscale-document-filter/internal/document"
)

// DefaultPreviewSize is the longest side of a preview.
const DefaultPreviewSize = 1024

// PreviewResult contains an encoded preview image.
type PreviewResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Preview returns the greyscale rendition of im scaled down with Lanczos
// resampling to fit maxSide x maxSide. Images already inside the box, or a
// maxSide below 1, are returned at full size.
func Preview(im *document.Image, maxSide int) image.Image {
	im.EnsureGreyscale()
	grey := im.GreyImage()
	if maxSide < 1 || (grey.Bounds().Dx() <= maxSide && grey.Bounds().Dy() <= maxSide) {
		return grey
	}
	return imaging.Fit(grey, maxSide, maxSide, imaging.Lanczos)
}

// WritePreview saves the preview of im to path. The encoding follows the
// extension of path (png, jpg, gif, tif, bmp).
func WritePreview(path string, im *document.Image, maxSide int) error {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return fmt.Errorf("%w: preview %s", document.ErrUnsupportedFormat, path)
	}

	o, err := renameio.TempFile("", path)
	if err != nil {
		return fmt.Errorf("failed to create preview file: %w", err)
	}
	defer o.Cleanup()

	if err := imaging.Encode(o, Preview(im, maxSide), format); err != nil {
		return fmt.Errorf("failed to encode preview: %w", err)
	}
	if err := o.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// PreviewPNG encodes the preview of im as a base64 PNG.
func PreviewPNG(im *document.Image, maxSide int) (*PreviewResult, error) {
	preview := Preview(im, maxSide)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, preview, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}

	return &PreviewResult{
		Width:       preview.Bounds().Dx(),
		Height:      preview.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
