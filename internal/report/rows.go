package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/ironsheep/greyscale-document-filter/internal/document"
)

// RowShades returns the ink (255 - Y) of each greyscale pixel of row in
// columns [minCol, maxCol). A maxCol of 0 or equal to minCol means the image
// width.
func RowShades(im *document.Image, row, minCol, maxCol int) ([]uint8, error) {
	if row < 0 || row >= im.Height() {
		return nil, fmt.Errorf("%w: row %d not in [0,%d)", ErrOutOfRange, row, im.Height())
	}
	if maxCol == 0 || maxCol == minCol {
		maxCol = im.Width()
	}
	if minCol < 0 || maxCol > im.Width() || minCol > maxCol {
		return nil, fmt.Errorf("%w: columns [%d,%d) not in [0,%d)", ErrOutOfRange, minCol, maxCol, im.Width())
	}

	im.EnsureGreyscale()
	shades := make([]uint8, 0, maxCol-minCol)
	for x := minCol; x < maxCol; x++ {
		shades = append(shades, im.Grey(x, row).Ink())
	}
	return shades, nil
}

// WriteRowShades writes RowShades one value per line.
func WriteRowShades(w io.Writer, im *document.Image, row, minCol, maxCol int) error {
	shades, err := RowShades(im, row, minCol, maxCol)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	for _, s := range shades {
		fmt.Fprintln(bw, s)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write row shades: %w", err)
	}
	return nil
}
