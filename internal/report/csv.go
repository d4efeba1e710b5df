package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/google/renameio"

	"github.com/ironsheep/greyscale-document-filter/internal/document"
)

var (
	// ErrNoSeries is returned when a report is asked for zero histograms.
	ErrNoSeries = errors.New("no histogram series")

	// ErrOutOfRange is returned for rows or columns outside the image.
	ErrOutOfRange = errors.New("out of range")
)

// Group sums h over consecutive runs of groupEvery shades. Index i of the
// result holds shades [i*groupEvery, (i+1)*groupEvery). A groupEvery below 1
// is treated as 1.
func Group(h *document.Histogram, groupEvery int) []uint64 {
	if groupEvery < 1 {
		groupEvery = 1
	}
	groups := make([]uint64, 0, (document.Levels+groupEvery-1)/groupEvery)
	for start := 0; start < document.Levels; start += groupEvery {
		end := start + groupEvery
		if end > document.Levels {
			end = document.Levels
		}
		var sum uint64
		for _, n := range h[start:end] {
			sum += n
		}
		groups = append(groups, sum)
	}
	return groups
}

// WriteCSV writes one or more histograms as CSV, one column per histogram.
//
// The header is "Grey shade,Count" with one Count column per series. Each
// row starts with the first shade of its group followed by the summed counts.
func WriteCSV(w io.Writer, groupEvery int, hists ...*document.Histogram) error {
	if len(hists) == 0 {
		return ErrNoSeries
	}
	if groupEvery < 1 {
		groupEvery = 1
	}

	grouped := make([][]uint64, len(hists))
	for i, h := range hists {
		grouped[i] = Group(h, groupEvery)
	}

	cw := csv.NewWriter(w)
	record := make([]string, 1+len(hists))
	record[0] = "Grey shade"
	for i := range hists {
		record[1+i] = "Count"
	}
	if err := cw.Write(record); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for g := range grouped[0] {
		record[0] = strconv.Itoa(g * groupEvery)
		for i := range grouped {
			record[1+i] = strconv.FormatUint(grouped[i][g], 10)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

// WriteCSVFile writes the CSV report to path, replacing it atomically.
func WriteCSVFile(path string, groupEvery int, hists ...*document.Histogram) error {
	if len(hists) == 0 {
		return ErrNoSeries
	}
	o, err := renameio.TempFile("", path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer o.Cleanup()

	if err := WriteCSV(o, groupEvery, hists...); err != nil {
		return err
	}
	if err := o.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
