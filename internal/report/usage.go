package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ironsheep/greyscale-document-filter/internal/document"
)

// WriteUsage prints the toner usage summary for the document called name.
//
//	scan.bmp:
//	Toner units used for original image:               3.45098
//	Toner units used after removing background pixels: 0
//	Difference in toner units:                         3.45098
//	Difference in percentage:                          100%
func WriteUsage(w io.Writer, name string, u document.InkUsage) error {
	if _, err := fmt.Fprintf(w, "%s:\n", name); err != nil {
		return fmt.Errorf("failed to write usage report: %w", err)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	fmt.Fprintf(tw, "Toner units used for original image:\t%.6g\n", u.BaselineUnits())
	fmt.Fprintf(tw, "Toner units used after removing background pixels:\t%.6g\n", u.CurrentUnits())
	fmt.Fprintf(tw, "Difference in toner units:\t%.6g\n", u.SavedUnits())
	fmt.Fprintf(tw, "Difference in percentage:\t%.6g%%\n", u.SavedPercent())
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write usage report: %w", err)
	}
	return nil
}
