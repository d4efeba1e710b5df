// Command docfilter removes the paper background from a 24-bit BMP scan so the
// page prints with less toner.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/renameio"
	"github.com/sirupsen/logrus"

	"github.com/ironsheep/greyscale-document-filter/internal/bmp"
	"github.com/ironsheep/greyscale-document-filter/internal/document"
	"github.com/ironsheep/greyscale-document-filter/internal/report"
	"github.com/ironsheep/greyscale-document-filter/internal/store"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const usage = `Usage: docfilter [flags] input.bmp

Turns a colour scan into greyscale and whitens its background, writing
the cleaned page and a histogram of its grey shades. The toner saved is
printed to stdout.

`

type config struct {
	input       string
	output      string
	mode        string
	zoneSize    int
	zones       int
	fraction    float64
	csv         string
	noCSV       bool
	group       int
	chart       string
	preview     string
	previewSize int
	colour      string
	debug       bool
	version     bool
}

// parseFlags reads the command line. A nil config without error means usage
// or version output was requested.
func parseFlags(args []string, stderr io.Writer) (*config, error) {
	fs := flag.NewFlagSet("docfilter", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	var c config
	fs.StringVar(&c.output, "o", "", "greyscale output (default <input>-backgroundRemoved.bmp)")
	fs.StringVar(&c.mode, "mode", "zones", "background removal: global, zones or zone-count")
	fs.IntVar(&c.zoneSize, "zone-size", document.DefaultZoneSize, "zone side in pixels for -mode zones")
	fs.IntVar(&c.zones, "zones", document.DefaultZoneCount, "number of zones for -mode zone-count")
	fs.Float64Var(&c.fraction, "fraction", document.DefaultBackground.Fraction, "share of the peak count that ends the background")
	fs.StringVar(&c.csv, "csv", "", "histogram CSV of the result (default <input>.csv)")
	fs.BoolVar(&c.noCSV, "no-csv", false, "do not write the histogram CSV")
	fs.IntVar(&c.group, "group", 1, "grey shades per CSV row")
	fs.StringVar(&c.chart, "chart", "", "PNG chart of the histogram before and after")
	fs.StringVar(&c.preview, "preview", "", "downscaled preview of the result, by extension")
	fs.IntVar(&c.previewSize, "preview-size", report.DefaultPreviewSize, "longest preview side in pixels")
	fs.StringVar(&c.colour, "colour", "", "also write the colour image")
	fs.BoolVar(&c.debug, "debug", false, "debug logging")
	fs.BoolVar(&c.version, "version", false, "print version information")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.version {
		return nil, nil
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return nil, errors.New("expected one input file")
	}

	c.input = fs.Arg(0)
	base := strings.TrimSuffix(c.input, filepath.Ext(c.input))
	if c.output == "" {
		c.output = base + "-backgroundRemoved.bmp"
	}
	switch {
	case c.noCSV:
		c.csv = ""
	case c.csv == "":
		c.csv = base + ".csv"
	}
	switch c.mode {
	case "global", "zones", "zone-count":
	default:
		return nil, fmt.Errorf("unknown -mode %q", c.mode)
	}
	return &c, nil
}

func initLogger(debug bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetLevel(logrus.InfoLevel)
	if debug || os.Getenv("DOCFILTER_LOG_LEVEL") == "debug" {
		log.SetLevel(logrus.DebugLevel)
		log.Debug("Debug logging enabled")
	}
	return log
}

// run filters one document and writes every requested output.
func run(c *config, stdout io.Writer, log *logrus.Logger) error {
	b := document.DefaultBackground
	b.Fraction = c.fraction
	if err := b.Validate(); err != nil {
		return err
	}

	start := time.Now()
	im, err := store.Open(c.input)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"path":   c.input,
		"width":  im.Width(),
		"height": im.Height(),
	}).Info("loaded document")

	before := im.Histogram(document.Whole())

	var zones []document.Zone
	switch c.mode {
	case "global":
		zones = []document.Zone{{Region: im.Bounds(), Threshold: b.Remove(im, document.Whole())}}
	case "zones":
		zones, err = b.RemoveInZones(im, c.zoneSize, document.Whole())
	case "zone-count":
		zones, err = b.RemoveInZoneCount(im, c.zones, document.Whole())
	}
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"mode":    c.mode,
		"zones":   len(zones),
		"elapsed": time.Since(start),
	}).Info("removed background")
	for _, z := range zones {
		log.WithFields(logrus.Fields{"region": z.Region, "peak": z.Threshold.Peak, "start": z.Threshold.Start}).Debug("zone")
	}

	if err := store.Save(im, c.output, bmp.Greyscale, document.FormatUnknown); err != nil {
		return err
	}
	log.WithField("path", c.output).Info("wrote greyscale document")

	if err := report.WriteUsage(stdout, filepath.Base(c.input), im.InkUsage()); err != nil {
		return err
	}

	after := im.Histogram(document.Whole())
	if c.csv != "" {
		if err := report.WriteCSVFile(c.csv, c.group, &after); err != nil {
			return err
		}
		log.WithField("path", c.csv).Info("wrote histogram")
	}
	if c.chart != "" {
		if err := writeChart(c.chart, filepath.Base(c.input), &before, &after); err != nil {
			return err
		}
		log.WithField("path", c.chart).Info("wrote chart")
	}
	if c.preview != "" {
		if err := report.WritePreview(c.preview, im, c.previewSize); err != nil {
			return err
		}
		log.WithField("path", c.preview).Info("wrote preview")
	}
	if c.colour != "" {
		if err := store.Save(im, c.colour, bmp.Colour, document.FormatUnknown); err != nil {
			return err
		}
		log.WithField("path", c.colour).Info("wrote colour document")
	}
	return nil
}

func writeChart(path, title string, before, after *document.Histogram) error {
	o, err := renameio.TempFile("", path)
	if err != nil {
		return fmt.Errorf("failed to create chart: %w", err)
	}
	defer o.Cleanup()

	err = report.WriteChart(o, title,
		report.Series{Name: "original", Histogram: before},
		report.Series{Name: "background removed", Histogram: after},
	)
	if err != nil {
		return err
	}
	return o.CloseAtomicallyReplace()
}

func main() {
	c, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "docfilter: %v\n", err)
		os.Exit(1)
	}
	if c == nil {
		fmt.Printf("docfilter %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	}

	log := initLogger(c.debug)
	if err := run(c, os.Stdout, log); err != nil {
		log.WithError(err).Error("docfilter failed")
		os.Exit(1)
	}
}
