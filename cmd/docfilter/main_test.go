package main

import (
	"bytes"
	"errors"
	"flag"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/greyscale-document-filter/internal/bmp"
	"github.com/ironsheep/greyscale-document-filter/internal/document"
	"github.com/ironsheep/greyscale-document-filter/internal/pixel"
)

// createScan writes an 8x8 page of 200 grey paper with a dark line of text on
// row 3 and returns its path.
func createScan(t *testing.T, dir string) string {
	t.Helper()
	im, err := document.New(8, 8)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			c := pixel.RGB{R: 200, G: 200, B: 200}
			if y == 3 {
				c = pixel.RGB{R: 100, G: 100, B: 100}
			}
			im.SetColour(x, y, c)
		}
	}
	path := filepath.Join(dir, "scan.bmp")
	if err := bmp.WriteFile(path, im, bmp.Colour); err != nil {
		t.Fatalf("failed to write scan: %v", err)
	}
	return path
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestParseFlags_Defaults(t *testing.T) {
	c, err := parseFlags([]string{"/scans/page.bmp"}, io.Discard)
	if err != nil {
		t.Fatalf("parseFlags failed: %v", err)
	}

	tests := []struct {
		name      string
		got, want interface{}
	}{
		{"input", c.input, "/scans/page.bmp"},
		{"output", c.output, "/scans/page-backgroundRemoved.bmp"},
		{"csv", c.csv, "/scans/page.csv"},
		{"mode", c.mode, "zones"},
		{"zone size", c.zoneSize, document.DefaultZoneSize},
		{"zones", c.zones, document.DefaultZoneCount},
		{"fraction", c.fraction, 0.15},
		{"group", c.group, 1},
		{"preview size", c.previewSize, 1024},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestParseFlags(t *testing.T) {
	c, err := parseFlags([]string{"-o", "out.bmp", "-no-csv", "-mode", "global", "-fraction", "0.3", "page.bmp"}, io.Discard)
	if err != nil {
		t.Fatalf("parseFlags failed: %v", err)
	}
	if c.output != "out.bmp" || c.csv != "" || c.mode != "global" || c.fraction != 0.3 {
		t.Errorf("config: got %+v", c)
	}

	c, err = parseFlags([]string{"-csv", "hist.csv", "page.bmp"}, io.Discard)
	if err != nil || c.csv != "hist.csv" {
		t.Errorf("explicit -csv: got %+v, %v", c, err)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no input", nil},
		{"two inputs", []string{"a.bmp", "b.bmp"}},
		{"bad mode", []string{"-mode", "sideways", "a.bmp"}},
		{"bad number", []string{"-zones", "many", "a.bmp"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			if _, err := parseFlags(tt.args, &stderr); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestParseFlags_HelpAndVersion(t *testing.T) {
	var stderr bytes.Buffer
	if _, err := parseFlags([]string{"-h"}, &stderr); !errors.Is(err, flag.ErrHelp) {
		t.Errorf("-h: got %v, want flag.ErrHelp", err)
	}
	if !strings.HasPrefix(stderr.String(), "Usage: docfilter") {
		t.Errorf("usage text: got %q", stderr.String())
	}
	if strings.Contains(stderr.String(), `(default "-")`) {
		t.Errorf("usage text shows a placeholder default: %q", stderr.String())
	}

	c, err := parseFlags([]string{"-version"}, io.Discard)
	if err != nil || c != nil {
		t.Errorf("-version: got %v, %v; want nil config", c, err)
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	input := createScan(t, dir)
	c, err := parseFlags([]string{
		"-mode", "global",
		"-chart", filepath.Join(dir, "chart.png"),
		"-preview", filepath.Join(dir, "preview.png"),
		"-preview-size", "4",
		"-colour", filepath.Join(dir, "colour.bmp"),
		input,
	}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}

	var stdout bytes.Buffer
	if err := run(c, &stdout, quietLogger()); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if !strings.HasPrefix(stdout.String(), "scan.bmp:\n") {
		t.Errorf("usage report: got %q", stdout.String())
	}
	if !strings.Contains(stdout.String(), "Difference in percentage:") {
		t.Errorf("usage report missing percentage: %q", stdout.String())
	}

	cleaned, err := bmp.ReadFile(filepath.Join(dir, "scan-backgroundRemoved.bmp"))
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if cleaned.Colour(0, 0) != pixel.WhiteRGB {
		t.Errorf("paper: got %v, want white", cleaned.Colour(0, 0))
	}
	if cleaned.Colour(0, 3) != (pixel.RGB{R: 100, G: 100, B: 100}) {
		t.Errorf("text: got %v, want 100 grey", cleaned.Colour(0, 3))
	}

	csv, err := os.ReadFile(filepath.Join(dir, "scan.csv"))
	if err != nil {
		t.Fatalf("failed to read CSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(csv)), "\n")
	if len(lines) != 257 || lines[101] != "100,8" || lines[256] != "255,56" {
		t.Errorf("CSV: %d lines, shade 100 %q, shade 255 %q", len(lines), lines[101], lines[256])
	}

	for _, name := range []string{"chart.png", "preview.png"} {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		cfg, err := png.DecodeConfig(f)
		f.Close()
		if err != nil {
			t.Errorf("%s is not a PNG: %v", name, err)
		}
		if name == "preview.png" && (cfg.Width != 4 || cfg.Height != 4) {
			t.Errorf("preview size: got %dx%d, want 4x4", cfg.Width, cfg.Height)
		}
	}

	colour, err := bmp.ReadFile(filepath.Join(dir, "colour.bmp"))
	if err != nil {
		t.Fatalf("failed to read colour output: %v", err)
	}
	if colour.Colour(0, 0) != (pixel.RGB{R: 200, G: 200, B: 200}) {
		t.Errorf("colour output: got %v, want the original colour", colour.Colour(0, 0))
	}
}

func TestRun_Zones(t *testing.T) {
	dir := t.TempDir()
	input := createScan(t, dir)
	for _, mode := range []string{"zones", "zone-count"} {
		t.Run(mode, func(t *testing.T) {
			out := filepath.Join(dir, mode+".bmp")
			c, err := parseFlags([]string{"-mode", mode, "-zone-size", "4", "-zones", "4", "-o", out, "-no-csv", input}, io.Discard)
			if err != nil {
				t.Fatal(err)
			}
			if err := run(c, io.Discard, quietLogger()); err != nil {
				t.Fatalf("run failed: %v", err)
			}
			im, err := bmp.ReadFile(out)
			if err != nil {
				t.Fatal(err)
			}
			if im.Colour(7, 7) != pixel.WhiteRGB {
				t.Errorf("paper: got %v, want white", im.Colour(7, 7))
			}
		})
	}
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	input := createScan(t, dir)

	c, _ := parseFlags([]string{"-fraction", "1.5", input}, io.Discard)
	if err := run(c, io.Discard, quietLogger()); !errors.Is(err, document.ErrInvalidBackground) {
		t.Errorf("bad fraction: got %v, want ErrInvalidBackground", err)
	}

	c, _ = parseFlags([]string{"-mode", "zones", "-zone-size", "-1", input}, io.Discard)
	if err := run(c, io.Discard, quietLogger()); !errors.Is(err, document.ErrInvalidZoneSize) {
		t.Errorf("bad zone size: got %v, want ErrInvalidZoneSize", err)
	}

	c, _ = parseFlags([]string{filepath.Join(dir, "missing.bmp")}, io.Discard)
	if err := run(c, io.Discard, quietLogger()); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing input: got %v, want fs.ErrNotExist", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "scan-backgroundRemoved.bmp")); !os.IsNotExist(err) {
		t.Error("failed runs should not write output")
	}
}
