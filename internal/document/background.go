package document

import (
	"errors"
	"fmt"
	"math"

	"github.com/ironsheep/greyscale-document-filter/internal/pixel"
)

var (
	// ErrInvalidZoneSize is returned for a zone side below one pixel.
	ErrInvalidZoneSize = errors.New("zone size must be positive")

	// ErrInvalidZoneCount is returned for a zone count below one.
	ErrInvalidZoneCount = errors.New("zone count must be positive")

	// ErrInvalidBackground is returned by Background.Validate.
	ErrInvalidBackground = errors.New("invalid background parameters")
)

// Zone defaults for the command line filter.
const (
	DefaultZoneSize  = 100
	DefaultZoneCount = 10000
)

// Background holds the parameters of the histogram thresholding.
//
// The background peak is searched in [PeakLow, PeakHigh). From the peak the
// threshold walks toward black while buckets hold more than Fraction of the
// peak count; every shade from the stopping point up to 254 is whitened.
type Background struct {
	PeakLow  int     `json:"peak_low"`
	PeakHigh int     `json:"peak_high"`
	Fraction float64 `json:"fraction"`
}

// DefaultBackground is tuned for scanned office documents: light paper
// between 150 and 250 and a 15% cut-off.
var DefaultBackground = Background{PeakLow: 150, PeakHigh: 250, Fraction: 0.15}

// Validate checks that the peak window lies inside [0, 256) and is not
// empty, and that Fraction is in [0, 1].
func (b Background) Validate() error {
	if b.PeakLow < 0 || b.PeakHigh > Levels || b.PeakLow >= b.PeakHigh {
		return fmt.Errorf("%w: peak window [%d,%d)", ErrInvalidBackground, b.PeakLow, b.PeakHigh)
	}
	if math.IsNaN(b.Fraction) || b.Fraction < 0 || b.Fraction > 1 {
		return fmt.Errorf("%w: fraction %v", ErrInvalidBackground, b.Fraction)
	}
	return nil
}

// Threshold is the outcome of one thresholding pass.
type Threshold struct {
	// Peak is the detected background shade.
	Peak int `json:"peak"`
	// Start is the darkest shade that was whitened.
	Start int `json:"start"`
}

// Zone pairs a processed zone with its threshold.
type Zone struct {
	Region    Region    `json:"region"`
	Threshold Threshold `json:"threshold"`
}

// Threshold derives the background band from a histogram without touching
// any pixels.
func (b Background) Threshold(h *Histogram) Threshold {
	peak := h.Peak(b.PeakLow, b.PeakHigh)
	return Threshold{Peak: peak, Start: h.ThresholdStart(peak, b.Fraction)}
}

// Remove whitens the background band of r in the greyscale grid of im and
// returns the threshold it used.
func (b Background) Remove(im *Image, r Region) Threshold {
	r = r.Normalize(im.width, im.height)
	h := im.Histogram(r)
	t := b.Threshold(&h)
	if !r.Empty() {
		im.CutOutGreys(pixel.Grey{Y: uint8(t.Start)}, pixel.White, r)
	}
	return t
}

// RemoveInZones splits r into zones of roughly zoneSize x zoneSize pixels
// and removes the background of each zone independently.
//
// # Errors
//
//   - ErrInvalidZoneSize if zoneSize < 1
func (b Background) RemoveInZones(im *Image, zoneSize int, r Region) ([]Zone, error) {
	if zoneSize < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidZoneSize, zoneSize)
	}
	return b.removeZones(im, float64(zoneSize), r), nil
}

// RemoveInZoneCount splits r into about zones square zones, each of side
// sqrt(area/zones), and removes the background of each zone independently.
//
// # Errors
//
//   - ErrInvalidZoneCount if zones < 1
func (b Background) RemoveInZoneCount(im *Image, zones int, r Region) ([]Zone, error) {
	if zones < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidZoneCount, zones)
	}
	r = r.Normalize(im.width, im.height)
	if r.Empty() {
		return nil, nil
	}
	side := math.Sqrt(float64(r.Area()) / float64(zones))
	return b.removeZones(im, side, r), nil
}

func (b Background) removeZones(im *Image, side float64, r Region) []Zone {
	im.EnsureGreyscale()
	r = r.Normalize(im.width, im.height)
	regions := Zones(r, side)
	zones := make([]Zone, 0, len(regions))
	for _, z := range regions {
		zones = append(zones, Zone{Region: z, Threshold: b.Remove(im, z)})
	}
	return zones
}

// RemoveBackground removes the background of r with DefaultBackground.
func (im *Image) RemoveBackground(r Region) Threshold {
	return DefaultBackground.Remove(im, r)
}

// RemoveBackgroundInZones is DefaultBackground.RemoveInZones.
func (im *Image) RemoveBackgroundInZones(zoneSize int, r Region) ([]Zone, error) {
	return DefaultBackground.RemoveInZones(im, zoneSize, r)
}

// RemoveBackgroundInZoneCount is DefaultBackground.RemoveInZoneCount.
func (im *Image) RemoveBackgroundInZoneCount(zones int, r Region) ([]Zone, error) {
	return DefaultBackground.RemoveInZoneCount(im, zones, r)
}
