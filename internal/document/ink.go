package document

import "github.com/ironsheep/greyscale-document-filter/internal/pixel"

// Ink returns the current ink sum of the greyscale grid, the sum of
// 255 - Y over all pixels.
func (im *Image) Ink() uint64 {
	im.EnsureGreyscale()
	var ink uint64
	for _, g := range im.grey {
		ink += uint64(g.Ink())
	}
	return ink
}

// BaselineInk returns the ink sum recorded at the first greyscale
// derivation, deriving now if that has not happened yet.
func (im *Image) BaselineInk() uint64 {
	im.EnsureGreyscale()
	return im.baselineInk
}

// InkUsage compares the ink of the unmodified page with the ink it needs now.
//
// One toner unit is the ink of one fully black pixel (255).
type InkUsage struct {
	Baseline uint64 `json:"baseline"`
	Current  uint64 `json:"current"`
}

// InkUsage measures the image against its baseline.
func (im *Image) InkUsage() InkUsage {
	return InkUsage{Baseline: im.BaselineInk(), Current: im.Ink()}
}

// Saved returns the ink removed since the baseline. Darkening the page past
// its baseline saves nothing.
func (u InkUsage) Saved() uint64 {
	if u.Current >= u.Baseline {
		return 0
	}
	return u.Baseline - u.Current
}

// SavedPercent returns Saved as a percentage of Baseline, 0 for a blank page.
func (u InkUsage) SavedPercent() float64 {
	if u.Baseline == 0 {
		return 0
	}
	return float64(u.Saved()) / float64(u.Baseline) * 100
}

// BaselineUnits returns Baseline in black-pixel units.
func (u InkUsage) BaselineUnits() float64 {
	return float64(u.Baseline) / pixel.MaxLuminance
}

// CurrentUnits returns Current in black-pixel units.
func (u InkUsage) CurrentUnits() float64 {
	return float64(u.Current) / pixel.MaxLuminance
}

// SavedUnits returns Saved in black-pixel units.
func (u InkUsage) SavedUnits() float64 {
	return float64(u.Saved()) / pixel.MaxLuminance
}
