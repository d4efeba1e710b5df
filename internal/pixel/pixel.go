// Package pixel defines the two value types a document page is made of: an
// 8-bit RGB colour and an 8-bit greyscale luminance.
//
// Both types are plain comparable structs, so equality is the == operator and
// copies are free.
package pixel

import "fmt"

// Luminance weights of the greyscale conversion (ITU-R BT.709).
const (
	RedWeight   = 0.2126
	GreenWeight = 0.7152
	BlueWeight  = 0.0722
)

// MaxLuminance is the luminance of white.
const MaxLuminance = 0xff

// RGB represents an RGB color with 8-bit components.
type RGB struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// Grey represents a single luminance value, 0 is black and 255 is white.
type Grey struct {
	Y uint8 `json:"y"`
}

var (
	// White is the target of every background or colour removal.
	White = Grey{Y: MaxLuminance}
	// Black is the darkest shade.
	Black = Grey{Y: 0}
	// WhiteRGB is the colour counterpart of White.
	WhiteRGB = RGB{R: 0xff, G: 0xff, B: 0xff}
)

// Grey converts the colour to its weighted luminance,
// floor(0.2126·R + 0.7152·G + 0.0722·B).
//
// The weighted sum is truncated, not rounded. Because the products are not
// exact in binary floating point, pure white (255,255,255) evaluates to
// 254.99999999999997 and therefore maps to 254.
func (c RGB) Grey() Grey {
	// The explicit conversions forbid fused multiply-add so every
	// architecture truncates the same sum.
	y := float64(RedWeight*float64(c.R)) +
		float64(GreenWeight*float64(c.G)) +
		float64(BlueWeight*float64(c.B))
	return Grey{Y: uint8(y)}
}

// String returns the colour as "#RRGGBB".
func (c RGB) String() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Ink returns how much ink the shade needs, 255 - Y. White needs none.
func (g Grey) Ink() uint8 {
	return MaxLuminance - g.Y
}

// IsWhite reports whether g is pure white.
func (g Grey) IsWhite() bool {
	return g.Y == MaxLuminance
}

// RGB renders the shade as a neutral colour with all three channels equal to Y.
func (g Grey) RGB() RGB {
	return RGB{R: g.Y, G: g.Y, B: g.Y}
}
