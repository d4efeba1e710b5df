// Package document implements the in-memory model of a scanned page and the
// background removal algorithms that clean it up for printing.
//
// An Image owns a colour grid and, once derived, a greyscale grid of the same
// dimensions. The greyscale grid is what gets cleaned: background removal
// finds the dominant light band of the luminance histogram and whitens it,
// either over the whole page or independently per zone.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y increasing downward. Regions use the same
// convention as the rest of the module: (X1,Y1) is inclusive and (X2,Y2) is
// exclusive.
//
// # Greyscale Derivation
//
// The greyscale grid is never derived behind the caller's back by read-only
// accessors. ToGreyscale derives (or re-derives) it explicitly, and
// operations that need grey pixels (histograms, cut-outs, background removal,
// ink usage) call EnsureGreyscale, which derives only when the grid is absent.
//
// The first derivation records the baseline ink sum, the ink the unmodified
// page would need. It is never recomputed; InkUsage compares against it.
//
// # Mutation
//
// Verbs such as CutOutGrey and RemoveBackground modify the image in place.
// The With... constructors and Crop return independent deep copies.
//
// # Thread Safety
//
// An Image is not safe for concurrent mutation. All operations are
// synchronous and run to completion.
package document
