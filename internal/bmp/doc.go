// Package bmp reads and writes uncompressed 24-bit Windows bitmaps.
//
// Only the BITMAPINFOHEADER layout with BI_RGB compression is supported,
// which is what scanners and most image editors produce for "24-bit BMP".
// Rows are stored bottom-up (or top-down for a negative height), each padded
// to a multiple of four bytes, with pixels in B, G, R order. Decoded images
// are [document.Image] values in R, G, B order.
//
// Encoding always regenerates both headers from the image dimensions, so a
// written file is a canonical 54-byte-header bitmap regardless of what the
// source file carried.
package bmp
