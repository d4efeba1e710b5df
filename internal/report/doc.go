// Package report renders analysis results of document images: histogram CSV
// files, per-row shade dumps, the toner usage summary, histogram charts and
// downscaled previews.
//
// Writers take an io.Writer; the *File variants write atomically through a
// temporary file.
package report
