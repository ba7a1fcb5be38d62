package render

import "image"

// Decoder turns a validated PDF byte buffer into a page-addressable document.
// It is the pipeline's only view of the PDF library, which keeps the state
// machine testable without cgo.
type Decoder interface {
	Decode(data []byte) (Document, error)
}

// Document is one decoded PDF held for the lifetime of a render session.
type Document interface {
	// PageCount returns the total number of pages.
	PageCount() int
	// RenderPage rasterizes one page (1-based) at the given zoom factor,
	// where scale 1.0 maps onto the document's native 72 DPI.
	RenderPage(page int, scale float64) (image.Image, error)
	// Close releases the decoded handle.
	Close() error
}
