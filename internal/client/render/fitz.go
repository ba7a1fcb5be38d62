package render

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// FitzDecoder decodes PDFs with MuPDF via go-fitz.
type FitzDecoder struct{}

func NewFitzDecoder() *FitzDecoder {
	return &FitzDecoder{}
}

func (FitzDecoder) Decode(data []byte) (Document, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	return &fitzDocument{doc: doc}, nil
}

type fitzDocument struct {
	doc *fitz.Document
}

func (d *fitzDocument) PageCount() int {
	return d.doc.NumPage()
}

func (d *fitzDocument) RenderPage(page int, scale float64) (image.Image, error) {
	// go-fitz pages are zero-based.
	img, err := d.doc.ImageDPI(page-1, 72*scale)
	if err != nil {
		return nil, fmt.Errorf("rasterize page %d: %w", page, err)
	}
	return img, nil
}

func (d *fitzDocument) Close() error {
	return d.doc.Close()
}
