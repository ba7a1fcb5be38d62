package cli

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/shelfhq/shelf/internal/common"
	"github.com/shelfhq/shelf/internal/filex"
)

const pagesDir = "pages"

// View loads a document into the viewer (if it is not the current one
// already), renders the requested page and writes it to a PNG file. The page
// number is clamped into the valid range, so asking for page 999 of a
// two-page document shows the last page.
func (a *App) View(ctx context.Context) error {
	id, err := a.promptID(ctx)
	if err != nil {
		return err
	}

	total, err := a.viewer.Load(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrNotAuthenticated):
			fmt.Println("Please log in first.")
		case errors.Is(err, common.ErrInvalidPDF):
			fmt.Println("This document is not a readable PDF.")
		case errors.Is(err, common.ErrSuperseded):
			// another view took over, nothing to report
		default:
			log.Printf("Viewing unsuccessful: %s", err.Error())
		}
		return err
	}

	pageText, err := getSimpleText(a.reader, fmt.Sprintf("Enter page (1-%d)", total), os.Stdout)
	if err != nil {
		return err
	}
	page, err := strconv.Atoi(pageText)
	if err != nil {
		page = 1
	}
	page = clamp(page, 1, total)

	scale := 1.0
	scaleText, err := getSimpleText(a.reader, "Enter zoom (e.g. 1.0, 1.5, 2.0)", os.Stdout)
	if err != nil {
		return err
	}
	if s, err := strconv.ParseFloat(scaleText, 64); err == nil && s > 0 {
		scale = s
	}

	img, err := a.viewer.RenderPage(page, scale)
	if err != nil {
		log.Printf("Rendering unsuccessful: %s", err.Error())
		return err
	}

	dir, err := filex.EnsureSubDir(pagesDir)
	if err != nil {
		return err
	}
	path := filepath.Join(dir, fmt.Sprintf("document-%d-page-%d.png", id, page))

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Printf("Page %d of %d saved to %s\n", page, total, path)
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
