package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/shelfhq/shelf/internal/client/models"
	"github.com/shelfhq/shelf/internal/common"
	"github.com/shelfhq/shelf/internal/filex"
)

const downloadsDir = "downloads"

// promptID asks for a numeric document id.
func (a *App) promptID(ctx context.Context) (int64, error) {
	s, err := getSimpleText(a.reader, "Enter document id", os.Stdout)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		fmt.Println("Not a valid id:", s)
		return 0, err
	}
	return id, nil
}

// List prints the document directory. The server is asked first; if it is
// unreachable the cached mirror is shown instead, marked as such.
func (a *App) List(ctx context.Context) error {
	docs, err := a.docs.Refresh(ctx)
	if err != nil {
		if !errors.Is(err, common.ErrUnavailable) {
			log.Println(err.Error())
			return err
		}
		docs, err = a.docs.Cached(ctx)
		if err != nil {
			log.Println(err.Error())
			return err
		}
		fmt.Println("Server unavailable, showing cached documents:")
	}

	if len(docs) == 0 {
		fmt.Println("No documents yet.")
		return nil
	}
	for _, d := range docs {
		printDocument(&d)
	}
	return nil
}

// Upload prompts for a file path and sends the file to the server. The file
// must be a PDF and the subscription must allow it; rejected uploads never
// reach the network.
func (a *App) Upload(ctx context.Context) error {
	path, err := getSimpleText(a.reader, "Enter path to a PDF file", os.Stdout)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Cannot read file: %s", err.Error())
		return err
	}

	doc, err := a.docs.Upload(ctx, filepath.Base(path), content)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrInvalidFileType):
			fmt.Println("Only PDF files can be uploaded.")
		case errors.Is(err, common.ErrSubscriptionRequired):
			fmt.Println("An active subscription is required to upload. See 'plan'.")
		case errors.Is(err, common.ErrStorageLimitExceeded):
			fmt.Println("This file does not fit in your storage quota.")
		default:
			log.Printf("Upload unsuccessful: %s", err.Error())
		}
		return err
	}

	fmt.Printf("Uploaded %s (id %d)\n", doc.Filename, doc.ID)
	return nil
}

// Show prints one cached document record.
func (a *App) Show(ctx context.Context) error {
	id, err := a.promptID(ctx)
	if err != nil {
		return err
	}

	doc, err := a.docs.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			fmt.Println("No such document. Try 'list' to refresh.")
		} else {
			log.Println(err.Error())
		}
		return err
	}
	printDocument(doc)
	return nil
}

// Delete removes a document on the server and drops it from the cache.
func (a *App) Delete(ctx context.Context) error {
	id, err := a.promptID(ctx)
	if err != nil {
		return err
	}

	if err := a.docs.Delete(ctx, id); err != nil {
		log.Printf("Delete unsuccessful: %s", err.Error())
		return err
	}
	fmt.Println("Deleted.")
	return nil
}

// Download saves a document's bytes into the downloads directory.
func (a *App) Download(ctx context.Context) error {
	id, err := a.promptID(ctx)
	if err != nil {
		return err
	}

	data, err := a.docs.Download(ctx, id)
	if err != nil {
		log.Printf("Download unsuccessful: %s", err.Error())
		return err
	}

	name := fmt.Sprintf("document-%d.pdf", id)
	if doc, err := a.docs.Get(ctx, id); err == nil && doc.Filename != "" {
		name = doc.Filename
	}

	dir, err := filex.EnsureSubDir(downloadsDir)
	if err != nil {
		return err
	}
	path := filepath.Join(dir, name)
	if err := filex.WriteFileAtomic(path, data, 0o644); err != nil {
		log.Printf("Saving unsuccessful: %s", err.Error())
		return err
	}

	fmt.Println("Saved to", path)
	return nil
}

func printDocument(d *models.Document) {
	fmt.Printf("%4d  %-40s %10s  %s\n", d.ID, d.Filename, formatSize(d.SizeBytes), d.CreatedAt.Format("2006-01-02 15:04"))
}

// formatSize renders a byte count in a human-friendly unit.
func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
