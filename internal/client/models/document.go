package models

import "time"

// Document is the server-held metadata record for one uploaded file.
// The canonical copy lives server-side; the client keeps a read-through
// cache that is replaced wholesale on list.
type Document struct {
	ID         int64     `json:"id"`
	Filename   string    `json:"filename"`
	SizeBytes  int64     `json:"file_size"`
	MimeType   string    `json:"mime_type"`
	StorageKey string    `json:"storage_key"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
