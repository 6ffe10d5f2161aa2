// Package imagestore persists uploaded recipe images. The disk store writes
// into a public directory served by the HTTP layer; the GCS store is the
// object-storage backend the public directory stands in for.
package imagestore

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
)

// Store saves image payloads under collision-resistant names and returns both
// the public URL to embed in a record and an opaque ref usable for removal.
type Store interface {
	Save(ctx context.Context, filename, contentType string, r io.Reader) (url string, ref string, err error)
	Remove(ctx context.Context, ref string) error
}

// objectName builds a timestamp-prefixed, path-safe name for an upload.
func objectName(filename string) string {
	base := filepath.Base(filename)
	base = strings.ReplaceAll(base, " ", "_")
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "image"
	}
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), base)
}
