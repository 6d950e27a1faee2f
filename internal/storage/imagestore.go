// AngelaMos | 2026
// imagestore.go

package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ImageStore persists an uploaded image and returns a durable URL. Upload
// failures are non-fatal to callers: a record can exist without an image.
type ImageStore interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
}

// DiskStore keeps images on the local filesystem and serves them under
// /uploads/. A remote object store can replace it behind the same interface.
type DiskStore struct {
	dir     string
	baseURL string
}

func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}

	return &DiskStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (s *DiskStore) Save(
	ctx context.Context,
	filename string,
	r io.Reader,
) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := sanitizeFilename(filename)
	name = fmt.Sprintf("%d-%s", time.Now().UnixMilli(), name)

	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()         //nolint:errcheck // cleanup on write failure
		_ = os.Remove(path)   //nolint:errcheck // cleanup on write failure
		return "", fmt.Errorf("write image file: %w", err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close image file: %w", err)
	}

	return s.baseURL + "/uploads/" + name, nil
}

// FileServer exposes the stored images read-only.
func (s *DiskStore) FileServer() http.Handler {
	return http.StripPrefix(
		"/uploads/",
		http.FileServer(http.Dir(s.dir)),
	)
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "-")

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		}
	}

	if b.Len() == 0 {
		return "upload"
	}

	return b.String()
}
