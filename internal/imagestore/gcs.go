package imagestore

import (
	"context"
	"fmt"
	"io"
	"path"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSStore writes images to a Google Cloud Storage bucket with public-read
// object URLs.
type GCSStore struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewGCSClient creates a Google Cloud Storage client. If credsPath is empty,
// Application Default Credentials are used.
func NewGCSClient(ctx context.Context, credsPath string) (*storage.Client, error) {
	if credsPath == "" {
		return storage.NewClient(ctx)
	}
	return storage.NewClient(ctx, option.WithCredentialsFile(credsPath))
}

func NewGCSStore(client *storage.Client, bucket string) *GCSStore {
	return &GCSStore{client: client, bucket: bucket, prefix: "recipes"}
}

func (s *GCSStore) Save(ctx context.Context, filename, contentType string, r io.Reader) (string, string, error) {
	objectPath := path.Join(s.prefix, objectName(filename))

	wc := s.client.Bucket(s.bucket).Object(objectPath).NewWriter(ctx)
	wc.ContentType = contentType
	wc.ChunkSize = 0 // disable chunking for small files
	if _, err := io.Copy(wc, r); err != nil {
		_ = wc.Close()
		return "", "", fmt.Errorf("upload object: %w", err)
	}
	if err := wc.Close(); err != nil {
		return "", "", fmt.Errorf("finalize object: %w", err)
	}
	return publicURL(s.bucket, objectPath), objectPath, nil
}

func (s *GCSStore) Remove(ctx context.Context, ref string) error {
	return s.client.Bucket(s.bucket).Object(ref).Delete(ctx)
}

// publicURL builds a public URL for an object (assuming public read access)
func publicURL(bucket, objectPath string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, objectPath)
}

var _ Store = (*GCSStore)(nil)
