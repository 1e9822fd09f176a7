package store

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"cloud.google.com/go/storage"
)

// GCSImageStore deletes recipe images from the Cloud Storage bucket they were
// uploaded to.
type GCSImageStore struct {
	bucket *storage.BucketHandle
}

// NewGCSImageStore wraps an existing bucket handle.
func NewGCSImageStore(bucket *storage.BucketHandle) *GCSImageStore {
	return &GCSImageStore{bucket: bucket}
}

// ParseImageObject extracts the bucket-relative object path from a download
// URL of the form https://.../o/<url-escaped path>?<token>. The path segment
// is percent-decoded before use.
func ParseImageObject(imageURL string) (string, error) {
	decoded, err := url.QueryUnescape(imageURL)
	if err != nil {
		return "", fmt.Errorf("failed to decode image URL: %w", err)
	}
	start := strings.Index(decoded, "/o/")
	if start < 0 {
		return "", fmt.Errorf("no object path in image URL %q", imageURL)
	}
	object := decoded[start+len("/o/"):]
	if end := strings.Index(object, "?"); end >= 0 {
		object = object[:end]
	}
	if object == "" {
		return "", fmt.Errorf("empty object path in image URL %q", imageURL)
	}
	return object, nil
}

func (s *GCSImageStore) DeleteImage(ctx context.Context, imageURL string) error {
	object, err := ParseImageObject(imageURL)
	if err != nil {
		return err
	}
	if err := s.bucket.Object(object).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete image object %s: %w", object, err)
	}
	return nil
}
