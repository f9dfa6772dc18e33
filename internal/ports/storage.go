package ports

import "context"

// ObjectStorage holds uploaded artist images. PublicURL must return a URL
// that satisfies the image validation rules once persisted.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	PublicURL(key string) string
}
