// Package storage persists uploaded recipe images.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/gabbyferm/savory/backend/config"
)

// objectPrefix is the key prefix of recipe images in object stores
const objectPrefix = "recipes/"

// ImageStore saves and removes recipe images. Save returns the public path
// of the stored image; Delete accepts that same path.
type ImageStore interface {
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, publicPath string) error
}

// New builds the store selected by cfg.Driver
func New(ctx context.Context, cfg config.StorageConfig) (ImageStore, error) {
	switch cfg.Driver {
	case config.StorageLocal:
		return NewLocalStore(cfg.LocalDir, cfg.PublicBaseURL)
	case config.StorageS3:
		client, err := config.NewS3Client(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return NewS3Store(client, cfg.Bucket, cfg.Region, cfg.PublicBaseURL), nil
	case config.StorageMinio:
		return NewMinioStore(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}

// objectName extracts the file name from a public path and rejects anything
// that could escape the image directory
func objectName(publicPath string) (string, error) {
	name := path.Base(strings.TrimSpace(publicPath))
	if name == "" || name == "." || name == "/" || name == ".." {
		return "", fmt.Errorf("invalid image path %q", publicPath)
	}
	return name, nil
}

func joinURL(base, name string) string {
	return strings.TrimRight(base, "/") + "/" + name
}
