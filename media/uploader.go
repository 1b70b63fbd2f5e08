// Package media stores uploaded images and hands back durable URLs.
package media

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"medibook/config"

	"github.com/google/uuid"
)

// Uploader accepts an uploaded file and returns a durable URL for it.
type Uploader interface {
	Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader, folder string) (string, error)
}

// Default is chosen at startup: S3 when a bucket is configured, the local
// uploads directory otherwise.
var Default Uploader

func Init() error {
	if config.S3Bucket != "" {
		up, err := NewS3Uploader()
		if err != nil {
			return fmt.Errorf("init s3 uploader: %w", err)
		}
		Default = up
		return nil
	}
	Default = NewLocalUploader(config.UploadDir)
	return nil
}

// Upload stores the file with the configured default uploader.
func Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader, folder string) (string, error) {
	return Default.Upload(ctx, file, header, folder)
}

func objectName(header *multipart.FileHeader) string {
	return uuid.New().String() + filepath.Ext(header.Filename)
}
