package media

import (
	"context"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

const thumbWidth = 200

// LocalUploader writes files under a static directory served by the
// router. Every image gets a sibling thumbnail for list views.
type LocalUploader struct {
	dir string
}

func NewLocalUploader(dir string) *LocalUploader {
	return &LocalUploader{dir: dir}
}

func (u *LocalUploader) Upload(_ context.Context, file multipart.File, header *multipart.FileHeader, folder string) (string, error) {
	name := objectName(header)
	dir := filepath.Join(u.dir, folder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, name)
	out, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err = io.Copy(out, file); err != nil {
		return "", err
	}

	if err := createThumb(path); err != nil {
		log.Printf("thumbnail for %s failed: %v", name, err)
	}

	return "/static/uploads/" + folder + "/" + name, nil
}

// createThumb writes <name>_thumb<ext> next to the original.
func createThumb(path string) error {
	img, err := imaging.Open(path)
	if err != nil {
		return err
	}
	resized := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos) // maintain aspect ratio

	ext := filepath.Ext(path)
	thumbPath := strings.TrimSuffix(path, ext) + "_thumb" + ext
	return imaging.Save(resized, thumbPath)
}
