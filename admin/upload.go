package admin

import (
	"context"
	"errors"
	"net/http"

	"medibook/media"
	"medibook/utils"
)

// uploadDoctorImage stores the required "image" form file and returns its
// durable URL.
func uploadDoctorImage(ctx context.Context, r *http.Request) (string, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		return "", errors.New("Doctor image missing")
	}
	defer file.Close()

	if !utils.ValidImageFileType(header) {
		return "", errors.New("Invalid file type. Supported formats: JPEG, PNG, WebP, GIF.")
	}

	url, err := media.Upload(ctx, file, header, "doctorpic")
	if err != nil {
		return "", errors.New("Image upload failed")
	}
	return url, nil
}
