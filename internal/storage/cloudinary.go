package storage

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Cloudinary stores uploads in a Cloudinary folder and returns secure URLs.
type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinary(url, folder string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, err
	}
	return &Cloudinary{cld: cld, folder: folder}, nil
}

func (s *Cloudinary) Upload(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if _, err := validateImage(file); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		log.Printf("[UPLOAD] cloudinary: failed to open upload %s: %v", file.Filename, err)
		return "", err
	}
	defer src.Close()

	resp, err := s.cld.Upload.Upload(ctx, src, uploader.UploadParams{Folder: s.folder})
	if err != nil {
		log.Printf("[UPLOAD] cloudinary: upload failed for %s: %v", file.Filename, err)
		return "", err
	}
	if resp.Error.Message != "" {
		log.Printf("[UPLOAD] cloudinary: upload rejected for %s: %s", file.Filename, resp.Error.Message)
		return "", fmt.Errorf("cloudinary upload failed: %s", resp.Error.Message)
	}

	log.Printf("[UPLOAD] cloudinary: stored %s as %s", file.Filename, resp.PublicID)
	return resp.SecureURL, nil
}
