package storage

import (
	"context"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LocalDisk writes uploads under a public root on the local filesystem.
// It backs development and test runs where no Cloudinary account is wired.
type LocalDisk struct {
	root   string
	folder string
}

func NewLocalDisk(root, folder string) *LocalDisk {
	return &LocalDisk{root: root, folder: folder}
}

func (s *LocalDisk) Upload(_ context.Context, file *multipart.FileHeader) (string, error) {
	extension, err := validateImage(file)
	if err != nil {
		return "", err
	}

	filename := primitive.NewObjectID().Hex() + extension

	dir := filepath.Join(s.root, "uploads", s.folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("[UPLOAD] local: failed to create directory %s: %v", dir, err)
		return "", err
	}

	fullPath := filepath.Join(dir, filename)

	out, err := os.Create(fullPath)
	if err != nil {
		log.Printf("[UPLOAD] local: failed to create file %s: %v", fullPath, err)
		return "", err
	}
	defer out.Close()

	in, err := file.Open()
	if err != nil {
		log.Printf("[UPLOAD] local: failed to open upload %s: %v", file.Filename, err)
		return "", err
	}
	defer in.Close()

	if _, err := io.Copy(out, in); err != nil {
		log.Printf("[UPLOAD] local: failed to save file %s: %v", fullPath, err)
		return "", err
	}

	return filepath.ToSlash(filepath.Join("/public", "uploads", s.folder, filename)), nil
}
