package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/storage"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/validation"
)

var ErrStorageDisabled = errors.New("image storage not configured")

// ImageService uploads course cover images. A nil storage disables uploads.
type ImageService struct {
	storage storage.Storage
}

func NewImageService(storage storage.Storage) *ImageService {
	return &ImageService{storage: storage}
}

func (s *ImageService) Enabled() bool {
	return s != nil && s.storage != nil
}

// UploadCourseImage validates and stores the file and returns its object key
// and public URL.
func (s *ImageService) UploadCourseImage(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, string, error) {
	if !s.Enabled() {
		return "", "", ErrStorageDisabled
	}

	err := validation.ValidateFile(header, validation.ImageConstraints)
	if err != nil {
		return "", "", err
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	key := path.Join("public", "cursos", uuid.New().String()+ext)

	err = s.storage.Save(ctx, key, file, header.Header.Get("Content-Type"))
	if err != nil {
		return "", "", fmt.Errorf("failed to save image: %w", err)
	}

	return key, s.storage.URL(key), nil
}

// Discard removes an uploaded image whose course could not be saved.
func (s *ImageService) Discard(ctx context.Context, key string) {
	if !s.Enabled() || key == "" {
		return
	}

	err := s.storage.Delete(ctx, key)
	if err != nil {
		slog.Error("failed to delete image from storage during cleanup", "error", err, "key", key)
	}
}
