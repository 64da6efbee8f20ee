package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Upload carries an incoming file independent of the HTTP layer.
type Upload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// SavedFile describes a persisted profile photo.
type SavedFile struct {
	Filename         string
	OriginalFilename string
	Path             string
	Size             int64
}

// FileService validates and persists profile photos on local disk.
type FileService struct {
	uploadDir   string
	maxSize     int64
	allowedExts map[string]bool
	log         *zap.Logger
}

// NewFileService creates a FileService. Extensions are matched without the
// leading dot, case-insensitively.
func NewFileService(uploadDir string, maxSize int64, allowedExts []string, log *zap.Logger) *FileService {
	allowed := make(map[string]bool, len(allowedExts))
	for _, ext := range allowedExts {
		allowed[strings.ToLower(ext)] = true
	}
	return &FileService{
		uploadDir:   uploadDir,
		maxSize:     maxSize,
		allowedExts: allowed,
		log:         log,
	}
}

// Validate checks the file name and size against the configured limits.
func (s *FileService) Validate(filename string, size int64) error {
	if filename == "" {
		return &ValidationError{Field: "profile_photo", Message: "no file provided"}
	}
	ext := extOf(filename)
	if ext == "" || !s.allowedExts[ext] {
		exts := make([]string, 0, len(s.allowedExts))
		for e := range s.allowedExts {
			exts = append(exts, strings.ToUpper(e))
		}
		return &ValidationError{
			Field:   "profile_photo",
			Message: fmt.Sprintf("only %s files are allowed", strings.Join(exts, ", ")),
		}
	}
	if size > s.maxSize {
		return &ValidationError{
			Field:   "profile_photo",
			Message: fmt.Sprintf("file size must be under %.1fMB", float64(s.maxSize)/1024/1024),
		}
	}
	return nil
}

// SaveProfilePhoto validates and writes the upload to the upload directory.
// The stored name is {driverID}_{timestamp}.{ext} so retries cannot collide
// across drivers.
func (s *FileService) SaveProfilePhoto(upload Upload, driverID string) (*SavedFile, error) {
	if err := s.Validate(upload.Filename, upload.Size); err != nil {
		return nil, err
	}

	ext := extOf(upload.Filename)
	timestamp := time.Now().UTC().Format("20060102_150405")
	newName := fmt.Sprintf("%s_%s.%s", driverID, timestamp, ext)

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	path := filepath.Join(s.uploadDir, newName)
	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, upload.Content)
	if err != nil {
		return nil, fmt.Errorf("write file: %w", err)
	}

	return &SavedFile{
		Filename:         newName,
		OriginalFilename: upload.Filename,
		Path:             path,
		Size:             written,
	}, nil
}

// DeleteFile removes a stored file. Best effort: missing files and removal
// failures are logged, never raised.
func (s *FileService) DeleteFile(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := os.Remove(path); err != nil {
		s.log.Warn("failed to delete file", zap.String("path", path), zap.Error(err))
	}
}

func extOf(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return strings.TrimPrefix(ext, ".")
}
