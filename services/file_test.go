package services

import (
	"os"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestFileService_Validate(t *testing.T) {
	svc := NewFileService(t.TempDir(), 1024, []string{"jpg", "jpeg", "png"}, zap.NewNop())

	tests := []struct {
		name     string
		filename string
		size     int64
		wantErr  bool
	}{
		{"valid png", "photo.png", 512, false},
		{"valid jpg uppercase", "photo.JPG", 512, false},
		{"gif not allowed", "photo.gif", 512, true},
		{"no extension", "photo", 512, true},
		{"too large", "photo.png", 2048, true},
		{"empty filename", "", 512, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Validate(tt.filename, tt.size)
			if tt.wantErr {
				if _, ok := AsValidationError(err); !ok {
					t.Fatalf("expected validation error, got %v", err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestFileService_SaveProfilePhoto(t *testing.T) {
	dir := t.TempDir()
	svc := NewFileService(dir, 1024, []string{"png"}, zap.NewNop())

	upload := Upload{Filename: "me.png", Size: 7, Content: strings.NewReader("pngdata")}
	saved, err := svc.SaveProfilePhoto(upload, "507f1f77bcf86cd799439011")
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if saved.OriginalFilename != "me.png" {
		t.Fatalf("original filename = %q", saved.OriginalFilename)
	}
	if !strings.HasPrefix(saved.Filename, "507f1f77bcf86cd799439011_") || !strings.HasSuffix(saved.Filename, ".png") {
		t.Fatalf("stored filename %q not in driverID_timestamp.ext form", saved.Filename)
	}

	data, err := os.ReadFile(saved.Path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "pngdata" {
		t.Fatalf("file content = %q", data)
	}
	if saved.Size != int64(len("pngdata")) {
		t.Fatalf("size = %d", saved.Size)
	}
}

func TestFileService_DeleteFile(t *testing.T) {
	dir := t.TempDir()
	svc := NewFileService(dir, 1024, []string{"png"}, zap.NewNop())

	upload := Upload{Filename: "me.png", Size: 7, Content: strings.NewReader("pngdata")}
	saved, err := svc.SaveProfilePhoto(upload, "abc123")
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	svc.DeleteFile(saved.Path)
	if _, err := os.Stat(saved.Path); !os.IsNotExist(err) {
		t.Fatalf("file should be gone, stat err = %v", err)
	}

	// Deleting a missing file is a no-op, not a panic or error.
	svc.DeleteFile(saved.Path)
}
