package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"listing-portal/internal/core/domain"
)

// минимальный PNG: сигнатура и заголовок IHDR
var pngBytes = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89,
}

func TestSaveImageStoresPNG(t *testing.T) {
	dir := t.TempDir()
	s, err := NewDiskImageStorage(dir)
	if err != nil {
		t.Fatalf("NewDiskImageStorage: %v", err)
	}

	name, err := s.SaveImage(context.Background(), domain.ImageUpload{
		Filename: "kitchen.png",
		Content:  bytes.NewReader(pngBytes),
	})
	if err != nil {
		t.Fatalf("SaveImage: %v", err)
	}
	if !strings.HasSuffix(name, ".png") || name == "kitchen.png" {
		t.Errorf("stored name = %q, want generated .png name", name)
	}

	stored, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if !bytes.Equal(stored, pngBytes) {
		t.Error("stored content differs from upload")
	}
}

func TestSaveImageRejectsNonImages(t *testing.T) {
	s, _ := NewDiskImageStorage(t.TempDir())

	cases := map[string][]byte{
		"notes.txt":  []byte("just some text, definitely not a picture"),
		"empty.jpg":  nil,
		"script.png": []byte("#!/bin/sh\necho hi\n"),
	}
	for filename, content := range cases {
		_, err := s.SaveImage(context.Background(), domain.ImageUpload{Filename: filename, Content: bytes.NewReader(content)})
		if !errors.Is(err, domain.ErrNotAnImage) {
			t.Errorf("%s: err = %v, want ErrNotAnImage", filename, err)
		}
	}
}

func TestDeleteImage(t *testing.T) {
	dir := t.TempDir()
	s, _ := NewDiskImageStorage(dir)
	ctx := context.Background()

	name, err := s.SaveImage(ctx, domain.ImageUpload{Filename: "a.png", Content: bytes.NewReader(pngBytes)})
	if err != nil {
		t.Fatalf("SaveImage: %v", err)
	}

	if err := s.DeleteImage(ctx, name); err != nil {
		t.Fatalf("DeleteImage: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, name)); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("file still present after delete: %v", err)
	}

	// повторное удаление не ошибка
	if err := s.DeleteImage(ctx, name); err != nil {
		t.Fatalf("second DeleteImage: %v", err)
	}

	for _, bad := range []string{"", "..", "../etc/passwd", "sub/x.png"} {
		if err := s.DeleteImage(ctx, bad); err == nil {
			t.Errorf("DeleteImage(%q) succeeded, want error", bad)
		}
	}
}
