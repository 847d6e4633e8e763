package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"listing-portal/internal/contextkeys"
	"listing-portal/internal/core/domain"
	"listing-portal/internal/core/port"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// sniffLen - сколько байт читает mimetype для определения типа.
const sniffLen = 3072

// DiskImageStorage сохраняет изображения в каталог загрузок под сгенерированными именами.
type DiskImageStorage struct {
	dir string
}

func NewDiskImageStorage(dir string) (*DiskImageStorage, error) {
	if dir == "" {
		return nil, fmt.Errorf("upload directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &DiskImageStorage{dir: dir}, nil
}

// Dir - каталог загрузок, из которого файлы раздаются по /uploads/.
func (s *DiskImageStorage) Dir() string {
	return s.dir
}

// SaveImage определяет тип по содержимому и принимает только image/*.
// Пустые и не-изображения возвращают domain.ErrNotAnImage.
func (s *DiskImageStorage) SaveImage(ctx context.Context, upload domain.ImageUpload) (string, error) {
	storageLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "DiskImageStorage",
		"file":      upload.Filename,
	})

	if upload.Content == nil {
		return "", fmt.Errorf("%s: %w", upload.Filename, domain.ErrNotAnImage)
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(upload.Content, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read upload %s: %w", upload.Filename, err)
	}
	head = head[:n]
	if n == 0 {
		return "", fmt.Errorf("%s is empty: %w", upload.Filename, domain.ErrNotAnImage)
	}

	mtype := mimetype.Detect(head)
	if !strings.HasPrefix(mtype.String(), "image/") {
		storageLogger.Warn("Rejected upload with non-image content", port.Fields{"mime": mtype.String()})
		return "", fmt.Errorf("%s has type %s: %w", upload.Filename, mtype.String(), domain.ErrNotAnImage)
	}

	name := uuid.NewString() + mtype.Extension()
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}

	written, err := io.Copy(f, io.MultiReader(bytes.NewReader(head), upload.Content))
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	storageLogger.Debug("Image stored", port.Fields{"stored_as": name, "bytes": written, "mime": mtype.String()})
	return name, nil
}

// DeleteImage удаляет файл из каталога загрузок. Имя должно быть голым
// именем файла, отсутствующий файл не считается ошибкой.
func (s *DiskImageStorage) DeleteImage(ctx context.Context, name string) error {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return fmt.Errorf("invalid image name %q", name)
	}

	path := filepath.Join(s.dir, name)
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}

	contextkeys.LoggerFromContext(ctx).Debug("Image deleted", port.Fields{"component": "DiskImageStorage", "file": name})
	return nil
}
