package port

import (
	"context"
	"listing-portal/internal/core/domain"
)

// ImageStoragePort сохраняет загруженные изображения и возвращает имя сохраненного файла.
type ImageStoragePort interface {
	SaveImage(ctx context.Context, upload domain.ImageUpload) (string, error)
	// DeleteImage удаляет файл по имени, которое вернул SaveImage. Отсутствующий файл не ошибка.
	DeleteImage(ctx context.Context, name string) error
}
