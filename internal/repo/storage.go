package repo

import (
	"context"
	"errors"
	"io"
)

// MaterialStorage - объектное хранилище PDF-файлов
type MaterialStorage interface {
	// Upload загружает объект. Существующий объект не перезаписывается: возвращается ErrObjectExists.
	Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string) error
	// PublicURL возвращает постоянный публичный адрес объекта
	PublicURL(path string) string
	// Get читает объект целиком
	Get(ctx context.Context, path string) ([]byte, error)
	// Remove удаляет объект. Удаление отсутствующего объекта не считается ошибкой.
	Remove(ctx context.Context, path string) error
}

var (
	ErrObjectExists   = errors.New("object already exists")
	ErrObjectNotFound = errors.New("object not found")
)
