// Package file реализует хранилище шаблона страницы в файле.
//
// Файл читается заново при каждом вызове Load, кэширования нет:
// изменения шаблона видны в следующем запросе.
//
// Отсутствующий файл возвращает repositories.ErrNotFound,
// файл, не являющийся корректным UTF-8, возвращает repositories.ErrBadEncoding.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"unicode/utf8"

	"readtime/internal/core/repositories"
)

// Store структура для чтения шаблона из файла.
type Store struct {
	path string
}

// NewStore создает новый Store.
func NewStore(conf *Config) (*Store, error) {
	if conf == nil || conf.FilePath == "" {
		return nil, errors.New("empty template path")
	}

	return &Store{path: conf.FilePath}, nil
}

// Load читает шаблон из файла.
func (s *Store) Load(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("can't load template: %w", err)
	}

	bytes, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("template %s: %w", s.path, repositories.ErrNotFound)
		}
		return "", fmt.Errorf("can't read template: %w", err)
	}

	if !utf8.Valid(bytes) {
		return "", fmt.Errorf("template %s: %w", s.path, repositories.ErrBadEncoding)
	}

	return string(bytes), nil
}
