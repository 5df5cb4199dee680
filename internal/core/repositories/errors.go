package repositories

import "errors"

var (
	// ErrNotFound используется, когда шаблон не найден в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrBadEncoding используется, когда шаблон не является корректным UTF-8.
	ErrBadEncoding = errors.New("bad encoding")
)
