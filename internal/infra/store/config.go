package store

import (
	"readtime/internal/infra/store/file"
	"readtime/internal/infra/store/memory"
)

// Config инициализация конфигурации для хранилища шаблона.
type Config struct {
	File   *file.Config
	Memory *memory.Config
}
