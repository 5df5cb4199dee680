// Package store выбирает хранилище шаблона страницы.
//
// Если передана конфигурация file.Config, шаблон читается из файла при каждом запросе.
//
//	fileConfig := &file.Config{
//		FilePath: "output.html",
//	}
//
// Если передана конфигурация memory.Config, шаблон берется из памяти.
// Без конфигурации используется встроенный резервный шаблон.
package store

import (
	"context"
	"fmt"

	"readtime/internal/core/services"
	"readtime/internal/infra/store/file"
	"readtime/internal/infra/store/memory"
)

// Store интерфейс для получения шаблона.
type Store interface {
	Load(ctx context.Context) (string, error)
}

// NewStore создает новый экземпляр Store.
func NewStore(conf Config) (Store, error) {
	switch {
	case conf.File != nil:
		store, err := file.NewStore(conf.File)
		if err != nil {
			return nil, fmt.Errorf("can't create file store: %w", err)
		}

		return store, nil
	case conf.Memory != nil:
		return memory.NewStore(conf.Memory), nil
	default:
		return memory.NewStore(&memory.Config{Template: services.FallbackTemplate}), nil
	}
}
