package memory

import (
	"context"
)

type Config struct {
	Template string
}

// Store отдает шаблон, заданный при создании.
type Store struct {
	template string
}

func NewStore(conf *Config) *Store {
	if conf == nil {
		return &Store{}
	}

	return &Store{template: conf.Template}
}

func (s *Store) Load(_ context.Context) (string, error) {
	return s.template, nil
}
