package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"readtime/internal/core/application"
)

const (
	msPerChar    = application.DefaultMsPerChar
	countSpaces  = application.DefaultCountSpaces
	templateName = "output.html"
)

type configParams struct {
	TemplatePath string `env:"TEMPLATE_PATH"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"error"`
}

func main() {
	var params configParams

	if err := env.Parse(&params); err != nil {
		log.Printf("can't parse env: %v", err)
	}

	if params.TemplatePath == "" {
		params.TemplatePath = defaultTemplatePath()
	}

	logger := newLogger(params.LogLevel)
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(context.Background(), config{
		templatePath: params.TemplatePath,
		logger:       *logger.Sugar(),
	}); err != nil {
		logger.Error("can't write response", zap.Error(err))
	}
}

// defaultTemplatePath возвращает путь к шаблону рядом с исполняемым файлом.
func defaultTemplatePath() string {
	exe, err := os.Executable()
	if err != nil {
		return templateName
	}

	return filepath.Join(filepath.Dir(exe), templateName)
}

// newLogger пишет в stderr. Уровень по умолчанию error: хост может смешивать stderr с ответом.
func newLogger(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.ErrorLevel
	}

	conf := zap.NewDevelopmentConfig()
	conf.Level = zap.NewAtomicLevelAt(lvl)
	conf.OutputPaths = []string{"stderr"}

	logger, err := conf.Build()
	if err != nil {
		return zap.NewNop()
	}

	return logger
}
