package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"readtime/internal/core/application"
	"readtime/internal/infra/cgi"
	"readtime/internal/infra/store"
	"readtime/internal/infra/store/file"
)

type config struct {
	logger       zap.SugaredLogger
	templatePath string
}

func run(ctx context.Context, conf config) error {
	templates, err := store.NewStore(store.Config{
		File: &file.Config{FilePath: conf.templatePath},
	})
	if err != nil {
		conf.logger.Warnw("can't create template store, using fallback", "error", err)
		templates, _ = store.NewStore(store.Config{})
	}

	app := application.NewApplication(application.Config{
		MsPerChar:   msPerChar,
		CountSpaces: countSpaces,
	}, templates, conf.logger)

	req, err := cgi.ParseRequest(nil)
	if err != nil {
		conf.logger.Warnw("can't parse request environment", "error", err)
	}

	if err := cgi.Serve(ctx, app, req, os.Stdin, os.Stdout); err != nil {
		return fmt.Errorf("can't serve request: %w", err)
	}

	return nil
}
