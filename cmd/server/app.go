package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"readtime/internal/core/application"
	"readtime/internal/infra/api/rest"
	"readtime/internal/infra/store"
	"readtime/internal/infra/store/file"
)

const shutdownTimeout = 5 * time.Second

type config struct {
	logger       zap.SugaredLogger
	templatePath string
	cgiDir       string
	port         int64
	msPerChar    int64
	countSpaces  bool
	pprof        bool
}

func run(ctx context.Context, conf *config) error {
	var storeConfig store.Config
	if conf.templatePath != "" {
		storeConfig.File = &file.Config{
			FilePath: conf.templatePath,
		}
	}

	templates, err := store.NewStore(storeConfig)
	if err != nil {
		return fmt.Errorf("failed to create template store: %w", err)
	}

	newApplication := application.NewApplication(application.Config{
		MsPerChar:   conf.msPerChar,
		CountSpaces: conf.countSpaces,
	}, templates, conf.logger)

	api := rest.NewServerAPI(rest.Config{
		Server:       newApplication,
		Logger:       conf.logger,
		CGIDir:       conf.cgiDir,
		Interpreters: map[string]string{".py": "python3"},
		Port:         conf.port,
		Pprof:        conf.pprof,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- api.Run()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := api.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("can't shutdown server: %w", err)
	}

	conf.logger.Info("server shutdown")

	return <-errCh
}
