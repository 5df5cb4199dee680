package application

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"

	"readtime/internal/core/model"
	"readtime/internal/core/repositories"
	"readtime/internal/core/services"
)

const (
	DefaultMsPerChar   = 50
	DefaultCountSpaces = true
)

type TemplateStore interface {
	Load(ctx context.Context) (string, error)
}

// Config параметры оценки времени набора.
type Config struct {
	MsPerChar   int64
	CountSpaces bool
}

// DefaultConfig возвращает конфигурацию по умолчанию: 50 мс на символ, пробелы учитываются.
func DefaultConfig() Config {
	return Config{
		MsPerChar:   DefaultMsPerChar,
		CountSpaces: DefaultCountSpaces,
	}
}

type Application struct {
	templates TemplateStore
	logger    zap.SugaredLogger
	conf      Config
}

func NewApplication(conf Config, templates TemplateStore, logger zap.SugaredLogger) *Application {
	return &Application{
		templates: templates,
		logger:    logger,
		conf:      conf,
	}
}

// Render обрабатывает запрос и возвращает страницу.
// Ошибок не бывает: некорректный ввод и недоступный шаблон заменяются значениями по умолчанию.
func (a *Application) Render(ctx context.Context, req model.Request, body io.Reader) model.Page {
	if _, ok := services.ParseLength(req.ContentLength); !ok && req.ContentLength != "" {
		a.logger.Debugw("invalid content length, using 0", "value", req.ContentLength)
	}

	params, err := services.ReadParams(req, body)
	if err != nil {
		a.logger.Debugw("malformed form input", "error", err)
	}

	msg := services.Message(params)
	estimate := services.Estimate(msg, a.conf.MsPerChar, a.conf.CountSpaces)

	return model.Page{
		ContentType: model.ContentTypeHTML,
		Body:        services.Substitute(a.loadTemplate(ctx), services.EscapeMessage(msg), estimate),
	}
}

func (a *Application) loadTemplate(ctx context.Context) string {
	tpl, err := a.templates.Load(ctx)
	if err == nil {
		return tpl
	}

	switch {
	case errors.Is(err, repositories.ErrNotFound):
		a.logger.Warnw("template not found, using fallback", "error", err)
	case errors.Is(err, repositories.ErrBadEncoding):
		a.logger.Warnw("template is not valid utf-8, using fallback", "error", err)
	default:
		a.logger.Warnw("can't load template, using fallback", "error", err)
	}

	return services.FallbackTemplate
}
