// Package cgi связывает обработчик со шлюзовым интерфейсом CGI:
// метаданные запроса берутся из переменных окружения, тело из stdin,
// ответ (заголовок, пустая строка, страница) пишется в stdout.
package cgi

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/caarlos0/env/v11"

	"readtime/internal/core/model"
)

// Meta метапеременные CGI, используемые обработчиком.
type Meta struct {
	Method        string `env:"REQUEST_METHOD" envDefault:"GET"`
	QueryString   string `env:"QUERY_STRING"`
	ContentLength string `env:"CONTENT_LENGTH"`
}

type Renderer interface {
	Render(ctx context.Context, req model.Request, body io.Reader) model.Page
}

// ParseRequest читает метапеременные из environ.
// Если environ равен nil, используется окружение процесса.
func ParseRequest(environ map[string]string) (model.Request, error) {
	var meta Meta

	if err := env.ParseWithOptions(&meta, env.Options{Environment: environ}); err != nil {
		return model.Request{}, fmt.Errorf("can't parse cgi environment: %w", err)
	}

	return model.Request{
		Method:        meta.Method,
		QueryString:   meta.QueryString,
		ContentLength: meta.ContentLength,
	}, nil
}

// Serve обрабатывает один запрос и пишет ответ в out.
func Serve(ctx context.Context, renderer Renderer, req model.Request, in io.Reader, out io.Writer) error {
	page := renderer.Render(ctx, req, in)

	return WriteResponse(out, page)
}

// WriteResponse пишет заголовок Content-Type, пустую строку и тело страницы.
func WriteResponse(out io.Writer, page model.Page) error {
	w := bufio.NewWriter(out)

	if _, err := fmt.Fprintf(w, "Content-Type: %s\n\n%s\n", page.ContentType, page.Body); err != nil {
		return fmt.Errorf("can't write response: %w", err)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("can't flush response: %w", err)
	}

	return nil
}
