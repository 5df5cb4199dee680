package services

import (
	"html"
	"strconv"
	"strings"

	"readtime/internal/core/model"
)

// EmptyMessage подставляется вместо пустого сообщения.
const EmptyMessage = "—"

// FallbackTemplate используется, когда шаблон недоступен.
const FallbackTemplate = "<html><body><h1>CGI Result</h1><p>" + model.PlaceholderMessage + "</p></body></html>"

// EscapeMessage экранирует сообщение для вставки в HTML.
func EscapeMessage(msg string) string {
	if msg == "" {
		return EmptyMessage
	}

	return html.EscapeString(msg)
}

// Substitute заменяет все плейсхолдеры шаблона за один проход.
// Подставленные значения повторно не просматриваются, поэтому порядок замен не важен.
func Substitute(tpl, message string, estimate model.Estimate) string {
	r := strings.NewReplacer(
		model.PlaceholderMessage, message,
		model.PlaceholderCount, strconv.Itoa(estimate.Count),
		model.PlaceholderTimeMs, strconv.FormatInt(estimate.TimeMs, 10),
		model.PlaceholderTimeS, estimate.TimeS,
	)

	return r.Replace(tpl)
}
