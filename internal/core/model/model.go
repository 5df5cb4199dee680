package model

// Request метаданные запроса, которые хост передает обработчику.
type Request struct {
	Method        string
	QueryString   string
	ContentLength string // сырое значение, может быть пустым или нечисловым
}

// Estimate оценка времени набора сообщения.
type Estimate struct {
	Count  int
	TimeMs int64
	TimeS  string // секунды с двумя знаками после запятой
}

// Page готовая страница для ответа.
type Page struct {
	ContentType string
	Body        string
}

// Плейсхолдеры шаблона.
const (
	PlaceholderMessage = "{{MESSAGE}}"
	PlaceholderCount   = "{{COUNT}}"
	PlaceholderTimeMs  = "{{TIME_MS}}"
	PlaceholderTimeS   = "{{TIME_S}}"
)

const ContentTypeHTML = "text/html; charset=utf-8"
