package services

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"readtime/internal/core/model"
)

// ParseMethod возвращает метод запроса в верхнем регистре, по умолчанию GET.
func ParseMethod(raw string) string {
	method := strings.ToUpper(strings.TrimSpace(raw))
	if method == "" {
		return http.MethodGet
	}

	return method
}

// ParseLength разбирает CONTENT_LENGTH.
// Второе значение false, если длина отсутствует или некорректна, тогда длина равна 0.
func ParseLength(raw string) (int64, bool) {
	length, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || length < 0 {
		return 0, false
	}

	return length, true
}

// ReadParams читает параметры формы из строки запроса (GET) или из тела (POST).
// Для остальных методов возвращается пустой набор.
//
// Значения возвращаются всегда, даже вместе с ошибкой чтения тела.
func ReadParams(req model.Request, body io.Reader) (url.Values, error) {
	switch ParseMethod(req.Method) {
	case http.MethodGet:
		return DecodeForm(req.QueryString), nil
	case http.MethodPost:
		length, _ := ParseLength(req.ContentLength)
		if length == 0 || body == nil {
			return url.Values{}, nil
		}

		raw, err := io.ReadAll(io.LimitReader(body, length))
		if err != nil {
			return DecodeForm(string(raw)), fmt.Errorf("can't read body: %w", err)
		}

		return DecodeForm(string(raw)), nil
	default:
		return url.Values{}, nil
	}
}

// DecodeForm разбирает пары key=value, разделенные '&'.
// В отличие от url.ParseQuery пары не отбрасываются: ';' остается частью значения,
// некорректные %-последовательности сохраняются как есть, невалидный UTF-8
// заменяется на U+FFFD. Пары без '=' пропускаются.
func DecodeForm(raw string) url.Values {
	params := url.Values{}

	for _, pair := range strings.Split(raw, "&") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}

		params.Add(unescape(key), unescape(value))
	}

	return params
}

func unescape(s string) string {
	decoded, err := url.QueryUnescape(s)
	if err != nil {
		decoded = unescapeLenient(strings.ReplaceAll(s, "+", " "))
	}

	return strings.ToValidUTF8(decoded, "\uFFFD")
}

// unescapeLenient декодирует корректные %XX и оставляет остальные '%' без изменений.
func unescapeLenient(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
			continue
		}
		b.WriteByte(s[i])
	}

	return b.String()
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case c >= 'a':
		return c - 'a' + 10
	case c >= 'A':
		return c - 'A' + 10
	default:
		return c - '0'
	}
}

// Message достает поле msg и приводит переводы строк к \n.
func Message(params url.Values) string {
	values, ok := params["msg"]
	if !ok || len(values) == 0 {
		return ""
	}

	return NormalizeNewlines(values[0])
}

func NormalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
