package services

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"readtime/internal/core/model"
)

// Estimate считает количество символов и время набора сообщения.
func Estimate(msg string, msPerChar int64, countSpaces bool) model.Estimate {
	count := CountChars(msg, countSpaces)
	timeMs := int64(count) * msPerChar

	return model.Estimate{
		Count:  count,
		TimeMs: timeMs,
		TimeS:  FormatSeconds(timeMs),
	}
}

// CountChars считает символы (руны). Без countSpaces пробельные символы не учитываются.
func CountChars(msg string, countSpaces bool) int {
	if countSpaces {
		return utf8.RuneCountInString(msg)
	}

	return utf8.RuneCountInString(strings.Join(strings.FieldsFunc(msg, unicode.IsSpace), ""))
}

func FormatSeconds(ms int64) string {
	return strconv.FormatFloat(float64(ms)/1000, 'f', 2, 64)
}
