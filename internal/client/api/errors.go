package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	pkgapi "github.com/sinaricell/storefront/pkg/api"
)

// Error представляет ошибку уровня API: статус и человекочитаемое сообщение,
// уже извлеченное из тела ответа. Вся дальнейшая классификация ("not verified",
// "wait N seconds", "limit") работает по полю Message.
type Error struct {
	Message    string
	StatusCode int
}

func (e *Error) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether the error is an HTTP 401 failure
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// Message returns the extracted server message, or err.Error() for
// transport-level failures. Классификаторы верификационного флоу работают
// именно по этой строке.
func Message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// extractMessage достает сообщение из тела ошибки по приоритету:
// структурированный список ошибок валидации → поле errors конверта →
// поле message → сырое тело → текст статуса.
// Никогда не паникует на битом входе.
func extractMessage(statusCode int, body []byte) string {
	var envelope struct {
		Errors  string `json:"errors"`
		Message string `json:"message"`
	}

	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Errors != "" {
			// Сервер иногда вкладывает JSON-список ошибок валидации строкой
			if details := parseFieldErrors(envelope.Errors); details != "" {
				return details
			}
			return envelope.Errors
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}

	if text := strings.TrimSpace(string(body)); text != "" && len(text) <= 256 {
		return text
	}

	return http.StatusText(statusCode)
}

// parseFieldErrors пытается разобрать строку как JSON-список {path, message};
// возвращает "" если строка им не является
func parseFieldErrors(raw string) string {
	var fields []pkgapi.FieldError
	if err := json.Unmarshal([]byte(raw), &fields); err != nil || len(fields) == 0 {
		return ""
	}

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.Message == "" {
			continue
		}
		if f.Path != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", f.Path, f.Message))
		} else {
			parts = append(parts, f.Message)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "; ")
}
