package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Таксономия ошибок транспорта. Проверять через errors.Is.
var (
	// ErrValidation сервер отклонил некорректный ввод (400, 422)
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized учетные данные отклонены (401, 403)
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound ресурс не найден (404)
	ErrNotFound = errors.New("resource not found")

	// ErrConflict конфликт состояния, например занятый username (409)
	ErrConflict = errors.New("conflict")

	// ErrServer прочие ошибочные статусы (5xx и неклассифицированные 4xx)
	ErrServer = errors.New("server error")

	// ErrNetwork ответ не получен: сеть, таймаут, отмена
	ErrNetwork = errors.New("network error")

	// ErrMalformedResponse тело ответа не является ожидаемым JSON конвертом
	ErrMalformedResponse = errors.New("malformed response")
)

// ServerError описывает ответ сервера с неуспешным статусом
type ServerError struct {
	Message    string
	Body       []byte
	StatusCode int
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// Unwrap связывает статус с sentinel ошибкой таксономии
func (e *ServerError) Unwrap() error {
	return kindOf(e.StatusCode)
}

func kindOf(status int) error {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrValidation
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	default:
		return ErrServer
	}
}

// RefreshError исходный 401 и причина, по которой refresh не удался.
// errors.Is и errors.As видят обе ошибки: сетевой сбой refresh остается
// ErrNetwork, а IsAuthRejected и MessageOf работают по исходному ответу.
type RefreshError struct {
	Err   error
	Cause error
}

func (e *RefreshError) Error() string {
	return fmt.Sprintf("%v (token refresh failed: %v)", e.Err, e.Cause)
}

func (e *RefreshError) Unwrap() []error {
	return []error{e.Err, e.Cause}
}

// IsAuthRejected сообщает, что ошибка вызвана ответом 401
func IsAuthRejected(err error) bool {
	var se *ServerError
	return errors.As(err, &se) && se.StatusCode == http.StatusUnauthorized
}

// MessageOf возвращает сообщение для показа пользователю: текст сервера,
// если он есть, иначе общее описание.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var se *ServerError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	if errors.Is(err, ErrNetwork) {
		return "unable to reach server"
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	return "an error occurred"
}

// ValidationError ошибка клиентской валидации до отправки запроса
type ValidationError struct {
	Err   error
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

// Unwrap возвращает и причину, и ErrValidation
func (e *ValidationError) Unwrap() []error {
	return []error{ErrValidation, e.Err}
}

// Invalid оборачивает ошибку валидации поля
func Invalid(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Err: err}
}
