package api

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// loggingTransport логирует исходящие HTTP запросы.
// Логирует метод, путь, статус, время выполнения.
// НЕ логирует sensitive данные (токены, пароли)
type loggingTransport struct {
	next   http.RoundTripper
	logger *slog.Logger
}

func newLoggingTransport(next http.RoundTripper, logger *slog.Logger) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	if lt, ok := next.(*loggingTransport); ok {
		next = lt.next
	}
	return &loggingTransport{next: next, logger: logger}
}

// RoundTrip выполняет запрос и пишет одну запись в лог
func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := t.next.RoundTrip(req)

	// Вычисляем длительность
	duration := time.Since(start)

	if err != nil {
		t.logger.Log(req.Context(), slog.LevelWarn, "HTTP request failed",
			"method", req.Method,
			"url", sanitizeURL(req.URL),
			"request_id", req.Header.Get(RequestIDHeader),
			"duration_ms", duration.Milliseconds(),
			"error", err,
		)
		return nil, err
	}

	// Определяем уровень логирования на основе статуса
	logLevel := slog.LevelDebug
	if resp.StatusCode >= 500 {
		logLevel = slog.LevelError
	} else if resp.StatusCode >= 400 {
		logLevel = slog.LevelWarn
	}

	t.logger.Log(req.Context(), logLevel, "HTTP request",
		"method", req.Method,
		"url", sanitizeURL(req.URL),
		"request_id", req.Header.Get(RequestIDHeader),
		"status", resp.StatusCode,
		"duration_ms", duration.Milliseconds(),
	)

	return resp, nil
}

var sensitiveParams = []string{"token", "accessToken", "refreshToken", "password"}

// sanitizeURL возвращает путь с query, в котором значения sensitive
// параметров заменены на ***
func sanitizeURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	if u.RawQuery == "" {
		return u.Path
	}

	q := u.Query()
	for _, key := range sensitiveParams {
		if q.Has(key) {
			q.Set(key, "***")
		}
	}
	return u.Path + "?" + q.Encode()
}
