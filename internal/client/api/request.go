package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Request описывает один логический вызов API (RequestEnvelope).
// Тело кодируется заново для каждой попытки, поэтому повтор после refresh
// отправляет полный payload.
type Request struct {
	Query  url.Values
	JSON   any
	Form   *Form
	Method string
	Path   string
	// NoRefresh отключает refresh-and-retry (login, register: 401 там означает
	// неверные данные, а не истекший токен)
	NoRefresh bool
}

// Get создает GET запрос
func Get(path string) *Request {
	return &Request{Method: http.MethodGet, Path: path}
}

// Post создает POST запрос с JSON телом (body может быть nil)
func Post(path string, body any) *Request {
	return &Request{Method: http.MethodPost, Path: path, JSON: body}
}

// Patch создает PATCH запрос с JSON телом (body может быть nil)
func Patch(path string, body any) *Request {
	return &Request{Method: http.MethodPatch, Path: path, JSON: body}
}

// Delete создает DELETE запрос
func Delete(path string) *Request {
	return &Request{Method: http.MethodDelete, Path: path}
}

// WithQuery добавляет query параметры
func (r *Request) WithQuery(q url.Values) *Request {
	r.Query = q
	return r
}

// WithForm заменяет тело multipart формой
func (r *Request) WithForm(f *Form) *Request {
	r.Form = f
	r.JSON = nil
	return r
}

// WithoutRefresh отключает refresh-and-retry для запроса
func (r *Request) WithoutRefresh() *Request {
	r.NoRefresh = true
	return r
}

// build собирает http.Request для одной попытки
func (r *Request) build(ctx context.Context, baseURL string) (*http.Request, error) {
	target := strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(r.Path, "/")
	if len(r.Query) > 0 {
		target += "?" + r.Query.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)

	switch {
	case r.Form != nil:
		body, contentType = r.Form.encode()
	case r.JSON != nil:
		jsonData, err := json.Marshal(r.JSON)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(jsonData)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	return req, nil
}
