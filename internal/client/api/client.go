package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	pkgapi "github.com/iudanet/vidtube/pkg/api"
)

const (
	// DefaultTimeout ограничение на один HTTP запрос
	DefaultTimeout = 30 * time.Second

	// RefreshPath эндпоинт обновления access token
	RefreshPath = "/users/refresh-token"

	// RequestIDHeader заголовок для корреляции запросов в логах клиента и сервера
	RequestIDHeader = "X-Request-ID"
)

// CredentialStore хранит текущий credential. Transport читает токен перед
// каждой попыткой и записывает новый после успешного refresh.
// SwapTokens записывает tokens, только если access token все еще равен old.
type CredentialStore interface {
	AccessToken() string
	RefreshToken() string
	SwapTokens(ctx context.Context, old string, tokens pkgapi.TokenPair) (bool, error)
}

//go:generate moq -out doer_mock.go . Doer

// Doer выполняет запрос к API. Реализуется Client; сторы и сервисы ресурсов
// зависят только от этого интерфейса.
type Doer interface {
	Do(ctx context.Context, req *Request) (*RawResponse, error)
}

// RawResponse успешный (2xx) ответ сервера
type RawResponse struct {
	Header     http.Header
	RequestID  string
	Body       []byte
	StatusCode int
}

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	creds      CredentialStore
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
	baseURL    string
	refreshes  singleflight.Group
	refreshMu  sync.Mutex
}

// Compile-time check that Client implements Doer
var _ Doer = (*Client)(nil)

// Option настраивает Client
type Option func(*Client)

// WithTimeout задает таймаут одного HTTP запроса
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithHTTPClient подменяет базовый http.Client (копируется)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc == nil {
			return
		}
		cp := *hc
		if cp.Jar == nil {
			cp.Jar = c.httpClient.Jar
		}
		c.httpClient = &cp
	}
}

// WithLogger задает логгер
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRateLimit ограничивает частоту исходящих запросов (rps <= 0 отключает)
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// NewClient создает новый API клиент
func NewClient(baseURL string, creds CredentialStore, opts ...Option) *Client {
	// cookiejar.New с nil опциями не возвращает ошибку
	jar, _ := cookiejar.New(nil)

	if creds == nil {
		creds = noCredentials{}
	}

	c := &Client{
		baseURL: baseURL,
		creds:   creds,
		logger:  slog.Default(),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
			// refresh token сервер выдает в httpOnly cookie
			Jar: jar,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	c.httpClient.Transport = newLoggingTransport(c.httpClient.Transport, c.logger)

	return c
}

// BaseURL возвращает корень API
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do выполняет запрос, прикрепляя текущий credential. Если сервер ответил 401,
// клиент один раз обновляет токен и повторяет запрос. Второй 401 возвращается
// как есть, неудачный refresh возвращает *RefreshError с исходным 401.
func (c *Client) Do(ctx context.Context, req *Request) (*RawResponse, error) {
	token := c.creds.AccessToken()

	resp, err := c.send(ctx, req, token)
	if err == nil || req.NoRefresh || !IsAuthRejected(err) {
		return resp, err
	}

	// Запрос помечен как повторенный: больше одного refresh на запрос не бывает
	c.logger.Debug("access token rejected, refreshing", "method", req.Method, "path", req.Path)

	newToken, refreshErr := c.refresh(ctx, token)
	if refreshErr != nil {
		c.logger.Warn("token refresh failed", "path", req.Path, "error", refreshErr)
		return nil, &RefreshError{Err: err, Cause: refreshErr}
	}

	return c.send(ctx, req, newToken)
}

// send выполняет одну попытку без перехвата 401
func (c *Client) send(ctx context.Context, r *Request, token string) (*RawResponse, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: rate limiter: %w", ErrNetwork, err)
		}
	}

	req, err := r.build(ctx, c.baseURL)
	if err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %w", ErrNetwork, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", ErrNetwork, err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newServerError(resp.StatusCode, respBody)
	}

	return &RawResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
		RequestID:  requestID,
	}, nil
}

func newServerError(status int, body []byte) *ServerError {
	se := &ServerError{StatusCode: status, Body: body}
	var errResp pkgapi.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil {
		se.Message = errResp.Message
	}
	return se
}

// Call выполняет запрос и декодирует конверт ответа
func Call[T any](ctx context.Context, d Doer, req *Request) (*pkgapi.Response[T], error) {
	raw, err := d.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	return Decode[T](raw)
}

// Decode декодирует конверт {statusCode, data, message, success}.
// Пустое тело (204) дает нулевой Data.
func Decode[T any](raw *RawResponse) (*pkgapi.Response[T], error) {
	var resp pkgapi.Response[T]
	if raw == nil || len(bytes.TrimSpace(raw.Body)) == 0 {
		if raw != nil {
			resp.StatusCode = raw.StatusCode
		}
		return &resp, nil
	}

	if err := json.Unmarshal(raw.Body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w: %w", ErrMalformedResponse, err)
	}
	if resp.StatusCode == 0 {
		resp.StatusCode = raw.StatusCode
	}
	return &resp, nil
}

type noCredentials struct{}

func (noCredentials) AccessToken() string  { return "" }
func (noCredentials) RefreshToken() string { return "" }
func (noCredentials) SwapTokens(context.Context, string, pkgapi.TokenPair) (bool, error) {
	return false, nil
}
