package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/vidtube/internal/client/api"
	"github.com/iudanet/vidtube/internal/client/storage"
)

// mockAuthStorage implements storage.AuthStorage for testing
type mockAuthStorage struct {
	data      *storage.AuthData
	saveErr   error
	getErr    error
	deleteErr error
	deletes   int
}

func (m *mockAuthStorage) SaveAuth(_ context.Context, auth *storage.AuthData) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	// Сохраняем копию данных
	cp := *auth
	m.data = &cp
	return nil
}

func (m *mockAuthStorage) GetAuth(_ context.Context) (*storage.AuthData, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.data == nil {
		return nil, storage.ErrAuthNotFound
	}
	// Возвращаем копию
	cp := *m.data
	return &cp, nil
}

func (m *mockAuthStorage) DeleteAuth(_ context.Context) error {
	m.deletes++
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.data = nil
	return nil
}

type handlerFunc func(req *api.Request) (*api.RawResponse, error)

// routeDoer отвечает по ключу "METHOD /path"
func routeDoer(t *testing.T, routes map[string]handlerFunc) *api.DoerMock {
	t.Helper()
	return &api.DoerMock{
		DoFunc: func(_ context.Context, req *api.Request) (*api.RawResponse, error) {
			h, ok := routes[req.Method+" "+req.Path]
			if !ok {
				t.Errorf("unexpected request %s %s", req.Method, req.Path)
				return nil, &api.ServerError{StatusCode: http.StatusNotFound}
			}
			return h(req)
		},
	}
}

func respond(t *testing.T, status int, data any) handlerFunc {
	t.Helper()
	return func(*api.Request) (*api.RawResponse, error) {
		return envelope(t, status, data), nil
	}
}

func reject(status int, message string) handlerFunc {
	return func(*api.Request) (*api.RawResponse, error) {
		return nil, &api.ServerError{StatusCode: status, Message: message}
	}
}

func envelope(t *testing.T, status int, data any) *api.RawResponse {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"statusCode": status,
		"data":       data,
		"message":    "ok",
		"success":    true,
	})
	require.NoError(t, err)
	return &api.RawResponse{StatusCode: status, Body: body}
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

// recordStates собирает состояния из уведомлений сессии
func recordStates(s *Session) *[]Snapshot {
	var got []Snapshot
	s.Subscribe(func(snap Snapshot) { got = append(got, snap) })
	return &got
}

func statesOf(snaps []Snapshot) []State {
	out := make([]State, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, s.State)
	}
	return out
}
