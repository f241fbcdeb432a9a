package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/iudanet/vidtube/internal/client/api"
	"github.com/iudanet/vidtube/internal/client/storage"
	pkgapi "github.com/iudanet/vidtube/pkg/api"
)

// Credentials держит текущую пару токенов в памяти и в persisted слоте.
// Пишут в него только login/register, refresh в транспорте и logout.
type Credentials struct {
	store   storage.AuthStorage
	logger  *slog.Logger
	baseURL string
	tokens  pkgapi.TokenPair
	mu      sync.RWMutex
	// wmu упорядочивает записи в память и слот: SaveAuth после DeleteAuth
	// не может вернуть удаленный credential
	wmu sync.Mutex
}

// Compile-time check that Credentials implements api.CredentialStore
var _ api.CredentialStore = (*Credentials)(nil)

// NewCredentials создает holder credential.
// store может быть nil: тогда credential живет только в памяти процесса.
// baseURL привязывает сохраненный токен к серверу, который его выдал.
func NewCredentials(store storage.AuthStorage, baseURL string, logger *slog.Logger) *Credentials {
	if logger == nil {
		logger = slog.Default()
	}
	return &Credentials{
		store:   store,
		baseURL: baseURL,
		logger:  logger,
	}
}

// AccessToken возвращает текущий access token или пустую строку
func (c *Credentials) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tokens.AccessToken
}

// RefreshToken возвращает текущий refresh token или пустую строку
func (c *Credentials) RefreshToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tokens.RefreshToken
}

// HasCredential сообщает, есть ли credential в памяти
func (c *Credentials) HasCredential() bool {
	return c.AccessToken() != ""
}

// SetTokens полностью заменяет credential и сохраняет его в слот.
// При ошибке сохранения токены в памяти уже заменены.
func (c *Credentials) SetTokens(ctx context.Context, tokens pkgapi.TokenPair) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()

	c.mu.Lock()
	c.tokens = tokens
	c.mu.Unlock()

	return c.persist(ctx, tokens)
}

// SwapTokens заменяет credential, только если текущий access token равен old.
// Возвращает false, если credential успели очистить или заменить.
func (c *Credentials) SwapTokens(ctx context.Context, old string, tokens pkgapi.TokenPair) (bool, error) {
	c.wmu.Lock()
	defer c.wmu.Unlock()

	c.mu.Lock()
	if old == "" || c.tokens.AccessToken != old {
		c.mu.Unlock()
		return false, nil
	}
	c.tokens = tokens
	c.mu.Unlock()

	return true, c.persist(ctx, tokens)
}

func (c *Credentials) persist(ctx context.Context, tokens pkgapi.TokenPair) error {
	if c.store == nil {
		return nil
	}

	err := c.store.SaveAuth(ctx, &storage.AuthData{
		BaseURL:      c.baseURL,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		SavedAt:      time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to persist credential: %w", err)
	}
	return nil
}

// Load читает credential из слота в память.
// Возвращает false без ошибки, если слот пуст или выдан другим сервером.
func (c *Credentials) Load(ctx context.Context) (bool, error) {
	if c.store == nil {
		return c.HasCredential(), nil
	}

	data, err := c.store.GetAuth(ctx)
	if errors.Is(err, storage.ErrAuthNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load credential: %w", err)
	}

	if data.BaseURL != "" && c.baseURL != "" && data.BaseURL != c.baseURL {
		c.logger.Info("stored credential was issued by another server, ignoring",
			"stored_server", data.BaseURL,
			"server", c.baseURL,
		)
		return false, nil
	}
	if data.AccessToken == "" {
		return false, nil
	}

	c.mu.Lock()
	c.tokens = pkgapi.TokenPair{
		AccessToken:  data.AccessToken,
		RefreshToken: data.RefreshToken,
	}
	c.mu.Unlock()

	return true, nil
}

// Forget очищает credential в памяти, не трогая слот
func (c *Credentials) Forget() {
	c.mu.Lock()
	c.tokens = pkgapi.TokenPair{}
	c.mu.Unlock()
}

// Clear очищает credential в памяти и в слоте
func (c *Credentials) Clear(ctx context.Context) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()

	c.Forget()

	if c.store == nil {
		return nil
	}
	if err := c.store.DeleteAuth(ctx); err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}
	return nil
}
