package api

import (
	"context"
	"errors"
	"fmt"

	pkgapi "github.com/iudanet/vidtube/pkg/api"
)

const refreshKey = "refresh"

// errNoCredential credential очищен (logout) или не был установлен: обновлять нечего
var errNoCredential = errors.New("no credential to refresh")

// refresh обменивает отклоненный staleToken на новый.
// Параллельные 401 ждут один общий запрос на refresh. Если токен уже
// заменен завершенным refresh, повторный refresh не выполняется.
func (c *Client) refresh(ctx context.Context, staleToken string) (string, error) {
	c.refreshMu.Lock()
	current := c.creds.AccessToken()
	if current == "" || staleToken == "" {
		c.refreshMu.Unlock()
		return "", errNoCredential
	}
	if current != staleToken {
		c.refreshMu.Unlock()
		return current, nil
	}
	ch := c.refreshes.DoChan(refreshKey, func() (any, error) {
		// refresh переживает отмену контекста первого вызвавшего: его ждут другие запросы
		return c.doRefresh(context.WithoutCancel(ctx), staleToken)
	})
	c.refreshMu.Unlock()

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %w", ErrNetwork, ctx.Err())
	}
}

// doRefresh отправляет запрос на refresh напрямую, минуя перехватчик 401.
// Новые токены сохраняются, только если credential все еще staleToken.
func (c *Client) doRefresh(ctx context.Context, staleToken string) (string, error) {
	req := Post(RefreshPath, pkgapi.RefreshRequest{RefreshToken: c.creds.RefreshToken()})

	raw, err := c.send(ctx, req, "")
	if err != nil {
		return "", fmt.Errorf("refresh request failed: %w", err)
	}

	resp, err := Decode[pkgapi.TokenPair](raw)
	if err != nil {
		return "", fmt.Errorf("refresh request failed: %w", err)
	}

	tokens := resp.Data
	if tokens.AccessToken == "" {
		return "", fmt.Errorf("refresh request failed: %w: no access token", ErrMalformedResponse)
	}
	if tokens.RefreshToken == "" {
		// сервер может ротировать только access token
		tokens.RefreshToken = c.creds.RefreshToken()
	}

	c.refreshMu.Lock()
	stored, err := c.creds.SwapTokens(ctx, staleToken, tokens)
	c.refreshMu.Unlock()
	if !stored {
		current := c.creds.AccessToken()
		c.logger.Info("credential changed during refresh, refreshed token discarded")
		if current == "" {
			return "", errNoCredential
		}
		return current, nil
	}
	if err != nil {
		// токен в памяти уже заменен, запрос можно повторить
		c.logger.Warn("failed to persist refreshed token", "error", err)
	}

	c.logger.Info("access token refreshed")
	return tokens.AccessToken, nil
}
