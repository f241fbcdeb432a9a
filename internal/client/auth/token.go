package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoExpiry токен не содержит claim exp
var ErrNoExpiry = errors.New("token has no expiry")

// TokenExpiry возвращает время истечения access token.
// Подпись не проверяется: клиент не знает секрета сервера и использует
// значение только для отображения статуса.
func TokenExpiry(token string) (time.Time, error) {
	var claims jwt.RegisteredClaims

	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, fmt.Errorf("failed to parse token: %w", err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, ErrNoExpiry
	}

	return claims.ExpiresAt.Time, nil
}
