package api

import "time"

// User представляет профиль пользователя (Identity) в ответах сервера
type User struct {
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	ID         string    `json:"_id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName"`
	Avatar     string    `json:"avatar"`
	CoverImage string    `json:"coverImage,omitempty"`
}

// Merge переносит непустые поля из update в копию пользователя.
// ID и CreatedAt не меняются никогда.
func (u User) Merge(update User) User {
	if update.Username != "" {
		u.Username = update.Username
	}
	if update.Email != "" {
		u.Email = update.Email
	}
	if update.FullName != "" {
		u.FullName = update.FullName
	}
	if update.Avatar != "" {
		u.Avatar = update.Avatar
	}
	if update.CoverImage != "" {
		u.CoverImage = update.CoverImage
	}
	if !update.UpdatedAt.IsZero() {
		u.UpdatedAt = update.UpdatedAt
	}
	return u
}

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenPair представляет пару токенов, выданную сервером
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// RefreshRequest представляет тело запроса на обновление токена.
// Сервер также принимает refresh token из cookie.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken,omitempty"`
}

// AuthPayload представляет data ответа на login (и на register, если сервер сразу выдает токены)
type AuthPayload struct {
	User *User `json:"user"`
	TokenPair
}

// UpdateAccountRequest представляет запрос на изменение профиля
type UpdateAccountRequest struct {
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email,omitempty"`
}

// ChangePasswordRequest представляет запрос на смену пароля
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// Channel представляет публичный профиль канала с встроенным списком видео
type Channel struct {
	User
	Videos                    []Video `json:"videos,omitempty"`
	SubscribersCount          int64   `json:"subscribersCount"`
	ChannelsSubscribedToCount int64   `json:"channelsSubscribedToCount"`
	IsSubscribed              bool    `json:"isSubscribed"`
}
