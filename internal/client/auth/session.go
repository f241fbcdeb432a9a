package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/iudanet/vidtube/internal/client/api"
	"github.com/iudanet/vidtube/internal/client/observe"
	"github.com/iudanet/vidtube/internal/validation"
	pkgapi "github.com/iudanet/vidtube/pkg/api"
)

// Эндпоинты пользователя
const (
	pathRegister       = "/users/register"
	pathLogin          = "/users/login"
	pathLogout         = "/users/logout"
	pathCurrentUser    = "/users/current-user"
	pathUpdateAccount  = "/users/update-account"
	pathChangePassword = "/users/change-password"
	pathAvatar         = "/users/avatar"
	pathCoverImage     = "/users/cover-image"
)

// ErrNotAuthenticated операция требует активной сессии
var ErrNotAuthenticated = errors.New("not authenticated")

// State состояние сессии
type State int

const (
	// StateAnonymous пользователь не аутентифицирован
	StateAnonymous State = iota
	// StateAuthenticating идет login, register или reload
	StateAuthenticating
	// StateAuthenticated identity и credential установлены
	StateAuthenticated
	// StateAuthFailed сервер отклонил попытку; сразу сменяется на StateAnonymous
	StateAuthFailed
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	case StateAuthFailed:
		return "auth_failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Snapshot неизменяемый срез состояния сессии для наблюдателей
type Snapshot struct {
	ExpiresAt time.Time
	User      *pkgapi.User
	Reason    string
	State     State
}

// Session владеет identity пользователя и переходами состояния сессии
type Session struct {
	doer      api.Doer
	creds     *Credentials
	logger    *slog.Logger
	user      *pkgapi.User
	observers observe.Subject[Snapshot]
	reason    string
	state     State
	mu        sync.RWMutex
}

// NewSession создает сессию в состоянии StateAnonymous
func NewSession(doer api.Doer, creds *Credentials, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	if creds == nil {
		creds = NewCredentials(nil, "", logger)
	}
	return &Session{
		doer:   doer,
		creds:  creds,
		logger: logger,
		state:  StateAnonymous,
	}
}

// Snapshot возвращает текущее состояние
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Subscribe регистрирует наблюдателя; возвращает функцию отписки
func (s *Session) Subscribe(fn func(Snapshot)) func() {
	return s.observers.Subscribe(fn)
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{State: s.state, Reason: s.reason}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	if s.state == StateAuthenticated {
		if exp, err := TokenExpiry(s.creds.AccessToken()); err == nil {
			snap.ExpiresAt = exp
		}
	}
	return snap
}

// setState выполняет переход и уведомляет наблюдателей вне блокировки
func (s *Session) setState(state State, user *pkgapi.User, reason string) {
	s.mu.Lock()
	s.state = state
	s.user = user
	s.reason = reason
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Debug("session state changed", "state", state.String())
	s.observers.Publish(snap)
}

func (s *Session) requireAuth() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateAuthenticated || s.user == nil {
		return ErrNotAuthenticated
	}
	return nil
}

// Login аутентифицирует пользователя по email и паролю
func (s *Session) Login(ctx context.Context, email, password string) (*pkgapi.User, error) {
	if err := api.Invalid("email", validation.ValidateEmail(email)); err != nil {
		return nil, err
	}
	if err := api.Invalid("password", validation.ValidateRequired("password", password)); err != nil {
		return nil, err
	}

	s.setState(StateAuthenticating, nil, "")

	user, err := s.authenticate(ctx, loginRequest(email, password))
	if err != nil {
		return nil, s.fail("login", err)
	}
	return user, nil
}

// RegisterInput данные регистрации. Avatar обязателен, CoverImage нет.
type RegisterInput struct {
	Avatar     *api.File
	CoverImage *api.File
	Username   string
	Email      string
	Password   string
	FullName   string
}

func (in RegisterInput) validate() error {
	if err := api.Invalid("username", validation.ValidateUsername(in.Username)); err != nil {
		return err
	}
	if err := api.Invalid("email", validation.ValidateEmail(in.Email)); err != nil {
		return err
	}
	if err := api.Invalid("password", validation.ValidatePassword(in.Password)); err != nil {
		return err
	}
	if err := api.Invalid("fullName", validation.ValidateFullName(in.FullName)); err != nil {
		return err
	}
	if in.Avatar == nil {
		return api.Invalid("avatar", validation.ErrRequired)
	}
	return nil
}

// Register создает аккаунт и открывает сессию.
// Если сервер не выдал токены при регистрации, выполняется login
// с теми же email и паролем.
func (s *Session) Register(ctx context.Context, in RegisterInput) (*pkgapi.User, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	s.setState(StateAuthenticating, nil, "")

	form := api.NewForm().
		Field("username", in.Username).
		Field("email", in.Email).
		Field("password", in.Password).
		Field("fullName", in.FullName).
		File("avatar", in.Avatar).
		File("coverImage", in.CoverImage)

	resp, err := api.Call[pkgapi.AuthPayload](ctx, s.doer, api.Post(pathRegister, nil).WithForm(form).WithoutRefresh())
	if err != nil {
		return nil, s.fail("register", err)
	}

	if payload := resp.Data; payload.User != nil && payload.AccessToken != "" {
		return s.commit(ctx, payload.User, payload.TokenPair), nil
	}

	s.logger.Debug("registration returned no credential, logging in")
	user, err := s.authenticate(ctx, loginRequest(in.Email, in.Password))
	if err != nil {
		return nil, s.fail("register", err)
	}
	return user, nil
}

func loginRequest(email, password string) *api.Request {
	return api.Post(pathLogin, pkgapi.LoginRequest{Email: email, Password: password}).WithoutRefresh()
}

// authenticate выполняет запрос, возвращающий пользователя и токены
func (s *Session) authenticate(ctx context.Context, req *api.Request) (*pkgapi.User, error) {
	resp, err := api.Call[pkgapi.AuthPayload](ctx, s.doer, req)
	if err != nil {
		return nil, err
	}

	payload := resp.Data
	if payload.User == nil || payload.AccessToken == "" {
		return nil, fmt.Errorf("%w: response has no user or access token", api.ErrMalformedResponse)
	}

	return s.commit(ctx, payload.User, payload.TokenPair), nil
}

// commit устанавливает credential и identity одной транзакцией состояния
func (s *Session) commit(ctx context.Context, user *pkgapi.User, tokens pkgapi.TokenPair) *pkgapi.User {
	if err := s.creds.SetTokens(ctx, tokens); err != nil {
		// сессия работает до конца процесса, но не переживет перезапуск
		s.logger.Warn("failed to persist credential", "error", err)
	}

	stored := *user
	s.setState(StateAuthenticated, &stored, "")
	s.logger.Info("authenticated", "username", user.Username)

	out := stored
	return &out
}

// fail публикует AuthFailed с причиной и возвращает сессию в Anonymous
func (s *Session) fail(op string, err error) error {
	reason := api.MessageOf(err)

	s.creds.Forget()
	s.setState(StateAuthFailed, nil, reason)
	s.setState(StateAnonymous, nil, "")

	s.logger.Warn(op+" failed", "reason", reason, "error", err)
	return fmt.Errorf("%s failed: %w", op, err)
}

// Logout завершает сессию. Запрос на сервер выполняется best effort;
// локальные identity и credential очищаются всегда.
func (s *Session) Logout(ctx context.Context) error {
	if s.creds.HasCredential() {
		if _, err := s.doer.Do(ctx, api.Post(pathLogout, nil)); err != nil {
			s.logger.Warn("server logout failed, clearing local session anyway", "error", err)
		}
	}

	clearErr := s.creds.Clear(ctx)
	s.setState(StateAnonymous, nil, "")

	if clearErr != nil {
		return fmt.Errorf("logout: %w", clearErr)
	}

	s.logger.Info("logged out")
	return nil
}

// Reload восстанавливает сессию по сохраненному credential.
// Без credential сетевой запрос не выполняется. Любая ошибка молча
// приводит к StateAnonymous.
func (s *Session) Reload(ctx context.Context) Snapshot {
	ok, err := s.creds.Load(ctx)
	if err != nil {
		s.logger.Warn("failed to load stored credential", "error", err)
	}
	if !ok {
		if s.Snapshot().State != StateAnonymous {
			s.setState(StateAnonymous, nil, "")
		}
		return s.Snapshot()
	}

	s.setState(StateAuthenticating, nil, "")

	resp, err := api.Call[pkgapi.User](ctx, s.doer, api.Get(pathCurrentUser))
	if err == nil && resp.Data.ID == "" {
		err = fmt.Errorf("%w: current user has no id", api.ErrMalformedResponse)
	}
	if err != nil {
		s.logger.Debug("session reload failed", "error", err)
		if errors.Is(err, api.ErrUnauthorized) && !errors.Is(err, api.ErrNetwork) {
			// credential отклонен даже после refresh: больше не пригоден.
			// Если refresh не дошел до сервера, слот остается до следующего запуска.
			if clearErr := s.creds.Clear(ctx); clearErr != nil {
				s.logger.Warn("failed to clear rejected credential", "error", clearErr)
			}
		} else {
			s.creds.Forget()
		}
		s.setState(StateAnonymous, nil, "")
		return s.Snapshot()
	}

	user := resp.Data
	s.setState(StateAuthenticated, &user, "")
	return s.Snapshot()
}

// UpdateAccountInput изменяемые поля профиля; пустые поля не меняются
type UpdateAccountInput struct {
	FullName string
	Email    string
}

// UpdateProfile обновляет профиль и сливает ответ в identity.
// Состояние сессии не меняется.
func (s *Session) UpdateProfile(ctx context.Context, in UpdateAccountInput) (*pkgapi.User, error) {
	if in.FullName == "" && in.Email == "" {
		return nil, api.Invalid("account", errors.New("nothing to update"))
	}
	if in.Email != "" {
		if err := api.Invalid("email", validation.ValidateEmail(in.Email)); err != nil {
			return nil, err
		}
	}
	if in.FullName != "" {
		if err := api.Invalid("fullName", validation.ValidateFullName(in.FullName)); err != nil {
			return nil, err
		}
	}
	snap := s.Snapshot()
	if snap.State != StateAuthenticated || snap.User == nil {
		return nil, ErrNotAuthenticated
	}

	// сервер требует оба поля: недостающее берем из текущей identity
	current := snap.User
	req := pkgapi.UpdateAccountRequest{FullName: in.FullName, Email: in.Email}
	if req.FullName == "" {
		req.FullName = current.FullName
	}
	if req.Email == "" {
		req.Email = current.Email
	}

	resp, err := api.Call[pkgapi.User](ctx, s.doer, api.Patch(pathUpdateAccount, req))
	if err != nil {
		return nil, fmt.Errorf("update account failed: %w", err)
	}
	return s.merge(resp.Data), nil
}

// ChangePassword меняет пароль текущего пользователя
func (s *Session) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	if err := api.Invalid("oldPassword", validation.ValidateRequired("old password", oldPassword)); err != nil {
		return err
	}
	if err := api.Invalid("newPassword", validation.ValidatePassword(newPassword)); err != nil {
		return err
	}
	if err := s.requireAuth(); err != nil {
		return err
	}

	req := pkgapi.ChangePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword}
	if _, err := s.doer.Do(ctx, api.Post(pathChangePassword, req)); err != nil {
		return fmt.Errorf("change password failed: %w", err)
	}
	return nil
}

// UpdateAvatar загружает новый аватар
func (s *Session) UpdateAvatar(ctx context.Context, file *api.File) (*pkgapi.User, error) {
	return s.uploadImage(ctx, pathAvatar, "avatar", file)
}

// UpdateCoverImage загружает новую обложку канала
func (s *Session) UpdateCoverImage(ctx context.Context, file *api.File) (*pkgapi.User, error) {
	return s.uploadImage(ctx, pathCoverImage, "coverImage", file)
}

func (s *Session) uploadImage(ctx context.Context, path, field string, file *api.File) (*pkgapi.User, error) {
	if file == nil {
		return nil, api.Invalid(field, validation.ErrRequired)
	}
	if err := s.requireAuth(); err != nil {
		return nil, err
	}

	req := api.Patch(path, nil).WithForm(api.NewForm().File(field, file))
	resp, err := api.Call[pkgapi.User](ctx, s.doer, req)
	if err != nil {
		return nil, fmt.Errorf("update %s failed: %w", field, err)
	}
	return s.merge(resp.Data), nil
}

// merge сливает обновление в identity, если сессия еще активна
func (s *Session) merge(update pkgapi.User) *pkgapi.User {
	s.mu.Lock()
	if s.state != StateAuthenticated || s.user == nil {
		s.mu.Unlock()
		return &update
	}
	merged := s.user.Merge(update)
	s.user = &merged
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.observers.Publish(snap)

	out := merged
	return &out
}
