package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/iudanet/vidtube/internal/client/auth"
	"github.com/iudanet/vidtube/internal/client/catalog"
	"github.com/iudanet/vidtube/internal/client/iocli"
	"github.com/iudanet/vidtube/internal/client/resources"
)

// Globals значения глобальных флагов. Пустые значения означают "взять из конфига".
type Globals struct {
	ConfigPath string
	ServerURL  string
	DBPath     string
	LogLevel   string
}

// Deps собранные сервисы клиента
type Deps struct {
	Session   *auth.Session
	Catalog   *catalog.Store
	Resources *resources.Services
	Logger    *slog.Logger
	// Close освобождает хранилище; может быть nil
	Close func() error
}

// SetupFunc собирает зависимости по глобальным флагам
type SetupFunc func(ctx context.Context, g Globals) (*Deps, error)

type Cli struct {
	io      iocli.IO
	setup   SetupFunc
	deps    *Deps
	session *auth.Session
	catalog *catalog.Store
	res     *resources.Services
	logger  *slog.Logger
}

func New(io iocli.IO, setup SetupFunc) *Cli {
	return &Cli{
		io:    io,
		setup: setup,
	}
}

// Command возвращает корневую команду vidtube
func (c *Cli) Command(version string) *cli.Command {
	return &cli.Command{
		Name:      "vidtube",
		Usage:     "Command-line client for the vidtube video platform",
		Version:   version,
		Writer:    c.io,
		ErrWriter: c.io,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
			&cli.StringFlag{
				Name:  "server",
				Usage: "API base URL, e.g. http://localhost:8000/api/v1",
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "Path to local database",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
			},
		},
		Before:   c.before,
		After:    c.after,
		Commands: c.commands(),
	}
}

// before собирает сервисы и восстанавливает сессию перед любой командой
func (c *Cli) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if c.deps != nil || offline[cmd.Args().First()] {
		return ctx, nil
	}

	deps, err := c.setup(ctx, Globals{
		ConfigPath: cmd.String("config"),
		ServerURL:  cmd.String("server"),
		DBPath:     cmd.String("db"),
		LogLevel:   cmd.String("log-level"),
	})
	if err != nil {
		return ctx, err
	}

	c.deps = deps
	c.session = deps.Session
	c.catalog = deps.Catalog
	c.res = deps.Resources
	c.logger = deps.Logger
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}

	snap := c.session.Reload(ctx)
	c.logger.Debug("session restored", "state", snap.State)
	return ctx, nil
}

func (c *Cli) after(_ context.Context, _ *cli.Command) error {
	if c.deps == nil || c.deps.Close == nil {
		return nil
	}
	err := c.deps.Close()
	c.deps = nil
	return err
}

// requireLogin проверяет, что Reload восстановил сессию
func (c *Cli) requireLogin() error {
	if c.session.Snapshot().State != auth.StateAuthenticated {
		return fmt.Errorf("%w. Please run 'vidtube login' first", auth.ErrNotAuthenticated)
	}
	return nil
}

// currentUserID id вошедшего пользователя или пустая строка
func (c *Cli) currentUserID() string {
	if u := c.session.Snapshot().User; u != nil {
		return u.ID
	}
	return ""
}

// errArgs ошибка нехватки позиционных аргументов
var errArgs = errors.New("missing argument")

// arg возвращает обязательный позиционный аргумент
func arg(cmd *cli.Command, i int, name string) (string, error) {
	v := cmd.Args().Get(i)
	if v == "" {
		return "", fmt.Errorf("%w: <%s>", errArgs, name)
	}
	return v, nil
}
