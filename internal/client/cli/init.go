package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/iudanet/vidtube/internal/config"
)

// offline команды не требуют сервисов и восстановления сессии.
// Пустое имя: vidtube без подкоманды только печатает справку.
var offline = map[string]bool{
	"":     true,
	"init": true,
	"help": true,
	"h":    true,
}

func (c *Cli) runInit(_ context.Context, cmd *cli.Command) error {
	path := cmd.String("path")
	if path == "" {
		path = cmd.Root().String("config")
	}
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	if err := config.CreateConfigFile(path); err != nil {
		return err
	}
	c.io.Printf("✓ Config written to %s\n", path)
	return nil
}
