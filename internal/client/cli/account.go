package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/iudanet/vidtube/internal/client/api"
	"github.com/iudanet/vidtube/internal/client/auth"
	pkgapi "github.com/iudanet/vidtube/pkg/api"
)

func (c *Cli) runRegister(ctx context.Context, cmd *cli.Command) error {
	c.io.Println("=== Registration ===")
	c.io.Println()

	username, err := c.flagOrInput(cmd, "username", "Username: ")
	if err != nil {
		return err
	}
	email, err := c.flagOrInput(cmd, "email", "Email: ")
	if err != nil {
		return err
	}
	fullName, err := c.flagOrInput(cmd, "full-name", "Full name: ")
	if err != nil {
		return err
	}
	avatarPath, err := c.flagOrInput(cmd, "avatar", "Avatar image path: ")
	if err != nil {
		return err
	}

	password, err := c.io.ReadPassword("Password (min 6 chars): ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	confirm, err := c.io.ReadPassword("Confirm password: ")
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	in := auth.RegisterInput{
		Username: username,
		Email:    email,
		Password: password,
		FullName: fullName,
	}
	if avatarPath != "" {
		if in.Avatar, err = api.FileFromPath(avatarPath); err != nil {
			return err
		}
	}
	if in.CoverImage, err = optionalFile(cmd.String("cover")); err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("Registering user...")

	user, err := c.session.Register(ctx, in)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Registration successful!")
	c.printUser(user)
	c.io.Println()
	c.io.Println("You are now logged in.")
	return nil
}

func (c *Cli) runLogin(ctx context.Context, cmd *cli.Command) error {
	c.io.Println("=== Login ===")
	c.io.Println()

	email, err := c.flagOrInput(cmd, "email", "Email: ")
	if err != nil {
		return err
	}
	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	c.io.Println()
	c.io.Println("Authenticating...")

	user, err := c.session.Login(ctx, email, password)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Login successful!")
	c.io.Printf("Logged in as: %s (@%s)\n", user.FullName, user.Username)
	c.io.Println("Your session has been saved.")
	return nil
}

func (c *Cli) runLogout(ctx context.Context, _ *cli.Command) error {
	c.io.Println("=== Logout ===")

	if err := c.session.Logout(ctx); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	c.io.Println("✓ Logout successful!")
	c.io.Println("Your local session has been deleted.")
	return nil
}

func (c *Cli) runStatus(_ context.Context, _ *cli.Command) error {
	c.io.Println("=== Authentication Status ===")
	c.io.Println()

	snap := c.session.Snapshot()
	if snap.State != auth.StateAuthenticated || snap.User == nil {
		c.io.Println("Status: Not authenticated")
		c.io.Println()
		c.io.Println("Run 'vidtube login' to authenticate.")
		return nil
	}

	c.io.Println("Status: Authenticated")
	c.io.Printf("Username: %s\n", snap.User.Username)
	c.io.Printf("Email: %s\n", snap.User.Email)

	if !snap.ExpiresAt.IsZero() {
		c.io.Printf("Token expires: %s\n", snap.ExpiresAt.Format(time.RFC3339))
		if remaining := time.Until(snap.ExpiresAt); remaining > 0 {
			c.io.Printf("Time remaining: %s\n", remaining.Round(time.Second))
		} else {
			c.io.Println("⚠️  Access token has expired and will be refreshed on next request.")
		}
	}
	return nil
}

func (c *Cli) runWhoami(_ context.Context, _ *cli.Command) error {
	if err := c.requireLogin(); err != nil {
		return err
	}
	c.printUser(c.session.Snapshot().User)
	return nil
}

func (c *Cli) runProfileUpdate(ctx context.Context, cmd *cli.Command) error {
	if err := c.requireLogin(); err != nil {
		return err
	}

	user, err := c.session.UpdateProfile(ctx, auth.UpdateAccountInput{
		FullName: cmd.String("full-name"),
		Email:    cmd.String("email"),
	})
	if err != nil {
		return err
	}

	c.io.Println("✓ Profile updated")
	c.printUser(user)
	return nil
}

func (c *Cli) runProfileAvatar(ctx context.Context, cmd *cli.Command) error {
	return c.uploadImage(ctx, cmd, "Avatar", c.session.UpdateAvatar)
}

func (c *Cli) runProfileCover(ctx context.Context, cmd *cli.Command) error {
	return c.uploadImage(ctx, cmd, "Cover image", c.session.UpdateCoverImage)
}

func (c *Cli) uploadImage(ctx context.Context, cmd *cli.Command, what string,
	upload func(context.Context, *api.File) (*pkgapi.User, error),
) error {
	if err := c.requireLogin(); err != nil {
		return err
	}
	path, err := arg(cmd, 0, "path")
	if err != nil {
		return err
	}
	file, err := api.FileFromPath(path)
	if err != nil {
		return err
	}

	if _, err := upload(ctx, file); err != nil {
		return err
	}
	c.io.Printf("✓ %s updated\n", what)
	return nil
}

func (c *Cli) runPassword(ctx context.Context, _ *cli.Command) error {
	if err := c.requireLogin(); err != nil {
		return err
	}

	oldPassword, err := c.io.ReadPassword("Current password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	newPassword, err := c.io.ReadPassword("New password (min 6 chars): ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	confirm, err := c.io.ReadPassword("Confirm new password: ")
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}
	if newPassword != confirm {
		return fmt.Errorf("passwords do not match")
	}

	if err := c.session.ChangePassword(ctx, oldPassword, newPassword); err != nil {
		return err
	}
	c.io.Println("✓ Password changed")
	return nil
}

func (c *Cli) printUser(u *pkgapi.User) {
	if u == nil {
		return
	}
	c.io.Printf("User ID: %s\n", u.ID)
	c.io.Printf("Username: %s\n", u.Username)
	c.io.Printf("Full name: %s\n", u.FullName)
	c.io.Printf("Email: %s\n", u.Email)
	c.io.Printf("Avatar: %s\n", orDash(u.Avatar))
	if u.CoverImage != "" {
		c.io.Printf("Cover image: %s\n", u.CoverImage)
	}
	c.io.Printf("Joined: %s\n", formatDate(u.CreatedAt))
}

// flagOrInput берет значение флага, а если он пуст, спрашивает пользователя
func (c *Cli) flagOrInput(cmd *cli.Command, flag, prompt string) (string, error) {
	if v := cmd.String(flag); v != "" {
		return v, nil
	}
	v, err := c.io.ReadInput(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", flag, err)
	}
	return v, nil
}

// optionalFile открывает файл, если путь задан
func optionalFile(path string) (*api.File, error) {
	if path == "" {
		return nil, nil
	}
	return api.FileFromPath(path)
}
