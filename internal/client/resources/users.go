package resources

import (
	"context"
	"fmt"

	"github.com/iudanet/vidtube/internal/client/api"
	pkgapi "github.com/iudanet/vidtube/pkg/api"
)

// Users reads public channel profiles and the watch history.
type Users struct {
	doer api.Doer
}

// Channel returns a channel profile by username.
func (u *Users) Channel(ctx context.Context, username string) (*pkgapi.Response[pkgapi.Channel], error) {
	if err := requireID("username", username); err != nil {
		return nil, err
	}

	resp, err := api.Call[pkgapi.Channel](ctx, u.doer, api.Get(path("users", "c", username)))
	if err != nil {
		return nil, fmt.Errorf("channel profile: %w", err)
	}
	return resp, nil
}

// WatchHistory returns the current user's watched videos, most recent first.
func (u *Users) WatchHistory(ctx context.Context) (*pkgapi.Response[[]pkgapi.Video], error) {
	resp, err := api.Call[[]pkgapi.Video](ctx, u.doer, api.Get("/users/history"))
	if err != nil {
		return nil, fmt.Errorf("watch history: %w", err)
	}
	return resp, nil
}
