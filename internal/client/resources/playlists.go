package resources

import (
	"context"
	"fmt"

	"github.com/iudanet/vidtube/internal/client/api"
	"github.com/iudanet/vidtube/internal/validation"
	pkgapi "github.com/iudanet/vidtube/pkg/api"
)

// Playlists manages the current user's playlists.
type Playlists struct {
	doer api.Doer
}

// List returns the current user's playlists.
func (p *Playlists) List(ctx context.Context) (*pkgapi.Response[[]pkgapi.Playlist], error) {
	resp, err := api.Call[[]pkgapi.Playlist](ctx, p.doer, api.Get("/playlist"))
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	return resp, nil
}

// Get returns one playlist with its videos.
func (p *Playlists) Get(ctx context.Context, playlistID string) (*pkgapi.Response[pkgapi.Playlist], error) {
	if err := requireID("playlistId", playlistID); err != nil {
		return nil, err
	}

	resp, err := api.Call[pkgapi.Playlist](ctx, p.doer, api.Get(path("playlist", playlistID)))
	if err != nil {
		return nil, fmt.Errorf("get playlist: %w", err)
	}
	return resp, nil
}

// Create creates a playlist.
func (p *Playlists) Create(ctx context.Context, name, description string) (*pkgapi.Response[pkgapi.Playlist], error) {
	if err := api.Invalid("name", validation.ValidateRequired("name", name)); err != nil {
		return nil, err
	}

	resp, err := api.Call[pkgapi.Playlist](ctx, p.doer,
		api.Post("/playlist", pkgapi.PlaylistRequest{Name: name, Description: description}))
	if err != nil {
		return nil, fmt.Errorf("create playlist: %w", err)
	}
	return resp, nil
}

// Update renames a playlist or changes its description.
func (p *Playlists) Update(ctx context.Context, playlistID, name, description string) (*pkgapi.Response[pkgapi.Playlist], error) {
	if err := requireID("playlistId", playlistID); err != nil {
		return nil, err
	}
	if err := api.Invalid("name", validation.ValidateRequired("name", name)); err != nil {
		return nil, err
	}

	resp, err := api.Call[pkgapi.Playlist](ctx, p.doer,
		api.Patch(path("playlist", playlistID), pkgapi.PlaylistRequest{Name: name, Description: description}))
	if err != nil {
		return nil, fmt.Errorf("update playlist: %w", err)
	}
	return resp, nil
}

// Delete removes a playlist.
func (p *Playlists) Delete(ctx context.Context, playlistID string) (*pkgapi.Response[Empty], error) {
	if err := requireID("playlistId", playlistID); err != nil {
		return nil, err
	}

	resp, err := api.Call[Empty](ctx, p.doer, api.Delete(path("playlist", playlistID)))
	if err != nil {
		return nil, fmt.Errorf("delete playlist: %w", err)
	}
	return resp, nil
}

// AddVideo appends a video to a playlist.
func (p *Playlists) AddVideo(ctx context.Context, playlistID, videoID string) (*pkgapi.Response[pkgapi.Playlist], error) {
	return p.edit(ctx, "add", playlistID, videoID)
}

// RemoveVideo removes a video from a playlist.
func (p *Playlists) RemoveVideo(ctx context.Context, playlistID, videoID string) (*pkgapi.Response[pkgapi.Playlist], error) {
	return p.edit(ctx, "remove", playlistID, videoID)
}

func (p *Playlists) edit(ctx context.Context, action, playlistID, videoID string) (*pkgapi.Response[pkgapi.Playlist], error) {
	if err := requireID("playlistId", playlistID); err != nil {
		return nil, err
	}
	if err := requireID("videoId", videoID); err != nil {
		return nil, err
	}

	resp, err := api.Call[pkgapi.Playlist](ctx, p.doer, api.Patch(path("playlist", action, videoID, playlistID), nil))
	if err != nil {
		return nil, fmt.Errorf("%s playlist video: %w", action, err)
	}
	return resp, nil
}
