package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	pkgapi "github.com/iudanet/vidtube/pkg/api"
)

func (c *Cli) runPlaylistsList(ctx context.Context, _ *cli.Command) error {
	if err := c.requireLogin(); err != nil {
		return err
	}

	resp, err := c.res.Playlists.List(ctx)
	if err != nil {
		return err
	}
	if len(resp.Data) == 0 {
		c.io.Println("No playlists.")
		return nil
	}

	c.io.Printf("=== Playlists (%d) ===\n", len(resp.Data))
	for _, p := range resp.Data {
		c.io.Printf("%-24s  %-30s  %d videos\n", p.ID, Truncate(p.Name, 27), len(p.Videos))
	}
	return nil
}

func (c *Cli) runPlaylistsShow(ctx context.Context, cmd *cli.Command) error {
	id, err := arg(cmd, 0, "playlist-id")
	if err != nil {
		return err
	}

	resp, err := c.res.Playlists.Get(ctx, id)
	if err != nil {
		return err
	}
	c.printPlaylist(resp.Data)
	return nil
}

func (c *Cli) runPlaylistsCreate(ctx context.Context, cmd *cli.Command) error {
	if err := c.requireLogin(); err != nil {
		return err
	}
	name, err := arg(cmd, 0, "name")
	if err != nil {
		return err
	}

	resp, err := c.res.Playlists.Create(ctx, name, cmd.String("description"))
	if err != nil {
		return err
	}
	c.io.Printf("✓ Playlist created: %s\n", resp.Data.ID)
	return nil
}

func (c *Cli) runPlaylistsUpdate(ctx context.Context, cmd *cli.Command) error {
	if err := c.requireLogin(); err != nil {
		return err
	}
	id, err := arg(cmd, 0, "playlist-id")
	if err != nil {
		return err
	}

	resp, err := c.res.Playlists.Update(ctx, id, cmd.String("name"), cmd.String("description"))
	if err != nil {
		return err
	}
	c.io.Println("✓ Playlist updated")
	c.printPlaylist(resp.Data)
	return nil
}

func (c *Cli) runPlaylistsDelete(ctx context.Context, cmd *cli.Command) error {
	if err := c.requireLogin(); err != nil {
		return err
	}
	id, err := arg(cmd, 0, "playlist-id")
	if err != nil {
		return err
	}

	if _, err := c.res.Playlists.Delete(ctx, id); err != nil {
		return err
	}
	c.io.Printf("✓ Playlist %s deleted\n", id)
	return nil
}

func (c *Cli) runPlaylistsAdd(ctx context.Context, cmd *cli.Command) error {
	return c.editPlaylist(ctx, cmd, "added to", c.res.Playlists.AddVideo)
}

func (c *Cli) runPlaylistsRemove(ctx context.Context, cmd *cli.Command) error {
	return c.editPlaylist(ctx, cmd, "removed from", c.res.Playlists.RemoveVideo)
}

func (c *Cli) editPlaylist(ctx context.Context, cmd *cli.Command, verb string,
	edit func(ctx context.Context, playlistID, videoID string) (*pkgapi.Response[pkgapi.Playlist], error),
) error {
	if err := c.requireLogin(); err != nil {
		return err
	}
	playlistID, err := arg(cmd, 0, "playlist-id")
	if err != nil {
		return err
	}
	videoID, err := arg(cmd, 1, "video-id")
	if err != nil {
		return err
	}

	if _, err := edit(ctx, playlistID, videoID); err != nil {
		return err
	}
	c.io.Printf("✓ Video %s %s playlist %s\n", videoID, verb, playlistID)
	return nil
}

func (c *Cli) printPlaylist(p pkgapi.Playlist) {
	c.io.Printf("=== %s ===\n", p.Name)
	c.io.Printf("ID: %s\n", p.ID)
	c.io.Printf("Owner: %s\n", ownerName(p.Owner))
	if p.Description != "" {
		c.io.Println(p.Description)
	}
	c.io.Println()
	if len(p.Videos) == 0 {
		c.io.Println("Playlist is empty.")
		return
	}
	for _, v := range p.Videos {
		c.printVideoRow(v)
	}
}
