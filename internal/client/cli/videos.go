package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/iudanet/vidtube/internal/client/api"
	"github.com/iudanet/vidtube/internal/client/catalog"
	pkgapi "github.com/iudanet/vidtube/pkg/api"
)

const titleWidth = 40

func (c *Cli) runVideosList(ctx context.Context, cmd *cli.Command) error {
	filter := catalog.Filter{
		Query:      cmd.String("query"),
		SearchType: cmd.String("search-type"),
		SortBy:     cmd.String("sort-by"),
		SortType:   cmd.String("sort-type"),
		UserID:     cmd.String("user"),
		Page:       cmd.Int("page"),
		Limit:      cmd.Int("limit"),
	}
	if cmd.Bool("mine") {
		if err := c.requireLogin(); err != nil {
			return err
		}
		filter.UserID = c.currentUserID()
	}

	if _, err := c.catalog.FetchListing(ctx, filter); err != nil {
		return err
	}

	listing := c.catalog.Listing()
	if len(listing.Videos) == 0 {
		c.io.Println("No videos found.")
		return nil
	}

	c.io.Printf("=== Videos (page %d of %d, %d total) ===\n", max(listing.Page, 1), max(listing.TotalPages, 1), listing.TotalDocs)
	c.io.Println()
	for _, v := range listing.Videos {
		c.printVideoRow(v)
	}
	if listing.HasNextPage {
		c.io.Println()
		c.io.Printf("More results: --page %d\n", listing.Page+1)
	}
	return nil
}

func (c *Cli) runVideosShow(ctx context.Context, cmd *cli.Command) error {
	id, err := arg(cmd, 0, "video-id")
	if err != nil {
		return err
	}
	// текущий слот занят только на время показа
	defer c.catalog.ClearCurrent()

	if _, err := c.catalog.FetchByID(ctx, id); err != nil && !errors.Is(err, api.ErrNotFound) {
		return err
	}

	slot := c.catalog.Current()
	if slot.Status == catalog.SlotNotFound {
		return fmt.Errorf("video %s not found", id)
	}

	v := slot.Video
	c.io.Printf("=== %s ===\n", v.Title)
	c.io.Println()
	c.io.Printf("ID: %s\n", v.ID)
	c.io.Printf("Channel: %s\n", ownerName(v.Owner))
	c.io.Printf("Duration: %s\n", FormatDuration(v.Duration))
	c.io.Printf("Views: %s\n", FormatViewCount(v.Views))
	c.io.Printf("Published: %t\n", v.IsPublished)
	c.io.Printf("Uploaded: %s\n", formatDate(v.CreatedAt))
	c.io.Printf("Video URL: %s\n", orDash(v.VideoFile))
	c.io.Printf("Thumbnail: %s\n", orDash(v.Thumbnail))
	c.io.Println()
	c.io.Println(v.Description)
	return nil
}

func (c *Cli) runVideosPublish(ctx context.Context, cmd *cli.Command) error {
	if err := c.requireLogin(); err != nil {
		return err
	}

	videoFile, err := api.FileFromPath(cmd.String("file"))
	if err != nil {
		return err
	}
	thumbnail, err := optionalFile(cmd.String("thumbnail"))
	if err != nil {
		return err
	}

	c.io.Println("Uploading video...")
	v, err := c.catalog.Publish(ctx, catalog.PublishInput{
		VideoFile:   videoFile,
		Thumbnail:   thumbnail,
		Title:       cmd.String("title"),
		Description: cmd.String("description"),
	})
	if err != nil {
		return err
	}

	c.io.Println("✓ Video published!")
	c.io.Printf("ID: %s\n", v.ID)
	c.io.Printf("Title: %s\n", v.Title)
	return nil
}

func (c *Cli) runVideosUpdate(ctx context.Context, cmd *cli.Command) error {
	if err := c.requireLogin(); err != nil {
		return err
	}
	id, err := arg(cmd, 0, "video-id")
	if err != nil {
		return err
	}
	thumbnail, err := optionalFile(cmd.String("thumbnail"))
	if err != nil {
		return err
	}

	v, err := c.catalog.UpdateVideo(ctx, id, catalog.UpdateInput{
		Thumbnail:   thumbnail,
		Title:       cmd.String("title"),
		Description: cmd.String("description"),
	})
	if err != nil {
		return err
	}

	c.io.Println("✓ Video updated")
	c.io.Printf("ID: %s\n", v.ID)
	c.io.Printf("Title: %s\n", v.Title)
	return nil
}

func (c *Cli) runVideosDelete(ctx context.Context, cmd *cli.Command) error {
	if err := c.requireLogin(); err != nil {
		return err
	}
	id, err := arg(cmd, 0, "video-id")
	if err != nil {
		return err
	}

	if !cmd.Bool("yes") {
		answer, err := c.io.ReadInput(fmt.Sprintf("Delete video %s? [y/N]: ", id))
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if answer != "y" && answer != "Y" {
			c.io.Println("Cancelled.")
			return nil
		}
	}

	if err := c.catalog.DeleteVideo(ctx, id); err != nil {
		return err
	}
	c.io.Printf("✓ Video %s deleted\n", id)
	return nil
}

func (c *Cli) runVideosToggle(ctx context.Context, cmd *cli.Command) error {
	if err := c.requireLogin(); err != nil {
		return err
	}
	id, err := arg(cmd, 0, "video-id")
	if err != nil {
		return err
	}

	v, err := c.catalog.TogglePublish(ctx, id)
	if err != nil {
		return err
	}

	if v.IsPublished {
		c.io.Printf("✓ Video %s is now published\n", id)
	} else {
		c.io.Printf("✓ Video %s is now unpublished\n", id)
	}
	return nil
}

// printVideoRow печатает видео одной строкой списка
func (c *Cli) printVideoRow(v pkgapi.Video) {
	c.io.Printf("%-24s  %-43s  %8s  %6s views  %s\n",
		v.ID, Truncate(v.Title, titleWidth), FormatDuration(v.Duration), FormatViewCount(v.Views), ownerName(v.Owner))
}

func ownerName(o pkgapi.Owner) string {
	switch {
	case o.Username != "":
		return "@" + o.Username
	case o.FullName != "":
		return o.FullName
	default:
		return orDash(o.ID)
	}
}
