package cli

import (
	"context"

	"github.com/urfave/cli/v3"
)

func (c *Cli) runDashboard(ctx context.Context, _ *cli.Command) error {
	if err := c.requireLogin(); err != nil {
		return err
	}

	stats, err := c.res.Dashboard.Stats(ctx)
	if err != nil {
		return err
	}
	videos, err := c.res.Dashboard.Videos(ctx)
	if err != nil {
		return err
	}

	s := stats.Data
	c.io.Println("=== Channel dashboard ===")
	c.io.Println()
	c.io.Printf("Videos: %d\n", s.TotalVideos)
	c.io.Printf("Views: %s\n", FormatViewCount(s.TotalViews))
	c.io.Printf("Subscribers: %s\n", FormatViewCount(s.TotalSubscribers))
	c.io.Printf("Likes: %s\n", FormatViewCount(s.TotalLikes))

	if len(videos.Data.Items) > 0 {
		c.io.Println()
		for _, v := range videos.Data.Items {
			state := "draft"
			if v.IsPublished {
				state = "published"
			}
			c.io.Printf("%-9s ", state)
			c.printVideoRow(v)
		}
	}
	return nil
}
