package cli

import (
	"context"
	"strings"

	"github.com/urfave/cli/v3"

	pkgapi "github.com/iudanet/vidtube/pkg/api"
)

func (c *Cli) runLikeVideo(ctx context.Context, cmd *cli.Command) error {
	return c.toggleLike(ctx, cmd, "video-id", c.res.Likes.ToggleVideo)
}

func (c *Cli) runLikeComment(ctx context.Context, cmd *cli.Command) error {
	return c.toggleLike(ctx, cmd, "comment-id", c.res.Likes.ToggleComment)
}

func (c *Cli) toggleLike(ctx context.Context, cmd *cli.Command, name string,
	toggle func(context.Context, string) (*pkgapi.Response[pkgapi.LikeStatus], error),
) error {
	if err := c.requireLogin(); err != nil {
		return err
	}
	id, err := arg(cmd, 0, name)
	if err != nil {
		return err
	}

	resp, err := toggle(ctx, id)
	if err != nil {
		return err
	}
	if resp.Data.IsLiked {
		c.io.Printf("✓ Liked %s\n", id)
	} else {
		c.io.Printf("✓ Removed like from %s\n", id)
	}
	return nil
}

func (c *Cli) runLiked(ctx context.Context, _ *cli.Command) error {
	if err := c.requireLogin(); err != nil {
		return err
	}

	resp, err := c.res.Likes.LikedVideos(ctx)
	if err != nil {
		return err
	}
	if len(resp.Data) == 0 {
		c.io.Println("No liked videos.")
		return nil
	}

	c.io.Printf("=== Liked videos (%d) ===\n", len(resp.Data))
	c.io.Println()
	for _, lv := range resp.Data {
		c.printVideoRow(lv.Video)
	}
	return nil
}

func (c *Cli) runSubscribe(ctx context.Context, cmd *cli.Command) error {
	if err := c.requireLogin(); err != nil {
		return err
	}
	channelID, err := arg(cmd, 0, "channel-id")
	if err != nil {
		return err
	}

	resp, err := c.res.Subscriptions.Toggle(ctx, channelID)
	if err != nil {
		return err
	}
	if resp.Data.Subscribed {
		c.io.Printf("✓ Subscribed to %s\n", channelID)
	} else {
		c.io.Printf("✓ Unsubscribed from %s\n", channelID)
	}
	return nil
}

// runSubscriptions каналы, на которые подписан пользователь (по умолчанию текущий)
func (c *Cli) runSubscriptions(ctx context.Context, cmd *cli.Command) error {
	id, err := c.userArg(cmd)
	if err != nil {
		return err
	}

	resp, err := c.res.Subscriptions.SubscribedChannels(ctx, id)
	if err != nil {
		return err
	}
	c.printOwners("Subscriptions", resp.Data, func(s pkgapi.Subscription) pkgapi.Owner { return s.Channel })
	return nil
}

// runSubscribers подписчики канала (по умолчанию текущего пользователя)
func (c *Cli) runSubscribers(ctx context.Context, cmd *cli.Command) error {
	id, err := c.userArg(cmd)
	if err != nil {
		return err
	}

	resp, err := c.res.Subscriptions.ChannelSubscribers(ctx, id)
	if err != nil {
		return err
	}
	c.printOwners("Subscribers", resp.Data, func(s pkgapi.Subscription) pkgapi.Owner { return s.Subscriber })
	return nil
}

func (c *Cli) printOwners(title string, subs []pkgapi.Subscription, pick func(pkgapi.Subscription) pkgapi.Owner) {
	if len(subs) == 0 {
		c.io.Printf("No %s.\n", strings.ToLower(title))
		return
	}
	c.io.Printf("=== %s (%d) ===\n", title, len(subs))
	for _, s := range subs {
		o := pick(s)
		c.io.Printf("%-24s  %s\n", o.ID, ownerName(o))
	}
}

func (c *Cli) runChannel(ctx context.Context, cmd *cli.Command) error {
	username, err := arg(cmd, 0, "username")
	if err != nil {
		return err
	}

	resp, err := c.res.Users.Channel(ctx, username)
	if err != nil {
		return err
	}

	ch := resp.Data
	c.io.Printf("=== %s (@%s) ===\n", ch.FullName, ch.Username)
	c.io.Printf("Channel ID: %s\n", ch.ID)
	c.io.Printf("Subscribers: %s\n", FormatViewCount(ch.SubscribersCount))
	c.io.Printf("Subscribed to: %d\n", ch.ChannelsSubscribedToCount)
	if ch.IsSubscribed {
		c.io.Println("You are subscribed to this channel.")
	}
	if len(ch.Videos) > 0 {
		c.io.Println()
		for _, v := range ch.Videos {
			c.printVideoRow(v)
		}
	}
	return nil
}

func (c *Cli) runHistory(ctx context.Context, _ *cli.Command) error {
	if err := c.requireLogin(); err != nil {
		return err
	}

	resp, err := c.res.Users.WatchHistory(ctx)
	if err != nil {
		return err
	}
	if len(resp.Data) == 0 {
		c.io.Println("Watch history is empty.")
		return nil
	}

	c.io.Printf("=== Watch history (%d) ===\n", len(resp.Data))
	c.io.Println()
	for _, v := range resp.Data {
		c.printVideoRow(v)
	}
	return nil
}

// userArg берет id из аргумента или id текущего пользователя
func (c *Cli) userArg(cmd *cli.Command) (string, error) {
	if id := cmd.Args().First(); id != "" {
		return id, nil
	}
	if err := c.requireLogin(); err != nil {
		return "", err
	}
	return c.currentUserID(), nil
}
