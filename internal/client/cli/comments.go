package cli

import (
	"context"

	"github.com/urfave/cli/v3"
)

func (c *Cli) runCommentsList(ctx context.Context, cmd *cli.Command) error {
	videoID, err := arg(cmd, 0, "video-id")
	if err != nil {
		return err
	}

	resp, err := c.res.Comments.List(ctx, videoID, cmd.Int("page"), cmd.Int("limit"))
	if err != nil {
		return err
	}

	page := resp.Data
	if len(page.Items) == 0 {
		c.io.Println("No comments yet.")
		return nil
	}

	c.io.Printf("=== Comments (%d total) ===\n", page.TotalDocs)
	c.io.Println()
	for _, cm := range page.Items {
		c.io.Printf("[%s] %s %s\n", cm.ID, ownerName(cm.Owner), formatDate(cm.CreatedAt))
		c.io.Printf("  %s\n", cm.Content)
	}
	if page.HasNextPage {
		c.io.Println()
		c.io.Printf("More comments: --page %d\n", page.Page+1)
	}
	return nil
}

func (c *Cli) runCommentsAdd(ctx context.Context, cmd *cli.Command) error {
	if err := c.requireLogin(); err != nil {
		return err
	}
	videoID, err := arg(cmd, 0, "video-id")
	if err != nil {
		return err
	}
	content, err := arg(cmd, 1, "text")
	if err != nil {
		return err
	}

	resp, err := c.res.Comments.Add(ctx, videoID, content)
	if err != nil {
		return err
	}
	c.io.Printf("✓ Comment added: %s\n", resp.Data.ID)
	return nil
}

func (c *Cli) runCommentsEdit(ctx context.Context, cmd *cli.Command) error {
	if err := c.requireLogin(); err != nil {
		return err
	}
	commentID, err := arg(cmd, 0, "comment-id")
	if err != nil {
		return err
	}
	content, err := arg(cmd, 1, "text")
	if err != nil {
		return err
	}

	if _, err := c.res.Comments.Update(ctx, commentID, content); err != nil {
		return err
	}
	c.io.Printf("✓ Comment %s updated\n", commentID)
	return nil
}

func (c *Cli) runCommentsDelete(ctx context.Context, cmd *cli.Command) error {
	if err := c.requireLogin(); err != nil {
		return err
	}
	commentID, err := arg(cmd, 0, "comment-id")
	if err != nil {
		return err
	}

	if _, err := c.res.Comments.Delete(ctx, commentID); err != nil {
		return err
	}
	c.io.Printf("✓ Comment %s deleted\n", commentID)
	return nil
}
