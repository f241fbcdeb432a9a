package resources

import (
	"context"
	"fmt"

	"github.com/iudanet/vidtube/internal/client/api"
	"github.com/iudanet/vidtube/internal/validation"
	pkgapi "github.com/iudanet/vidtube/pkg/api"
)

// Comments operates on video comments.
type Comments struct {
	doer api.Doer
}

// List returns a page of comments of a video. Zero page or limit use the server default.
func (c *Comments) List(ctx context.Context, videoID string, page, limit int) (*pkgapi.Response[pkgapi.Page[pkgapi.Comment]], error) {
	if err := requireID("videoId", videoID); err != nil {
		return nil, err
	}

	resp, err := api.Call[pkgapi.Page[pkgapi.Comment]](ctx, c.doer,
		api.Get(path("comments", videoID)).WithQuery(pageQuery(page, limit)))
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return resp, nil
}

// Add posts a comment on a video.
func (c *Comments) Add(ctx context.Context, videoID, content string) (*pkgapi.Response[pkgapi.Comment], error) {
	if err := requireID("videoId", videoID); err != nil {
		return nil, err
	}
	if err := api.Invalid("content", validation.ValidateRequired("content", content)); err != nil {
		return nil, err
	}

	resp, err := api.Call[pkgapi.Comment](ctx, c.doer,
		api.Post(path("comments", videoID), pkgapi.CommentRequest{Content: content}))
	if err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}
	return resp, nil
}

// Update edits a comment.
func (c *Comments) Update(ctx context.Context, commentID, content string) (*pkgapi.Response[pkgapi.Comment], error) {
	if err := requireID("commentId", commentID); err != nil {
		return nil, err
	}
	if err := api.Invalid("content", validation.ValidateRequired("content", content)); err != nil {
		return nil, err
	}

	resp, err := api.Call[pkgapi.Comment](ctx, c.doer,
		api.Patch(path("comments", "c", commentID), pkgapi.CommentRequest{Content: content}))
	if err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return resp, nil
}

// Delete removes a comment.
func (c *Comments) Delete(ctx context.Context, commentID string) (*pkgapi.Response[Empty], error) {
	if err := requireID("commentId", commentID); err != nil {
		return nil, err
	}

	resp, err := api.Call[Empty](ctx, c.doer, api.Delete(path("comments", "c", commentID)))
	if err != nil {
		return nil, fmt.Errorf("delete comment: %w", err)
	}
	return resp, nil
}
