package resources

import (
	"context"
	"fmt"

	"github.com/iudanet/vidtube/internal/client/api"
	pkgapi "github.com/iudanet/vidtube/pkg/api"
)

// Likes toggles likes. The returned status is the server's; no prior state is assumed.
type Likes struct {
	doer api.Doer
}

// ToggleVideo likes or unlikes a video.
func (l *Likes) ToggleVideo(ctx context.Context, videoID string) (*pkgapi.Response[pkgapi.LikeStatus], error) {
	return l.toggle(ctx, "v", "videoId", videoID)
}

// ToggleComment likes or unlikes a comment.
func (l *Likes) ToggleComment(ctx context.Context, commentID string) (*pkgapi.Response[pkgapi.LikeStatus], error) {
	return l.toggle(ctx, "c", "commentId", commentID)
}

// ToggleTweet likes or unlikes a tweet.
func (l *Likes) ToggleTweet(ctx context.Context, tweetID string) (*pkgapi.Response[pkgapi.LikeStatus], error) {
	return l.toggle(ctx, "t", "tweetId", tweetID)
}

func (l *Likes) toggle(ctx context.Context, kind, field, id string) (*pkgapi.Response[pkgapi.LikeStatus], error) {
	if err := requireID(field, id); err != nil {
		return nil, err
	}

	resp, err := api.Call[pkgapi.LikeStatus](ctx, l.doer, api.Post(path("likes", "toggle", kind, id), nil))
	if err != nil {
		return nil, fmt.Errorf("toggle like: %w", err)
	}
	return resp, nil
}

// LikedVideos lists the videos liked by the current user.
func (l *Likes) LikedVideos(ctx context.Context) (*pkgapi.Response[[]pkgapi.LikedVideo], error) {
	resp, err := api.Call[[]pkgapi.LikedVideo](ctx, l.doer, api.Get("/likes/videos"))
	if err != nil {
		return nil, fmt.Errorf("liked videos: %w", err)
	}
	return resp, nil
}
