package resources

import (
	"context"
	"fmt"

	"github.com/iudanet/vidtube/internal/client/api"
	pkgapi "github.com/iudanet/vidtube/pkg/api"
)

// Subscriptions manages channel subscriptions.
type Subscriptions struct {
	doer api.Doer
}

// Toggle subscribes to or unsubscribes from a channel.
func (s *Subscriptions) Toggle(ctx context.Context, channelID string) (*pkgapi.Response[pkgapi.SubscriptionStatus], error) {
	if err := requireID("channelId", channelID); err != nil {
		return nil, err
	}

	resp, err := api.Call[pkgapi.SubscriptionStatus](ctx, s.doer, api.Post(path("subscriptions", "c", channelID), nil))
	if err != nil {
		return nil, fmt.Errorf("toggle subscription: %w", err)
	}
	return resp, nil
}

// SubscribedChannels lists subscriptions by channel id.
func (s *Subscriptions) SubscribedChannels(ctx context.Context, channelID string) (*pkgapi.Response[[]pkgapi.Subscription], error) {
	if err := requireID("channelId", channelID); err != nil {
		return nil, err
	}

	resp, err := api.Call[[]pkgapi.Subscription](ctx, s.doer, api.Get(path("subscriptions", "c", channelID)))
	if err != nil {
		return nil, fmt.Errorf("subscribed channels: %w", err)
	}
	return resp, nil
}

// ChannelSubscribers lists subscriptions by user id.
func (s *Subscriptions) ChannelSubscribers(ctx context.Context, userID string) (*pkgapi.Response[[]pkgapi.Subscription], error) {
	if err := requireID("userId", userID); err != nil {
		return nil, err
	}

	resp, err := api.Call[[]pkgapi.Subscription](ctx, s.doer, api.Get(path("subscriptions", "u", userID)))
	if err != nil {
		return nil, fmt.Errorf("channel subscribers: %w", err)
	}
	return resp, nil
}
