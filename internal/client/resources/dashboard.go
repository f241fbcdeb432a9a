package resources

import (
	"context"
	"fmt"

	"github.com/iudanet/vidtube/internal/client/api"
	pkgapi "github.com/iudanet/vidtube/pkg/api"
)

// Dashboard reads the current user's channel statistics.
type Dashboard struct {
	doer api.Doer
}

// Stats returns aggregate channel statistics.
func (d *Dashboard) Stats(ctx context.Context) (*pkgapi.Response[pkgapi.ChannelStats], error) {
	resp, err := api.Call[pkgapi.ChannelStats](ctx, d.doer, api.Get("/dashboard/stats"))
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return resp, nil
}

// Videos returns every video of the channel, published or not.
func (d *Dashboard) Videos(ctx context.Context) (*pkgapi.Response[pkgapi.Page[pkgapi.Video]], error) {
	resp, err := api.Call[pkgapi.Page[pkgapi.Video]](ctx, d.doer, api.Get("/dashboard/videos"))
	if err != nil {
		return nil, fmt.Errorf("dashboard videos: %w", err)
	}
	return resp, nil
}
