// Package resources contains stateless request builders for the secondary
// backend resources. Every method maps to one endpoint and returns the
// decoded response envelope; nothing is cached, toggles report exactly what
// the server returned.
package resources

import (
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/iudanet/vidtube/internal/client/api"
	"github.com/iudanet/vidtube/internal/validation"
)

// Empty is the payload of endpoints whose data is not interpreted.
type Empty = json.RawMessage

// Services groups the resource services over one transport.
type Services struct {
	Comments      *Comments
	Likes         *Likes
	Subscriptions *Subscriptions
	Playlists     *Playlists
	Dashboard     *Dashboard
	Users         *Users
}

// New creates all resource services.
func New(doer api.Doer) *Services {
	return &Services{
		Comments:      &Comments{doer: doer},
		Likes:         &Likes{doer: doer},
		Subscriptions: &Subscriptions{doer: doer},
		Playlists:     &Playlists{doer: doer},
		Dashboard:     &Dashboard{doer: doer},
		Users:         &Users{doer: doer},
	}
}

func requireID(field, id string) error {
	return api.Invalid(field, validation.ValidateRequired(field, id))
}

func path(parts ...string) string {
	var p string
	for _, part := range parts {
		p += "/" + url.PathEscape(part)
	}
	return p
}

func pageQuery(page, limit int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}
