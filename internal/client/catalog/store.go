// Package catalog holds the client-side video catalog: the current listing
// and the single video being viewed, reconciled with user actions.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"sync"

	"github.com/iudanet/vidtube/internal/client/api"
	"github.com/iudanet/vidtube/internal/client/observe"
	"github.com/iudanet/vidtube/internal/validation"
	pkgapi "github.com/iudanet/vidtube/pkg/api"
)

const pathVideos = "/videos"

func videoPath(id string) string {
	return pathVideos + "/" + url.PathEscape(id)
}

// Store is the catalog state container. All methods are safe for concurrent use.
type Store struct {
	doer      api.Doer
	logger    *slog.Logger
	observers observe.Subject[State]
	listing   Listing
	current   Slot
	// generations of the latest issued fetches, used by the stale guard
	listingGen uint64
	slotGen    uint64
	staleGuard bool
	mu         sync.RWMutex
}

// Option configures a Store.
type Option func(*Store)

// WithStaleGuard discards fetch results that resolve after a newer fetch
// was issued. Without it the last response to arrive wins.
func WithStaleGuard() Option {
	return func(s *Store) {
		s.staleGuard = true
	}
}

// WithLogger sets the store logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates an empty catalog.
func NewStore(doer api.Doer, opts ...Option) *Store {
	s := &Store{
		doer:   doer,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers an observer and returns its unsubscribe function.
func (s *Store) Subscribe(fn func(State)) func() {
	return s.observers.Subscribe(fn)
}

// Listing returns a copy of the current listing.
func (s *Store) Listing() Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listing.clone()
}

// Current returns a copy of the current-video slot.
func (s *Store) Current() Slot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.clone()
}

// State returns a copy of the whole store state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked()
}

func (s *Store) stateLocked() State {
	return State{Listing: s.listing.clone(), Current: s.current.clone()}
}

// update runs fn under the write lock and notifies observers if fn reports a change.
func (s *Store) update(fn func() bool) {
	s.mu.Lock()
	changed := fn()
	state := s.stateLocked()
	s.mu.Unlock()

	if changed {
		s.observers.Publish(state)
	}
}

// FetchListing replaces the listing with the videos matching f.
func (s *Store) FetchListing(ctx context.Context, f Filter) ([]pkgapi.Video, error) {
	var gen uint64
	s.update(func() bool {
		s.listingGen++
		gen = s.listingGen
		s.listing.Status = ListingLoading
		s.listing.Filter = f
		s.listing.Err = nil
		return true
	})

	resp, err := api.Call[pkgapi.Page[pkgapi.Video]](ctx, s.doer, api.Get(pathVideos).WithQuery(f.Values()))

	s.update(func() bool {
		if s.staleGuard && gen != s.listingGen {
			s.logger.Debug("discarding stale listing", "generation", gen, "latest", s.listingGen)
			return false
		}
		if err != nil {
			s.listing.Status = ListingFailed
			s.listing.Err = err
			return true
		}

		page := resp.Data
		s.listing = Listing{
			Status:      ListingLoaded,
			Filter:      f,
			Videos:      slices.Clone(page.Items),
			TotalDocs:   page.TotalDocs,
			Page:        page.Page,
			TotalPages:  page.TotalPages,
			HasNextPage: page.HasNextPage,
		}
		return true
	})

	if err != nil {
		return nil, fmt.Errorf("fetch videos: %w", err)
	}
	return slices.Clone(resp.Data.Items), nil
}

// FetchByID loads one video into the current slot. A 404 leaves the slot in
// SlotNotFound and is returned as api.ErrNotFound.
func (s *Store) FetchByID(ctx context.Context, id string) (*pkgapi.Video, error) {
	if err := api.Invalid("videoId", validation.ValidateRequired("video id", id)); err != nil {
		return nil, err
	}

	var gen uint64
	s.update(func() bool {
		s.slotGen++
		gen = s.slotGen
		s.current = Slot{ID: id, Status: SlotLoading}
		return true
	})

	resp, err := api.Call[pkgapi.Video](ctx, s.doer, api.Get(videoPath(id)))

	s.update(func() bool {
		if s.staleGuard && gen != s.slotGen {
			s.logger.Debug("discarding stale video", "id", id)
			return false
		}
		switch {
		case errors.Is(err, api.ErrNotFound):
			s.current = Slot{ID: id, Status: SlotNotFound, Err: err}
		case err != nil:
			s.current = Slot{ID: id, Status: SlotFailed, Err: err}
		default:
			v := resp.Data
			s.current = Slot{ID: id, Status: SlotLoaded, Video: &v}
		}
		return true
	})

	if err != nil {
		return nil, fmt.Errorf("fetch video %s: %w", id, err)
	}
	v := resp.Data
	return &v, nil
}

// ClearCurrent empties the current slot.
func (s *Store) ClearCurrent() {
	s.update(func() bool {
		if s.current.Status == SlotEmpty {
			return false
		}
		s.slotGen++
		s.current = Slot{}
		return true
	})
}

// DeleteVideo deletes a video on the server and, only after success, removes
// it from the listing and the current slot.
func (s *Store) DeleteVideo(ctx context.Context, id string) error {
	if err := api.Invalid("videoId", validation.ValidateRequired("video id", id)); err != nil {
		return err
	}

	if _, err := s.doer.Do(ctx, api.Delete(videoPath(id))); err != nil {
		return fmt.Errorf("delete video %s: %w", id, err)
	}

	s.update(func() bool {
		changed := false
		if i := s.indexLocked(id); i >= 0 {
			s.listing.Videos = slices.Delete(slices.Clone(s.listing.Videos), i, i+1)
			if s.listing.TotalDocs > 0 {
				s.listing.TotalDocs--
			}
			changed = true
		}
		if s.current.ID == id {
			s.slotGen++
			s.current = Slot{}
			changed = true
		}
		return changed
	})

	s.logger.Info("video deleted", "id", id)
	return nil
}

// PublishInput is the upload form. Thumbnail is optional.
type PublishInput struct {
	VideoFile   *api.File
	Thumbnail   *api.File
	Title       string
	Description string
}

// Publish uploads a new video and returns the created record. The listing
// is not changed; callers refetch to see the new entry.
func (s *Store) Publish(ctx context.Context, in PublishInput) (*pkgapi.Video, error) {
	if err := api.Invalid("title", validation.ValidateRequired("title", in.Title)); err != nil {
		return nil, err
	}
	if err := api.Invalid("description", validation.ValidateRequired("description", in.Description)); err != nil {
		return nil, err
	}
	if in.VideoFile == nil {
		return nil, api.Invalid("videoFile", validation.ErrRequired)
	}

	form := api.NewForm().
		Field("title", in.Title).
		Field("description", in.Description).
		File("videoFile", in.VideoFile).
		File("thumbnail", in.Thumbnail)

	resp, err := api.Call[pkgapi.Video](ctx, s.doer, api.Post(pathVideos, nil).WithForm(form))
	if err != nil {
		return nil, fmt.Errorf("publish video: %w", err)
	}

	v := resp.Data
	s.logger.Info("video published", "id", v.ID, "title", v.Title)
	return &v, nil
}

// UpdateInput are the editable video fields. Empty fields are not sent.
type UpdateInput struct {
	Thumbnail   *api.File
	Title       string
	Description string
}

// UpdateVideo edits a video and reflects the returned record in the
// listing and the current slot.
func (s *Store) UpdateVideo(ctx context.Context, id string, in UpdateInput) (*pkgapi.Video, error) {
	if err := api.Invalid("videoId", validation.ValidateRequired("video id", id)); err != nil {
		return nil, err
	}
	if in.Title == "" && in.Description == "" && in.Thumbnail == nil {
		return nil, api.Invalid("video", errors.New("nothing to update"))
	}

	form := api.NewForm()
	if in.Title != "" {
		form.Field("title", in.Title)
	}
	if in.Description != "" {
		form.Field("description", in.Description)
	}
	form.File("thumbnail", in.Thumbnail)

	resp, err := api.Call[pkgapi.Video](ctx, s.doer, api.Patch(videoPath(id), nil).WithForm(form))
	if err != nil {
		return nil, fmt.Errorf("update video %s: %w", id, err)
	}

	updated := resp.Data
	if updated.ID == "" {
		updated.ID = id
	}
	return s.apply(id, func(v pkgapi.Video) pkgapi.Video { return mergeVideo(v, updated) }, updated), nil
}

// TogglePublish flips the published flag on the server and reflects the
// returned value.
func (s *Store) TogglePublish(ctx context.Context, id string) (*pkgapi.Video, error) {
	if err := api.Invalid("videoId", validation.ValidateRequired("video id", id)); err != nil {
		return nil, err
	}

	resp, err := api.Call[pkgapi.PublishState](ctx, s.doer, api.Patch("/videos/toggle/publish/"+url.PathEscape(id), nil))
	if err != nil {
		return nil, fmt.Errorf("toggle publish %s: %w", id, err)
	}

	published := resp.Data.IsPublished
	fallback := pkgapi.Video{ID: id, IsPublished: published}
	return s.apply(id, func(v pkgapi.Video) pkgapi.Video {
		v.IsPublished = published
		return v
	}, fallback), nil
}

// apply rewrites the cached copies of video id with fn. It returns the
// resulting record, or fallback when the video is not cached.
func (s *Store) apply(id string, fn func(pkgapi.Video) pkgapi.Video, fallback pkgapi.Video) *pkgapi.Video {
	result := fallback

	s.update(func() bool {
		changed := false
		if i := s.indexLocked(id); i >= 0 {
			videos := slices.Clone(s.listing.Videos)
			videos[i] = fn(videos[i])
			s.listing.Videos = videos
			result = videos[i]
			changed = true
		}
		if s.current.ID == id && s.current.Video != nil {
			v := fn(*s.current.Video)
			s.current.Video = &v
			result = v
			changed = true
		}
		return changed
	})

	return &result
}

func (s *Store) indexLocked(id string) int {
	return slices.IndexFunc(s.listing.Videos, func(v pkgapi.Video) bool {
		return v.ID == id
	})
}
