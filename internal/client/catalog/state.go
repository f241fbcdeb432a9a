package catalog

import (
	"fmt"
	"slices"

	pkgapi "github.com/iudanet/vidtube/pkg/api"
)

// ListingStatus is the lifecycle of the video listing.
type ListingStatus int

const (
	ListingIdle ListingStatus = iota
	ListingLoading
	ListingLoaded
	ListingFailed
)

func (s ListingStatus) String() string {
	switch s {
	case ListingIdle:
		return "idle"
	case ListingLoading:
		return "loading"
	case ListingLoaded:
		return "loaded"
	case ListingFailed:
		return "failed"
	default:
		return fmt.Sprintf("listing(%d)", int(s))
	}
}

// Listing is the last fetched page of videos. On failure Videos keeps the
// previous content and Err holds the cause.
type Listing struct {
	Err         error
	Videos      []pkgapi.Video
	Filter      Filter
	TotalDocs   int
	Page        int
	TotalPages  int
	HasNextPage bool
	Status      ListingStatus
}

// SlotStatus is the lifecycle of the single-video slot.
type SlotStatus int

const (
	SlotEmpty SlotStatus = iota
	SlotLoading
	SlotLoaded
	SlotNotFound
	SlotFailed
)

func (s SlotStatus) String() string {
	switch s {
	case SlotEmpty:
		return "empty"
	case SlotLoading:
		return "loading"
	case SlotLoaded:
		return "loaded"
	case SlotNotFound:
		return "not_found"
	case SlotFailed:
		return "failed"
	default:
		return fmt.Sprintf("slot(%d)", int(s))
	}
}

// Slot holds the video currently being viewed.
type Slot struct {
	Err    error
	Video  *pkgapi.Video
	ID     string
	Status SlotStatus
}

// State is what observers receive after every change.
type State struct {
	Current Slot
	Listing Listing
}

func (l Listing) clone() Listing {
	l.Videos = slices.Clone(l.Videos)
	return l
}

func (s Slot) clone() Slot {
	if s.Video != nil {
		v := *s.Video
		s.Video = &v
	}
	return s
}

// mergeVideo applies a server record over a cached one. A bare owner id in
// the update does not erase a populated owner.
func mergeVideo(cached, update pkgapi.Video) pkgapi.Video {
	if update.Owner.ID == "" || (update.Owner.Username == "" && update.Owner.ID == cached.Owner.ID) {
		update.Owner = cached.Owner
	}
	if update.CreatedAt.IsZero() {
		update.CreatedAt = cached.CreatedAt
	}
	return update
}
