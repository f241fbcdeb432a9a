package catalog

import (
	"net/url"
	"strconv"
)

// Filter parameters of GET /videos. Zero fields are omitted.
type Filter struct {
	Query      string
	SearchType string
	SortBy     string
	SortType   string
	UserID     string
	Page       int
	Limit      int
}

// Values encodes the filter as query parameters.
func (f Filter) Values() url.Values {
	v := url.Values{}
	set := func(key, value string) {
		if value != "" {
			v.Set(key, value)
		}
	}

	set("search", f.Query)
	set("searchType", f.SearchType)
	set("sortBy", f.SortBy)
	set("sortType", f.SortType)
	set("userId", f.UserID)
	if f.Page > 0 {
		v.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		v.Set("limit", strconv.Itoa(f.Limit))
	}

	return v
}
