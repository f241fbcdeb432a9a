package api

import (
	"bytes"
	"encoding/json"
)

// Response is the uniform success envelope returned by every endpoint.
type Response[T any] struct {
	Data       T      `json:"data"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	Success    bool   `json:"success"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode,omitempty"`
}

// Page is a listing result. Listing endpoints return either a bare JSON array or a
// paginated object; both forms decode into Page.
type Page[T any] struct {
	Items       []T
	TotalDocs   int
	Page        int
	TotalPages  int
	HasNextPage bool
}

type paginated[T any] struct {
	Docs        []T  `json:"docs"`
	Videos      []T  `json:"videos"`
	Comments    []T  `json:"comments"`
	TotalDocs   int  `json:"totalDocs"`
	Page        int  `json:"page"`
	TotalPages  int  `json:"totalPages"`
	HasNextPage bool `json:"hasNextPage"`
}

// UnmarshalJSON accepts `[...]`, `null` and `{"docs": [...], ...}`.
func (p *Page[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*p = Page[T]{Items: []T{}}
		return nil
	}

	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*p = Page[T]{Items: items, TotalDocs: len(items), Page: 1, TotalPages: 1}
		return nil
	}

	var pg paginated[T]
	if err := json.Unmarshal(trimmed, &pg); err != nil {
		return err
	}

	items := pg.Docs
	if items == nil {
		items = pg.Videos
	}
	if items == nil {
		items = pg.Comments
	}
	if items == nil {
		items = []T{}
	}

	*p = Page[T]{
		Items:       items,
		TotalDocs:   pg.TotalDocs,
		Page:        pg.Page,
		TotalPages:  pg.TotalPages,
		HasNextPage: pg.HasNextPage,
	}
	return nil
}
