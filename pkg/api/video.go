package api

import (
	"bytes"
	"encoding/json"
	"time"
)

// Owner представляет денормализованного владельца ресурса.
// Сервер отдает либо id строкой, либо populated объект.
type Owner struct {
	ID       string `json:"_id"`
	Username string `json:"username,omitempty"`
	FullName string `json:"fullName,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

// UnmarshalJSON принимает как "id", так и объект
func (o *Owner) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var id string
		if err := json.Unmarshal(trimmed, &id); err != nil {
			return err
		}
		*o = Owner{ID: id}
		return nil
	}

	type plain Owner
	var p plain
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return err
	}
	*o = Owner(p)
	return nil
}

// Video представляет VideoSummary: проекцию видео для списка и просмотра
type Video struct {
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	VideoFile   string    `json:"videoFile"`
	Thumbnail   string    `json:"thumbnail"`
	Owner       Owner     `json:"owner"`
	Duration    float64   `json:"duration"`
	Views       int64     `json:"views"`
	IsPublished bool      `json:"isPublished"`
}

// UnmarshalJSON принимает как id строкой (плейлисты без populate), так и объект
func (v *Video) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var id string
		if err := json.Unmarshal(trimmed, &id); err != nil {
			return err
		}
		*v = Video{ID: id}
		return nil
	}

	type plain Video
	var p plain
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return err
	}
	*v = Video(p)
	return nil
}

// PublishState представляет ответ на переключение публикации
type PublishState struct {
	ID          string `json:"_id"`
	IsPublished bool   `json:"isPublished"`
}
