package api

import "time"

// Comment представляет комментарий к видео
type Comment struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	ID        string    `json:"_id"`
	Content   string    `json:"content"`
	Video     string    `json:"video"`
	Owner     Owner     `json:"owner"`
}

// CommentRequest представляет тело запроса на создание/изменение комментария
type CommentRequest struct {
	Content string `json:"content"`
}

// LikeStatus представляет результат переключения лайка
type LikeStatus struct {
	IsLiked bool `json:"isLiked"`
}

// LikedVideo представляет запись из списка понравившихся видео
type LikedVideo struct {
	CreatedAt time.Time `json:"createdAt"`
	ID        string    `json:"_id"`
	LikedBy   Owner     `json:"likedBy"`
	Video     Video     `json:"video"`
}

// SubscriptionStatus представляет результат переключения подписки
type SubscriptionStatus struct {
	Subscribed bool `json:"subscribed"`
}

// Subscription представляет связь подписчик - канал
type Subscription struct {
	CreatedAt  time.Time `json:"createdAt"`
	ID         string    `json:"_id"`
	Subscriber Owner     `json:"subscriber"`
	Channel    Owner     `json:"channel"`
}

// Playlist представляет плейлист пользователя
type Playlist struct {
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Owner       Owner     `json:"owner"`
	Videos      []Video   `json:"videos"`
}

// PlaylistRequest представляет тело запроса на создание/изменение плейлиста
type PlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ChannelStats представляет статистику канала для дашборда
type ChannelStats struct {
	TotalVideos      int64 `json:"totalVideos"`
	TotalViews       int64 `json:"totalViews"`
	TotalSubscribers int64 `json:"totalSubscribers"`
	TotalLikes       int64 `json:"totalLikes"`
}
