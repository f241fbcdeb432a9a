package resources

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/vidtube/internal/client/api"
	pkgapi "github.com/iudanet/vidtube/pkg/api"
)

// newTestServices поднимает httptest сервер с заданными маршрутами
func newTestServices(t *testing.T, routes map[string]http.HandlerFunc) *Services {
	t.Helper()
	mux := http.NewServeMux()
	for pattern, h := range routes {
		mux.HandleFunc(pattern, h)
	}
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return New(api.NewClient(server.URL, nil))
}

func writeData(t *testing.T, status int, data any) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"statusCode": status,
			"data":       data,
			"message":    "ok",
			"success":    true,
		}))
	}
}

func writeFail(status int, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(pkgapi.ErrorResponse{StatusCode: status, Message: message})
	}
}

func TestComments(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t, map[string]http.HandlerFunc{
		"GET /comments/{videoId}": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "v1", r.PathValue("videoId"))
			assert.Equal(t, "2", r.URL.Query().Get("page"))
			assert.Empty(t, r.URL.Query().Get("limit"))
			writeData(t, http.StatusOK, map[string]any{
				"docs":        []map[string]any{{"_id": "c1", "content": "nice", "owner": "u1"}},
				"totalDocs":   11,
				"page":        2,
				"hasNextPage": false,
			})(w, r)
		},
		"POST /comments/{videoId}": func(w http.ResponseWriter, r *http.Request) {
			var req pkgapi.CommentRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "first!", req.Content)
			writeData(t, http.StatusCreated, pkgapi.Comment{ID: "c2", Content: req.Content, Video: r.PathValue("videoId")})(w, r)
		},
		"PATCH /comments/c/{commentId}": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "c2", r.PathValue("commentId"))
			writeData(t, http.StatusOK, pkgapi.Comment{ID: "c2", Content: "edited"})(w, r)
		},
		"DELETE /comments/c/{commentId}": writeData(t, http.StatusOK, map[string]any{}),
	})

	list, err := svc.Comments.List(ctx, "v1", 2, 0)
	require.NoError(t, err)
	require.Len(t, list.Data.Items, 1)
	assert.Equal(t, "nice", list.Data.Items[0].Content)
	assert.Equal(t, "u1", list.Data.Items[0].Owner.ID)
	assert.Equal(t, 11, list.Data.TotalDocs)

	added, err := svc.Comments.Add(ctx, "v1", "first!")
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, added.StatusCode)
	assert.Equal(t, "v1", added.Data.Video)

	updated, err := svc.Comments.Update(ctx, "c2", "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Data.Content)

	_, err = svc.Comments.Delete(ctx, "c2")
	require.NoError(t, err)
}

func TestComments_Validation(t *testing.T) {
	svc := New(&api.DoerMock{})

	_, err := svc.Comments.Add(context.Background(), "v1", "  ")
	assert.ErrorIs(t, err, api.ErrValidation)

	_, err = svc.Comments.List(context.Background(), "", 0, 0)
	assert.ErrorIs(t, err, api.ErrValidation)

	_, err = svc.Comments.Delete(context.Background(), "")
	assert.ErrorIs(t, err, api.ErrValidation)
}

// TestLikes_ReflectServerState проверяет, что toggle отражает ответ сервера
func TestLikes_ReflectServerState(t *testing.T) {
	ctx := context.Background()
	liked := false
	svc := newTestServices(t, map[string]http.HandlerFunc{
		"POST /likes/toggle/v/{id}": func(w http.ResponseWriter, r *http.Request) {
			liked = !liked
			writeData(t, http.StatusOK, pkgapi.LikeStatus{IsLiked: liked})(w, r)
		},
		"POST /likes/toggle/c/{id}": writeData(t, http.StatusOK, pkgapi.LikeStatus{IsLiked: true}),
		"POST /likes/toggle/t/{id}": writeFail(http.StatusNotFound, "Tweet not found"),
		"GET /likes/videos": writeData(t, http.StatusOK, []map[string]any{
			{"_id": "l1", "likedBy": "u1", "video": map[string]any{"_id": "v1", "title": "cats"}},
		}),
	})

	first, err := svc.Likes.ToggleVideo(ctx, "v1")
	require.NoError(t, err)
	assert.True(t, first.Data.IsLiked)

	second, err := svc.Likes.ToggleVideo(ctx, "v1")
	require.NoError(t, err)
	assert.False(t, second.Data.IsLiked)

	comment, err := svc.Likes.ToggleComment(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, comment.Data.IsLiked)

	_, err = svc.Likes.ToggleTweet(ctx, "t1")
	assert.ErrorIs(t, err, api.ErrNotFound)
	assert.Equal(t, "Tweet not found", api.MessageOf(err))

	likedVideos, err := svc.Likes.LikedVideos(ctx)
	require.NoError(t, err)
	require.Len(t, likedVideos.Data, 1)
	assert.Equal(t, "cats", likedVideos.Data[0].Video.Title)
	assert.Equal(t, "u1", likedVideos.Data[0].LikedBy.ID)
}

func TestSubscriptions(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t, map[string]http.HandlerFunc{
		"POST /subscriptions/c/{id}": writeData(t, http.StatusOK, pkgapi.SubscriptionStatus{Subscribed: true}),
		"GET /subscriptions/c/{id}": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "ch1", r.PathValue("id"))
			writeData(t, http.StatusOK, []map[string]any{
				{"_id": "s1", "subscriber": map[string]any{"_id": "u2", "username": "bob"}, "channel": "ch1"},
			})(w, r)
		},
		"GET /subscriptions/u/{id}": writeData(t, http.StatusOK, []any{}),
	})

	toggled, err := svc.Subscriptions.Toggle(ctx, "ch1")
	require.NoError(t, err)
	assert.True(t, toggled.Data.Subscribed)

	subs, err := svc.Subscriptions.SubscribedChannels(ctx, "ch1")
	require.NoError(t, err)
	require.Len(t, subs.Data, 1)
	assert.Equal(t, "bob", subs.Data[0].Subscriber.Username)
	assert.Equal(t, "ch1", subs.Data[0].Channel.ID)

	channels, err := svc.Subscriptions.ChannelSubscribers(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, channels.Data)
}

func TestPlaylists(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t, map[string]http.HandlerFunc{
		"GET /playlist": writeData(t, http.StatusOK, []pkgapi.Playlist{{ID: "p1", Name: "Favourites"}}),
		"GET /playlist/{id}": writeData(t, http.StatusOK, map[string]any{
			"_id":    "p1",
			"name":   "Favourites",
			"videos": []any{"v1", map[string]any{"_id": "v2", "title": "dogs"}},
		}),
		"POST /playlist": func(w http.ResponseWriter, r *http.Request) {
			var req pkgapi.PlaylistRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "Later", req.Name)
			writeData(t, http.StatusCreated, pkgapi.Playlist{ID: "p2", Name: req.Name, Description: req.Description})(w, r)
		},
		"PATCH /playlist/{id}":                  writeData(t, http.StatusOK, pkgapi.Playlist{ID: "p2", Name: "Watch later"}),
		"DELETE /playlist/{id}":                 writeData(t, http.StatusOK, nil),
		"PATCH /playlist/add/{videoId}/{id}":    writeData(t, http.StatusOK, pkgapi.Playlist{ID: "p1", Videos: []pkgapi.Video{{ID: "v1"}, {ID: "v3"}}}),
		"PATCH /playlist/remove/{videoId}/{id}": writeData(t, http.StatusOK, pkgapi.Playlist{ID: "p1", Videos: []pkgapi.Video{{ID: "v3"}}}),
	})

	list, err := svc.Playlists.List(ctx)
	require.NoError(t, err)
	require.Len(t, list.Data, 1)

	got, err := svc.Playlists.Get(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, got.Data.Videos, 2)
	assert.Equal(t, "v1", got.Data.Videos[0].ID)
	assert.Equal(t, "dogs", got.Data.Videos[1].Title)

	created, err := svc.Playlists.Create(ctx, "Later", "to watch")
	require.NoError(t, err)
	assert.Equal(t, "p2", created.Data.ID)

	updated, err := svc.Playlists.Update(ctx, "p2", "Watch later", "")
	require.NoError(t, err)
	assert.Equal(t, "Watch later", updated.Data.Name)

	_, err = svc.Playlists.Delete(ctx, "p2")
	require.NoError(t, err)

	added, err := svc.Playlists.AddVideo(ctx, "p1", "v3")
	require.NoError(t, err)
	assert.Len(t, added.Data.Videos, 2)

	removed, err := svc.Playlists.RemoveVideo(ctx, "p1", "v1")
	require.NoError(t, err)
	assert.Len(t, removed.Data.Videos, 1)

	_, err = svc.Playlists.Create(ctx, "", "")
	assert.ErrorIs(t, err, api.ErrValidation)

	_, err = svc.Playlists.AddVideo(ctx, "p1", "")
	assert.ErrorIs(t, err, api.ErrValidation)
}

func TestPlaylists_EditPath(t *testing.T) {
	doer := &api.DoerMock{
		DoFunc: func(_ context.Context, req *api.Request) (*api.RawResponse, error) {
			return &api.RawResponse{StatusCode: http.StatusOK}, nil
		},
	}

	_, err := New(doer).Playlists.AddVideo(context.Background(), "p1", "v9")
	require.NoError(t, err)

	calls := doer.DoCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodPatch, calls[0].Req.Method)
	assert.Equal(t, "/playlist/add/v9/p1", calls[0].Req.Path)
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t, map[string]http.HandlerFunc{
		"GET /dashboard/stats": writeData(t, http.StatusOK, pkgapi.ChannelStats{
			TotalVideos:      3,
			TotalViews:       1500,
			TotalSubscribers: 42,
			TotalLikes:       7,
		}),
		"GET /dashboard/videos": writeData(t, http.StatusOK, []pkgapi.Video{{ID: "v1", IsPublished: false}}),
	})

	stats, err := svc.Dashboard.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), stats.Data.TotalViews)
	assert.Equal(t, int64(42), stats.Data.TotalSubscribers)

	vids, err := svc.Dashboard.Videos(ctx)
	require.NoError(t, err)
	require.Len(t, vids.Data.Items, 1)
	assert.False(t, vids.Data.Items[0].IsPublished)
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t, map[string]http.HandlerFunc{
		"GET /users/c/{username}": func(w http.ResponseWriter, r *http.Request) {
			if r.PathValue("username") != "alice" {
				writeFail(http.StatusNotFound, "channel does not exists")(w, r)
				return
			}
			writeData(t, http.StatusOK, map[string]any{
				"_id":              "u1",
				"username":         "alice",
				"fullName":         "Alice",
				"subscribersCount": 10,
				"isSubscribed":     true,
			})(w, r)
		},
		"GET /users/history": writeData(t, http.StatusOK, []pkgapi.Video{{ID: "v2"}, {ID: "v1"}}),
	})

	channel, err := svc.Users.Channel(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "u1", channel.Data.ID)
	assert.Equal(t, int64(10), channel.Data.SubscribersCount)
	assert.True(t, channel.Data.IsSubscribed)

	_, err = svc.Users.Channel(ctx, "nobody")
	assert.ErrorIs(t, err, api.ErrNotFound)

	history, err := svc.Users.WatchHistory(ctx)
	require.NoError(t, err)
	require.Len(t, history.Data, 2)
	assert.Equal(t, "v2", history.Data[0].ID)
}
