package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/vidtube/internal/client/api"
	"github.com/iudanet/vidtube/internal/client/auth"
	"github.com/iudanet/vidtube/internal/client/catalog"
	"github.com/iudanet/vidtube/internal/client/iocli"
)

func video(id, title string, views int64) map[string]any {
	return map[string]any{
		"_id":         id,
		"title":       title,
		"description": "about " + title,
		"duration":    125.4,
		"views":       views,
		"isPublished": true,
		"owner":       map[string]any{"_id": "u1", "username": "alice"},
	}
}

func TestVideosList(t *testing.T) {
	env := newTestEnv(t, map[string]http.HandlerFunc{
		"GET /videos": func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "cats", q.Get("search"))
			assert.Equal(t, "views", q.Get("sortBy"))
			assert.Equal(t, "1", q.Get("page"))
			assert.Equal(t, "10", q.Get("limit"))
			assert.Empty(t, q.Get("userId"))
			writeData(t, w, http.StatusOK, map[string]any{
				"docs":        []any{video("v1", "Cats compilation", 1500), video("v2", "More cats", 42)},
				"totalDocs":   12,
				"page":        1,
				"totalPages":  2,
				"hasNextPage": true,
			})
		},
	})

	out, err := env.run("", "videos", "list", "--query", "cats", "--sort-by", "views")
	require.NoError(t, err)
	assert.Contains(t, out, "=== Videos (page 1 of 2, 12 total) ===")
	assert.Contains(t, out, "Cats compilation")
	assert.Contains(t, out, "1.5K views")
	assert.Contains(t, out, "2:05")
	assert.Contains(t, out, "@alice")
	assert.Contains(t, out, "More results: --page 2")
}

func TestVideosList_Empty(t *testing.T) {
	env := newTestEnv(t, map[string]http.HandlerFunc{
		"GET /videos": data(t, http.StatusOK, []any{}),
	})

	out, err := env.run("", "videos", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No videos found.")
}

func TestVideosList_Mine(t *testing.T) {
	env := newTestEnv(t, map[string]http.HandlerFunc{
		"GET /videos": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "u1", r.URL.Query().Get("userId"))
			writeData(t, w, http.StatusOK, []any{video("v1", "Mine", 1)})
		},
	})

	_, err := env.run("", "videos", "list", "--mine")
	assert.ErrorIs(t, err, auth.ErrNotAuthenticated)

	env.loginAs()
	out, err := env.run("", "videos", "list", "--mine")
	require.NoError(t, err)
	assert.Contains(t, out, "Mine")
}

func TestVideosList_ServerError(t *testing.T) {
	env := newTestEnv(t, map[string]http.HandlerFunc{
		"GET /videos": func(w http.ResponseWriter, _ *http.Request) {
			writeFail(w, http.StatusInternalServerError, "database down")
		},
	})

	_, err := env.run("", "videos", "list")
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrServer)
}

func TestVideosShow(t *testing.T) {
	env := newTestEnv(t, map[string]http.HandlerFunc{
		"GET /videos/{id}": func(w http.ResponseWriter, r *http.Request) {
			if r.PathValue("id") != "v1" {
				writeFail(w, http.StatusNotFound, "Video not found")
				return
			}
			writeData(t, w, http.StatusOK, video("v1", "Cats compilation", 2_500_000))
		},
	})

	out, err := env.run("", "videos", "show", "v1")
	require.NoError(t, err)
	assert.Contains(t, out, "=== Cats compilation ===")
	assert.Contains(t, out, "Views: 2.5M")
	assert.Contains(t, out, "Duration: 2:05")
	assert.Contains(t, out, "about Cats compilation")

	_, err = env.run("", "videos", "show", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "video missing not found")

	_, err = env.run("", "videos", "show")
	assert.ErrorIs(t, err, errArgs)
}

func TestVideosShow_ReleasesCurrentSlot(t *testing.T) {
	env := newTestEnv(t, map[string]http.HandlerFunc{
		"GET /videos/{id}": data(t, http.StatusOK, video("v1", "Cats compilation", 10)),
	})

	var slots []catalog.SlotStatus
	setup := func(ctx context.Context, g Globals) (*Deps, error) {
		deps, err := env.setup(ctx, g)
		if err != nil {
			return nil, err
		}
		deps.Catalog.Subscribe(func(st catalog.State) {
			slots = append(slots, st.Current.Status)
		})
		return deps, nil
	}

	var out bytes.Buffer
	c := New(iocli.New(strings.NewReader(""), &out), setup)
	require.NoError(t, c.Command("test").Run(context.Background(), []string{"vidtube", "videos", "show", "v1"}))

	assert.Contains(t, out.String(), "=== Cats compilation ===")
	require.NotEmpty(t, slots)
	assert.Contains(t, slots, catalog.SlotLoaded)
	assert.Equal(t, catalog.SlotEmpty, slots[len(slots)-1])
	assert.Equal(t, catalog.SlotEmpty, c.catalog.Current().Status)
}

func TestVideosPublish(t *testing.T) {
	file := tempFile(t, "clip.mp4", "video-bytes")
	env := newTestEnv(t, map[string]http.HandlerFunc{
		"POST /videos": func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseMultipartForm(1<<20))
			assert.Equal(t, "Hello", r.FormValue("title"))
			assert.Equal(t, "First upload", r.FormValue("description"))
			_, hdr, err := r.FormFile("videoFile")
			require.NoError(t, err)
			assert.Equal(t, "clip.mp4", hdr.Filename)
			_, _, err = r.FormFile("thumbnail")
			assert.ErrorIs(t, err, http.ErrMissingFile)
			writeData(t, w, http.StatusCreated, video("v9", "Hello", 0))
		},
	})
	env.loginAs()

	out, err := env.run("", "videos", "publish", "--file", file, "--title", "Hello", "--description", "First upload")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Video published!")
	assert.Contains(t, out, "ID: v9")
}

func TestVideosPublish_RequiresLogin(t *testing.T) {
	file := tempFile(t, "clip.mp4", "video-bytes")
	env := newTestEnv(t, nil)

	_, err := env.run("", "videos", "publish", "--file", file, "--title", "Hello", "--description", "x")
	assert.ErrorIs(t, err, auth.ErrNotAuthenticated)
}

func TestVideosUpdate(t *testing.T) {
	env := newTestEnv(t, map[string]http.HandlerFunc{
		"PATCH /videos/{id}": func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseMultipartForm(1<<20))
			assert.Equal(t, "v1", r.PathValue("id"))
			assert.Equal(t, "Renamed", r.FormValue("title"))
			assert.Empty(t, r.FormValue("description"))
			writeData(t, w, http.StatusOK, video("v1", "Renamed", 3))
		},
	})
	env.loginAs()

	out, err := env.run("", "videos", "update", "--title", "Renamed", "v1")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Video updated")
	assert.Contains(t, out, "Title: Renamed")
}

func TestVideosDelete(t *testing.T) {
	deletes := 0
	env := newTestEnv(t, map[string]http.HandlerFunc{
		"DELETE /videos/{id}": func(w http.ResponseWriter, r *http.Request) {
			deletes++
			assert.Equal(t, "v1", r.PathValue("id"))
			writeData(t, w, http.StatusOK, map[string]any{})
		},
	})
	env.loginAs()

	out, err := env.run("n\n", "videos", "delete", "v1")
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled.")
	assert.Equal(t, 0, deletes)

	out, err = env.run("y\n", "videos", "delete", "v1")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Video v1 deleted")

	_, err = env.run("", "videos", "delete", "--yes", "v1")
	require.NoError(t, err)
	assert.Equal(t, 2, deletes)
}

func TestVideosToggle(t *testing.T) {
	published := true
	env := newTestEnv(t, map[string]http.HandlerFunc{
		"PATCH /videos/toggle/publish/{id}": func(w http.ResponseWriter, r *http.Request) {
			published = !published
			writeData(t, w, http.StatusOK, map[string]any{"_id": r.PathValue("id"), "isPublished": published})
		},
	})
	env.loginAs()

	out, err := env.run("", "videos", "toggle", "v1")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Video v1 is now unpublished")

	out, err = env.run("", "videos", "toggle", "v1")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Video v1 is now published")
}

func TestComments(t *testing.T) {
	env := newTestEnv(t, map[string]http.HandlerFunc{
		"GET /comments/{videoId}": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "v1", r.PathValue("videoId"))
			assert.Equal(t, "2", r.URL.Query().Get("page"))
			writeData(t, w, http.StatusOK, map[string]any{
				"docs": []any{map[string]any{
					"_id":     "c1",
					"content": "great video",
					"owner":   map[string]any{"_id": "u2", "username": "bob"},
				}},
				"totalDocs":   11,
				"page":        2,
				"totalPages":  2,
				"hasNextPage": false,
			})
		},
		"POST /comments/{videoId}": func(w http.ResponseWriter, r *http.Request) {
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "first!", body["content"])
			writeData(t, w, http.StatusCreated, map[string]any{"_id": "c2", "content": "first!"})
		},
		"PATCH /comments/c/{commentId}": data(t, http.StatusOK, map[string]any{"_id": "c2", "content": "edited"}),
		"DELETE /comments/c/{commentId}": data(t, http.StatusOK, map[string]any{}),
	})

	out, err := env.run("", "comments", "list", "--page", "2", "v1")
	require.NoError(t, err)
	assert.Contains(t, out, "=== Comments (11 total) ===")
	assert.Contains(t, out, "[c1] @bob")
	assert.Contains(t, out, "great video")

	_, err = env.run("", "comments", "add", "v1", "first!")
	assert.ErrorIs(t, err, auth.ErrNotAuthenticated)

	env.loginAs()
	out, err = env.run("", "comments", "add", "v1", "first!")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Comment added: c2")

	out, err = env.run("", "comments", "edit", "c2", "edited")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Comment c2 updated")

	out, err = env.run("", "comments", "delete", "c2")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Comment c2 deleted")

	_, err = env.run("", "comments", "add", "v1")
	assert.ErrorIs(t, err, errArgs)
}

func TestLikes(t *testing.T) {
	env := newTestEnv(t, map[string]http.HandlerFunc{
		"POST /likes/toggle/v/{id}": data(t, http.StatusOK, map[string]any{"isLiked": true}),
		"POST /likes/toggle/c/{id}": data(t, http.StatusOK, map[string]any{"isLiked": false}),
		"GET /likes/videos": data(t, http.StatusOK, []any{
			map[string]any{"_id": "l1", "video": video("v1", "Liked one", 10)},
		}),
	})
	env.loginAs()

	out, err := env.run("", "like", "video", "v1")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Liked v1")

	out, err = env.run("", "like", "comment", "c1")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Removed like from c1")

	out, err = env.run("", "liked")
	require.NoError(t, err)
	assert.Contains(t, out, "=== Liked videos (1) ===")
	assert.Contains(t, out, "Liked one")
}

func TestSubscriptions(t *testing.T) {
	env := newTestEnv(t, map[string]http.HandlerFunc{
		"POST /subscriptions/c/{channelId}": data(t, http.StatusOK, map[string]any{"subscribed": true}),
		"GET /subscriptions/c/{channelId}": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "u1", r.PathValue("channelId"))
			writeData(t, w, http.StatusOK, []any{
				map[string]any{"_id": "s1", "channel": map[string]any{"_id": "u2", "username": "bob"}},
			})
		},
		"GET /subscriptions/u/{userId}": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "u3", r.PathValue("userId"))
			writeData(t, w, http.StatusOK, []any{})
		},
	})
	env.loginAs()

	out, err := env.run("", "subscribe", "u2")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Subscribed to u2")

	out, err = env.run("", "subscriptions")
	require.NoError(t, err)
	assert.Contains(t, out, "=== Subscriptions (1) ===")
	assert.Contains(t, out, "@bob")

	out, err = env.run("", "subscribers", "u3")
	require.NoError(t, err)
	assert.Contains(t, out, "No subscribers.")
}

func TestChannelAndHistory(t *testing.T) {
	env := newTestEnv(t, map[string]http.HandlerFunc{
		"GET /users/c/{username}": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "bob", r.PathValue("username"))
			writeData(t, w, http.StatusOK, map[string]any{
				"_id":                       "u2",
				"username":                  "bob",
				"fullName":                  "Bob Builder",
				"subscribersCount":          1200,
				"channelsSubscribedToCount": 3,
				"isSubscribed":              true,
			})
		},
		"GET /users/history": data(t, http.StatusOK, []any{video("v1", "Watched", 5)}),
	})

	out, err := env.run("", "channel", "bob")
	require.NoError(t, err)
	assert.Contains(t, out, "=== Bob Builder (@bob) ===")
	assert.Contains(t, out, "Subscribers: 1.2K")
	assert.Contains(t, out, "You are subscribed to this channel.")

	_, err = env.run("", "history")
	assert.ErrorIs(t, err, auth.ErrNotAuthenticated)

	env.loginAs()
	out, err = env.run("", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "=== Watch history (1) ===")
}

func TestPlaylists(t *testing.T) {
	playlist := map[string]any{
		"_id":         "p1",
		"name":        "Favourites",
		"description": "best of",
		"owner":       map[string]any{"_id": "u1", "username": "alice"},
		"videos":      []any{video("v1", "Cats compilation", 1)},
	}
	env := newTestEnv(t, map[string]http.HandlerFunc{
		"GET /playlist":      data(t, http.StatusOK, []any{playlist}),
		"GET /playlist/{id}": data(t, http.StatusOK, playlist),
		"POST /playlist": func(w http.ResponseWriter, r *http.Request) {
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "Favourites", body["name"])
			assert.Equal(t, "best of", body["description"])
			writeData(t, w, http.StatusCreated, playlist)
		},
		"PATCH /playlist/{id}": data(t, http.StatusOK, playlist),
		"DELETE /playlist/{id}": data(t, http.StatusOK, map[string]any{}),
		"PATCH /playlist/add/{videoId}/{playlistId}": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "v2", r.PathValue("videoId"))
			assert.Equal(t, "p1", r.PathValue("playlistId"))
			writeData(t, w, http.StatusOK, playlist)
		},
		"PATCH /playlist/remove/{videoId}/{playlistId}": data(t, http.StatusOK, playlist),
	})
	env.loginAs()

	out, err := env.run("", "playlists", "create", "--description", "best of", "Favourites")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Playlist created: p1")

	out, err = env.run("", "playlists", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Favourites")
	assert.Contains(t, out, "1 videos")

	out, err = env.run("", "playlists", "show", "p1")
	require.NoError(t, err)
	assert.Contains(t, out, "=== Favourites ===")
	assert.Contains(t, out, "Cats compilation")

	out, err = env.run("", "playlists", "update", "--name", "Favourites", "p1")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Playlist updated")

	out, err = env.run("", "playlists", "add", "p1", "v2")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Video v2 added to playlist p1")

	out, err = env.run("", "playlists", "remove", "p1", "v2")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Video v2 removed from playlist p1")

	out, err = env.run("", "playlists", "delete", "p1")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Playlist p1 deleted")
}

func TestDashboard(t *testing.T) {
	draft := video("v2", "Work in progress", 0)
	draft["isPublished"] = false
	env := newTestEnv(t, map[string]http.HandlerFunc{
		"GET /dashboard/stats": data(t, http.StatusOK, map[string]any{
			"totalVideos":      2,
			"totalViews":       15300,
			"totalSubscribers": 7,
			"totalLikes":       1000,
		}),
		"GET /dashboard/videos": data(t, http.StatusOK, []any{video("v1", "Live one", 15300), draft}),
	})
	env.loginAs()

	out, err := env.run("", "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "Videos: 2")
	assert.Contains(t, out, "Views: 15.3K")
	assert.Contains(t, out, "Subscribers: 7")
	assert.Contains(t, out, "Likes: 1.0K")
	assert.Contains(t, out, "published")
	assert.Contains(t, out, "draft")
	assert.Contains(t, out, "Work in progress")
}
