package cli

import "github.com/urfave/cli/v3"

func (c *Cli) commands() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range []func() []*cli.Command{
		c.accountCommands, c.videoCommands, c.commentCommands, c.socialCommands, c.playlistCommands,
	} {
		commands = append(commands, fn()...)
	}
	return commands
}

func (c *Cli) accountCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "init",
			Usage: "Write an example configuration file",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "path", Usage: "Where to write the file (default: --config or the user config dir)"},
			},
			Action: c.runInit,
		},
		{
			Name:  "register",
			Usage: "Create an account and log in",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "username", Usage: "Username (3-32 chars: letters, digits, _)"},
				&cli.StringFlag{Name: "email", Usage: "Email address"},
				&cli.StringFlag{Name: "full-name", Usage: "Display name"},
				&cli.StringFlag{Name: "avatar", Usage: "Path to avatar image"},
				&cli.StringFlag{Name: "cover", Usage: "Path to cover image (optional)"},
			},
			Action: c.runRegister,
		},
		{
			Name:  "login",
			Usage: "Log in with email and password",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "email", Usage: "Email address"},
			},
			Action: c.runLogin,
		},
		{
			Name:   "logout",
			Usage:  "End the session and forget stored credentials",
			Action: c.runLogout,
		},
		{
			Name:   "status",
			Usage:  "Show authentication status",
			Action: c.runStatus,
		},
		{
			Name:   "whoami",
			Usage:  "Show the current user",
			Action: c.runWhoami,
		},
		{
			Name:  "profile",
			Usage: "Manage your profile",
			Commands: []*cli.Command{
				{
					Name:  "update",
					Usage: "Update full name and/or email",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "full-name", Usage: "New display name"},
						&cli.StringFlag{Name: "email", Usage: "New email address"},
					},
					Action: c.runProfileUpdate,
				},
				{
					Name:      "avatar",
					Usage:     "Upload a new avatar",
					ArgsUsage: "<path>",
					Action:    c.runProfileAvatar,
				},
				{
					Name:      "cover",
					Usage:     "Upload a new cover image",
					ArgsUsage: "<path>",
					Action:    c.runProfileCover,
				},
			},
		},
		{
			Name:   "password",
			Usage:  "Change your password",
			Action: c.runPassword,
		},
		{
			Name:   "dashboard",
			Usage:  "Show channel statistics and your videos",
			Action: c.runDashboard,
		},
	}
}

func (c *Cli) videoCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:    "videos",
			Aliases: []string{"v"},
			Usage:   "Browse and manage videos",
			Commands: []*cli.Command{
				{
					Name:  "list",
					Usage: "List videos",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "query", Aliases: []string{"q"}, Usage: "Search text"},
						&cli.StringFlag{Name: "search-type", Usage: "Search field (title, description)"},
						&cli.StringFlag{Name: "sort-by", Usage: "Sort field, e.g. createdAt, views"},
						&cli.StringFlag{Name: "sort-type", Usage: "asc or desc"},
						&cli.StringFlag{Name: "user", Usage: "Only videos of this user id"},
						&cli.BoolFlag{Name: "mine", Usage: "Only your videos"},
						&cli.IntFlag{Name: "page", Usage: "Page number", Value: 1},
						&cli.IntFlag{Name: "limit", Usage: "Videos per page", Value: 10},
					},
					Action: c.runVideosList,
				},
				{
					Name:      "show",
					Usage:     "Show video details",
					ArgsUsage: "<video-id>",
					Action:    c.runVideosShow,
				},
				{
					Name:  "publish",
					Usage: "Upload a new video",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "file", Usage: "Path to video file", Required: true},
						&cli.StringFlag{Name: "title", Usage: "Video title", Required: true},
						&cli.StringFlag{Name: "description", Usage: "Video description", Required: true},
						&cli.StringFlag{Name: "thumbnail", Usage: "Path to thumbnail image"},
					},
					Action: c.runVideosPublish,
				},
				{
					Name:      "update",
					Usage:     "Edit title, description or thumbnail",
					ArgsUsage: "<video-id>",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "title", Usage: "New title"},
						&cli.StringFlag{Name: "description", Usage: "New description"},
						&cli.StringFlag{Name: "thumbnail", Usage: "Path to new thumbnail image"},
					},
					Action: c.runVideosUpdate,
				},
				{
					Name:      "delete",
					Usage:     "Delete a video",
					ArgsUsage: "<video-id>",
					Flags: []cli.Flag{
						&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Do not ask for confirmation"},
					},
					Action: c.runVideosDelete,
				},
				{
					Name:      "toggle",
					Usage:     "Publish or unpublish a video",
					ArgsUsage: "<video-id>",
					Action:    c.runVideosToggle,
				},
			},
		},
	}
}

func (c *Cli) commentCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "comments",
			Usage: "Read and write comments",
			Commands: []*cli.Command{
				{
					Name:      "list",
					Usage:     "List comments of a video",
					ArgsUsage: "<video-id>",
					Flags: []cli.Flag{
						&cli.IntFlag{Name: "page", Usage: "Page number"},
						&cli.IntFlag{Name: "limit", Usage: "Comments per page"},
					},
					Action: c.runCommentsList,
				},
				{
					Name:      "add",
					Usage:     "Comment on a video",
					ArgsUsage: "<video-id> <text>",
					Action:    c.runCommentsAdd,
				},
				{
					Name:      "edit",
					Usage:     "Edit your comment",
					ArgsUsage: "<comment-id> <text>",
					Action:    c.runCommentsEdit,
				},
				{
					Name:      "delete",
					Usage:     "Delete your comment",
					ArgsUsage: "<comment-id>",
					Action:    c.runCommentsDelete,
				},
			},
		},
	}
}

func (c *Cli) socialCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "like",
			Usage: "Toggle a like",
			Commands: []*cli.Command{
				{
					Name:      "video",
					Usage:     "Like or unlike a video",
					ArgsUsage: "<video-id>",
					Action:    c.runLikeVideo,
				},
				{
					Name:      "comment",
					Usage:     "Like or unlike a comment",
					ArgsUsage: "<comment-id>",
					Action:    c.runLikeComment,
				},
			},
		},
		{
			Name:   "liked",
			Usage:  "List videos you liked",
			Action: c.runLiked,
		},
		{
			Name:      "subscribe",
			Usage:     "Subscribe to or unsubscribe from a channel",
			ArgsUsage: "<channel-id>",
			Action:    c.runSubscribe,
		},
		{
			Name:      "subscriptions",
			Usage:     "List channels a user is subscribed to",
			ArgsUsage: "[user-id]",
			Action:    c.runSubscriptions,
		},
		{
			Name:      "subscribers",
			Usage:     "List subscribers of a channel",
			ArgsUsage: "[channel-id]",
			Action:    c.runSubscribers,
		},
		{
			Name:      "channel",
			Usage:     "Show a channel profile",
			ArgsUsage: "<username>",
			Action:    c.runChannel,
		},
		{
			Name:   "history",
			Usage:  "Show your watch history",
			Action: c.runHistory,
		},
	}
}

func (c *Cli) playlistCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:    "playlists",
			Aliases: []string{"pl"},
			Usage:   "Manage playlists",
			Commands: []*cli.Command{
				{
					Name:   "list",
					Usage:  "List your playlists",
					Action: c.runPlaylistsList,
				},
				{
					Name:      "show",
					Usage:     "Show a playlist",
					ArgsUsage: "<playlist-id>",
					Action:    c.runPlaylistsShow,
				},
				{
					Name:      "create",
					Usage:     "Create a playlist",
					ArgsUsage: "<name>",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "description", Usage: "Playlist description"},
					},
					Action: c.runPlaylistsCreate,
				},
				{
					Name:      "update",
					Usage:     "Rename a playlist or change its description",
					ArgsUsage: "<playlist-id>",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "name", Usage: "New name", Required: true},
						&cli.StringFlag{Name: "description", Usage: "New description"},
					},
					Action: c.runPlaylistsUpdate,
				},
				{
					Name:      "delete",
					Usage:     "Delete a playlist",
					ArgsUsage: "<playlist-id>",
					Action:    c.runPlaylistsDelete,
				},
				{
					Name:      "add",
					Usage:     "Add a video to a playlist",
					ArgsUsage: "<playlist-id> <video-id>",
					Action:    c.runPlaylistsAdd,
				},
				{
					Name:      "remove",
					Usage:     "Remove a video from a playlist",
					ArgsUsage: "<playlist-id> <video-id>",
					Action:    c.runPlaylistsRemove,
				},
			},
		},
	}
}
