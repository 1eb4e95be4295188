package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tuber/internal/engage"
	"tuber/internal/state"
	"tuber/internal/vidtube"
)

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type feedMsg struct {
	videos []vidtube.Video
	err    error
}

type videoMsg struct {
	video vidtube.Video
	err   error
}

type commentsMsg struct {
	videoID  string
	comments []vidtube.Comment
	err      error
}

type likeSettledMsg struct {
	videoID   string
	commentID string
	state     engage.LikeState
	err       error
}

type subSettledMsg struct {
	channelID string
	state     engage.SubState
	err       error
}

type watchLaterSettledMsg struct {
	videoID string
	saved   bool
	err     error
}

type commentPostedMsg struct {
	videoID string
	err     error
}

type channelMsg struct {
	channel vidtube.Channel
	videos  []vidtube.Video
	err     error
}

type subscriptionsMsg struct {
	subs []vidtube.Subscription
	err  error
}

type historyMsg struct {
	groups []engage.DayGroup
	err    error
}

type historyEditedMsg struct {
	cleared bool
	err     error
}

type watchLaterListMsg struct {
	videos []vidtube.Video
	err    error
}

type likedVideosMsg struct {
	videos []vidtube.Video
	err    error
}

type dashboardMsg struct {
	videos []vidtube.Video
	err    error
}

type playlistsMsg struct {
	playlists []vidtube.Playlist
	err       error
}

type authMsg struct {
	user      vidtube.User
	signedOut bool
	err       error
}

type noticeMsg struct {
	level state.NoticeLevel
	text  string
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// searchCmd runs a search through the public client so it works signed out.
func (m Model) searchCmd(query string, pageSize int) tea.Cmd {
	ctx := m.ctx
	client := m.public
	return func() tea.Msg {
		videos, err := client.SearchVideos(ctx, query, 1, pageSize)
		return feedMsg{videos: videos, err: err}
	}
}

// loadVideoCmd fetches the video detail; the watch view opens on it.
func (m Model) loadVideoCmd(videoID string) tea.Cmd {
	ctx := m.ctx
	client := m.public
	return func() tea.Msg {
		video, err := client.GetVideo(ctx, videoID)
		return videoMsg{video: video, err: err}
	}
}

// loadCommentsCmd fetches the comment thread for a video.
func (m Model) loadCommentsCmd(videoID string) tea.Cmd {
	ctx := m.ctx
	client := m.public
	return func() tea.Msg {
		comments, err := client.Comments(ctx, videoID)
		return commentsMsg{videoID: videoID, comments: comments, err: err}
	}
}

// recordWatchCmd bumps the view counter and, when enabled and signed in,
// records the video into watch history. Failures are silent: watching is
// never interrupted by bookkeeping.
func (m Model) recordWatchCmd(videoID string) tea.Cmd {
	ctx := m.ctx
	client := m.public
	history := m.engage.history
	record := m.prefs.RecordHistory && m.authenticated()
	return func() tea.Msg {
		_ = client.RecordView(ctx, videoID)
		if record {
			_ = history.Record(ctx, videoID)
		}
		return nil
	}
}

// toggleVideoLikeCmd runs the like toggle to completion; the UI already
// shows the optimistic state.
func (m Model) toggleVideoLikeCmd(videoID string, current engage.LikeState) tea.Cmd {
	ctx := m.ctx
	likes := m.engage.likes
	return func() tea.Msg {
		settled, err := likes.ToggleVideo(ctx, videoID, current)
		return likeSettledMsg{videoID: videoID, state: settled, err: err}
	}
}

func (m Model) toggleCommentLikeCmd(commentID string, current engage.LikeState) tea.Cmd {
	ctx := m.ctx
	likes := m.engage.likes
	return func() tea.Msg {
		settled, err := likes.ToggleComment(ctx, commentID, current)
		return likeSettledMsg{commentID: commentID, state: settled, err: err}
	}
}

func (m Model) toggleSubscriptionCmd(channelID string, current engage.SubState) tea.Cmd {
	ctx := m.ctx
	subs := m.engage.subs
	return func() tea.Msg {
		settled, err := subs.Toggle(ctx, channelID, current)
		return subSettledMsg{channelID: channelID, state: settled, err: err}
	}
}

func (m Model) toggleWatchLaterCmd(videoID string, current bool) tea.Cmd {
	ctx := m.ctx
	watchLater := m.engage.watchLater
	return func() tea.Msg {
		settled, err := watchLater.Toggle(ctx, videoID, current)
		return watchLaterSettledMsg{videoID: videoID, saved: settled, err: err}
	}
}

func (m Model) postCommentCmd(videoID, content, parentID string) tea.Cmd {
	ctx := m.ctx
	client := m.client
	return func() tea.Msg {
		_, err := client.AddComment(ctx, videoID, content, parentID)
		return commentPostedMsg{videoID: videoID, err: err}
	}
}

// loadChannelCmd fetches a channel profile plus its published videos.
func (m Model) loadChannelCmd(username string) tea.Cmd {
	ctx := m.ctx
	client := m.public
	pageSize := m.prefs.PageSize
	return func() tea.Msg {
		channel, err := client.GetChannel(ctx, username)
		if err != nil {
			return channelMsg{err: err}
		}
		videos, err := client.ListVideos(ctx, vidtube.ListVideosOptions{Page: 1, Limit: pageSize, UserID: channel.ID})
		return channelMsg{channel: channel, videos: videos, err: err}
	}
}

func (m Model) loadSubscriptionsCmd() tea.Cmd {
	ctx := m.ctx
	subs := m.engage.subs
	pageSize := m.prefs.PageSize
	return func() tea.Msg {
		all, err := subs.FetchAll(ctx, pageSize)
		return subscriptionsMsg{subs: all, err: err}
	}
}

func (m Model) loadHistoryCmd() tea.Cmd {
	ctx := m.ctx
	history := m.engage.history
	return func() tea.Msg {
		groups, err := history.Fetch(ctx, time.Now())
		return historyMsg{groups: groups, err: err}
	}
}

// removeHistoryCmd deletes one history entry.
func (m Model) removeHistoryCmd(itemID string) tea.Cmd {
	ctx := m.ctx
	history := m.engage.history
	return func() tea.Msg {
		return historyEditedMsg{err: history.Remove(ctx, itemID)}
	}
}

// clearHistoryCmd wipes the viewer's entire watch history.
func (m Model) clearHistoryCmd() tea.Cmd {
	ctx := m.ctx
	history := m.engage.history
	return func() tea.Msg {
		return historyEditedMsg{cleared: true, err: history.Clear(ctx)}
	}
}

func (m Model) loadWatchLaterCmd() tea.Cmd {
	ctx := m.ctx
	watchLater := m.engage.watchLater
	return func() tea.Msg {
		videos, err := watchLater.List(ctx)
		return watchLaterListMsg{videos: videos, err: err}
	}
}

func (m Model) loadLikedCmd() tea.Cmd {
	ctx := m.ctx
	client := m.client
	return func() tea.Msg {
		videos, err := client.LikedVideos(ctx)
		return likedVideosMsg{videos: videos, err: err}
	}
}

// loadDashboardCmd fetches the viewer's own uploads, published or not.
func (m Model) loadDashboardCmd() tea.Cmd {
	ctx := m.ctx
	client := m.client
	return func() tea.Msg {
		videos, err := client.DashboardVideos(ctx)
		return dashboardMsg{videos: videos, err: err}
	}
}

func (m Model) loadPlaylistsCmd() tea.Cmd {
	ctx := m.ctx
	client := m.client
	userID := m.sess.UserID()
	return func() tea.Msg {
		playlists, err := client.UserPlaylists(ctx, userID)
		return playlistsMsg{playlists: playlists, err: err}
	}
}

func (m Model) loginCmd(identifier, password string) tea.Cmd {
	ctx := m.ctx
	client := m.client
	sess := m.sess
	return func() tea.Msg {
		payload, err := client.Login(ctx, identifier, password)
		if err != nil {
			return authMsg{err: err}
		}
		sess.SetAuth(payload)
		return authMsg{user: payload.User}
	}
}

func (m Model) logoutCmd() tea.Cmd {
	ctx := m.ctx
	client := m.client
	sess := m.sess
	return func() tea.Msg {
		// Best effort: the server invalidates the refresh token, but local
		// sign-out proceeds even if the call fails.
		_ = client.Logout(ctx)
		sess.Clear()
		return authMsg{signedOut: true}
	}
}

func noticeCmd(level state.NoticeLevel, text string) tea.Cmd {
	return func() tea.Msg {
		return noticeMsg{level: level, text: text}
	}
}
