package ui

import (
	"fmt"
	"net/url"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tuber/internal/engage"
	"tuber/internal/state"
	"tuber/internal/vidtube"
)

// watchState holds everything the watch view renders: the video, the
// viewer's engagement state with it, and the comment thread.
type watchState struct {
	video    vidtube.Video
	like     engage.LikeState
	sub      engage.SubState
	saved    bool
	comments []vidtube.Comment
	pager    engage.Pager
	replies  *engage.ReplyWindow

	input      textinput.Model
	commenting bool
	replyTo    string

	selectedComment int
	showURL         bool
}

// handleVideoLoaded opens the watch view once the video detail arrives.
func (m Model) handleVideoLoaded(msg videoMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		m.loadErr = msg.err
		return m, noticeCmd(state.NoticeError, fmt.Sprintf("failed to load video: %v", msg.err))
	}

	input := textinput.New()
	input.Placeholder = "add a comment"
	input.CharLimit = 500

	m.watch = watchState{
		video:   msg.video,
		like:    m.engage.likes.VideoState(msg.video),
		sub:     m.engage.subs.ChannelState(msg.video.Owner.User),
		saved:   m.engage.watchLater.Saved(msg.video.ID),
		pager:   engage.NewPager(0),
		replies: engage.NewReplyWindow(0),
		input:   input,
	}
	m.currentView = ViewWatch
	m.loadErr = nil

	return m, tea.Batch(
		m.loadCommentsCmd(msg.video.ID),
		m.recordWatchCmd(msg.video.ID),
	)
}

// handleCommentsLoaded attaches the comment thread, ignoring stale loads
// for a video the viewer already navigated away from.
func (m Model) handleCommentsLoaded(msg commentsMsg) (tea.Model, tea.Cmd) {
	if msg.videoID != m.watch.video.ID {
		return m, nil
	}
	if msg.err != nil {
		return m, noticeCmd(state.NoticeError, fmt.Sprintf("failed to load comments: %v", msg.err))
	}
	m.watch.comments = msg.comments
	m.watch.pager.SetTotal(len(msg.comments))
	m.watch.selectedComment = 0
	return m, nil
}

// handleWatchKey processes keyboard input on the watch view.
func (m Model) handleWatchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Like):
		return m.toggleWatchLike()

	case key.Matches(msg, m.keys.Subscribe):
		return m.toggleWatchSubscription()

	case key.Matches(msg, m.keys.WatchLater):
		return m.toggleWatchSaved()

	case key.Matches(msg, m.keys.Channel):
		if m.watch.video.Owner.Username != "" {
			m.loading = true
			m.currentView = ViewChannel
			m.selectedRow = 0
			return m, m.loadChannelCmd(m.watch.video.Owner.Username)
		}

	case key.Matches(msg, m.keys.Comment):
		if !m.authenticated() {
			return m, noticeCmd(state.NoticeInfo, "sign in to comment")
		}
		m.watch.commenting = true
		m.watch.replyTo = ""
		m.watch.input.SetValue("")
		m.watch.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.MoreComments):
		m.watch.pager.ShowMore()
		return m, nil

	case key.Matches(msg, m.keys.MoreReplies):
		if idx := m.watch.selectedComment; idx >= 0 && idx < len(m.watch.comments) {
			m.watch.replies.ShowMore(m.watch.comments[idx].ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.CopyURL):
		m.watch.showURL = !m.watch.showURL
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if visible := m.watch.pager.Visible(); m.watch.selectedComment < visible-1 {
			m.watch.selectedComment++
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.watch.selectedComment > 0 {
			m.watch.selectedComment--
		}
		return m, nil

	case msg.String() == "x":
		// Like the highlighted comment.
		return m.toggleCommentLike()
	}
	return m, nil
}

// toggleWatchLike flips the like optimistically and reconciles when the
// server answers.
func (m Model) toggleWatchLike() (tea.Model, tea.Cmd) {
	if !m.authenticated() {
		return m, noticeCmd(state.NoticeInfo, "sign in to like videos")
	}
	current := m.watch.like
	m.watch.like = engage.FlipLike(current)
	return m, m.toggleVideoLikeCmd(m.watch.video.ID, current)
}

func (m Model) toggleWatchSubscription() (tea.Model, tea.Cmd) {
	if !m.authenticated() {
		return m, noticeCmd(state.NoticeInfo, "sign in to subscribe")
	}
	if m.watch.video.Owner.ID == "" {
		return m, nil
	}
	current := m.watch.sub
	m.watch.sub = engage.FlipSubscription(current)
	return m, m.toggleSubscriptionCmd(m.watch.video.Owner.ID, current)
}

func (m Model) toggleWatchSaved() (tea.Model, tea.Cmd) {
	if !m.authenticated() {
		return m, noticeCmd(state.NoticeInfo, "sign in to save videos")
	}
	current := m.watch.saved
	m.watch.saved = !current
	return m, m.toggleWatchLaterCmd(m.watch.video.ID, current)
}

func (m Model) toggleCommentLike() (tea.Model, tea.Cmd) {
	if !m.authenticated() {
		return m, noticeCmd(state.NoticeInfo, "sign in to like comments")
	}
	idx := m.watch.selectedComment
	if idx < 0 || idx >= len(m.watch.comments) {
		return m, nil
	}
	comment := m.watch.comments[idx]
	current := engage.LikeState{Liked: comment.IsLiked, Count: comment.LikesCount}
	flipped := engage.FlipLike(current)
	m.watch.comments[idx].IsLiked = flipped.Liked
	m.watch.comments[idx].LikesCount = flipped.Count
	return m, m.toggleCommentLikeCmd(comment.ID, current)
}

// handleCommentKey drives the comment composer.
func (m Model) handleCommentKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.watch.commenting = false
		m.watch.input.Blur()
		return m, nil
	case "enter":
		content := m.watch.input.Value()
		m.watch.commenting = false
		m.watch.input.Blur()
		if content == "" {
			return m, nil
		}
		return m, m.postCommentCmd(m.watch.video.ID, content, m.watch.replyTo)
	}
	var cmd tea.Cmd
	m.watch.input, cmd = m.watch.input.Update(msg)
	return m, cmd
}

// handleLikeSettled reconciles the rendered like state with the manager's
// settled (confirmed or reverted) state.
func (m Model) handleLikeSettled(msg likeSettledMsg) (tea.Model, tea.Cmd) {
	if msg.videoID != "" && msg.videoID == m.watch.video.ID {
		m.watch.like = msg.state
	}
	if msg.commentID != "" {
		for i, c := range m.watch.comments {
			if c.ID == msg.commentID {
				m.watch.comments[i].IsLiked = msg.state.Liked
				m.watch.comments[i].LikesCount = msg.state.Count
			}
		}
	}
	if msg.err != nil {
		return m, noticeCmd(state.NoticeError, fmt.Sprintf("like failed: %v", msg.err))
	}
	return m, nil
}

func (m Model) handleSubSettled(msg subSettledMsg) (tea.Model, tea.Cmd) {
	if msg.channelID == m.watch.video.Owner.ID {
		m.watch.sub = msg.state
	}
	if msg.channelID == m.channel.ID {
		m.channelSub = msg.state
	}
	if msg.err != nil {
		return m, noticeCmd(state.NoticeError, fmt.Sprintf("subscribe failed: %v", msg.err))
	}
	return m, nil
}

func (m Model) handleWatchLaterSettled(msg watchLaterSettledMsg) (tea.Model, tea.Cmd) {
	if msg.videoID == m.watch.video.ID {
		m.watch.saved = msg.saved
	}
	if msg.err != nil {
		return m, noticeCmd(state.NoticeError, fmt.Sprintf("watch later failed: %v", msg.err))
	}
	var cmd tea.Cmd
	if m.currentView == ViewWatchLater {
		cmd = m.loadWatchLaterCmd()
	}
	return m, cmd
}

// handleHistoryEdited refreshes the history view after a remove or clear.
func (m Model) handleHistoryEdited(msg historyEditedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m, noticeCmd(state.NoticeError, fmt.Sprintf("history update failed: %v", msg.err))
	}
	if msg.cleared {
		m.historyGroups = nil
		m.selectedRow = 0
		return m, noticeCmd(state.NoticeInfo, "watch history cleared")
	}
	if m.currentView == ViewHistory {
		m.loading = true
		return m, m.loadHistoryCmd()
	}
	return m, nil
}

// handleCommentPosted reloads the thread so the new comment shows with its
// server-assigned id.
func (m Model) handleCommentPosted(msg commentPostedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m, noticeCmd(state.NoticeError, fmt.Sprintf("comment failed: %v", msg.err))
	}
	if msg.videoID == m.watch.video.ID {
		return m, m.loadCommentsCmd(msg.videoID)
	}
	return m, nil
}

// handleAuth reacts to sign-in and sign-out completing.
func (m Model) handleAuth(msg authMsg) (tea.Model, tea.Cmd) {
	m.login.busy = false
	if msg.err != nil {
		m.login.err = msg.err
		return m, nil
	}
	if msg.signedOut {
		m.store.ClearUser()
		m.rebuildManagers()
		m.currentView = ViewHome
		return m, tea.Batch(
			fetchSnapshotCmd(m.store),
			noticeCmd(state.NoticeInfo, "signed out"),
		)
	}
	m.store.SetUser(msg.user)
	m.rebuildManagers()
	m.currentView = ViewHome
	return m, tea.Batch(
		fetchSnapshotCmd(m.store),
		noticeCmd(state.NoticeInfo, fmt.Sprintf("welcome back, %s", msg.user.Username)),
	)
}

// playURL builds the local proxy URL that streams the current video.
func (m Model) playURL(video vidtube.Video) string {
	if video.VideoFile == "" {
		return ""
	}
	return fmt.Sprintf("http://%s/media?src=%s", m.proxyBind, url.QueryEscape(video.VideoFile))
}
