package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tuber/internal/engage"
	"tuber/internal/prefs"
	"tuber/internal/state"
	"tuber/internal/vidtube"
)

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key closes the help overlay.
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	// Text entry modes swallow everything except their own controls.
	if m.searching {
		return m.handleSearchKey(msg)
	}
	if m.currentView == ViewLogin {
		return m.handleLoginKey(msg)
	}
	if m.currentView == ViewWatch && m.watch.commenting {
		return m.handleCommentKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		_ = prefs.Save(m.prefsPath, m.prefs)
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		return m.switchView(ViewHome)

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.searchInput.SetValue("")
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.ViewHome):
		return m.switchView(ViewHome)

	case key.Matches(msg, m.keys.ViewSubscriptions):
		return m.switchView(ViewSubscriptions)

	case key.Matches(msg, m.keys.ViewHistory):
		return m.switchView(ViewHistory)

	case key.Matches(msg, m.keys.ViewWatchLater):
		return m.switchView(ViewWatchLater)

	case key.Matches(msg, m.keys.ViewPlaylists):
		return m.switchView(ViewPlaylists)

	case key.Matches(msg, m.keys.ViewLiked):
		return m.switchView(ViewLiked)

	case key.Matches(msg, m.keys.ViewDashboard):
		return m.switchView(ViewDashboard)

	case key.Matches(msg, m.keys.SignIn):
		if m.authenticated() {
			return m, m.logoutCmd()
		}
		m.login = newLoginState()
		m.currentView = ViewLogin
		return m, textinput.Blink
	}

	if m.currentView == ViewWatch {
		return m.handleWatchKey(msg)
	}
	return m.handleListKey(msg)
}

// switchView changes the active view and kicks off its data load. Auth-gated
// views switch even when signed out; they render a sign-in prompt instead of
// fetching.
func (m Model) switchView(view View) (tea.Model, tea.Cmd) {
	m.currentView = view
	m.selectedRow = 0
	m.loadErr = nil

	if gated(view) && !m.authenticated() {
		return m, nil
	}

	switch view {
	case ViewSubscriptions:
		m.loading = true
		return m, m.loadSubscriptionsCmd()
	case ViewHistory:
		m.loading = true
		return m, m.loadHistoryCmd()
	case ViewWatchLater:
		m.loading = true
		return m, m.loadWatchLaterCmd()
	case ViewLiked:
		m.loading = true
		return m, m.loadLikedCmd()
	case ViewPlaylists:
		m.loading = true
		return m, m.loadPlaylistsCmd()
	case ViewDashboard:
		m.loading = true
		return m, m.loadDashboardCmd()
	}
	return m, nil
}

// gated reports whether a view needs a signed-in viewer.
func gated(view View) bool {
	switch view {
	case ViewSubscriptions, ViewHistory, ViewWatchLater, ViewPlaylists, ViewLiked, ViewDashboard:
		return true
	}
	return false
}

func (m Model) authenticated() bool {
	return m.sess != nil && m.sess.Authenticated()
}

// handleSearchKey drives the search input line.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	case "enter":
		query := m.searchInput.Value()
		m.searching = false
		m.searchInput.Blur()
		if query == "" {
			return m, nil
		}
		m.searchQuery = query
		m.currentView = ViewSearch
		m.selectedRow = 0
		m.loading = true
		return m, m.searchCmd(query, m.prefs.PageSize)
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleListKey processes navigation in list-shaped views.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := m.listLen()
	if count == 0 {
		return m, nil
	}
	if m.selectedRow >= count {
		m.selectedRow = count - 1
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selectedRow < count-1 {
			m.selectedRow++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedRow = count - 1
	case key.Matches(msg, m.keys.Open):
		return m.openSelected()
	case key.Matches(msg, m.keys.Channel):
		if video, ok := m.selectedVideo(); ok && video.Owner.Username != "" {
			m.loading = true
			m.currentView = ViewChannel
			m.selectedRow = 0
			return m, m.loadChannelCmd(video.Owner.Username)
		}
	case key.Matches(msg, m.keys.Subscribe):
		if m.currentView == ViewChannel && m.channel.ID != "" {
			return m.toggleChannelSubscription()
		}
	case key.Matches(msg, m.keys.WatchLater):
		if video, ok := m.selectedVideo(); ok {
			return m.toggleSavedFromList(video)
		}
	case key.Matches(msg, m.keys.RemoveEntry):
		if m.currentView == ViewHistory {
			if item, ok := m.selectedHistoryItem(); ok {
				return m, m.removeHistoryCmd(item.ID)
			}
		}
	case key.Matches(msg, m.keys.ClearHistory):
		if m.currentView == ViewHistory {
			return m, m.clearHistoryCmd()
		}
	}
	return m, nil
}

// listLen returns the row count of the active list view.
func (m Model) listLen() int {
	switch m.currentView {
	case ViewHome:
		return len(m.snapshot.Feed)
	case ViewSearch:
		return len(m.results)
	case ViewChannel:
		return len(m.channelVideos)
	case ViewSubscriptions:
		return len(m.subscriptions)
	case ViewWatchLater:
		return len(m.watchLaterRow)
	case ViewLiked:
		return len(m.likedVideos)
	case ViewDashboard:
		return len(m.uploads)
	case ViewPlaylists:
		return len(m.playlists)
	case ViewHistory:
		return len(m.flattenHistory())
	}
	return 0
}

// selectedVideo returns the highlighted video in the active list view.
func (m Model) selectedVideo() (vidtube.Video, bool) {
	var videos []vidtube.Video
	switch m.currentView {
	case ViewHome:
		videos = m.snapshot.Feed
	case ViewSearch:
		videos = m.results
	case ViewChannel:
		videos = m.channelVideos
	case ViewWatchLater:
		videos = m.watchLaterRow
	case ViewLiked:
		videos = m.likedVideos
	case ViewDashboard:
		videos = m.uploads
	case ViewHistory:
		videos = m.flattenHistory()
	default:
		return vidtube.Video{}, false
	}
	if m.selectedRow < 0 || m.selectedRow >= len(videos) {
		return vidtube.Video{}, false
	}
	return videos[m.selectedRow], true
}

// selectedHistoryItem maps the highlighted row back to its history entry,
// walking day groups in display order.
func (m Model) selectedHistoryItem() (vidtube.HistoryItem, bool) {
	row := 0
	for _, group := range m.historyGroups {
		for _, item := range group.Items {
			if row == m.selectedRow {
				return item, true
			}
			row++
		}
	}
	return vidtube.HistoryItem{}, false
}

// flattenHistory lists history videos in display order, across day groups.
func (m Model) flattenHistory() []vidtube.Video {
	var videos []vidtube.Video
	for _, group := range m.historyGroups {
		for _, item := range group.Items {
			videos = append(videos, item.Video)
		}
	}
	return videos
}

// openSelected opens the highlighted entry: videos open the watch view,
// subscriptions open the channel.
func (m Model) openSelected() (tea.Model, tea.Cmd) {
	if m.currentView == ViewSubscriptions {
		if m.selectedRow < len(m.subscriptions) {
			channel := m.subscriptions[m.selectedRow].Channel
			if channel.Username != "" {
				m.loading = true
				m.currentView = ViewChannel
				m.selectedRow = 0
				return m, m.loadChannelCmd(channel.Username)
			}
		}
		return m, nil
	}
	if m.currentView == ViewPlaylists {
		// Playlists expand inline; nothing to open yet.
		return m, nil
	}
	video, ok := m.selectedVideo()
	if !ok {
		return m, nil
	}
	m.loading = true
	return m, m.loadVideoCmd(video.ID)
}

// toggleChannelSubscription flips the channel view's subscribe state
// optimistically, then reconciles with the server response.
func (m Model) toggleChannelSubscription() (tea.Model, tea.Cmd) {
	if !m.authenticated() {
		return m, noticeCmd(state.NoticeInfo, "sign in to subscribe")
	}
	current := m.channelSub
	m.channelSub = engage.FlipSubscription(current)
	return m, m.toggleSubscriptionCmd(m.channel.ID, current)
}

// toggleSavedFromList flips watch-later membership for a list row.
func (m Model) toggleSavedFromList(video vidtube.Video) (tea.Model, tea.Cmd) {
	if !m.authenticated() {
		return m, noticeCmd(state.NoticeInfo, "sign in to save videos")
	}
	current := m.engage.watchLater.Saved(video.ID)
	return m, m.toggleWatchLaterCmd(video.ID, current)
}
