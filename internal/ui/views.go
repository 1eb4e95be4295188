package ui

import (
	"fmt"
	"strings"
	"time"

	"tuber/internal/engage"
	"tuber/internal/state"
	"tuber/internal/vidtube"
)

// renderMain renders the full UI: header, content, footer.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	if m.searching {
		b.WriteString("  / " + m.searchInput.View())
		b.WriteString("\n")
	}
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// renderHeader renders the top bar: logo, view title, viewer, connectivity.
func (m Model) renderHeader() string {
	s := m.theme.Styles()

	left := s.Logo.Render("▶ tuber") + "  " + s.AccentText.Render(m.viewTitle())

	var right []string
	if m.snapshot.HasUser {
		right = append(right, s.Text.Render("@"+m.snapshot.User.Username))
	} else {
		right = append(right, s.MutedText.Render("signed out"))
	}
	if m.snapshot.SocketConnected {
		right = append(right, s.SuccessText.Render("●"))
	} else {
		right = append(right, s.FaintText.Render("○"))
	}
	if m.snapshot.IsOffline() {
		right = append(right, s.DangerText.Render("OFFLINE"))
	}

	return s.Header.Render(left + "   " + strings.Join(right, " "))
}

// viewTitle names the active view for the header.
func (m Model) viewTitle() string {
	switch m.currentView {
	case ViewHome:
		return "Home"
	case ViewSearch:
		return fmt.Sprintf("Search: %s", m.searchQuery)
	case ViewWatch:
		return "Watch"
	case ViewChannel:
		return "Channel"
	case ViewSubscriptions:
		return "Subscriptions"
	case ViewHistory:
		return "History"
	case ViewWatchLater:
		return "Watch Later"
	case ViewPlaylists:
		return "Playlists"
	case ViewLiked:
		return "Liked Videos"
	case ViewDashboard:
		return "Your Uploads"
	case ViewLogin:
		return "Sign In"
	}
	return ""
}

// renderFooter renders the bottom bar: notices, errors, key hints.
func (m Model) renderFooter() string {
	s := m.theme.Styles()

	if notice := m.snapshot.Notice; notice.Text != "" && time.Since(notice.At) < 5*time.Second {
		if notice.Level == state.NoticeError {
			return s.Footer.Render(s.DangerText.Render("✗ " + notice.Text))
		}
		return s.Footer.Render(s.InfoText.Render(notice.Text))
	}
	if m.loadErr != nil {
		return s.Footer.Render(s.DangerText.Render(fmt.Sprintf("✗ %v", m.loadErr)))
	}
	return s.Footer.Render("?: help · /: search · enter: open · ctrl+c: quit")
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	if gated(m.currentView) && !m.authenticated() {
		return m.renderAuthPrompt(m.currentView)
	}
	if m.loading {
		return m.theme.Styles().MutedText.Render("  loading…")
	}

	switch m.currentView {
	case ViewHome:
		return m.renderVideoList(m.snapshot.Feed, "No videos yet. The feed refreshes automatically.")
	case ViewSearch:
		return m.renderVideoList(m.results, fmt.Sprintf("No results for %q.", m.searchQuery))
	case ViewWatch:
		return m.renderWatch()
	case ViewChannel:
		return m.renderChannel()
	case ViewSubscriptions:
		return m.renderSubscriptions()
	case ViewHistory:
		return m.renderHistory()
	case ViewWatchLater:
		return m.renderVideoList(m.watchLaterRow, "Nothing saved for later yet.")
	case ViewLiked:
		return m.renderVideoList(m.likedVideos, "No liked videos yet.")
	case ViewDashboard:
		return m.renderDashboard()
	case ViewPlaylists:
		return m.renderPlaylists()
	case ViewLogin:
		return m.renderLogin()
	}
	return ""
}

// renderVideoList renders a selectable list of video rows.
func (m Model) renderVideoList(videos []vidtube.Video, empty string) string {
	s := m.theme.Styles()
	if len(videos) == 0 {
		return s.MutedText.Render("  " + empty)
	}

	now := time.Now()
	titleWidth := m.width - 40
	if titleWidth < 20 {
		titleWidth = 20
	}

	var b strings.Builder
	for i, video := range videos {
		row := fmt.Sprintf(" %-*s  %8s  %6s views  %s",
			titleWidth, truncate(video.Title, titleWidth),
			formatDuration(video.Duration),
			formatCount(video.Views),
			relativeTime(video.ParsedCreatedAt(), now),
		)
		if i == m.selectedRow {
			b.WriteString(s.Selected.Render(row))
		} else {
			b.WriteString(s.Text.Render(row))
		}
		b.WriteString("\n")
		owner := video.Owner.Username
		if owner == "" {
			owner = video.Owner.FullName
		}
		if owner != "" {
			b.WriteString(s.FaintText.Render("   " + owner))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderWatch renders the watch view: metadata, engagement row, comments.
func (m Model) renderWatch() string {
	s := m.theme.Styles()
	w := m.watch
	now := time.Now()

	var b strings.Builder
	b.WriteString(s.Title.Render(w.video.Title))
	b.WriteString("\n")

	owner := w.video.Owner.Username
	meta := fmt.Sprintf("%s views · %s", formatCount(w.video.Views), relativeTime(w.video.ParsedCreatedAt(), now))
	if owner != "" {
		subs := ""
		if w.sub.Subscribers > 0 {
			subs = fmt.Sprintf(" (%s subscribers)", formatCount(int64(w.sub.Subscribers)))
		}
		b.WriteString(s.Text.Render("@"+owner) + s.FaintText.Render(subs) + "   " + s.MutedText.Render(meta))
	} else {
		b.WriteString(s.MutedText.Render(meta))
	}
	b.WriteString("\n\n")

	// Engagement row reflects optimistic state the moment a key is pressed.
	like := fmt.Sprintf("%s %s", ternary(w.like.Liked, "♥", "♡"), formatCount(int64(w.like.Count)))
	if w.like.Liked {
		b.WriteString(s.DangerText.Render(like))
	} else {
		b.WriteString(s.Text.Render(like))
	}
	b.WriteString("   ")
	if w.sub.Subscribed {
		b.WriteString(s.SuccessText.Render("✓ Subscribed"))
	} else {
		b.WriteString(s.Text.Render("Subscribe"))
	}
	b.WriteString("   ")
	if w.saved {
		b.WriteString(s.InfoText.Render("✓ Watch later"))
	} else {
		b.WriteString(s.Text.Render("Watch later"))
	}
	b.WriteString("\n\n")

	if w.video.Description != "" {
		b.WriteString(s.MutedText.Render(truncate(w.video.Description, 400)))
		b.WriteString("\n\n")
	}

	if w.showURL {
		b.WriteString(s.AccentText.Render("play: " + m.playURL(w.video)))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderComments())
	return b.String()
}

// renderComments renders the windowed comment thread with one-level replies.
func (m Model) renderComments() string {
	s := m.theme.Styles()
	w := m.watch
	now := time.Now()

	var b strings.Builder
	b.WriteString(s.Title.Render(fmt.Sprintf("%d Comments", engage.CountComments(w.comments))))
	b.WriteString("\n")

	if w.commenting {
		b.WriteString("  " + w.input.View())
		b.WriteString("\n")
	}

	visible := w.pager.Visible()
	for i := 0; i < visible; i++ {
		c := w.comments[i]
		head := fmt.Sprintf(" @%s · %s", c.Owner.Username, relativeTime(c.ParsedCreatedAt(), now))
		if i == w.selectedComment {
			b.WriteString(s.Selected.Render(head))
		} else {
			b.WriteString(s.FaintText.Render(head))
		}
		b.WriteString("\n")
		b.WriteString(s.Text.Render("   " + truncate(c.Content, 200)))
		b.WriteString(s.MutedText.Render(fmt.Sprintf("   %s %d", ternary(c.IsLiked, "♥", "♡"), c.LikesCount)))
		b.WriteString("\n")
		shown := w.replies.Visible(c.ID, len(c.Replies))
		for _, reply := range c.Replies[:shown] {
			b.WriteString(s.FaintText.Render(fmt.Sprintf("     ↳ @%s: ", reply.Owner.Username)))
			b.WriteString(s.MutedText.Render(truncate(reply.Content, 140)))
			b.WriteString("\n")
		}
		if w.replies.HasMore(c.ID, len(c.Replies)) {
			b.WriteString(s.AccentText.Render(fmt.Sprintf("     r: show more replies (%d hidden)", len(c.Replies)-shown)))
			b.WriteString("\n")
		}
	}

	if w.pager.HasMore() {
		b.WriteString(s.AccentText.Render(fmt.Sprintf("  o: show more (%d hidden)", len(w.comments)-visible)))
		b.WriteString("\n")
	}
	return b.String()
}

// renderChannel renders a channel profile above its published videos.
func (m Model) renderChannel() string {
	s := m.theme.Styles()

	var b strings.Builder
	name := m.channel.FullName
	if name == "" {
		name = m.channel.Username
	}
	b.WriteString(s.Title.Render(name) + "  " + s.MutedText.Render("@"+m.channel.Username))
	b.WriteString("\n")

	subscribers := m.channelSub.Subscribers
	b.WriteString(s.MutedText.Render(fmt.Sprintf("%s subscribers", formatCount(int64(subscribers)))))
	b.WriteString("   ")
	if m.channelSub.Subscribed {
		b.WriteString(s.SuccessText.Render("✓ Subscribed"))
	} else {
		b.WriteString(s.Text.Render("b: Subscribe"))
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderVideoList(m.channelVideos, "This channel has no videos."))
	return b.String()
}

// renderSubscriptions renders the channels the viewer subscribes to.
func (m Model) renderSubscriptions() string {
	s := m.theme.Styles()
	if len(m.subscriptions) == 0 {
		return s.MutedText.Render("  You are not subscribed to any channels yet.")
	}

	var b strings.Builder
	for i, sub := range m.subscriptions {
		name := sub.Channel.FullName
		if name == "" {
			name = sub.Channel.Username
		}
		row := fmt.Sprintf(" %-30s  @%s", truncate(name, 30), sub.Channel.Username)
		if i == m.selectedRow {
			b.WriteString(s.Selected.Render(row))
		} else {
			b.WriteString(s.Text.Render(row))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderHistory renders watch history grouped by day.
func (m Model) renderHistory() string {
	s := m.theme.Styles()
	if len(m.historyGroups) == 0 {
		return s.MutedText.Render("  No watch history yet.")
	}

	var b strings.Builder
	row := 0
	for _, group := range m.historyGroups {
		b.WriteString(s.Title.Render(group.Label))
		b.WriteString("\n")
		for _, item := range group.Items {
			line := fmt.Sprintf("   %-50s  %s", truncate(item.Video.Title, 50), formatDuration(item.Video.Duration))
			if row == m.selectedRow {
				b.WriteString(s.Selected.Render(line))
			} else {
				b.WriteString(s.Text.Render(line))
			}
			b.WriteString("\n")
			row++
		}
	}
	return b.String()
}

// renderDashboard renders the viewer's own uploads, drafts included.
func (m Model) renderDashboard() string {
	s := m.theme.Styles()
	if len(m.uploads) == 0 {
		return s.MutedText.Render("  You haven't uploaded any videos yet.")
	}

	now := time.Now()
	var b strings.Builder
	for i, video := range m.uploads {
		visibility := ternary(video.IsPublished, "published", "draft")
		row := fmt.Sprintf(" %-40s  %8s  %6s views  %-9s  %s",
			truncate(video.Title, 40),
			formatDuration(video.Duration),
			formatCount(video.Views),
			visibility,
			relativeTime(video.ParsedCreatedAt(), now),
		)
		if i == m.selectedRow {
			b.WriteString(s.Selected.Render(row))
		} else if !video.IsPublished {
			b.WriteString(s.FaintText.Render(row))
		} else {
			b.WriteString(s.Text.Render(row))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderPlaylists renders the viewer's playlists with their video counts.
func (m Model) renderPlaylists() string {
	s := m.theme.Styles()
	if len(m.playlists) == 0 {
		return s.MutedText.Render("  No playlists yet.")
	}

	var b strings.Builder
	for i, playlist := range m.playlists {
		visibility := ternary(playlist.IsPublic, "public", "private")
		row := fmt.Sprintf(" %-30s  %3d videos  %s", truncate(playlist.Name, 30), len(playlist.Videos), visibility)
		if i == m.selectedRow {
			b.WriteString(s.Selected.Render(row))
		} else {
			b.WriteString(s.Text.Render(row))
		}
		b.WriteString("\n")
		if playlist.Description != "" {
			b.WriteString(s.FaintText.Render("   " + truncate(playlist.Description, 80)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderHelp renders the full-screen key reference.
func (m Model) renderHelp() string {
	s := m.theme.Styles()

	var b strings.Builder
	b.WriteString(s.Title.Render("tuber keys"))
	b.WriteString("\n\n")

	sections := []struct {
		title string
		keys  []string
	}{
		{"Views", []string{"f/1  home feed", "/    search", "s    subscriptions", "y    history", "w    watch later", "p    playlists", "L    liked videos", "d    your uploads"}},
		{"Lists", []string{"j/k  move", "g/G  top/bottom", "enter  open", "c    open channel"}},
		{"Watch", []string{"l    like", "b    subscribe", "m    save for later", "a    comment", "x    like comment", "o    more comments", "r    more replies", "u    show play URL"}},
		{"History", []string{"D    remove entry", "X    clear history"}},
		{"General", []string{"i    sign in / out", "T    cycle theme", "?    help", "esc  home", "ctrl+c  quit"}},
	}
	for _, section := range sections {
		b.WriteString(s.AccentText.Render(section.title))
		b.WriteString("\n")
		for _, line := range section.keys {
			b.WriteString(s.Text.Render("  " + line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	if m.config != nil {
		b.WriteString(s.FaintText.Render("api: " + m.config.APIURL))
		b.WriteString("\n")
	}
	b.WriteString(s.FaintText.Render("press any key to close"))
	return b.String()
}
