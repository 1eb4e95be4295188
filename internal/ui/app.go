// Package ui provides the Bubble Tea TUI for tuber.
package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tuber/internal/config"
	"tuber/internal/engage"
	"tuber/internal/localstore"
	"tuber/internal/prefs"
	"tuber/internal/session"
	"tuber/internal/state"
	"tuber/internal/vidtube"
)

// View represents the current active view.
type View int

const (
	ViewHome View = iota
	ViewSearch
	ViewWatch
	ViewChannel
	ViewSubscriptions
	ViewHistory
	ViewWatchLater
	ViewPlaylists
	ViewLiked
	ViewDashboard
	ViewLogin
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    *vidtube.Client
	Public    *vidtube.Client
	Session   *session.Session
	Cache     *localstore.Store
	Store     *state.Store
	Config    *config.Config
	Prefs     prefs.Prefs
	PrefsPath string
	PollTick  time.Duration
	ProxyBind string
}

// managers bundles the per-viewer engagement managers. They are rebuilt
// whenever the signed-in user changes so cache keys stay viewer-scoped.
type managers struct {
	likes      *engage.Likes
	subs       *engage.Subscriptions
	watchLater *engage.WatchLater
	history    *engage.History
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	client    *vidtube.Client
	public    *vidtube.Client
	sess      *session.Session
	cache     *localstore.Store
	store     *state.Store
	config    *config.Config
	prefs     prefs.Prefs
	prefsPath string
	pollTick  time.Duration
	proxyBind string

	// UI state
	keys        keyMap
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool

	// Data state
	snapshot    state.Snapshot
	lastUpdated time.Time
	engage      managers

	// List state, shared by every list-shaped view
	selectedRow int
	loading     bool
	loadErr     error

	// Search state
	searchInput textinput.Model
	searching   bool
	searchQuery string
	results     []vidtube.Video

	// Watch state
	watch watchState

	// Channel state
	channel       vidtube.Channel
	channelSub    engage.SubState
	channelVideos []vidtube.Video

	// Library views
	subscriptions []vidtube.Subscription
	historyGroups []engage.DayGroup
	watchLaterRow []vidtube.Video
	likedVideos   []vidtube.Video
	playlists     []vidtube.Playlist
	uploads       []vidtube.Video

	// Login form
	login loginState
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = time.Second
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	search := textinput.New()
	search.Placeholder = "search videos"
	search.CharLimit = 120

	m := Model{
		ctx:         ctx,
		client:      opts.Client,
		public:      opts.Public,
		sess:        opts.Session,
		cache:       opts.Cache,
		store:       opts.Store,
		config:      opts.Config,
		prefs:       opts.Prefs,
		prefsPath:   prefsPath,
		pollTick:    pollTick,
		proxyBind:   opts.ProxyBind,
		keys:        DefaultKeyMap(),
		theme:       GetTheme(opts.Prefs.Theme),
		currentView: ViewHome,
		searchInput: search,
		login:       newLoginState(),
	}
	m.rebuildManagers()
	return m
}

// rebuildManagers recreates the engagement managers for the current viewer.
func (m *Model) rebuildManagers() {
	userID := ""
	if m.sess != nil {
		userID = m.sess.UserID()
	}
	m.engage = managers{
		likes:      engage.NewLikes(m.client, m.cache, userID),
		subs:       engage.NewSubscriptions(m.client, m.cache, userID),
		watchLater: engage.NewWatchLater(m.client, m.cache, userID),
		history:    engage.NewHistory(m.client),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(m.pollTick),
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		prevExpired := m.snapshot.AuthExpired
		m.snapshot = state.Snapshot(msg)
		m.lastUpdated = time.Now()
		if m.snapshot.AuthExpired && !prevExpired {
			// Forced sign-out: rebuild managers so cache keys drop the
			// stale viewer. Auth-gated views switch to the sign-in prompt
			// at render time, once authenticated() turns false.
			m.rebuildManagers()
		}
		return m, nil

	case feedMsg:
		m.loading = false
		m.loadErr = msg.err
		if msg.err == nil {
			m.results = msg.videos
		}
		return m, nil

	case videoMsg:
		return m.handleVideoLoaded(msg)

	case commentsMsg:
		return m.handleCommentsLoaded(msg)

	case likeSettledMsg:
		return m.handleLikeSettled(msg)

	case subSettledMsg:
		return m.handleSubSettled(msg)

	case watchLaterSettledMsg:
		return m.handleWatchLaterSettled(msg)

	case commentPostedMsg:
		return m.handleCommentPosted(msg)

	case channelMsg:
		m.loading = false
		m.loadErr = msg.err
		if msg.err == nil {
			m.channel = msg.channel
			m.channelVideos = msg.videos
			m.channelSub = m.engage.subs.ChannelState(msg.channel)
		}
		return m, nil

	case subscriptionsMsg:
		m.loading = false
		m.loadErr = msg.err
		m.subscriptions = msg.subs
		return m, nil

	case historyMsg:
		m.loading = false
		m.loadErr = msg.err
		if msg.err == nil {
			m.historyGroups = msg.groups
		}
		return m, nil

	case historyEditedMsg:
		return m.handleHistoryEdited(msg)

	case watchLaterListMsg:
		m.loading = false
		m.loadErr = msg.err
		if msg.err == nil {
			m.watchLaterRow = msg.videos
		}
		return m, nil

	case likedVideosMsg:
		m.loading = false
		m.loadErr = msg.err
		if msg.err == nil {
			m.likedVideos = msg.videos
		}
		return m, nil

	case dashboardMsg:
		m.loading = false
		m.loadErr = msg.err
		if msg.err == nil {
			m.uploads = msg.videos
		}
		return m, nil

	case playlistsMsg:
		m.loading = false
		m.loadErr = msg.err
		if msg.err == nil {
			m.playlists = msg.playlists
		}
		return m, nil

	case authMsg:
		return m.handleAuth(msg)

	case noticeMsg:
		m.store.Notify(msg.level, "%s", msg.text)
		return m, fetchSnapshotCmd(m.store)
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleTick refreshes the snapshot and schedules the next tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return m, tea.Batch(cmds...)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
