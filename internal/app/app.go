package app

import (
	"context"
	"fmt"
	"time"

	"tuber/internal/config"
	"tuber/internal/localstore"
	"tuber/internal/logging"
	"tuber/internal/prefs"
	"tuber/internal/proxy"
	"tuber/internal/session"
	"tuber/internal/socket"
	"tuber/internal/state"
	"tuber/internal/ui"
	"tuber/internal/vidtube"
)

// Options configure the tuber application.
type Options struct {
	ConfigPath   string
	APIURL       string // overrides the configured API base URL
	PrefsPath    string // empty uses default ~/.config/tuber/prefs.toml
	PollEvery    int    // seconds; zero uses default
	DisableProxy bool
}

// Run boots the tuber TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load tuber config: %w", err)
	}
	if opts.APIURL != "" {
		cfg.APIURL = opts.APIURL
	}

	logging.Setup(cfg.LogPath())
	log := logging.Component("app")

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		return fmt.Errorf("load preferences: %w", err)
	}

	sess := session.Load(cfg.SessionPath())
	cache := localstore.New(cfg.EngagementPath())
	store := &state.Store{}

	// The authed client refreshes tokens and forces a sign-out when the
	// refresh token is rejected. The public client shares the same session
	// for read paths that must keep working after an auth failure.
	client, err := vidtube.NewClient(cfg.APIURL, sess, vidtube.WithAuthExpired(func() {
		sess.Clear()
		store.SetAuthExpired()
		store.Notify(state.NoticeError, "session expired, please sign in again")
	}))
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}
	publicClient, err := vidtube.NewClient(cfg.APIURL, sess, vidtube.Public())
	if err != nil {
		return fmt.Errorf("init public api client: %w", err)
	}

	if user, ok := sess.User(); ok {
		store.SetUser(user)
	}

	if !opts.DisableProxy {
		go func() {
			if err := proxy.Start(ctx, cfg.ProxyBind, cfg.MediaHost); err != nil {
				log.WithError(err).Warn("media proxy stopped")
				store.Notify(state.NoticeError, "media proxy unavailable: %v", err)
			}
		}()
	}

	go socket.New(cfg.SocketURL, sess, store).Run(ctx)

	interval := defaultPollInterval
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}
	StartPoller(ctx, store, publicClient, client, sess, interval, userPrefs.PageSize)

	// Populate the store before the UI draws its first frame.
	refresh(ctx, store, publicClient, client, sess, userPrefs.PageSize)

	uiOpts := ui.Options{
		Context:   ctx,
		Client:    client,
		Public:    publicClient,
		Session:   sess,
		Cache:     cache,
		Store:     store,
		Config:    &cfg,
		Prefs:     userPrefs,
		PrefsPath: opts.PrefsPath,
		PollTick:  interval,
		ProxyBind: cfg.ProxyBind,
	}
	return ui.Run(uiOpts)
}
