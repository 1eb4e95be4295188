package app

import (
	"context"
	"time"

	"tuber/internal/logging"
	"tuber/internal/session"
	"tuber/internal/state"
	"tuber/internal/vidtube"
)

const (
	defaultPollInterval = 30 * time.Second
	maxBackoff          = 5 * time.Minute
)

// StartPoller launches a background goroutine that refreshes the store at a
// fixed cadence, stretching the interval while the API is unreachable. It
// returns immediately.
func StartPoller(ctx context.Context, store *state.Store, public, authed *vidtube.Client, sess *session.Session, interval time.Duration, pageSize int) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		log := logging.Component("poller")
		for {
			wait := calculateBackoff(store.Snapshot().ConsecutiveFailures, interval)
			select {
			case <-ctx.Done():
				return
			case <-time.After(wait):
			}
			refresh(ctx, store, public, authed, sess, pageSize)
			if n := store.Snapshot().ConsecutiveFailures; n > 0 {
				log.WithField("failures", n).Debug("feed refresh failing")
			}
		}
	}()
}

// refresh pulls the home feed through the public client so it keeps working
// signed out, then revalidates the signed-in user through the authed client.
func refresh(ctx context.Context, store *state.Store, public, authed *vidtube.Client, sess *session.Session, pageSize int) {
	feed, err := public.ListVideos(ctx, vidtube.ListVideosOptions{Page: 1, Limit: pageSize})
	store.UpdateFeed(feed, err)
	if err != nil {
		return
	}

	if !sess.Authenticated() {
		return
	}
	user, err := authed.CurrentUser(ctx)
	if err != nil {
		// A 401 already triggered the auth-expired path inside the client;
		// transient errors just keep the cached user.
		return
	}
	sess.SetUser(user)
	store.SetUser(user)
}

// calculateBackoff doubles the base interval per consecutive failure, capped
// at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	backoff := base
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}
