package engage

import (
	"context"

	"tuber/internal/localstore"
	"tuber/internal/logging"
	"tuber/internal/vidtube"

	"github.com/sirupsen/logrus"
)

// WatchLaterAPI is the slice of the VidTube client the watch-later manager
// needs. Implemented by *vidtube.Client.
type WatchLaterAPI interface {
	ToggleWatchLater(ctx context.Context, videoID string) (vidtube.WatchLaterResult, error)
	WatchLater(ctx context.Context) ([]vidtube.Video, error)
	GetVideo(ctx context.Context, videoID string) (vidtube.Video, error)
}

// WatchLater coordinates save-for-later toggles and the merged list view.
type WatchLater struct {
	api    WatchLaterAPI
	cache  *localstore.Store
	userID string
	log    *logrus.Entry
}

// NewWatchLater builds a watch-later manager scoped to one viewer.
func NewWatchLater(api WatchLaterAPI, cache *localstore.Store, userID string) *WatchLater {
	return &WatchLater{api: api, cache: cache, userID: userID, log: logging.Component("engage.watchlater")}
}

// Saved resolves whether a video is flagged, preferring the server flag when
// the caller has one and falling back to the cache.
func (w *WatchLater) Saved(videoID string) bool {
	return w.cache.WatchLater(w.userID, videoID)
}

// Toggle runs the full optimistic toggle for watch-later membership and
// returns the settled flag.
func (w *WatchLater) Toggle(ctx context.Context, videoID string, current bool) (bool, error) {
	state := current
	get := func() bool { return state }
	set := func(saved bool) {
		state = saved
		w.cache.SetWatchLater(w.userID, videoID, saved)
	}

	err := Optimistic(get, set, !current, func() (bool, bool, error) {
		result, err := w.api.ToggleWatchLater(ctx, videoID)
		if err != nil {
			return false, false, err
		}
		return result.IsSaved, true, nil
	})
	if err != nil {
		w.log.WithError(err).WithField("video", videoID).Warn("watch-later toggle reverted")
	}
	return state, err
}

// List merges the authoritative backend list with any locally-flagged video
// ids not yet present in it. Missing videos are fetched individually; ones
// that fail to resolve are dropped. The result never contains duplicates.
func (w *WatchLater) List(ctx context.Context) ([]vidtube.Video, error) {
	videos, err := w.api.WatchLater(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(videos))
	for _, v := range videos {
		seen[v.ID] = struct{}{}
	}

	for _, id := range w.cache.WatchLaterIDs(w.userID) {
		if _, ok := seen[id]; ok {
			continue
		}
		video, err := w.api.GetVideo(ctx, id)
		if err != nil {
			w.log.WithError(err).WithField("video", id).Debug("dropping unresolvable local watch-later entry")
			continue
		}
		seen[id] = struct{}{}
		videos = append(videos, video)
	}
	return videos, nil
}
