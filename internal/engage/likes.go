package engage

import (
	"context"

	"tuber/internal/localstore"
	"tuber/internal/logging"
	"tuber/internal/vidtube"

	"github.com/sirupsen/logrus"
)

// LikeAPI is the slice of the VidTube client the likes manager needs.
// Implemented by *vidtube.Client.
type LikeAPI interface {
	ToggleVideoLike(ctx context.Context, videoID string) (vidtube.LikeResult, error)
	ToggleCommentLike(ctx context.Context, commentID string) (vidtube.LikeResult, error)
}

// LikeState is the viewer-relative like flag plus the visible counter.
type LikeState struct {
	Liked bool
	Count int
}

// FlipLike returns the optimistic guess for a like toggle: flag flipped,
// counter adjusted.
func FlipLike(s LikeState) LikeState {
	if s.Liked {
		count := s.Count - 1
		if count < 0 {
			count = 0
		}
		return LikeState{Liked: false, Count: count}
	}
	return LikeState{Liked: true, Count: s.Count + 1}
}

// Likes coordinates video and comment like toggles across in-memory state,
// the local cache, and the backend.
type Likes struct {
	api    LikeAPI
	cache  *localstore.Store
	userID string
	log    *logrus.Entry
}

// NewLikes builds a likes manager scoped to one viewer.
func NewLikes(api LikeAPI, cache *localstore.Store, userID string) *Likes {
	return &Likes{api: api, cache: cache, userID: userID, log: logging.Component("engage.likes")}
}

// VideoState resolves the starting like state for a video, overlaying the
// cached snapshot when the server payload carries no engagement fields.
func (l *Likes) VideoState(video vidtube.Video) LikeState {
	state := LikeState{Liked: video.IsLiked, Count: video.LikesCount}
	if !state.Liked && state.Count == 0 {
		if cached, ok := l.cache.LikeCountFor(l.userID, video.ID); ok {
			return LikeState{Liked: cached.IsLiked, Count: cached.LikeCount}
		}
	}
	return state
}

// ToggleVideo runs the full optimistic toggle for a video like and returns
// the settled state. On error the returned state equals current and both the
// in-memory view and the cache have been rolled back.
func (l *Likes) ToggleVideo(ctx context.Context, videoID string, current LikeState) (LikeState, error) {
	state := current
	get := func() LikeState { return state }
	set := func(s LikeState) {
		state = s
		l.cache.SetLikedVideo(l.userID, videoID, s.Liked)
		l.cache.SetLikeCount(l.userID, videoID, s.Liked, s.Count)
	}

	err := Optimistic(get, set, FlipLike(current), func() (LikeState, bool, error) {
		result, err := l.api.ToggleVideoLike(ctx, videoID)
		if err != nil {
			return LikeState{}, false, err
		}
		if result.LikesCount != nil {
			return LikeState{Liked: result.IsLiked, Count: *result.LikesCount}, true, nil
		}
		return LikeState{}, false, nil
	})
	if err != nil {
		l.log.WithError(err).WithField("video", videoID).Warn("like toggle reverted")
	}
	return state, err
}

// ToggleComment runs the optimistic toggle for a comment like. Comment likes
// are not cached locally; only the in-memory state participates.
func (l *Likes) ToggleComment(ctx context.Context, commentID string, current LikeState) (LikeState, error) {
	state := current
	get := func() LikeState { return state }
	set := func(s LikeState) { state = s }

	err := Optimistic(get, set, FlipLike(current), func() (LikeState, bool, error) {
		result, err := l.api.ToggleCommentLike(ctx, commentID)
		if err != nil {
			return LikeState{}, false, err
		}
		if result.LikesCount != nil {
			return LikeState{Liked: result.IsLiked, Count: *result.LikesCount}, true, nil
		}
		return LikeState{}, false, nil
	})
	if err != nil {
		l.log.WithError(err).WithField("comment", commentID).Warn("comment like toggle reverted")
	}
	return state, err
}
