package localstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LikeCount is a cached like snapshot for a video.
type LikeCount struct {
	IsLiked   bool  `json:"isLiked"`
	LikeCount int   `json:"likeCount"`
	Timestamp int64 `json:"timestamp"`
}

// document is the on-disk shape: four independent maps, each keyed
// "{userID}_{entityID}" so one viewer's state never leaks into another's on
// a shared machine.
type document struct {
	LikedVideos       map[string]bool      `json:"likedVideos"`
	UserSubscriptions map[string]bool      `json:"userSubscriptions"`
	WatchLaterVideos  map[string]bool      `json:"watchLaterVideos"`
	VideoLikeCounts   map[string]LikeCount `json:"videoLikeCounts"`
}

func emptyDocument() document {
	return document{
		LikedVideos:       map[string]bool{},
		UserSubscriptions: map[string]bool{},
		WatchLaterVideos:  map[string]bool{},
		VideoLikeCounts:   map[string]LikeCount{},
	}
}

// Store is the file-backed engagement cache. It is a best-effort mirror of
// server state: no TTL, no size bound, and last write wins. Reads never fail;
// a missing or corrupt file reads as empty.
type Store struct {
	mu   sync.Mutex
	path string
	mem  *document // used when path is empty
}

// New creates a store persisting to path. An empty path keeps the cache
// purely in memory.
func New(path string) *Store {
	return &Store{path: path}
}

// Key composes the viewer-scoped cache key for an entity.
func Key(userID, entityID string) string {
	return userID + "_" + entityID
}

// LikedVideo reports the cached like flag for a video.
func (s *Store) LikedVideo(userID, videoID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().LikedVideos[Key(userID, videoID)]
}

// SetLikedVideo caches the like flag for a video.
func (s *Store) SetLikedVideo(userID, videoID string, liked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.read()
	doc.LikedVideos[Key(userID, videoID)] = liked
	s.write(doc)
}

// Subscribed reports the cached subscription flag for a channel.
func (s *Store) Subscribed(userID, channelID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().UserSubscriptions[Key(userID, channelID)]
}

// SetSubscribed caches the subscription flag for a channel.
func (s *Store) SetSubscribed(userID, channelID string, subscribed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.read()
	doc.UserSubscriptions[Key(userID, channelID)] = subscribed
	s.write(doc)
}

// WatchLater reports the cached watch-later flag for a video.
func (s *Store) WatchLater(userID, videoID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().WatchLaterVideos[Key(userID, videoID)]
}

// SetWatchLater caches the watch-later flag for a video.
func (s *Store) SetWatchLater(userID, videoID string, saved bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.read()
	doc.WatchLaterVideos[Key(userID, videoID)] = saved
	s.write(doc)
}

// WatchLaterIDs returns the video ids the viewer has flagged locally. Used to
// merge local-only entries into the backend's watch-later list.
func (s *Store) WatchLaterIDs(userID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.read()
	prefix := userID + "_"
	var ids []string
	for key, saved := range doc.WatchLaterVideos {
		if saved && len(key) > len(prefix) && key[:len(prefix)] == prefix {
			ids = append(ids, key[len(prefix):])
		}
	}
	return ids
}

// LikeCountFor returns the cached like snapshot for a video.
func (s *Store) LikeCountFor(userID, videoID string) (LikeCount, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.read().VideoLikeCounts[Key(userID, videoID)]
	return entry, ok
}

// SetLikeCount caches a like snapshot for a video, stamped now.
func (s *Store) SetLikeCount(userID, videoID string, isLiked bool, likeCount int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.read()
	doc.VideoLikeCounts[Key(userID, videoID)] = LikeCount{
		IsLiked:   isLiked,
		LikeCount: likeCount,
		Timestamp: time.Now().UnixMilli(),
	}
	s.write(doc)
}

// read loads the document, tolerating a missing or corrupt file by returning
// an empty one.
func (s *Store) read() document {
	doc := emptyDocument()
	if s.path == "" {
		if s.mem != nil {
			return *s.mem
		}
		return doc
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return doc
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return emptyDocument()
	}
	// A file that parses but lacks a map still reads as empty, not nil.
	if doc.LikedVideos == nil {
		doc.LikedVideos = map[string]bool{}
	}
	if doc.UserSubscriptions == nil {
		doc.UserSubscriptions = map[string]bool{}
	}
	if doc.WatchLaterVideos == nil {
		doc.WatchLaterVideos = map[string]bool{}
	}
	if doc.VideoLikeCounts == nil {
		doc.VideoLikeCounts = map[string]LikeCount{}
	}
	return doc
}

// write replaces the whole document on disk. Failures are swallowed: the
// cache is a convenience, never a source of truth.
func (s *Store) write(doc document) {
	if s.path == "" {
		s.mem = &doc
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(s.path, raw, 0o644)
}
