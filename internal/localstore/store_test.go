package localstore

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func storePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "engagement.json")
}

func TestRead_MissingFileReturnsDefaults(t *testing.T) {
	s := New(storePath(t))
	if s.LikedVideo("u1", "v1") {
		t.Fatalf("LikedVideo = true, want false for missing file")
	}
	if _, ok := s.LikeCountFor("u1", "v1"); ok {
		t.Fatalf("LikeCountFor ok = true, want false for missing file")
	}
	if ids := s.WatchLaterIDs("u1"); len(ids) != 0 {
		t.Fatalf("WatchLaterIDs = %v, want empty", ids)
	}
}

func TestRead_CorruptJSONReturnsDefaults(t *testing.T) {
	path := storePath(t)
	if err := os.WriteFile(path, []byte("{{{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	s := New(path)
	if s.Subscribed("u1", "c1") {
		t.Fatalf("Subscribed = true, want false for corrupt file")
	}
}

func TestRead_PartialDocumentReturnsDefaults(t *testing.T) {
	path := storePath(t)
	if err := os.WriteFile(path, []byte(`{"likedVideos":{"u1_v1":true}}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	s := New(path)
	if !s.LikedVideo("u1", "v1") {
		t.Fatalf("LikedVideo = false, want true")
	}
	// The absent maps must read as empty, not panic on nil.
	if s.WatchLater("u1", "v1") {
		t.Fatalf("WatchLater = true, want false")
	}
	s.SetSubscribed("u1", "c1", true)
	if !s.Subscribed("u1", "c1") {
		t.Fatalf("Subscribed = false after set")
	}
}

func TestSetAndGetRoundTrip(t *testing.T) {
	s := New(storePath(t))

	s.SetLikedVideo("u1", "v1", true)
	s.SetWatchLater("u1", "v2", true)
	s.SetLikeCount("u1", "v1", true, 11)

	if !s.LikedVideo("u1", "v1") {
		t.Fatalf("LikedVideo = false, want true")
	}
	entry, ok := s.LikeCountFor("u1", "v1")
	if !ok || !entry.IsLiked || entry.LikeCount != 11 {
		t.Fatalf("LikeCountFor = %#v ok=%v, want liked count=11", entry, ok)
	}
	if entry.Timestamp == 0 {
		t.Fatalf("Timestamp = 0, want stamped")
	}
}

func TestKeysAreViewerScoped(t *testing.T) {
	s := New(storePath(t))
	s.SetLikedVideo("alice", "v1", true)

	if s.LikedVideo("bob", "v1") {
		t.Fatalf("bob sees alice's like; keys must be viewer-scoped")
	}
}

func TestWatchLaterIDs_OnlyFlaggedForUser(t *testing.T) {
	s := New(storePath(t))
	s.SetWatchLater("u1", "v1", true)
	s.SetWatchLater("u1", "v2", true)
	s.SetWatchLater("u1", "v3", false)
	s.SetWatchLater("u2", "v9", true)

	ids := s.WatchLaterIDs("u1")
	sort.Strings(ids)
	if len(ids) != 2 || ids[0] != "v1" || ids[1] != "v2" {
		t.Fatalf("WatchLaterIDs = %v, want [v1 v2]", ids)
	}
}

func TestLastWriteWins(t *testing.T) {
	path := storePath(t)
	a := New(path)
	b := New(path)

	a.SetLikedVideo("u1", "v1", true)
	b.SetLikedVideo("u1", "v1", false)

	if a.LikedVideo("u1", "v1") {
		t.Fatalf("LikedVideo = true, want last write (false) to win")
	}
}
