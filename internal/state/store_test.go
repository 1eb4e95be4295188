package state

import (
	"errors"
	"testing"
	"time"

	"tuber/internal/vidtube"
)

func TestStore_UpdateFeedAndSnapshotClone(t *testing.T) {
	var s Store

	before := time.Now()
	s.UpdateFeed([]vidtube.Video{{ID: "v1"}, {ID: "v2"}}, nil)

	snap := s.Snapshot()
	if len(snap.Feed) != 2 || snap.Feed[0].ID != "v1" {
		t.Fatalf("snapshot feed = %#v, want 2 items", snap.Feed)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Feed[0].ID = "mutated"
	snap2 := s.Snapshot()
	if snap2.Feed[0].ID != "v1" {
		t.Fatalf("Snapshot should clone feed; got id %q want v1", snap2.Feed[0].ID)
	}
}

func TestStore_UpdateFeedErrorKeepsPreviousData(t *testing.T) {
	var s Store

	s.UpdateFeed([]vidtube.Video{{ID: "v1"}}, nil)
	s.UpdateFeed(nil, errors.New("boom"))

	snap := s.Snapshot()
	if len(snap.Feed) != 1 || snap.Feed[0].ID != "v1" {
		t.Fatalf("feed changed on error: %#v", snap.Feed)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if snap.ConsecutiveFailures != 1 {
		t.Fatalf("ConsecutiveFailures = %d, want 1", snap.ConsecutiveFailures)
	}
}

func TestStore_IsOfflineAfterRepeatedFailures(t *testing.T) {
	var s Store
	s.UpdateFeed(nil, errors.New("one"))
	if s.Snapshot().IsOffline() {
		t.Fatalf("IsOffline = true after one failure, want false")
	}
	s.UpdateFeed(nil, errors.New("two"))
	if !s.Snapshot().IsOffline() {
		t.Fatalf("IsOffline = false after two failures, want true")
	}
	s.UpdateFeed([]vidtube.Video{}, nil)
	if s.Snapshot().IsOffline() {
		t.Fatalf("IsOffline = true after success, want reset")
	}
}

func TestStore_AuthExpiredClearsUser(t *testing.T) {
	var s Store
	s.SetUser(vidtube.User{ID: "u1", Username: "ada"})

	snap := s.Snapshot()
	if !snap.HasUser || snap.User.Username != "ada" {
		t.Fatalf("user = %#v, want ada", snap.User)
	}

	s.SetAuthExpired()
	snap = s.Snapshot()
	if snap.HasUser {
		t.Fatalf("HasUser = true after SetAuthExpired")
	}
	if !snap.AuthExpired {
		t.Fatalf("AuthExpired = false, want true")
	}

	// Signing back in clears the expired flag.
	s.SetUser(vidtube.User{ID: "u1"})
	if s.Snapshot().AuthExpired {
		t.Fatalf("AuthExpired survived SetUser")
	}
}

func TestStore_Notify(t *testing.T) {
	var s Store
	s.Notify(NoticeError, "failed to %s", "subscribe")

	snap := s.Snapshot()
	if snap.Notice.Text != "failed to subscribe" {
		t.Fatalf("Notice.Text = %q", snap.Notice.Text)
	}
	if snap.Notice.Level != NoticeError {
		t.Fatalf("Notice.Level = %v, want NoticeError", snap.Notice.Level)
	}
	if snap.Notice.At.IsZero() {
		t.Fatalf("Notice.At is zero, want stamped")
	}
}
