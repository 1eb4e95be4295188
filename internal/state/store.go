package state

import (
	"fmt"
	"sync"
	"time"

	"tuber/internal/vidtube"
)

// NoticeLevel classifies a transient user-facing notice.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeError
)

// Notice is a transient message surfaced in the UI footer. Failed optimistic
// actions land here instead of crashing anything.
type Notice struct {
	Text  string
	Level NoticeLevel
	At    time.Time
}

// Snapshot represents the latest shared data available to the UI.
type Snapshot struct {
	User                vidtube.User
	HasUser             bool
	Feed                []vidtube.Video
	SocketConnected     bool
	AuthExpired         bool
	Notice              Notice
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true when the API has been unreachable for multiple
// refreshes.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot between the poller,
// the socket reporter, and the UI.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// UpdateFeed replaces the home feed. When err is non-nil the previous feed is
// kept but the error is recorded for visibility.
func (s *Store) UpdateFeed(videos []vidtube.Video, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}
	s.snapshot.Feed = cloneVideos(videos)
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// SetUser records the authenticated viewer.
func (s *Store) SetUser(user vidtube.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.User = user
	s.snapshot.HasUser = true
	s.snapshot.AuthExpired = false
}

// ClearUser drops the authenticated viewer (logout or forced expiry).
func (s *Store) ClearUser() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.User = vidtube.User{}
	s.snapshot.HasUser = false
}

// SetAuthExpired flags that the session was invalidated server-side; the UI
// reacts by returning to the login view.
func (s *Store) SetAuthExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.AuthExpired = true
	s.snapshot.User = vidtube.User{}
	s.snapshot.HasUser = false
}

// SetSocketConnected records the socket server's connect/disconnect status.
func (s *Store) SetSocketConnected(connected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.SocketConnected = connected
}

// Notify records a transient notice for the UI footer.
func (s *Store) Notify(level NoticeLevel, format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Notice = Notice{
		Text:  fmt.Sprintf(format, args...),
		Level: level,
		At:    time.Now(),
	}
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Feed = cloneVideos(s.snapshot.Feed)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneVideos(videos []vidtube.Video) []vidtube.Video {
	if len(videos) == 0 {
		return nil
	}
	dup := make([]vidtube.Video, len(videos))
	copy(dup, videos)
	return dup
}
