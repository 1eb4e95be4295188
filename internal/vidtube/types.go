package vidtube

import (
	"encoding/json"
	"strings"
	"time"
)

// User describes a platform account. Channels are the same record viewed
// from the outside; SubscribersCount and IsSubscribed are only populated on
// channel-shaped responses and are relative to the requesting viewer.
type User struct {
	ID               string `json:"_id"`
	Username         string `json:"username"`
	FullName         string `json:"fullName"`
	Email            string `json:"email,omitempty"`
	Avatar           string `json:"avatar"`
	CoverImage       string `json:"coverImage"`
	SubscribersCount int    `json:"subscribersCount"`
	IsSubscribed     bool   `json:"isSubscribed"`
	CreatedAt        string `json:"createdAt"`
}

// Channel is an alias: the backend stores channels and users as one entity.
type Channel = User

// OwnerRef tolerates the backend's two owner encodings: a bare id string or
// a populated user object.
type OwnerRef struct {
	User
}

// UnmarshalJSON accepts either `"65ab…"` or `{"_id": "65ab…", …}`.
func (o *OwnerRef) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		o.User = User{ID: id}
		return nil
	}
	return json.Unmarshal(data, &o.User)
}

// Video mirrors the backend video document.
type Video struct {
	ID          string   `json:"_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	VideoFile   string   `json:"videoFile"`
	Thumbnail   string   `json:"thumbnail"`
	Duration    float64  `json:"duration"` // seconds
	Views       int64    `json:"views"`
	IsPublished bool     `json:"isPublished"`
	Owner       OwnerRef `json:"owner"`
	IsLiked     bool     `json:"isLiked"`
	LikesCount  int      `json:"likesCount"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

// ParsedCreatedAt returns the parsed CreatedAt timestamp.
func (v Video) ParsedCreatedAt() time.Time {
	return parseTime(v.CreatedAt)
}

// Comment is a top-level comment or a one-level reply. Replies never nest
// further; the backend flattens anything deeper.
type Comment struct {
	ID         string    `json:"_id"`
	Content    string    `json:"content"`
	Owner      OwnerRef  `json:"owner"`
	Video      string    `json:"video,omitempty"`
	Parent     string    `json:"parent,omitempty"`
	LikesCount int       `json:"likesCount"`
	IsLiked    bool      `json:"isLiked"`
	Replies    []Comment `json:"replies,omitempty"`
	CreatedAt  string    `json:"createdAt"`
}

// ParsedCreatedAt returns the parsed CreatedAt timestamp.
func (c Comment) ParsedCreatedAt() time.Time {
	return parseTime(c.CreatedAt)
}

// Playlist mirrors the backend playlist document.
type Playlist struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Thumbnail   string   `json:"thumbnail"`
	Owner       OwnerRef `json:"owner"`
	Videos      []Video  `json:"videos"`
	IsPublic    bool     `json:"isPublic"`
	CreatedAt   string   `json:"createdAt"`
}

// Subscription is the edge between a subscriber and a channel.
type Subscription struct {
	ID               string `json:"_id"`
	Channel          User   `json:"channel"`
	Subscriber       string `json:"subscriber,omitempty"`
	SubscribersCount int    `json:"subscribersCount,omitempty"`
	CreatedAt        string `json:"createdAt"`
}

// HistoryItem is a watch-history entry with its embedded video snapshot.
type HistoryItem struct {
	ID        string `json:"_id"`
	Video     Video  `json:"video"`
	WatchedAt string `json:"watchedAt"`
	CreatedAt string `json:"createdAt"`
}

// ParsedWatchedAt prefers watchedAt and falls back to createdAt.
func (h HistoryItem) ParsedWatchedAt() time.Time {
	if t := parseTime(h.WatchedAt); !t.IsZero() {
		return t
	}
	return parseTime(h.CreatedAt)
}

// LikeResult is the payload of a like toggle. LikesCount is a pointer so
// callers can tell "server did not report a count" from zero.
type LikeResult struct {
	IsLiked    bool `json:"isLiked"`
	LikesCount *int `json:"likesCount"`
}

// SubscribeResult is the payload of a subscription toggle.
type SubscribeResult struct {
	IsSubscribed     bool `json:"subscribed"`
	SubscribersCount *int `json:"subscribersCount"`
}

// WatchLaterResult is the payload of a watch-later toggle.
type WatchLaterResult struct {
	IsSaved bool `json:"isSaved"`
}

// AuthPayload is returned by login and register.
type AuthPayload struct {
	User         User   `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04:05", value, time.Local); err == nil {
		return t
	}
	return time.Time{}
}
