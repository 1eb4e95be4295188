package engage

import (
	"context"

	"tuber/internal/localstore"
	"tuber/internal/logging"
	"tuber/internal/vidtube"

	"github.com/sirupsen/logrus"
)

// SubscriptionAPI is the slice of the VidTube client the subscriptions
// manager needs. Implemented by *vidtube.Client.
type SubscriptionAPI interface {
	ToggleSubscription(ctx context.Context, channelID string) (vidtube.SubscribeResult, error)
	Subscriptions(ctx context.Context, page, limit int) ([]vidtube.Subscription, error)
}

// SubState is the viewer-relative subscription flag plus the visible
// subscriber counter.
type SubState struct {
	Subscribed  bool
	Subscribers int
}

// FlipSubscription returns the optimistic guess for a subscribe toggle.
func FlipSubscription(s SubState) SubState {
	if s.Subscribed {
		count := s.Subscribers - 1
		if count < 0 {
			count = 0
		}
		return SubState{Subscribed: false, Subscribers: count}
	}
	return SubState{Subscribed: true, Subscribers: s.Subscribers + 1}
}

// Subscriptions coordinates subscribe toggles and the paginated subscription
// list for one viewer.
type Subscriptions struct {
	api    SubscriptionAPI
	cache  *localstore.Store
	userID string
	log    *logrus.Entry
}

// NewSubscriptions builds a subscriptions manager scoped to one viewer.
func NewSubscriptions(api SubscriptionAPI, cache *localstore.Store, userID string) *Subscriptions {
	return &Subscriptions{api: api, cache: cache, userID: userID, log: logging.Component("engage.subs")}
}

// ChannelState resolves the starting subscription state for a channel,
// preferring the server flag and falling back to the cached one.
func (s *Subscriptions) ChannelState(channel vidtube.Channel) SubState {
	state := SubState{Subscribed: channel.IsSubscribed, Subscribers: channel.SubscribersCount}
	if !state.Subscribed && s.cache.Subscribed(s.userID, channel.ID) {
		state.Subscribed = true
	}
	return state
}

// Toggle runs the full optimistic toggle for a channel subscription and
// returns the settled state.
func (s *Subscriptions) Toggle(ctx context.Context, channelID string, current SubState) (SubState, error) {
	state := current
	get := func() SubState { return state }
	set := func(st SubState) {
		state = st
		s.cache.SetSubscribed(s.userID, channelID, st.Subscribed)
	}

	err := Optimistic(get, set, FlipSubscription(current), func() (SubState, bool, error) {
		result, err := s.api.ToggleSubscription(ctx, channelID)
		if err != nil {
			return SubState{}, false, err
		}
		if result.SubscribersCount != nil {
			return SubState{Subscribed: result.IsSubscribed, Subscribers: *result.SubscribersCount}, true, nil
		}
		return SubState{}, false, nil
	})
	if err != nil {
		s.log.WithError(err).WithField("channel", channelID).Warn("subscribe toggle reverted")
	}
	return state, err
}

// FetchAll walks the paginated subscription list, appending new entries
// deduplicated by channel id, and stops as soon as a page comes back shorter
// than the requested size. A mid-walk failure returns the pages gathered so
// far alongside the error.
func (s *Subscriptions) FetchAll(ctx context.Context, pageSize int) ([]vidtube.Subscription, error) {
	if pageSize <= 0 {
		pageSize = 10
	}
	var out []vidtube.Subscription
	seen := make(map[string]struct{})

	for page := 1; ; page++ {
		batch, err := s.api.Subscriptions(ctx, page, pageSize)
		if err != nil {
			return out, err
		}
		for _, sub := range batch {
			id := sub.Channel.ID
			if id == "" {
				id = sub.ID
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, sub)
		}
		if len(batch) < pageSize {
			break
		}
	}

	// Refresh the cached flags so channel pages agree with the list.
	for _, sub := range out {
		if sub.Channel.ID != "" {
			s.cache.SetSubscribed(s.userID, sub.Channel.ID, true)
		}
	}
	return out, nil
}
