package engage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tuber/internal/localstore"
	"tuber/internal/vidtube"
)

type fakeSubAPI struct {
	pages     [][]vidtube.Subscription
	toggleRes vidtube.SubscribeResult
	toggleErr error
	requested []int // page numbers seen
}

func (f *fakeSubAPI) ToggleSubscription(ctx context.Context, channelID string) (vidtube.SubscribeResult, error) {
	return f.toggleRes, f.toggleErr
}

func (f *fakeSubAPI) Subscriptions(ctx context.Context, page, limit int) ([]vidtube.Subscription, error) {
	f.requested = append(f.requested, page)
	if page-1 < len(f.pages) {
		return f.pages[page-1], nil
	}
	return nil, nil
}

func sub(channelID string) vidtube.Subscription {
	return vidtube.Subscription{ID: "edge-" + channelID, Channel: vidtube.User{ID: channelID}}
}

func TestFetchAll_StopsOnShortPage(t *testing.T) {
	api := &fakeSubAPI{pages: [][]vidtube.Subscription{
		{sub("c1"), sub("c2"), sub("c3"), sub("c4")},
		{sub("c5"), sub("c6")}, // 2 < page size 4 ends pagination
	}}
	subs := NewSubscriptions(api, localstore.New(""), "u1")

	out, err := subs.FetchAll(context.Background(), 4)
	require.NoError(t, err)
	assert.Len(t, out, 6)
	assert.Equal(t, []int{1, 2}, api.requested, "a short page must stop further requests")
}

func TestFetchAll_DeduplicatesByChannelID(t *testing.T) {
	api := &fakeSubAPI{pages: [][]vidtube.Subscription{
		{sub("c1"), sub("c2"), sub("c3"), sub("c2")},
		{sub("c3"), sub("c4")},
	}}
	subs := NewSubscriptions(api, localstore.New(""), "u1")

	out, err := subs.FetchAll(context.Background(), 4)
	require.NoError(t, err)

	seen := map[string]int{}
	for _, s := range out {
		seen[s.Channel.ID]++
	}
	for id, n := range seen {
		assert.Equalf(t, 1, n, "channel %s appears %d times", id, n)
	}
	assert.Len(t, out, 4)
}

func TestFetchAll_SyncsCacheFlags(t *testing.T) {
	cache := localstore.New("")
	api := &fakeSubAPI{pages: [][]vidtube.Subscription{{sub("c1")}}}
	subs := NewSubscriptions(api, cache, "u1")

	_, err := subs.FetchAll(context.Background(), 4)
	require.NoError(t, err)
	assert.True(t, cache.Subscribed("u1", "c1"))
}

func TestToggle_FailureRestoresSnapshot(t *testing.T) {
	cache := localstore.New("")
	api := &fakeSubAPI{toggleErr: errors.New("boom")}
	subs := NewSubscriptions(api, cache, "u1")

	before := SubState{Subscribed: true, Subscribers: 100}
	settled, err := subs.Toggle(context.Background(), "c1", before)

	require.Error(t, err)
	assert.Equal(t, before, settled)
	assert.True(t, cache.Subscribed("u1", "c1"), "cache must be restored to the pre-action flag")
}

func TestToggle_AuthoritativeSubscriberCountWins(t *testing.T) {
	count := 205
	api := &fakeSubAPI{toggleRes: vidtube.SubscribeResult{IsSubscribed: true, SubscribersCount: &count}}
	subs := NewSubscriptions(api, localstore.New(""), "u1")

	settled, err := subs.Toggle(context.Background(), "c1", SubState{Subscribed: false, Subscribers: 200})
	require.NoError(t, err)
	assert.Equal(t, SubState{Subscribed: true, Subscribers: 205}, settled)
}

func TestChannelState_CacheFillsInMissingFlag(t *testing.T) {
	cache := localstore.New("")
	cache.SetSubscribed("u1", "c1", true)
	subs := NewSubscriptions(&fakeSubAPI{}, cache, "u1")

	state := subs.ChannelState(vidtube.Channel{ID: "c1", SubscribersCount: 10})
	assert.True(t, state.Subscribed)
	assert.Equal(t, 10, state.Subscribers)
}
