package vidtube

import (
	"context"
	"net/url"
	"strconv"
)

// ToggleVideoLike flips the viewer's like on a video. The backend may or may
// not report an authoritative like count; see LikeResult.
func (c *Client) ToggleVideoLike(ctx context.Context, videoID string) (LikeResult, error) {
	var result LikeResult
	if err := c.post(ctx, "/likes/toggle/v/"+url.PathEscape(videoID), nil, &result); err != nil {
		return LikeResult{}, err
	}
	return result, nil
}

// ToggleCommentLike flips the viewer's like on a comment.
func (c *Client) ToggleCommentLike(ctx context.Context, commentID string) (LikeResult, error) {
	var result LikeResult
	if err := c.post(ctx, "/likes/toggle/c/"+url.PathEscape(commentID), nil, &result); err != nil {
		return LikeResult{}, err
	}
	return result, nil
}

// LikedVideos lists the videos the viewer has liked.
func (c *Client) LikedVideos(ctx context.Context) ([]Video, error) {
	var videos []Video
	if err := c.get(ctx, "/likes/videos", nil, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// ToggleSubscription flips the viewer's subscription to a channel.
func (c *Client) ToggleSubscription(ctx context.Context, channelID string) (SubscribeResult, error) {
	var result SubscribeResult
	if err := c.post(ctx, "/subscriptions/c/"+url.PathEscape(channelID), nil, &result); err != nil {
		return SubscribeResult{}, err
	}
	return result, nil
}

// Subscriptions fetches one page of the viewer's subscribed channels.
func (c *Client) Subscriptions(ctx context.Context, page, limit int) ([]Subscription, error) {
	values := url.Values{}
	if page > 0 {
		values.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
	var subs []Subscription
	if err := c.get(ctx, "/subscriptions", values, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// ToggleWatchLater flips a video's membership in the viewer's watch-later
// list.
func (c *Client) ToggleWatchLater(ctx context.Context, videoID string) (WatchLaterResult, error) {
	var result WatchLaterResult
	if err := c.post(ctx, "/watch-later/toggle/"+url.PathEscape(videoID), nil, &result); err != nil {
		return WatchLaterResult{}, err
	}
	return result, nil
}

// WatchLater lists the viewer's saved videos.
func (c *Client) WatchLater(ctx context.Context) ([]Video, error) {
	var videos []Video
	if err := c.get(ctx, "/watch-later", nil, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// AddHistory records a watch-history entry for a video.
func (c *Client) AddHistory(ctx context.Context, videoID string) error {
	return c.post(ctx, "/users/history/"+url.PathEscape(videoID), nil, nil)
}

// History lists the viewer's watch history, most recent first.
func (c *Client) History(ctx context.Context) ([]HistoryItem, error) {
	var items []HistoryItem
	if err := c.get(ctx, "/users/history", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// RemoveHistory deletes a single watch-history entry.
func (c *Client) RemoveHistory(ctx context.Context, itemID string) error {
	return c.delete(ctx, "/users/history/"+url.PathEscape(itemID), nil)
}

// ClearHistory deletes the viewer's entire watch history.
func (c *Client) ClearHistory(ctx context.Context) error {
	return c.delete(ctx, "/users/history", nil)
}
