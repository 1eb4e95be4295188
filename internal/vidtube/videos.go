package vidtube

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/go-querystring/query"
)

// ListVideosOptions configures /videos requests.
type ListVideosOptions struct {
	Page     int    `url:"page,omitempty"`
	Limit    int    `url:"limit,omitempty"`
	Query    string `url:"query,omitempty"`
	SortBy   string `url:"sortBy,omitempty"`
	SortType string `url:"sortType,omitempty"`
	UserID   string `url:"userId,omitempty"`
}

// ListVideos fetches a page of published videos.
func (c *Client) ListVideos(ctx context.Context, opts ListVideosOptions) ([]Video, error) {
	values, err := query.Values(opts)
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}
	var videos []Video
	if err := c.get(ctx, "/videos", values, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// SearchVideos fetches videos matching a free-text query.
func (c *Client) SearchVideos(ctx context.Context, q string, page, limit int) ([]Video, error) {
	return c.ListVideos(ctx, ListVideosOptions{Query: q, Page: page, Limit: limit})
}

// GetVideo fetches a single video with viewer-relative engagement fields.
func (c *Client) GetVideo(ctx context.Context, videoID string) (Video, error) {
	var video Video
	if err := c.get(ctx, "/videos/"+url.PathEscape(videoID), nil, &video); err != nil {
		return Video{}, err
	}
	return video, nil
}

// DashboardVideos lists the authenticated user's own uploads, published or
// not.
func (c *Client) DashboardVideos(ctx context.Context) ([]Video, error) {
	var videos []Video
	if err := c.get(ctx, "/dashboard/videos", nil, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// RecordView increments the video's view counter.
func (c *Client) RecordView(ctx context.Context, videoID string) error {
	return c.patch(ctx, "/videos/"+url.PathEscape(videoID)+"/views", nil, nil)
}

// CreateVideoRequest carries the multipart upload form.
type CreateVideoRequest struct {
	Title         string
	Description   string
	VideoPath     string
	ThumbnailPath string
}

// CreateVideo uploads a new video with its thumbnail.
func (c *Client) CreateVideo(ctx context.Context, req CreateVideoRequest) (Video, error) {
	fields := map[string]string{
		"title":       req.Title,
		"description": req.Description,
	}
	files := map[string]string{
		"videoFile": req.VideoPath,
		"thumbnail": req.ThumbnailPath,
	}
	var video Video
	if err := c.doMultipart(ctx, "/videos", fields, files, &video); err != nil {
		return Video{}, err
	}
	return video, nil
}

// DeleteVideo removes one of the authenticated user's uploads.
func (c *Client) DeleteVideo(ctx context.Context, videoID string) error {
	return c.delete(ctx, "/videos/"+url.PathEscape(videoID), nil)
}

// TogglePublish flips a video's publish flag.
func (c *Client) TogglePublish(ctx context.Context, videoID string) error {
	return c.patch(ctx, "/videos/toggle/publish/"+url.PathEscape(videoID), nil, nil)
}
