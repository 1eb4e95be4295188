package vidtube

import (
	"context"
	"net/url"
)

// CreatePlaylist creates an empty playlist owned by the viewer.
func (c *Client) CreatePlaylist(ctx context.Context, name, description string) (Playlist, error) {
	body := map[string]string{"name": name, "description": description}
	var playlist Playlist
	if err := c.post(ctx, "/playlist", body, &playlist); err != nil {
		return Playlist{}, err
	}
	return playlist, nil
}

// GetPlaylist fetches a playlist with its videos populated.
func (c *Client) GetPlaylist(ctx context.Context, playlistID string) (Playlist, error) {
	var playlist Playlist
	if err := c.get(ctx, "/playlist/"+url.PathEscape(playlistID), nil, &playlist); err != nil {
		return Playlist{}, err
	}
	return playlist, nil
}

// UpdatePlaylist renames a playlist or updates its description.
func (c *Client) UpdatePlaylist(ctx context.Context, playlistID, name, description string) (Playlist, error) {
	body := map[string]string{"name": name, "description": description}
	var playlist Playlist
	if err := c.patch(ctx, "/playlist/"+url.PathEscape(playlistID), body, &playlist); err != nil {
		return Playlist{}, err
	}
	return playlist, nil
}

// DeletePlaylist removes a playlist. Only the owner may do this; the backend
// enforces it and the UI hides the action for everyone else.
func (c *Client) DeletePlaylist(ctx context.Context, playlistID string) error {
	return c.delete(ctx, "/playlist/"+url.PathEscape(playlistID), nil)
}

// AddVideoToPlaylist appends a video to a playlist.
func (c *Client) AddVideoToPlaylist(ctx context.Context, videoID, playlistID string) error {
	return c.patch(ctx, "/playlist/add/"+url.PathEscape(videoID)+"/"+url.PathEscape(playlistID), nil, nil)
}

// RemoveVideoFromPlaylist removes a video from a playlist.
func (c *Client) RemoveVideoFromPlaylist(ctx context.Context, videoID, playlistID string) error {
	return c.patch(ctx, "/playlist/remove/"+url.PathEscape(videoID)+"/"+url.PathEscape(playlistID), nil, nil)
}

// UserPlaylists lists playlists owned by a user.
func (c *Client) UserPlaylists(ctx context.Context, userID string) ([]Playlist, error) {
	var playlists []Playlist
	if err := c.get(ctx, "/playlist/user/"+url.PathEscape(userID), nil, &playlists); err != nil {
		return nil, err
	}
	return playlists, nil
}
