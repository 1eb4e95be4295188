package vidtube

import (
	"context"
	"net/url"
)

// Comments fetches a video's comment tree: top-level comments, each with an
// optional flat reply list. The tree is exactly two levels deep.
func (c *Client) Comments(ctx context.Context, videoID string) ([]Comment, error) {
	var comments []Comment
	if err := c.get(ctx, "/comments/"+url.PathEscape(videoID), nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// AddComment posts a comment on a video. A non-empty parentID makes it a
// one-level reply.
func (c *Client) AddComment(ctx context.Context, videoID, content, parentID string) (Comment, error) {
	body := map[string]string{"content": content}
	if parentID != "" {
		body["parent"] = parentID
	}
	var comment Comment
	if err := c.post(ctx, "/comments/"+url.PathEscape(videoID), body, &comment); err != nil {
		return Comment{}, err
	}
	return comment, nil
}

// UpdateComment edits a comment's content.
func (c *Client) UpdateComment(ctx context.Context, commentID, content string) (Comment, error) {
	var comment Comment
	if err := c.patch(ctx, "/comments/c/"+url.PathEscape(commentID), map[string]string{"content": content}, &comment); err != nil {
		return Comment{}, err
	}
	return comment, nil
}

// DeleteComment removes a comment (and its replies, server-side).
func (c *Client) DeleteComment(ctx context.Context, commentID string) error {
	return c.delete(ctx, "/comments/c/"+url.PathEscape(commentID), nil)
}
