package vidtube

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
)

// Login exchanges credentials for a session payload.
func (c *Client) Login(ctx context.Context, identifier, password string) (AuthPayload, error) {
	body := map[string]string{
		"username": identifier,
		"email":    identifier,
		"password": password,
	}
	var payload AuthPayload
	if err := c.post(ctx, "/users/login", body, &payload); err != nil {
		return AuthPayload{}, err
	}
	return payload, nil
}

// RegisterRequest carries the multipart register form. Avatar is required by
// the backend; the cover image is optional.
type RegisterRequest struct {
	Username       string
	Email          string
	FullName       string
	Password       string
	AvatarPath     string
	CoverImagePath string
}

// Register creates an account. Avatar and cover image are uploaded as
// multipart file parts.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (AuthPayload, error) {
	fields := map[string]string{
		"username": req.Username,
		"email":    req.Email,
		"fullName": req.FullName,
		"password": req.Password,
	}
	files := map[string]string{}
	if req.AvatarPath != "" {
		files["avatar"] = req.AvatarPath
	}
	if req.CoverImagePath != "" {
		files["coverImage"] = req.CoverImagePath
	}

	var payload AuthPayload
	if err := c.doMultipart(ctx, "/users/register", fields, files, &payload); err != nil {
		return AuthPayload{}, err
	}
	return payload, nil
}

// Logout invalidates the session server-side.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/users/logout", nil, nil)
}

// CurrentUser fetches the account attached to the bearer token.
func (c *Client) CurrentUser(ctx context.Context) (User, error) {
	var user User
	if err := c.get(ctx, "/users/current-user", nil, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// DeleteAccount removes the account attached to the bearer token.
func (c *Client) DeleteAccount(ctx context.Context) error {
	return c.delete(ctx, "/users/delete-account", nil)
}

// GetChannel fetches a channel profile by username, including the
// viewer-relative isSubscribed flag when authenticated.
func (c *Client) GetChannel(ctx context.Context, username string) (Channel, error) {
	var ch Channel
	if err := c.get(ctx, "/users/c/"+url.PathEscape(username), nil, &ch); err != nil {
		return Channel{}, err
	}
	return ch, nil
}

// doMultipart issues a multipart/form-data request. The 401 handling matches
// do: one refresh, one retry, with the body rebuilt for the retry.
func (c *Client) doMultipart(ctx context.Context, path string, fields, files map[string]string, dest any) error {
	build := func() ([]byte, string, error) {
		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		for name, value := range fields {
			if err := writer.WriteField(name, value); err != nil {
				return nil, "", fmt.Errorf("write field %s: %w", name, err)
			}
		}
		for name, filePath := range files {
			file, err := os.Open(filePath)
			if err != nil {
				return nil, "", fmt.Errorf("open %s: %w", filePath, err)
			}
			part, err := writer.CreateFormFile(name, filepath.Base(filePath))
			if err == nil {
				_, err = io.Copy(part, file)
			}
			_ = file.Close()
			if err != nil {
				return nil, "", fmt.Errorf("copy %s: %w", filePath, err)
			}
		}
		if err := writer.Close(); err != nil {
			return nil, "", fmt.Errorf("finalize form: %w", err)
		}
		return buf.Bytes(), writer.FormDataContentType(), nil
	}

	payload, contentType, err := build()
	if err != nil {
		return err
	}
	rel := &url.URL{Path: path}

	status, respBody, err := c.send(ctx, http.MethodPost, rel, payload, contentType)
	if err != nil {
		return err
	}
	if status == http.StatusUnauthorized {
		if !c.refreshAccessToken(ctx) {
			return &APIError{StatusCode: status, Message: serverMessage(respBody)}
		}
		status, respBody, err = c.send(ctx, http.MethodPost, rel, payload, contentType)
		if err != nil {
			return err
		}
	}
	if status >= 400 {
		return &APIError{StatusCode: status, Message: serverMessage(respBody)}
	}
	if dest == nil {
		return nil
	}
	return decodeInto(respBody, dest)
}
