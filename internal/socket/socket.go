package socket

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"tuber/internal/logging"
	"tuber/internal/state"
)

// reconnectDelay is the fixed pause between connection attempts. The server
// tracks presence only, so there is no point in an aggressive retry curve.
const reconnectDelay = 10 * time.Second

// joinFrame announces the viewer to the presence server after connecting.
type joinFrame struct {
	Event    string `json:"event"`
	UserID   string `json:"userId,omitempty"`
	DeviceID string `json:"deviceId"`
}

// Identity supplies the ids sent in the join frame. The session satisfies it.
type Identity interface {
	UserID() string
	DeviceID() string
}

// Client maintains a best-effort websocket connection to the presence server
// and reports its status into the shared store. It never delivers messages to
// the rest of the app; the connection itself is the feature.
type Client struct {
	url      string
	identity Identity
	store    *state.Store
	log      *logrus.Entry
}

// New builds a presence client for the given server base URL, for example
// "http://localhost:8000". The websocket endpoint is derived from it.
func New(baseURL string, identity Identity, store *state.Store) *Client {
	return &Client{
		url:      wsURL(baseURL),
		identity: identity,
		store:    store,
		log:      logging.Component("socket"),
	}
}

// Run connects and reconnects until ctx is cancelled. It blocks, so callers
// start it on its own goroutine.
func (c *Client) Run(ctx context.Context) {
	for {
		c.connectOnce(ctx)
		c.store.SetSocketConnected(false)

		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

// connectOnce dials, joins, and drains the connection until it drops or ctx
// is cancelled.
func (c *Client) connectOnce(ctx context.Context) {
	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	conn, _, err := websocket.DefaultDialer.DialContext(dialCtx, c.url, nil)
	cancel()
	if err != nil {
		c.log.WithError(err).Debug("presence dial failed")
		return
	}
	defer func() { _ = conn.Close() }()

	join := joinFrame{
		Event:    "join",
		UserID:   c.identity.UserID(),
		DeviceID: c.identity.DeviceID(),
	}
	if err := conn.WriteJSON(join); err != nil {
		c.log.WithError(err).Debug("presence join failed")
		return
	}

	c.store.SetSocketConnected(true)
	c.log.WithField("url", c.url).Debug("presence connected")

	// Close the connection when ctx ends so the read loop unblocks.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
			_ = conn.Close()
		case <-done:
		}
	}()

	// Drain and discard. Inbound traffic only keeps the connection alive.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if ctx.Err() == nil {
				c.log.WithError(err).Debug("presence connection lost")
			}
			return
		}
	}
}

// wsURL rewrites an http(s) base URL to its ws(s) websocket endpoint.
func wsURL(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return baseURL
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/ws"
	return u.String()
}
