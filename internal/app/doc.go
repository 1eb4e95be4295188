// Package app provides the orchestration layer for the tuber application.
//
// # Overview
//
// This package wires together configuration, session state, the API clients,
// the engagement cache, the media proxy, the presence socket, and the UI to
// create the complete tuber TUI experience. It is the composition root where
// all dependencies are initialized and connected.
//
// # Architecture
//
// Run follows a simple initialization pattern:
//
//  1. Load tuber configuration from ~/.config/tuber/config.toml
//  2. Set up file logging and load user preferences
//  3. Load the persisted session (tokens, viewer, device id)
//  4. Open the on-disk engagement cache
//  5. Build the authed and public API clients sharing the session
//  6. Start the embedded media proxy and the presence socket
//  7. Launch the background feed poller
//  8. Start the TUI and block until the user exits or the context cancels
//
// # Polling Behavior
//
// The poller refreshes the home feed through the public client at a fixed
// cadence (default: 30 seconds) and, when signed in, revalidates the current
// user through the authed client. Consecutive failures stretch the interval
// with exponential backoff capped at five minutes; a failed refresh keeps
// the previous feed so the UI always has data to show.
//
// # Error Handling
//
// Fatal errors (returned from Run): unreadable configuration, client
// initialization failure. Everything else is recoverable: refresh failures
// are recorded in the state store, proxy and socket outages are logged and
// surfaced as notices, and the app keeps running signed out after a forced
// session expiry.
package app
