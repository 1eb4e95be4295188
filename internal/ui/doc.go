// Package ui implements the tuber terminal interface with Bubble Tea.
//
// # Architecture
//
// A single root Model owns all view state and follows the Elm cycle:
// Update consumes messages (key presses, poll ticks, completed API calls)
// and View renders from state alone. Rendering never performs I/O; every
// network call runs inside a tea.Cmd and comes back as a message.
//
// # Views
//
// The interface is a set of list-shaped pages (home feed, search results,
// channel, subscriptions, history, watch later, liked videos, playlists)
// plus the watch view and the sign-in form. Auth-gated pages render a
// page-specific sign-in pitch when the viewer is signed out instead of
// fetching anything.
//
// # Optimistic engagement
//
// Like, subscribe, and watch-later keys flip the rendered state immediately
// via the pure flip helpers in the engage package, then dispatch a command
// that runs the full toggle (cache write, API call, reconcile). The settled
// message replaces the rendered state with the confirmed or reverted value,
// so a failure snaps the UI back and surfaces a footer notice.
//
// # Data flow
//
// Background refreshes land in the shared state store; the UI polls it for
// snapshots on a fixed tick. Everything the viewer triggers directly
// (opening a video, searching, toggling) goes through commands owned by
// this package.
package ui
