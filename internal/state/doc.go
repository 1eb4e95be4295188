// Package state provides the thread-safe shared store between tuber's
// background goroutines and the UI.
//
// The poller, the socket status reporter, and the auth layer write; the UI
// reads immutable snapshots at its own cadence. The Store uses a
// readers-writer lock and defensive copying so a snapshot can never be
// mutated underneath a render.
//
// Update semantics mirror the refresh loop's needs: a failed feed refresh
// keeps the previous data and records the error, so the UI always has the
// most recent successful data to display alongside the failure.
//
// The zero value is ready to use.
package state
