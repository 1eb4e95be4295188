// Package engage coordinates viewer engagement state across three layers:
// in-memory UI state, the local engagement cache, and the backend.
//
// # The toggle contract
//
// Every toggle-style action (like a video, like a comment, subscribe, save to
// watch-later) follows one state machine:
//
//	Idle → Optimistically-applied → Reconciling → Confirmed | Reverted
//
// On user action the flag is flipped and any dependent counter adjusted in
// memory and in the cache before the network call resolves. A successful call
// that carries authoritative values (a server-computed count) overwrites the
// guess; a successful call without them lets the guess stand. A failed call
// restores the exact pre-action snapshot to both layers. Confirmed and
// Reverted are terminal for that action; the next toggle starts over from
// whichever state is current.
//
// The contract is implemented once, in Optimistic, and parameterized by
// getter/setter so each feature manager only supplies its flip rule and its
// backend effect.
//
// Rapid duplicate toggles are deliberately not sequenced or cancelled; the
// second call's resolution may land before or after the first's.
//
// # Read aggregation
//
// The package also owns the client-side merge rules: subscription pagination
// (append, dedupe by channel id, stop on a short page), the watch-later
// two-source merge (backend list plus locally-flagged ids, failures dropped),
// watch-history day grouping, and display-only comment pagination.
package engage
