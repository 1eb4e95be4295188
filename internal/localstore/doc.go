// Package localstore persists viewer-scoped engagement flags between runs.
//
// It mirrors what the backend already knows (liked videos, subscriptions,
// watch-later membership, like counts) so optimistic UI state survives a
// restart. It is explicitly best-effort: every read tolerates a missing or
// corrupt file by returning empty defaults, every write replaces the whole
// document, and two concurrent processes racing on the file simply
// last-write-win. Nothing here is a source of truth.
//
// Keys are composed as "{userID}_{entityID}"; callers pick a stable user
// identifier so one account's cached state never shows up for another.
package localstore
