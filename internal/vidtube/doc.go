// Package vidtube provides the HTTP client for the VidTube backend API.
//
// # Overview
//
// The package wraps every REST endpoint tuber consumes: auth, videos,
// engagement (likes, subscriptions, watch-later, history), comments, and
// playlists. It owns the two concerns call sites must never re-implement:
//
//   - Token handling: every request attaches the bearer token from the
//     TokenSource when present. A 401 triggers exactly one refresh-token
//     exchange and one retry of the original request. An unrecoverable 401
//     clears the stored access token; the authed client additionally fires
//     its auth-expired callback, while a Public() client never forces logout
//     so signed-out browsing keeps working.
//
//   - Envelope normalization: the backend's response wrapper is inconsistent
//     across endpoints ({statusCode,data,message}, {data:{docs:[…]}}, bare
//     arrays). decodeInto normalizes all observed shapes once at this
//     boundary; malformed payloads produce empty defaults or a decode error,
//     never repeated ad hoc shape checks in callers.
//
// # Error handling
//
// Network failures surface as wrapped errors. HTTP failures surface as
// *APIError carrying the status code and the server-provided message when
// the body includes one. No retries happen beyond the single token refresh.
//
// # Thread safety
//
// Client is safe for concurrent use; concurrent 401s serialize their refresh
// exchanges behind a mutex so only one exchange runs at a time.
package vidtube
