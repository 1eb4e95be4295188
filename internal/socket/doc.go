// Package socket keeps a best-effort websocket connection to the backend's
// presence server. On connect it sends a join frame identifying the viewer
// and device, then discards everything the server sends; nothing downstream
// consumes socket events. Connection status is published to the shared state
// store so the UI can show it, and a dropped connection is retried on a
// fixed delay until the context ends.
package socket
