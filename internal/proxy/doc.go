// Package proxy embeds the media proxy endpoint: GET /media?src=<url>
// fetches a remote video URL server-side and re-streams it with permissive
// CORS and long-lived caching headers. Requests are restricted to a single
// trusted media host; anything else is rejected with 403. Range and content
// headers pass through both ways so seeking keeps working.
package proxy
