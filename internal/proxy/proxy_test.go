package proxy

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func newTestServer(t *testing.T, trustedHost string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(New(trustedHost).Router())
	t.Cleanup(ts.Close)
	return ts
}

func TestHandleMedia_RejectsUntrustedHost(t *testing.T) {
	ts := newTestServer(t, "cdn.example.com")

	resp, err := http.Get(ts.URL + "/media?src=" + url.QueryEscape("https://evil.example.org/video.mp4"))
	if err != nil {
		t.Fatalf("GET /media: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusForbidden)
	}
}

func TestHandleMedia_AllowsSubdomainOfTrustedHost(t *testing.T) {
	// A host like assets.cdn.example.com is inside the trusted zone, but
	// notcdn.example.com must not match by suffix accident.
	s := New("cdn.example.com")
	if !s.trusted("cdn.example.com") {
		t.Fatalf("trusted(cdn.example.com) = false, want true")
	}
	if !s.trusted("assets.cdn.example.com") {
		t.Fatalf("trusted(assets.cdn.example.com) = false, want true")
	}
	if s.trusted("notcdn.example.com") {
		t.Fatalf("trusted(notcdn.example.com) = true, want false")
	}
}

func TestHandleMedia_StreamsUpstreamWithHeaders(t *testing.T) {
	var gotRange string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRange = r.Header.Get("Range")
		w.Header().Set("Content-Type", "video/mp4")
		w.Header().Set("Accept-Ranges", "bytes")
		w.Header().Set("Content-Range", "bytes 0-3/100")
		w.WriteHeader(http.StatusPartialContent)
		_, _ = w.Write([]byte("mp4!"))
	}))
	defer upstream.Close()

	upstreamURL, err := url.Parse(upstream.URL)
	if err != nil {
		t.Fatalf("parse upstream url: %v", err)
	}
	ts := newTestServer(t, upstreamURL.Hostname())

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/media?src="+url.QueryEscape(upstream.URL+"/video.mp4"), nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Range", "bytes=0-3")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /media: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusPartialContent {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusPartialContent)
	}
	if gotRange != "bytes=0-3" {
		t.Fatalf("upstream Range = %q, want bytes=0-3", gotRange)
	}
	if got := resp.Header.Get("Content-Type"); got != "video/mp4" {
		t.Fatalf("Content-Type = %q, want video/mp4", got)
	}
	if got := resp.Header.Get("Content-Range"); got != "bytes 0-3/100" {
		t.Fatalf("Content-Range = %q", got)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("Access-Control-Allow-Origin = %q, want *", got)
	}
	if got := resp.Header.Get("Cache-Control"); got != cacheControl {
		t.Fatalf("Cache-Control = %q, want %q", got, cacheControl)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if string(body) != "mp4!" {
		t.Fatalf("body = %q, want mp4!", body)
	}
}

func TestHandleMedia_RejectsMissingOrMalformedSrc(t *testing.T) {
	ts := newTestServer(t, "cdn.example.com")

	for _, path := range []string{"/media", "/media?src=not-a-url"} {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("GET %s status = %d, want %d", path, resp.StatusCode, http.StatusBadRequest)
		}
	}
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, "cdn.example.com")

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}
