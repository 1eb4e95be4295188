package proxy

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"tuber/internal/logging"
)

// Server re-streams video from the single trusted media host with permissive
// CORS and long-lived caching, so local players can fetch media without the
// CDN's CORS or auth friction.
type Server struct {
	trustedHost string
	upstream    *http.Client
	log         *logrus.Entry
}

// forwarded headers, request side then response side.
var (
	requestHeaders  = []string{"Range", "If-None-Match", "If-Modified-Since"}
	responseHeaders = []string{"Content-Type", "Content-Length", "Content-Range", "Accept-Ranges", "ETag", "Last-Modified"}
)

const cacheControl = "public, max-age=31536000, immutable"

// New builds a proxy server trusting exactly one media host.
func New(trustedHost string) *Server {
	return &Server{
		trustedHost: strings.ToLower(strings.TrimSpace(trustedHost)),
		upstream:    &http.Client{Timeout: 60 * time.Second},
		log:         logging.Component("proxy"),
	}
}

// Router assembles the chi router for the proxy endpoint.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Range", "Content-Type"},
		MaxAge:         300,
	}))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/media", s.handleMedia)
	r.Head("/media", s.handleMedia)
	return r
}

func (s *Server) handleMedia(w http.ResponseWriter, r *http.Request) {
	src := r.URL.Query().Get("src")
	if src == "" {
		http.Error(w, "missing src parameter", http.StatusBadRequest)
		return
	}

	target, err := url.Parse(src)
	if err != nil || target.Scheme == "" || target.Host == "" {
		http.Error(w, "invalid src url", http.StatusBadRequest)
		return
	}
	if !s.trusted(target.Hostname()) {
		s.log.WithField("host", target.Hostname()).Warn("rejected untrusted media host")
		http.Error(w, "media host not allowed", http.StatusForbidden)
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, target.String(), nil)
	if err != nil {
		http.Error(w, "build upstream request", http.StatusInternalServerError)
		return
	}
	for _, name := range requestHeaders {
		if value := r.Header.Get(name); value != "" {
			req.Header.Set(name, value)
		}
	}

	resp, err := s.upstream.Do(req)
	if err != nil {
		s.log.WithError(err).Warn("upstream fetch failed")
		http.Error(w, "upstream fetch failed", http.StatusBadGateway)
		return
	}
	defer func() { _ = resp.Body.Close() }()

	for _, name := range responseHeaders {
		if value := resp.Header.Get(name); value != "" {
			w.Header().Set(name, value)
		}
	}
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Cache-Control", cacheControl)
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		s.log.WithError(err).Debug("media stream interrupted")
	}
}

// trusted accepts the configured host and its subdomains, nothing else.
func (s *Server) trusted(hostname string) bool {
	h := strings.ToLower(hostname)
	return h == s.trustedHost || strings.HasSuffix(h, "."+s.trustedHost)
}

// Start serves the proxy until ctx is cancelled. It returns on listener
// failure; graceful shutdown errors are only logged.
func Start(ctx context.Context, bind, trustedHost string) error {
	s := New(trustedHost)
	srv := &http.Server{
		Addr:              bind,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.WithError(err).Debug("proxy shutdown")
		}
	}()

	s.log.WithFields(logrus.Fields{"bind": bind, "host": trustedHost}).Info("media proxy listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
