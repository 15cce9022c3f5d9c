package http

import (
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"livingcost/internal/cache"
	applog "livingcost/internal/log"
	"livingcost/internal/middleware/ratelimit"
	"livingcost/internal/middleware/security"
	"livingcost/internal/middleware/trace"
	"livingcost/internal/services"
	appweb "livingcost/web"
)

// CacheConfig sizes the per-section response cache.
type CacheConfig struct {
	TTL  time.Duration
	Size int
}

// DefaultCacheConfig matches the config package defaults.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{TTL: 5 * time.Minute, Size: 256}
}

type Server struct {
	http.Server
	analytics *services.AnalyticsService
	templates *template.Template

	detector *security.Detector
	limiter  *ratelimit.Limiter
	tracer   *trace.Middleware
	headers  *security.HeadersMiddleware
	slogger  *applog.StructuredLogger

	// Serialized section responses keyed by section + filter. One cache
	// for everything: entries are small and the TTL does the real work.
	responseCache *cache.LRUCache[[]byte]
	cacheManager  *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes, middleware and templates, returning a
// ready-to-run server.
func NewServer(addr string, analytics *services.AnalyticsService, cacheConfig CacheConfig) *Server {
	if cacheConfig.Size <= 0 || cacheConfig.TTL <= 0 {
		cacheConfig = DefaultCacheConfig()
	}

	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		analytics:     analytics,
		detector:      security.NewDetector(),
		limiter:       ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		responseCache: cache.NewLRUCache[[]byte](cacheConfig.Size, cacheConfig.TTL),
		cacheManager:  cache.NewManager(),
	}

	s.tracer = trace.NewMiddleware(s.detector.ExtractClientIP)
	s.headers = security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	s.slogger = applog.NewStructuredLogger(applog.New(applog.DefaultConfig()))
	s.cacheManager.Register(s.responseCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("/", s.protect(s.handleIndex))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)

	mux.HandleFunc("/api/meta", s.protect(s.handleMeta))
	mux.HandleFunc("/api/insights", s.protect(s.handleInsights))
	mux.HandleFunc("/api/changes", s.protect(s.handleChanges))
	mux.HandleFunc("/api/trends", s.protect(s.handleTrends))
	mux.HandleFunc("/api/yoy", s.protect(s.handleYoY))
	mux.HandleFunc("/api/regional", s.protect(s.handleRegional))
	mux.HandleFunc("/api/essentials", s.protect(s.handleEssentials))
	mux.HandleFunc("/api/burden", s.protect(s.handleBurden))
	mux.HandleFunc("/api/spending", s.protect(s.handleSpending))
	mux.HandleFunc("/api/periods", s.protect(s.handlePeriods))

	return s
}

// protect chains the security headers, suspicious-request detection,
// rate limiting and request tracing around a handler.
func (s *Server) protect(next http.HandlerFunc) http.HandlerFunc {
	limited := s.limiter.Middleware(s.detector.ExtractClientIP, nil)

	chain := s.headers.Middleware(limited(s.tracer.Middleware(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			if s.detector.DetectSuspiciousRequest(r) {
				slog.WarnContext(r.Context(), "Suspicious request blocked",
					"path", r.URL.Path,
					"client_ip", s.detector.ExtractClientIP(r))
				http.Error(w, "Bad request", http.StatusBadRequest)
				return
			}
			next(w, r)
		}))))

	return chain.ServeHTTP
}

// FlushCaches empties the response cache. Called after a dataset
// refresh so every section recomputes against the new series.
func (s *Server) FlushCaches() {
	s.cacheManager.FlushAll()
	slog.Info("Response caches flushed")
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleReady reports ready once the datasets answer a metadata query.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := s.analytics.Meta(ctx); err != nil {
		slog.ErrorContext(ctx, "Readiness check failed", "error", err)
		http.Error(w, "not ready", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	meta, err := s.analytics.Meta(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Meta query failed", "error", err)
		http.Error(w, "datasets unavailable", http.StatusInternalServerError)
		return
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", meta); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
