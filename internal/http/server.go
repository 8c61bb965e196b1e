// Package http provides the dashboard HTTP server and handlers.
package http

import (
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"salesdash/internal/cache"
	"salesdash/internal/core"
	"salesdash/internal/dataset"
	"salesdash/internal/export"
	"salesdash/internal/middleware/ratelimit"
	"salesdash/internal/middleware/security"
	"salesdash/internal/middleware/trace"
	appweb "salesdash/web"
)

// ExportRunner runs one CSV export of the sales table.
type ExportRunner interface {
	Export(ctx context.Context, table core.SalesTable) export.Result
}

type Server struct {
	http.Server
	templates *template.Template
	tables    dataset.TableReader
	exports   ExportRunner

	limiter *ratelimit.Limiter
	tracer  *trace.Middleware

	// Derived chart views cached per category.
	viewCache *cache.LRU[core.DerivedView]
	cacheMgr  *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes, middleware, and templates, returning a
// ready-to-run server.
func NewServer(addr string, tables dataset.TableReader, exports ExportRunner) *Server {
	mux := http.NewServeMux()

	s := &Server{
		tables:    tables,
		exports:   exports,
		limiter:   ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		tracer:    trace.New(),
		viewCache: cache.NewLRU[core.DerivedView](16, 5*time.Minute),
		cacheMgr:  cache.NewManager(),
	}
	s.cacheMgr.Register(s.viewCache)
	s.cacheMgr.StartCleanup(10 * time.Minute)

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", security.StaticAssetHandler(3600, static))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/ui/view", s.handleViewPartial)
	mux.HandleFunc("/api/chart-data", s.handleChartData)
	mux.HandleFunc("/export", s.handleExport)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	handler := s.tracer.Handler(headers.Handler(s.limiter.PostHandler(mux)))

	s.Server.Addr = addr
	s.Server.Handler = handler
	return s
}

// readTable fetches the sales table with a small timeout so partials
// never hang on a slow backend.
func (s *Server) readTable(ctx context.Context) (core.SalesTable, error) {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.tables.ReadTable(cctx)
}

// getView returns the derived view for a category, serving from cache
// when possible. Only valid derivations are cached.
func (s *Server) getView(ctx context.Context, category core.Category) (core.DerivedView, error) {
	key := string(category)
	if view, found := s.viewCache.Get(key); found {
		slog.DebugContext(ctx, "View cache hit", "category", category)
		return view, nil
	}

	table, err := s.readTable(ctx)
	if err != nil {
		return core.DerivedView{}, err
	}
	view, err := core.ComputeView(table, category)
	if err != nil {
		return core.DerivedView{}, err
	}

	s.viewCache.Set(key, view)
	slog.DebugContext(ctx, "View cached", "category", category, "total", view.Total)
	return view, nil
}

// Shutdown gracefully shuts down the server and its cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.cacheMgr.Stop()
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if _, err := s.readTable(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Readiness check failed", "error", err)
		http.Error(w, "dataset unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
