package http

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"cashify/internal/log"
	"cashify/internal/middleware/ratelimit"
	"cashify/internal/middleware/security"
	"cashify/internal/middleware/trace"
	"cashify/internal/services"
	"cashify/internal/session"
	appweb "cashify/web"
)

// Options wires a Server. Gateway and Sessions are required.
type Options struct {
	Addr     string
	Gateway  services.Gateway
	Sessions *session.Store
	Logger   *log.Logger

	// Display
	Formatter *Formatter
	Location  *time.Location
	Now       func() time.Time

	// Protection
	RateLimitPerMinute int
	TrustedProxies     []string
	CookieSecure       bool

	// Gatherer backs /metrics; nil means the default registry.
	Gatherer prometheus.Gatherer
}

// Server serves the web client: pages, HTMX partials and probes.
type Server struct {
	http.Server
	templates *template.Template
	gw        services.Gateway
	accounts  *services.Accounts
	sessions  *session.Store
	format    *Formatter
	loc       *time.Location
	now       func() time.Time
	logger    *log.Logger
	gatherer  prometheus.Gatherer

	rateLimiter  *ratelimit.Limiter
	detector     *security.Detector
	cookieSecure bool
	started      time.Time

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(opts Options) (*Server, error) {
	if opts.Gateway == nil || opts.Sessions == nil {
		return nil, fmt.Errorf("server needs a gateway and a session store")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	format := opts.Formatter
	if format == nil {
		var err error
		if format, err = NewFormatter("es", "USD", loc); err != nil {
			return nil, err
		}
	}
	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// Parse embedded templates at startup.
	templates, err := template.New("").Funcs(format.FuncMap()).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	detector, err := security.NewDetector(opts.TrustedProxies)
	if err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}

	s := &Server{
		templates:    templates,
		gw:           opts.Gateway,
		accounts:     services.NewAccounts(opts.Gateway, logger),
		sessions:     opts.Sessions,
		format:       format,
		loc:          loc,
		now:          now,
		logger:       logger.WithComponent(log.ComponentHTTP),
		gatherer:     gatherer,
		rateLimiter:  ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimitPerMinute}),
		detector:     detector,
		cookieSecure: opts.CookieSecure,
		started:      time.Now(),
	}

	mux := http.NewServeMux()
	if err := s.routes(mux); err != nil {
		return nil, err
	}

	// Outermost first: tracing sees every request, the limiter only the
	// ones that passed the security layer.
	var handler http.Handler = mux
	handler = s.rateLimiter.Middleware(s.detector.ExtractClientIP, nil)(handler)
	handler = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(handler)
	handler = s.detector.Middleware(handler)
	handler = trace.NewMiddleware(logger, s.detector.ExtractClientIP).Middleware(handler)

	s.Server = http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64KB
	}
	return s, nil
}

func (s *Server) routes(mux *http.ServeMux) error {
	static, err := fs.Sub(appweb.StaticFS, "static")
	if err != nil {
		return fmt.Errorf("mount embedded static FS: %w", err)
	}
	mux.Handle("GET /static/", security.StaticAssetMiddleware(3600)(
		http.StripPrefix("/static/", http.FileServer(http.FS(static)))))

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", s.metricsHandler())

	page := func(h http.HandlerFunc) http.Handler { return security.NoStore(h) }

	// Auth
	mux.Handle("GET /{$}", page(s.handleIndex))
	mux.Handle("GET /register", page(s.handleRegisterPage))
	mux.Handle("POST /register", page(s.handleRegister))
	mux.Handle("POST /login", page(s.handleLogin))
	mux.Handle("POST /logout", page(s.handleLogout))

	// Dashboard
	mux.Handle("GET /ui/tab/{tab}", page(s.handleTab))
	mux.Handle("POST /ui/reload", page(s.handleReload))
	mux.Handle("POST /ui/summary/filter", page(s.handleFilterApply))
	mux.Handle("POST /ui/summary/quick/{unit}", page(s.handleFilterQuick))
	mux.Handle("POST /ui/summary/clear", page(s.handleFilterClear))
	mux.Handle("GET /ui/transactions", page(s.handleTransactionList))

	// Categories
	mux.Handle("POST /categories", page(s.handleCategorySubmit))
	mux.Handle("POST /categories/form/cancel", page(s.handleCategoryCancel))
	mux.Handle("GET /categories/{id}/edit", page(s.handleCategoryEdit))
	mux.Handle("POST /categories/{id}", page(s.handleCategorySubmit))
	mux.Handle("POST /categories/{id}/delete", page(s.handleCategoryDelete))

	// Transactions
	mux.Handle("POST /transactions", page(s.handleTransactionSubmit))
	mux.Handle("POST /transactions/form/cancel", page(s.handleTransactionCancel))
	mux.Handle("GET /transactions/{id}/edit", page(s.handleTransactionEdit))
	mux.Handle("POST /transactions/{id}", page(s.handleTransactionSubmit))
	mux.Handle("POST /transactions/{id}/delete", page(s.handleTransactionDelete))

	// Account
	mux.Handle("GET /account", page(s.handleAccountPage))
	mux.Handle("POST /account", page(s.handleAccountUpdate))
	mux.Handle("POST /account/delete", page(s.handleAccountDelete))

	return nil
}

// Shutdown gracefully shuts down the server and its background routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
