// Package apiserver provides the JSON API HTTP server
package apiserver

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"

	"github.com/andybalholm/brotli"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/net/http2"

	"github.com/savory/api/internal/infrastructure/config"
	"github.com/savory/api/internal/infrastructure/http/handlers"
	"github.com/savory/api/internal/infrastructure/http/middleware"
	"github.com/savory/api/internal/infrastructure/monitoring"
	"github.com/savory/api/internal/ports/inbound"
	"github.com/savory/api/pkg/healthcheck"
)

// Server represents the JSON API HTTP server
type Server struct {
	config  *config.Config
	logger  *zap.Logger
	server  *http.Server
	handler http.Handler

	recipeService  inbound.RecipeService
	pantryService  inbound.PantryService
	copilotService inbound.CopilotService
	health         *healthcheck.HealthCheck
	metrics        *monitoring.MetricsCollector
}

// NewServer creates a new API server instance
func NewServer(
	cfg *config.Config,
	log *zap.Logger,
	recipeService inbound.RecipeService,
	pantryService inbound.PantryService,
	copilotService inbound.CopilotService,
	health *healthcheck.HealthCheck,
	metrics *monitoring.MetricsCollector,
) (*Server, error) {
	s := &Server{
		config:         cfg,
		logger:         log.Named("apiserver"),
		recipeService:  recipeService,
		pantryService:  pantryService,
		copilotService: copilotService,
		health:         health,
		metrics:        metrics,
	}

	s.handler = otelhttp.NewHandler(s.setupRoutes(), "savory-api",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)

	s.server = &http.Server{
		Addr:           cfg.GetServerAddr(),
		Handler:        s.handler,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	if cfg.Server.EnableHTTP2 {
		if err := http2.ConfigureServer(s.server, &http2.Server{IdleTimeout: cfg.Server.IdleTimeout}); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() chi.Router {
	mw := middleware.New(s.config, s.logger)
	validator := handlers.NewValidator()

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(mw.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.Security)
	r.Use(mw.CORS)
	if s.metrics != nil && s.config.Monitoring.EnableMetrics {
		r.Use(s.metrics.HTTPMiddleware)
	}
	if s.config.Server.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(s.config.Server.RequestTimeout))
	}
	if s.config.Server.EnableCompression {
		r.Use(newCompressor().Handler)
	}
	r.Use(mw.BodyLimit)

	r.Get("/health", s.health.LivenessHandler())
	r.Get("/ready", s.health.ReadinessHandler())
	if s.metrics != nil && s.config.Monitoring.EnableMetrics {
		r.Method(http.MethodGet, s.config.Monitoring.MetricsPath, s.metrics.Handler())
	}

	recipeH := handlers.NewRecipeHandlers(s.recipeService, validator, s.logger)
	pantryH := handlers.NewPantryHandlers(s.pantryService, validator, s.logger)
	aiH := handlers.NewAIHandlers(s.copilotService, s.logger)

	r.Route("/recipes", func(r chi.Router) {
		r.Get("/", recipeH.ListRecipes)
		r.Post("/", recipeH.CreateRecipe)
		// static segments before the id wildcard
		r.Get("/search", recipeH.SearchRecipes)
		r.Get("/suggestions", recipeH.SuggestRecipes)
		r.Get("/{id}", recipeH.GetRecipe)
		r.Put("/{id}", recipeH.UpdateRecipe)
		r.Delete("/{id}", recipeH.DeleteRecipe)
	})

	r.Route("/pantry", func(r chi.Router) {
		r.Get("/", pantryH.ListItems)
		r.Post("/", pantryH.AddItem)
		r.Delete("/{id}", pantryH.RemoveItem)
	})

	r.Route("/ai", func(r chi.Router) {
		r.Use(mw.RateLimit)
		r.Post("/chat", aiH.Chat)
	})

	return r
}

func newCompressor() *chimiddleware.Compressor {
	compressor := chimiddleware.NewCompressor(5, "application/json", "text/plain")
	compressor.SetEncoder("br", func(w io.Writer, level int) io.Writer {
		return brotli.NewWriterLevel(w, level)
	})
	return compressor
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start listens on the configured address and serves in the background.
// Listen errors are returned synchronously.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return err
	}

	s.logger.Info("Starting API server", zap.String("address", ln.Addr().String()))

	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server stopped unexpectedly", zap.Error(err))
		}
	}()
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server...")
	return s.server.Shutdown(ctx)
}
