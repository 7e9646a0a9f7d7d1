package web

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"tickerboard/internal/adapters/web/handlers"
	"tickerboard/internal/application/ports"
	"tickerboard/internal/application/usecases"
	"tickerboard/internal/domain/models"
)

// Server represents the HTTP server
type Server struct {
	port    int
	prices  *usecases.PriceUseCase
	news    *usecases.HeadlineUseCase
	storage ports.StoragePort
	cache   ports.CachePort
	logger  *slog.Logger
	server  *http.Server
}

// NewServer creates a new HTTP server
func NewServer(port int, prices *usecases.PriceUseCase, news *usecases.HeadlineUseCase, storage ports.StoragePort, cache ports.CachePort, logger *slog.Logger) *Server {
	return &Server{
		port:    port,
		prices:  prices,
		news:    news,
		storage: storage,
		cache:   cache,
		logger:  logger,
	}
}

// Handler builds the route table. Exposed separately from Start so tests
// can drive it through httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	stocksHandler := handlers.NewPricesHandler("/api/stocks", models.CollectionStocks, s.prices, s.logger)
	etfsHandler := handlers.NewPricesHandler("/api/etfs", models.CollectionETFs, s.prices, s.logger)
	headlinesHandler := handlers.NewHeadlinesHandler(s.news, s.logger)
	healthHandler := handlers.NewHealthHandler(s.storage, s.cache, s.logger)

	mux.HandleFunc("/api/stocks", stocksHandler.Handle)
	mux.HandleFunc("/api/stocks/", stocksHandler.Handle)
	mux.HandleFunc("/api/etfs", etfsHandler.Handle)
	mux.HandleFunc("/api/etfs/", etfsHandler.Handle)
	mux.HandleFunc("/api/headlines", headlinesHandler.Handle)
	mux.HandleFunc("/api/headlines/", headlinesHandler.Handle)
	mux.HandleFunc("/health", healthHandler.Handle)

	return requestLogger(s.logger, mux)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.Handler(),
	}

	s.logger.Info("Starting HTTP server", "port", s.port)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}
