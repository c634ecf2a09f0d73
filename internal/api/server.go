// Package api provides the HTTP API server implementation.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/manapixels/stock-screener/internal/adapter"
	"github.com/manapixels/stock-screener/internal/auth"
	"github.com/manapixels/stock-screener/internal/models"
)

// Repository and client interfaces for dependency injection and testing

// UserRepositoryInterface defines the user storage operations the API uses
type UserRepositoryInterface interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateSettings(ctx context.Context, userID string, update *models.UserSettingsUpdate) (*models.User, error)
	List(ctx context.Context, limit, offset int) ([]*models.User, error)
}

// WatchlistRepositoryInterface defines watchlist storage operations
type WatchlistRepositoryInterface interface {
	Create(ctx context.Context, item *models.WatchlistItem) error
	ListByOwner(ctx context.Context, ownerID string) ([]*models.WatchlistItem, error)
	Delete(ctx context.Context, id, ownerID string) (*models.WatchlistItem, error)
}

// NoteRepositoryInterface defines stock note storage operations
type NoteRepositoryInterface interface {
	Upsert(ctx context.Context, ownerID, symbol, note string) (*models.StockNote, error)
	GetByOwnerAndSymbol(ctx context.Context, ownerID, symbol string) (*models.StockNote, error)
}

// AlertRepositoryInterface defines alert storage operations
type AlertRepositoryInterface interface {
	Create(ctx context.Context, alert *models.Alert) error
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Alert, error)
	Delete(ctx context.Context, id, ownerID string) (*models.Alert, error)
}

// AuthServiceInterface defines the credential and token operations the API
// uses
type AuthServiceInterface interface {
	HashPassword(password string) (string, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	IssueToken(email string) (string, error)
	ResolveToken(ctx context.Context, tokenString string) (*models.User, error)
}

// MarketDataInterface defines the market data operations the API uses
type MarketDataInterface interface {
	SearchSymbol(ctx context.Context, keywords string) (json.RawMessage, error)
	StockDetail(ctx context.Context, symbol string) (*adapter.StockDetail, error)
}

// TelegramClientInterface defines the messaging operations the API uses
type TelegramClientInterface interface {
	SendMessage(ctx context.Context, chatID, text string) error
}

// Server represents the HTTP API server.
type Server struct {
	router     *mux.Router
	httpServer *http.Server
	users      UserRepositoryInterface
	watchlist  WatchlistRepositoryInterface
	notes      NoteRepositoryInterface
	alerts     AlertRepositoryInterface
	auth       AuthServiceInterface
	market     MarketDataInterface
	telegram   TelegramClientInterface
	config     *ServerConfig
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// NewServer creates a new API server instance.
func NewServer(
	config *ServerConfig,
	users UserRepositoryInterface,
	watchlist WatchlistRepositoryInterface,
	notes NoteRepositoryInterface,
	alerts AlertRepositoryInterface,
	authService AuthServiceInterface,
	market MarketDataInterface,
	telegram TelegramClientInterface,
) *Server {
	s := &Server{
		router:    mux.NewRouter(),
		users:     users,
		watchlist: watchlist,
		notes:     notes,
		alerts:    alerts,
		auth:      authService,
		market:    market,
		telegram:  telegram,
		config:    config,
	}

	s.setupRouter()

	return s
}

// setupRouter configures the router with middleware and routes
func (s *Server) setupRouter() {
	// Set up middleware (order matters!)
	s.router.Use(LoggingMiddleware)
	s.router.Use(RecoveryMiddleware)
	s.router.Use(CORSMiddleware)
	s.router.Use(CompressionMiddleware)

	// Set up routes
	s.setupRoutes()

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%s", s.config.Host, s.config.Port),
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}
}

// setupRoutes configures all API routes. Paths mirror the screener frontend
// contract, so trailing slashes are significant.
func (s *Server) setupRoutes() {
	// Root and health endpoints
	s.router.HandleFunc("/", s.handleRoot).Methods("GET")
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")

	// Account endpoints
	s.router.HandleFunc("/users/", s.handleRegisterUser).Methods("POST")
	s.router.HandleFunc("/token", s.handleLogin).Methods("POST")
	s.router.HandleFunc("/users/me/", s.handleCurrentUser).Methods("GET")
	s.router.HandleFunc("/users/me/settings", s.handleUpdateSettings).Methods("PUT")
	s.router.HandleFunc("/users/", s.handleListUsers).Methods("GET")
	s.router.HandleFunc("/users/{user_id}", s.handleGetUser).Methods("GET")

	// Market data endpoints
	s.router.HandleFunc("/search/stock", s.handleSearchStock).Methods("GET")
	s.router.HandleFunc("/stock/{symbol}", s.handleStockDetail).Methods("GET")

	// Watchlist endpoints
	s.router.HandleFunc("/watchlist/", s.handleAddWatchlistItem).Methods("POST")
	s.router.HandleFunc("/watchlist/", s.handleGetWatchlist).Methods("GET")
	s.router.HandleFunc("/watchlist/{item_id}", s.handleDeleteWatchlistItem).Methods("DELETE")

	// Stock note endpoints
	s.router.HandleFunc("/stock_notes/", s.handleUpsertStockNote).Methods("POST")
	s.router.HandleFunc("/stock_notes/{symbol}", s.handleGetStockNote).Methods("GET")

	// Alert endpoints
	s.router.HandleFunc("/alerts/", s.handleCreateAlert).Methods("POST")
	s.router.HandleFunc("/alerts/", s.handleGetAlerts).Methods("GET")
	s.router.HandleFunc("/alerts/{alert_id}", s.handleDeleteAlert).Methods("DELETE")

	// Telegram endpoint
	s.router.HandleFunc("/send_telegram_message/", s.handleSendTelegramMessage).Methods("POST")
}

// handleRoot handles GET / - Welcome message.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to Signal App Backend!",
	})
}

// handleHealth handles health check requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "stock-screener",
	})
}

// currentUser resolves the bearer token on the request to a stored user.
func (s *Server) currentUser(r *http.Request) (*models.User, error) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return nil, auth.ErrInvalidToken
	}
	return s.auth.ResolveToken(r.Context(), strings.TrimSpace(token))
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	log.Printf("Starting API server on %s", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down API server...")
	return s.httpServer.Shutdown(ctx)
}
