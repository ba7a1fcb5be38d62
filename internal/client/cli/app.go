package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/shelfhq/shelf/internal/client/api"
	"github.com/shelfhq/shelf/internal/client/config"
	"github.com/shelfhq/shelf/internal/client/render"
	"github.com/shelfhq/shelf/internal/client/repositories/documents"
	"github.com/shelfhq/shelf/internal/client/services"
	"github.com/shelfhq/shelf/internal/client/session"
	"github.com/shelfhq/shelf/internal/logging"
)

// App wires the Shelf client together: persisted session, metadata cache,
// API client, services and the document viewer.
type App struct {
	config   *config.Config
	auth     services.AuthService
	docs     services.DocumentService
	subs     services.SubscriptionService
	payments services.PaymentService
	viewer   *render.Pipeline
	reader   *bufio.Reader
	log      logging.Logger
}

// NewApp builds the full client from configuration. A previously persisted
// session is restored if present; a damaged one is discarded silently and the
// user starts logged out.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	store, err := session.NewStore(cfg.StateDir)
	if err != nil {
		return nil, fmt.Errorf("session store init error: %w", err)
	}
	if _, err := store.Restore(); err == nil {
		logger.Info(ctx, "session restored", "user", store.Current().User.Email)
	}

	db, err := documents.InitDatabase(ctx, filepath.Join(cfg.StateDir, "shelf.db"))
	if err != nil {
		return nil, fmt.Errorf("cache init error: %w", err)
	}
	repo := documents.NewSQLiteRepository(db)

	apiClient := api.NewHTTPClient(cfg.ServerBaseURL, store, func() {
		// fires once per expiry, no matter how many calls hit the 401
		log.Println("Session expired, please log in again.")
	})

	subs := services.NewSubscriptionService(apiClient)

	return &App{
		config:   cfg,
		auth:     services.NewAuthService(apiClient, store, logger),
		docs:     services.NewDocumentService(apiClient, repo, subs, logger),
		subs:     subs,
		payments: services.NewPaymentService(apiClient, cfg.PaymentPollInterval, logger),
		viewer:   render.NewPipeline(apiClient, render.NewFitzDecoder(), store),
		reader:   bufio.NewReader(os.Stdin),
		log:      logger,
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.auth.IsAuthenticated()
}

func (a *App) status() string {
	if u := a.auth.CurrentUser(); u != nil {
		return fmt.Sprintf("(%s)", u.Email)
	}
	return ""
}

// Run starts the REPL and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.viewer.Close()
	log.Println("Welcome to Shelf CLI (type 'help' for commands)")
	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}
