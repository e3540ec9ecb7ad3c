package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/riskibarqy/whalecast/internal/config"
	"github.com/riskibarqy/whalecast/internal/domain/notification"
	"github.com/riskibarqy/whalecast/internal/domain/profile"
	"github.com/riskibarqy/whalecast/internal/infrastructure/kv"
	"github.com/riskibarqy/whalecast/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/whalecast/internal/infrastructure/repository/demo"
	"github.com/riskibarqy/whalecast/internal/infrastructure/repository/fallback"
	"github.com/riskibarqy/whalecast/internal/infrastructure/repository/kvstore"
	"github.com/riskibarqy/whalecast/internal/interfaces/httpapi"
	"github.com/riskibarqy/whalecast/internal/platform/logging"
	"github.com/riskibarqy/whalecast/internal/usecase"
)

// App holds the wired store, repositories and services shared by the API and the CLI.
type App struct {
	Config config.Config
	Logger *logging.Logger
	Store  kv.Store

	// StoreProfiles reads and writes the store directly, without cache or demo fallback.
	StoreProfiles profile.Repository
	Profiles      profile.Repository
	Notifications notification.Repository

	ProfileService      *usecase.ProfileService
	SignalService       *usecase.SignalService
	NotificationService *usecase.NotificationService
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	store, err := NewStore(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("build store: %w", err)
	}

	return NewWithStore(cfg, store, logger), nil
}

// NewWithStore composes repositories as kvstore, then optional cache, then demo fallback.
func NewWithStore(cfg config.Config, store kv.Store, logger *logging.Logger) *App {
	if logger == nil {
		logger = logging.Default()
	}

	storeProfiles := kvstore.NewProfileRepository(store, logger.Named("kvstore"))

	var primary profile.Repository = storeProfiles
	if cfg.CacheEnabled {
		primary = cache.NewProfileRepository(storeProfiles, cfg.CacheTTL)
	}
	profiles := fallback.NewProfileRepository(primary, demo.NewRepository(), logger.Named("fallback"))
	notifications := kvstore.NewNotificationRepository(store)

	return &App{
		Config:              cfg,
		Logger:              logger,
		Store:               store,
		StoreProfiles:       storeProfiles,
		Profiles:            profiles,
		Notifications:       notifications,
		ProfileService:      usecase.NewProfileService(profiles),
		SignalService:       usecase.NewSignalService(profiles),
		NotificationService: usecase.NewNotificationService(notifications),
	}
}

func (a *App) NewHTTPServer() (*http.Server, error) {
	if a.Config.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	handler := httpapi.NewHandler(a.ProfileService, a.SignalService, a.Store, a.Logger.Named("httpapi"))
	router := httpapi.NewRouter(handler, a.Logger, a.Config.SwaggerEnabled, a.Config.CORSAllowedOrigins)

	return &http.Server{
		Addr:         a.Config.HTTPAddr,
		Handler:      router,
		ReadTimeout:  a.Config.ReadTimeout,
		WriteTimeout: a.Config.WriteTimeout,
	}, nil
}

func (a *App) Close() error {
	if a == nil || a.Store == nil {
		return nil
	}
	if err := a.Store.Close(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("close store: %w", err)
	}
	return nil
}
