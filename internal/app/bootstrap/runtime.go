package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dolmengate/label-cms/internal/adapters/cache"
	eventadapter "github.com/dolmengate/label-cms/internal/adapters/events"
	httpadapter "github.com/dolmengate/label-cms/internal/adapters/http"
	"github.com/dolmengate/label-cms/internal/adapters/postgres"
	"github.com/dolmengate/label-cms/internal/adapters/security"
	"github.com/dolmengate/label-cms/internal/adapters/storage"
	"github.com/dolmengate/label-cms/internal/application"
	"github.com/dolmengate/label-cms/internal/ports"
)

type Runtime struct {
	cfg        Config
	logger     *slog.Logger
	httpServer *http.Server
	cleanupFn  func(context.Context)
}

func NewRuntime(ctx context.Context, configPath string) (*Runtime, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})).With("service", cfg.ServiceID)
	slog.SetDefault(logger)

	db, err := postgres.Connect(ctx, cfg.DatabaseURL, cfg.MaxDBConns)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := postgres.RunMigrations(ctx, db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	repos := postgres.NewRepositories(db)

	// Admin membership is seeded from config so the first deployment has an
	// operator without manual SQL.
	for _, email := range cfg.AdminEmails {
		if seedErr := repos.Admins.Add(ctx, email, time.Now().UTC()); seedErr != nil {
			logger.WarnContext(ctx, "admin seed failed", "email", email, "error", seedErr)
		}
	}

	var closers []io.Closer

	// Redis is an accelerator, not a dependency: the service reads through
	// to Postgres when it is absent or down.
	var cacheStore ports.Cache
	if cfg.RedisURL != "" {
		redisClient, redisErr := cache.Connect(ctx, cfg.RedisURL)
		if redisErr != nil {
			logger.WarnContext(ctx, "redis unavailable, running without cache", "error", redisErr)
		} else {
			cacheStore = cache.NewRedisCache(redisClient)
			closers = append(closers, redisClient)
		}
	}

	publisher := ports.EventPublisher(eventadapter.NewLoggingPublisher(logger))
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, pubErr := eventadapter.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		if pubErr != nil {
			logger.WarnContext(ctx, "kafka publisher disabled, using logging publisher", "error", pubErr)
		} else {
			publisher = kafkaPublisher
			closers = append(closers, kafkaPublisher)
		}
	}

	var signer *security.JWTSigner
	if cfg.JWTSecret != "" {
		signer, err = security.NewJWTSigner(cfg.JWTSecret, cfg.JWTIssuer)
	} else {
		logger.WarnContext(ctx, "JWT_SECRET not set, using ephemeral signing key")
		signer, err = security.NewEphemeralJWTSigner(cfg.JWTIssuer)
	}
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	mediaStore, err := storage.NewLocalStorage(cfg.MediaDir, cfg.MediaBaseURL)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	service := application.NewService(application.Dependencies{
		Config: application.Config{
			ServiceName:         cfg.ServiceID,
			AdminResolveTimeout: cfg.AdminResolveTimeout,
			TokenTTL:            cfg.TokenTTL,
			PublicCacheTTL:      cfg.PublicCacheTTL,
		},
		Artists:  repos.Artists,
		Releases: repos.Releases,
		Theme:    repos.Theme,
		Admins:   repos.Admins,
		Users:    repos.Users,
		Hasher:   security.NewBcryptHasher(cfg.BcryptCost),
		Tokens:   signer,
		OAuth: security.NewGoogleOAuthProvider(security.GoogleOAuthConfig{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURI:  cfg.GoogleRedirectURI,
		}),
		Storage: mediaStore,
		Cache:   cacheStore,
		Events:  publisher,
	})

	handler := httpadapter.NewHandler(service, mediaStore.Root())
	router := httpadapter.NewRouter(handler)
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Runtime{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpServer,
		cleanupFn: func(ctx context.Context) {
			for _, closer := range closers {
				_ = closer.Close()
			}
			_ = sqlDB.Close()
		},
	}, nil
}

func (r *Runtime) RunAPI(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	errCh := make(chan error, 1)

	go func() {
		if err := r.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	r.logger.InfoContext(ctx, "api listening", "port", r.cfg.HTTPPort)

	select {
	case <-ctx.Done():
	case err := <-errCh:
		r.logger.ErrorContext(ctx, "runtime failure", "error", err)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = r.httpServer.Shutdown(shutdownCtx)
	r.cleanupFn(shutdownCtx)
	return nil
}
