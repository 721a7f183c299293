package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notely/internal/config"
	"notely/internal/database"
	"notely/internal/handler"
	"notely/internal/middleware"
	"notely/internal/model"
	"notely/internal/repository"
	"notely/internal/router"
	"notely/internal/service"
)

type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

type App struct {
	server       httpServer
	addr         string
	db           *database.DB
	cleanupFuncs []func()
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	pool := db.Pool
	userRepo := repository.NewUserRepository(pool)
	noteRepo := repository.NewNoteRepository(pool)
	tokenRepo := repository.NewTokenRepository(pool)
	loginEventRepo := repository.NewLoginEventRepository(pool)
	statsRepo := repository.NewStatsRepository(pool)
	slog.Info("database ready")

	authService := service.NewAuthService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL, userRepo, tokenRepo, loginEventRepo)
	noteService := service.NewNoteService(noteRepo, userRepo)
	userService := service.NewUserService(userRepo)
	statsService := service.NewStatsService(statsRepo, loginEventRepo)

	if err := ensureBootstrapAdmin(context.Background(), cfg, userRepo, userService); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to bootstrap admin account: %w", err)
	}

	authMiddleware := middleware.NewAuthMiddleware(authService)

	appRouter := router.New(cfg, authMiddleware, router.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Note:      handler.NewNoteHandler(noteService),
		AdminNote: handler.NewAdminNoteHandler(noteService),
		User:      handler.NewUserHandler(userService),
		Stats:     handler.NewStatsHandler(statsService),
	})

	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	go purgeExpiredTokens(cleanupCtx, tokenRepo, cfg.TokenRetention)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      appRouter,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	return &App{
		server: server,
		addr:   server.Addr,
		db:     db,
		cleanupFuncs: []func(){
			cleanupCancel,
			db.Close,
		},
	}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	return a.shutdown()
}

// shutdown drains in-flight requests first; the pool and the other cleanups
// are released only once the server has stopped serving, so a draining
// request never hits a closed pool.
func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := a.server.Shutdown(ctx)

	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}

	if err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// ensureBootstrapAdmin creates the configured admin account on first start.
// Accounts are admin-created only, so a fresh deployment needs one seeded
// administrator to get going.
func ensureBootstrapAdmin(ctx context.Context, cfg *config.Config, users *repository.UserRepository, userService *service.UserService) error {
	if cfg.BootstrapEmail == "" {
		return nil
	}

	email := model.NormalizeEmail(cfg.BootstrapEmail)
	if _, err := users.FindByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, model.ErrUserNotFound) {
		return err
	}

	_, err := userService.Create(ctx, model.CreateUserRequest{
		Email:    email,
		Password: cfg.BootstrapPassword,
		Role:     string(model.RoleAdmin),
	})
	if err != nil {
		return err
	}

	slog.Info("bootstrap admin created", "email", email)
	return nil
}

// purgeExpiredTokens trims the refresh-token registry once an hour. Rows
// inside the retention window are kept so revocation outlives expiry.
func purgeExpiredTokens(ctx context.Context, tokens *repository.TokenRepository, retention time.Duration) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := tokens.PurgeExpired(ctx, retention)
			if err != nil {
				slog.Warn("token purge failed", "error", err)
				continue
			}
			if removed > 0 {
				slog.Info("purged expired refresh tokens", "count", removed)
			}
		}
	}
}
