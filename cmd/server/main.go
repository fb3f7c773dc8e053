// Command server runs the PlayerHub HTTP API: it loads configuration, opens
// the database, applies pending migrations and serves the REST endpoints.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/playerhub/playerhub/internal/config"
	"github.com/playerhub/playerhub/internal/platform/logger"
	"github.com/playerhub/playerhub/internal/platform/postgres"
	"github.com/playerhub/playerhub/internal/service"
	"github.com/playerhub/playerhub/internal/service/auth"
)

// application bundles the wired dependencies the router and server need.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	tokenService      auth.TokenService
	passwordVerifier  auth.PasswordVerifier
	userService       service.UserService
	scoreService      service.ScoreService
	commentaryService service.CommentaryService
}

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.Setup(cfg.Server.LogLevel)
	log.Info("configuration loaded", "port", cfg.Server.Port, "log_level", cfg.Server.LogLevel)

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close database", "error", err)
		}
	}()

	if err := runMigrations(db, cfg.Database.MigrationsDir, log); err != nil {
		return err
	}

	app, err := buildApplication(cfg, log, db)
	if err != nil {
		return err
	}

	return app.startHTTPServer(context.Background(), app.setupRouter())
}

// openDatabase opens the connection pool and verifies connectivity.
func openDatabase(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// buildApplication wires stores, auth collaborators and services together.
func buildApplication(cfg *config.Config, log *slog.Logger, db *sql.DB) (*application, error) {
	tokenService, err := auth.NewTokenService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	userStore := postgres.NewUserStore(db, hasher, log)
	gameStore := postgres.NewGameStore(db, log)
	scoreStore := postgres.NewScoreStore(db, log)
	commentaryStore := postgres.NewCommentaryStore(db, log)

	return &application{
		config:            cfg,
		logger:            log,
		db:                db,
		tokenService:      tokenService,
		passwordVerifier:  auth.NewBcryptVerifier(),
		userService:       service.NewUserService(userStore, gameStore, tokenService, log),
		scoreService:      service.NewScoreService(scoreStore, log),
		commentaryService: service.NewCommentaryService(commentaryStore, log),
	}, nil
}
