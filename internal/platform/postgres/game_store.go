package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/playerhub/playerhub/internal/domain"
	"github.com/playerhub/playerhub/internal/platform/logger"
	"github.com/playerhub/playerhub/internal/store"
)

// GameStore implements the store.GameStore interface
// using a PostgreSQL database as the storage backend.
type GameStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewGameStore creates a new PostgreSQL implementation of the GameStore
// interface. It accepts a database connection or transaction that should be
// initialized and managed by the caller.
func NewGameStore(db store.DBTX, logger *slog.Logger) *GameStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &GameStore{
		db:     db,
		logger: logger.With(slog.String("component", "game_store")),
	}
}

// Ensure GameStore implements store.GameStore interface
var _ store.GameStore = (*GameStore)(nil)

// FindByID implements store.GameStore.FindByID
// Returns store.ErrGameNotFound if the game does not exist.
func (s *GameStore) FindByID(ctx context.Context, id int64) (*domain.Game, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, created_at
		FROM games
		WHERE id = $1
	`

	var game domain.Game
	err := s.db.QueryRowContext(ctx, query, id).Scan(&game.ID, &game.Name, &game.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("game not found", slog.Int64("game_id", id))
			return nil, store.ErrGameNotFound
		}
		log.Error("failed to get game by ID",
			slog.String("error", err.Error()),
			slog.Int64("game_id", id))
		return nil, err
	}
	return &game, nil
}

// Save implements store.GameStore.Save
// A zero ID inserts a new game and assigns its ID; a non-zero ID updates
// the existing row. Returns store.ErrGameNotFound when updating an unknown id.
func (s *GameStore) Save(ctx context.Context, game *domain.Game) (*domain.Game, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if game.ID == 0 {
		game.CreatedAt = time.Now().UTC()

		query := `
			INSERT INTO games (name, created_at)
			VALUES ($1, $2)
			RETURNING id
		`
		if err := s.db.QueryRowContext(ctx, query, game.Name, game.CreatedAt).Scan(&game.ID); err != nil {
			log.Error("failed to create game", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		log.Debug("game created", slog.Int64("game_id", game.ID))
		return game, nil
	}

	query := `
		UPDATE games
		SET name = $1
		WHERE id = $2
	`
	result, err := s.db.ExecContext(ctx, query, game.Name, game.ID)
	if err != nil {
		log.Error("failed to update game",
			slog.String("error", err.Error()),
			slog.Int64("game_id", game.ID))
		return nil, MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, store.ErrGameNotFound
	}
	return game, nil
}
