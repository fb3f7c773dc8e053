package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/playerhub/playerhub/internal/domain"
	"github.com/playerhub/playerhub/internal/platform/logger"
	"github.com/playerhub/playerhub/internal/store"
)

// ScoreStore implements the store.ScoreStore interface
// using a PostgreSQL database as the storage backend.
type ScoreStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewScoreStore creates a new PostgreSQL implementation of the ScoreStore
// interface. It accepts a database connection or transaction that should be
// initialized and managed by the caller.
func NewScoreStore(db store.DBTX, logger *slog.Logger) *ScoreStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ScoreStore{
		db:     db,
		logger: logger.With(slog.String("component", "score_store")),
	}
}

// Ensure ScoreStore implements store.ScoreStore interface
var _ store.ScoreStore = (*ScoreStore)(nil)

// FindAll implements store.ScoreStore.FindAll
func (s *ScoreStore) FindAll(ctx context.Context) ([]*domain.Score, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, score, user_id, game_id
		FROM scores
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query scores", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	scores := []*domain.Score{}
	for rows.Next() {
		var score domain.Score
		if err := rows.Scan(&score.ID, &score.Score, &score.UserID, &score.GameID); err != nil {
			log.Error("failed to scan score row", slog.String("error", err.Error()))
			return nil, err
		}
		scores = append(scores, &score)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}
	return scores, nil
}

// FindByID implements store.ScoreStore.FindByID
// Returns store.ErrScoreNotFound if the score does not exist.
func (s *ScoreStore) FindByID(ctx context.Context, id int64) (*domain.Score, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, score, user_id, game_id
		FROM scores
		WHERE id = $1
	`

	var score domain.Score
	err := s.db.QueryRowContext(ctx, query, id).Scan(&score.ID, &score.Score, &score.UserID, &score.GameID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("score not found", slog.Int64("score_id", id))
			return nil, store.ErrScoreNotFound
		}
		log.Error("failed to get score by ID",
			slog.String("error", err.Error()),
			slog.Int64("score_id", id))
		return nil, err
	}
	return &score, nil
}

// Save implements store.ScoreStore.Save
// A zero ID inserts a new score; a non-zero ID updates the existing row.
// Returns store.ErrInvalidEntity when the user or game id does not exist.
func (s *ScoreStore) Save(ctx context.Context, score *domain.Score) (*domain.Score, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if score.ID == 0 {
		query := `
			INSERT INTO scores (score, user_id, game_id)
			VALUES ($1, $2, $3)
			RETURNING id
		`
		err := s.db.QueryRowContext(ctx, query, score.Score, score.UserID, score.GameID).Scan(&score.ID)
		if err != nil {
			log.Error("failed to create score",
				slog.String("error", err.Error()),
				slog.Int64("user_id", score.UserID),
				slog.Int64("game_id", score.GameID))
			return nil, MapError(err)
		}
		return score, nil
	}

	query := `
		UPDATE scores
		SET score = $1, user_id = $2, game_id = $3
		WHERE id = $4
	`
	result, err := s.db.ExecContext(ctx, query, score.Score, score.UserID, score.GameID, score.ID)
	if err != nil {
		log.Error("failed to update score",
			slog.String("error", err.Error()),
			slog.Int64("score_id", score.ID))
		return nil, MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, store.ErrScoreNotFound
	}
	return score, nil
}

// DeleteByID implements store.ScoreStore.DeleteByID
// Deleting an id that does not exist is not an error.
func (s *ScoreStore) DeleteByID(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.db.ExecContext(ctx, `DELETE FROM scores WHERE id = $1`, id); err != nil {
		log.Error("failed to delete score",
			slog.String("error", err.Error()),
			slog.Int64("score_id", id))
		return MapError(err)
	}
	return nil
}
