package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/playerhub/playerhub/internal/domain"
	"github.com/playerhub/playerhub/internal/store"
)

// ScoreService provides CRUD operations over scores. Its lookup and update
// operations use the optional idiom: a missing score yields (nil, nil), not
// an error.
type ScoreService interface {
	// FindAll returns every score, in store order.
	FindAll(ctx context.Context) ([]*domain.Score, error)

	// FindByID returns the score with that id, or (nil, nil) when absent.
	FindByID(ctx context.Context, id int64) (*domain.Score, error)

	// Save persists the score and returns the persisted entity with its id
	// assigned if new.
	Save(ctx context.Context, score *domain.Score) (*domain.Score, error)

	// Update overwrites score, user id and game id from the patch while
	// preserving the stored id. A missing id yields (nil, nil) and the
	// store save is never invoked.
	Update(ctx context.Context, id int64, patch *domain.Score) (*domain.Score, error)

	// DeleteByID removes the score. Deleting an unknown id is not an error.
	DeleteByID(ctx context.Context, id int64) error
}

// scoreServiceImpl implements the ScoreService interface.
type scoreServiceImpl struct {
	scores store.ScoreStore
	logger *slog.Logger
}

// NewScoreService creates a new ScoreService.
func NewScoreService(scores store.ScoreStore, logger *slog.Logger) ScoreService {
	if logger == nil {
		logger = slog.Default()
	}
	return &scoreServiceImpl{
		scores: scores,
		logger: logger.With(slog.String("component", "score_service")),
	}
}

// FindAll implements ScoreService.FindAll.
func (s *scoreServiceImpl) FindAll(ctx context.Context) ([]*domain.Score, error) {
	scores, err := s.scores.FindAll(ctx)
	if err != nil {
		s.logger.Error("failed to list scores", "error", err)
		return nil, fmt.Errorf("failed to list scores: %w", err)
	}
	return scores, nil
}

// FindByID implements ScoreService.FindByID. A miss is not an error.
func (s *scoreServiceImpl) FindByID(ctx context.Context, id int64) (*domain.Score, error) {
	score, err := s.scores.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrScoreNotFound) {
			return nil, nil
		}
		s.logger.Error("failed to retrieve score", "error", err, "score_id", id)
		return nil, fmt.Errorf("failed to retrieve score: %w", err)
	}
	return score, nil
}

// Save implements ScoreService.Save.
func (s *scoreServiceImpl) Save(ctx context.Context, score *domain.Score) (*domain.Score, error) {
	saved, err := s.scores.Save(ctx, score)
	if err != nil {
		s.logger.Error("failed to save score", "error", err)
		return nil, fmt.Errorf("failed to save score: %w", err)
	}
	return saved, nil
}

// Update implements ScoreService.Update. Unlike the user service, a missing
// score is reported as "no result" rather than an error.
func (s *scoreServiceImpl) Update(ctx context.Context, id int64, patch *domain.Score) (*domain.Score, error) {
	existing, err := s.scores.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrScoreNotFound) {
			return nil, nil
		}
		s.logger.Error("failed to retrieve score for update", "error", err, "score_id", id)
		return nil, fmt.Errorf("failed to retrieve score for update: %w", err)
	}

	// The id always comes from the stored record, never from the patch.
	existing.Score = patch.Score
	existing.UserID = patch.UserID
	existing.GameID = patch.GameID

	saved, err := s.scores.Save(ctx, existing)
	if err != nil {
		s.logger.Error("failed to update score", "error", err, "score_id", id)
		return nil, fmt.Errorf("failed to update score: %w", err)
	}
	return saved, nil
}

// DeleteByID implements ScoreService.DeleteByID.
func (s *scoreServiceImpl) DeleteByID(ctx context.Context, id int64) error {
	if err := s.scores.DeleteByID(ctx, id); err != nil {
		s.logger.Error("failed to delete score", "error", err, "score_id", id)
		return fmt.Errorf("failed to delete score: %w", err)
	}
	return nil
}
