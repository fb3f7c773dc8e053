package store

import (
	"context"

	"github.com/playerhub/playerhub/internal/domain"
)

// ScoreStore defines the interface for score data persistence.
type ScoreStore interface {
	// FindAll returns every score, in store order.
	FindAll(ctx context.Context) ([]*domain.Score, error)

	// FindByID retrieves a score by its unique ID.
	// Returns ErrScoreNotFound if the score does not exist.
	FindByID(ctx context.Context, id int64) (*domain.Score, error)

	// Save persists the score. A zero ID inserts and assigns a new ID;
	// a non-zero ID updates the existing row.
	Save(ctx context.Context, score *domain.Score) (*domain.Score, error)

	// DeleteByID removes a score from the store. Deleting an id that does
	// not exist is not an error.
	DeleteByID(ctx context.Context, id int64) error
}
