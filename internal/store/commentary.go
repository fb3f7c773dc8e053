package store

import (
	"context"

	"github.com/playerhub/playerhub/internal/domain"
)

// CommentaryStore defines the interface for commentary data persistence.
type CommentaryStore interface {
	// FindAll returns every commentary, in store order.
	FindAll(ctx context.Context) ([]*domain.Commentary, error)

	// FindByID retrieves a commentary by its unique ID.
	// Returns ErrCommentaryNotFound if the commentary does not exist.
	FindByID(ctx context.Context, id int64) (*domain.Commentary, error)

	// Save persists the commentary. A zero ID inserts and assigns a new ID.
	Save(ctx context.Context, commentary *domain.Commentary) (*domain.Commentary, error)

	// DeleteByID removes a commentary from the store. Deleting an id that
	// does not exist is not an error.
	DeleteByID(ctx context.Context, id int64) error
}
