package store

import (
	"context"

	"github.com/playerhub/playerhub/internal/domain"
)

// GameStore defines the interface for game data persistence.
type GameStore interface {
	// FindByID retrieves a game by its unique ID.
	// Returns ErrGameNotFound if the game does not exist.
	FindByID(ctx context.Context, id int64) (*domain.Game, error)

	// Save persists the game. A zero ID inserts and assigns a new ID;
	// a non-zero ID updates the existing row.
	Save(ctx context.Context, game *domain.Game) (*domain.Game, error)
}
