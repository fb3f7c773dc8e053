package store

import (
	"context"

	"github.com/playerhub/playerhub/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// FindAll returns every user known to the store, in store order.
	// Returns an empty slice when the store is empty.
	FindAll(ctx context.Context) ([]*domain.User, error)

	// FindByID retrieves a user by their unique ID, including the ordered
	// games collection. Returns ErrUserNotFound if the user does not exist.
	FindByID(ctx context.Context, id int64) (*domain.User, error)

	// FindBySlug retrieves a user by their slug.
	// Returns ErrUserNotFound if no user has that slug.
	FindBySlug(ctx context.Context, slug string) (*domain.User, error)

	// FindByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if no user has that email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindByUsername retrieves a user by their username.
	// Returns ErrUserNotFound if no user has that username.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// Save persists the user and its games collection. A zero ID inserts and
	// assigns a new ID; a non-zero ID updates the existing row. If a plaintext
	// Password is set it is hashed before storage. The games collection order
	// is preserved. Returns ErrUsernameExists, ErrEmailExists or ErrSlugExists
	// on unique constraint violations.
	Save(ctx context.Context, user *domain.User) (*domain.User, error)

	// DeleteByID removes a user from the store. Deleting an id that does not
	// exist is not an error.
	DeleteByID(ctx context.Context, id int64) error
}
