package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/playerhub/playerhub/internal/domain"
	"github.com/playerhub/playerhub/internal/platform/logger"
	"github.com/playerhub/playerhub/internal/service/auth"
	"github.com/playerhub/playerhub/internal/store"
)

// UserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type UserStore struct {
	db     *sql.DB
	hasher auth.PasswordHasher
	logger *slog.Logger
}

// NewUserStore creates a new PostgreSQL implementation of the UserStore
// interface. It accepts a database connection that should be initialized and
// managed by the caller. If logger is nil, a default logger will be used.
func NewUserStore(db *sql.DB, hasher auth.PasswordHasher, logger *slog.Logger) *UserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if hasher == nil {
		panic("hasher cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &UserStore{
		db:     db,
		hasher: hasher,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure UserStore implements store.UserStore interface
var _ store.UserStore = (*UserStore)(nil)

const userColumns = `id, username, slug, email, hashed_password, bio, profile_picture, banner_picture, created_at, updated_at`

// FindAll implements store.UserStore.FindAll
func (s *UserStore) FindAll(ctx context.Context) ([]*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query users", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	byID := make(map[int64]*domain.User)
	users := []*domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			log.Error("failed to scan user row", slog.String("error", err.Error()))
			return nil, err
		}
		byID[user.ID] = user
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	if len(users) == 0 {
		return users, nil
	}

	// One pass over the join table hydrates every games collection,
	// preserving per-user position order.
	gamesQuery := `
		SELECT ug.user_id, g.id, g.name, g.created_at
		FROM user_games ug
		JOIN games g ON g.id = ug.game_id
		ORDER BY ug.user_id, ug.position
	`
	gameRows, err := s.db.QueryContext(ctx, gamesQuery)
	if err != nil {
		log.Error("failed to query user games", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := gameRows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	for gameRows.Next() {
		var userID int64
		var game domain.Game
		if err := gameRows.Scan(&userID, &game.ID, &game.Name, &game.CreatedAt); err != nil {
			log.Error("failed to scan user game row", slog.String("error", err.Error()))
			return nil, err
		}
		if user, ok := byID[userID]; ok {
			user.Games = append(user.Games, &game)
		}
	}
	if err := gameRows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("retrieved users", slog.Int("count", len(users)))
	return users, nil
}

// FindByID implements store.UserStore.FindByID
// Returns store.ErrUserNotFound if the user does not exist.
func (s *UserStore) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.findOne(ctx, "id = $1", id)
}

// FindBySlug implements store.UserStore.FindBySlug
// Returns store.ErrUserNotFound if no user has that slug.
func (s *UserStore) FindBySlug(ctx context.Context, slug string) (*domain.User, error) {
	return s.findOne(ctx, "slug = $1", slug)
}

// FindByEmail implements store.UserStore.FindByEmail
// Returns store.ErrUserNotFound if no user has that email.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.findOne(ctx, "email = $1", email)
}

// FindByUsername implements store.UserStore.FindByUsername
// Returns store.ErrUserNotFound if no user has that username.
func (s *UserStore) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.findOne(ctx, "username = $1", username)
}

func (s *UserStore) findOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE ` + where

	row := s.db.QueryRowContext(ctx, query, arg)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.Any("criteria", arg))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user",
			slog.String("error", err.Error()),
			slog.Any("criteria", arg))
		return nil, err
	}

	user.Games, err = s.loadGames(ctx, user.ID)
	if err != nil {
		log.Error("failed to load user games",
			slog.String("error", err.Error()),
			slog.Int64("user_id", user.ID))
		return nil, err
	}
	return user, nil
}

func (s *UserStore) loadGames(ctx context.Context, userID int64) ([]*domain.Game, error) {
	query := `
		SELECT g.id, g.name, g.created_at
		FROM user_games ug
		JOIN games g ON g.id = ug.game_id
		WHERE ug.user_id = $1
		ORDER BY ug.position
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var games []*domain.Game
	for rows.Next() {
		var game domain.Game
		if err := rows.Scan(&game.ID, &game.Name, &game.CreatedAt); err != nil {
			return nil, err
		}
		games = append(games, &game)
	}
	return games, rows.Err()
}

// Save implements store.UserStore.Save
// A zero ID inserts a new user; a non-zero ID updates the existing row. The
// user row and its games collection are written in a single transaction, so
// a failed save never leaves a partial games list behind.
// Returns store.ErrUsernameExists, store.ErrEmailExists or store.ErrSlugExists
// on the corresponding unique constraint violation.
func (s *UserStore) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during save",
			slog.String("error", err.Error()),
			slog.String("username", user.Username))
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	// A plaintext password is hashed on its way in and never stored.
	if user.Password != "" {
		hashed, err := s.hasher.Hash(user.Password)
		if err != nil {
			log.Error("failed to hash password", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.HashedPassword = hashed
		user.Password = ""
	}

	now := time.Now().UTC()

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if user.ID == 0 {
			user.CreatedAt = now
			user.UpdatedAt = now

			query := `
				INSERT INTO users (username, slug, email, hashed_password, bio, profile_picture, banner_picture, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
				RETURNING id
			`
			if err := tx.QueryRowContext(
				ctx,
				query,
				user.Username,
				user.Slug,
				user.Email,
				user.HashedPassword,
				user.Bio,
				user.ProfilePicture,
				user.BannerPicture,
				user.CreatedAt,
				user.UpdatedAt,
			).Scan(&user.ID); err != nil {
				return MapUserUniqueViolation(err)
			}
		} else {
			user.UpdatedAt = now

			query := `
				UPDATE users
				SET username = $1, slug = $2, email = $3, hashed_password = $4,
				    bio = $5, profile_picture = $6, banner_picture = $7, updated_at = $8
				WHERE id = $9
			`
			result, err := tx.ExecContext(
				ctx,
				query,
				user.Username,
				user.Slug,
				user.Email,
				user.HashedPassword,
				user.Bio,
				user.ProfilePicture,
				user.BannerPicture,
				user.UpdatedAt,
				user.ID,
			)
			if err != nil {
				return MapUserUniqueViolation(err)
			}
			affected, err := result.RowsAffected()
			if err != nil {
				return fmt.Errorf("failed to get rows affected: %w", err)
			}
			if affected == 0 {
				return store.ErrUserNotFound
			}
		}

		// Rewrite the games links wholesale; position keeps list order.
		if _, err := tx.ExecContext(ctx, `DELETE FROM user_games WHERE user_id = $1`, user.ID); err != nil {
			return MapError(err)
		}
		for i, game := range user.Games {
			_, err := tx.ExecContext(
				ctx,
				`INSERT INTO user_games (user_id, game_id, position) VALUES ($1, $2, $3)`,
				user.ID,
				game.ID,
				i,
			)
			if err != nil {
				return MapError(err)
			}
		}
		return nil
	})
	if err != nil {
		if store.IsDuplicateError(err) {
			log.Debug("duplicate user save rejected",
				slog.String("username", user.Username))
		} else {
			log.Error("failed to save user",
				slog.String("error", err.Error()),
				slog.Int64("user_id", user.ID))
		}
		return nil, err
	}

	log.Debug("user saved",
		slog.Int64("user_id", user.ID),
		slog.Int("games", len(user.Games)))
	return user, nil
}

// DeleteByID implements store.UserStore.DeleteByID
// Deleting an id that does not exist is not an error; the games links,
// scores and commentaries cascade at the schema level.
func (s *UserStore) DeleteByID(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete user",
			slog.String("error", err.Error()),
			slog.Int64("user_id", id))
		return MapError(err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		log.Debug("delete of nonexistent user", slog.Int64("user_id", id))
	}
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Slug,
		&user.Email,
		&user.HashedPassword,
		&user.Bio,
		&user.ProfilePicture,
		&user.BannerPicture,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
