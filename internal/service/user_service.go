package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/playerhub/playerhub/internal/domain"
	"github.com/playerhub/playerhub/internal/service/auth"
	"github.com/playerhub/playerhub/internal/store"
)

// GameSummary is the lightweight, id-bearing projection of a game used when
// listing a user's games. Order matches the user's games collection.
type GameSummary struct {
	ID int64 `json:"id"`
}

// UserService provides user-related operations: identity CRUD, partial-update
// merges, user/game list management and identity resolution from a bearer
// token.
type UserService interface {
	// GetAll returns every user, in store order. Never fails on empty.
	GetAll(ctx context.Context) ([]*domain.User, error)

	// GetByID returns the user with that id, or store.ErrUserNotFound.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetBySlug returns the user with that slug, or (nil, nil) when the
	// store has no match.
	GetBySlug(ctx context.Context, slug string) (*domain.User, error)

	// Create derives the slug from the username, persists the user and
	// returns the persisted entity with slug populated.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	// GetByEmail returns the user with that email, or (nil, nil) when the
	// store has no match.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update merges non-nil patch fields (username, email, bio) into the
	// stored user. The password is updated only when patch.Password is
	// non-nil; a nil password leaves the stored credential untouched.
	// Returns store.ErrUserNotFound when the id is unknown.
	Update(ctx context.Context, id int64, patch *domain.UserPatch) (*domain.User, error)

	// UpdateBanner overwrites only the banner picture from the patch; every
	// other patch field is ignored even if populated.
	UpdateBanner(ctx context.Context, id int64, patch *domain.UserPatch) (*domain.User, error)

	// UpdateProfilePicture overwrites only the profile picture from the
	// patch; every other patch field is ignored even if populated.
	UpdateProfilePicture(ctx context.Context, id int64, patch *domain.UserPatch) (*domain.User, error)

	// Delete removes the user. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id int64) error

	// IDByUsername returns the id of the user with that username, or an
	// InvalidArgumentError ("User not found").
	IDByUsername(ctx context.Context, username string) (int64, error)

	// SlugByUsername returns the slug of the user with that username, or an
	// InvalidArgumentError ("User slug not found").
	SlugByUsername(ctx context.Context, username string) (string, error)

	// AddGame links a game to the user's ordered games collection. A game
	// id absent from the game store is auto-provisioned: a new game is
	// created and persisted before being linked. Linking a game already in
	// the list fails without touching the game store or saving the user.
	AddGame(ctx context.Context, userID, gameID int64) error

	// Games projects the user's games collection into GameSummaries,
	// preserving order.
	Games(ctx context.Context, userID int64) ([]GameSummary, error)

	// RemoveGame unlinks a game from the user's list. The game must exist
	// both in the game store and in the user's list; otherwise it fails
	// with the list-membership error carrying the game id.
	RemoveGame(ctx context.Context, userID, gameID int64) ([]GameSummary, error)

	// IDFromToken resolves the bearer token to the id of its user.
	IDFromToken(ctx context.Context, token string) (int64, error)

	// SlugFromToken resolves the bearer token to the slug of its user.
	SlugFromToken(ctx context.Context, token string) (string, error)
}

// userServiceImpl implements the UserService interface.
type userServiceImpl struct {
	users  store.UserStore
	games  store.GameStore
	tokens auth.TokenService
	logger *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(
	users store.UserStore,
	games store.GameStore,
	tokens auth.TokenService,
	logger *slog.Logger,
) UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &userServiceImpl{
		users:  users,
		games:  games,
		tokens: tokens,
		logger: logger.With(slog.String("component", "user_service")),
	}
}

// GetAll implements UserService.GetAll.
func (s *userServiceImpl) GetAll(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetByID implements UserService.GetByID.
func (s *userServiceImpl) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			s.logger.Error("failed to retrieve user", "error", err, "user_id", id)
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

// GetBySlug implements UserService.GetBySlug. A miss is not an error.
func (s *userServiceImpl) GetBySlug(ctx context.Context, slug string) (*domain.User, error) {
	user, err := s.users.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, nil
		}
		s.logger.Error("failed to retrieve user by slug", "error", err, "slug", slug)
		return nil, fmt.Errorf("failed to retrieve user by slug: %w", err)
	}
	return user, nil
}

// Create implements UserService.Create. The slug is derived from the
// username; it is deterministic and idempotent for identical usernames.
func (s *userServiceImpl) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	user.Slug = domain.Slugify(user.Username)
	// A non-empty username must yield a non-empty slug; the slug column is
	// unique, so persisting "" would block every later user in the same boat.
	if user.Slug == "" {
		return nil, fmt.Errorf("%w: username must contain at least one letter or digit",
			store.ErrInvalidEntity)
	}

	saved, err := s.users.Save(ctx, user)
	if err != nil {
		if store.IsDuplicateError(err) {
			s.logger.Debug("attempted to create duplicate user",
				"username", user.Username)
		} else {
			s.logger.Error("failed to create user",
				"error", err,
				"username", user.Username)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user created",
		"user_id", saved.ID,
		"username", saved.Username,
		"slug", saved.Slug)
	return saved, nil
}

// GetByEmail implements UserService.GetByEmail. A miss is not an error.
func (s *userServiceImpl) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, nil
		}
		s.logger.Error("failed to retrieve user by email", "error", err, "email", email)
		return nil, fmt.Errorf("failed to retrieve user by email: %w", err)
	}
	return user, nil
}

// Update implements UserService.Update.
func (s *userServiceImpl) Update(ctx context.Context, id int64, patch *domain.UserPatch) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user for update: %w", err)
	}

	if patch.Username != nil {
		user.Username = *patch.Username
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.Bio != nil {
		user.Bio = *patch.Bio
	}
	// A nil password means "do not change": the stored credential must
	// survive the merge untouched.
	if patch.Password != nil {
		user.Password = *patch.Password
	}

	saved, err := s.users.Save(ctx, user)
	if err != nil {
		s.logger.Error("failed to update user", "error", err, "user_id", id)
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("user updated", "user_id", id)
	return saved, nil
}

// UpdateBanner implements UserService.UpdateBanner.
func (s *userServiceImpl) UpdateBanner(ctx context.Context, id int64, patch *domain.UserPatch) (*domain.User, error) {
	return s.updatePicture(ctx, id, patch.BannerPicture, func(u *domain.User, v string) {
		u.BannerPicture = v
	})
}

// UpdateProfilePicture implements UserService.UpdateProfilePicture.
func (s *userServiceImpl) UpdateProfilePicture(ctx context.Context, id int64, patch *domain.UserPatch) (*domain.User, error) {
	return s.updatePicture(ctx, id, patch.ProfilePicture, func(u *domain.User, v string) {
		u.ProfilePicture = v
	})
}

func (s *userServiceImpl) updatePicture(
	ctx context.Context,
	id int64,
	value *string,
	set func(*domain.User, string),
) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user for update: %w", err)
	}

	if value != nil {
		set(user, *value)
	}

	saved, err := s.users.Save(ctx, user)
	if err != nil {
		s.logger.Error("failed to update user picture", "error", err, "user_id", id)
		return nil, fmt.Errorf("failed to update user picture: %w", err)
	}
	return saved, nil
}

// Delete implements UserService.Delete. The store call is unconditional, so
// deleting a nonexistent id succeeds.
func (s *userServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.users.DeleteByID(ctx, id); err != nil {
		s.logger.Error("failed to delete user", "error", err, "user_id", id)
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.logger.Info("user deleted", "user_id", id)
	return nil
}

// IDByUsername implements UserService.IDByUsername.
func (s *userServiceImpl) IDByUsername(ctx context.Context, username string) (int64, error) {
	user, err := s.findByUsername(ctx, username, "User not found")
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

// SlugByUsername implements UserService.SlugByUsername.
func (s *userServiceImpl) SlugByUsername(ctx context.Context, username string) (string, error) {
	user, err := s.findByUsername(ctx, username, "User slug not found")
	if err != nil {
		return "", err
	}
	return user.Slug, nil
}

func (s *userServiceImpl) findByUsername(ctx context.Context, username, missingMsg string) (*domain.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, NewInvalidArgumentError(missingMsg)
		}
		s.logger.Error("failed to retrieve user by username", "error", err, "username", username)
		return nil, fmt.Errorf("failed to retrieve user by username: %w", err)
	}
	return user, nil
}

// AddGame implements UserService.AddGame.
func (s *userServiceImpl) AddGame(ctx context.Context, userID, gameID int64) error {
	user, err := s.findRequiredUser(ctx, userID)
	if err != nil {
		return err
	}

	// The duplicate check precedes game resolution: a game already in the
	// list must not trigger a store lookup or an auto-provision.
	if user.HasGame(gameID) {
		return NewInvalidArgumentError("Game is already registered in the user list")
	}

	game, err := s.games.FindByID(ctx, gameID)
	if err != nil {
		if !errors.Is(err, store.ErrGameNotFound) {
			s.logger.Error("failed to retrieve game", "error", err, "game_id", gameID)
			return fmt.Errorf("failed to retrieve game: %w", err)
		}

		// Auto-provision: an unknown game id creates a fresh game (the
		// store assigns its id) rather than failing.
		game, err = s.games.Save(ctx, &domain.Game{})
		if err != nil {
			s.logger.Error("failed to create game", "error", err, "game_id", gameID)
			return fmt.Errorf("failed to create game: %w", err)
		}
		s.logger.Info("game auto-provisioned",
			"requested_game_id", gameID,
			"assigned_game_id", game.ID)
	}

	user.Games = append(user.Games, game)
	if _, err := s.users.Save(ctx, user); err != nil {
		s.logger.Error("failed to save user games", "error", err, "user_id", userID)
		return fmt.Errorf("failed to save user games: %w", err)
	}

	s.logger.Info("game added to user list",
		"user_id", userID,
		"game_id", game.ID)
	return nil
}

// Games implements UserService.Games.
func (s *userServiceImpl) Games(ctx context.Context, userID int64) ([]GameSummary, error) {
	user, err := s.findRequiredUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return summarize(user.Games), nil
}

// RemoveGame implements UserService.RemoveGame.
func (s *userServiceImpl) RemoveGame(ctx context.Context, userID, gameID int64) ([]GameSummary, error) {
	user, err := s.findRequiredUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	// The game must exist both globally and in the user's list; either miss
	// reports the same caller-facing message. The message is a stable,
	// client-asserted literal; do not reword or translate it.
	game, err := s.games.FindByID(ctx, gameID)
	if err != nil {
		if errors.Is(err, store.ErrGameNotFound) {
			return nil, NewInvalidArgumentError(fmt.Sprintf("le jeux n'est pas dans la liste: %d", gameID))
		}
		s.logger.Error("failed to retrieve game", "error", err, "game_id", gameID)
		return nil, fmt.Errorf("failed to retrieve game: %w", err)
	}

	if !user.HasGame(game.ID) {
		return nil, NewInvalidArgumentError(fmt.Sprintf("le jeux n'est pas dans la liste: %d", gameID))
	}

	games := user.Games[:0:0]
	for _, g := range user.Games {
		if g.ID != game.ID {
			games = append(games, g)
		}
	}
	user.Games = games

	saved, err := s.users.Save(ctx, user)
	if err != nil {
		s.logger.Error("failed to save user games", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to save user games: %w", err)
	}

	s.logger.Info("game removed from user list",
		"user_id", userID,
		"game_id", gameID)
	return summarize(saved.Games), nil
}

// IDFromToken implements UserService.IDFromToken.
func (s *userServiceImpl) IDFromToken(ctx context.Context, token string) (int64, error) {
	user, err := s.userFromToken(ctx, token)
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

// SlugFromToken implements UserService.SlugFromToken.
func (s *userServiceImpl) SlugFromToken(ctx context.Context, token string) (string, error) {
	user, err := s.userFromToken(ctx, token)
	if err != nil {
		return "", err
	}
	return user.Slug, nil
}

func (s *userServiceImpl) userFromToken(ctx context.Context, token string) (*domain.User, error) {
	username, err := s.tokens.ExtractUsername(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to extract username from token: %w", err)
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			s.logger.Error("failed to resolve token user", "error", err, "username", username)
		}
		return nil, fmt.Errorf("failed to resolve token user: %w", err)
	}
	return user, nil
}

// findRequiredUser fetches a user whose absence is a caller error, with the
// id embedded in the message.
func (s *userServiceImpl) findRequiredUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, NewInvalidArgumentError(fmt.Sprintf("User not found with id: %d", userID))
		}
		s.logger.Error("failed to retrieve user", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

func summarize(games []*domain.Game) []GameSummary {
	summaries := make([]GameSummary, 0, len(games))
	for _, g := range games {
		summaries = append(summaries, GameSummary{ID: g.ID})
	}
	return summaries
}
