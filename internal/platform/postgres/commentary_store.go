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

// CommentaryStore implements the store.CommentaryStore interface
// using a PostgreSQL database as the storage backend. Reads hydrate the
// author projection (id, username, slug) alongside the commentary row.
type CommentaryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewCommentaryStore creates a new PostgreSQL implementation of the
// CommentaryStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
func NewCommentaryStore(db store.DBTX, logger *slog.Logger) *CommentaryStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CommentaryStore{
		db:     db,
		logger: logger.With(slog.String("component", "commentary_store")),
	}
}

// Ensure CommentaryStore implements store.CommentaryStore interface
var _ store.CommentaryStore = (*CommentaryStore)(nil)

const commentarySelect = `
	SELECT c.id, c.content, c.author_id, c.game_id, c.created_at,
	       u.id, u.username, u.slug
	FROM commentaries c
	JOIN users u ON u.id = c.author_id
`

// FindAll implements store.CommentaryStore.FindAll
func (s *CommentaryStore) FindAll(ctx context.Context) ([]*domain.Commentary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, commentarySelect+` ORDER BY c.id`)
	if err != nil {
		log.Error("failed to query commentaries", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	commentaries := []*domain.Commentary{}
	for rows.Next() {
		commentary, err := scanCommentary(rows)
		if err != nil {
			log.Error("failed to scan commentary row", slog.String("error", err.Error()))
			return nil, err
		}
		commentaries = append(commentaries, commentary)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}
	return commentaries, nil
}

// FindByID implements store.CommentaryStore.FindByID
// Returns store.ErrCommentaryNotFound if the commentary does not exist.
func (s *CommentaryStore) FindByID(ctx context.Context, id int64) (*domain.Commentary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	row := s.db.QueryRowContext(ctx, commentarySelect+` WHERE c.id = $1`, id)
	commentary, err := scanCommentary(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("commentary not found", slog.Int64("commentary_id", id))
			return nil, store.ErrCommentaryNotFound
		}
		log.Error("failed to get commentary by ID",
			slog.String("error", err.Error()),
			slog.Int64("commentary_id", id))
		return nil, err
	}
	return commentary, nil
}

// Save implements store.CommentaryStore.Save
// Returns store.ErrInvalidEntity when the author or game id does not exist.
func (s *CommentaryStore) Save(ctx context.Context, commentary *domain.Commentary) (*domain.Commentary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if commentary.CreatedAt.IsZero() {
		commentary.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO commentaries (content, author_id, game_id, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		commentary.Content,
		commentary.AuthorID,
		commentary.GameID,
		commentary.CreatedAt,
	).Scan(&commentary.ID)
	if err != nil {
		log.Error("failed to create commentary",
			slog.String("error", err.Error()),
			slog.Int64("author_id", commentary.AuthorID),
			slog.Int64("game_id", commentary.GameID))
		return nil, MapError(err)
	}
	return commentary, nil
}

// DeleteByID implements store.CommentaryStore.DeleteByID
// Deleting an id that does not exist is not an error.
func (s *CommentaryStore) DeleteByID(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.db.ExecContext(ctx, `DELETE FROM commentaries WHERE id = $1`, id); err != nil {
		log.Error("failed to delete commentary",
			slog.String("error", err.Error()),
			slog.Int64("commentary_id", id))
		return MapError(err)
	}
	return nil
}

func scanCommentary(row rowScanner) (*domain.Commentary, error) {
	var commentary domain.Commentary
	var author domain.User
	err := row.Scan(
		&commentary.ID,
		&commentary.Content,
		&commentary.AuthorID,
		&commentary.GameID,
		&commentary.CreatedAt,
		&author.ID,
		&author.Username,
		&author.Slug,
	)
	if err != nil {
		return nil, err
	}
	commentary.Author = &author
	return &commentary, nil
}
