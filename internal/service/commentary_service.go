package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/playerhub/playerhub/internal/domain"
	"github.com/playerhub/playerhub/internal/store"
)

// CommentaryService provides CRUD operations over commentaries. Unlike the
// score service, GetOneByID fails on a miss; the asymmetry is part of the
// published contract.
type CommentaryService interface {
	// GetAll returns every commentary, in store order.
	GetAll(ctx context.Context) ([]*domain.Commentary, error)

	// GetOneByID returns the commentary with that id, or
	// store.ErrCommentaryNotFound.
	GetOneByID(ctx context.Context, id int64) (*domain.Commentary, error)

	// Create persists the commentary and returns the persisted entity.
	Create(ctx context.Context, commentary *domain.Commentary) (*domain.Commentary, error)

	// Delete removes the commentary. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id int64) error
}

// commentaryServiceImpl implements the CommentaryService interface.
type commentaryServiceImpl struct {
	commentaries store.CommentaryStore
	logger       *slog.Logger
}

// NewCommentaryService creates a new CommentaryService.
func NewCommentaryService(commentaries store.CommentaryStore, logger *slog.Logger) CommentaryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &commentaryServiceImpl{
		commentaries: commentaries,
		logger:       logger.With(slog.String("component", "commentary_service")),
	}
}

// GetAll implements CommentaryService.GetAll.
func (s *commentaryServiceImpl) GetAll(ctx context.Context) ([]*domain.Commentary, error) {
	commentaries, err := s.commentaries.FindAll(ctx)
	if err != nil {
		s.logger.Error("failed to list commentaries", "error", err)
		return nil, fmt.Errorf("failed to list commentaries: %w", err)
	}
	return commentaries, nil
}

// GetOneByID implements CommentaryService.GetOneByID.
func (s *commentaryServiceImpl) GetOneByID(ctx context.Context, id int64) (*domain.Commentary, error) {
	commentary, err := s.commentaries.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrCommentaryNotFound) {
			s.logger.Error("failed to retrieve commentary", "error", err, "commentary_id", id)
		}
		return nil, fmt.Errorf("failed to retrieve commentary: %w", err)
	}
	return commentary, nil
}

// Create implements CommentaryService.Create.
func (s *commentaryServiceImpl) Create(ctx context.Context, commentary *domain.Commentary) (*domain.Commentary, error) {
	saved, err := s.commentaries.Save(ctx, commentary)
	if err != nil {
		s.logger.Error("failed to create commentary", "error", err)
		return nil, fmt.Errorf("failed to create commentary: %w", err)
	}
	s.logger.Info("commentary created",
		"commentary_id", saved.ID,
		"game_id", saved.GameID)
	return saved, nil
}

// Delete implements CommentaryService.Delete.
func (s *commentaryServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.commentaries.DeleteByID(ctx, id); err != nil {
		s.logger.Error("failed to delete commentary", "error", err, "commentary_id", id)
		return fmt.Errorf("failed to delete commentary: %w", err)
	}
	return nil
}
