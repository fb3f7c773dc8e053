package mocks

import (
	"context"

	"github.com/playerhub/playerhub/internal/domain"
	"github.com/stretchr/testify/mock"
)

// CommentaryStore mocks store.CommentaryStore.
type CommentaryStore struct {
	mock.Mock
}

func (m *CommentaryStore) FindAll(ctx context.Context) ([]*domain.Commentary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Commentary), args.Error(1)
}

func (m *CommentaryStore) FindByID(ctx context.Context, id int64) (*domain.Commentary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Commentary), args.Error(1)
}

func (m *CommentaryStore) Save(ctx context.Context, commentary *domain.Commentary) (*domain.Commentary, error) {
	args := m.Called(ctx, commentary)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Commentary), args.Error(1)
}

func (m *CommentaryStore) DeleteByID(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
