package mocks

import (
	"context"

	"github.com/playerhub/playerhub/internal/domain"
	"github.com/stretchr/testify/mock"
)

// ScoreStore mocks store.ScoreStore.
type ScoreStore struct {
	mock.Mock
}

func (m *ScoreStore) FindAll(ctx context.Context) ([]*domain.Score, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Score), args.Error(1)
}

func (m *ScoreStore) FindByID(ctx context.Context, id int64) (*domain.Score, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Score), args.Error(1)
}

func (m *ScoreStore) Save(ctx context.Context, score *domain.Score) (*domain.Score, error) {
	args := m.Called(ctx, score)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Score), args.Error(1)
}

func (m *ScoreStore) DeleteByID(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
