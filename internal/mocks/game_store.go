package mocks

import (
	"context"

	"github.com/playerhub/playerhub/internal/domain"
	"github.com/stretchr/testify/mock"
)

// GameStore mocks store.GameStore.
type GameStore struct {
	mock.Mock
}

func (m *GameStore) FindByID(ctx context.Context, id int64) (*domain.Game, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Game), args.Error(1)
}

func (m *GameStore) Save(ctx context.Context, game *domain.Game) (*domain.Game, error) {
	args := m.Called(ctx, game)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Game), args.Error(1)
}
