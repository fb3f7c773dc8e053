package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/playerhub/playerhub/internal/domain"
	"github.com/playerhub/playerhub/internal/mocks"
	"github.com/playerhub/playerhub/internal/service"
	"github.com/playerhub/playerhub/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestCommentary() *domain.Commentary {
	return &domain.Commentary{
		ID:       1,
		Content:  "Great game!",
		AuthorID: 1,
		GameID:   1,
	}
}

func TestCommentaryService_GetAll(t *testing.T) {
	t.Run("returns every commentary", func(t *testing.T) {
		commentaryStore := new(mocks.CommentaryStore)
		commentaries := []*domain.Commentary{newTestCommentary(), {ID: 2, Content: "Not bad", AuthorID: 2, GameID: 1}}
		commentaryStore.On("FindAll", mock.Anything).Return(commentaries, nil).Once()

		svc := service.NewCommentaryService(commentaryStore, testLogger())

		result, err := svc.GetAll(context.Background())

		require.NoError(t, err)
		assert.Equal(t, commentaries, result)
		commentaryStore.AssertExpectations(t)
	})

	t.Run("store failures propagate", func(t *testing.T) {
		commentaryStore := new(mocks.CommentaryStore)
		dbErr := errors.New("connection reset")
		commentaryStore.On("FindAll", mock.Anything).Return(nil, dbErr).Once()

		svc := service.NewCommentaryService(commentaryStore, testLogger())

		_, err := svc.GetAll(context.Background())

		require.ErrorIs(t, err, dbErr)
	})
}

func TestCommentaryService_GetOneByID(t *testing.T) {
	t.Run("returns commentary when it exists", func(t *testing.T) {
		commentaryStore := new(mocks.CommentaryStore)
		commentaryStore.On("FindByID", mock.Anything, int64(1)).Return(newTestCommentary(), nil).Once()

		svc := service.NewCommentaryService(commentaryStore, testLogger())

		result, err := svc.GetOneByID(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, "Great game!", result.Content)
		commentaryStore.AssertExpectations(t)
	})

	t.Run("miss is an error, unlike scores", func(t *testing.T) {
		commentaryStore := new(mocks.CommentaryStore)
		commentaryStore.On("FindByID", mock.Anything, int64(999)).Return(nil, store.ErrCommentaryNotFound).Once()

		svc := service.NewCommentaryService(commentaryStore, testLogger())

		result, err := svc.GetOneByID(context.Background(), 999)

		require.ErrorIs(t, err, store.ErrCommentaryNotFound)
		assert.Nil(t, result)
	})
}

func TestCommentaryService_Create(t *testing.T) {
	t.Run("persists the commentary", func(t *testing.T) {
		commentaryStore := new(mocks.CommentaryStore)
		saved := newTestCommentary()
		commentaryStore.On("Save", mock.Anything, mock.MatchedBy(func(c *domain.Commentary) bool {
			return c.ID == 0 && c.Content == "Great game!"
		})).Return(saved, nil).Once()

		svc := service.NewCommentaryService(commentaryStore, testLogger())

		result, err := svc.Create(context.Background(), &domain.Commentary{Content: "Great game!", AuthorID: 1, GameID: 1})

		require.NoError(t, err)
		assert.Equal(t, int64(1), result.ID)
		commentaryStore.AssertExpectations(t)
	})

	t.Run("store failures propagate", func(t *testing.T) {
		commentaryStore := new(mocks.CommentaryStore)
		dbErr := errors.New("connection reset")
		commentaryStore.On("Save", mock.Anything, mock.Anything).Return(nil, dbErr).Once()

		svc := service.NewCommentaryService(commentaryStore, testLogger())

		_, err := svc.Create(context.Background(), newTestCommentary())

		require.ErrorIs(t, err, dbErr)
	})
}

func TestCommentaryService_Delete(t *testing.T) {
	t.Run("deletes by id", func(t *testing.T) {
		commentaryStore := new(mocks.CommentaryStore)
		commentaryStore.On("DeleteByID", mock.Anything, int64(1)).Return(nil).Once()

		svc := service.NewCommentaryService(commentaryStore, testLogger())

		require.NoError(t, svc.Delete(context.Background(), 1))
		commentaryStore.AssertExpectations(t)
	})

	t.Run("store failures propagate", func(t *testing.T) {
		commentaryStore := new(mocks.CommentaryStore)
		dbErr := errors.New("connection reset")
		commentaryStore.On("DeleteByID", mock.Anything, int64(1)).Return(dbErr).Once()

		svc := service.NewCommentaryService(commentaryStore, testLogger())

		require.ErrorIs(t, svc.Delete(context.Background(), 1), dbErr)
	})
}
