package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/playerhub/playerhub/internal/api/shared"
	"github.com/playerhub/playerhub/internal/domain"
	"github.com/playerhub/playerhub/internal/mocks"
	"github.com/playerhub/playerhub/internal/service"
	"github.com/playerhub/playerhub/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// userHandlerFixture wires a UserHandler to a real user service backed by
// store mocks, so tests exercise the full error translation path the clients
// see.
type userHandlerFixture struct {
	userStore *mocks.UserStore
	gameStore *mocks.GameStore
	tokens    *mocks.TokenService
	router    chi.Router
}

func newUserHandlerFixture() *userHandlerFixture {
	f := &userHandlerFixture{
		userStore: new(mocks.UserStore),
		gameStore: new(mocks.GameStore),
		tokens:    new(mocks.TokenService),
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	handler := NewUserHandler(service.NewUserService(f.userStore, f.gameStore, f.tokens, logger))

	r := chi.NewRouter()
	r.Get("/users/{id}", handler.Get)
	r.Get("/users/slug/{slug}", handler.GetBySlug)
	r.Put("/users/{id}", handler.Update)
	r.Get("/users/{id}/games", handler.Games)
	r.Post("/users/{id}/games/{gameID}", handler.AddGame)
	r.Delete("/users/{id}/games/{gameID}", handler.RemoveGame)
	r.Get("/me/id", handler.MyID)
	f.router = r
	return f
}

func (f *userHandlerFixture) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(encoded)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, target, reqBody)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestUserHandler_Get(t *testing.T) {
	t.Run("returns the user as JSON", func(t *testing.T) {
		f := newUserHandlerFixture()
		f.userStore.On("FindByID", mock.Anything, int64(1)).
			Return(&domain.User{ID: 1, Username: "testuser", Slug: "testuser", Email: "test@example.com"}, nil).
			Once()

		rec := f.do(t, http.MethodGet, "/users/1", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp UserResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "testuser", resp.Username)
		assert.NotNil(t, resp.Games)
	})

	t.Run("missing user maps to 404", func(t *testing.T) {
		f := newUserHandlerFixture()
		f.userStore.On("FindByID", mock.Anything, int64(999)).Return(nil, store.ErrUserNotFound).Once()

		rec := f.do(t, http.MethodGet, "/users/999", nil)

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "User not found", decodeError(t, rec).Error)
	})

	t.Run("non-numeric id maps to 400", func(t *testing.T) {
		f := newUserHandlerFixture()

		rec := f.do(t, http.MethodGet, "/users/abc", nil)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUserHandler_GetBySlug(t *testing.T) {
	t.Run("slug miss maps to 404", func(t *testing.T) {
		f := newUserHandlerFixture()
		f.userStore.On("FindBySlug", mock.Anything, "ghost").Return(nil, store.ErrUserNotFound).Once()

		rec := f.do(t, http.MethodGet, "/users/slug/ghost", nil)

		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestUserHandler_Update(t *testing.T) {
	t.Run("absent password field leaves credential untouched", func(t *testing.T) {
		f := newUserHandlerFixture()
		f.userStore.On("FindByID", mock.Anything, int64(1)).
			Return(&domain.User{ID: 1, Username: "testuser", Email: "test@example.com", HashedPassword: "stored-hash"}, nil).
			Once()
		f.userStore.On("Save", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.Password == "" && u.HashedPassword == "stored-hash" && u.Bio == "updated"
		})).Return(&domain.User{ID: 1, Username: "testuser", Email: "test@example.com", HashedPassword: "stored-hash", Bio: "updated"}, nil).
			Once()

		rec := f.do(t, http.MethodPut, "/users/1", map[string]string{"bio": "updated"})

		require.Equal(t, http.StatusOK, rec.Code)
		var resp UserResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "updated", resp.Bio)
	})

	t.Run("malformed email is rejected before the service runs", func(t *testing.T) {
		f := newUserHandlerFixture()

		rec := f.do(t, http.MethodPut, "/users/1", map[string]string{"email": "not-an-email"})

		require.Equal(t, http.StatusBadRequest, rec.Code)
		f.userStore.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestUserHandler_Games(t *testing.T) {
	f := newUserHandlerFixture()
	f.userStore.On("FindByID", mock.Anything, int64(1)).
		Return(&domain.User{ID: 1, Username: "testuser", Email: "test@example.com",
			Games: []*domain.Game{{ID: 3}, {ID: 1}}}, nil).
		Once()

	rec := f.do(t, http.MethodGet, "/users/1/games", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var games []GameResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &games))
	// Collection order survives the round trip.
	require.Len(t, games, 2)
	assert.Equal(t, int64(3), games[0].ID)
	assert.Equal(t, int64(1), games[1].ID)
}

func TestUserHandler_AddGame(t *testing.T) {
	t.Run("duplicate game maps to 400 with the literal message", func(t *testing.T) {
		f := newUserHandlerFixture()
		f.userStore.On("FindByID", mock.Anything, int64(1)).
			Return(&domain.User{ID: 1, Username: "testuser", Email: "test@example.com",
				Games: []*domain.Game{{ID: 5}}}, nil).
			Once()

		rec := f.do(t, http.MethodPost, "/users/1/games/5", nil)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Game is already registered in the user list", decodeError(t, rec).Error)
		f.gameStore.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("missing user maps to 400 with the id-bearing message", func(t *testing.T) {
		f := newUserHandlerFixture()
		f.userStore.On("FindByID", mock.Anything, int64(999)).Return(nil, store.ErrUserNotFound).Once()

		rec := f.do(t, http.MethodPost, "/users/999/games/5", nil)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "User not found with id: 999", decodeError(t, rec).Error)
	})
}

func TestUserHandler_RemoveGame(t *testing.T) {
	t.Run("unknown game maps to 400 with the literal message", func(t *testing.T) {
		f := newUserHandlerFixture()
		f.userStore.On("FindByID", mock.Anything, int64(1)).
			Return(&domain.User{ID: 1, Username: "testuser", Email: "test@example.com"}, nil).
			Once()
		f.gameStore.On("FindByID", mock.Anything, int64(999)).Return(nil, store.ErrGameNotFound).Once()

		rec := f.do(t, http.MethodDelete, "/users/1/games/999", nil)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "le jeux n'est pas dans la liste: 999", decodeError(t, rec).Error)
	})

	t.Run("returns the remaining games", func(t *testing.T) {
		f := newUserHandlerFixture()
		user := &domain.User{ID: 1, Username: "testuser", Email: "test@example.com",
			Games: []*domain.Game{{ID: 1}, {ID: 2}}}
		f.userStore.On("FindByID", mock.Anything, int64(1)).Return(user, nil).Once()
		f.gameStore.On("FindByID", mock.Anything, int64(1)).Return(&domain.Game{ID: 1}, nil).Once()
		f.userStore.On("Save", mock.Anything, mock.Anything).Return(user, nil).Once()

		rec := f.do(t, http.MethodDelete, "/users/1/games/1", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var games []GameResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &games))
		require.Len(t, games, 1)
		assert.Equal(t, int64(2), games[0].ID)
	})
}

func TestUserHandler_MyID(t *testing.T) {
	t.Run("resolves the caller's id from the bearer token", func(t *testing.T) {
		f := newUserHandlerFixture()
		f.tokens.On("ExtractUsername", mock.Anything, "valid.jwt.token").Return("testuser", nil).Once()
		f.userStore.On("FindByUsername", mock.Anything, "testuser").
			Return(&domain.User{ID: 42, Username: "testuser", Email: "test@example.com"}, nil).
			Once()

		req := httptest.NewRequest(http.MethodGet, "/me/id", nil)
		req.Header.Set("Authorization", "Bearer valid.jwt.token")
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp IdentityResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, int64(42), resp.ID)
	})

	t.Run("missing bearer token maps to 401", func(t *testing.T) {
		f := newUserHandlerFixture()

		rec := f.do(t, http.MethodGet, "/me/id", nil)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
