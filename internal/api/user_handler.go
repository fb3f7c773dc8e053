package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/playerhub/playerhub/internal/api/shared"
	"github.com/playerhub/playerhub/internal/domain"
	"github.com/playerhub/playerhub/internal/service"
)

// UserHandler handles user-related HTTP requests.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// List handles GET /users requests.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.GetAll(r.Context())
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, userToResponse(user))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// Get handles GET /users/{id} requests.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// GetBySlug handles GET /users/slug/{slug} requests.
func (h *UserHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	user, err := h.userService.GetBySlug(r.Context(), slug)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}
	if user == nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "User not found")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// Update handles PUT /users/{id} requests.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, h.userService.Update)
}

// UpdateBanner handles PUT /users/{id}/banner requests.
func (h *UserHandler) UpdateBanner(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, h.userService.UpdateBanner)
}

// UpdateProfilePicture handles PUT /users/{id}/profile-picture requests.
func (h *UserHandler) UpdateProfilePicture(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, h.userService.UpdateProfilePicture)
}

// Delete handles DELETE /users/{id} requests.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.userService.Delete(r.Context(), id); err != nil {
		RespondWithServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Games handles GET /users/{id}/games requests.
func (h *UserHandler) Games(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	summaries, err := h.userService.Games(r.Context(), id)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, summariesToResponse(summaries))
}

// AddGame handles POST /users/{id}/games/{gameID} requests.
func (h *UserHandler) AddGame(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	gameID, ok := pathID(w, r, "gameID")
	if !ok {
		return
	}

	if err := h.userService.AddGame(r.Context(), userID, gameID); err != nil {
		RespondWithServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveGame handles DELETE /users/{id}/games/{gameID} requests.
func (h *UserHandler) RemoveGame(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	gameID, ok := pathID(w, r, "gameID")
	if !ok {
		return
	}

	summaries, err := h.userService.RemoveGame(r.Context(), userID, gameID)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, summariesToResponse(summaries))
}

// MyID handles GET /me/id requests, resolving the caller's id from the
// bearer token.
func (h *UserHandler) MyID(w http.ResponseWriter, r *http.Request) {
	token := shared.BearerToken(r)
	if token == "" {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
		return
	}

	id, err := h.userService.IDFromToken(r.Context(), token)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, IdentityResponse{ID: id})
}

// MySlug handles GET /me/slug requests, resolving the caller's slug from the
// bearer token.
func (h *UserHandler) MySlug(w http.ResponseWriter, r *http.Request) {
	token := shared.BearerToken(r)
	if token == "" {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
		return
	}

	slug, err := h.userService.SlugFromToken(r.Context(), token)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, IdentityResponse{Slug: slug})
}

func (h *UserHandler) update(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, id int64, patch *domain.UserPatch) (*domain.User, error),
) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := op(r.Context(), id, req.toPatch())
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

func pathID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}
