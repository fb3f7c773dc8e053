package api

import (
	"net/http"

	"github.com/playerhub/playerhub/internal/api/shared"
	"github.com/playerhub/playerhub/internal/domain"
	"github.com/playerhub/playerhub/internal/service"
)

// CommentaryHandler handles commentary-related HTTP requests.
type CommentaryHandler struct {
	commentaryService service.CommentaryService
	userService       service.UserService
}

// NewCommentaryHandler creates a new CommentaryHandler.
func NewCommentaryHandler(
	commentaryService service.CommentaryService,
	userService service.UserService,
) *CommentaryHandler {
	return &CommentaryHandler{
		commentaryService: commentaryService,
		userService:       userService,
	}
}

// List handles GET /commentaries requests.
func (h *CommentaryHandler) List(w http.ResponseWriter, r *http.Request) {
	commentaries, err := h.commentaryService.GetAll(r.Context())
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	responses := make([]CommentaryResponse, 0, len(commentaries))
	for _, commentary := range commentaries {
		responses = append(responses, commentaryToResponse(commentary))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// Get handles GET /commentaries/{id} requests.
func (h *CommentaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	commentary, err := h.commentaryService.GetOneByID(r.Context(), id)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, commentaryToResponse(commentary))
}

// Create handles POST /commentaries requests. The author is the
// authenticated caller, taken from the request context.
func (h *CommentaryHandler) Create(w http.ResponseWriter, r *http.Request) {
	username, ok := r.Context().Value(shared.UsernameContextKey).(string)
	if !ok || username == "" {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateCommentaryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	authorID, err := h.userService.IDByUsername(r.Context(), username)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	commentary, err := h.commentaryService.Create(r.Context(),
		domain.NewCommentary(req.Content, authorID, req.GameID))
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, commentaryToResponse(commentary))
}

// Delete handles DELETE /commentaries/{id} requests.
func (h *CommentaryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.commentaryService.Delete(r.Context(), id); err != nil {
		RespondWithServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
