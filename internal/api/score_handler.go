package api

import (
	"net/http"

	"github.com/playerhub/playerhub/internal/api/shared"
	"github.com/playerhub/playerhub/internal/domain"
	"github.com/playerhub/playerhub/internal/service"
)

// ScoreHandler handles score-related HTTP requests.
type ScoreHandler struct {
	scoreService service.ScoreService
}

// NewScoreHandler creates a new ScoreHandler.
func NewScoreHandler(scoreService service.ScoreService) *ScoreHandler {
	return &ScoreHandler{
		scoreService: scoreService,
	}
}

// List handles GET /scores requests.
func (h *ScoreHandler) List(w http.ResponseWriter, r *http.Request) {
	scores, err := h.scoreService.FindAll(r.Context())
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	responses := make([]ScoreResponse, 0, len(scores))
	for _, score := range scores {
		responses = append(responses, scoreToResponse(score))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// Get handles GET /scores/{id} requests. A missing score is a 404 even
// though the service reports it as "no result".
func (h *ScoreHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	score, err := h.scoreService.FindByID(r.Context(), id)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}
	if score == nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Score not found")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, scoreToResponse(score))
}

// Create handles POST /scores requests.
func (h *ScoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	score, err := h.scoreService.Save(r.Context(), &domain.Score{
		Score:  req.Score,
		UserID: req.UserID,
		GameID: req.GameID,
	})
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, scoreToResponse(score))
}

// Update handles PUT /scores/{id} requests.
func (h *ScoreHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	score, err := h.scoreService.Update(r.Context(), id, &domain.Score{
		Score:  req.Score,
		UserID: req.UserID,
		GameID: req.GameID,
	})
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}
	if score == nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Score not found")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, scoreToResponse(score))
}

// Delete handles DELETE /scores/{id} requests.
func (h *ScoreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.scoreService.DeleteByID(r.Context(), id); err != nil {
		RespondWithServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ScoreHandler) decode(w http.ResponseWriter, r *http.Request) (ScoreRequest, bool) {
	var req ScoreRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return req, false
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return req, false
	}
	return req, true
}
