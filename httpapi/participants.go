package httpapi

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"batepapo-api/domain"
	"batepapo-api/errors"
)

type registerRequest struct {
	Name string `json:"name" validate:"required"`
}

// Register handles POST /participants.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondJSON(w, http.StatusUnprocessableEntity, []string{"body must be a JSON object"})
		return
	}
	if err := validate.Struct(req); err != nil {
		h.respondJSON(w, http.StatusUnprocessableEntity, fieldMessages(err))
		return
	}

	switch err := h.presence.Register(r.Context(), req.Name); {
	case err == nil:
		w.WriteHeader(http.StatusCreated)
	case stderrors.Is(err, errors.ErrNameTaken):
		w.WriteHeader(http.StatusConflict)
	case stderrors.Is(err, errors.ErrEmptyName):
		h.respondJSON(w, http.StatusUnprocessableEntity, []string{"name is empty after sanitization"})
	default:
		h.log.Error("Register failed", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// ListParticipants handles GET /participants.
func (h *Handler) ListParticipants(w http.ResponseWriter, r *http.Request) {
	participants, err := h.presence.List(r.Context())
	if err != nil {
		h.log.Error("Listing participants failed", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if participants == nil {
		participants = []domain.Participant{}
	}
	h.respondJSON(w, http.StatusOK, participants)
}

// Heartbeat handles POST /status, the presence refresh endpoint.
func (h *Handler) Heartbeat(w http.ResponseWriter, r *http.Request) {
	switch err := h.presence.Heartbeat(r.Context(), r.Header.Get(IdentityHeader)); {
	case err == nil:
		w.WriteHeader(http.StatusOK)
	case stderrors.Is(err, errors.ErrUnknownParticipant):
		w.WriteHeader(http.StatusNotFound)
	default:
		h.log.Error("Heartbeat failed", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}
