package httpapi

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"batepapo-api/domain"
	"batepapo-api/errors"
)

type messageRequest struct {
	To   string `json:"to" validate:"required"`
	Text string `json:"text" validate:"required"`
	Type string `json:"type" validate:"required,oneof=message private_message"`
}

// PostMessage handles POST /messages.
func (h *Handler) PostMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondJSON(w, http.StatusUnprocessableEntity, []string{"body must be a JSON object"})
		return
	}
	if err := validate.Struct(req); err != nil {
		h.respondJSON(w, http.StatusUnprocessableEntity, fieldMessages(err))
		return
	}

	from := r.Header.Get(IdentityHeader)
	_, err := h.messages.Post(r.Context(), from, req.To, req.Text, domain.MessageType(req.Type))
	switch {
	case err == nil:
		w.WriteHeader(http.StatusCreated)
	case stderrors.Is(err, errors.ErrUserDisconnected):
		h.respondJSON(w, http.StatusUnprocessableEntity, "User Disconnected, please reload page.")
	default:
		h.log.Error("Posting message failed", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// ListMessages handles GET /messages. A missing, non-numeric, or
// non-positive limit means "everything visible".
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	requester := r.Header.Get(IdentityHeader)
	limit := parseLimit(r.URL.Query().Get("limit"))

	messages, err := h.messages.List(r.Context(), requester, limit)
	if err != nil {
		h.log.Error("Listing messages failed", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	h.respondJSON(w, http.StatusOK, messages)
}

// SearchMessages handles GET /messages/search.
func (h *Handler) SearchMessages(w http.ResponseWriter, r *http.Request) {
	requester := r.Header.Get(IdentityHeader)
	query := r.URL.Query().Get("q")
	limit := parseLimit(r.URL.Query().Get("limit"))

	messages, err := h.messages.Search(r.Context(), requester, query, limit)
	if err != nil {
		h.log.Error("Searching messages failed", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	h.respondJSON(w, http.StatusOK, messages)
}

func parseLimit(raw string) int {
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}
