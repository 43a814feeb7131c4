// Package httpapi exposes the chat room over HTTP. Identity travels in the
// "User" header on every message and status call, never in the body.
package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"batepapo-api/services"
)

// IdentityHeader carries the self-asserted participant name.
const IdentityHeader = "User"

var validate = validator.New()

// Handler holds application dependencies.
type Handler struct {
	presence *services.PresenceService
	messages *services.MessageService
	log      *slog.Logger
}

func New(presence *services.PresenceService, messages *services.MessageService, log *slog.Logger) *Handler {
	return &Handler{presence: presence, messages: messages, log: log}
}

// SetupRouter configures and returns the HTTP router.
func (h *Handler) SetupRouter() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/participants", h.Register).Methods("POST")
	r.HandleFunc("/participants", h.ListParticipants).Methods("GET")
	r.HandleFunc("/messages", h.PostMessage).Methods("POST")
	r.HandleFunc("/messages", h.ListMessages).Methods("GET")
	r.HandleFunc("/messages/search", h.SearchMessages).Methods("GET")
	r.HandleFunc("/status", h.Heartbeat).Methods("POST")

	return r
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			h.log.Error("Encoding response failed", "err", err)
		}
	}
}

// fieldMessages itemizes a validator error the way the API reports 422s:
// one message per failing field.
func fieldMessages(err error) []string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, fe.Field()+" failed on "+fe.Tag())
	}
	return messages
}
