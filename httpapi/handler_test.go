package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"batepapo-api/domain"
	"batepapo-api/repositories"
	"batepapo-api/services"
	"batepapo-api/storage"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := storage.NewMemoryStore()
	log := slog.Default()
	participants := repositories.NewParticipantRepository(store, log)
	messages := repositories.NewMessageRepository(store, log)

	presence := services.NewPresenceService(participants, messages, log)
	router := services.NewMessageService(participants, messages, nil, nil, log)

	srv := httptest.NewServer(New(presence, router, log).SetupRouter())
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, identity, body string) *http.Response {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	if identity != "" {
		req.Header.Set(IdentityHeader, identity)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeMessages(t *testing.T, resp *http.Response) []domain.Message {
	t.Helper()
	var messages []domain.Message
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&messages))
	return messages
}

func Test_Register_Endpoint(t *testing.T) {
	req := require.New(t)
	srv := newServer(t)

	resp := do(t, srv, "POST", "/participants", "", `{"name":"Ana"}`)
	req.Equal(http.StatusCreated, resp.StatusCode)

	resp = do(t, srv, "POST", "/participants", "", `{"name":"Ana"}`)
	req.Equal(http.StatusConflict, resp.StatusCode)

	resp = do(t, srv, "POST", "/participants", "", `{}`)
	req.Equal(http.StatusUnprocessableEntity, resp.StatusCode)
	var details []string
	req.NoError(json.NewDecoder(resp.Body).Decode(&details))
	req.Len(details, 1)
	req.Contains(details[0], "Name")

	resp = do(t, srv, "POST", "/participants", "", `not json`)
	req.Equal(http.StatusUnprocessableEntity, resp.StatusCode)
}

func Test_ListParticipants_Endpoint(t *testing.T) {
	req := require.New(t)
	srv := newServer(t)

	resp := do(t, srv, "GET", "/participants", "", "")
	req.Equal(http.StatusOK, resp.StatusCode)
	var empty []domain.Participant
	req.NoError(json.NewDecoder(resp.Body).Decode(&empty))
	req.Empty(empty)

	do(t, srv, "POST", "/participants", "", `{"name":"Ana"}`)

	resp = do(t, srv, "GET", "/participants", "", "")
	var participants []domain.Participant
	req.NoError(json.NewDecoder(resp.Body).Decode(&participants))
	req.Len(participants, 1)
	req.Equal("Ana", participants[0].Name)
	req.NotZero(participants[0].LastStatus)
}

func Test_PostMessage_Endpoint(t *testing.T) {
	req := require.New(t)
	srv := newServer(t)

	do(t, srv, "POST", "/participants", "", `{"name":"Ana"}`)

	resp := do(t, srv, "POST", "/messages", "Ana", `{"to":"Todos","text":"hi","type":"message"}`)
	req.Equal(http.StatusCreated, resp.StatusCode)

	// Identity that is not registered is told to reconnect.
	resp = do(t, srv, "POST", "/messages", "Ghost", `{"to":"Todos","text":"hi","type":"message"}`)
	req.Equal(http.StatusUnprocessableEntity, resp.StatusCode)
	var detail string
	req.NoError(json.NewDecoder(resp.Body).Decode(&detail))
	req.Equal("User Disconnected, please reload page.", detail)

	// Clients cannot forge status notices.
	resp = do(t, srv, "POST", "/messages", "Ana", `{"to":"Todos","text":"hi","type":"status"}`)
	req.Equal(http.StatusUnprocessableEntity, resp.StatusCode)

	resp = do(t, srv, "POST", "/messages", "Ana", `{"to":"Todos","type":"message"}`)
	req.Equal(http.StatusUnprocessableEntity, resp.StatusCode)
}

func Test_ListMessages_Endpoint_Visibility_And_Limit(t *testing.T) {
	req := require.New(t)
	srv := newServer(t)

	do(t, srv, "POST", "/participants", "", `{"name":"Ana"}`)
	do(t, srv, "POST", "/messages", "Ana", `{"to":"Todos","text":"hi","type":"message"}`)
	do(t, srv, "POST", "/messages", "Ana", `{"to":"Bob","text":"psst","type":"private_message"}`)

	// Bob sees status + public + his private message.
	resp := do(t, srv, "GET", "/messages", "Bob", "")
	req.Equal(http.StatusOK, resp.StatusCode)
	req.Len(decodeMessages(t, resp), 3)

	// Carol does not see the private message.
	resp = do(t, srv, "GET", "/messages?limit=10", "Carol", "")
	messages := decodeMessages(t, resp)
	req.Len(messages, 2)
	req.Equal(domain.TypeStatus, messages[0].Type)
	req.Equal("hi", messages[1].Text)

	// Limit keeps the most recent visible entries.
	resp = do(t, srv, "GET", "/messages?limit=1", "Carol", "")
	messages = decodeMessages(t, resp)
	req.Len(messages, 1)
	req.Equal("hi", messages[0].Text)

	// Non-numeric and negative limits mean unlimited.
	for _, raw := range []string{"abc", "-5", ""} {
		resp = do(t, srv, "GET", "/messages?limit="+raw, "Bob", "")
		req.Len(decodeMessages(t, resp), 3, "limit=%q", raw)
	}
}

func Test_Heartbeat_Endpoint(t *testing.T) {
	req := require.New(t)
	srv := newServer(t)

	resp := do(t, srv, "POST", "/status", "Ghost", "")
	req.Equal(http.StatusNotFound, resp.StatusCode)

	do(t, srv, "POST", "/participants", "", `{"name":"Ana"}`)
	resp = do(t, srv, "POST", "/status", "Ana", "")
	req.Equal(http.StatusOK, resp.StatusCode)
}

func Test_SearchMessages_Endpoint_Without_Index(t *testing.T) {
	req := require.New(t)
	srv := newServer(t)

	resp := do(t, srv, "GET", "/messages/search?q=hello", "Bob", "")
	req.Equal(http.StatusOK, resp.StatusCode)
	req.Empty(decodeMessages(t, resp))
}
