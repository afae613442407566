package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cladari-assistant/internal/common/logger"
	"cladari-assistant/internal/models"
)

type stubAssistant struct {
	answer     string
	gotMsg     string
	gotContext *models.QueryContext
}

func (s *stubAssistant) Answer(_ context.Context, msg string, callerCtx *models.QueryContext) string {
	s.gotMsg = msg
	s.gotContext = callerCtx
	return s.answer
}

func newTestServer(t *testing.T, assistant *stubAssistant) *httptest.Server {
	h := NewHandler(assistant, logger.NewTestLogger(t))
	r := chi.NewRouter()
	RegisterRoutes(r, h)
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func postChat(t *testing.T, server *httptest.Server, body string) *http.Response {
	resp, err := http.Post(server.URL+"/chat", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

// ==========================
// /chat Tests
// ==========================

func TestHandleChat_Success(t *testing.T) {
	assistant := &stubAssistant{answer: "You have 42 plants in your collection."}
	server := newTestServer(t, assistant)

	resp := postChat(t, server, `{"message": "How many plants do I have?"}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var chatResp models.ChatResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&chatResp))
	assert.Equal(t, "You have 42 plants in your collection.", chatResp.Response)
	assert.Equal(t, "How many plants do I have?", assistant.gotMsg)
	assert.Nil(t, assistant.gotContext)
}

func TestHandleChat_ContextForwarded(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		validate func(t *testing.T, qc *models.QueryContext)
	}{
		{
			name: "object context",
			body: `{"message": "how do I care for it?", "context": {"plantId": "ANT-2025-0042"}}`,
			validate: func(t *testing.T, qc *models.QueryContext) {
				require.NotNil(t, qc)
				assert.Equal(t, "ANT-2025-0042", qc.Attributes["plantId"])
			},
		},
		{
			name: "string context",
			body: `{"message": "how do I care for it?", "context": "Collection: 42 plants"}`,
			validate: func(t *testing.T, qc *models.QueryContext) {
				require.NotNil(t, qc)
				assert.Equal(t, "Collection: 42 plants", qc.Text)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assistant := &stubAssistant{answer: "ok"}
			server := newTestServer(t, assistant)

			resp := postChat(t, server, tt.body)

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			tt.validate(t, assistant.gotContext)
		})
	}
}

func TestHandleChat_BadRequests(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		expectedMsg string
	}{
		{"missing message field", `{}`, "message is required"},
		{"empty message", `{"message": ""}`, ""},
		{"whitespace-only message", `{"message": "   "}`, "no message provided"},
		{"message not a string", `{"message": 42}`, ""},
		{"context of wrong type", `{"message": "hi", "context": 42}`, ""},
		{"unknown field", `{"message": "hi", "model": "gpt"}`, "Additional property model is not allowed"},
		{"malformed json", `{"message": `, "invalid json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assistant := &stubAssistant{answer: "should not be called"}
			server := newTestServer(t, assistant)

			resp := postChat(t, server, tt.body)

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Empty(t, assistant.gotMsg, "assistant must not run for rejected input")

			if tt.expectedMsg != "" {
				var errResp map[string]string
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
				assert.Contains(t, errResp["error"], tt.expectedMsg)
			}
		})
	}
}

// ==========================
// /status and /ping Tests
// ==========================

func TestHandleStatus(t *testing.T) {
	server := newTestServer(t, &stubAssistant{})

	resp, err := http.Get(server.URL + "/status")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var status struct {
		Status string   `json:"status"`
		Models []string `json:"models"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, "ready", status.Status)
	assert.Equal(t, []string{"general", "specialist"}, status.Models)
}

func TestHandlePing(t *testing.T) {
	server := newTestServer(t, &stubAssistant{})

	resp, err := http.Get(server.URL + "/ping")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestChat_MethodNotAllowed(t *testing.T) {
	server := newTestServer(t, &stubAssistant{})

	resp, err := http.Get(server.URL + "/chat")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
