// Package server exposes the assistant over HTTP: /chat, /status and /ping.
package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"cladari-assistant/internal/common/logger"
	"cladari-assistant/internal/models"
	generatetext "cladari-assistant/internal/pipeline/generate-text"
)

// Answerer is the routing core behind the /chat endpoint.
type Answerer interface {
	Answer(ctx context.Context, msg string, callerCtx *models.QueryContext) string
}

type Handler struct {
	assistant Answerer
	logger    logger.Logger
}

func NewHandler(assistant Answerer, log logger.Logger) *Handler {
	return &Handler{
		assistant: assistant,
		logger: log.With(map[string]interface{}{
			"component": "server",
		}),
	}
}

// HandleChat accepts {"message": "...", "context": {...}|"..."} and returns
// the assistant's answer. Empty input is rejected here, before the router.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read request body")
		return
	}

	if err := validateChatPayload(body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.ChatRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "no message provided")
		return
	}

	response := h.assistant.Answer(r.Context(), req.Message, req.Context)
	writeJSON(w, http.StatusOK, models.ChatResponse{Response: response})
}

// HandleStatus reports readiness and the deployed model roles.
func (h *Handler) HandleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ready",
		"models": []string{generatetext.RoleGeneral, generatetext.RoleSpecialist},
	})
}

func (h *Handler) HandlePing(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
