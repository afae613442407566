// Package generatetext calls a remote text-generation endpoint with a
// role-specific prompt and cleans the raw output.
package generatetext

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"cladari-assistant/internal/common/logger"
)

const (
	RoleGeneral    = "general"
	RoleSpecialist = "specialist"
)

var (
	ErrGenerationFailed  = errors.New("GENERATION_FAILED")
	ErrGenerationTimeout = errors.New("GENERATION_TIMEOUT")
	ErrBadResponseShape  = errors.New("BAD_RESPONSE_SHAPE")
)

type Handler struct {
	config *Config
	client *http.Client
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		client: &http.Client{},
		logger: log.With(map[string]interface{}{
			"component": "generate-text",
			"role":      config.Role,
		}),
	}
}

// Role identifies which deployed model this handler targets.
func (h *Handler) Role() string {
	return h.config.Role
}

// Generate builds the role prompt, calls the generation endpoint within the
// configured timeout and returns the cleaned completion. Transport failures,
// non-2xx statuses, timeouts and malformed payloads all come back as errors
// for the router's fallback policy; nothing is retried here.
func (h *Handler) Generate(ctx context.Context, msg, contextText string) (string, error) {
	prompt := buildPrompt(h.config.Role, msg, contextText)

	body, _ := json.Marshal(generateRequest{
		Prompt:      prompt,
		MaxTokens:   h.config.MaxTokens,
		Temperature: h.config.Temperature,
	})

	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.config.Endpoint+"/generate", bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ErrGenerationTimeout
		}
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrGenerationFailed, resp.StatusCode)
	}

	var apiResponse generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadResponseShape, err)
	}

	text := string(apiResponse.Text)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty completion", ErrBadResponseShape)
	}

	cleaned := CleanResponse(text, prompt)

	h.logger.Debug("generation completed", map[string]interface{}{
		"promptLen":     len(prompt),
		"completionLen": len(cleaned),
	})

	return cleaned, nil
}
