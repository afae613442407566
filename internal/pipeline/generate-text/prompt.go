package generatetext

import (
	"fmt"
	"strings"
)

const assistantMarker = "Assistant:"

const generalPreamble = "You are Cladari, a botanical assistant specializing in plant care and " +
	"collection management. Never invent specific counts, prices or dates; rely only on the supplied context."

const specialistPreamble = "You are a plant science expert with deep knowledge of botany, pathology " +
	"and horticulture. Stay factual and keep answers grounded in the supplied context."

// buildPrompt assembles the completion prompt with the literal section labels
// the generation backends expect.
func buildPrompt(role, msg, contextText string) string {
	system := generalPreamble
	if role == RoleSpecialist {
		system = specialistPreamble
	}

	if contextText != "" {
		return fmt.Sprintf("%s\n\nContext:\n%s\n\nUser: %s\n\n%s", system, contextText, msg, assistantMarker)
	}
	return fmt.Sprintf("%s\n\nUser: %s\n\n%s", system, msg, assistantMarker)
}

// CleanResponse strips prompt-echo artifacts some generation backends emit.
// If the raw output contains the Assistant: marker, only the text after its
// last occurrence is kept; an echoed-prompt prefix is stripped otherwise.
// Already-clean text comes back unchanged.
func CleanResponse(raw, prompt string) string {
	if i := strings.LastIndex(raw, assistantMarker); i >= 0 {
		return strings.TrimSpace(raw[i+len(assistantMarker):])
	}
	if prompt != "" && strings.HasPrefix(raw, prompt) {
		return strings.TrimSpace(strings.TrimPrefix(raw, prompt))
	}
	return raw
}
