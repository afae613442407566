package server

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// chatRequestSchema is the wire contract of the /chat endpoint. Context may
// be a structured attribute object or an opaque text block.
var chatRequestSchema = map[string]interface{}{
	"type":     "object",
	"required": []string{"message"},
	"properties": map[string]interface{}{
		"message": map[string]interface{}{
			"type":      "string",
			"minLength": 1,
		},
		"context": map[string]interface{}{
			"type": []string{"object", "string"},
		},
	},
	"additionalProperties": false,
}

func validateChatPayload(body []byte) error {
	schemaLoader := gojsonschema.NewGoLoader(chatRequestSchema)
	documentLoader := gojsonschema.NewBytesLoader(body)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("invalid json")
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("invalid request: %s", strings.Join(msgs, "; "))
	}

	return nil
}
