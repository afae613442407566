package models

import (
	"encoding/json"
	"fmt"
)

// ChatRequest is the inbound payload of the /chat endpoint.
type ChatRequest struct {
	Message string        `json:"message"`
	Context *QueryContext `json:"context,omitempty"`
}

// ChatResponse is the payload returned to the caller.
type ChatResponse struct {
	Response string `json:"response"`
}

// QueryContext is caller-supplied grounding for a single query: either
// structured key/value attributes describing one entity, or an opaque
// pre-rendered text block. At most one form is used per query.
type QueryContext struct {
	Attributes map[string]interface{}
	Text       string
}

func (c *QueryContext) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		c.Text = s
		return nil
	}

	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err == nil {
		c.Attributes = m
		return nil
	}

	return fmt.Errorf("context must be an object or a string")
}

func (c *QueryContext) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("null"), nil
	}
	if len(c.Attributes) > 0 {
		return json.Marshal(c.Attributes)
	}
	return json.Marshal(c.Text)
}

// IsEmpty reports whether the caller supplied any usable context.
func (c *QueryContext) IsEmpty() bool {
	return c == nil || (c.Text == "" && len(c.Attributes) == 0)
}
