package generatetext

import (
	"encoding/json"
	"fmt"
)

type generateRequest struct {
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

type generateResponse struct {
	Text normalizedText `json:"text"`
}

// normalizedText absorbs the payload shape drift across generation backend
// versions: "text" is either a plain string or a single-element array of
// strings. Anything else fails closed as a malformed payload.
type normalizedText string

func (t *normalizedText) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = normalizedText(s)
		return nil
	}

	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil && len(arr) == 1 {
		*t = normalizedText(arr[0])
		return nil
	}

	return fmt.Errorf("unsupported text payload shape")
}
