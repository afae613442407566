package generatetext

import (
	"time"

	"cladari-assistant/internal/common/config"
)

type Config struct {
	Role        string
	Endpoint    string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// FromModelConfig builds a handler config for one of the two deployed roles.
func FromModelConfig(role string, mc config.ModelConfig) *Config {
	return &Config{
		Role:        role,
		Endpoint:    mc.Endpoint,
		MaxTokens:   mc.MaxTokens,
		Temperature: mc.Temperature,
		Timeout:     config.GetDuration(mc.Timeout),
	}
}
