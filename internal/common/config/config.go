package config

import "time"

// Config is the main application configuration struct. It is built once at
// startup and passed to components read-only.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	PlantDB PlantDBConfig `mapstructure:"plantdb"`
	Models  ModelsConfig  `mapstructure:"models"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// PlantDBConfig holds settings for the external collection-management service.
type PlantDBConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	PredictTimeout int    `mapstructure:"predict_timeout"` // milliseconds
}

// ModelsConfig holds the two text-generation endpoints the router dispatches to.
type ModelsConfig struct {
	General    ModelConfig `mapstructure:"general"`
	Specialist ModelConfig `mapstructure:"specialist"`
}

type ModelConfig struct {
	Endpoint    string  `mapstructure:"endpoint"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
	Timeout     int     `mapstructure:"timeout"` // milliseconds
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// GetDuration converts milliseconds from config to time.Duration.
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
