package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	// Base config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like MODELS_GENERAL_ENDPOINT
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	viper.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = viper.MergeInConfig() // ignore error if not found

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile tries a few locations so the binary works from subdirectories too.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up directories looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars resolves ${VAR} placeholders in string config values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)

		if strVal, ok := val.(string); ok {
			if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
				expanded := os.ExpandEnv(strVal)
				if expanded != strVal && expanded != "" {
					v.Set(key, expanded)
				}
			}
		}
	}
}

// overrideEmptyConfig applies direct env overrides for fields still empty
// after placeholder expansion.
func overrideEmptyConfig(cfg *Config) {
	if cfg.PlantDB.BaseURL == "" {
		if val := os.Getenv("PLANTDB_BASE_URL"); val != "" {
			cfg.PlantDB.BaseURL = val
		}
	}
	if cfg.Models.General.Endpoint == "" {
		if val := os.Getenv("GENERAL_MODEL_ENDPOINT"); val != "" {
			cfg.Models.General.Endpoint = val
		}
	}
	if cfg.Models.Specialist.Endpoint == "" {
		if val := os.Getenv("SPECIALIST_MODEL_ENDPOINT"); val != "" {
			cfg.Models.Specialist.Endpoint = val
		}
	}
}

// applyDefaults sets default values for optional configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "cladari-assistant"
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8090
	}

	if cfg.PlantDB.Timeout == 0 {
		cfg.PlantDB.Timeout = 2000
	}
	if cfg.PlantDB.PredictTimeout == 0 {
		cfg.PlantDB.PredictTimeout = 3000
	}

	// Model defaults follow the two deployed roles: the general model gets a
	// larger token allowance and a caller-tunable temperature, the specialist
	// a smaller fixed one.
	if cfg.Models.General.MaxTokens == 0 {
		cfg.Models.General.MaxTokens = 1500
	}
	if cfg.Models.General.Temperature == 0 {
		cfg.Models.General.Temperature = 0.3
	}
	if cfg.Models.General.Timeout == 0 {
		cfg.Models.General.Timeout = 10000
	}

	if cfg.Models.Specialist.MaxTokens == 0 {
		cfg.Models.Specialist.MaxTokens = 1000
	}
	if cfg.Models.Specialist.Temperature == 0 {
		cfg.Models.Specialist.Temperature = 0.4
	}
	if cfg.Models.Specialist.Timeout == 0 {
		cfg.Models.Specialist.Timeout = 10000
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

// validateConfig validates critical configuration fields.
func validateConfig(cfg *Config) error {
	if cfg.PlantDB.BaseURL == "" {
		return fmt.Errorf("plantdb.base_url is required")
	}
	if cfg.Models.General.Endpoint == "" {
		return fmt.Errorf("models.general.endpoint is required")
	}
	if cfg.Models.Specialist.Endpoint == "" {
		return fmt.Errorf("models.specialist.endpoint is required")
	}
	return nil
}
