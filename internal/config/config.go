package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// ExportSheetID and ExportTab name the spreadsheet the publish
	// command writes the roster to.
	ExportSheetID string `yaml:"exportSheetID" validate:"required"`
	ExportTab     string `yaml:"exportTab" validate:"required"`

	// DefaultLocations pre-populates the location choices offered when
	// adding records from the CLI. Optional.
	DefaultLocations []string `yaml:"defaultLocations,omitempty"`

	// DatabaseURL is resolved from the environment (DATABASE_URL),
	// never from the yaml file, so the config file stays shareable.
	DatabaseURL string `yaml:"-" validate:"required"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads and validates the configuration for an environment.
// For example, env="test" will look for "wachplan_config.test.yaml".
// A .env file is loaded first if present; DATABASE_URL then comes from
// the environment.
func LoadWithEnv(env string) (*Config, error) {
	// Missing .env is fine, the variables may already be exported.
	_ = godotenv.Load(".env")

	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// findConfigFile searches for the config file in the current directory
// and the user's home directory. If env is provided it is added as an
// extension (e.g. "wachplan_config.test.yaml").
func findConfigFile(env string) (string, error) {
	configFileName := "wachplan_config.yaml"
	if env != "" {
		configFileName = "wachplan_config." + env + ".yaml"
	}

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file %s not found in current directory or home directory", configFileName)
}
