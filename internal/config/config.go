// Package config loads the application configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the top-level application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Registry RegistryConfig `yaml:"registry"`
	Engine   EngineConfig   `yaml:"engine"`
	Pipeline PipelineConfig `yaml:"pipeline"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// RegistryConfig points at the remote JSON-RPC agent registry, if any.
type RegistryConfig struct {
	URL            string `yaml:"url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"` // default: 5
}

// EngineConfig holds workflow execution settings.
type EngineConfig struct {
	CallTimeoutSeconds int `yaml:"call_timeout_seconds"` // per agent invocation (default: 10)
}

// PipelineConfig binds query-pipeline roles to agent names. An empty
// analytics agent disables the optional analytics role.
type PipelineConfig struct {
	ChatAgent      string `yaml:"chat_agent"`
	PlannerAgent   string `yaml:"planner_agent"`
	ExecutorAgent  string `yaml:"executor_agent"`
	AnalyticsAgent string `yaml:"analytics_agent"`
}

// defaults returns a Config populated with sensible default values.
func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Registry: RegistryConfig{
			TimeoutSeconds: 5,
		},
		Engine: EngineConfig{
			CallTimeoutSeconds: 10,
		},
		Pipeline: PipelineConfig{
			ChatAgent:      "chat",
			PlannerAgent:   "planner",
			ExecutorAgent:  "executor",
			AnalyticsAgent: "analytics",
		},
	}
}

// Load reads a YAML configuration file at path and returns a Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Environment overrides for the two deployment-critical settings.
	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.Database.URL = url
	}
	if url := os.Getenv("AGENT_REGISTRY_URL"); url != "" {
		cfg.Registry.URL = url
	}
	return cfg, nil
}

// LoadDefault tries to load "config.yaml" from the current directory.
// If the file does not exist, it returns sensible defaults.
// Any other error (e.g. permission denied, malformed YAML) is returned.
func LoadDefault() (*Config, error) {
	cfg, err := Load("config.yaml")
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg = defaults()
			if url := os.Getenv("DATABASE_URL"); url != "" {
				cfg.Database.URL = url
			}
			if url := os.Getenv("AGENT_REGISTRY_URL"); url != "" {
				cfg.Registry.URL = url
			}
			return cfg, nil
		}
		return nil, err
	}
	return cfg, nil
}
