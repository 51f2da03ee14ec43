package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/mcdev12/meshiroyale/go/internal/rooms"
)

// Config is the optional YAML product configuration.
type Config struct {
	Rooms  rooms.Config `yaml:"rooms"`
	Invite struct {
		// BaseURL is the public origin invite links point at.
		BaseURL string `yaml:"base_url"`
	} `yaml:"invite"`
}

func defaultConfig() Config {
	cfg := Config{Rooms: rooms.DefaultConfig()}
	cfg.Invite.BaseURL = "http://localhost:3000"
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// loadConfig reads path on top of the defaults. A missing file keeps the
// defaults.
func loadConfig(path string) (Config, error) {
	config := defaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn().Str("path", path).Msg("config file not found, using defaults")
		return config, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return config, nil
}
