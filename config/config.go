package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken   string
	DiscordGuildID string

	// Database configuration
	DatabaseURL string

	// Bot configuration
	CommandPrefix string

	// Keep-alive HTTP server
	KeepAlivePort int

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		DiscordToken:   os.Getenv("DISCORD_TOKEN"),
		DiscordGuildID: os.Getenv("DISCORD_GUILD_ID"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		CommandPrefix:  ",",
		KeepAlivePort:  3000,
		Environment:    os.Getenv("ENVIRONMENT"),
	}

	if prefix := os.Getenv("COMMAND_PREFIX"); prefix != "" {
		config.CommandPrefix = prefix
	}
	if port := os.Getenv("PORT"); port != "" {
		parsedPort, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT value %q: %w", port, err)
		}
		config.KeepAlivePort = parsedPort
	}

	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		if config.DiscordGuildID == "" {
			return nil, fmt.Errorf("DISCORD_GUILD_ID is required")
		}
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return config, nil
}
