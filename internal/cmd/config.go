package main

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the full server configuration. A yaml file provides the base;
// environment variables override individual values so container deploys
// never need a file edit.
type Config struct {
	Server struct {
		Port          string `yaml:"port"`
		InviteBaseURL string `yaml:"invite_base_url"`
	} `yaml:"server"`

	Admin struct {
		ID       string `yaml:"id"`
		Password string `yaml:"password"`
	} `yaml:"admin"`

	Storage struct {
		// Driver selects "memory" or "postgres".
		Driver   string         `yaml:"driver"`
		Database DatabaseConfig `yaml:"database"`
	} `yaml:"storage"`

	NATS struct {
		// URL empty disables the NATS event mirror.
		URL           string `yaml:"url"`
		SubjectPrefix string `yaml:"subject_prefix"`
	} `yaml:"nats"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN builds the postgres connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// loadConfig reads the yaml file when present and applies env overrides.
func loadConfig(path string) (*Config, error) {
	var config Config

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config.Server.Port = getEnv("PORT", orDefault(config.Server.Port, "8000"))
	config.Server.InviteBaseURL = getEnv("INVITE_BASE_URL",
		orDefault(config.Server.InviteBaseURL, "http://localhost:5173/#/join?invite="))

	config.Admin.ID = getEnv("ADMIN_ID", orDefault(config.Admin.ID, "admin"))
	config.Admin.Password = getEnv("ADMIN_PW", orDefault(config.Admin.Password, "admin"))

	config.Storage.Driver = getEnv("STORAGE_DRIVER", orDefault(config.Storage.Driver, "memory"))
	config.Storage.Database.Host = getEnv("DB_HOST", orDefault(config.Storage.Database.Host, "localhost"))
	config.Storage.Database.Port = getEnvAsInt("DB_PORT", orDefaultInt(config.Storage.Database.Port, 5432))
	config.Storage.Database.User = getEnv("DB_USER", orDefault(config.Storage.Database.User, "postgres"))
	config.Storage.Database.Password = getEnv("DB_PASSWORD", orDefault(config.Storage.Database.Password, "postgres"))
	config.Storage.Database.Database = getEnv("DB_NAME", orDefault(config.Storage.Database.Database, "auction"))
	config.Storage.Database.SSLMode = getEnv("DB_SSLMODE", orDefault(config.Storage.Database.SSLMode, "disable"))

	config.NATS.URL = getEnv("NATS_URL", config.NATS.URL)
	config.NATS.SubjectPrefix = getEnv("NATS_SUBJECT_PREFIX",
		orDefault(config.NATS.SubjectPrefix, "auction.events"))

	return &config, nil
}

func orDefault(value, defaultValue string) string {
	if value != "" {
		return value
	}
	return defaultValue
}

func orDefaultInt(value, defaultValue int) int {
	if value != 0 {
		return value
	}
	return defaultValue
}
