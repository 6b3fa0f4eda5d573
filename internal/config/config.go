package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

type Config struct {
	Server struct {
		Host    string `json:"host"`
		Port    int    `json:"port"`
		Subpath string `json:"subpath"`
	} `json:"server"`
	Coach struct {
		URL            string  `json:"url"`
		Model          string  `json:"model"`
		MaxTokens      int     `json:"max_tokens"`
		Temperature    float64 `json:"temperature"`
		TimeoutSeconds int     `json:"timeout_seconds"`
	} `json:"coach"`
	Memory struct {
		File         string `json:"file"`
		RecentEvents int    `json:"recent_events"`
	} `json:"memory"`
	Log struct {
		Level string `json:"level"`
	} `json:"log"`
}

var (
	once   sync.Once
	cfg    *Config
	cfgErr error
)

// LoadConfig reads config.json from disk (singleton). A missing file is
// not an error: the service runs on defaults with secrets from the
// environment. Defaults are populated before unmarshal, so a field the
// file sets explicitly, zero included, is kept as written.
func LoadConfig(path string) (*Config, error) {
	once.Do(func() {
		c := defaults()
		raw, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				cfgErr = fmt.Errorf("failed to read config file: %w", err)
				return
			}
		} else if err := json.Unmarshal(raw, c); err != nil {
			cfgErr = fmt.Errorf("invalid config format: %w", err)
			return
		}
		cfg = c
	})
	return cfg, cfgErr
}

// GetConfig returns the loaded config (must call LoadConfig first)
func GetConfig() *Config {
	return cfg
}

// ResetConfigForTest resets the singleton state (for testing only)
func ResetConfigForTest() {
	once = sync.Once{}
	cfg = nil
	cfgErr = nil
}

func defaults() *Config {
	c := &Config{}
	fillDefaults(c)
	return c
}

func fillDefaults(c *Config) {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
	if c.Coach.URL == "" {
		c.Coach.URL = "https://api.openai.com/v1/chat/completions"
	}
	if c.Coach.Model == "" {
		c.Coach.Model = "gpt-4o"
	}
	if c.Coach.MaxTokens == 0 {
		c.Coach.MaxTokens = 500
	}
	if c.Coach.Temperature == 0 {
		c.Coach.Temperature = 0.7
	}
	if c.Coach.TimeoutSeconds == 0 {
		c.Coach.TimeoutSeconds = 30
	}
	if c.Memory.File == "" {
		c.Memory.File = "life_memory.json"
	}
	if c.Memory.RecentEvents == 0 {
		c.Memory.RecentEvents = 5
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}
