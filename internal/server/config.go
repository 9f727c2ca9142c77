package server

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/iwvelando/household-budget/internal/config"
	"github.com/iwvelando/household-budget/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Config holds the settings for the serve command.
type Config struct {
	Address       string               `yaml:"address"`
	MaxUploadSize string               `yaml:"maxUploadSize"`
	Logging       config.LoggingConfig `yaml:"logging"`

	uploadSizeBytes int64
}

func defaultConfig() *Config {
	cfg := &Config{Address: constants.DefaultServerAddress}
	cfg.SetUploadSizeBytes(constants.DefaultMaxUploadSizeBytes)
	return cfg
}

// LoadConfig reads server settings from a YAML file. An empty path or a
// missing file leaves every setting at its default.
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return cfg, nil
	case err != nil:
		return nil, fmt.Errorf("read server config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse server config %s: %w", path, err)
	}

	if strings.TrimSpace(cfg.Address) == "" {
		cfg.Address = constants.DefaultServerAddress
	}
	size, err := ParseSize(cfg.MaxUploadSize)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		size = constants.DefaultMaxUploadSizeBytes
	}
	cfg.uploadSizeBytes = size
	return cfg, nil
}

// UploadSizeBytes is the largest request body the API accepts.
func (c *Config) UploadSizeBytes() int64 {
	return c.uploadSizeBytes
}

// SetUploadSizeBytes replaces the upload limit and its readable form.
// Non-positive sizes are ignored.
func (c *Config) SetUploadSizeBytes(size int64) {
	if size <= 0 {
		return
	}
	c.uploadSizeBytes = size
	c.MaxUploadSize = humanize.IBytes(uint64(size))
}

// ParseSize converts a human-friendly byte string into bytes. Decimal units
// (e.g., "2MB", "256K") are powers of 1000 and binary units (e.g., "256KiB",
// "2MiB") are powers of 1024. An empty string yields the default size.
func ParseSize(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return constants.DefaultMaxUploadSizeBytes, nil
	}

	size, err := humanize.ParseBytes(trimmed)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", value, err)
	}
	if size > math.MaxInt64 {
		return 0, fmt.Errorf("size overflow for value %s", value)
	}
	return int64(size), nil
}
