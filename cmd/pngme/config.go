package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

const (
	envConfig     = "PNGME_CONFIG"
	envPassphrase = "PNGME_PASSPHRASE"
)

// Config represents the pngme configuration file
// (~/.config/pngme/config.yaml).
type Config struct {
	// ChunkType is used by decode and remove when no type argument is given.
	ChunkType string `yaml:"chunk_type"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	ServerAddress  string `yaml:"server_address"`
	MaxUploadBytes *int64 `yaml:"max_upload_bytes"`
}

// configPath resolves the config file location: the --config flag, then
// $PNGME_CONFIG, then the user config directory.
func configPath(flagPath string) string {
	if p := strings.TrimSpace(flagPath); p != "" {
		return p
	}
	if p := strings.TrimSpace(os.Getenv(envConfig)); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "pngme", "config.yaml")
}

// loadConfig reads the config file. A missing file is not an error; a
// malformed one returns a zero Config together with the parse error.
func loadConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// applyLoggingConfig applies config file defaults to the logging flags that
// were not set on the command line.
func applyLoggingConfig(c *cli.Command, cfg Config, g *globalOptions) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		g.logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		g.logFormat = cfg.LogFormat
	}
}

// applyServeConfig applies config file defaults to serve command variables.
func applyServeConfig(c *cli.Command, cfg Config, addr *string, maxBody *int64) {
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
	if cfg.MaxUploadBytes != nil && *cfg.MaxUploadBytes > 0 && !c.IsSet("max-body") {
		*maxBody = *cfg.MaxUploadBytes
	}
}
