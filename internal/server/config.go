package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the web service settings and the default search budgets
// applied when a solve request leaves them out.
type Config struct {
	Addr     string `yaml:"addr" json:"addr"`
	LogLevel string `yaml:"log_level" json:"log_level"`

	// PathMax is the inclusive upper bound of the search range.
	PathMax int `yaml:"path_max" json:"path_max"`
	// GrabMax is the number of variants processed per solver step.
	GrabMax int `yaml:"grab_max" json:"grab_max"`
	// DoneMax caps the total number of recorded states.
	DoneMax int `yaml:"done_max" json:"done_max"`
	// ProgressEvery is the step interval between progress broadcasts.
	ProgressEvery int `yaml:"progress_every" json:"progress_every"`
}

func DefaultConfig() Config {
	return Config{
		Addr:          ":8080",
		LogLevel:      "info",
		PathMax:       256,
		GrabMax:       1000,
		DoneMax:       10000000,
		ProgressEvery: 50,
	}
}

// LoadConfig reads a YAML config file over the defaults. A missing file is
// not an error; the defaults apply as-is.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg.normalized(), nil
}

func (c Config) normalized() Config {
	if c.Addr == "" {
		c.Addr = DefaultConfig().Addr
	}
	if c.PathMax < 1 {
		c.PathMax = DefaultConfig().PathMax
	}
	if c.GrabMax < 1 {
		c.GrabMax = 1
	}
	if c.DoneMax < 1000 {
		c.DoneMax = 1000
	}
	if c.ProgressEvery < 1 {
		c.ProgressEvery = DefaultConfig().ProgressEvery
	}
	return c
}
