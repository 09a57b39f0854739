package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/libovin/cocos-skills/internal/editor"
	"github.com/libovin/cocos-skills/internal/foundation/errors"
	"github.com/libovin/cocos-skills/internal/prefab"
)

// DefaultFileName is the tool config looked up in the working directory.
const DefaultFileName = "cocos-skills.yaml"

// Config is the tool configuration.
type Config struct {
	ServerURL   string        `yaml:"server_url,omitempty"`
	Timeout     time.Duration `yaml:"timeout,omitempty"`
	Validate    bool          `yaml:"validate"`
	Layer       int           `yaml:"layer,omitempty"`
	HistoryDB   string        `yaml:"history_db"`
	MetricsFile string        `yaml:"metrics_file,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Timeout:   editor.DefaultTimeout,
		Validate:  true,
		Layer:     prefab.LayerUI,
		HistoryDB: filepath.Join("~", registryDir, "history.db"),
	}
}

// Load reads the tool config at path, or DefaultFileName when path is empty.
// A missing file yields the defaults; an explicitly named missing file is a
// config error. Environment variables in the file are expanded.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
	case os.IsNotExist(err) && !explicit:
		return cfg.finish()
	case os.IsNotExist(err):
		return nil, errors.ConfigError("configuration file not found").WithContext("path", path).Build()
	default:
		return nil, errors.ConfigError("failed to read configuration file").WithCause(err).WithContext("path", path).Build()
	}

	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return nil, errors.ConfigError("failed to parse configuration file").WithCause(err).WithContext("path", path).Build()
	}
	return cfg.finish()
}

func (c *Config) finish() (*Config, error) {
	if c.Timeout <= 0 {
		return nil, errors.ConfigError("timeout must be positive").WithContext("timeout", c.Timeout.String()).Build()
	}
	if c.Layer == 0 {
		c.Layer = prefab.LayerUI
	}
	c.HistoryDB = expandHome(c.HistoryDB)
	c.MetricsFile = expandHome(c.MetricsFile)
	return c, nil
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
