package config

import (
	"log/slog"
	"os"

	"github.com/libovin/cocos-skills/internal/editor"
	"github.com/libovin/cocos-skills/internal/logfields"
)

// Sources a server URL can come from.
const (
	SourceFlag     = "flag"
	SourceEnv      = "env"
	SourceConfig   = "config"
	SourceRegistry = "registry"
	SourceDefault  = "default"
)

// ResolveServerURL picks the bridge address: flagValue, then
// COCOS_SERVER_URL, then the tool config, then the editor registry entry for
// the current project (or the registry's current project), then the default.
// It returns the address and where it came from.
func ResolveServerURL(flagValue string, cfg *Config) (string, string) {
	if flagValue != "" {
		return flagValue, SourceFlag
	}
	if v := os.Getenv("COCOS_SERVER_URL"); v != "" {
		return v, SourceEnv
	}
	if cfg != nil && cfg.ServerURL != "" {
		return cfg.ServerURL, SourceConfig
	}
	if u, ok := registryServerURL(); ok {
		return u, SourceRegistry
	}
	return editor.DefaultServerURL, SourceDefault
}

func registryServerURL() (string, bool) {
	path, err := RegistryPath()
	if err != nil {
		return "", false
	}
	reg, err := LoadRegistry(path)
	if err != nil {
		slog.Debug("Ignoring unreadable editor registry", logfields.Path(path), logfields.Error(err))
		return "", false
	}
	cwd, err := os.Getwd()
	if err != nil {
		cwd = ""
	}
	return reg.ServerURL(ProjectName(cwd))
}
