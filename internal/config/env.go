package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/libovin/cocos-skills/internal/logfields"
)

// envFiles are loaded in order; earlier files and the process environment win.
var envFiles = []string{".env", ".env.local"}

// LoadEnv loads KEY=VALUE pairs from .env and .env.local in the working
// directory. Variables already set are not overwritten and missing files are
// skipped.
func LoadEnv() {
	for _, name := range envFiles {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			slog.Warn("Failed to load env file", logfields.Path(name), logfields.Error(err))
			continue
		}
		slog.Debug("Loaded environment variables", logfields.Path(name))
	}
}
