package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/libovin/cocos-skills/internal/foundation/errors"
)

const (
	registryDir  = ".cocos-http"
	registryFile = "cocos-http.json"
)

// Registry is the editor extension's project table. The extension owns the
// file; this package only reads it.
type Registry struct {
	CurrentProject string                  `json:"currentProject"`
	Projects       map[string]ProjectEntry `json:"projects"`
}

// ProjectEntry is the bridge address recorded for one project.
type ProjectEntry struct {
	ServerURL string `json:"serverUrl"`
}

// RegistryPath is ~/.cocos-http/cocos-http.json.
func RegistryPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.ConfigError("cannot determine home directory").WithCause(err).Build()
	}
	return filepath.Join(home, registryDir, registryFile), nil
}

// LoadRegistry reads the registry at path. A missing file is an empty
// registry.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Registry{}, nil
		}
		return nil, errors.ConfigError("failed to read editor registry").WithCause(err).WithContext("path", path).Build()
	}
	var reg Registry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, errors.ConfigError("failed to parse editor registry").WithCause(err).WithContext("path", path).Build()
	}
	return &reg, nil
}

// ServerURL returns the address for project, falling back to the registry's
// current project.
func (r *Registry) ServerURL(project string) (string, bool) {
	if r == nil {
		return "", false
	}
	for _, name := range []string{project, r.CurrentProject} {
		if name == "" {
			continue
		}
		if e, ok := r.Projects[name]; ok && e.ServerURL != "" {
			return e.ServerURL, true
		}
	}
	return "", false
}

// maxProjectDepth is how many directories (start included) are searched for
// project markers.
const maxProjectDepth = 5

// ProjectName returns the current Cocos project name: the last element of
// COCOS_PROJECT_PATH when set, otherwise the nearest of start and its parents
// that holds a settings/ or assets/ directory.
func ProjectName(start string) string {
	if p := os.Getenv("COCOS_PROJECT_PATH"); p != "" {
		p = strings.TrimRight(strings.ReplaceAll(p, `\`, "/"), "/")
		return p[strings.LastIndex(p, "/")+1:]
	}
	dir := start
	for range maxProjectDepth {
		if isDir(filepath.Join(dir, "settings")) || isDir(filepath.Join(dir, "assets")) {
			return filepath.Base(dir)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

func isDir(p string) bool {
	fi, err := os.Stat(p)
	return err == nil && fi.IsDir()
}
