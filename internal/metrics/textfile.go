package metrics

import (
	"os"
	"path/filepath"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/libovin/cocos-skills/internal/foundation/errors"
)

// WriteTextfile writes every metric gathered from reg to path in the text
// exposition format. The write is atomic (temp file + rename).
func WriteTextfile(path string, reg *prom.Registry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create metrics directory").
			WithContext("path", path).
			Build()
	}
	if err := prom.WriteToTextfile(path, reg); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write metrics textfile").
			WithContext("path", path).
			Build()
	}
	return nil
}
