package metrics

import (
	"path/filepath"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/profilekit/internal/foundation/errors"
)

// WriteTextfile writes every metric gathered from reg to path in the
// Prometheus text format. The file is replaced atomically.
func WriteTextfile(reg prom.Gatherer, path string) error {
	if err := prom.WriteToTextfile(filepath.Clean(path), reg); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write metrics textfile").
			WithContext("path", path).
			Build()
	}
	return nil
}
