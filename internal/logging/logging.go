// Package logging builds the application logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// New returns a logger writing logfmt lines to file. An empty file logs to w.
// The returned func closes the file.
func New(level, file string, w io.Writer) (*log.Logger, func(), error) {
	closer := func() {}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, closer, err
	}

	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return nil, closer, fmt.Errorf("create logs dir: %w", err)
		}
		f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, closer, err
		}
		closer = func() { _ = f.Close() }
		w = f
	}
	if w == nil {
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Formatter:       log.LogfmtFormatter,
		ReportTimestamp: true,
		Prefix:          "todoboard",
	})
	return logger, closer, nil
}
