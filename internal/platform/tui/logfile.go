package tui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/kuzu-maze/internal/storage"
)

// NewFileLogger returns a logger that appends to path. A local game owns the
// terminal in alt-screen mode, so anything it logs must go to a file.
// The caller closes the returned file when the program exits.
func NewFileLogger(path, prefix string) (*log.Logger, *os.File, error) {
	expanded, err := storage.ExpandPath(path)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o700); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(expanded, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	return logger, f, nil
}
