// Package logging configures the application log file. The TUI owns
// stdout, so logs go to a file next to the database.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// New creates a JSON-formatted logger writing to avo.log in the given
// directory. If the file cannot be opened the logger discards output
// rather than fighting the TUI for the terminal.
func New(dir, level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	file, err := os.OpenFile(filepath.Join(dir, "avo.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		logger.SetOutput(io.Discard)
		return logger
	}
	logger.SetOutput(file)
	return logger
}

// Nop returns a logger that discards everything. Tests use this.
func Nop() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
