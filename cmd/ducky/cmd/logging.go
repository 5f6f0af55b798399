package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/nhath/ducky/internal/config"
)

func logLevel(cfg *config.Config) logrus.Level {
	if verbose {
		return logrus.DebugLevel
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// newHeadlessLogger logs to stderr so stdout only carries the summary
func newHeadlessLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logLevel(cfg))
	return log
}

// newFileLogger logs to the state directory; the terminal belongs to the
// TUI. The returned func closes the log files.
func newFileLogger(cfg *config.Config) (*logrus.Logger, func(), error) {
	path, err := config.LogPath()
	if err != nil {
		return nil, nil, fmt.Errorf("resolve log path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	log := logrus.New()
	log.SetOutput(f)
	log.SetLevel(logLevel(cfg))
	log.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})

	closers := []func() error{f.Close}
	if verbose {
		// Bubble Tea's own debug output goes to the same file
		tf, err := tea.LogToFile(path, "tea")
		if err != nil {
			f.Close()
			return nil, nil, fmt.Errorf("open debug log: %w", err)
		}
		closers = append(closers, tf.Close)
	}

	return log, func() {
		for _, c := range closers {
			c()
		}
	}, nil
}
