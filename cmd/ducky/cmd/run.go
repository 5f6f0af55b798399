package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/nhath/ducky/internal/config"
	"github.com/nhath/ducky/internal/db"
	"github.com/nhath/ducky/internal/history"
	"github.com/nhath/ducky/internal/ui"
)

// validateDatabasePath rejects paths the engines would silently create
func validateDatabasePath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: no such database file", path)
		}
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}

// openStartup validates and opens the database given on the command line
func openStartup(ctx context.Context, gw db.Gateway, path string) (db.Connection, error) {
	if err := validateDatabasePath(path); err != nil {
		return db.Connection{}, withCode(ExitOpenFailed, err)
	}
	conn, err := gw.OpenConnection(ctx, db.ConnectSpec{Path: path})
	if err != nil {
		return db.Connection{}, withCode(ExitOpenFailed, fmt.Errorf("open %s: %w", path, err))
	}
	return conn, nil
}

func runHeadless(ctx context.Context, log *logrus.Logger, path string, out io.Writer) error {
	mgr := db.NewManager()
	defer mgr.Close()
	return headlessCheck(ctx, mgr, log, path, out)
}

// headlessCheck opens path, prints a summary and closes it again
func headlessCheck(ctx context.Context, gw db.Gateway, log *logrus.Logger, path string, out io.Writer) error {
	conn, err := openStartup(ctx, gw, path)
	if err != nil {
		log.WithError(err).WithField("path", path).Debug("headless check failed")
		return err
	}
	defer gw.CloseConnection(ctx, conn.ID)

	info, err := gw.Describe(ctx, conn.ID)
	if err != nil {
		return withCode(ExitOpenFailed, fmt.Errorf("describe %s: %w", path, err))
	}

	fmt.Fprintf(out, "Database: %s\n", info.Connection.Path)
	fmt.Fprintf(out, "Engine:   %s %s\n", info.Connection.Engine, info.Version)
	fmt.Fprintf(out, "Tables:   %d\n", len(info.Tables))
	for _, t := range info.Tables {
		fmt.Fprintf(out, "  %s (%d columns)\n", t.Name, t.Columns)
	}
	log.WithFields(logrus.Fields{"path": path, "tables": len(info.Tables)}).Debug("headless check ok")
	return nil
}

func runTUI(ctx context.Context, cfg *config.Config, path string) error {
	log, closeLog, err := newFileLogger(cfg)
	if err != nil {
		return withCode(ExitRuntime, err)
	}
	defer closeLog()

	mgr := db.NewManager()
	defer mgr.Close()

	if path != "" {
		conn, err := openStartup(ctx, mgr, path)
		if err != nil {
			log.WithError(err).Error("startup database")
			return err
		}
		log.WithFields(logrus.Fields{"id": conn.ID, "path": conn.Path}).Info("startup database opened")
	}

	// The action log is optional; the UI runs without it
	store, err := history.NewStore()
	if err != nil {
		log.WithError(err).Warn("action log disabled")
		store = nil
	} else {
		defer store.Close()
	}

	model := ui.New(ctx, ui.Options{
		Gateway: mgr,
		History: store,
		Config:  cfg,
		Logger:  log,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return withCode(ExitRuntime, fmt.Errorf("running TUI: %w", err))
	}
	return nil
}
