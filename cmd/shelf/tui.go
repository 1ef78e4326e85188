package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/shelf/internal/config"
	"github.com/alexisbeaulieu97/shelf/internal/logger"
	"github.com/alexisbeaulieu97/shelf/internal/prefs"
	"github.com/alexisbeaulieu97/shelf/internal/tui/admin"
)

func runTUI(cmd *cobra.Command, app *appContext) error {
	logPath, err := config.DefaultLogPath()
	if err != nil {
		return newCommandError("start admin", "determining log path", err, "Ensure your HOME directory is set correctly.")
	}
	prefsPath, err := config.DefaultPrefsPath()
	if err != nil {
		return newCommandError("start admin", "determining preferences path", err, "Ensure your HOME directory is set correctly.")
	}

	logFile, err := openLogFile(logPath)
	if err != nil {
		return newCommandError("start admin", "opening log file", err, "Check permissions on ~/.shelf.")
	}
	defer logFile.Close()

	store, err := prefs.Open(prefsPath)
	if err != nil {
		return newCommandError("start admin", "loading preferences", err, "Delete the preferences file to reset it.")
	}

	// The terminal belongs to the program, so logs go to the file only.
	debug := app.cfg.Debug || store.Debug()
	log, err := logger.New(logger.Options{
		Level:   app.cfg.LogLevel,
		Writer:  logFile,
		Verbose: debug,
	})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	log = log.WithFields(map[string]any{"component": "admin"})

	client := app.client(log)
	model := admin.NewModel(admin.Options{
		Backend: client,
		Prefs:   store,
		Logger:  log,
		BaseURL: client.BaseURL(),
		Debug:   debug,
		Context: cmd.Context(),
	})

	log.WithFields(map[string]any{"api_url": client.BaseURL(), "debug": debug}).Info("launching admin")

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && cmd.Context().Err() != nil {
			return nil
		}
		return fmt.Errorf("admin interface error: %w", err)
	}
	return nil
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
