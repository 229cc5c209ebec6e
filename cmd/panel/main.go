// Command panel runs the admin panel in the terminal.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"

	"github.com/nhle/admin-panel/internal/app"
	"github.com/nhle/admin-panel/internal/i18n"
	"github.com/nhle/admin-panel/internal/model"
	"github.com/nhle/admin-panel/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "panel: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", model.DefaultConfigPath(), "configuration file")
		dbPath     = flag.String("db", "", "SQLite database shared with other panel instances")
		authURL    = flag.String("auth-url", "", "base URL of the auth backend")
		lang       = flag.String("lang", "", "display language (en, id)")
		logPath    = flag.String("log", "", "write debug logs to this file")
	)
	flag.Parse()

	cfg, err := model.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	if *dbPath != "" {
		cfg.Storage.DBPath = *dbPath
	}
	if *authURL != "" {
		cfg.Auth.BaseURL = *authURL
	}
	if *lang != "" {
		cfg.Display.Language = *lang
	}

	// The terminal belongs to the UI; logs go to a file or nowhere.
	if *logPath != "" {
		f, err := tea.LogToFile(*logPath, "panel")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Storage.DBPath), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	s, err := store.NewSQLiteStore(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()

	catalog, err := i18n.New()
	if err != nil {
		return fmt.Errorf("load translations: %w", err)
	}

	m := app.New(s, app.Options{
		Config:     cfg,
		ConfigPath: *configPath,
		Catalog:    catalog,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
