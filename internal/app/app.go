// Package app is the composition root: it assembles the session
// store, API client, auth manager, and terminal program from the
// configuration.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	_ "github.com/lib/pq"

	"eventmgmt/admin-console/internal/api"
	"eventmgmt/admin-console/internal/audit"
	"eventmgmt/admin-console/internal/auth"
	"eventmgmt/admin-console/internal/config"
	"eventmgmt/admin-console/internal/observability"
	"eventmgmt/admin-console/internal/session"
	"eventmgmt/admin-console/internal/ui"
)

type App struct {
	cfg     config.Config
	log     *slog.Logger
	logFile io.Closer
	manager *auth.Manager
	model   ui.Model

	// Backends needing teardown; nil for the file store.
	db    *sql.DB
	redis *session.RedisStore
}

// New wires the application together. startRoute names the view to
// open first; unknown names land on the not-found view.
func New(cfg config.Config, startRoute string) (*App, error) {
	logger, logFile, err := observability.NewFileLogger(cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	app := &App{cfg: cfg, log: logger, logFile: logFile}

	store, err := app.openSessionStore()
	if err != nil {
		_ = logFile.Close()
		return nil, err
	}

	client, err := api.NewClient(api.ClientConfig{
		BaseURL:    cfg.Backend.URL,
		HTTPClient: &http.Client{Timeout: time.Duration(cfg.Backend.Timeout)},
		Logger:     logger,
	})
	if err != nil {
		app.closeStores()
		return nil, fmt.Errorf("create api client: %w", err)
	}

	auditLogger := audit.NewLogger(cfg.AuditLogFile)
	manager, err := auth.NewManager(client, store, auth.ManagerConfig{
		Audit:  auditLogger,
		Logger: logger,
	})
	if err != nil {
		app.closeStores()
		return nil, fmt.Errorf("create auth manager: %w", err)
	}
	client.SetTokenSource(manager)

	// Resolve the stored session before the first frame renders.
	state := manager.Restore()
	logger.Info("session restored", "state", state.String())

	app.manager = manager
	app.model = ui.NewModel(manager, client, ui.ModelConfig{
		Audit:      auditLogger,
		StartRoute: ui.RouteFor(startRoute),
	})
	return app, nil
}

// openSessionStore picks the durable backend: postgres when a
// database URL is configured, then redis, then the state file.
func (a *App) openSessionStore() (session.Store, error) {
	if a.cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", a.cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		if err := db.Ping(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ping database: %w", err)
		}
		store, err := session.NewPostgresStore(db)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("create postgres session store: %w", err)
		}
		a.db = db
		a.log.Info("session store ready", "backend", "postgres")
		return store, nil
	}

	if a.cfg.RedisURL != "" {
		store, err := session.NewRedisStore(a.cfg.RedisURL, "")
		if err != nil {
			return nil, fmt.Errorf("create redis session store: %w", err)
		}
		a.redis = store
		a.log.Info("session store ready", "backend", "redis")
		return store, nil
	}

	store, err := session.NewFileStore(a.cfg.StateFile)
	if err != nil {
		return nil, fmt.Errorf("create file session store: %w", err)
	}
	a.log.Info("session store ready", "backend", "file", "path", a.cfg.StateFile)
	return store, nil
}

func (a *App) closeStores() {
	if a.db != nil {
		_ = a.db.Close()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
}

// programNotifier forwards auth notifications into the running
// bubbletea loop as toast messages.
type programNotifier struct {
	program *tea.Program
}

func (n *programNotifier) Success(title, detail string) {
	n.program.Send(ui.ToastMsg{Title: title, Detail: detail})
}

func (n *programNotifier) Error(title, detail string) {
	n.program.Send(ui.ToastMsg{Title: title, Detail: detail, IsError: true})
}

// Run starts the terminal program and blocks until it exits or the
// context is cancelled.
func (a *App) Run(ctx context.Context) error {
	defer a.closeStores()
	defer a.logFile.Close()

	program := tea.NewProgram(a.model, tea.WithAltScreen())
	a.manager.SetNotifier(&programNotifier{program: program})

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			a.log.Info("shutdown signal received")
			program.Quit()
		case <-done:
		}
	}()

	a.log.Info("console starting", "backend", a.cfg.Backend.URL)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
