// admin-console is a terminal client for the event-management
// backend: login, events and users administration, and a counts
// dashboard, backed by a durable local session.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"eventmgmt/admin-console/internal/app"
	"eventmgmt/admin-console/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath string
	var backendURL string
	var stateFile string
	var openRoute string

	flagSet := pflag.NewFlagSet("admin-console", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to the YAML config file (default: ./admin-console.yaml if present)")
	flagSet.StringVar(&backendURL, "backend-url", "", "backend base URL (overrides config and BACKEND_URL)")
	flagSet.StringVar(&stateFile, "state-file", "", "session state file (overrides config and SESSION_STATE_FILE)")
	flagSet.StringVar(&openRoute, "open", "", "view to open first: dashboard, events, users, analytics, settings")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		flagSet.PrintDefaults()
		return nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if backendURL != "" {
		cfg.Backend.URL = backendURL
	}
	if stateFile != "" {
		cfg.StateFile = stateFile
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(cfg, openRoute)
	if err != nil {
		return fmt.Errorf("create app: %w", err)
	}
	return a.Run(ctx)
}
