// Package main is the QuoteVault terminal client.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jsamuelsen/quotevault/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quotevault/internal/platform/config"
	"github.com/jsamuelsen/quotevault/internal/platform/logging"
	"github.com/jsamuelsen/quotevault/internal/theme"
	"github.com/jsamuelsen/quotevault/internal/tui"
)

// Version is injected via ldflags.
var Version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	link := flag.String("open", "", "deep link to open, e.g. quotevault://daily")
	notification := flag.String("notification", "", `data of the tapped notification, e.g. {"screen":"QuoteOfTheDay"}`)
	flag.Parse()

	var data map[string]string
	if *notification != "" {
		if err := json.Unmarshal([]byte(*notification), &data); err != nil {
			return fmt.Errorf("parsing -notification: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// The terminal belongs to the UI, so logs only go to the file.
	logger := logging.NewWithWriter(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  "json",
		Service: "quotevault-tui",
		Version: Version,
		File: logging.FileConfig{
			Enabled:    cfg.TUI.LogFile != "",
			Path:       cfg.TUI.LogFile,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	}, nil)
	logging.SetDefault(logger)

	tokens, err := tui.NewTokenFile(cfg.TUI.TokenFile)
	if err != nil {
		return err
	}

	token, err := tokens.Load()
	if err != nil {
		logger.Warn("ignoring saved session", slog.Any("error", err))
	}

	client, err := acl.NewVaultClient(acl.VaultClientConfig{
		BaseURL:     cfg.Services.Vault.BaseURL,
		ServiceName: cfg.Services.Vault.Name,
		Timeout:     cfg.Client.Timeout,
		Retry:       cfg.Client.Retry,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		Token:       token,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("creating API client: %w", err)
	}

	location := reminderLocation(cfg.TUI.Timezone, logger)

	model := tui.New(tui.Config{
		Context:      ctx,
		API:          client,
		Theme:        theme.Default(),
		Link:         *link,
		Notification: data,
		ShareDir:     cfg.TUI.ShareDir,
		Location:     location,
		Logger:       logger,
		OnToken: func(t string) {
			if err := tokens.Save(t); err != nil {
				logger.Error("saving session", slog.Any("error", err))
			}
		},
	})

	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("running terminal client: %w", err)
	}

	return nil
}

// reminderLocation picks the zone new reminders are scheduled in. An unknown
// zone falls back to UTC on the server.
func reminderLocation(configured string, logger *slog.Logger) string {
	name := configured
	if name == "" {
		name = os.Getenv("TZ")
	}

	if name == "" {
		return ""
	}

	if _, err := time.LoadLocation(name); err != nil {
		logger.Warn("ignoring unknown time zone", slog.String("zone", name), slog.Any("error", err))
		return ""
	}

	return name
}
