// Package main is the entry point for the pmctl CLI.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"pmctl/internal/apiclient"
	"pmctl/internal/cli"
	"pmctl/internal/commands"
	"pmctl/internal/config"
	"pmctl/internal/identity"
	"pmctl/internal/logging"
	"pmctl/internal/service"
)

// session is the API client bound to a background identity session.
type session struct {
	*apiclient.Client
	identity *identity.Session
}

func (s *session) Close() error {
	s.identity.Close()
	return nil
}

func newService(ctx context.Context, cfg *config.Config) (service.Service, error) {
	level := logging.ParseLevel(cfg.Settings.LogLevel)
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := logging.New(os.Stderr, level)

	gate := apiclient.NewGate()
	tokens := apiclient.NewBridge()
	store := identity.NewStore(cfg.TokenPath())

	sess := identity.NewSession(gate, tokens, store, identity.OAuthConfig(cfg.Settings.Identity), logger)
	sess.Start(ctx)

	client := apiclient.New(apiclient.Options{
		BaseURL:        cfg.Settings.APIBaseURL,
		UserServiceURL: cfg.Settings.UserServiceURL,
		AIServiceURL:   cfg.Settings.AIServiceURL,
		Gate:           gate,
		Tokens:         tokens,
		ReadyTimeout:   cfg.Settings.ReadyTimeout,
		RequestTimeout: cfg.Settings.RequestTimeout,
		Logger:         logger,
	})
	return &session{Client: client, identity: sess}, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, newService)
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}
