package identity

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/oauth2"

	"pmctl/internal/apiclient"
)

// Session loads the stored sign-in state and publishes it to the API client.
type Session struct {
	gate   *apiclient.Gate
	tokens *apiclient.Bridge
	store  *Store
	oauth  *oauth2.Config
	logger *slog.Logger

	wg sync.WaitGroup
}

func NewSession(gate *apiclient.Gate, tokens *apiclient.Bridge, store *Store, oauth *oauth2.Config, logger *slog.Logger) *Session {
	return &Session{
		gate:   gate,
		tokens: tokens,
		store:  store,
		oauth:  oauth,
		logger: logger,
	}
}

// Start loads the stored token in the background. Once loading finishes a
// provider is installed (signed in) or left unset (signed out) and the gate
// is marked ready either way.
func (s *Session) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.gate.SetReady(true)

		tok, err := s.store.Load()
		switch {
		case errors.Is(err, ErrNotLoggedIn):
			s.logger.Debug("no stored session")
			return
		case err != nil:
			s.logger.Warn("ignoring unreadable token", slog.String("path", s.store.Path()), slog.String("error", err.Error()))
			return
		}
		s.tokens.Set(NewProvider(ctx, s.oauth, s.store, tok, s.logger))
		s.logger.Debug("session loaded", slog.Time("expiry", tok.Expiry))
	}()
}

// Close waits for Start to finish and removes the provider.
func (s *Session) Close() {
	s.wg.Wait()
	s.tokens.Set(nil)
}
