package identity

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/oauth2"

	"pmctl/internal/config"
)

// OAuthConfig builds the oauth2 client configuration for the identity provider.
// The CLI is a public client: PKCE replaces the client secret.
func OAuthConfig(id config.Identity) *oauth2.Config {
	return &oauth2.Config{
		ClientID: id.ClientID,
		Endpoint: oauth2.Endpoint{
			AuthURL:   id.AuthURL,
			TokenURL:  id.TokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
		Scopes: id.Scopes,
	}
}

// Provider implements apiclient.TokenProvider over a refreshing token source.
// Refreshed tokens are written back to the store.
type Provider struct {
	src    oauth2.TokenSource
	store  *Store
	logger *slog.Logger

	mu    sync.Mutex
	saved string
}

// NewProvider returns a provider seeded with tok. ctx bounds token refreshes.
func NewProvider(ctx context.Context, cfg *oauth2.Config, store *Store, tok *oauth2.Token, logger *slog.Logger) *Provider {
	return &Provider{
		src:    cfg.TokenSource(ctx, tok),
		store:  store,
		logger: logger,
		saved:  tok.AccessToken,
	}
}

// Token returns the current bearer token, refreshing it first if it expired.
func (p *Provider) Token(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	tok, err := p.src.Token()
	if err != nil {
		return "", fmt.Errorf("refreshing token: %w", err)
	}
	p.persist(tok)
	return BearerToken(tok), nil
}

func (p *Provider) persist(tok *oauth2.Token) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if tok.AccessToken == p.saved {
		return
	}
	if err := p.store.Save(tok); err != nil {
		p.logger.Warn("could not save refreshed token", slog.String("error", err.Error()))
		return
	}
	p.saved = tok.AccessToken
	p.logger.Debug("saved refreshed token", slog.Time("expiry", tok.Expiry))
}
