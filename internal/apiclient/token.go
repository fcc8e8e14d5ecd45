package apiclient

import (
	"context"
	"sync"
)

// TokenProvider supplies the bearer token for outgoing requests.
// An empty token with a nil error means no token is available (signed out).
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// TokenProviderFunc adapts a function to TokenProvider.
type TokenProviderFunc func(ctx context.Context) (string, error)

// Token implements TokenProvider.
func (f TokenProviderFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}

// Bridge holds the currently installed token provider.
// At most one provider is active; Set replaces it and Set(nil) clears it.
type Bridge struct {
	mu       sync.RWMutex
	provider TokenProvider
}

// NewBridge returns a bridge with no provider installed.
func NewBridge() *Bridge {
	return &Bridge{}
}

// Set installs p, replacing any previous provider.
func (b *Bridge) Set(p TokenProvider) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.provider = p
}

// Provider returns the installed provider, or nil.
func (b *Bridge) Provider() TokenProvider {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.provider
}

// Token asks the installed provider for a fresh token.
// With no provider installed it returns "", nil.
func (b *Bridge) Token(ctx context.Context) (string, error) {
	p := b.Provider()
	if p == nil {
		return "", nil
	}
	return p.Token(ctx)
}
