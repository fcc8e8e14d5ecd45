package identity

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

const (
	// CallbackTimeout bounds how long login waits for the browser.
	CallbackTimeout = 5 * time.Minute

	// Token exchange timeout
	exchangeTimeout = 30 * time.Second

	// Starting port for the loopback callback server
	callbackStartPort = 8085

	// Max port attempts
	callbackMaxPortAttempts = 5
)

// Login runs the authorization-code flow with PKCE. The URL to open is
// written to prompt; the browser is sent back to a loopback server on the
// first free port in 8085-8089.
func Login(ctx context.Context, cfg *oauth2.Config, prompt io.Writer, extra ...oauth2.AuthCodeOption) (*oauth2.Token, error) {
	return login(ctx, cfg, func(authURL string) {
		fmt.Fprintln(prompt, "Open this URL in your browser:")
		fmt.Fprintln(prompt, authURL)
	}, CallbackTimeout, extra...)
}

func login(ctx context.Context, cfg *oauth2.Config, open func(authURL string), timeout time.Duration, extra ...oauth2.AuthCodeOption) (*oauth2.Token, error) {
	port, listener, err := listenLoopback()
	if err != nil {
		return nil, errors.New("could not bind to local port for OAuth callback")
	}
	defer listener.Close()

	conf := *cfg
	conf.RedirectURL = fmt.Sprintf("http://localhost:%d/callback", port)

	verifier := oauth2.GenerateVerifier()
	state := uuid.NewString()
	opts := append([]oauth2.AuthCodeOption{oauth2.AccessTypeOffline, oauth2.S256ChallengeOption(verifier)}, extra...)
	open(conf.AuthCodeURL(state, opts...))

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)
	fail := func(err error) {
		select {
		case errCh <- err:
		default:
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("state") != state {
			http.Error(w, "State mismatch", http.StatusBadRequest)
			fail(errors.New("oauth callback state mismatch"))
			return
		}
		if msg := q.Get("error"); msg != "" {
			http.Error(w, "Authentication failed", http.StatusBadRequest)
			fail(fmt.Errorf("identity provider returned %s: %s", msg, q.Get("error_description")))
			return
		}
		code := q.Get("code")
		if code == "" {
			http.Error(w, "No code in callback", http.StatusBadRequest)
			fail(errors.New("no code in callback"))
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html><body><h1>Authentication successful</h1><p>You may close this window.</p></body></html>")
		select {
		case codeCh <- code:
		default:
		}
	})

	server := &http.Server{Handler: mux}
	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			fail(err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var code string
	select {
	case code = <-codeCh:
	case err := <-errCh:
		return nil, err
	case <-timer.C:
		return nil, errors.New("oauth callback timed out")
	case <-ctx.Done():
		return nil, errors.New("cancelled")
	}

	exchangeCtx, cancel := context.WithTimeout(ctx, exchangeTimeout)
	defer cancel()

	tok, err := conf.Exchange(exchangeCtx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code for token: %w", err)
	}
	return tok, nil
}

// listenLoopback binds the first free callback port.
func listenLoopback() (int, net.Listener, error) {
	for i := 0; i < callbackMaxPortAttempts; i++ {
		port := callbackStartPort + i
		listener, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", port))
		if err == nil {
			return port, listener, nil
		}
	}
	return 0, nil, errors.New("no available port found")
}
