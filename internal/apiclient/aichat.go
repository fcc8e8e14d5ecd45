package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"pmctl/internal/service"
)

// SendAIMessage posts message to the assistant webhook and returns its answer.
// The session token travels in the body, not in an Authorization header, and
// the call does not wait on the readiness gate. Without a token nothing is sent.
func (c *Client) SendAIMessage(ctx context.Context, message string) (string, error) {
	provider := c.tokens.Provider()
	if provider == nil {
		return "", ErrNoTokenProvider
	}
	token, err := provider.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoToken, err)
	}
	if token == "" {
		return "", ErrNoToken
	}

	data, err := json.Marshal(service.ChatRequest{Token: token, Message: message})
	if err != nil {
		return "", fmt.Errorf("encoding chat request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.aiServiceURL, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("creating chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("ai chat failed", slog.Int("status", resp.StatusCode))
		return "", &APIError{
			Type:    ErrorGeneric,
			Status:  resp.StatusCode,
			Message: "AI Chat API error: " + resp.Status,
			Body:    string(body),
		}
	}

	var out service.ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding chat response: %w", err)
	}
	return out.Output, nil
}
