package apiclient

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendAIMessage_RequiresProvider(t *testing.T) {
	srv, rec := newStub(t, http.StatusOK, `{"output":"hi"}`)
	c := newTestClient(srv, nil)

	_, err := c.SendAIMessage(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrNoTokenProvider)
	assert.Equal(t, int32(0), rec.hits.Load())
}

func TestSendAIMessage_RequiresToken(t *testing.T) {
	srv, rec := newStub(t, http.StatusOK, `{"output":"hi"}`)
	bridge := NewBridge()
	c := newTestClient(srv, bridge)

	bridge.Set(staticToken(""))
	_, err := c.SendAIMessage(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrNoToken)

	boom := errors.New("refresh failed")
	bridge.Set(TokenProviderFunc(func(context.Context) (string, error) { return "", boom }))
	_, err = c.SendAIMessage(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrNoToken)
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, int32(0), rec.hits.Load())
}

func TestSendAIMessage_PostsTokenInBody(t *testing.T) {
	srv, rec := newStub(t, http.StatusOK, `{"output":"You have 3 open tasks."}`)
	bridge := NewBridge()
	bridge.Set(staticToken("jwt-abc"))
	c := newTestClient(srv, bridge)

	answer, err := c.SendAIMessage(context.Background(), "what is on my plate?")
	require.NoError(t, err)
	assert.Equal(t, "You have 3 open tasks.", answer)

	got := rec.get()
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/chat", got.uri)
	assert.Empty(t, got.header.Get("Authorization"))
	assert.Equal(t, "application/json", got.header.Get("Content-Type"))
	assert.JSONEq(t, `{"token":"jwt-abc","message":"what is on my plate?"}`, string(got.body))
}

func TestSendAIMessage_DoesNotWaitForReadiness(t *testing.T) {
	srv, rec := newStub(t, http.StatusOK, `{"output":"ok"}`)
	bridge := NewBridge()
	bridge.Set(staticToken("jwt"))
	c := New(Options{
		AIServiceURL: srv.URL + "/chat",
		HTTPClient:   srv.Client(),
		Gate:         NewGate(),
		Tokens:       bridge,
		ReadyTimeout: 1 << 62,
	})

	_, err := c.SendAIMessage(context.Background(), "ping")
	require.NoError(t, err)
	assert.Equal(t, int32(1), rec.hits.Load())
}

func TestSendAIMessage_HTTPError(t *testing.T) {
	srv, _ := newStub(t, http.StatusInternalServerError, `oops`)
	bridge := NewBridge()
	bridge.Set(staticToken("jwt"))
	c := newTestClient(srv, bridge)

	_, err := c.SendAIMessage(context.Background(), "ping")
	require.Error(t, err)
	assert.Equal(t, "AI Chat API error: 500 Internal Server Error", err.Error())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, ErrorGeneric, apiErr.Type)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
}
