package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyaya-legal/nyaya/internal/config"
	"github.com/nyaya-legal/nyaya/internal/upstream"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(&config.ProviderConfig{BaseURL: srv.URL + "/v1", APIKey: "test-key", Model: "test-model"})
	require.NoError(t, err)
	return c
}

func TestNewClient_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.ProviderConfig
	}{
		{name: "nil", cfg: nil},
		{name: "no base url", cfg: &config.ProviderConfig{APIKey: "k", Model: "m"}},
		{name: "no api key", cfg: &config.ProviderConfig{BaseURL: "http://x", Model: "m"}},
		{name: "no model", cfg: &config.ProviderConfig{BaseURL: "http://x", APIKey: "k"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.cfg)
			require.Error(t, err)
		})
	}

	_, err := NewClient(nil)
	assert.Equal(t, ErrNilConfig, err)
}

func TestClient_Complete(t *testing.T) {
	var got struct {
		Model       string  `json:"model"`
		Temperature float32 `json:"temperature"`
		MaxTokens   int     `json:"max_tokens"`
		Messages    []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"## Applicable IPC Sections"}}]}`)
	})

	out, err := c.Complete(context.Background(), Request{
		System:      "You are a legal assistant.",
		User:        "Scenario: theft",
		Temperature: 0.7,
		MaxTokens:   1500,
	})
	require.NoError(t, err)
	assert.Equal(t, "## Applicable IPC Sections", out)

	assert.Equal(t, "test-model", got.Model)
	assert.InDelta(t, 0.7, got.Temperature, 0.001)
	assert.Equal(t, 1500, got.MaxTokens)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "Scenario: theft", got.Messages[1].Content)
}

func TestClient_CompleteWithoutSystemPrompt(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.NotContains(t, string(body), `"system"`)
		io.WriteString(w, `{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`)
	})

	out, err := c.Complete(context.Background(), Request{User: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
}

func TestClient_CompleteNoChoices(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"id":"1","choices":[]}`)
	})

	_, err := c.Complete(context.Background(), Request{User: "hi"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyResponse)
	assert.True(t, upstream.Is(err))
}

func TestClient_CompleteHTTPError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error":{"message":"invalid api key","type":"invalid_request_error"}}`)
	})

	_, err := c.Complete(context.Background(), Request{User: "hi"})
	require.Error(t, err)

	var upErr *upstream.Error
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusUnauthorized, upErr.StatusCode)
	assert.True(t, strings.Contains(err.Error(), "invalid api key"))
}

func TestClient_CompleteTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewClient(&config.ProviderConfig{BaseURL: url, APIKey: "k", Model: "m"})
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), Request{User: "hi"})
	require.Error(t, err)
	assert.True(t, upstream.Is(err))
}

func TestNewClient_KeepsModel(t *testing.T) {
	c, err := NewClient(&config.ProviderConfig{BaseURL: "http://x", APIKey: "k", Model: "llama"})
	require.NoError(t, err)
	assert.Equal(t, "llama", c.model)
}
