package llm

import (
	"context"
	"errors"

	"github.com/sashabaranov/go-openai"

	"github.com/nyaya-legal/nyaya/internal/config"
	"github.com/nyaya-legal/nyaya/internal/upstream"
)

// ErrNilConfig is returned when a nil config is provided.
var ErrNilConfig = errors.New("llm config is nil")

// ErrEmptyResponse is returned when the LLM returns no choices or an empty message.
var ErrEmptyResponse = errors.New("unexpected response format: no choices returned")

const chatService = "Together API"

// Request is a single-turn completion request.
type Request struct {
	System      string
	User        string
	Temperature float32
	MaxTokens   int
}

// Client wraps the OpenAI client for chat completions against any
// OpenAI-compatible endpoint (Together AI by default).
type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates a new LLM client from a ProviderConfig.
func NewClient(cfg *config.ProviderConfig) (*Client, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("llm base_url is required")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("llm api_key is required")
	}
	if cfg.Model == "" {
		return nil, errors.New("llm model is required")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL

	return &Client{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}, nil
}

// Complete sends a system and a user message and returns the assistant response text.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	messages := []openai.ChatCompletionMessage{}
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.User,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", asUpstream(chatService, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", upstream.Wrap(chatService, ErrEmptyResponse)
	}
	return resp.Choices[0].Message.Content, nil
}

// asUpstream converts go-openai errors into upstream errors, keeping the
// status code and the provider's message.
func asUpstream(service string, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &upstream.Error{Service: service, StatusCode: apiErr.HTTPStatusCode, Body: apiErr.Message, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &upstream.Error{Service: service, StatusCode: reqErr.HTTPStatusCode, Body: string(reqErr.Body), Err: err}
	}
	return upstream.Wrap(service, err)
}
