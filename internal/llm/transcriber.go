package llm

import (
	"context"
	"errors"
	"io"

	"github.com/sashabaranov/go-openai"

	"github.com/nyaya-legal/nyaya/internal/config"
)

// ErrNilTranscriberConfig is returned when nil transcriber config is provided.
var ErrNilTranscriberConfig = errors.New("transcriber config is nil")

const audioService = "Transcription API"

// Audio is an uploaded recording.
type Audio struct {
	// Name is the original file name; providers use its extension to detect the format.
	Name   string
	Reader io.Reader
	// Language is an ISO-639-1 hint such as "hi" or "en". Optional.
	Language string
}

// Transcriber turns speech into text via an OpenAI-compatible audio API.
type Transcriber struct {
	client *openai.Client
	model  string
}

// NewTranscriber creates a Transcriber from a ProviderConfig. The model
// defaults to whisper-1.
func NewTranscriber(cfg *config.ProviderConfig) (*Transcriber, error) {
	if cfg == nil {
		return nil, ErrNilTranscriberConfig
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("transcriber base_url is required")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("transcriber api_key is required")
	}
	model := cfg.Model
	if model == "" {
		model = openai.Whisper1
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL

	return &Transcriber{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
	}, nil
}

// Transcribe returns the text spoken in audio, in the spoken language.
func (t *Transcriber) Transcribe(ctx context.Context, audio Audio) (string, error) {
	resp, err := t.client.CreateTranscription(ctx, t.request(audio))
	if err != nil {
		return "", asUpstream(audioService, err)
	}
	return resp.Text, nil
}

// Translate returns an English translation of the speech in audio. The
// language hint is not sent; the translation endpoint does not take one.
func (t *Transcriber) Translate(ctx context.Context, audio Audio) (string, error) {
	audio.Language = ""
	resp, err := t.client.CreateTranslation(ctx, t.request(audio))
	if err != nil {
		return "", asUpstream(audioService, err)
	}
	return resp.Text, nil
}

func (t *Transcriber) request(audio Audio) openai.AudioRequest {
	return openai.AudioRequest{
		Model:    t.model,
		FilePath: audio.Name,
		Reader:   audio.Reader,
		Language: audio.Language,
		Format:   openai.AudioResponseFormatJSON,
	}
}
