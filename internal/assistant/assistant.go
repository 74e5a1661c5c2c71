// Package assistant is the service boundary between the HTTP/CLI surfaces and
// the upstream clients. It validates input, checks that the needed upstream is
// configured, and makes exactly one upstream call per operation.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nyaya-legal/nyaya/internal/caselaw"
	"github.com/nyaya-legal/nyaya/internal/config"
	"github.com/nyaya-legal/nyaya/internal/kanoon"
	"github.com/nyaya-legal/nyaya/internal/llm"
	"github.com/nyaya-legal/nyaya/internal/prompts"
)

var (
	// ErrEmptyQuery is returned for a blank query.
	ErrEmptyQuery = errors.New("query is required")
	// ErrNoAudio is returned when no audio was supplied.
	ErrNoAudio = errors.New("audio file is required")
	// ErrNotChatFeature is returned when Ask is called with a feature that
	// does not produce free text.
	ErrNotChatFeature = errors.New("feature does not produce a text response")
)

// MissingCredentialError reports an upstream whose API key is not configured.
type MissingCredentialError struct {
	Service string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("Missing %s API key", e.Service)
}

// Completer sends one prompt to a chat-completion model.
type Completer interface {
	Complete(ctx context.Context, req llm.Request) (string, error)
}

// Transcriber converts speech to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio llm.Audio) (string, error)
	Translate(ctx context.Context, audio llm.Audio) (string, error)
}

// Searcher queries the case-law database.
type Searcher interface {
	Search(ctx context.Context, query string, page int) ([]kanoon.Document, error)
}

// Deps are the collaborators of a Service. A nil upstream means its API key
// is not configured; operations that need it fail with MissingCredentialError.
type Deps struct {
	Completer   Completer
	Transcriber Transcriber
	Searcher    Searcher
	Catalog     prompts.Catalog
}

// Transcript is the result of Transcribe.
type Transcript struct {
	Text       string `json:"text"`
	Language   string `json:"language,omitempty"`
	Translated bool   `json:"translated"`
}

// Service implements the legal assistant operations.
type Service struct {
	completer   Completer
	transcriber Transcriber
	searcher    Searcher
	catalog     prompts.Catalog
}

// New creates a Service. A nil catalog falls back to the built-in prompts.
func New(deps Deps) *Service {
	catalog := deps.Catalog
	if catalog == nil {
		catalog = prompts.Default()
	}
	return &Service{
		completer:   deps.Completer,
		transcriber: deps.Transcriber,
		searcher:    deps.Searcher,
		catalog:     catalog,
	}
}

// FromConfig builds the upstream clients for every service whose API key is
// set and returns a Service over them.
func FromConfig(cfg *config.Config, catalog prompts.Catalog) (*Service, error) {
	if cfg == nil {
		return nil, config.ErrNilConfig
	}
	deps := Deps{Catalog: catalog}

	if cfg.LLM.APIKey != "" {
		c, err := llm.NewClient(&cfg.LLM)
		if err != nil {
			return nil, fmt.Errorf("create LLM client: %w", err)
		}
		deps.Completer = c
	}
	if cfg.Transcriber.APIKey != "" {
		t, err := llm.NewTranscriber(&cfg.Transcriber)
		if err != nil {
			return nil, fmt.Errorf("create transcriber: %w", err)
		}
		deps.Transcriber = t
	}
	if cfg.CaseSearch.APIKey != "" {
		s, err := kanoon.NewClient(&cfg.CaseSearch)
		if err != nil {
			return nil, fmt.Errorf("create case search client: %w", err)
		}
		deps.Searcher = s
	}
	return New(deps), nil
}

// Ask runs a free-text feature (Legal or Chat) and returns the model's Markdown answer.
func (s *Service) Ask(ctx context.Context, feature prompts.Feature, query string) (string, error) {
	if feature == prompts.CaseLaw {
		return "", ErrNotChatFeature
	}
	return s.complete(ctx, feature, query)
}

// FindCases asks the model for case law relevant to query and extracts the
// cases from its answer. Malformed answers degrade to heuristic extraction.
func (s *Service) FindCases(ctx context.Context, query string) ([]caselaw.CaseResult, error) {
	raw, err := s.complete(ctx, prompts.CaseLaw, query)
	if err != nil {
		return nil, err
	}
	return caselaw.Extract(raw), nil
}

// SearchDatabase queries the case-law database directly.
func (s *Service) SearchDatabase(ctx context.Context, query string, page int) ([]kanoon.Document, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if s.searcher == nil {
		return nil, &MissingCredentialError{Service: config.ServiceCaseSearch}
	}
	if page < 0 {
		page = 0
	}
	docs, err := s.searcher.Search(ctx, query, page)
	if err != nil {
		return nil, fmt.Errorf("search case database: %w", err)
	}
	return docs, nil
}

// Transcribe converts an uploaded recording to text. With translate set the
// text is an English translation.
func (s *Service) Transcribe(ctx context.Context, audio llm.Audio, translate bool) (Transcript, error) {
	if audio.Reader == nil || audio.Name == "" {
		return Transcript{}, ErrNoAudio
	}
	if s.transcriber == nil {
		return Transcript{}, &MissingCredentialError{Service: config.ServiceTranscriber}
	}

	var (
		text string
		err  error
	)
	if translate {
		text, err = s.transcriber.Translate(ctx, audio)
	} else {
		text, err = s.transcriber.Transcribe(ctx, audio)
	}
	if err != nil {
		return Transcript{}, fmt.Errorf("transcribe audio: %w", err)
	}

	language := audio.Language
	if translate {
		language = "en"
	}
	return Transcript{Text: strings.TrimSpace(text), Language: language, Translated: translate}, nil
}

func (s *Service) complete(ctx context.Context, feature prompts.Feature, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", ErrEmptyQuery
	}
	p, err := s.catalog.Get(feature)
	if err != nil {
		return "", err
	}
	if s.completer == nil {
		return "", &MissingCredentialError{Service: config.ServiceLLM}
	}

	out, err := s.completer.Complete(ctx, llm.Request{
		System:      p.System,
		User:        p.Render(query),
		Temperature: p.Temperature,
		MaxTokens:   p.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%s completion: %w", feature, err)
	}
	return out, nil
}
