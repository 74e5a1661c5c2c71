package assistant

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyaya-legal/nyaya/internal/caselaw"
	"github.com/nyaya-legal/nyaya/internal/config"
	"github.com/nyaya-legal/nyaya/internal/kanoon"
	"github.com/nyaya-legal/nyaya/internal/llm"
	"github.com/nyaya-legal/nyaya/internal/prompts"
	"github.com/nyaya-legal/nyaya/internal/upstream"
)

type fakeCompleter struct {
	out   string
	err   error
	calls []llm.Request
}

func (f *fakeCompleter) Complete(_ context.Context, req llm.Request) (string, error) {
	f.calls = append(f.calls, req)
	return f.out, f.err
}

type fakeTranscriber struct {
	text       string
	err        error
	translated bool
	audio      llm.Audio
}

func (f *fakeTranscriber) Transcribe(_ context.Context, audio llm.Audio) (string, error) {
	f.audio = audio
	return f.text, f.err
}

func (f *fakeTranscriber) Translate(_ context.Context, audio llm.Audio) (string, error) {
	f.audio = audio
	f.translated = true
	return f.text, f.err
}

type fakeSearcher struct {
	docs  []kanoon.Document
	err   error
	query string
	page  int
}

func (f *fakeSearcher) Search(_ context.Context, query string, page int) ([]kanoon.Document, error) {
	f.query, f.page = query, page
	return f.docs, f.err
}

func TestService_Ask(t *testing.T) {
	c := &fakeCompleter{out: "## Applicable IPC Sections\n- **Section 379 - Theft**"}
	s := New(Deps{Completer: c})

	out, err := s.Ask(context.Background(), prompts.Legal, "  A took B's phone without consent  ")
	require.NoError(t, err)
	assert.Equal(t, c.out, out)

	require.Len(t, c.calls, 1)
	legal := prompts.Default()[prompts.Legal]
	assert.Equal(t, legal.System, c.calls[0].System)
	assert.Contains(t, c.calls[0].User, "Scenario: A took B's phone without consent\n")
	assert.Equal(t, legal.Temperature, c.calls[0].Temperature)
	assert.Equal(t, legal.MaxTokens, c.calls[0].MaxTokens)
}

func TestService_AskChatUsesChatPrompt(t *testing.T) {
	c := &fakeCompleter{out: "## Answer"}
	s := New(Deps{Completer: c})

	_, err := s.Ask(context.Background(), prompts.Chat, "What is anticipatory bail?")
	require.NoError(t, err)
	require.Len(t, c.calls, 1)
	assert.Equal(t, 1200, c.calls[0].MaxTokens)
	assert.Contains(t, c.calls[0].User, "Question: What is anticipatory bail?")
}

func TestService_AskRejectsBeforeUpstream(t *testing.T) {
	tests := []struct {
		name    string
		deps    Deps
		feature prompts.Feature
		query   string
		wantErr func(t *testing.T, err error)
	}{
		{
			name:    "blank query",
			deps:    Deps{Completer: &fakeCompleter{}},
			feature: prompts.Legal,
			query:   " \n\t",
			wantErr: func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrEmptyQuery) },
		},
		{
			name:    "missing credential",
			deps:    Deps{},
			feature: prompts.Chat,
			query:   "hello",
			wantErr: func(t *testing.T, err error) {
				var missing *MissingCredentialError
				require.ErrorAs(t, err, &missing)
				assert.Equal(t, "Missing Together API key", err.Error())
			},
		},
		{
			name:    "case law through Ask",
			deps:    Deps{Completer: &fakeCompleter{}},
			feature: prompts.CaseLaw,
			query:   "hello",
			wantErr: func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrNotChatFeature) },
		},
		{
			name:    "unknown feature",
			deps:    Deps{Completer: &fakeCompleter{}},
			feature: "poetry",
			query:   "hello",
			wantErr: func(t *testing.T, err error) { assert.ErrorIs(t, err, prompts.ErrUnknownFeature) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.deps)
			_, err := s.Ask(context.Background(), tt.feature, tt.query)
			require.Error(t, err)
			tt.wantErr(t, err)
			if c, ok := tt.deps.Completer.(*fakeCompleter); ok {
				assert.Empty(t, c.calls)
			}
		})
	}
}

func TestService_AskUpstreamFailure(t *testing.T) {
	upErr := upstream.Status("Together API", 500, "internal error")
	s := New(Deps{Completer: &fakeCompleter{err: upErr}})

	_, err := s.Ask(context.Background(), prompts.Legal, "theft")
	require.Error(t, err)
	assert.ErrorIs(t, err, upErr)
}

func TestService_FindCases(t *testing.T) {
	t.Run("structured answer", func(t *testing.T) {
		c := &fakeCompleter{out: "```json\n[{\"title\":\"A\",\"citation\":\"B\",\"summary\":\"C\",\"relevance\":\"D\"}]\n```"}
		s := New(Deps{Completer: c})

		cases, err := s.FindCases(context.Background(), "theft")
		require.NoError(t, err)
		assert.Equal(t, []caselaw.CaseResult{{Title: "A", Citation: "B", Summary: "C", Relevance: "D"}}, cases)

		require.Len(t, c.calls, 1)
		assert.Equal(t, "Find relevant Indian case laws related to: theft", c.calls[0].User)
		assert.Equal(t, float32(0.3), c.calls[0].Temperature)
	})

	t.Run("prose answer degrades", func(t *testing.T) {
		c := &fakeCompleter{out: "Case 1: Title: X\nCase 2: Title: Y"}
		s := New(Deps{Completer: c})

		cases, err := s.FindCases(context.Background(), "theft")
		require.NoError(t, err)
		require.Len(t, cases, 2)
		assert.Equal(t, "X", cases[0].Title)
		assert.Equal(t, "Y", cases[1].Title)
	})

	t.Run("upstream failure", func(t *testing.T) {
		s := New(Deps{Completer: &fakeCompleter{err: upstream.Wrap("Together API", llm.ErrEmptyResponse)}})

		_, err := s.FindCases(context.Background(), "theft")
		require.Error(t, err)
		assert.ErrorIs(t, err, llm.ErrEmptyResponse)
	})
}

func TestService_SearchDatabase(t *testing.T) {
	f := &fakeSearcher{docs: []kanoon.Document{{Title: "Bachan Singh vs State Of Punjab", TID: "1"}}}
	s := New(Deps{Searcher: f})

	docs, err := s.SearchDatabase(context.Background(), " murder ", -3)
	require.NoError(t, err)
	assert.Equal(t, f.docs, docs)
	assert.Equal(t, "murder", f.query)
	assert.Equal(t, 0, f.page)

	_, err = s.SearchDatabase(context.Background(), "", 0)
	assert.ErrorIs(t, err, ErrEmptyQuery)

	_, err = New(Deps{}).SearchDatabase(context.Background(), "murder", 0)
	assert.EqualError(t, err, "Missing Indian Kanoon API key")

	boom := errors.New("boom")
	_, err = New(Deps{Searcher: &fakeSearcher{err: boom}}).SearchDatabase(context.Background(), "murder", 0)
	assert.ErrorIs(t, err, boom)
}

func TestService_Transcribe(t *testing.T) {
	audio := func() llm.Audio {
		return llm.Audio{Name: "note.webm", Reader: strings.NewReader("x"), Language: "hi"}
	}

	t.Run("transcribe", func(t *testing.T) {
		f := &fakeTranscriber{text: " chori hui \n"}
		got, err := New(Deps{Transcriber: f}).Transcribe(context.Background(), audio(), false)
		require.NoError(t, err)
		assert.Equal(t, Transcript{Text: "chori hui", Language: "hi"}, got)
		assert.False(t, f.translated)
		assert.Equal(t, "note.webm", f.audio.Name)
	})

	t.Run("translate", func(t *testing.T) {
		f := &fakeTranscriber{text: "there was a theft"}
		got, err := New(Deps{Transcriber: f}).Transcribe(context.Background(), audio(), true)
		require.NoError(t, err)
		assert.Equal(t, Transcript{Text: "there was a theft", Language: "en", Translated: true}, got)
		assert.True(t, f.translated)
	})

	t.Run("no audio", func(t *testing.T) {
		_, err := New(Deps{Transcriber: &fakeTranscriber{}}).Transcribe(context.Background(), llm.Audio{}, false)
		assert.ErrorIs(t, err, ErrNoAudio)
	})

	t.Run("missing credential", func(t *testing.T) {
		_, err := New(Deps{}).Transcribe(context.Background(), audio(), false)
		assert.EqualError(t, err, "Missing Transcription API key")
	})

	t.Run("upstream failure", func(t *testing.T) {
		f := &fakeTranscriber{err: upstream.Wrap("Transcription API", io.ErrUnexpectedEOF)}
		_, err := New(Deps{Transcriber: f}).Transcribe(context.Background(), audio(), false)
		require.Error(t, err)
		assert.True(t, upstream.Is(err))
	})
}

func TestFromConfig(t *testing.T) {
	_, err := FromConfig(nil, nil)
	assert.Equal(t, config.ErrNilConfig, err)

	s, err := FromConfig(&config.Config{
		LLM:        config.ProviderConfig{BaseURL: "http://llm", APIKey: "k", Model: "m"},
		CaseSearch: config.ProviderConfig{BaseURL: "http://kanoon", APIKey: "k"},
	}, nil)
	require.NoError(t, err)
	assert.NotNil(t, s.completer)
	assert.NotNil(t, s.searcher)
	assert.Nil(t, s.transcriber)
	assert.Equal(t, prompts.Default(), s.catalog)
}
