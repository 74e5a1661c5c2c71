package llm

import (
	"context"
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

type audioCall struct {
	path     string
	model    string
	language string
	filename string
	content  string
}

func newTestTranscriber(t *testing.T, status int, body string) (*Transcriber, *audioCall) {
	t.Helper()
	call := &audioCall{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call.path = r.URL.Path
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		call.model = r.FormValue("model")
		call.language = r.FormValue("language")
		f, hdr, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		call.filename = hdr.Filename
		call.content = string(data)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	tr, err := NewTranscriber(&config.ProviderConfig{BaseURL: srv.URL, APIKey: "k"})
	require.NoError(t, err)
	return tr, call
}

func TestNewTranscriber(t *testing.T) {
	_, err := NewTranscriber(nil)
	assert.Equal(t, ErrNilTranscriberConfig, err)

	_, err = NewTranscriber(&config.ProviderConfig{APIKey: "k"})
	require.Error(t, err)

	_, err = NewTranscriber(&config.ProviderConfig{BaseURL: "http://x"})
	require.Error(t, err)

	tr, err := NewTranscriber(&config.ProviderConfig{BaseURL: "http://x", APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "whisper-1", tr.model)
}

func TestTranscriber_Transcribe(t *testing.T) {
	tr, call := newTestTranscriber(t, http.StatusOK, `{"text":"mere ghar mein chori hui"}`)

	text, err := tr.Transcribe(context.Background(), Audio{
		Name:     "complaint.webm",
		Reader:   strings.NewReader("fake-audio"),
		Language: "hi",
	})
	require.NoError(t, err)

	assert.Equal(t, "mere ghar mein chori hui", text)
	assert.Equal(t, "/audio/transcriptions", call.path)
	assert.Equal(t, "whisper-1", call.model)
	assert.Equal(t, "hi", call.language)
	assert.Equal(t, "complaint.webm", call.filename)
	assert.Equal(t, "fake-audio", call.content)
}

func TestTranscriber_Translate(t *testing.T) {
	tr, call := newTestTranscriber(t, http.StatusOK, `{"text":"there was a theft in my house"}`)

	text, err := tr.Translate(context.Background(), Audio{
		Name:     "complaint.mp3",
		Reader:   strings.NewReader("fake-audio"),
		Language: "hi",
	})
	require.NoError(t, err)

	assert.Equal(t, "there was a theft in my house", text)
	assert.Equal(t, "/audio/translations", call.path)
	assert.Empty(t, call.language)
}

func TestTranscriber_UpstreamFailure(t *testing.T) {
	tr, _ := newTestTranscriber(t, http.StatusBadRequest, `{"error":{"message":"unsupported file format"}}`)

	_, err := tr.Transcribe(context.Background(), Audio{Name: "a.txt", Reader: strings.NewReader("x")})
	require.Error(t, err)

	var upErr *upstream.Error
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusBadRequest, upErr.StatusCode)
	assert.Contains(t, err.Error(), "unsupported file format")
}
