package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/nyaya-legal/nyaya/internal/assistant"
	"github.com/nyaya-legal/nyaya/internal/display"
	"github.com/nyaya-legal/nyaya/internal/upstream"
)

// statusError is a request problem detected by the handlers themselves.
type statusError struct {
	code int
	msg  string
}

func (e *statusError) Error() string { return e.msg }

// writeError maps err to a status code and writes {error: message}.
// Upstream failures are reported with the upstream's own message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := classify(err)
	if status >= http.StatusInternalServerError {
		display.ErrorMsg(logLine(RequestIDFrom(r.Context()), r.URL.Path, err))
	}
	writeJSON(w, status, map[string]string{"error": msg})
}

// logLine tags server-side failures so upstream outages stand apart from
// local faults in the console.
func logLine(rid, path string, err error) string {
	kind := "internal"
	if upstream.Is(err) {
		kind = "upstream"
	}
	return fmt.Sprintf("%s %s [%s] %v", rid, path, kind, err)
}

func classify(err error) (int, string) {
	var (
		se      *statusError
		missing *assistant.MissingCredentialError
		upErr   *upstream.Error
	)
	switch {
	case errors.As(err, &se):
		return se.code, se.msg
	case errors.Is(err, assistant.ErrEmptyQuery):
		return http.StatusBadRequest, "Query is required"
	case errors.Is(err, assistant.ErrNoAudio):
		return http.StatusBadRequest, "Audio file is required"
	case errors.Is(err, assistant.ErrNotChatFeature):
		return http.StatusBadRequest, err.Error()
	case errors.As(err, &missing):
		return http.StatusInternalServerError, missing.Error()
	case errors.As(err, &upErr):
		return http.StatusBadGateway, upErr.Error()
	default:
		return http.StatusInternalServerError, err.Error()
	}
}
