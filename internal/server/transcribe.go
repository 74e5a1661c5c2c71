package server

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/nyaya-legal/nyaya/internal/llm"
)

// Form fields accepted by /api/transcribe. "file" is accepted as an alias for "audio".
const (
	fieldAudio     = "audio"
	fieldFile      = "file"
	fieldLanguage  = "language"
	fieldTranslate = "translate"
)

// handleTranscribe handles POST /api/transcribe (multipart/form-data).
func (s *Server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, r, &statusError{code: http.StatusMethodNotAllowed, msg: "method not allowed"})
		return
	}

	if r.ContentLength > s.maxUploadBytes {
		writeError(w, r, &statusError{code: http.StatusRequestEntityTooLarge, msg: "audio file is too large"})
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, &statusError{code: http.StatusRequestEntityTooLarge, msg: "audio file is too large"})
			return
		}
		writeError(w, r, &statusError{code: http.StatusBadRequest, msg: "Audio file is required"})
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := formFile(r)
	if err != nil {
		writeError(w, r, &statusError{code: http.StatusBadRequest, msg: "Audio file is required"})
		return
	}
	defer file.Close()

	translate := false
	if v := r.FormValue(fieldTranslate); v != "" {
		if translate, err = strconv.ParseBool(v); err != nil {
			writeError(w, r, &statusError{code: http.StatusBadRequest, msg: "translate must be true or false"})
			return
		}
	}

	transcript, err := s.assistant.Transcribe(r.Context(), llm.Audio{
		Name:     header.Filename,
		Reader:   file,
		Language: r.FormValue(fieldLanguage),
	}, translate)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, transcript)
}

func formFile(r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	file, header, err := r.FormFile(fieldAudio)
	if errors.Is(err, http.ErrMissingFile) {
		return r.FormFile(fieldFile)
	}
	return file, header, err
}
