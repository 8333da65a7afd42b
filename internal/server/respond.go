package server

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/julianstephens/slotscore/internal/logger"
	"github.com/julianstephens/slotscore/internal/service"
	"github.com/julianstephens/slotscore/internal/storage"
	"github.com/julianstephens/slotscore/internal/storage/jsonstore"
	"github.com/julianstephens/slotscore/internal/validation"
)

const (
	codeBadRequest = "bad_request"
	codeValidation = "validation_error"
	codeNotFound   = "not_found"
	codeConflict   = "conflict"
	codeInternal   = "internal_error"
)

type apiError struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

type errorBody struct {
	Error apiError `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logger.Warn("Failed to write JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Error: apiError{Code: code, Message: message}})
}

// writeErr maps a service or storage error onto a status code. Unknown errors
// are logged and reported without detail.
func writeErr(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validation.ValidationErrors
	switch {
	case errors.As(err, &verr):
		body := errorBody{Error: apiError{Code: codeValidation, Message: "request validation failed"}}
		for _, f := range verr.Fields {
			body.Error.Fields = append(body.Error.Fields, f.Message)
		}
		writeJSON(w, http.StatusBadRequest, body)
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, err.Error())
	case errors.Is(err, storage.ErrAlreadyExists):
		writeError(w, http.StatusConflict, codeConflict, err.Error())
	case errors.Is(err, service.ErrComparePeriod), errors.Is(err, service.ErrInvalidRange),
		errors.Is(err, jsonstore.ErrInvalidUserID):
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
	default:
		logger.Error("API request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, codeInternal, "internal server error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
