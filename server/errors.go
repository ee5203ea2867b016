package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/honganh1206/datetime/history"
)

type HTTPError struct {
	Code    int
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error { return e.Err }

func handleError(w http.ResponseWriter, err error) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.Code >= http.StatusInternalServerError {
			slog.Error(httpErr.Message, "err", httpErr.Err)
		}
		writeError(w, httpErr.Code, httpErr.Message)
		return
	}

	if errors.Is(err, history.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "Resource not found")
		return
	}

	slog.Error("unhandled error", "err", err)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to encode response", "err", err)
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

var errNoMatch = errors.New("no known format matches the input")
