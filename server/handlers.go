package server

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/honganh1206/datetime/datetime"
	"github.com/honganh1206/datetime/history"
	"github.com/honganh1206/datetime/schema"
	"github.com/honganh1206/datetime/utils"
)

const defaultHistoryLimit = 50

func (s *server) parseHandler(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, &HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid parse request",
			Err:     err,
		})
		return
	}

	if req.Format == "" {
		handleError(w, &HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Missing format",
		})
		return
	}

	// Every attempt is recorded, cache hits included
	dt, cached := s.cachedParse(req.Input, req.Format)
	if cached {
		s.record(r.Context(), history.NewRecord(req.Input, req.Format, false, &dt, nil))
	} else {
		var err error
		dt, err = datetime.Parse(req.Input, req.Format)
		s.record(r.Context(), history.NewRecord(req.Input, req.Format, false, resultOf(dt, err), err))
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, utils.Diagnose(err))
			return
		}
		s.cacheParse(req.Input, req.Format, dt)
	}

	resp := ParseResponse{Datetime: dt, Text: dt.String(), Cached: cached}

	if req.Out != "" {
		formatted, err := dt.Format(req.Out)
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, utils.Diagnose(err))
			return
		}
		resp.Formatted = formatted
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *server) guessHandler(w http.ResponseWriter, r *http.Request) {
	var req GuessRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, &HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid guess request",
			Err:     err,
		})
		return
	}

	if s.models.Cache != nil {
		dt, format, ok, err := s.models.Cache.Guess(req.Input)
		if err != nil {
			slog.Warn("cache lookup failed", "err", err)
		} else if ok {
			s.record(r.Context(), history.NewRecord(req.Input, format, true, &dt, nil))
			writeJSON(w, http.StatusOK, GuessResponse{Datetime: dt, Text: dt.String(), Format: format, Cached: true})
			return
		}
	}

	dt, format, ok := datetime.Guess(req.Input)
	if !ok {
		s.record(r.Context(), history.NewRecord(req.Input, "", true, nil, errNoMatch))
		writeJSON(w, http.StatusUnprocessableEntity, utils.Diagnostic{Kind: "no_match", Message: errNoMatch.Error()})
		return
	}

	s.record(r.Context(), history.NewRecord(req.Input, format, true, &dt, nil))
	if s.models.Cache != nil {
		if err := s.models.Cache.PutGuess(req.Input, format, dt); err != nil {
			slog.Warn("cache store failed", "err", err)
		}
	}

	writeJSON(w, http.StatusOK, GuessResponse{Datetime: dt, Text: dt.String(), Format: format})
}

func (s *server) formatsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, FormatsResponse{Formats: datetime.Candidates()})
}

func (s *server) listHistory(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			handleError(w, &HTTPError{
				Code:    http.StatusBadRequest,
				Message: "Invalid limit",
				Err:     err,
			})
			return
		}
		limit = n
	}

	records, err := s.models.History.List(r.Context(), limit)
	if err != nil {
		handleError(w, &HTTPError{
			Code:    http.StatusInternalServerError,
			Message: "Failed to list history",
			Err:     err,
		})
		return
	}

	writeJSON(w, http.StatusOK, records)
}

func (s *server) getHistory(w http.ResponseWriter, r *http.Request) {
	record, err := s.models.History.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (s *server) schemaHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"parse_request":  schema.Generate[ParseRequest](),
		"parse_response": schema.Generate[ParseResponse](),
		"guess_request":  schema.Generate[GuessRequest](),
		"guess_response": schema.Generate[GuessResponse](),
		"error":          schema.Generate[utils.Diagnostic](),
	})
}

func (s *server) cachedParse(input, format string) (datetime.Datetime, bool) {
	if s.models.Cache == nil {
		return datetime.Datetime{}, false
	}
	dt, ok, err := s.models.Cache.Parse(input, format)
	if err != nil {
		slog.Warn("cache lookup failed", "err", err)
		return datetime.Datetime{}, false
	}
	return dt, ok
}

func (s *server) cacheParse(input, format string, dt datetime.Datetime) {
	if s.models.Cache == nil {
		return
	}
	if err := s.models.Cache.PutParse(input, format, dt); err != nil {
		slog.Warn("cache store failed", "err", err)
	}
}

// record never fails the request; history is best effort.
func (s *server) record(ctx context.Context, rec *history.Record) {
	if s.models.History == nil {
		return
	}
	if err := s.models.History.Save(ctx, rec); err != nil {
		slog.Error("failed to save history", "id", rec.ID, "err", err)
	}
}

func resultOf(dt datetime.Datetime, err error) *datetime.Datetime {
	if err != nil {
		return nil
	}
	return &dt
}
