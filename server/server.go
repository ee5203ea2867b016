package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"
)

type server struct {
	models *Models
}

// NewHandler wires every route. It does not open any storage itself.
func NewHandler(models *Models) http.Handler {
	srv := &server{models: models}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("POST /parse", srv.parseHandler)
	mux.HandleFunc("POST /guess", srv.guessHandler)
	mux.HandleFunc("GET /formats", srv.formatsHandler)
	mux.HandleFunc("GET /history", srv.listHistory)
	mux.HandleFunc("GET /history/{id}", srv.getHistory)
	mux.HandleFunc("GET /schema", srv.schemaHandler)

	return logRequests(mux)
}

// Serve blocks until ctx is cancelled, then drains in-flight requests.
func Serve(ctx context.Context, ln net.Listener, models *Models) error {
	slog.Info("listening", "addr", ln.Addr().String())

	server := &http.Server{
		Handler:           NewHandler(models),
		ReadHeaderTimeout: 5 * time.Second,
	}

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		slog.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		shutdownErr <- server.Shutdown(shutdownCtx)
	}()

	err := server.Serve(ln)
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-shutdownErr
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		slog.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
