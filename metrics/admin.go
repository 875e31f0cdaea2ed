package metrics

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sagarc03/schedsync"
)

const readyTimeout = 2 * time.Second

// AdminRouter serves /metrics, /livez and /readyz. Readiness pings store
// when it implements schedsync.Pinger; otherwise the store is assumed ready.
func (m *Metrics) AdminRouter(store schedsync.ObjectStore) http.Handler {
	r := chi.NewRouter()

	r.Handle("/metrics", m.Handler())
	r.Get("/livez", func(w http.ResponseWriter, _ *http.Request) {
		writeText(w, http.StatusOK, "ok")
	})
	r.Get("/readyz", func(w http.ResponseWriter, req *http.Request) {
		p, ok := store.(schedsync.Pinger)
		if !ok {
			writeText(w, http.StatusOK, "ok")
			return
		}

		ctx, cancel := context.WithTimeout(req.Context(), readyTimeout)
		defer cancel()

		if err := p.Ping(ctx); err != nil {
			slog.Warn("readiness check failed", "error", err)
			writeText(w, http.StatusServiceUnavailable, "not ready")
			return
		}
		writeText(w, http.StatusOK, "ok")
	})

	return r
}

func writeText(w http.ResponseWriter, code int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(body))
}
