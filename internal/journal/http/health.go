package http

import (
	"context"
	"net/http"
	"time"

	"github.com/hearbackapp/hearback/internal/journal/store"
	"github.com/hearbackapp/hearback/pkg/httpx"
)

const dbHealthTimeout = 2 * time.Second

// HealthHandler answers liveness probes. It reports on the process only,
// never on downstream dependencies.
func HealthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
}

// DBHealthHandler answers readiness probes by pinging the database with a
// short deadline so a wedged store can't hold the probe open.
func DBHealthHandler(st store.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), dbHealthTimeout)
		defer cancel()

		if err := st.Ping(ctx); err != nil {
			writeError(w, http.StatusServiceUnavailable, "Database unavailable")
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"db": "ok"})
	})
}
