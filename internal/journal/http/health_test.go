package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHealthEndpoints(t *testing.T) {
	rt, _ := newTestRouter(t)

	t.Run("liveness", func(t *testing.T) {
		rec := doJSON(t, rt, http.MethodGet, "/health", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"ok": true}`, rec.Body.String())
	})

	t.Run("database readiness", func(t *testing.T) {
		rec := doJSON(t, rt, http.MethodGet, "/db/health", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"db": "ok"}`, rec.Body.String())
	})
}
