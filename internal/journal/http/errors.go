package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/hearbackapp/hearback/pkg/httpx"
	"github.com/hearbackapp/hearback/pkg/slogx"
)

// detailResponse is the error body shape for every non-2xx response.
type detailResponse struct {
	Detail string `json:"detail"`
}

func writeError(w http.ResponseWriter, status int, detail string) {
	httpx.WriteJSON(w, status, detailResponse{Detail: detail})
}

// writeUnexpected is the boundary translator for errors no handler switch
// claimed: store unavailability becomes 503, everything else a generic 500.
// Full detail stays in the server log; the client only ever sees the
// generic message.
func writeUnexpected(ctx context.Context, w http.ResponseWriter, err error) {
	log := slogx.FromContext(ctx)

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		log.Error("store timeout", "error", err)
		writeError(w, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	log.Error("unhandled error", "error", err)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}
