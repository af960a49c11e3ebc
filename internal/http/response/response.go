// Package response writes JSON bodies and error envelopes.
package response

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/davidbz/quill/internal/domain"
	"github.com/davidbz/quill/internal/observability"
)

// JSON writes v with the given status.
func JSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Already written status, can't change it, just log.
		observability.FromContext(ctx).Error("failed to encode response", observability.Error(err))
	}
}

// Error writes err as an error envelope. Unclassified errors become internal errors.
func Error(ctx context.Context, w http.ResponseWriter, err error) {
	classified, ok := domain.AsError(err)
	if !ok {
		classified = domain.NewInternal("An internal error occurred.", err)
	}

	status := classified.Status
	if status < http.StatusBadRequest || status > 599 {
		status = http.StatusBadGateway
	}

	JSON(ctx, w, status, classified.Envelope())
}
