package httpapi

import (
	"net/http"
)

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz reports store reachability. Profile reads keep working on demo data when it fails.
func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Readyz")
	defer span.End()

	if h.store == nil {
		writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok", "store": "none"})
		return
	}

	if err := h.store.Ping(ctx); err != nil {
		h.logger.WarnContext(ctx, "store ping failed", "error", err)
		writeJSON(ctx, w, http.StatusServiceUnavailable, googleResponseEnvelope{
			APIVersion: googleAPIVersion,
			Data:       map[string]string{"status": "degraded", "store": "unavailable"},
		})
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok", "store": "ok"})
}
