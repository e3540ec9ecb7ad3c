package httpapi

import (
	"net/http"
)

func (h *Handler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListProfiles")
	defer span.End()

	items, err := h.profileService.ListProfiles(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list profiles failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]profileDTO, 0, len(items))
	for _, p := range items {
		out = append(out, profileToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetProfile")
	defer span.End()

	profileID, err := parseProfileID(r.PathValue("profileID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.profileService.GetProfile(ctx, profileID)
	if err != nil {
		h.logger.WarnContext(ctx, "get profile failed", "profile_id", profileID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileToDTO(item))
}
