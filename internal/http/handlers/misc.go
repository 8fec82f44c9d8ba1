package handlers

import "net/http"

// Home is the liveness probe.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("✅ Webhook relay is running"))
}

// GroupLink serves the static staff group invite link when configured.
func (h *Handler) GroupLink(w http.ResponseWriter, r *http.Request) {
	if h.cfg.GroupInviteLink == "" {
		writeError(w, http.StatusNotFound, "group link not configured")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"group_link": h.cfg.GroupInviteLink})
}
