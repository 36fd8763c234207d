package handler

import (
	"context"
	"log/slog"
	"net/http"
)

// Purger drops a cache layer's entries.
type Purger interface {
	Invalidate(ctx context.Context) error
}

// AdminHandler provides operations endpoints for cache management.
type AdminHandler struct {
	rules  Purger
	gone   Purger
	logger *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(rules, gone Purger, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{rules: rules, gone: gone, logger: logger}
}

// PurgeResponse reports which caches were purged.
type PurgeResponse struct {
	Purged []string `json:"purged"`
	Errors []string `json:"errors,omitempty"`
}

// Purge handles POST /admin/purge. It drops both the rule snapshot and
// the gone verdict caches so CMS edits take effect before the TTL. One
// layer failing does not stop the other.
func (h *AdminHandler) Purge(w http.ResponseWriter, r *http.Request) {
	resp := PurgeResponse{Purged: make([]string, 0, 2)}

	if err := h.rules.Invalidate(r.Context()); err != nil {
		h.logger.Error("rule cache purge failed", "error", err)
		resp.Errors = append(resp.Errors, "rules: "+err.Error())
	} else {
		resp.Purged = append(resp.Purged, "rules")
	}

	if err := h.gone.Invalidate(r.Context()); err != nil {
		h.logger.Error("gone cache purge failed", "error", err)
		resp.Errors = append(resp.Errors, "gone: "+err.Error())
	} else {
		resp.Purged = append(resp.Purged, "gone")
	}

	status := http.StatusOK
	if len(resp.Errors) > 0 {
		status = http.StatusInternalServerError
	}

	h.logger.Info("cache purge", "purged", resp.Purged, "errors", len(resp.Errors))
	writeJSON(w, status, resp)
}
