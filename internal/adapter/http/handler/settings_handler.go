package handler

import (
	"net/http"

	"github.com/iho/splitnest/internal/infrastructure/settings"
)

// SettingsHandler exposes display settings to clients.
type SettingsHandler struct {
	theme settings.Theme
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(theme settings.Theme) *SettingsHandler {
	return &SettingsHandler{theme: theme}
}

// Theme returns the configured theme.
func (h *SettingsHandler) Theme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.theme)
}
