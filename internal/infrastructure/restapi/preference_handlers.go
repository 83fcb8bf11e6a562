package restapi

import (
	"net/http"

	"yieldhop/internal/app/port"

	"github.com/gin-gonic/gin"
)

// ThemeRequest is the body of PUT /preferences/theme.
type ThemeRequest struct {
	Dark *bool `json:"dark" binding:"required"`
}

// PreferenceHandler serves the theme preference.
type PreferenceHandler struct {
	theme port.ThemeService
}

// NewPreferenceHandler creates a new PreferenceHandler.
func NewPreferenceHandler(theme port.ThemeService) *PreferenceHandler {
	return &PreferenceHandler{theme: theme}
}

// GetThemeHandler returns the current theme.
func (h *PreferenceHandler) GetThemeHandler(c *gin.Context) {
	respondOK(c, h.theme.Theme(), "Theme preference retrieved.")
}

// PutThemeHandler stores an explicit theme.
func (h *PreferenceHandler) PutThemeHandler(c *gin.Context) {
	var req ThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Error: "invalid request body: " + err.Error()})
		return
	}
	pref, err := h.theme.Set(c.Request.Context(), *req.Dark)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, pref, "Theme preference saved.")
}

// ToggleThemeHandler flips the theme.
func (h *PreferenceHandler) ToggleThemeHandler(c *gin.Context) {
	pref, err := h.theme.Toggle(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, pref, "Theme preference saved.")
}
