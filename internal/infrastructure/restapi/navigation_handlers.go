package restapi

import (
	"net/http"

	"yieldhop/internal/app/port"

	"github.com/gin-gonic/gin"
)

// NavigationHandler serves the static navigation surface.
type NavigationHandler struct {
	nav port.NavigationService
}

func NewNavigationHandler(nav port.NavigationService) *NavigationHandler {
	return &NavigationHandler{nav: nav}
}

func (h *NavigationHandler) GetRoutesHandler(c *gin.Context) {
	respondOK(c, h.nav.Routes(), "Navigation routes retrieved.")
}

func (h *NavigationHandler) GetRouteHandler(c *gin.Context) {
	route, ok := h.nav.Route(c.Param("key"))
	if !ok {
		c.JSON(http.StatusNotFound, APIError{Error: "route not found: " + c.Param("key")})
		return
	}
	respondOK(c, route, "Navigation route retrieved.")
}

func (h *NavigationHandler) GetLandingHandler(c *gin.Context) {
	respondOK(c, h.nav.Landing(), "Landing content retrieved.")
}
