package restapi

import (
	"yieldhop/internal/app/port"

	"github.com/gin-gonic/gin"
)

// PortfolioHandler serves the cross-chain portfolio screen.
type PortfolioHandler struct {
	portfolioService port.PortfolioService
	chains           port.ChainDefinitionProvider
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(ps port.PortfolioService, chains port.ChainDefinitionProvider) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: ps,
		chains:           chains,
	}
}

// GetPortfolioHandler returns the wallet's position on every supported chain with exact totals.
func (h *PortfolioHandler) GetPortfolioHandler(c *gin.Context) {
	view, err := h.portfolioService.GetPortfolio(c.Request.Context(), c.Param("wallet"))
	if err != nil {
		respondError(c, err)
		return
	}

	display := toPortfolioDisplay(view, h.chains)
	message := "Portfolio retrieved successfully."
	for _, ch := range display.Chains {
		if ch.Fallback {
			message = "Portfolio retrieved. Some chains are showing placeholder values."
			break
		}
	}
	respondOK(c, display, message)
}

// ListChainsHandler returns the supported chains.
func (h *PortfolioHandler) ListChainsHandler(c *gin.Context) {
	respondOK(c, h.chains.GetAllChainDefinitions(), "Supported chains retrieved.")
}
