package restapi

import (
	"strings"

	"yieldhop/internal/app/port"
	"yieldhop/internal/domain/entity"

	"github.com/gin-gonic/gin"
)

// StakingHandler serves the staking screen.
type StakingHandler struct {
	views  port.StakingViewService
	chains port.ChainDefinitionProvider
	logger port.Logger
}

// NewStakingHandler creates a new StakingHandler.
func NewStakingHandler(views port.StakingViewService, chains port.ChainDefinitionProvider, l port.Logger) *StakingHandler {
	return &StakingHandler{views: views, chains: chains, logger: l}
}

// GetStakingHandler mounts the view or switches its chain (?chain=sepolia|fuji) and returns the result.
func (h *StakingHandler) GetStakingHandler(c *gin.Context) {
	wallet := c.Param("wallet")
	chain := entity.ChainKey(strings.TrimSpace(c.Query("chain")))

	st, err := h.views.Open(c.Request.Context(), wallet, chain)
	if err != nil {
		h.logger.Debug("Staking view request rejected", "wallet", wallet, "chain", chain, "error", err)
		respondError(c, err)
		return
	}
	respondOK(c, h.display(st), statusMessageFor(st.State))
}

// RefreshStakingHandler runs a new fetch cycle for the wallet's selected chain.
func (h *StakingHandler) RefreshStakingHandler(c *gin.Context) {
	wallet := c.Param("wallet")

	st, err := h.views.Refresh(c.Request.Context(), wallet)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, h.display(st), statusMessageFor(st.State))
}

func (h *StakingHandler) display(st entity.StakingViewState) entity.StakingViewDisplay {
	return toStakingViewDisplay(st, h.chains)
}

func statusMessageFor(state entity.FetchState) string {
	switch state {
	case entity.FetchSuccess:
		return "Staking data retrieved successfully."
	case entity.FetchFailed:
		return "Contract data unavailable, showing placeholder values."
	case entity.FetchLoading:
		return "A newer request for this wallet is in progress."
	default:
		return "No data loaded yet."
	}
}
