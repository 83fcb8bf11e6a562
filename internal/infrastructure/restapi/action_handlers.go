package restapi

import (
	"fmt"
	"net/http"

	"yieldhop/internal/app/port"
	"yieldhop/internal/domain/entity"

	"github.com/gin-gonic/gin"
)

// PrepareActionRequest is the body of POST /actions.
type PrepareActionRequest struct {
	Wallet string            `json:"wallet" binding:"required"`
	Chain  entity.ChainKey   `json:"chain"`
	Kind   entity.ActionKind `json:"kind" binding:"required"`
	Amount string            `json:"amount"`
}

// ConfirmActionRequest is the body of POST /actions/:id/confirm.
type ConfirmActionRequest struct {
	TxHash string `json:"txHash" binding:"required"`
}

// ActionHandler serves staking write preparation and confirmation.
type ActionHandler struct {
	actions port.ActionService
	logger  port.Logger
}

// NewActionHandler creates a new ActionHandler.
func NewActionHandler(actions port.ActionService, l port.Logger) *ActionHandler {
	return &ActionHandler{actions: actions, logger: l}
}

// PrepareActionHandler returns the unsigned call the wallet should sign and send.
func (h *ActionHandler) PrepareActionHandler(c *gin.Context) {
	var req PrepareActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Error: "invalid request body: " + err.Error()})
		return
	}

	call, err := h.actions.Prepare(c.Request.Context(), req.Wallet, req.Chain, req.Kind, req.Amount)
	if err != nil {
		h.logger.Debug("Action preparation rejected", "kind", req.Kind, "error", err)
		respondError(c, err)
		return
	}
	respondOK(c, call, "Call prepared. Sign and send it with your wallet, then confirm with the transaction hash.")
}

// GetActionHandler returns a prepared call that has not been confirmed yet.
func (h *ActionHandler) GetActionHandler(c *gin.Context) {
	id := c.Param("id")
	call, ok := h.actions.Pending(id)
	if !ok {
		respondError(c, fmt.Errorf("%w: %s", entity.ErrActionNotFound, id))
		return
	}
	respondOK(c, call, "Call is awaiting confirmation.")
}

// ConfirmActionHandler waits for the receipt of the transaction sent for a prepared call.
func (h *ActionHandler) ConfirmActionHandler(c *gin.Context) {
	var req ConfirmActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Error: "invalid request body: " + err.Error()})
		return
	}

	conf, err := h.actions.Confirm(c.Request.Context(), c.Param("id"), req.TxHash)
	if err != nil {
		respondError(c, err)
		return
	}
	message := conf.Notification
	if !conf.Confirmed {
		message = "Transaction reverted."
	}
	respondOK(c, conf, message)
}
