package http

import (
	"net/http"

	"github.com/Lexv0lk/vending-machine/internal/gateway/domain"
	"github.com/Lexv0lk/vending-machine/internal/pkg/logging"
	"github.com/gin-gonic/gin"
)

type depositRequestBody struct {
	Coin int64 `json:"coin"`
}

type buyRequestBody struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required,gt=0"`
}

type VendingHandler struct {
	ledger    domain.LedgerService
	purchases domain.PurchaseService
	logger    logging.Logger
}

func NewVendingHandler(ledger domain.LedgerService, purchases domain.PurchaseService, logger logging.Logger) *VendingHandler {
	return &VendingHandler{
		ledger:    ledger,
		purchases: purchases,
		logger:    logger,
	}
}

func (h *VendingHandler) Deposit(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var body depositRequestBody

	if err := c.ShouldBindJSON(&body); err != nil {
		handleBindingError(c, err)
		return
	}

	balance, err := h.ledger.Deposit(c.Request.Context(), actor, actor.AccountID, body.Coin)
	if err != nil {
		handleDomainError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{"balance": domain.NewMoney(balance)})
}

func (h *VendingHandler) Reset(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	cleared, err := h.ledger.Reset(c.Request.Context(), actor, actor.AccountID)
	if err != nil {
		handleDomainError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cleared": domain.NewMoney(cleared)})
}

func (h *VendingHandler) Buy(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var body buyRequestBody

	if err := c.ShouldBindJSON(&body); err != nil {
		handleBindingError(c, err)
		return
	}

	result, err := h.purchases.Buy(c.Request.Context(), actor, body.ProductID, body.Quantity)
	if err != nil {
		handleDomainError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, domain.NewPurchaseView(result))
}
