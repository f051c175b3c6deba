package http

import (
	"net/http"

	"github.com/Lexv0lk/vending-machine/internal/gateway/domain"
	"github.com/Lexv0lk/vending-machine/internal/pkg/logging"
	store "github.com/Lexv0lk/vending-machine/internal/store/domain"
	"github.com/gin-gonic/gin"
)

const (
	ProductIDKey = "id"
)

type createProductRequestBody struct {
	Name     string `json:"name" binding:"required"`
	Cost     int64  `json:"cost"`
	Quantity int64  `json:"quantity"`
}

type updateProductRequestBody struct {
	Name     *string `json:"name"`
	Cost     *int64  `json:"cost"`
	Quantity *int64  `json:"quantity"`
}

type ProductHandler struct {
	service domain.InventoryService
	logger  logging.Logger
}

func NewProductHandler(service domain.InventoryService, logger logging.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

func (h *ProductHandler) List(c *gin.Context) {
	products := h.service.List()

	views := make([]domain.ProductView, 0, len(products))
	for _, product := range products {
		views = append(views, domain.NewProductView(product))
	}

	c.JSON(http.StatusOK, views)
}

func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.service.Get(c.Param(ProductIDKey))
	if err != nil {
		handleDomainError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, domain.NewProductView(product))
}

func (h *ProductHandler) Create(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var body createProductRequestBody

	if err := c.ShouldBindJSON(&body); err != nil {
		handleBindingError(c, err)
		return
	}

	product, err := h.service.Create(actor, body.Name, body.Cost, body.Quantity)
	if err != nil {
		handleDomainError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, domain.NewProductView(product))
}

func (h *ProductHandler) Update(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var body updateProductRequestBody

	if err := c.ShouldBindJSON(&body); err != nil {
		handleBindingError(c, err)
		return
	}

	update := store.ProductUpdate{
		Name:     body.Name,
		Cost:     body.Cost,
		Quantity: body.Quantity,
	}

	product, err := h.service.Update(actor, c.Param(ProductIDKey), update)
	if err != nil {
		handleDomainError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, domain.NewProductView(product))
}

func (h *ProductHandler) Delete(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	if err := h.service.Delete(actor, c.Param(ProductIDKey)); err != nil {
		handleDomainError(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
