package httpHandler

import (
	"net/http"

	"github.com/Jataveda/Agriconnect/usecases"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	useCase *usecases.OrderUseCase
}

func NewOrderHandler(useCase *usecases.OrderUseCase) *OrderHandler {
	return &OrderHandler{useCase: useCase}
}

// CreateOrder handles POST /api/orders. Any status in the body is ignored.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var in usecases.PlaceOrderInput
	if !bindJSON(c, &in) {
		return
	}
	order, err := h.useCase.PlaceOrder(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Failed to create order")
		return
	}
	c.JSON(http.StatusCreated, order)
}

// GetOrder handles GET /api/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.useCase.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to fetch order")
		return
	}
	c.JSON(http.StatusOK, order)
}

// GetAllOrders handles GET /api/orders[?itemId=]
func (h *OrderHandler) GetAllOrders(c *gin.Context) {
	ctx := c.Request.Context()
	if itemID := c.Query("itemId"); itemID != "" {
		orders, err := h.useCase.GetOrdersByItem(ctx, itemID)
		if err != nil {
			respondError(c, err, "Failed to fetch item orders")
			return
		}
		c.JSON(http.StatusOK, orders)
		return
	}
	orders, err := h.useCase.GetAllOrders(ctx)
	if err != nil {
		respondError(c, err, "Failed to fetch orders")
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrdersByUser handles GET /api/users/:id/orders
func (h *OrderHandler) GetOrdersByUser(c *gin.Context) {
	orders, err := h.useCase.GetOrdersByUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to fetch user orders")
		return
	}
	c.JSON(http.StatusOK, orders)
}

// UpdateOrder handles PUT /api/orders/:id
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	var in usecases.OrderUpdate
	if !bindJSON(c, &in) {
		return
	}
	order, err := h.useCase.UpdateOrder(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err, "Failed to update order")
		return
	}
	c.JSON(http.StatusOK, order)
}

// DeleteOrder handles DELETE /api/orders/:id
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	if err := h.useCase.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete order")
		return
	}
	c.Status(http.StatusNoContent)
}
