package handlers

import (
	"net/http"

	"github.com/Jataveda/Agriconnect/cache"
	"github.com/Jataveda/Agriconnect/usecases"

	"github.com/gin-gonic/gin"
)

type TrackingHandler struct {
	orders   *usecases.OrderUseCase
	tracking *cache.TrackingCache
}

func NewTrackingHandler(orders *usecases.OrderUseCase, tracking *cache.TrackingCache) *TrackingHandler {
	return &TrackingHandler{orders: orders, tracking: tracking}
}

// GetOrderTracking GET /api/orders/:id/tracking
func (h *TrackingHandler) GetOrderTracking(c *gin.Context) {
	order, err := h.orders.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	resp := gin.H{
		"orderId": order.ID,
		"status":  order.Status,
		"points":  h.tracking.History(order.ID),
	}
	if latest, ok := h.tracking.Latest(order.ID); ok {
		resp["latest"] = latest
	}
	c.JSON(http.StatusOK, resp)
}

// GetTrackingStats GET /api/tracking/stats
func (h *TrackingHandler) GetTrackingStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.tracking.Stats())
}
