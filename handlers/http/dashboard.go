package httpHandler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/Jataveda/Agriconnect/reports"
	"github.com/Jataveda/Agriconnect/usecases"

	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the read-only views built on top of the core data.
type DashboardHandler struct {
	users  *usecases.UserUseCase
	orders *usecases.OrderUseCase
	stats  *usecases.StatsUseCase
}

func NewDashboardHandler(users *usecases.UserUseCase, orders *usecases.OrderUseCase, stats *usecases.StatsUseCase) *DashboardHandler {
	return &DashboardHandler{users: users, orders: orders, stats: stats}
}

// GetUserStats handles GET /api/users/:id/stats
func (h *DashboardHandler) GetUserStats(c *gin.Context) {
	stats, err := h.stats.ForUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to compute stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ExportUserOrders handles GET /api/users/:id/orders/export
func (h *DashboardHandler) ExportUserOrders(c *gin.Context) {
	ctx := c.Request.Context()
	user, err := h.users.GetUser(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to export orders")
		return
	}
	orders, err := h.orders.GetOrdersByUser(ctx, user.ID)
	if err != nil {
		respondError(c, err, "Failed to export orders")
		return
	}

	var buf bytes.Buffer
	if err := reports.WriteOrders(&buf, orders); err != nil {
		respondError(c, err, "Failed to export orders")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="orders-%s.xlsx"`, user.Username))
	c.Data(http.StatusOK, reports.XLSXContentType, buf.Bytes())
}

// GetPriceSuggestions handles GET /api/pricing/suggestions[?location=]
func (h *DashboardHandler) GetPriceSuggestions(c *gin.Context) {
	location := c.Query("location")
	if location == "" {
		c.JSON(http.StatusOK, usecases.PriceSuggestions())
		return
	}
	suggestion, ok := usecases.SuggestedPrice(location)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No price suggestion for location"})
		return
	}
	c.JSON(http.StatusOK, suggestion)
}
