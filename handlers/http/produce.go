package httpHandler

import (
	"net/http"

	"github.com/Jataveda/Agriconnect/entities"
	"github.com/Jataveda/Agriconnect/usecases"

	"github.com/gin-gonic/gin"
)

type ProduceHandler struct {
	useCase *usecases.ListingUseCase
}

func NewProduceHandler(useCase *usecases.ListingUseCase) *ProduceHandler {
	return &ProduceHandler{useCase: useCase}
}

// CreateProduce handles POST /api/produce
func (h *ProduceHandler) CreateProduce(c *gin.Context) {
	var in usecases.ProduceInput
	if !bindJSON(c, &in) {
		return
	}
	item, err := h.useCase.CreateProduce(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Failed to create produce")
		return
	}
	c.JSON(http.StatusCreated, item)
}

// GetProduce handles GET /api/produce/:id
func (h *ProduceHandler) GetProduce(c *gin.Context) {
	item, err := h.useCase.GetProduce(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to fetch produce")
		return
	}
	c.JSON(http.StatusOK, item)
}

// GetAllProduce handles GET /api/produce
func (h *ProduceHandler) GetAllProduce(c *gin.Context) {
	items, err := h.useCase.GetAllProduce(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch produce")
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetProduceByFarmer handles GET /api/users/:id/produce
func (h *ProduceHandler) GetProduceByFarmer(c *gin.Context) {
	items, err := h.useCase.GetProduceByFarmer(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to fetch user produce")
		return
	}
	c.JSON(http.StatusOK, items)
}

// UpdateProduce handles PUT /api/produce/:id
func (h *ProduceHandler) UpdateProduce(c *gin.Context) {
	var patch entities.ProducePatch
	if !bindJSON(c, &patch) {
		return
	}
	item, err := h.useCase.UpdateProduce(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err, "Failed to update produce")
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteProduce handles DELETE /api/produce/:id
func (h *ProduceHandler) DeleteProduce(c *gin.Context) {
	if err := h.useCase.DeleteProduce(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete produce")
		return
	}
	c.Status(http.StatusNoContent)
}
