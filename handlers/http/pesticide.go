package httpHandler

import (
	"net/http"

	"github.com/Jataveda/Agriconnect/entities"
	"github.com/Jataveda/Agriconnect/usecases"

	"github.com/gin-gonic/gin"
)

type PesticideHandler struct {
	useCase *usecases.ListingUseCase
}

func NewPesticideHandler(useCase *usecases.ListingUseCase) *PesticideHandler {
	return &PesticideHandler{useCase: useCase}
}

// CreatePesticide handles POST /api/pesticides
func (h *PesticideHandler) CreatePesticide(c *gin.Context) {
	var in usecases.PesticideInput
	if !bindJSON(c, &in) {
		return
	}
	item, err := h.useCase.CreatePesticide(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Failed to create pesticide")
		return
	}
	c.JSON(http.StatusCreated, item)
}

// GetPesticide handles GET /api/pesticides/:id
func (h *PesticideHandler) GetPesticide(c *gin.Context) {
	item, err := h.useCase.GetPesticide(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to fetch pesticide")
		return
	}
	c.JSON(http.StatusOK, item)
}

// GetAllPesticides handles GET /api/pesticides
func (h *PesticideHandler) GetAllPesticides(c *gin.Context) {
	items, err := h.useCase.GetAllPesticides(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch pesticides")
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetPesticidesBySupplier handles GET /api/users/:id/pesticides
func (h *PesticideHandler) GetPesticidesBySupplier(c *gin.Context) {
	items, err := h.useCase.GetPesticidesBySupplier(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to fetch user pesticides")
		return
	}
	c.JSON(http.StatusOK, items)
}

// UpdatePesticide handles PUT /api/pesticides/:id
func (h *PesticideHandler) UpdatePesticide(c *gin.Context) {
	var patch entities.PesticidePatch
	if !bindJSON(c, &patch) {
		return
	}
	item, err := h.useCase.UpdatePesticide(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err, "Failed to update pesticide")
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeletePesticide handles DELETE /api/pesticides/:id
func (h *PesticideHandler) DeletePesticide(c *gin.Context) {
	if err := h.useCase.DeletePesticide(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete pesticide")
		return
	}
	c.Status(http.StatusNoContent)
}
