package httpHandler

import (
	"net/http"

	"github.com/Jataveda/Agriconnect/entities"
	"github.com/Jataveda/Agriconnect/usecases"

	"github.com/gin-gonic/gin"
)

type VehicleHandler struct {
	useCase *usecases.ListingUseCase
}

func NewVehicleHandler(useCase *usecases.ListingUseCase) *VehicleHandler {
	return &VehicleHandler{useCase: useCase}
}

// CreateVehicle handles POST /api/vehicles
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	var in usecases.VehicleInput
	if !bindJSON(c, &in) {
		return
	}
	vehicle, err := h.useCase.CreateVehicle(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Failed to create vehicle")
		return
	}
	c.JSON(http.StatusCreated, vehicle)
}

// GetVehicle handles GET /api/vehicles/:id
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	vehicle, err := h.useCase.GetVehicle(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to fetch vehicle")
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

// GetAllVehicles handles GET /api/vehicles
func (h *VehicleHandler) GetAllVehicles(c *gin.Context) {
	vehicles, err := h.useCase.GetAllVehicles(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch vehicles")
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

// GetVehiclesByOwner handles GET /api/users/:id/vehicles
func (h *VehicleHandler) GetVehiclesByOwner(c *gin.Context) {
	vehicles, err := h.useCase.GetVehiclesByOwner(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to fetch user vehicles")
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

// UpdateVehicle handles PUT /api/vehicles/:id
func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	var patch entities.VehiclePatch
	if !bindJSON(c, &patch) {
		return
	}
	vehicle, err := h.useCase.UpdateVehicle(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err, "Failed to update vehicle")
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

// DeleteVehicle handles DELETE /api/vehicles/:id
func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	if err := h.useCase.DeleteVehicle(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete vehicle")
		return
	}
	c.Status(http.StatusNoContent)
}
