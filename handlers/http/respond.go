package httpHandler

import (
	"errors"
	"log"
	"net/http"

	"github.com/Jataveda/Agriconnect/usecases"

	"github.com/gin-gonic/gin"
)

// respondError maps use case errors onto status codes. Unexpected errors are
// logged and reported with the generic fallback message.
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, usecases.ErrMissingCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing credentials"})
	case errors.Is(err, usecases.ErrAuth):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, usecases.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, usecases.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// bindJSON decodes the request body into dst, answering 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return false
	}
	return true
}
