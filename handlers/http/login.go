package httpHandler

import (
	"net/http"

	"github.com/Jataveda/Agriconnect/entities"
	"github.com/Jataveda/Agriconnect/usecases"

	"github.com/gin-gonic/gin"
)

type LoginHandler struct {
	useCase *usecases.UserUseCase
}

func NewLoginHandler(useCase *usecases.UserUseCase) *LoginHandler {
	return &LoginHandler{useCase: useCase}
}

// LoginRequest accepts the identifier as either username or email.
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  entities.UserPublic `json:"user"`
	Token string              `json:"token"`
}

// Login handles POST /api/auth/login
func (h *LoginHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing credentials"})
		return
	}

	identifier := req.Username
	if identifier == "" {
		identifier = req.Email
	}

	user, err := h.useCase.Login(c.Request.Context(), identifier, req.Password)
	if err != nil {
		respondError(c, err, "Login failed")
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		User:  user.Public(),
		Token: usecases.PlaceholderToken,
	})
}
