package v1

import (
	"net/http"

	"jobboard-backend/internal/delivery/http/response"
	"jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{}

// NewAuthHandler exposes the identity resolved by AuthMiddleware.
// Login and registration live in the auth service.
func NewAuthHandler(protected *gin.RouterGroup) {
	handler := &AuthHandler{}

	protectedAuth := protected.Group("/auth")
	{
		protectedAuth.GET("/me", handler.Me)
	}
}

// Me godoc
// @Summary      Current user
// @Description  Return the user the bearer token resolves to
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.User}
// @Failure      401  {object}  response.Response
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	user := domain.User{
		ID:       c.GetInt64(string(domain.KeyUserID)),
		Username: c.GetString(string(domain.KeyUsername)),
		Email:    c.GetString(string(domain.KeyUserEmail)),
	}

	response.Success(c, http.StatusOK, "User details", user)
}
