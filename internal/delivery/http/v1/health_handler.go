package v1

import (
	"net/http"

	"jobboard-backend/internal/delivery/http/response"
	"jobboard-backend/internal/domain"
	"jobboard-backend/internal/usecase"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	healthUC usecase.HealthUsecase
}

func NewHealthHandler(r *gin.RouterGroup, healthUC usecase.HealthUsecase) {
	handler := &HealthHandler{healthUC: healthUC}
	r.GET("/health", handler.Health)
}

// Health godoc
// @Summary      Health check
// @Description  Reachability of the database and, when configured, Redis
// @Tags         system
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	status, healthy := h.healthUC.Check(c.Request.Context())
	if !healthy {
		c.JSON(http.StatusServiceUnavailable, response.Response{
			Success:   false,
			Message:   "System degraded",
			Data:      status,
			RequestID: c.GetString(string(domain.KeyRequestID)),
		})
		return
	}
	response.Success(c, http.StatusOK, "System operational", status)
}
