package activity

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bungalowpark/internal/pkg/response"
	"bungalowpark/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/activity-logs", h.List)
}

func (h *Handler) List(c *gin.Context) {
	var f repository.ActivityFilters
	f.Action = c.Query("action")
	if v, err := strconv.ParseInt(c.Query("actor_id"), 10, 64); err == nil {
		f.ActorID = v
	}
	f.Limit, f.Offset = pagination(c)

	logs, total, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to load activity logs")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"logs": logs,
		"pagination": gin.H{
			"total":  total,
			"limit":  f.Limit,
			"offset": f.Offset,
		},
	})
}

func pagination(c *gin.Context) (limit, offset int) {
	limit = 20
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		offset = (page - 1) * limit
	}
	return limit, offset
}
