package settings

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"bungalowpark/internal/middleware"
	"bungalowpark/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/settings/:name", h.Get)
	r.PUT("/settings/:name", h.Update)
}

func (h *Handler) Get(c *gin.Context) {
	setting, err := h.service.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, http.StatusOK, setting)
}

type updateRequest struct {
	Data map[string]any `json:"data" binding:"required"`
}

func (h *Handler) Update(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, map[string]string{"data": "The data field is required."})
		return
	}

	actor := middleware.ActorFrom(c)
	setting, err := h.service.Update(c.Request.Context(), actor, c.Param("name"), req.Data)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, "Settings updated successfully", setting)
}

func (h *Handler) mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUnknownSetting), errors.Is(err, gorm.ErrRecordNotFound):
		response.Error(c, http.StatusNotFound, "Setting not found")
	default:
		response.Error(c, http.StatusInternalServerError, err.Error())
	}
}
