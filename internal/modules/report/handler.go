package report

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bungalowpark/internal/pkg/response"
)

const dateLayout = "2006-01-02"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/reports/occupancy", h.Occupancy)
	rg.GET("/reports/summary", h.Summary)
}

func (h *Handler) Occupancy(c *gin.Context) {
	now := time.Now().UTC().Truncate(24 * time.Hour)
	from := now.AddDate(0, -1, 0)
	to := now

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			response.ValidationError(c, map[string]string{"from": "The from field must be a valid date."})
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			response.ValidationError(c, map[string]string{"to": "The to field must be a valid date."})
			return
		}
		to = parsed
	}

	occ, err := h.service.Occupancy(c.Request.Context(), from, to)
	if err != nil {
		if errors.Is(err, ErrInvalidWindow) {
			response.ValidationError(c, map[string]string{"to": "The to date must be after the from date."})
			return
		}
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	response.Success(c, http.StatusOK, gin.H{"occupancy": occ})
}

func (h *Handler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	response.Success(c, http.StatusOK, gin.H{"summary": summary})
}
