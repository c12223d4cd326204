package content

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bungalowpark/internal/middleware"
	"bungalowpark/internal/pkg/response"
	"bungalowpark/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/email-templates", h.ListTemplates)
	rg.POST("/email-templates", h.CreateTemplate)
	rg.GET("/email-templates/:id", h.GetTemplate)
	rg.PUT("/email-templates/:id", h.UpdateTemplate)
	rg.DELETE("/email-templates/:id", h.DeleteTemplate)

	rg.GET("/terms", h.GetTerms)
	rg.PUT("/terms", h.SaveTerms)
}

// RegisterPublicRoutes exposes the current terms text without authentication
// so the confirmation page can render it.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/terms/public", h.GetPublicTerms)
}

func (h *Handler) ListTemplates(c *gin.Context) {
	templates, err := h.service.ListTemplates(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	response.Success(c, http.StatusOK, gin.H{"email_templates": templates})
}

func (h *Handler) GetTemplate(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid template id")
		return
	}

	t, err := h.service.GetTemplate(c.Request.Context(), id)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"email_template": t})
}

func (h *Handler) CreateTemplate(c *gin.Context) {
	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	t, err := h.service.CreateTemplate(c.Request.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusCreated, "Email template created", gin.H{"email_template": t})
}

func (h *Handler) UpdateTemplate(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid template id")
		return
	}

	var req UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	t, err := h.service.UpdateTemplate(c.Request.Context(), middleware.ActorFrom(c), id, req)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, "Email template updated", gin.H{"email_template": t})
}

func (h *Handler) DeleteTemplate(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid template id")
		return
	}

	if err := h.service.DeleteTemplate(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
		h.mapError(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, "Email template deleted", nil)
}

func (h *Handler) GetTerms(c *gin.Context) {
	t, err := h.service.GetTerms(c.Request.Context())
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"terms": t})
}

func (h *Handler) GetPublicTerms(c *gin.Context) {
	t, err := h.service.GetTerms(c.Request.Context())
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"title":   t.Title,
		"body":    t.Body,
		"version": t.Version,
	})
}

func (h *Handler) SaveTerms(c *gin.Context) {
	var req SaveTermsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	t, err := h.service.SaveTerms(c.Request.Context(), middleware.ActorFrom(c), req.Title, req.Body)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, "Terms updated", gin.H{"terms": t})
}

func (h *Handler) mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrTemplateNotFound):
		response.Error(c, http.StatusNotFound, "Email template not found")
	case errors.Is(err, ErrTermsNotFound):
		response.Error(c, http.StatusNotFound, "Terms not found")
	case errors.Is(err, ErrSlugTaken):
		response.ValidationError(c, map[string]string{"slug": "The slug has already been taken."})
	default:
		response.Error(c, http.StatusInternalServerError, err.Error())
	}
}
