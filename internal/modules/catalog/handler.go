package catalog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bungalowpark/internal/middleware"
	"bungalowpark/internal/pkg/response"
	"bungalowpark/internal/pkg/validator"
	"bungalowpark/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/bungalows", h.ListBungalows)
	rg.POST("/bungalows", h.CreateBungalow)
	rg.GET("/bungalows/:id", h.GetBungalow)
	rg.PUT("/bungalows/:id", h.UpdateBungalow)
	rg.DELETE("/bungalows/:id", h.DeleteBungalow)

	rg.GET("/services", h.ListServices)
	rg.POST("/services", h.CreateService)
	rg.PUT("/services/:id", h.UpdateService)
	rg.DELETE("/services/:id", h.DeleteService)
}

func (h *Handler) ListBungalows(c *gin.Context) {
	var f repository.BungalowFilters
	f.Search = c.Query("search")
	f.Status = c.Query("status")
	f.Limit = 20
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 100 {
		f.Limit = v
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		f.Offset = (page - 1) * f.Limit
	}

	bungalows, total, err := h.service.ListBungalows(c.Request.Context(), f)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"bungalows": bungalows,
		"pagination": gin.H{
			"total":  total,
			"limit":  f.Limit,
			"offset": f.Offset,
		},
	})
}

func (h *Handler) CreateBungalow(c *gin.Context) {
	var req CreateBungalowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	b, err := h.service.CreateBungalow(c.Request.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	response.SuccessMessage(c, http.StatusCreated, "Bungalow created", gin.H{"bungalow": b})
}

func (h *Handler) GetBungalow(c *gin.Context) {
	id, ok := pathID(c, "Invalid bungalow ID")
	if !ok {
		return
	}

	b, err := h.service.GetBungalow(c.Request.Context(), id)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bungalow": b})
}

func (h *Handler) UpdateBungalow(c *gin.Context) {
	id, ok := pathID(c, "Invalid bungalow ID")
	if !ok {
		return
	}

	var req UpdateBungalowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	b, err := h.service.UpdateBungalow(c.Request.Context(), middleware.ActorFrom(c), id, req)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, "Bungalow updated", gin.H{"bungalow": b})
}

func (h *Handler) DeleteBungalow(c *gin.Context) {
	id, ok := pathID(c, "Invalid bungalow ID")
	if !ok {
		return
	}

	if err := h.service.DeleteBungalow(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
		h.mapError(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, "Bungalow deleted", nil)
}

func (h *Handler) ListServices(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	services, err := h.service.ListServices(c.Request.Context(), activeOnly)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	response.Success(c, http.StatusOK, gin.H{"services": services})
}

func (h *Handler) CreateService(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	svc, err := h.service.CreateService(c.Request.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	response.SuccessMessage(c, http.StatusCreated, "Service created", gin.H{"service": svc})
}

func (h *Handler) UpdateService(c *gin.Context) {
	id, ok := pathID(c, "Invalid service ID")
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	svc, err := h.service.UpdateService(c.Request.Context(), middleware.ActorFrom(c), id, req)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, "Service updated", gin.H{"service": svc})
}

func (h *Handler) DeleteService(c *gin.Context) {
	id, ok := pathID(c, "Invalid service ID")
	if !ok {
		return
	}

	if err := h.service.DeleteService(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
		h.mapError(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, "Service deleted", nil)
}

func (h *Handler) mapError(c *gin.Context, err error) {
	switch err {
	case ErrBungalowNotFound, ErrServiceNotFound:
		response.Error(c, http.StatusNotFound, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, err.Error())
	}
}

func pathID(c *gin.Context, msg string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, msg)
		return 0, false
	}
	return id, true
}
