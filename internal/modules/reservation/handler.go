package reservation

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bungalowpark/internal/domain"
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
	rg.GET("/reservations", h.List)
	rg.POST("/reservations", h.Create)
	rg.GET("/reservations/:id", h.Get)
	rg.PUT("/reservations/:id", h.Update)
	rg.DELETE("/reservations/:id", h.Delete)

	rg.POST("/reservations/:id/payment", h.AddPayment)
	rg.POST("/reservations/:id/service", h.AddService)
	rg.DELETE("/reservations/:id/service", h.RemoveService)
	rg.POST("/reservations/:id/delay", h.Delay)
	rg.POST("/reservations/:id/cancel", h.Cancel)
}

// RegisterPublicRoutes mounts the unauthenticated confirmation endpoints.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/reservations/confirm/:code", h.ConfirmGet)
	rg.POST("/reservations/confirm/:code", h.ConfirmPost)
}

func (h *Handler) List(c *gin.Context) {
	var f repository.ReservationFilters
	f.Search = c.Query("search")
	f.Status = c.Query("status")
	if v, err := strconv.ParseInt(c.Query("bungalow_id"), 10, 64); err == nil {
		f.BungalowID = v
	}
	if v, err := strconv.ParseInt(c.Query("customer_id"), 10, 64); err == nil {
		f.CustomerID = v
	}

	f.Limit = 20
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 100 {
		f.Limit = v
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		f.Offset = (page - 1) * f.Limit
	}

	reservations, total, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"reservations": reservations,
		"pagination": gin.H{
			"total":  total,
			"limit":  f.Limit,
			"offset": f.Offset,
		},
	})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	r, err := h.service.Create(c.Request.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.SuccessMessage(c, http.StatusCreated, "Reservation created", gin.H{"reservation": r})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	r, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reservation": r})
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	r, err := h.service.Update(c.Request.Context(), middleware.ActorFrom(c), id, req)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, "Reservation updated", gin.H{"reservation": r})
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
		h.mapError(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, "Reservation deleted", nil)
}

func (h *Handler) AddPayment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req AddPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	r, err := h.service.AddPayment(c.Request.Context(), middleware.ActorFrom(c), id, req)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, "Payment recorded", gin.H{"reservation": r})
}

func (h *Handler) AddService(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req AddServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	r, err := h.service.AddService(c.Request.Context(), middleware.ActorFrom(c), id, req)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, "Service added", gin.H{"reservation": r})
}

func (h *Handler) RemoveService(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req RemoveServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.EntryID == "" && req.Index == nil {
		response.ValidationError(c, map[string]string{"entry_id": "entry_id or index is required"})
		return
	}

	r, err := h.service.RemoveService(c.Request.Context(), middleware.ActorFrom(c), id, req)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, "Service removed", gin.H{"reservation": r})
}

func (h *Handler) Delay(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req DelayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	r, err := h.service.Delay(c.Request.Context(), middleware.ActorFrom(c), id, req)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, "Reservation delayed", gin.H{"reservation": r})
}

func (h *Handler) Cancel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	r, err := h.service.Cancel(c.Request.Context(), middleware.ActorFrom(c), id, req.Reason)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, "Reservation cancelled", gin.H{"reservation": r})
}

func (h *Handler) ConfirmGet(c *gin.Context) {
	r, err := h.service.ConfirmationView(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.mapError(c, err)
		return
	}

	view := gin.H{
		"code":           r.Code,
		"status":         r.Status,
		"check_in_date":  r.CheckIn.Format(dateLayout),
		"check_out_date": r.CheckOut.Format(dateLayout),
		"guest_count":    r.GuestCount,
		"total_price":    r.TotalPrice,
		"expires_at":     r.ConfirmationExpiresAt,
		"terms_accepted": r.TermsAccepted,
	}
	if r.Bungalow != nil {
		view["bungalow_name"] = r.Bungalow.Name
	}
	response.Success(c, http.StatusOK, gin.H{"reservation": view})
}

func (h *Handler) ConfirmPost(c *gin.Context) {
	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	actor := domain.GuestActor(c.ClientIP())
	r, err := h.service.Confirm(c.Request.Context(), actor, c.Param("code"), req.TermsAccepted)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, "Reservation confirmed", gin.H{
		"reservation": gin.H{
			"code":         r.Code,
			"status":       r.Status,
			"confirmed_at": r.ConfirmedAt,
		},
	})
}

func (h *Handler) mapError(c *gin.Context, err error) {
	switch err {
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, err.Error())
	case ErrCustomerNotFound:
		response.ValidationError(c, map[string]string{"customer_id": err.Error()})
	case ErrBungalowNotFound:
		response.ValidationError(c, map[string]string{"bungalow_id": err.Error()})
	case ErrServiceNotFound:
		response.ValidationError(c, map[string]string{"service_id": err.Error()})
	case ErrInvalidDates:
		response.ValidationError(c, map[string]string{"check_out_date": err.Error()})
	case ErrPastCheckIn:
		response.ValidationError(c, map[string]string{"check_in_date": err.Error()})
	case ErrPaymentExceedsTotal,
		ErrDatesOverlap,
		ErrInvalidStatusTransition,
		ErrAlreadyCancelled,
		ErrAlreadyConfirmed,
		ErrTermsNotAccepted,
		ErrServiceLineNotFound:
		response.Error(c, http.StatusBadRequest, err.Error())
	case ErrConfirmationExpired:
		response.Error(c, http.StatusGone, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, err.Error())
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid reservation ID")
		return 0, false
	}
	return id, true
}
