package booking

import (
	"errors"
	"net/http"
	"strconv"

	"tutormatch/internal/domain"
	"tutormatch/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	bookings := rg.Group("/bookings")
	{
		bookings.POST("", h.Create)
		bookings.GET("", h.ListMine)
		bookings.GET("/:id", h.Get)
		bookings.POST("/:id/respond", h.Respond)
		bookings.POST("/:id/cancel", h.Cancel)
		bookings.POST("/:id/complete", h.Complete)
		bookings.POST("/:id/messages", h.SendMessage)
		bookings.POST("/:id/messages/read", h.MarkRead)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid request body")
		return
	}

	b, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, b)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	b, err := h.service.Get(c.Request.Context(), c.GetInt64("user_id"), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) ListMine(c *gin.Context) {
	userID := c.GetInt64("user_id")
	limit, offset := pagination(c)

	var (
		list []domain.BookingRequest
		err  error
	)
	if c.GetString("role") == string(domain.RoleTutor) {
		list, err = h.service.ListForTutor(c.Request.Context(), userID, limit, offset)
	} else {
		list, err = h.service.ListForStudent(c.Request.Context(), userID, limit, offset)
	}
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) Respond(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid request body")
		return
	}

	b, err := h.service.Respond(c.Request.Context(), c.GetInt64("user_id"), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) Cancel(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	var req CancelRequest
	_ = c.ShouldBindJSON(&req)

	b, err := h.service.Cancel(c.Request.Context(), c.GetInt64("user_id"), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) Complete(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	var req CompleteRequest
	_ = c.ShouldBindJSON(&req)

	b, err := h.service.Complete(c.Request.Context(), c.GetInt64("user_id"), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) SendMessage(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid request body")
		return
	}

	msg, err := h.service.SendMessage(c.Request.Context(), c.GetInt64("user_id"), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, msg)
}

func (h *Handler) MarkRead(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	updated, err := h.service.MarkMessagesRead(c.Request.Context(), c.GetInt64("user_id"), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"marked_read": updated})
}

func bookingID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid booking id")
		return 0, false
	}
	return id, true
}

func pagination(c *gin.Context) (limit, offset int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return perPage, (page - 1) * perPage
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid request")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "booking or tutor not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "not a participant of this booking")
	case errors.Is(err, ErrConflict):
		response.Error(c, http.StatusConflict, "CONFLICT", "booking state does not permit this operation")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "internal error")
	}
}
