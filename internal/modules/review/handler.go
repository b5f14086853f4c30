package review

import (
	"errors"
	"net/http"
	"strconv"

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
	rg.POST("/reviews", h.Create)
}

// RegisterPublicRoutes exposes read-only review listings without auth.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/tutors/:id/reviews", h.ListByTutor)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid request body")
		return
	}

	rv, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRequest):
			response.Error(c, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid review")
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "booking not found")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "only the booking's student may review it")
		case errors.Is(err, ErrNotCompleted):
			response.Error(c, http.StatusConflict, "CONFLICT", "booking is not completed")
		case errors.Is(err, ErrAlreadyExists):
			response.Error(c, http.StatusConflict, "CONFLICT", "review already exists")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "internal error")
		}
		return
	}
	response.Success(c, http.StatusCreated, rv)
}

func (h *Handler) ListByTutor(c *gin.Context) {
	tutorID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || tutorID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid tutor id")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	list, err := h.service.ListByTutor(c.Request.Context(), tutorID, perPage, (page-1)*perPage)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "failed to list reviews")
		return
	}
	response.Success(c, http.StatusOK, list)
}
