package favorite

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
	favorites := rg.Group("/favorites")
	{
		favorites.GET("", h.List)
		favorites.POST("/:tutorId", h.Add)
		favorites.DELETE("/:tutorId", h.Remove)
		favorites.GET("/:tutorId/check", h.Check)
	}
}

func (h *Handler) List(c *gin.Context) {
	userID := c.GetInt64("user_id")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	favorites, total, err := h.service.List(c.Request.Context(), userID, perPage, (page-1)*perPage)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "failed to get favorites")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"favorites": favorites,
		"total":     total,
		"page":      page,
		"per_page":  perPage,
	})
}

func (h *Handler) Add(c *gin.Context) {
	userID := c.GetInt64("user_id")
	tutorID, ok := tutorIDParam(c)
	if !ok {
		return
	}

	fav, err := h.service.Add(c.Request.Context(), userID, tutorID)
	if err != nil {
		switch {
		case errors.Is(err, ErrTutorNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "tutor profile not found")
		case errors.Is(err, ErrOwnProfile):
			response.Error(c, http.StatusBadRequest, "INVALID_ARGUMENT", "cannot favorite your own profile")
		case errors.Is(err, ErrAlreadyFavorited):
			response.Error(c, http.StatusConflict, "CONFLICT", "tutor already in favorites")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "failed to add favorite")
		}
		return
	}
	response.Success(c, http.StatusCreated, fav)
}

func (h *Handler) Remove(c *gin.Context) {
	userID := c.GetInt64("user_id")
	tutorID, ok := tutorIDParam(c)
	if !ok {
		return
	}

	if err := h.service.Remove(c.Request.Context(), userID, tutorID); err != nil {
		if errors.Is(err, ErrNotFavorited) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "favorite not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "failed to remove favorite")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"removed": true})
}

func (h *Handler) Check(c *gin.Context) {
	userID := c.GetInt64("user_id")
	tutorID, ok := tutorIDParam(c)
	if !ok {
		return
	}

	exists, err := h.service.Exists(c.Request.Context(), userID, tutorID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "failed to check favorite")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"favorited": exists})
}

func tutorIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("tutorId"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid tutor id")
		return 0, false
	}
	return id, true
}
