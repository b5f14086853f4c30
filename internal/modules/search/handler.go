package search

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
	rg.GET("/tutors/search", h.Search)
}

func (h *Handler) Search(c *gin.Context) {
	q := Query{
		Category: c.Query("category"),
		Subject:  c.Query("subject"),
		Mode:     c.Query("mode"),
		Postcode: c.Query("postcode"),
		Sort:     c.Query("sort"),
	}

	var err error
	if q.Page, err = intQuery(c, "page", 1); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid page")
		return
	}
	if q.PageSize, err = intQuery(c, "page_size", 20); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid page_size")
		return
	}

	q.MinPrice = floatQuery(c, "min_price")
	q.MaxPrice = floatQuery(c, "max_price")
	q.MinRating = floatQuery(c, "min_rating")
	q.Latitude = floatQuery(c, "lat")
	q.Longitude = floatQuery(c, "lon")

	result, err := h.service.Search(c.Request.Context(), q)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid search query")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "search failed")
		return
	}

	response.Success(c, http.StatusOK, result)
}

func intQuery(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func floatQuery(c *gin.Context, name string) *float64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}
