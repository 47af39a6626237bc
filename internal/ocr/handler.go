package ocr

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/muhammadbalawal/MenuPlus-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// POST /scans
// --------------------------------------------------
func (h *Handler) Upload(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	header, err := c.FormFile("menu_image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "menu_image is required"})
		return
	}

	scan, err := h.service.Upload(c.Request.Context(), userID, header)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"scan":    scan,
		"message": "Menu uploaded. Text recognition will start automatically.",
	})
}

// --------------------------------------------------
// GET /scans/:id
// --------------------------------------------------
func (h *Handler) Get(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	id, ok := scanID(c)
	if !ok {
		return
	}

	scan, err := h.service.Get(c.Request.Context(), userID, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, scan)
}

// --------------------------------------------------
// POST /scans/:id/retry
// --------------------------------------------------
func (h *Handler) Retry(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	id, ok := scanID(c)
	if !ok {
		return
	}

	scan, err := h.service.Retry(c.Request.Context(), userID, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, scan)
}

func scanID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid scan id"})
		return 0, false
	}
	return id, true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidFile):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	// another user's scan is reported as missing
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrForbidden):
		c.JSON(http.StatusNotFound, gin.H{"error": ErrNotFound.Error()})
	case errors.Is(err, ErrNotRetryable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
