package analysis

import (
	"errors"
	"net/http"

	"github.com/muhammadbalawal/MenuPlus-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type analyzeRequest struct {
	MenuText string `json:"menu_text"`
	ScanID   int64  `json:"scan_id"`
}

// --------------------------------------------------
// POST /analyses
// --------------------------------------------------
func (h *Handler) Analyze(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.service.Analyze(c.Request.Context(), userID, AnalyzeInput{
		MenuText: req.MenuText,
		ScanID:   req.ScanID,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyMenuText):
			c.JSON(http.StatusBadRequest, gin.H{"error": "menu_text or scan_id is required"})
		case errors.Is(err, ErrProfileRequired):
			c.JSON(http.StatusPreconditionFailed, gin.H{"error": "User profile not found"})
		case errors.Is(err, ErrScanNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, ErrScanNotReady):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "menu analysis failed, please try again"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
