package menu

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

type saveMenuRequest struct {
	MenuText        string `json:"menu_text"`
	SafeMenuContent string `json:"safe_menu_content"`
	BestMenuContent string `json:"best_menu_content"`
	FullMenuContent string `json:"full_menu_content"`
	ImageBase64     string `json:"image_base64"`
}

// --------------------------------------------------
// POST /menus
// --------------------------------------------------
func (h *Handler) Save(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req saveMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	m, err := h.service.Save(c.Request.Context(), userID, SaveInput{
		MenuText:        req.MenuText,
		SafeMenuContent: req.SafeMenuContent,
		BestMenuContent: req.BestMenuContent,
		FullMenuContent: req.FullMenuContent,
		ImageBase64:     req.ImageBase64,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, m)
}

// --------------------------------------------------
// GET /menus
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	menus, err := h.service.List(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"menus": menus})
}

// --------------------------------------------------
// GET /menus/:id
// --------------------------------------------------
func (h *Handler) Get(c *gin.Context) {
	m, err := h.service.Get(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, m)
}

// --------------------------------------------------
// DELETE /menus/:id
// --------------------------------------------------
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
