package profile

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

type saveProfileRequest struct {
	PreferredLanguageID string  `json:"preferred_language_id"`
	Allergies           TagList `json:"allergies"`
	DietaryRestrictions TagList `json:"dietary_restrictions"`
	Dislikes            TagList `json:"dislikes"`
	Preferences         TagList `json:"preferences"`
}

// --------------------------------------------------
// GET /languages
// --------------------------------------------------
func (h *Handler) ListLanguages(c *gin.Context) {
	languages, err := h.service.ListLanguages(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch languages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"languages": languages})
}

// --------------------------------------------------
// POST /admin/languages
// --------------------------------------------------
func (h *Handler) AddLanguage(c *gin.Context) {
	var req struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	lang, err := h.service.AddLanguage(c.Request.Context(), req.ID, req.Name)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "id and name are required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, lang)
}

// --------------------------------------------------
// GET /profile
// --------------------------------------------------
func (h *Handler) Get(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	p, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found, complete onboarding first"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, p)
}

// --------------------------------------------------
// PUT /profile
// --------------------------------------------------
func (h *Handler) Save(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req saveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	p, err := h.service.Save(c.Request.Context(), userID, SaveInput{
		PreferredLanguageID: req.PreferredLanguageID,
		Allergies:           req.Allergies,
		DietaryRestrictions: req.DietaryRestrictions,
		Dislikes:            req.Dislikes,
		Preferences:         req.Preferences,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "preferred_language_id is required"})
		case errors.Is(err, ErrUnknownLanguage):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, p)
}
